package profile

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Repository is the persistence reconciler port for the two profile records.
// The merge-upsert must tolerate concurrent calls for the same user from the
// assessment and onboarding flows without external locking; last write wins
// per column.
type Repository interface {
	GetAccount(ctx context.Context, userID string) (*AccountProfile, error)
	CreateAccount(ctx context.Context, a *AccountProfile) error
	UpsertAccount(ctx context.Context, a *AccountProfile) error
	SetSubscriptionTier(ctx context.Context, userID string, tier SubscriptionTier) error
	GetHealth(ctx context.Context, userID string) (*HealthProfile, error)
	UpsertHealth(ctx context.Context, userID string, patch HealthPatch) error
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) GetAccount(ctx context.Context, userID string) (*AccountProfile, error) {
	query := `
		SELECT id, email, first_name, last_name, phone, date_of_birth, gender,
		       address, emergency_contact, subscription_tier, health_score,
		       created_at, updated_at
		FROM users
		WHERE id = $1
	`
	var a AccountProfile
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&a.ID, &a.Email, &a.FirstName, &a.LastName, &a.Phone, &a.DateOfBirth,
		&a.Gender, &a.Address, &a.EmergencyContact, &a.SubscriptionTier,
		&a.HealthScore, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepo) CreateAccount(ctx context.Context, a *AccountProfile) error {
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	query := `
		INSERT INTO users
			(id, email, first_name, last_name, phone, date_of_birth, gender,
			 address, emergency_contact, subscription_tier, health_score,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Email, a.FirstName, a.LastName, a.Phone, a.DateOfBirth, a.Gender,
		a.Address, a.EmergencyContact, a.SubscriptionTier, a.HealthScore,
		a.CreatedAt, a.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	return err
}

func (r *postgresRepo) UpsertAccount(ctx context.Context, a *AccountProfile) error {
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	query := `
		INSERT INTO users
			(id, email, first_name, last_name, phone, date_of_birth, gender,
			 address, emergency_contact, subscription_tier, health_score,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			email = $2,
			first_name = $3,
			last_name = $4,
			phone = $5,
			date_of_birth = $6,
			gender = $7,
			address = $8,
			emergency_contact = $9,
			subscription_tier = $10,
			health_score = $11,
			updated_at = $13
	`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Email, a.FirstName, a.LastName, a.Phone, a.DateOfBirth, a.Gender,
		a.Address, a.EmergencyContact, a.SubscriptionTier, a.HealthScore,
		a.CreatedAt, a.UpdatedAt)
	return err
}

func (r *postgresRepo) SetSubscriptionTier(ctx context.Context, userID string, tier SubscriptionTier) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET subscription_tier = $2, updated_at = $3 WHERE id = $1`,
		userID, tier, time.Now())
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepo) GetHealth(ctx context.Context, userID string) (*HealthProfile, error) {
	query := `
		SELECT id, user_id, allergies, medications, conditions, health_goals,
		       recent_symptoms, ai_recommendations, last_assessment_at,
		       created_at, updated_at
		FROM health_profiles
		WHERE user_id = $1
	`
	var h HealthProfile
	var lastAssessment sql.NullTime
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&h.ID, &h.UserID,
		pq.Array(&h.Allergies), pq.Array(&h.Medications), pq.Array(&h.Conditions),
		&h.HealthGoals, &h.RecentSymptoms, &h.AIRecommendations,
		&lastAssessment, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if lastAssessment.Valid {
		h.LastAssessmentAt = &lastAssessment.Time
	}
	return &h, nil
}

// UpsertHealth creates the row if absent, otherwise merges only the patched
// columns: a NULL parameter keeps the stored value via COALESCE, so two
// concurrent writers touching disjoint column groups cannot erase each
// other's fields.
func (r *postgresRepo) UpsertHealth(ctx context.Context, userID string, patch HealthPatch) error {
	query := `
		INSERT INTO health_profiles
			(id, user_id, allergies, medications, conditions, health_goals,
			 recent_symptoms, ai_recommendations, last_assessment_at,
			 created_at, updated_at)
		VALUES ($1, $2,
			COALESCE($3, '{}'), COALESCE($4, '{}'), COALESCE($5, '{}'),
			COALESCE($6, ''), COALESCE($7, ''), COALESCE($8, ''),
			$9, $10, $10)
		ON CONFLICT (user_id) DO UPDATE SET
			allergies = COALESCE($3, health_profiles.allergies),
			medications = COALESCE($4, health_profiles.medications),
			conditions = COALESCE($5, health_profiles.conditions),
			health_goals = COALESCE($6, health_profiles.health_goals),
			recent_symptoms = COALESCE($7, health_profiles.recent_symptoms),
			ai_recommendations = COALESCE($8, health_profiles.ai_recommendations),
			last_assessment_at = COALESCE($9, health_profiles.last_assessment_at),
			updated_at = $10
	`
	_, err := r.db.ExecContext(ctx, query,
		uuid.New(), userID,
		nullableArray(patch.Allergies), nullableArray(patch.Medications), nullableArray(patch.Conditions),
		patch.HealthGoals, patch.RecentSymptoms, patch.AIRecommendations,
		patch.LastAssessmentAt, time.Now())
	return err
}

// nullableArray maps a nil slice to SQL NULL so COALESCE leaves the stored
// array alone; an empty non-nil slice deliberately overwrites with '{}'.
func nullableArray(s []string) interface{} {
	if s == nil {
		return nil
	}
	return pq.Array(s)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
