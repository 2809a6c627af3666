package assessment

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Insert(ctx context.Context, a *Assessment) error
	ListByUser(ctx context.Context, userID string) ([]Assessment, error)
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) Insert(ctx context.Context, a *Assessment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO assessments
			(id, user_id, symptoms, pain_level, duration, medications_taken,
			 additional_symptoms, urgency_level, confidence_score, recommendations, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.UserID, a.Symptoms, a.PainLevel, a.Duration, a.MedicationsTaken,
		a.AdditionalSymptoms, a.UrgencyLevel, a.ConfidenceScore, a.Recommendations, a.CreatedAt)
	return err
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]Assessment, error) {
	query := `
		SELECT id, user_id, symptoms, pain_level, duration, medications_taken,
		       COALESCE(additional_symptoms, ''), urgency_level, confidence_score,
		       recommendations, created_at
		FROM assessments
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Assessment
	for rows.Next() {
		var a Assessment
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Symptoms, &a.PainLevel, &a.Duration, &a.MedicationsTaken,
			&a.AdditionalSymptoms, &a.UrgencyLevel, &a.ConfidenceScore,
			&a.Recommendations, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
