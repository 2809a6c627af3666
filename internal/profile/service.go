package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"doq-health/internal/auth"
)

// OnboardingDecision is the routing verdict handed to the client.
type OnboardingDecision struct {
	Verdict  Verdict `json:"verdict"`
	NextStep string  `json:"nextStep"`
}

// ProfileData is the flexible payload the profile endpoint accepts; the
// health-list fields arrive either as arrays or as comma-separated strings.
type ProfileData struct {
	Email              string           `json:"email"`
	FirstName          string           `json:"first_name"`
	LastName           string           `json:"last_name"`
	Phone              string           `json:"phone"`
	DateOfBirth        string           `json:"date_of_birth"`
	Gender             string           `json:"gender"`
	Address            string           `json:"address"`
	EmergencyContact   string           `json:"emergency_contact"`
	SubscriptionTier   SubscriptionTier `json:"subscription_tier"`
	Allergies          StringList       `json:"allergies"`
	CurrentMedications StringList       `json:"current_medications"`
	MedicalConditions  StringList       `json:"medical_conditions"`
	HealthGoals        string           `json:"health_goals"`
}

type Service interface {
	GetAccount(ctx context.Context, userID string) (*AccountProfile, error)
	GetHealth(ctx context.Context, userID string) (*HealthProfile, error)
	SaveProfile(ctx context.Context, userID string, data ProfileData) error
	SetSubscription(ctx context.Context, userID string, tier SubscriptionTier) error

	// GetOrCreateAccount is the reconciler's lazy-create read: on "not
	// found" it inserts the seed row and returns it as if read; any other
	// read error propagates.
	GetOrCreateAccount(ctx context.Context, seed *AccountProfile) (*AccountProfile, error)

	// ResolveOnboarding computes the completeness verdict for the
	// authenticated user, lazily creating the account row on first visit.
	ResolveOnboarding(ctx context.Context, user *auth.User) (OnboardingDecision, error)

	// RefreshAssessment stamps the latest assessment onto the health
	// profile (the assessment flow's half of the field partition).
	RefreshAssessment(ctx context.Context, userID, symptoms, recommendations string, at time.Time) error
}

type service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) Service {
	return &service{repo: repo, log: log}
}

func (s *service) GetAccount(ctx context.Context, userID string) (*AccountProfile, error) {
	return s.repo.GetAccount(ctx, userID)
}

func (s *service) GetHealth(ctx context.Context, userID string) (*HealthProfile, error) {
	return s.repo.GetHealth(ctx, userID)
}

func (s *service) SaveProfile(ctx context.Context, userID string, data ProfileData) error {
	tier := data.SubscriptionTier
	if tier != TierUnset && !tier.Valid() {
		return fmt.Errorf("unknown subscription tier %q", tier)
	}

	account := &AccountProfile{
		ID:               userID,
		Email:            data.Email,
		FirstName:        data.FirstName,
		LastName:         data.LastName,
		Phone:            data.Phone,
		DateOfBirth:      data.DateOfBirth,
		Gender:           data.Gender,
		Address:          data.Address,
		EmergencyContact: data.EmergencyContact,
		SubscriptionTier: tier,
		HealthScore:      0,
	}
	if err := s.repo.UpsertAccount(ctx, account); err != nil {
		return fmt.Errorf("upsert account profile: %w", err)
	}

	// The health section is optional; only touch the row when the form
	// actually carried health information.
	if len(data.Allergies) == 0 && len(data.CurrentMedications) == 0 &&
		len(data.MedicalConditions) == 0 && data.HealthGoals == "" {
		return nil
	}

	patch := HealthPatch{
		Allergies:   data.Allergies,
		Medications: data.CurrentMedications,
		Conditions:  data.MedicalConditions,
	}
	if data.HealthGoals != "" {
		patch.HealthGoals = &data.HealthGoals
	}
	if err := s.repo.UpsertHealth(ctx, userID, patch); err != nil {
		// The account write already landed; a health write failure leaves a
		// consistent (if less complete) state and is not worth failing the
		// whole request over.
		s.log.Warn("failed to upsert health profile", zap.String("user_id", userID), zap.Error(err))
	}
	return nil
}

func (s *service) SetSubscription(ctx context.Context, userID string, tier SubscriptionTier) error {
	if !tier.Valid() {
		return fmt.Errorf("unknown subscription tier %q", tier)
	}
	return s.repo.SetSubscriptionTier(ctx, userID, tier)
}

func (s *service) GetOrCreateAccount(ctx context.Context, seed *AccountProfile) (*AccountProfile, error) {
	account, err := s.repo.GetAccount(ctx, seed.ID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if err := s.repo.CreateAccount(ctx, seed); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			// Another session won the create race; their row is ours.
			return s.repo.GetAccount(ctx, seed.ID)
		}
		return nil, err
	}
	return seed, nil
}

// resolveState is the evaluator's explicit progression. Keeping the lazy
// create as a named transition (not an inline side effect of a getter) makes
// its retry behavior testable on its own.
type resolveState int

const (
	stateUnknown resolveState = iota
	stateCreating
	stateEvaluating
)

func (s *service) ResolveOnboarding(ctx context.Context, user *auth.User) (OnboardingDecision, error) {
	var account *AccountProfile
	state := stateUnknown

	for {
		switch state {
		case stateUnknown:
			got, err := s.repo.GetAccount(ctx, user.ID)
			if errors.Is(err, ErrNotFound) {
				state = stateCreating
				continue
			}
			if err != nil {
				// Account read failures block progress; guessing a verdict
				// here could route a complete user back into onboarding.
				return OnboardingDecision{}, fmt.Errorf("fetch account profile: %w", err)
			}
			account = got
			state = stateEvaluating

		case stateCreating:
			seed := &AccountProfile{
				ID:        user.ID,
				Email:     user.Email,
				FirstName: user.FirstName,
				LastName:  user.LastName,
			}
			if err := s.repo.CreateAccount(ctx, seed); err != nil {
				if errors.Is(err, ErrAlreadyExists) {
					state = stateUnknown
					continue
				}
				return OnboardingDecision{}, fmt.Errorf("create account profile: %w", err)
			}
			// Trust the write; no re-read.
			account = seed
			state = stateEvaluating

		case stateEvaluating:
			health, err := s.repo.GetHealth(ctx, user.ID)
			if err != nil {
				if !errors.Is(err, ErrNotFound) {
					// Unlike the account read, a failing health read folds
					// into "absent": the record is optional and the verdict
					// it produces is the safe one.
					s.log.Warn("health profile read failed, treating as absent",
						zap.String("user_id", user.ID), zap.Error(err))
				}
				health = nil
			}
			verdict := Evaluate(account, health)
			return OnboardingDecision{Verdict: verdict, NextStep: verdict.NextStep()}, nil
		}
	}
}

func (s *service) RefreshAssessment(ctx context.Context, userID, symptoms, recommendations string, at time.Time) error {
	return s.repo.UpsertHealth(ctx, userID, HealthPatch{
		RecentSymptoms:    &symptoms,
		AIRecommendations: &recommendations,
		LastAssessmentAt:  &at,
	})
}
