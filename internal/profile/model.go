package profile

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("profile not found")
	ErrAlreadyExists = errors.New("profile already exists")
)

type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierPremium SubscriptionTier = "premium"
	TierFamily  SubscriptionTier = "family"
	// TierUnset is the zero value: the user has not chosen a plan yet.
	TierUnset SubscriptionTier = ""
)

func (t SubscriptionTier) Valid() bool {
	switch t {
	case TierFree, TierPremium, TierFamily:
		return true
	}
	return false
}

// AccountProfile is the one-per-user account record, keyed by the externally
// issued identity reference. Created lazily on first authenticated visit.
type AccountProfile struct {
	ID               string           `json:"id" db:"id"`
	Email            string           `json:"email" db:"email"`
	FirstName        string           `json:"first_name" db:"first_name"`
	LastName         string           `json:"last_name" db:"last_name"`
	Phone            string           `json:"phone" db:"phone"`
	DateOfBirth      string           `json:"date_of_birth" db:"date_of_birth"`
	Gender           string           `json:"gender" db:"gender"`
	Address          string           `json:"address" db:"address"`
	EmergencyContact string           `json:"emergency_contact" db:"emergency_contact"`
	SubscriptionTier SubscriptionTier `json:"subscription_tier" db:"subscription_tier"`
	HealthScore      int              `json:"health_score" db:"health_score"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`
}

// HealthProfile is the zero-or-one-per-user health record. Its absence is a
// valid state meaning "health info not yet provided".
type HealthProfile struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	UserID            string     `json:"user_id" db:"user_id"`
	Allergies         []string   `json:"allergies" db:"allergies"`
	Medications       []string   `json:"medications" db:"medications"`
	Conditions        []string   `json:"conditions" db:"conditions"`
	HealthGoals       string     `json:"health_goals" db:"health_goals"`
	RecentSymptoms    string     `json:"recent_symptoms" db:"recent_symptoms"`
	AIRecommendations string     `json:"ai_recommendations" db:"ai_recommendations"`
	LastAssessmentAt  *time.Time `json:"last_assessment_at,omitempty" db:"last_assessment_at"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

// HealthPatch is a merge-write against the health profile. Nil fields are
// left untouched. The assessment flow writes {RecentSymptoms,
// AIRecommendations, LastAssessmentAt}; the onboarding flow writes
// {Allergies, Medications, Conditions, HealthGoals}. The two callers writing
// disjoint groups is an assumption this design relies on, not a constraint
// the store enforces.
type HealthPatch struct {
	Allergies         []string
	Medications       []string
	Conditions        []string
	HealthGoals       *string
	RecentSymptoms    *string
	AIRecommendations *string
	LastAssessmentAt  *time.Time
}

// StringList accepts either a JSON array of strings or a single
// comma-separated string, which is how the onboarding form delivers the
// allergy/medication/condition lists.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*l = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		*l = nil
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	*l = out
	return nil
}
