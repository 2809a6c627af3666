package assessment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type UrgencyLevel string

const (
	UrgencyMild     UrgencyLevel = "mild"
	UrgencyModerate UrgencyLevel = "moderate"
	UrgencySevere   UrgencyLevel = "severe"
)

// The questionnaire buckets, exactly as the intake form presents them.
var (
	PainLevels = []string{
		"1-2 (Mild)",
		"3-4 (Mild-Moderate)",
		"5-6 (Moderate)",
		"7-8 (Severe)",
		"9-10 (Extreme)",
	}
	Durations = []string{
		"Less than 24 hours",
		"1-3 days",
		"4-7 days",
		"1-2 weeks",
		"More than 2 weeks",
	}
	MedicationOptions = []string{
		"No medication taken",
		"Over-the-counter pain relievers",
		"Prescription medication",
		"Home remedies only",
	}
)

// Input is one submitted questionnaire.
type Input struct {
	Symptoms           string `json:"symptoms"`
	PainLevel          string `json:"painLevel"`
	Duration           string `json:"duration"`
	MedicationsTaken   string `json:"medicationsTaken"`
	AdditionalSymptoms string `json:"additionalSymptoms,omitempty"`
}

// Result is the synthesized verdict returned to the client.
type Result struct {
	UrgencyLevel    UrgencyLevel `json:"urgencyLevel"`
	ConfidenceScore int          `json:"confidenceScore"`
	Recommendations string       `json:"recommendations"`
	Timeline        string       `json:"timeline"`
}

// Status is the side channel telling in-process callers whether the result
// is genuine model output or a fallback payload, so they never have to
// compare the sentinel confidence values on the wire.
type Status string

const (
	StatusOK           Status = "ok"
	StatusFallbackHard Status = "fallback-hard" // gateway call failed outright
	StatusFallbackSoft Status = "fallback-soft" // gateway answered, output unusable
)

// The two reserved confidence values. Exactly 50 or 70 on the wire means
// synthesis failure, never a genuine low-confidence clinical result.
const (
	SentinelConfidenceHard = 50
	SentinelConfidenceSoft = 70
)

// IsSentinelConfidence reports whether score is one of the reserved failure
// values callers must special-case.
func IsSentinelConfidence(score int) bool {
	return score == SentinelConfidenceHard || score == SentinelConfidenceSoft
}

// ErrSentinelResult signals that synthesis produced a disguised-failure
// payload; the request must fail rather than persist it as trustworthy.
var ErrSentinelResult = errors.New("assessment could not be generated")

// ValidationError reports a missing or unrecognized required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid assessment input: " + e.Field + " " + e.Reason
}

// Assessment is the append-only persisted record, one per submission that
// reached the synthesizer.
type Assessment struct {
	ID                 uuid.UUID    `json:"id" db:"id"`
	UserID             string       `json:"user_id" db:"user_id"`
	Symptoms           string       `json:"symptoms" db:"symptoms"`
	PainLevel          string       `json:"pain_level" db:"pain_level"`
	Duration           string       `json:"duration" db:"duration"`
	MedicationsTaken   string       `json:"medications_taken" db:"medications_taken"`
	AdditionalSymptoms string       `json:"additional_symptoms,omitempty" db:"additional_symptoms"`
	UrgencyLevel       UrgencyLevel `json:"urgency_level" db:"urgency_level"`
	ConfidenceScore    int          `json:"confidence_score" db:"confidence_score"`
	Recommendations    string       `json:"recommendations" db:"recommendations"`
	CreatedAt          time.Time    `json:"created_at" db:"created_at"`
}
