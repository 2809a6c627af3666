package assessment

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"doq-health/internal/platform/gemini"
)

// Synthesizer turns a symptom questionnaire into a bounded-confidence
// urgency judgment. It owns prompt construction, the single gateway call,
// response parsing and the deterministic fallbacks. Persistence is the
// caller's concern.
type Synthesizer struct {
	gw  gemini.Gateway
	log *zap.Logger
}

func NewSynthesizer(gw gemini.Gateway, log *zap.Logger) *Synthesizer {
	return &Synthesizer{gw: gw, log: log}
}

// Fixed payload for an outright gateway failure.
func hardFallback() Result {
	return Result{
		UrgencyLevel:    UrgencyModerate,
		ConfidenceScore: SentinelConfidenceHard,
		Recommendations: "Unable to process assessment. Please consult a healthcare provider.",
		Timeline:        "1-2 days",
	}
}

// Fixed payload for a gateway response that yields no usable JSON.
func softFallback() Result {
	return Result{
		UrgencyLevel:    UrgencyModerate,
		ConfidenceScore: SentinelConfidenceSoft,
		Recommendations: "Please consult with a healthcare provider for proper evaluation.",
		Timeline:        "1-2 days",
	}
}

// Validate checks the questionnaire before any external call is made.
func Validate(in Input) error {
	if strings.TrimSpace(in.Symptoms) == "" {
		return &ValidationError{Field: "symptoms", Reason: "is required"}
	}
	if in.PainLevel == "" {
		return &ValidationError{Field: "painLevel", Reason: "is required"}
	}
	if !contains(PainLevels, in.PainLevel) {
		return &ValidationError{Field: "painLevel", Reason: "is not a recognized level"}
	}
	if in.Duration == "" {
		return &ValidationError{Field: "duration", Reason: "is required"}
	}
	if !contains(Durations, in.Duration) {
		return &ValidationError{Field: "duration", Reason: "is not a recognized duration"}
	}
	if in.MedicationsTaken == "" {
		return &ValidationError{Field: "medicationsTaken", Reason: "is required"}
	}
	if !contains(MedicationOptions, in.MedicationsTaken) {
		return &ValidationError{Field: "medicationsTaken", Reason: "is not a recognized option"}
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Synthesize runs one gateway call and always produces a Result: genuine
// model output when possible, otherwise one of the two fixed fallbacks. The
// only error it returns is a *ValidationError, raised before the gateway is
// touched.
func (s *Synthesizer) Synthesize(ctx context.Context, in Input) (Result, Status, error) {
	if err := Validate(in); err != nil {
		return Result{}, "", err
	}

	raw, err := s.gw.Generate(ctx, buildPrompt(in))
	if err != nil {
		s.log.Warn("assessment generation failed, returning hard fallback", zap.Error(err))
		return hardFallback(), StatusFallbackHard, nil
	}

	span, ok := firstJSONObject(raw)
	if !ok {
		s.log.Warn("no JSON object in model response, returning soft fallback",
			zap.Int("response_len", len(raw)))
		return softFallback(), StatusFallbackSoft, nil
	}

	var res Result
	if err := json.Unmarshal([]byte(span), &res); err != nil {
		s.log.Warn("model JSON failed to parse, returning soft fallback", zap.Error(err))
		return softFallback(), StatusFallbackSoft, nil
	}
	if err := validateResult(res); err != nil {
		s.log.Warn("model JSON failed schema validation, returning soft fallback", zap.Error(err))
		return softFallback(), StatusFallbackSoft, nil
	}

	return res, StatusOK, nil
}

func validateResult(r Result) error {
	switch r.UrgencyLevel {
	case UrgencyMild, UrgencyModerate, UrgencySevere:
	default:
		return &ValidationError{Field: "urgencyLevel", Reason: "is outside the mild/moderate/severe set"}
	}
	if r.ConfidenceScore < 0 || r.ConfidenceScore > 100 {
		return &ValidationError{Field: "confidenceScore", Reason: "is outside [0,100]"}
	}
	if strings.TrimSpace(r.Recommendations) == "" {
		return &ValidationError{Field: "recommendations", Reason: "is empty"}
	}
	if strings.TrimSpace(r.Timeline) == "" {
		return &ValidationError{Field: "timeline", Reason: "is empty"}
	}
	return nil
}
