package assessment

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// HealthRefresher is the slice of the profile layer this service needs: the
// merge-write that stamps the latest assessment onto the health profile.
type HealthRefresher interface {
	RefreshAssessment(ctx context.Context, userID, symptoms, recommendations string, at time.Time) error
}

type Service interface {
	// Assess synthesizes a verdict and, for an authenticated user, records
	// it. A disguised-failure (sentinel) result fails the whole request.
	Assess(ctx context.Context, userID string, in Input) (Result, error)
	History(ctx context.Context, userID string) ([]Assessment, error)
}

type service struct {
	synth  *Synthesizer
	repo   Repository
	health HealthRefresher
	log    *zap.Logger
}

func NewService(synth *Synthesizer, repo Repository, health HealthRefresher, log *zap.Logger) Service {
	return &service{synth: synth, repo: repo, health: health, log: log}
}

func (s *service) Assess(ctx context.Context, userID string, in Input) (Result, error) {
	res, status, err := s.synth.Synthesize(ctx, in)
	if err != nil {
		return Result{}, err
	}

	// A fallback payload looks like a legitimate assessment but is not one.
	// Escalate instead of persisting it as a trustworthy record. The
	// confidence check also covers a model that echoes a reserved value.
	if status != StatusOK || IsSentinelConfidence(res.ConfidenceScore) {
		s.log.Warn("sentinel assessment result, failing request",
			zap.String("status", string(status)),
			zap.Int("confidence", res.ConfidenceScore),
			zap.String("user_id", userID),
		)
		return Result{}, ErrSentinelResult
	}

	if userID == "" {
		return res, nil
	}

	// Persistence failures after a genuine synthesis never block the user
	// from seeing their result; the assessment content is the value here.
	record := &Assessment{
		UserID:             userID,
		Symptoms:           in.Symptoms,
		PainLevel:          in.PainLevel,
		Duration:           in.Duration,
		MedicationsTaken:   in.MedicationsTaken,
		AdditionalSymptoms: in.AdditionalSymptoms,
		UrgencyLevel:       res.UrgencyLevel,
		ConfidenceScore:    res.ConfidenceScore,
		Recommendations:    res.Recommendations,
	}
	if err := s.repo.Insert(ctx, record); err != nil {
		s.log.Warn("failed to persist assessment", zap.String("user_id", userID), zap.Error(err))
	}

	if err := s.health.RefreshAssessment(ctx, userID, in.Symptoms, res.Recommendations, time.Now()); err != nil {
		s.log.Warn("failed to refresh health profile after assessment",
			zap.String("user_id", userID), zap.Error(err))
	}

	return res, nil
}

func (s *service) History(ctx context.Context, userID string) ([]Assessment, error) {
	return s.repo.ListByUser(ctx, userID)
}
