package assessment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepo struct {
	insertErr error
	inserted  []Assessment
}

func (f *fakeRepo) Insert(_ context.Context, a *Assessment) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, *a)
	return nil
}

func (f *fakeRepo) ListByUser(_ context.Context, _ string) ([]Assessment, error) {
	return f.inserted, nil
}

type fakeRefresher struct {
	calls int
	err   error
}

func (f *fakeRefresher) RefreshAssessment(_ context.Context, _, _, _ string, _ time.Time) error {
	f.calls++
	return f.err
}

const goodResponse = `{"urgencyLevel":"mild","confidenceScore":88,"recommendations":"Rest and hydrate","timeline":"3-5 days"}`

func TestAssessPersistsGenuineResult(t *testing.T) {
	gw := &fakeGateway{response: goodResponse}
	repo := &fakeRepo{}
	refresher := &fakeRefresher{}
	svc := NewService(NewSynthesizer(gw, zap.NewNop()), repo, refresher, zap.NewNop())

	res, err := svc.Assess(context.Background(), "user-1", validInput())
	require.NoError(t, err)
	assert.Equal(t, 88, res.ConfidenceScore)

	require.Len(t, repo.inserted, 1)
	assert.Equal(t, "user-1", repo.inserted[0].UserID)
	assert.Equal(t, UrgencyMild, repo.inserted[0].UrgencyLevel)
	assert.Equal(t, 1, refresher.calls)
}

func TestAssessAnonymousSkipsPersistence(t *testing.T) {
	gw := &fakeGateway{response: goodResponse}
	repo := &fakeRepo{}
	refresher := &fakeRefresher{}
	svc := NewService(NewSynthesizer(gw, zap.NewNop()), repo, refresher, zap.NewNop())

	res, err := svc.Assess(context.Background(), "", validInput())
	require.NoError(t, err)
	assert.Equal(t, 88, res.ConfidenceScore)
	assert.Empty(t, repo.inserted)
	assert.Equal(t, 0, refresher.calls)
}

func TestAssessInsertFailureDoesNotFailRequest(t *testing.T) {
	gw := &fakeGateway{response: goodResponse}
	repo := &fakeRepo{insertErr: errors.New("store unavailable")}
	refresher := &fakeRefresher{}
	svc := NewService(NewSynthesizer(gw, zap.NewNop()), repo, refresher, zap.NewNop())

	res, err := svc.Assess(context.Background(), "user-1", validInput())
	require.NoError(t, err)
	assert.Equal(t, 88, res.ConfidenceScore)
	// The health refresh still runs; it is independent of the insert outcome.
	assert.Equal(t, 1, refresher.calls)
}

func TestAssessSentinelFailsRequest(t *testing.T) {
	tests := []struct {
		name string
		gw   *fakeGateway
	}{
		{"hard fallback", &fakeGateway{err: errors.New("provider down")}},
		{"soft fallback", &fakeGateway{response: "no json here"}},
		{"model echoes reserved 50", &fakeGateway{response: `{"urgencyLevel":"mild","confidenceScore":50,"recommendations":"x","timeline":"now"}`}},
		{"model echoes reserved 70", &fakeGateway{response: `{"urgencyLevel":"mild","confidenceScore":70,"recommendations":"x","timeline":"now"}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			refresher := &fakeRefresher{}
			svc := NewService(NewSynthesizer(tt.gw, zap.NewNop()), repo, refresher, zap.NewNop())

			_, err := svc.Assess(context.Background(), "user-1", validInput())
			require.ErrorIs(t, err, ErrSentinelResult)
			assert.Empty(t, repo.inserted, "a disguised failure must never be persisted")
			assert.Equal(t, 0, refresher.calls)
		})
	}
}

func TestAssessValidationErrorPropagates(t *testing.T) {
	gw := &fakeGateway{response: goodResponse}
	svc := NewService(NewSynthesizer(gw, zap.NewNop()), &fakeRepo{}, &fakeRefresher{}, zap.NewNop())

	in := validInput()
	in.Symptoms = ""
	_, err := svc.Assess(context.Background(), "user-1", in)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, gw.calls)
}
