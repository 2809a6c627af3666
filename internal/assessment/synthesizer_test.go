package assessment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGateway struct {
	response string
	err      error
	calls    int
}

func (f *fakeGateway) Generate(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func validInput() Input {
	return Input{
		Symptoms:         "persistent headache behind the eyes",
		PainLevel:        "5-6 (Moderate)",
		Duration:         "1-3 days",
		MedicationsTaken: "Over-the-counter pain relievers",
	}
}

func TestSynthesizeExtractsModelJSON(t *testing.T) {
	gw := &fakeGateway{
		response: `Sure! {"urgencyLevel":"severe","confidenceScore":92,"recommendations":"See a doctor now","timeline":"immediately"} Hope that helps`,
	}
	synth := NewSynthesizer(gw, zap.NewNop())

	res, status, err := synth.Synthesize(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, StatusOK, status)
	assert.Equal(t, Result{
		UrgencyLevel:    UrgencySevere,
		ConfidenceScore: 92,
		Recommendations: "See a doctor now",
		Timeline:        "immediately",
	}, res)
	assert.Equal(t, 1, gw.calls)
}

func TestSynthesizeHardFallbackOnGatewayError(t *testing.T) {
	gw := &fakeGateway{err: errors.New("connection refused")}
	synth := NewSynthesizer(gw, zap.NewNop())

	res, status, err := synth.Synthesize(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, StatusFallbackHard, status)
	assert.Equal(t, Result{
		UrgencyLevel:    UrgencyModerate,
		ConfidenceScore: 50,
		Recommendations: "Unable to process assessment. Please consult a healthcare provider.",
		Timeline:        "1-2 days",
	}, res)
}

func TestSynthesizeSoftFallbackOnUnusableOutput(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"plain prose, no braces", "You should rest and drink fluids."},
		{"malformed json", `{"urgencyLevel": "severe", "confidenceScore": }`},
		{"urgency outside enum", `{"urgencyLevel":"critical","confidenceScore":90,"recommendations":"x","timeline":"now"}`},
		{"confidence above range", `{"urgencyLevel":"mild","confidenceScore":150,"recommendations":"x","timeline":"now"}`},
		{"confidence below range", `{"urgencyLevel":"mild","confidenceScore":-5,"recommendations":"x","timeline":"now"}`},
		{"empty recommendations", `{"urgencyLevel":"mild","confidenceScore":80,"recommendations":"","timeline":"now"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{response: tt.response}
			synth := NewSynthesizer(gw, zap.NewNop())

			res, status, err := synth.Synthesize(context.Background(), validInput())
			require.NoError(t, err)
			assert.Equal(t, StatusFallbackSoft, status)
			assert.Equal(t, Result{
				UrgencyLevel:    UrgencyModerate,
				ConfidenceScore: 70,
				Recommendations: "Please consult with a healthcare provider for proper evaluation.",
				Timeline:        "1-2 days",
			}, res)
		})
	}
}

func TestSynthesizeResultAlwaysBounded(t *testing.T) {
	responses := []string{
		`{"urgencyLevel":"mild","confidenceScore":0,"recommendations":"rest","timeline":"1 week"}`,
		`{"urgencyLevel":"moderate","confidenceScore":100,"recommendations":"see a gp","timeline":"2 days"}`,
		`garbage with no json at all`,
	}

	for _, resp := range responses {
		gw := &fakeGateway{response: resp}
		synth := NewSynthesizer(gw, zap.NewNop())

		res, _, err := synth.Synthesize(context.Background(), validInput())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.ConfidenceScore, 0)
		assert.LessOrEqual(t, res.ConfidenceScore, 100)
		assert.Contains(t, []UrgencyLevel{UrgencyMild, UrgencyModerate, UrgencySevere}, res.UrgencyLevel)
	}
}

func TestSynthesizeValidationBeforeGatewayCall(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
		field  string
	}{
		{"missing symptoms", func(in *Input) { in.Symptoms = "   " }, "symptoms"},
		{"missing pain level", func(in *Input) { in.PainLevel = "" }, "painLevel"},
		{"unknown pain level", func(in *Input) { in.PainLevel = "eleven" }, "painLevel"},
		{"missing duration", func(in *Input) { in.Duration = "" }, "duration"},
		{"missing medications", func(in *Input) { in.MedicationsTaken = "" }, "medicationsTaken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{response: "{}"}
			synth := NewSynthesizer(gw, zap.NewNop())

			in := validInput()
			tt.mutate(&in)

			_, _, err := synth.Synthesize(context.Background(), in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, 0, gw.calls, "gateway must not be called on invalid input")
		})
	}
}
