package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func completeAccount() *AccountProfile {
	return &AccountProfile{
		ID:               "user-1",
		Email:            "jane@example.com",
		FirstName:        "Jane",
		LastName:         "Doe",
		Phone:            "+1 555 0100",
		DateOfBirth:      "1990-04-02",
		Gender:           "female",
		Address:          "1 Main St",
		EmergencyContact: "John Doe +1 555 0101",
		SubscriptionTier: TierPremium,
	}
}

func completeHealth() *HealthProfile {
	return &HealthProfile{
		UserID:      "user-1",
		HealthGoals: "sleep better, run a 10k",
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AccountProfile, *HealthProfile)
		health bool
		want   Verdict
	}{
		{
			name:   "everything present",
			mutate: func(*AccountProfile, *HealthProfile) {},
			health: true,
			want:   VerdictComplete,
		},
		{
			name:   "missing phone wins over subscription check",
			mutate: func(a *AccountProfile, _ *HealthProfile) { a.Phone = ""; a.SubscriptionTier = TierUnset },
			health: true,
			want:   VerdictNeedsPersonalInfo,
		},
		{
			name:   "missing date of birth",
			mutate: func(a *AccountProfile, _ *HealthProfile) { a.DateOfBirth = "" },
			health: true,
			want:   VerdictNeedsPersonalInfo,
		},
		{
			name:   "missing gender",
			mutate: func(a *AccountProfile, _ *HealthProfile) { a.Gender = "" },
			health: true,
			want:   VerdictNeedsPersonalInfo,
		},
		{
			name:   "missing address",
			mutate: func(a *AccountProfile, _ *HealthProfile) { a.Address = "" },
			health: true,
			want:   VerdictNeedsPersonalInfo,
		},
		{
			name:   "missing emergency contact",
			mutate: func(a *AccountProfile, _ *HealthProfile) { a.EmergencyContact = "" },
			health: true,
			want:   VerdictNeedsPersonalInfo,
		},
		{
			name:   "whitespace-only health goals",
			mutate: func(_ *AccountProfile, h *HealthProfile) { h.HealthGoals = "   " },
			health: true,
			want:   VerdictNeedsPersonalInfo,
		},
		{
			name:   "no health profile row at all, account fully populated",
			mutate: func(*AccountProfile, *HealthProfile) {},
			health: false,
			want:   VerdictNeedsPersonalInfo,
		},
		{
			name:   "personal info complete, tier unset",
			mutate: func(a *AccountProfile, _ *HealthProfile) { a.SubscriptionTier = TierUnset },
			health: true,
			want:   VerdictNeedsSubscription,
		},
		{
			name:   "free tier counts as chosen",
			mutate: func(a *AccountProfile, _ *HealthProfile) { a.SubscriptionTier = TierFree },
			health: true,
			want:   VerdictComplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := completeAccount()
			health := completeHealth()
			tt.mutate(account, health)
			if !tt.health {
				health = nil
			}
			assert.Equal(t, tt.want, Evaluate(account, health))
		})
	}
}

func TestVerdictNextStep(t *testing.T) {
	assert.Equal(t, "/complete-profile", VerdictNeedsPersonalInfo.NextStep())
	assert.Equal(t, "/choose-subscription", VerdictNeedsSubscription.NextStep())
	assert.Equal(t, "/dashboard", VerdictComplete.NextStep())
}

func TestStringListUnmarshal(t *testing.T) {
	var l StringList
	assert.NoError(t, l.UnmarshalJSON([]byte(`["peanuts","latex"]`)))
	assert.Equal(t, StringList{"peanuts", "latex"}, l)

	var fromString StringList
	assert.NoError(t, fromString.UnmarshalJSON([]byte(`"peanuts, latex, "`)))
	assert.Equal(t, StringList{"peanuts", "latex"}, fromString)

	var empty StringList
	assert.NoError(t, empty.UnmarshalJSON([]byte(`""`)))
	assert.Nil(t, empty)
}
