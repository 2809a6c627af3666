package profile

import "strings"

// Verdict is the derived onboarding completeness classification. It is
// recomputed on every landing and never cached across requests.
type Verdict string

const (
	VerdictNeedsPersonalInfo Verdict = "needs-personal-info"
	VerdictNeedsSubscription Verdict = "needs-subscription"
	VerdictComplete          Verdict = "complete"
)

// NextStep maps a verdict to the route the client should land on.
func (v Verdict) NextStep() string {
	switch v {
	case VerdictNeedsPersonalInfo:
		return "/complete-profile"
	case VerdictNeedsSubscription:
		return "/choose-subscription"
	default:
		return "/dashboard"
	}
}

// Evaluate computes the onboarding verdict from the two records. It is a
// pure function: fetching, lazy creation and error policy live in the
// service, so this truth table is testable with literals.
//
// Check order is significant and short-circuits: the combined personal-info
// group (five account fields plus health goals) wins over the subscription
// check. A nil health profile reads as "health goals absent", identical to a
// present-but-empty row.
func Evaluate(account *AccountProfile, health *HealthProfile) Verdict {
	goals := ""
	if health != nil {
		goals = health.HealthGoals
	}

	if isBlank(account.Phone) ||
		isBlank(account.DateOfBirth) ||
		isBlank(account.Gender) ||
		isBlank(account.Address) ||
		isBlank(account.EmergencyContact) ||
		isBlank(goals) {
		return VerdictNeedsPersonalInfo
	}

	if account.SubscriptionTier == TierUnset {
		return VerdictNeedsSubscription
	}

	return VerdictComplete
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
