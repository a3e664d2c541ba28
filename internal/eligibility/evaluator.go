// Package eligibility decides whether a prospective donor meets the minimum
// donation criteria. The check is pure and runs before any write to the user
// store, and before email uniqueness is finalized, so definitively-ineligible
// registrants never learn whether an address is taken.
package eligibility

import "bloodlink_backend/internal/models"

type Result struct {
	Eligible bool
	Reasons  []string
}

// Evaluate applies the registration gate. Any single disqualifier rejects:
// the lowest age band, the lowest weight band, or an affirmative pregnancy
// status.
func Evaluate(age models.AgeBracket, weight models.WeightBracket, pregnancy models.PregnancyStatus) Result {
	var reasons []string

	if age == models.AgeBracketMinor {
		reasons = append(reasons, "donor must be at least 18 years old")
	}
	if weight == models.WeightBracketUnder50 {
		reasons = append(reasons, "donor must weigh at least 50kg")
	}
	if pregnancy == models.PregnancyStatusPregnant {
		reasons = append(reasons, "pregnant donors cannot donate")
	}

	return Result{
		Eligible: len(reasons) == 0,
		Reasons:  reasons,
	}
}
