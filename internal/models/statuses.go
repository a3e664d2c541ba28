package models

import "strings"

type UserRole string
type RequestStatus string
type AgeBracket string
type WeightBracket string
type PregnancyStatus string

const (
	UserRoleDonor    UserRole = "Donor"
	UserRoleFacility UserRole = "Facility"
	UserRoleAdmin    UserRole = "Admin"

	RequestStatusPending  RequestStatus = "Pending"
	RequestStatusAccepted RequestStatus = "Accepted"
	RequestStatusRejected RequestStatus = "Rejected"

	AgeBracketMinor  AgeBracket = "under 18"
	AgeBracket18To30 AgeBracket = "18-30"
	AgeBracket31To45 AgeBracket = "31-45"
	AgeBracket46Plus AgeBracket = "46 and above"

	WeightBracketUnder50 WeightBracket = "below 50kg"
	WeightBracket50To70  WeightBracket = "50-70kg"
	WeightBracket71To90  WeightBracket = "71-90kg"
	WeightBracket90Plus  WeightBracket = "above 90kg"

	PregnancyStatusPregnant    PregnancyStatus = "pregnant"
	PregnancyStatusNotPregnant PregnancyStatus = "not-pregnant"
)

// IsTerminal reports whether a request can no longer change state.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusAccepted || s == RequestStatusRejected
}

// Normalized folds a bracket value to its canonical lowercase form. Input
// validation is case-insensitive, so values must be folded before they are
// compared against the bracket constants or persisted.
func (a AgeBracket) Normalized() AgeBracket {
	return AgeBracket(strings.ToLower(strings.TrimSpace(string(a))))
}

func (w WeightBracket) Normalized() WeightBracket {
	return WeightBracket(strings.ToLower(strings.TrimSpace(string(w))))
}

func (p PregnancyStatus) Normalized() PregnancyStatus {
	return PregnancyStatus(strings.ToLower(strings.TrimSpace(string(p))))
}
