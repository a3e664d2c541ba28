package apperrors

import "net/http"

// Domain error instances shared by the services. Handlers map these to the
// response envelope without inspecting messages.

var (
	// auth domain
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusBadRequest)
	ErrEmailAlreadyExists = New(CodeAlreadyExists, "auth", "Email address is associated with another user", http.StatusConflict)
	ErrInvalidToken       = New(CodeInvalidToken, "auth", "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired       = New(CodeTokenExpired, "auth", "Token expired", http.StatusUnauthorized)
	ErrAccountSuspended   = New(CodeForbidden, "auth", "Account is suspended", http.StatusForbidden)
	ErrProfileIncomplete  = New(CodeUnauthorized, "auth", "Profile not completed", http.StatusUnauthorized)
	ErrProfileUnverified  = New(CodeUnauthorized, "auth", "Profile not verified", http.StatusUnauthorized)

	// donor domain
	ErrDonorNotFound   = New(CodeNotFound, "donor", "Donor not found", http.StatusNotFound)
	ErrDonorIneligible = New(CodeIneligible, "donor", "Donor does not meet criteria", http.StatusBadRequest)

	// facility domain
	ErrFacilityNotFound = New(CodeNotFound, "facility", "Facility not found", http.StatusNotFound)

	// request lifecycle domain
	ErrRequestNotFound      = New(CodeNotFound, "request", "Invalid request", http.StatusNotFound)
	ErrRequestNotAddressee  = New(CodeForbidden, "request", "This request is not associated with donor", http.StatusForbidden)
	ErrRequestAlreadyClosed = New(CodeConflict, "request", "This request has already been responded to", http.StatusConflict)
	ErrRejectionReasonEmpty = New(CodeValidationFailed, "request", "Rejection reason is required", http.StatusUnprocessableEntity)
)
