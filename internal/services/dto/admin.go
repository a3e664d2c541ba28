package dto

// AdminLoginRequest authenticates an administrator.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RejectFacilityBody carries the admin's mandatory decline reason.
type RejectFacilityBody struct {
	RejectionReason string `json:"rejectionReason" validate:"required"`
}

// FacilityListResponse pages unverified facilities awaiting review.
type FacilityListResponse struct {
	Facilities []UserDTO `json:"facilities"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
}
