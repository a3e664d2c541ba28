package dto

import (
	"time"

	"bloodlink_backend/internal/models"
)

// CreateRequestBody is the facility's donation request payload. Organization
// name and address come from the facility profile, never from the client.
type CreateRequestBody struct {
	AppointmentDate       string `json:"appointmentDate" validate:"required"`
	AppointmentTime       string `json:"appointmentTime" validate:"required"`
	BloodGroupRequired    string `json:"bloodGroupRequired" validate:"required,is-blood-group"`
	BloodCollectionType   string `json:"bloodCollectionType" validate:"required,is-collection-type"`
	AdditionalInformation string `json:"additionalInformation"`
}

// RejectRequestBody carries the donor's mandatory rejection reason.
type RejectRequestBody struct {
	RejectionReason string `json:"rejectionReason" validate:"required"`
}

// FacilityContactDTO carries the requesting facility's current contact
// details for the donor's inbox. Unlike the organization snapshot on the
// request itself, these reflect the facility profile as it is now.
type FacilityContactDTO struct {
	OrganizationName string `json:"organizationName"`
	Email            string `json:"email"`
	PhoneNumber      string `json:"phoneNumber"`
	City             string `json:"city"`
	State            string `json:"state"`
	StreetAddress    string `json:"streetAddress"`
}

// RequestDTO is the public projection of a donation request.
type RequestDTO struct {
	ID                    string               `json:"id"`
	SentBy                string               `json:"sentBy"`
	SentTo                string               `json:"sentTo"`
	OrganizationName      string               `json:"organizationName"`
	OrganizationAddress   string               `json:"organizationAddress"`
	AppointmentDate       string               `json:"appointmentDate"`
	AppointmentTime       string               `json:"appointmentTime"`
	BloodGroupRequired    string               `json:"bloodGroupRequired"`
	BloodCollectionType   string               `json:"bloodCollectionType"`
	AdditionalInformation string               `json:"additionalInformation"`
	Status                models.RequestStatus `json:"status"`
	RespondedAt           *time.Time           `json:"respondedAt,omitempty"`
	RejectionReason       *string              `json:"rejectionReason,omitempty"`
	CreatedAt             time.Time            `json:"createdAt"`

	// Populated in the donor's listing only.
	Facility *FacilityContactDTO `json:"facility,omitempty"`
}

// NewFacilityContactDTO projects a facility user's current contact details.
func NewFacilityContactDTO(facility *models.User) *FacilityContactDTO {
	contact := &FacilityContactDTO{
		Email:       facility.Email,
		PhoneNumber: facility.PhoneNumber,
	}
	if p := facility.FacilityProfile; p != nil {
		contact.OrganizationName = p.OrganizationName
		contact.City = p.City
		contact.State = p.State
		contact.StreetAddress = p.StreetAddress
	}
	return contact
}

// RequestListResponse pages a facility's outbound requests.
type RequestListResponse struct {
	Requests []RequestDTO `json:"requests"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"pageSize"`
}

func NewRequestDTO(r *models.DonationRequest) RequestDTO {
	return RequestDTO{
		ID:                    r.ID,
		SentBy:                r.SentBy,
		SentTo:                r.SentTo,
		OrganizationName:      r.OrganizationName,
		OrganizationAddress:   r.OrganizationAddress,
		AppointmentDate:       r.AppointmentDate,
		AppointmentTime:       r.AppointmentTime,
		BloodGroupRequired:    r.BloodGroupRequired,
		BloodCollectionType:   r.BloodCollectionType,
		AdditionalInformation: r.AdditionalInformation,
		Status:                r.Status,
		RespondedAt:           r.RespondedAt,
		RejectionReason:       r.RejectionReason,
		CreatedAt:             r.CreatedAt,
	}
}

func NewRequestDTOs(requests []models.DonationRequest) []RequestDTO {
	out := make([]RequestDTO, 0, len(requests))
	for i := range requests {
		out = append(out, NewRequestDTO(&requests[i]))
	}
	return out
}
