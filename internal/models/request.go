package models

import "time"

// DefaultAdditionalInformation is attached to a request when the facility
// provides no note of its own.
const DefaultAdditionalInformation = "Please ensure you are hydrated and have eaten before the appointment."

// DonationRequest is the join entity between exactly one facility (SentBy)
// and one donor (SentTo). Organization name and address are copied from the
// facility at creation so later profile edits do not rewrite history.
type DonationRequest struct {
	BaseModel
	SentBy string `gorm:"type:uuid;not null;index" json:"sentBy"`
	SentTo string `gorm:"type:uuid;not null;index" json:"sentTo"`

	OrganizationName    string `gorm:"not null" json:"organizationName"`
	OrganizationAddress string `gorm:"not null" json:"organizationAddress"`

	AppointmentDate       string `gorm:"not null" json:"appointmentDate"`
	AppointmentTime       string `gorm:"not null" json:"appointmentTime"`
	BloodGroupRequired    string `gorm:"not null" json:"bloodGroupRequired"`
	BloodCollectionType   string `gorm:"not null" json:"bloodCollectionType"`
	AdditionalInformation string `json:"additionalInformation"`

	Status          RequestStatus `gorm:"type:varchar(20);default:'Pending';index" json:"status"`
	RespondedAt     *time.Time    `json:"respondedAt,omitempty"`
	RejectionReason *string       `json:"rejectionReason,omitempty"`
}
