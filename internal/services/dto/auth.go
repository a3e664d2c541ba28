package dto

import (
	"time"

	"bloodlink_backend/internal/models"
)

// OnboardDonorRequest registers a donor account. Eligibility is evaluated
// from the three criteria fields before anything is persisted.
type OnboardDonorRequest struct {
	Email           string                 `json:"email" validate:"required,email"`
	Password        string                 `json:"password" validate:"required,min=8,max=72"`
	PhoneNumber     string                 `json:"phoneNumber" validate:"required"`
	AgeBracket      models.AgeBracket      `json:"ageBracket" validate:"required,is-age-bracket"`
	WeightBracket   models.WeightBracket   `json:"weightBracket" validate:"required,is-weight-bracket"`
	PregnancyStatus models.PregnancyStatus `json:"pregnancyStatus" validate:"omitempty,is-pregnancy-status"`
}

// OnboardFacilityRequest registers a facility account.
type OnboardFacilityRequest struct {
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8,max=72"`
	PhoneNumber      string `json:"phoneNumber" validate:"required"`
	OrganizationName string `json:"organizationName" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LookUpRequest checks whether an email is already registered.
type LookUpRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type CompleteDonorProfileRequest struct {
	FirstName     string `json:"firstName" validate:"required"`
	MiddleName    string `json:"middleName"`
	LastName      string `json:"lastName" validate:"required"`
	DateOfBirth   string `json:"dateOfBirth" validate:"required"`
	MaritalStatus string `json:"maritalStatus"`
	Gender        string `json:"gender" validate:"required"`
	Bio           string `json:"bio"`
	Occupation    string `json:"occupation"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state" validate:"required"`
	StreetAddress string `json:"streetAddress" validate:"required"`
	BloodGroup    string `json:"bloodGroup" validate:"required,is-blood-group"`

	SocialMedia []string `json:"socialMedia"`

	// Lifestyle questionnaire
	SmokingStatus               bool     `json:"smokingStatus"`
	AlcoholConsumption          bool     `json:"alcoholConsumption"`
	AlcoholConsumptionFrequency string   `json:"alcoholConsumptionFrequency"`
	HistoryOfDrugAbuse          bool     `json:"historyOfDrugAbuse"`
	DrugAbuseDetails            []string `json:"drugAbuseDetails"`
	HighRiskActivities          bool     `json:"highRiskActivities"`
	HighRiskActivityDetails     []string `json:"highRiskActivityDetails"`

	// Health questionnaire
	RecentIllnessOrInfection bool     `json:"recentIllnessOrInfection"`
	IllnessDetails           []string `json:"illnessDetails"`
	CurrentMedication        bool     `json:"currentMedication"`
	MedicationDetails        []string `json:"medicationDetails"`
	RecentVaccination        bool     `json:"recentVaccination"`
	VaccinationDetails       []string `json:"vaccinationDetails"`
	TransfusionOrTransplant  bool     `json:"transfusionOrTransplant"`
	TransfusionDetails       []string `json:"transfusionDetails"`
	RecentTravelHistory      bool     `json:"recentTravelHistory"`
	TravelDetails            []string `json:"travelDetails"`
}

type CompleteFacilityProfileRequest struct {
	FacilityType     string `json:"facilityType" validate:"required"`
	OrganizationName string `json:"organizationName" validate:"required"`
	Website          string `json:"website"`
	Position         string `json:"position"`
	City             string `json:"city" validate:"required"`
	State            string `json:"state" validate:"required"`
	StreetAddress    string `json:"streetAddress" validate:"required"`
	EmergencyContact string `json:"emergencyContact"`

	HoursOfOperation         string   `json:"hoursOfOperation"`
	DaysOfOperation          string   `json:"daysOfOperation"`
	BloodDonationServices    []string `json:"bloodDonationServices"`
	Capacity                 []string `json:"capacity"`
	SpecialNoteOrRequirement string   `json:"specialNoteOrRequirement"`

	AccreditationBody   string `json:"accreditationBody"`
	AccreditationNumber string `json:"accreditationNumber"`
	Certificate         string `json:"certificate"`
}

// AuthResponse carries the session token and the public user view.
type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// UserDTO is the public projection of a user row.
type UserDTO struct {
	ID                string          `json:"id"`
	Email             string          `json:"email"`
	Role              models.UserRole `json:"role"`
	PhoneNumber       string          `json:"phoneNumber"`
	IsEmailVerified   bool            `json:"isEmailVerified"`
	IsProfileVerified bool            `json:"isProfileVerified"`
	IsProfileComplete bool            `json:"isProfileComplete"`
	CreatedAt         time.Time       `json:"createdAt"`

	DonorProfile    *models.DonorProfile    `json:"donorProfile,omitempty"`
	FacilityProfile *models.FacilityProfile `json:"facilityProfile,omitempty"`
}

// LookUpResponse reports email availability.
type LookUpResponse struct {
	Exists bool `json:"exists"`
}

func NewUserDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:                user.ID,
		Email:             user.Email,
		Role:              user.Role,
		PhoneNumber:       user.PhoneNumber,
		IsEmailVerified:   user.IsEmailVerified,
		IsProfileVerified: user.IsProfileVerified,
		IsProfileComplete: user.IsProfileComplete,
		CreatedAt:         user.CreatedAt,
		DonorProfile:      user.DonorProfile,
		FacilityProfile:   user.FacilityProfile,
	}
}
