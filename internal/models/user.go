package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

type User struct {
	BaseModel
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`
	PhoneNumber  string   `json:"phoneNumber"`

	// Account flags are independent booleans, not a single status enum:
	// any combination of the four can occur.
	IsEmailVerified    bool `gorm:"default:false" json:"isEmailVerified"`
	IsProfileVerified  bool `gorm:"default:false" json:"isProfileVerified"`
	IsProfileComplete  bool `gorm:"default:false" json:"isProfileComplete"`
	IsAccountSuspended bool `gorm:"default:false" json:"isAccountSuspended"`

	// Relations
	DonorProfile    *DonorProfile    `gorm:"foreignKey:UserID" json:"donorProfile,omitempty"`
	FacilityProfile *FacilityProfile `gorm:"foreignKey:UserID" json:"facilityProfile,omitempty"`
}

type DonorProfile struct {
	BaseModel
	UserID string `gorm:"uniqueIndex;not null" json:"-"`

	FirstName     string `json:"firstName"`
	MiddleName    string `json:"middleName"`
	LastName      string `json:"lastName"`
	DateOfBirth   string `json:"dateOfBirth"`
	MaritalStatus string `json:"maritalStatus"`
	Gender        string `json:"gender"`
	Bio           string `json:"bio"`
	Occupation    string `json:"occupation"`
	City          string `json:"city"`
	State         string `json:"state"`
	StreetAddress string `json:"streetAddress"`
	BloodGroup    string `json:"bloodGroup"`

	// Eligibility criteria captured at registration
	AgeBracket      AgeBracket      `gorm:"type:varchar(20);not null" json:"ageBracket"`
	WeightBracket   WeightBracket   `gorm:"type:varchar(20);not null" json:"weightBracket"`
	PregnancyStatus PregnancyStatus `gorm:"type:varchar(20);default:'not-pregnant'" json:"pregnancyStatus"`

	// Lifestyle questionnaire: each boolean gates a sibling detail list
	SmokingStatus               bool           `gorm:"default:false" json:"smokingStatus"`
	AlcoholConsumption          bool           `gorm:"default:false" json:"alcoholConsumption"`
	AlcoholConsumptionFrequency string         `json:"alcoholConsumptionFrequency"`
	HistoryOfDrugAbuse          bool           `gorm:"default:false" json:"historyOfDrugAbuse"`
	DrugAbuseDetails            datatypes.JSON `gorm:"type:jsonb" json:"drugAbuseDetails" swaggerignore:"true"`
	HighRiskActivities          bool           `gorm:"default:false" json:"highRiskActivities"`
	HighRiskActivityDetails     datatypes.JSON `gorm:"type:jsonb" json:"highRiskActivityDetails" swaggerignore:"true"`

	// Health questionnaire, same boolean/detail-list pairing
	RecentIllnessOrInfection bool           `gorm:"default:false" json:"recentIllnessOrInfection"`
	IllnessDetails           datatypes.JSON `gorm:"type:jsonb" json:"illnessDetails" swaggerignore:"true"`
	CurrentMedication        bool           `gorm:"default:false" json:"currentMedication"`
	MedicationDetails        datatypes.JSON `gorm:"type:jsonb" json:"medicationDetails" swaggerignore:"true"`
	RecentVaccination        bool           `gorm:"default:false" json:"recentVaccination"`
	VaccinationDetails       datatypes.JSON `gorm:"type:jsonb" json:"vaccinationDetails" swaggerignore:"true"`
	TransfusionOrTransplant  bool           `gorm:"default:false" json:"transfusionOrTransplant"`
	TransfusionDetails       datatypes.JSON `gorm:"type:jsonb" json:"transfusionDetails" swaggerignore:"true"`
	RecentTravelHistory      bool           `gorm:"default:false" json:"recentTravelHistory"`
	TravelDetails            datatypes.JSON `gorm:"type:jsonb" json:"travelDetails" swaggerignore:"true"`

	SocialMedia datatypes.JSON `gorm:"type:jsonb" json:"socialMedia" swaggerignore:"true"`
}

type FacilityProfile struct {
	BaseModel
	UserID string `gorm:"uniqueIndex;not null" json:"-"`

	FacilityType     string `json:"facilityType"`
	OrganizationName string `gorm:"not null" json:"organizationName"`
	Website          string `json:"website"`
	Position         string `json:"position"`
	City             string `json:"city"`
	State            string `json:"state"`
	StreetAddress    string `json:"streetAddress"`
	EmergencyContact string `json:"emergencyContact"`

	// Operational details
	HoursOfOperation         string         `json:"hoursOfOperation"`
	DaysOfOperation          string         `json:"daysOfOperation"`
	BloodDonationServices    datatypes.JSON `gorm:"type:jsonb" json:"bloodDonationServices" swaggerignore:"true"`
	Capacity                 datatypes.JSON `gorm:"type:jsonb" json:"capacity" swaggerignore:"true"`
	SpecialNoteOrRequirement string         `json:"specialNoteOrRequirement"`

	// Accreditation record
	AccreditationBody   string `json:"accreditationBody"`
	AccreditationNumber string `json:"accreditationNumber"`
	Certificate         string `json:"certificate"`

	// Set by an admin rejecting verification; overwritten on re-rejection.
	DeclineVerificationReason string `json:"declineVerificationReason,omitempty"`
}

// FullName joins the donor's first and last names for notification mails.
func (p *DonorProfile) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

func jsonToStrings(raw datatypes.JSON) []string {
	var out []string
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return out
}

func stringsToJSON(items []string) datatypes.JSON {
	data, _ := json.Marshal(items)
	return datatypes.JSON(data)
}

func (p *DonorProfile) GetSocialMedia() []string      { return jsonToStrings(p.SocialMedia) }
func (p *DonorProfile) SetSocialMedia(items []string) { p.SocialMedia = stringsToJSON(items) }

func (p *DonorProfile) SetDrugAbuseDetails(items []string) {
	p.DrugAbuseDetails = stringsToJSON(items)
}

func (p *DonorProfile) SetHighRiskActivityDetails(items []string) {
	p.HighRiskActivityDetails = stringsToJSON(items)
}

func (p *DonorProfile) SetIllnessDetails(items []string) {
	p.IllnessDetails = stringsToJSON(items)
}

func (p *DonorProfile) SetMedicationDetails(items []string) {
	p.MedicationDetails = stringsToJSON(items)
}

func (p *DonorProfile) SetVaccinationDetails(items []string) {
	p.VaccinationDetails = stringsToJSON(items)
}

func (p *DonorProfile) SetTransfusionDetails(items []string) {
	p.TransfusionDetails = stringsToJSON(items)
}

func (p *DonorProfile) SetTravelDetails(items []string) {
	p.TravelDetails = stringsToJSON(items)
}
func (f *FacilityProfile) GetServices() []string      { return jsonToStrings(f.BloodDonationServices) }
func (f *FacilityProfile) SetServices(items []string) { f.BloodDonationServices = stringsToJSON(items) }
func (f *FacilityProfile) GetCapacity() []string      { return jsonToStrings(f.Capacity) }
func (f *FacilityProfile) SetCapacity(items []string) { f.Capacity = stringsToJSON(items) }
