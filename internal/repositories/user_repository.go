package repositories

import (
	"errors"
	"strings"
	"time"

	"bloodlink_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrProfileNotFound   = errors.New("profile not found")
)

type UserRepository interface {
	// User operations
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	MarkEmailVerified(userID string) error
	SetProfileFlags(userID string, complete, verified bool) error
	SetDeclineReason(userID, reason string) error
	UpdatePhoneNumber(userID, phone string) error

	// Profile operations
	CreateDonorProfile(profile *models.DonorProfile) error
	UpdateDonorProfile(profile *models.DonorProfile) error
	CreateFacilityProfile(profile *models.FacilityProfile) error
	UpdateFacilityProfile(profile *models.FacilityProfile) error
	FindDonorProfile(userID string) (*models.DonorProfile, error)
	FindFacilityProfile(userID string) (*models.FacilityProfile, error)

	// Listing
	SearchDonors(criteria DonorFilter) ([]models.User, int64, error)
	FindUnverifiedFacilities(limit, offset int) ([]models.User, int64, error)

	Transaction(fn func(tx UserRepository) error) error
}

// DonorFilter narrows the donor search. Empty fields are skipped.
type DonorFilter struct {
	Gender     string
	BloodGroup string
	City       string
	State      string
	Page       int
	PageSize   int
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

// User operations

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("DonorProfile").Preload("FacilityProfile").
		First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("DonorProfile").Preload("FacilityProfile").
		First(&user, "email = ?", normalizeEmail(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	user.Email = normalizeEmail(user.Email)

	var existing models.User
	if err := r.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}

	return mapCreateError(r.db.Create(user).Error)
}

// mapCreateError folds a unique-index violation into ErrUserAlreadyExists.
// Two concurrent registrations can both pass the pre-insert lookup; the
// email index then rejects the loser on insert.
func mapCreateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUserAlreadyExists
	}
	return err
}

func (r *UserRepositoryImpl) MarkEmailVerified(userID string) error {
	return r.updateUserColumns(userID, map[string]interface{}{
		"is_email_verified": true,
	})
}

func (r *UserRepositoryImpl) SetProfileFlags(userID string, complete, verified bool) error {
	return r.updateUserColumns(userID, map[string]interface{}{
		"is_profile_complete": complete,
		"is_profile_verified": verified,
	})
}

func (r *UserRepositoryImpl) SetDeclineReason(userID, reason string) error {
	result := r.db.Model(&models.FacilityProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"decline_verification_reason": reason,
			"updated_at":                  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdatePhoneNumber(userID, phone string) error {
	return r.updateUserColumns(userID, map[string]interface{}{
		"phone_number": phone,
	})
}

func (r *UserRepositoryImpl) updateUserColumns(userID string, columns map[string]interface{}) error {
	columns["updated_at"] = time.Now()
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Profile operations

func (r *UserRepositoryImpl) CreateDonorProfile(profile *models.DonorProfile) error {
	return r.db.Create(profile).Error
}

func (r *UserRepositoryImpl) UpdateDonorProfile(profile *models.DonorProfile) error {
	result := r.db.Model(&models.DonorProfile{}).
		Where("user_id = ?", profile.UserID).
		Updates(donorProfileColumns(profile))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// donorProfileColumns maps the completion-managed fields to an explicit
// column set. A struct update would skip zero values, so a questionnaire
// boolean could never be flipped back to false on re-completion. The
// eligibility brackets are not part of completion and stay untouched.
func donorProfileColumns(p *models.DonorProfile) map[string]interface{} {
	return map[string]interface{}{
		"first_name":     p.FirstName,
		"middle_name":    p.MiddleName,
		"last_name":      p.LastName,
		"date_of_birth":  p.DateOfBirth,
		"marital_status": p.MaritalStatus,
		"gender":         p.Gender,
		"bio":            p.Bio,
		"occupation":     p.Occupation,
		"city":           p.City,
		"state":          p.State,
		"street_address": p.StreetAddress,
		"blood_group":    p.BloodGroup,
		"social_media":   p.SocialMedia,

		"smoking_status":                p.SmokingStatus,
		"alcohol_consumption":           p.AlcoholConsumption,
		"alcohol_consumption_frequency": p.AlcoholConsumptionFrequency,
		"history_of_drug_abuse":         p.HistoryOfDrugAbuse,
		"drug_abuse_details":            p.DrugAbuseDetails,
		"high_risk_activities":          p.HighRiskActivities,
		"high_risk_activity_details":    p.HighRiskActivityDetails,

		"recent_illness_or_infection": p.RecentIllnessOrInfection,
		"illness_details":             p.IllnessDetails,
		"current_medication":          p.CurrentMedication,
		"medication_details":          p.MedicationDetails,
		"recent_vaccination":          p.RecentVaccination,
		"vaccination_details":         p.VaccinationDetails,
		"transfusion_or_transplant":   p.TransfusionOrTransplant,
		"transfusion_details":         p.TransfusionDetails,
		"recent_travel_history":       p.RecentTravelHistory,
		"travel_details":              p.TravelDetails,

		"updated_at": time.Now(),
	}
}

func (r *UserRepositoryImpl) CreateFacilityProfile(profile *models.FacilityProfile) error {
	return r.db.Create(profile).Error
}

func (r *UserRepositoryImpl) UpdateFacilityProfile(profile *models.FacilityProfile) error {
	result := r.db.Model(&models.FacilityProfile{}).
		Where("user_id = ?", profile.UserID).
		Updates(facilityProfileColumns(profile))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// facilityProfileColumns mirrors donorProfileColumns for the facility
// completion fields. The decline verification reason belongs to the admin
// review flow and is managed through SetDeclineReason only.
func facilityProfileColumns(p *models.FacilityProfile) map[string]interface{} {
	return map[string]interface{}{
		"facility_type":     p.FacilityType,
		"organization_name": p.OrganizationName,
		"website":           p.Website,
		"position":          p.Position,
		"city":              p.City,
		"state":             p.State,
		"street_address":    p.StreetAddress,
		"emergency_contact": p.EmergencyContact,

		"hours_of_operation":          p.HoursOfOperation,
		"days_of_operation":           p.DaysOfOperation,
		"blood_donation_services":     p.BloodDonationServices,
		"capacity":                    p.Capacity,
		"special_note_or_requirement": p.SpecialNoteOrRequirement,

		"accreditation_body":   p.AccreditationBody,
		"accreditation_number": p.AccreditationNumber,
		"certificate":          p.Certificate,

		"updated_at": time.Now(),
	}
}

func (r *UserRepositoryImpl) FindDonorProfile(userID string) (*models.DonorProfile, error) {
	var profile models.DonorProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *UserRepositoryImpl) FindFacilityProfile(userID string) (*models.FacilityProfile, error) {
	var profile models.FacilityProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Listing

func (r *UserRepositoryImpl) SearchDonors(criteria DonorFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{}).
		Joins("JOIN donor_profiles ON donor_profiles.user_id = users.id").
		Where("users.role = ?", models.UserRoleDonor).
		Where("users.is_profile_complete = ?", true).
		Where("users.is_account_suspended = ?", false)

	if criteria.Gender != "" {
		query = query.Where("donor_profiles.gender = ?", criteria.Gender)
	}
	if criteria.BloodGroup != "" {
		query = query.Where("donor_profiles.blood_group = ?", criteria.BloodGroup)
	}
	if criteria.City != "" {
		query = query.Where("donor_profiles.city ILIKE ?", criteria.City)
	}
	if criteria.State != "" {
		query = query.Where("donor_profiles.state ILIKE ?", criteria.State)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	var users []models.User
	err := query.Preload("DonorProfile").
		Order("users.created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	return users, total, err
}

func (r *UserRepositoryImpl) FindUnverifiedFacilities(limit, offset int) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{}).
		Where("role = ?", models.UserRoleFacility).
		Where("is_profile_verified = ?", false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := query.Preload("FacilityProfile").
		Order("created_at ASC").Limit(limit).Offset(offset).Find(&users).Error
	return users, total, err
}

func (r *UserRepositoryImpl) Transaction(fn func(tx UserRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&UserRepositoryImpl{db: tx})
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
