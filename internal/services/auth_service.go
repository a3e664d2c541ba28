package services

import (
	"context"
	"errors"

	"bloodlink_backend/internal/auth"
	"bloodlink_backend/internal/eligibility"
	"bloodlink_backend/internal/logger"
	"bloodlink_backend/internal/models"
	"bloodlink_backend/internal/repositories"
	"bloodlink_backend/internal/services/dto"
	"bloodlink_backend/pkg/apperrors"
)

type AuthService interface {
	OnboardDonor(ctx context.Context, req *dto.OnboardDonorRequest) (*dto.AuthResponse, error)
	OnboardFacility(ctx context.Context, req *dto.OnboardFacilityRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	AdminLogin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AuthResponse, error)
	LookUp(ctx context.Context, email string) (*dto.LookUpResponse, error)
	VerifyEmail(ctx context.Context, token string) error
	CompleteDonorProfile(ctx context.Context, userID string, req *dto.CompleteDonorProfileRequest) (*dto.UserDTO, error)
	CompleteFacilityProfile(ctx context.Context, userID string, req *dto.CompleteFacilityProfileRequest) (*dto.UserDTO, error)
}

type AuthServiceImpl struct {
	users         repositories.UserRepository
	tokens        *auth.TokenManager
	notifications NotificationService
}

func NewAuthService(users repositories.UserRepository, tokens *auth.TokenManager, notifications NotificationService) AuthService {
	return &AuthServiceImpl{
		users:         users,
		tokens:        tokens,
		notifications: notifications,
	}
}

// OnboardDonor registers a donor account. The eligibility gate runs before
// the uniqueness check, so a definitively-ineligible registrant is rejected
// without learning whether the address is taken.
func (s *AuthServiceImpl) OnboardDonor(ctx context.Context, req *dto.OnboardDonorRequest) (*dto.AuthResponse, error) {
	age := req.AgeBracket.Normalized()
	weight := req.WeightBracket.Normalized()
	pregnancy := req.PregnancyStatus.Normalized()
	if pregnancy == "" {
		pregnancy = models.PregnancyStatusNotPregnant
	}

	result := eligibility.Evaluate(age, weight, pregnancy)
	if !result.Eligible {
		logger.CtxInfo(ctx, "donor registration rejected by eligibility gate", "reasons", result.Reasons)
		return nil, apperrors.ErrDonorIneligible.Detailed(result.Reasons)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRoleDonor,
		PhoneNumber:  req.PhoneNumber,
		DonorProfile: &models.DonorProfile{
			AgeBracket:      age,
			WeightBracket:   weight,
			PregnancyStatus: pregnancy,
		},
	}

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	s.sendVerificationMail(ctx, user.Email)
	logger.CtxInfo(ctx, "donor registered", "user_id", user.ID)

	return s.issueSession(user)
}

func (s *AuthServiceImpl) OnboardFacility(ctx context.Context, req *dto.OnboardFacilityRequest) (*dto.AuthResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRoleFacility,
		PhoneNumber:  req.PhoneNumber,
		FacilityProfile: &models.FacilityProfile{
			OrganizationName: req.OrganizationName,
		},
	}

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	s.sendVerificationMail(ctx, user.Email)
	logger.CtxInfo(ctx, "facility registered", "user_id", user.ID)

	return s.issueSession(user)
}

func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return s.issueSession(user)
}

// AdminLogin is a separate entry point so the admin panel cannot be reached
// with donor or facility credentials, valid password or not.
func (s *AuthServiceImpl) AdminLogin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AuthResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if user.Role != models.UserRoleAdmin {
		return nil, apperrors.ErrInvalidCredentials
	}
	return s.issueSession(user)
}

func (s *AuthServiceImpl) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		logger.CtxWarn(ctx, "failed login attempt", "user_id", user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}
	if user.IsAccountSuspended {
		return nil, apperrors.ErrAccountSuspended
	}
	return user, nil
}

func (s *AuthServiceImpl) LookUp(ctx context.Context, email string) (*dto.LookUpResponse, error) {
	_, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return &dto.LookUpResponse{Exists: false}, nil
		}
		return nil, apperrors.InternalError(err)
	}
	return &dto.LookUpResponse{Exists: true}, nil
}

// VerifyEmail confirms an address from the mailed token link. Re-verifying
// an already-verified address succeeds silently.
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, token string) error {
	email, err := s.tokens.ParseEmailToken(token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return apperrors.ErrTokenExpired
		}
		return apperrors.ErrInvalidToken
	}

	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	if user.IsEmailVerified {
		return nil
	}
	if err := s.users.MarkEmailVerified(user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "email verified", "user_id", user.ID)
	return nil
}

// CompleteDonorProfile fills in the donor's full profile. Donors are not
// subject to the admin review gate, so completion also marks the profile
// verified.
func (s *AuthServiceImpl) CompleteDonorProfile(ctx context.Context, userID string, req *dto.CompleteDonorProfileRequest) (*dto.UserDTO, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrDonorNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if user.Role != models.UserRoleDonor {
		return nil, apperrors.NewForbiddenError("Only donors can complete a donor profile")
	}

	profile := &models.DonorProfile{
		UserID:        userID,
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		DateOfBirth:   req.DateOfBirth,
		MaritalStatus: req.MaritalStatus,
		Gender:        req.Gender,
		Bio:           req.Bio,
		Occupation:    req.Occupation,
		City:          req.City,
		State:         req.State,
		StreetAddress: req.StreetAddress,
		BloodGroup:    req.BloodGroup,

		SmokingStatus:               req.SmokingStatus,
		AlcoholConsumption:          req.AlcoholConsumption,
		AlcoholConsumptionFrequency: req.AlcoholConsumptionFrequency,
		HistoryOfDrugAbuse:          req.HistoryOfDrugAbuse,
		HighRiskActivities:          req.HighRiskActivities,
		RecentIllnessOrInfection:    req.RecentIllnessOrInfection,
		CurrentMedication:           req.CurrentMedication,
		RecentVaccination:           req.RecentVaccination,
		TransfusionOrTransplant:     req.TransfusionOrTransplant,
		RecentTravelHistory:         req.RecentTravelHistory,
	}
	profile.SetSocialMedia(req.SocialMedia)
	profile.SetDrugAbuseDetails(req.DrugAbuseDetails)
	profile.SetHighRiskActivityDetails(req.HighRiskActivityDetails)
	profile.SetIllnessDetails(req.IllnessDetails)
	profile.SetMedicationDetails(req.MedicationDetails)
	profile.SetVaccinationDetails(req.VaccinationDetails)
	profile.SetTransfusionDetails(req.TransfusionDetails)
	profile.SetTravelDetails(req.TravelDetails)

	if err := s.users.UpdateDonorProfile(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.users.SetProfileFlags(userID, true, true); err != nil {
		return nil, apperrors.InternalError(err)
	}

	updated, err := s.users.FindByID(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "donor profile completed", "user_id", userID)
	out := dto.NewUserDTO(updated)
	return &out, nil
}

// CompleteFacilityProfile fills in the facility's full profile. The profile
// stays unverified until an admin reviews it.
func (s *AuthServiceImpl) CompleteFacilityProfile(ctx context.Context, userID string, req *dto.CompleteFacilityProfileRequest) (*dto.UserDTO, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrFacilityNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if user.Role != models.UserRoleFacility {
		return nil, apperrors.NewForbiddenError("Only facilities can complete a facility profile")
	}

	profile := &models.FacilityProfile{
		UserID:           userID,
		FacilityType:     req.FacilityType,
		OrganizationName: req.OrganizationName,
		Website:          req.Website,
		Position:         req.Position,
		City:             req.City,
		State:            req.State,
		StreetAddress:    req.StreetAddress,
		EmergencyContact: req.EmergencyContact,

		HoursOfOperation:         req.HoursOfOperation,
		DaysOfOperation:          req.DaysOfOperation,
		SpecialNoteOrRequirement: req.SpecialNoteOrRequirement,

		AccreditationBody:   req.AccreditationBody,
		AccreditationNumber: req.AccreditationNumber,
		Certificate:         req.Certificate,
	}
	profile.SetServices(req.BloodDonationServices)
	profile.SetCapacity(req.Capacity)

	if err := s.users.UpdateFacilityProfile(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.users.SetProfileFlags(userID, true, user.IsProfileVerified); err != nil {
		return nil, apperrors.InternalError(err)
	}

	updated, err := s.users.FindByID(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "facility profile completed", "user_id", userID)
	out := dto.NewUserDTO(updated)
	return &out, nil
}

func (s *AuthServiceImpl) issueSession(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{Token: token, User: dto.NewUserDTO(user)}, nil
}

func (s *AuthServiceImpl) sendVerificationMail(ctx context.Context, email string) {
	token, err := s.tokens.GenerateEmailToken(email)
	if err != nil {
		logger.CtxWithError(ctx, "failed to generate email verification token", err)
		return
	}
	s.notifications.SendVerificationEmail(email, token)
}
