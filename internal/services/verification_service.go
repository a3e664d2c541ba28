package services

import (
	"context"
	"errors"
	"strings"

	"bloodlink_backend/internal/logger"
	"bloodlink_backend/internal/models"
	"bloodlink_backend/internal/repositories"
	"bloodlink_backend/internal/services/dto"
	"bloodlink_backend/pkg/apperrors"
)

// VerificationService is the admin review workflow over facility profiles.
type VerificationService interface {
	ListUnverified(ctx context.Context, page, pageSize int) (*dto.FacilityListResponse, error)
	Verify(ctx context.Context, facilityID string) (*dto.UserDTO, error)
	Reject(ctx context.Context, facilityID, reason string) (*dto.UserDTO, error)
}

type VerificationServiceImpl struct {
	users         repositories.UserRepository
	notifications NotificationService
}

func NewVerificationService(users repositories.UserRepository, notifications NotificationService) VerificationService {
	return &VerificationServiceImpl{
		users:         users,
		notifications: notifications,
	}
}

func (s *VerificationServiceImpl) ListUnverified(ctx context.Context, page, pageSize int) (*dto.FacilityListResponse, error) {
	offset := (page - 1) * pageSize
	facilities, total, err := s.users.FindUnverifiedFacilities(pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.UserDTO, 0, len(facilities))
	for i := range facilities {
		out = append(out, dto.NewUserDTO(&facilities[i]))
	}
	return &dto.FacilityListResponse{
		Facilities: out,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// Verify marks a facility profile verified. Re-verifying an already-verified
// facility succeeds without a second notification.
func (s *VerificationServiceImpl) Verify(ctx context.Context, facilityID string) (*dto.UserDTO, error) {
	facility, err := s.findFacility(facilityID)
	if err != nil {
		return nil, err
	}

	if !facility.IsProfileVerified {
		if err := s.users.SetProfileFlags(facilityID, facility.IsProfileComplete, true); err != nil {
			return nil, apperrors.InternalError(err)
		}
		facility.IsProfileVerified = true
		s.notifications.NotifyProfileVerified(facility)
		logger.CtxInfo(ctx, "facility verified", "facility_id", facilityID)
	}

	out := dto.NewUserDTO(facility)
	return &out, nil
}

// Reject declines a facility's verification with a mandatory reason. Unlike
// Verify, rejection is repeatable: each call overwrites the stored reason
// and notifies the facility again.
func (s *VerificationServiceImpl) Reject(ctx context.Context, facilityID, reason string) (*dto.UserDTO, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.ErrRejectionReasonEmpty
	}

	facility, err := s.findFacility(facilityID)
	if err != nil {
		return nil, err
	}

	if err := s.users.SetDeclineReason(facilityID, reason); err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrFacilityNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if err := s.users.SetProfileFlags(facilityID, facility.IsProfileComplete, false); err != nil {
		return nil, apperrors.InternalError(err)
	}
	facility.IsProfileVerified = false
	if facility.FacilityProfile != nil {
		facility.FacilityProfile.DeclineVerificationReason = reason
	}

	s.notifications.NotifyProfileDeclined(facility, reason)
	logger.CtxInfo(ctx, "facility verification rejected", "facility_id", facilityID)

	out := dto.NewUserDTO(facility)
	return &out, nil
}

func (s *VerificationServiceImpl) findFacility(facilityID string) (*models.User, error) {
	facility, err := s.users.FindByID(facilityID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrFacilityNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if facility.Role != models.UserRoleFacility {
		return nil, apperrors.ErrFacilityNotFound
	}
	return facility, nil
}
