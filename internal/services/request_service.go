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

type RequestService interface {
	Create(ctx context.Context, facilityID, donorID string, body *dto.CreateRequestBody) (*dto.RequestDTO, error)
	ListForDonor(ctx context.Context, donorID string) ([]dto.RequestDTO, error)
	ListForFacility(ctx context.Context, facilityID string, status models.RequestStatus, page, pageSize int) (*dto.RequestListResponse, error)
	Accept(ctx context.Context, donorID, requestID string) (*dto.RequestDTO, error)
	Reject(ctx context.Context, donorID, requestID string, body *dto.RejectRequestBody) (*dto.RequestDTO, error)
}

type RequestServiceImpl struct {
	requests      repositories.RequestRepository
	users         repositories.UserRepository
	notifications NotificationService
}

func NewRequestService(requests repositories.RequestRepository, users repositories.UserRepository, notifications NotificationService) RequestService {
	return &RequestServiceImpl{
		requests:      requests,
		users:         users,
		notifications: notifications,
	}
}

// Create opens a Pending request from a facility to a donor. The facility's
// organization name and address are copied onto the request so later profile
// edits do not rewrite request history.
func (s *RequestServiceImpl) Create(ctx context.Context, facilityID, donorID string, body *dto.CreateRequestBody) (*dto.RequestDTO, error) {
	facility, err := s.users.FindByID(facilityID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrFacilityNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if facility.FacilityProfile == nil {
		return nil, apperrors.ErrProfileIncomplete
	}

	donor, err := s.users.FindByID(donorID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrDonorNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if donor.Role != models.UserRoleDonor {
		return nil, apperrors.ErrDonorNotFound
	}

	info := strings.TrimSpace(body.AdditionalInformation)
	if info == "" {
		info = models.DefaultAdditionalInformation
	}

	request := &models.DonationRequest{
		SentBy:                facilityID,
		SentTo:                donorID,
		OrganizationName:      facility.FacilityProfile.OrganizationName,
		OrganizationAddress:   facilityAddress(facility.FacilityProfile),
		AppointmentDate:       body.AppointmentDate,
		AppointmentTime:       body.AppointmentTime,
		BloodGroupRequired:    body.BloodGroupRequired,
		BloodCollectionType:   body.BloodCollectionType,
		AdditionalInformation: info,
		Status:                models.RequestStatusPending,
	}

	if err := s.requests.Create(request); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifications.NotifyRequestCreated(donor, request.OrganizationName)
	logger.CtxInfo(ctx, "donation request created",
		"request_id", request.ID, "facility_id", facilityID, "donor_id", donorID)

	out := dto.NewRequestDTO(request)
	return &out, nil
}

// ListForDonor returns the donor's requests in creation order, each joined
// with the sending facility's current contact details so the donor can reach
// out even after the facility edits its profile.
func (s *RequestServiceImpl) ListForDonor(ctx context.Context, donorID string) ([]dto.RequestDTO, error) {
	requests, err := s.requests.ListForDonor(donorID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := dto.NewRequestDTOs(requests)
	contacts := make(map[string]*dto.FacilityContactDTO)
	for i := range out {
		facilityID := out[i].SentBy
		contact, ok := contacts[facilityID]
		if !ok {
			facility, lookupErr := s.users.FindByID(facilityID)
			if lookupErr != nil {
				logger.CtxWithError(ctx, "facility lookup failed for donor request listing", lookupErr,
					"facility_id", facilityID)
			} else {
				contact = dto.NewFacilityContactDTO(facility)
			}
			contacts[facilityID] = contact
		}
		out[i].Facility = contact
	}
	return out, nil
}

func (s *RequestServiceImpl) ListForFacility(ctx context.Context, facilityID string, status models.RequestStatus, page, pageSize int) (*dto.RequestListResponse, error) {
	requests, total, err := s.requests.ListForFacility(repositories.RequestFilter{
		FacilityID: facilityID,
		Status:     status,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.RequestListResponse{
		Requests: dto.NewRequestDTOs(requests),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Accept moves a pending request to Accepted and notifies both parties.
// The two mails are sent concurrently after the transition is committed.
func (s *RequestServiceImpl) Accept(ctx context.Context, donorID, requestID string) (*dto.RequestDTO, error) {
	updated, err := s.respond(ctx, donorID, requestID, models.RequestStatusAccepted, nil)
	if err != nil {
		return nil, err
	}

	facility, donor, lookupErr := s.lookupParties(updated)
	if lookupErr != nil {
		logger.CtxWithError(ctx, "accepted request saved but party lookup failed, skipping mail", lookupErr,
			"request_id", requestID)
	} else {
		s.notifications.NotifyRequestAccepted(facility, donor, updated)
	}

	logger.CtxInfo(ctx, "donation request accepted", "request_id", requestID, "donor_id", donorID)
	out := dto.NewRequestDTO(updated)
	return &out, nil
}

// Reject moves a pending request to Rejected. The reason is mandatory and
// is persisted with the request.
func (s *RequestServiceImpl) Reject(ctx context.Context, donorID, requestID string, body *dto.RejectRequestBody) (*dto.RequestDTO, error) {
	reason := strings.TrimSpace(body.RejectionReason)
	if reason == "" {
		return nil, apperrors.ErrRejectionReasonEmpty
	}

	updated, err := s.respond(ctx, donorID, requestID, models.RequestStatusRejected, &reason)
	if err != nil {
		return nil, err
	}

	facility, donor, lookupErr := s.lookupParties(updated)
	if lookupErr != nil {
		logger.CtxWithError(ctx, "rejected request saved but party lookup failed, skipping mail", lookupErr,
			"request_id", requestID)
	} else {
		s.notifications.NotifyRequestDeclined(facility, donor, reason)
	}

	logger.CtxInfo(ctx, "donation request rejected", "request_id", requestID, "donor_id", donorID)
	out := dto.NewRequestDTO(updated)
	return &out, nil
}

// respond runs the shared transition checks: the request must exist, the
// responder must be its addressee, and the status swap must win the
// compare-and-set against concurrent responses.
func (s *RequestServiceImpl) respond(ctx context.Context, donorID, requestID string, status models.RequestStatus, reason *string) (*models.DonationRequest, error) {
	request, err := s.requests.FindByID(requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrRequestNotFound) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if request.SentTo != donorID {
		logger.CtxWarn(ctx, "request response from non-addressee",
			"request_id", requestID, "donor_id", donorID)
		return nil, apperrors.ErrRequestNotAddressee
	}
	if request.Status.IsTerminal() {
		return nil, apperrors.ErrRequestAlreadyClosed
	}

	updated, err := s.requests.MarkResponded(requestID, status, reason)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrRequestClosed):
			return nil, apperrors.ErrRequestAlreadyClosed
		case errors.Is(err, repositories.ErrRequestNotFound):
			return nil, apperrors.ErrRequestNotFound
		default:
			return nil, apperrors.InternalError(err)
		}
	}
	return updated, nil
}

func (s *RequestServiceImpl) lookupParties(request *models.DonationRequest) (facility, donor *models.User, err error) {
	facility, err = s.users.FindByID(request.SentBy)
	if err != nil {
		return nil, nil, err
	}
	donor, err = s.users.FindByID(request.SentTo)
	if err != nil {
		return nil, nil, err
	}
	return facility, donor, nil
}

func facilityAddress(p *models.FacilityProfile) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{p.StreetAddress, p.City, p.State} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}
