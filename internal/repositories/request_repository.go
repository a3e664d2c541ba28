package repositories

import (
	"errors"
	"time"

	"bloodlink_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrRequestNotFound = errors.New("request not found")
	// ErrRequestClosed is returned when a status transition loses the race
	// against another responder: the row was no longer Pending.
	ErrRequestClosed = errors.New("request already responded to")
)

type RequestRepository interface {
	Create(request *models.DonationRequest) error
	FindByID(id string) (*models.DonationRequest, error)
	ListForDonor(donorID string) ([]models.DonationRequest, error)
	ListForFacility(criteria RequestFilter) ([]models.DonationRequest, int64, error)
	MarkResponded(id string, status models.RequestStatus, rejectionReason *string) (*models.DonationRequest, error)
}

// RequestFilter narrows a facility's outbound request listing.
type RequestFilter struct {
	FacilityID string
	Status     models.RequestStatus
	Page       int
	PageSize   int
}

type RequestRepositoryImpl struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &RequestRepositoryImpl{db: db}
}

func (r *RequestRepositoryImpl) Create(request *models.DonationRequest) error {
	return r.db.Create(request).Error
}

func (r *RequestRepositoryImpl) FindByID(id string) (*models.DonationRequest, error) {
	var request models.DonationRequest
	err := r.db.First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *RequestRepositoryImpl) ListForDonor(donorID string) ([]models.DonationRequest, error) {
	var requests []models.DonationRequest
	err := r.db.Where("sent_to = ?", donorID).
		Order("created_at ASC").Find(&requests).Error
	return requests, err
}

func (r *RequestRepositoryImpl) ListForFacility(criteria RequestFilter) ([]models.DonationRequest, int64, error) {
	query := r.db.Model(&models.DonationRequest{}).Where("sent_by = ?", criteria.FacilityID)
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	var requests []models.DonationRequest
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&requests).Error
	return requests, total, err
}

// MarkResponded closes a pending request with a single compare-and-set
// update. The WHERE clause pins the Pending status, so concurrent
// responses cannot both win: the loser sees zero affected rows.
func (r *RequestRepositoryImpl) MarkResponded(id string, status models.RequestStatus, rejectionReason *string) (*models.DonationRequest, error) {
	now := time.Now()
	columns := map[string]interface{}{
		"status":       status,
		"responded_at": now,
		"updated_at":   now,
	}
	if rejectionReason != nil {
		columns["rejection_reason"] = *rejectionReason
	}

	result := r.db.Model(&models.DonationRequest{}).
		Where("id = ? AND status = ?", id, models.RequestStatusPending).
		Updates(columns)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing row from a lost race.
		if _, err := r.FindByID(id); err != nil {
			return nil, err
		}
		return nil, ErrRequestClosed
	}

	return r.FindByID(id)
}
