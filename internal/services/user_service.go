package services

import (
	"context"
	"errors"

	"bloodlink_backend/internal/repositories"
	"bloodlink_backend/internal/services/dto"
	"bloodlink_backend/pkg/apperrors"
)

type UserService interface {
	SearchDonors(ctx context.Context, query *dto.SearchDonorsQuery) (*dto.DonorListResponse, error)
	GetProfile(ctx context.Context, userID string) (*dto.UserDTO, error)
}

type UserServiceImpl struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) UserService {
	return &UserServiceImpl{users: users}
}

// SearchDonors pages the donor directory for facilities. Only donors with a
// complete profile on an active account are listed.
func (s *UserServiceImpl) SearchDonors(ctx context.Context, query *dto.SearchDonorsQuery) (*dto.DonorListResponse, error) {
	page := query.Page
	if page <= 0 {
		page = 1
	}
	pageSize := query.Limit
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	users, total, err := s.users.SearchDonors(repositories.DonorFilter{
		Gender:     query.Gender,
		BloodGroup: query.BloodGroup,
		City:       query.City,
		State:      query.State,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	donors := make([]dto.DonorDTO, 0, len(users))
	for i := range users {
		donors = append(donors, dto.NewDonorDTO(&users[i]))
	}
	return &dto.DonorListResponse{
		Donors:   donors,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID string) (*dto.UserDTO, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	out := dto.NewUserDTO(user)
	return &out, nil
}
