package services

import (
	"context"
	"testing"

	"bloodlink_backend/internal/models"
	"bloodlink_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
)

func seedDonor(users *fakeUserRepo, email, gender, bloodGroup, city string, complete bool) *models.User {
	return users.put(&models.User{
		Email:             email,
		Role:              models.UserRoleDonor,
		IsProfileComplete: complete,
		DonorProfile: &models.DonorProfile{
			FirstName:  "Test",
			Gender:     gender,
			BloodGroup: bloodGroup,
			City:       city,
			State:      "Lagos",
		},
	})
}

func TestSearchDonorsFilters(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)

	seedDonor(users, "a@example.com", "female", "O-", "Lagos", true)
	seedDonor(users, "b@example.com", "male", "O-", "Lagos", true)
	seedDonor(users, "c@example.com", "female", "A+", "Abuja", true)

	resp, err := svc.SearchDonors(context.Background(), &dto.SearchDonorsQuery{BloodGroup: "O-"})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)

	resp, err = svc.SearchDonors(context.Background(), &dto.SearchDonorsQuery{Gender: "female", City: "Lagos"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, "a@example.com", resp.Donors[0].Email)
}

func TestSearchDonorsOmitsIncompleteAndSuspended(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)

	seedDonor(users, "visible@example.com", "female", "O-", "Lagos", true)
	seedDonor(users, "incomplete@example.com", "female", "O-", "Lagos", false)
	suspended := seedDonor(users, "suspended@example.com", "female", "O-", "Lagos", true)
	assert.NoError(t, users.mutate(suspended.ID, func(u *models.User) { u.IsAccountSuspended = true }))

	resp, err := svc.SearchDonors(context.Background(), &dto.SearchDonorsQuery{})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, "visible@example.com", resp.Donors[0].Email)
}

// The directory projection exposes profile details, never account flags.
func TestDonorDTOShape(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)
	seedDonor(users, "a@example.com", "female", "O-", "Lagos", true)

	resp, err := svc.SearchDonors(context.Background(), &dto.SearchDonorsQuery{})
	assert.NoError(t, err)
	donor := resp.Donors[0]
	assert.Equal(t, "O-", donor.BloodGroup)
	assert.Equal(t, "Lagos", donor.City)
	assert.NotEmpty(t, donor.ID)
}

func TestSearchDonorsPaginationDefaults(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)

	for i := 0; i < 25; i++ {
		seedDonor(users, string(rune('a'+i))+"@example.com", "male", "B+", "Lagos", true)
	}

	resp, err := svc.SearchDonors(context.Background(), &dto.SearchDonorsQuery{})
	assert.NoError(t, err)
	assert.Equal(t, int64(25), resp.Total)
	assert.Len(t, resp.Donors, 20)
	assert.Equal(t, 1, resp.Page)

	resp, err = svc.SearchDonors(context.Background(), &dto.SearchDonorsQuery{Page: 2})
	assert.NoError(t, err)
	assert.Len(t, resp.Donors, 5)
}
