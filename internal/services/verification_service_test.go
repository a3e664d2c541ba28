package services

import (
	"context"
	"testing"

	"bloodlink_backend/internal/models"
	"bloodlink_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
)

func newVerificationServiceForTest() (VerificationService, *fakeUserRepo, *fakeNotifications) {
	users := newFakeUserRepo()
	notifications := newFakeNotifications()
	return NewVerificationService(users, notifications), users, notifications
}

func seedUnverifiedFacility(users *fakeUserRepo, email string) *models.User {
	return users.put(&models.User{
		Email:             email,
		Role:              models.UserRoleFacility,
		IsProfileComplete: true,
		FacilityProfile: &models.FacilityProfile{
			OrganizationName: "City Clinic",
		},
	})
}

func TestListUnverifiedOmitsVerified(t *testing.T) {
	svc, users, _ := newVerificationServiceForTest()
	pending := seedUnverifiedFacility(users, "pending@example.com")
	verified := seedUnverifiedFacility(users, "done@example.com")
	assert.NoError(t, users.SetProfileFlags(verified.ID, true, true))

	resp, err := svc.ListUnverified(context.Background(), 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, pending.ID, resp.Facilities[0].ID)
}

// The review queue is keyed on the verified flag alone; a facility that has
// not finished its profile still shows up for the admin.
func TestListUnverifiedIncludesIncompleteProfiles(t *testing.T) {
	svc, users, _ := newVerificationServiceForTest()
	incomplete := users.put(&models.User{
		Email: "new@example.com",
		Role:  models.UserRoleFacility,
	})

	resp, err := svc.ListUnverified(context.Background(), 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, incomplete.ID, resp.Facilities[0].ID)
}

func TestVerifyFacility(t *testing.T) {
	svc, users, notifications := newVerificationServiceForTest()
	facility := seedUnverifiedFacility(users, "clinic@example.com")

	out, err := svc.Verify(context.Background(), facility.ID)
	assert.NoError(t, err)
	assert.True(t, out.IsProfileVerified)

	stored, _ := users.FindByID(facility.ID)
	assert.True(t, stored.IsProfileVerified)
	assert.Equal(t, []string{"clinic@example.com"}, notifications.profileVerified)
}

// Verifying twice succeeds but only the first call notifies.
func TestVerifyFacilityIdempotent(t *testing.T) {
	svc, users, notifications := newVerificationServiceForTest()
	facility := seedUnverifiedFacility(users, "clinic@example.com")

	_, err := svc.Verify(context.Background(), facility.ID)
	assert.NoError(t, err)
	out, err := svc.Verify(context.Background(), facility.ID)
	assert.NoError(t, err)
	assert.True(t, out.IsProfileVerified)
	assert.Len(t, notifications.profileVerified, 1)
}

func TestVerifyUnknownFacility(t *testing.T) {
	svc, _, _ := newVerificationServiceForTest()

	_, err := svc.Verify(context.Background(), "missing-id")
	assert.ErrorIs(t, err, apperrors.ErrFacilityNotFound)
}

func TestVerifyRejectsDonorID(t *testing.T) {
	svc, users, _ := newVerificationServiceForTest()
	donor := users.put(&models.User{Email: "donor@example.com", Role: models.UserRoleDonor})

	_, err := svc.Verify(context.Background(), donor.ID)
	assert.ErrorIs(t, err, apperrors.ErrFacilityNotFound)
}

func TestRejectRequiresNonEmptyReason(t *testing.T) {
	svc, users, notifications := newVerificationServiceForTest()
	facility := seedUnverifiedFacility(users, "clinic@example.com")

	_, err := svc.Reject(context.Background(), facility.ID, "  ")
	assert.ErrorIs(t, err, apperrors.ErrRejectionReasonEmpty)
	assert.Empty(t, notifications.profileDeclined)
}

// Unlike Verify, rejection is repeatable: each call overwrites the stored
// reason and notifies the facility again.
func TestRejectIsRepeatableAndOverwritesReason(t *testing.T) {
	svc, users, notifications := newVerificationServiceForTest()
	facility := seedUnverifiedFacility(users, "clinic@example.com")

	_, err := svc.Reject(context.Background(), facility.ID, "certificate missing")
	assert.NoError(t, err)

	_, err = svc.Reject(context.Background(), facility.ID, "accreditation number invalid")
	assert.NoError(t, err)

	stored, _ := users.FindByID(facility.ID)
	assert.False(t, stored.IsProfileVerified)
	assert.Equal(t, "accreditation number invalid", stored.FacilityProfile.DeclineVerificationReason)
	assert.Len(t, notifications.profileDeclined, 2)
}

func TestRejectRevokesVerification(t *testing.T) {
	svc, users, _ := newVerificationServiceForTest()
	facility := seedUnverifiedFacility(users, "clinic@example.com")

	_, err := svc.Verify(context.Background(), facility.ID)
	assert.NoError(t, err)

	_, err = svc.Reject(context.Background(), facility.ID, "expired accreditation")
	assert.NoError(t, err)

	stored, _ := users.FindByID(facility.ID)
	assert.False(t, stored.IsProfileVerified)
}
