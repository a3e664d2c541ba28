package services

import (
	"context"
	"testing"
	"time"

	"bloodlink_backend/internal/models"
	"bloodlink_backend/internal/services/dto"
	"bloodlink_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
)

func seedFacilityAndDonor(users *fakeUserRepo) (facility, donor *models.User) {
	facility = users.put(&models.User{
		Email:             "clinic@example.com",
		Role:              models.UserRoleFacility,
		PhoneNumber:       "+111",
		IsProfileComplete: true,
		IsProfileVerified: true,
		FacilityProfile: &models.FacilityProfile{
			OrganizationName: "City Clinic",
			StreetAddress:    "12 Main St",
			City:             "Lagos",
			State:            "Lagos",
		},
	})
	donor = users.put(&models.User{
		Email:             "donor@example.com",
		Role:              models.UserRoleDonor,
		IsProfileComplete: true,
		IsProfileVerified: true,
		DonorProfile: &models.DonorProfile{
			FirstName:  "Ada",
			LastName:   "Obi",
			BloodGroup: "O-",
		},
	})
	return facility, donor
}

func newRequestServiceForTest() (RequestService, *fakeUserRepo, *fakeRequestRepo, *fakeNotifications) {
	users := newFakeUserRepo()
	requests := newFakeRequestRepo()
	notifications := newFakeNotifications()
	return NewRequestService(requests, users, notifications), users, requests, notifications
}

func TestCreateRequestSnapshotsOrganization(t *testing.T) {
	svc, users, _, notifications := newRequestServiceForTest()
	facility, donor := seedFacilityAndDonor(users)

	created, err := svc.Create(context.Background(), facility.ID, donor.ID, &dto.CreateRequestBody{
		AppointmentDate:     "2026-09-20",
		AppointmentTime:     "10:00",
		BloodGroupRequired:  "O-",
		BloodCollectionType: "whole-blood",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, created.Status)
	assert.Equal(t, "City Clinic", created.OrganizationName)
	assert.Equal(t, "12 Main St, Lagos, Lagos", created.OrganizationAddress)
	assert.Equal(t, models.DefaultAdditionalInformation, created.AdditionalInformation)
	assert.Equal(t, []string{"donor@example.com"}, notifications.requestCreated)

	// Later profile edits must not rewrite request history.
	facility.FacilityProfile.OrganizationName = "Renamed Clinic"
	fetched, err := svc.ListForDonor(context.Background(), donor.ID)
	assert.NoError(t, err)
	assert.Equal(t, "City Clinic", fetched[0].OrganizationName)
}

// The donor's inbox lists requests oldest first and joins each with the
// sending facility's current contact details, not the creation snapshot.
func TestListForDonorCreationOrderWithFacilityContact(t *testing.T) {
	svc, users, requests, _ := newRequestServiceForTest()
	facility, donor := seedFacilityAndDonor(users)

	newer := &models.DonationRequest{
		BaseModel: models.BaseModel{CreatedAt: time.Now()},
		SentBy:    facility.ID,
		SentTo:    donor.ID,
	}
	older := &models.DonationRequest{
		BaseModel: models.BaseModel{CreatedAt: time.Now().Add(-time.Hour)},
		SentBy:    facility.ID,
		SentTo:    donor.ID,
	}
	assert.NoError(t, requests.Create(newer))
	assert.NoError(t, requests.Create(older))

	listed, err := svc.ListForDonor(context.Background(), donor.ID)
	assert.NoError(t, err)
	if assert.Len(t, listed, 2) {
		assert.Equal(t, older.ID, listed[0].ID)
		assert.Equal(t, newer.ID, listed[1].ID)
	}
	for _, item := range listed {
		if assert.NotNil(t, item.Facility) {
			assert.Equal(t, "City Clinic", item.Facility.OrganizationName)
			assert.Equal(t, "clinic@example.com", item.Facility.Email)
			assert.Equal(t, "+111", item.Facility.PhoneNumber)
		}
	}

	// Contact details follow the profile; the request snapshot does not.
	facility.FacilityProfile.OrganizationName = "Renamed Clinic"
	listed, err = svc.ListForDonor(context.Background(), donor.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Renamed Clinic", listed[0].Facility.OrganizationName)
}

func TestCreateRequestUnknownDonor(t *testing.T) {
	svc, users, _, _ := newRequestServiceForTest()
	facility, _ := seedFacilityAndDonor(users)

	_, err := svc.Create(context.Background(), facility.ID, "missing-id", &dto.CreateRequestBody{
		AppointmentDate:     "2026-09-20",
		AppointmentTime:     "10:00",
		BloodGroupRequired:  "O-",
		BloodCollectionType: "plasma",
	})
	assert.ErrorIs(t, err, apperrors.ErrDonorNotFound)
}

func TestAcceptRequestNotifiesBothParties(t *testing.T) {
	svc, users, requests, notifications := newRequestServiceForTest()
	facility, donor := seedFacilityAndDonor(users)

	request := &models.DonationRequest{
		SentBy:           facility.ID,
		SentTo:           donor.ID,
		OrganizationName: "City Clinic",
		AppointmentDate:  "2026-09-20",
		AppointmentTime:  "10:00",
	}
	assert.NoError(t, requests.Create(request))

	accepted, err := svc.Accept(context.Background(), donor.ID, request.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.RequestStatusAccepted, accepted.Status)
	assert.NotNil(t, accepted.RespondedAt)
	assert.Nil(t, accepted.RejectionReason)

	// One mail to the facility, one to the donor.
	assert.Equal(t, []string{"clinic@example.com", "donor@example.com"}, notifications.accepted)
}

func TestAcceptRequestOwnershipCheck(t *testing.T) {
	svc, users, requests, _ := newRequestServiceForTest()
	facility, donor := seedFacilityAndDonor(users)
	other := users.put(&models.User{Email: "other@example.com", Role: models.UserRoleDonor})

	request := &models.DonationRequest{SentBy: facility.ID, SentTo: donor.ID}
	assert.NoError(t, requests.Create(request))

	_, err := svc.Accept(context.Background(), other.ID, request.ID)
	assert.ErrorIs(t, err, apperrors.ErrRequestNotAddressee)

	// The request stays pending for the real addressee.
	stored, _ := requests.FindByID(request.ID)
	assert.Equal(t, models.RequestStatusPending, stored.Status)
}

func TestAcceptRequestNotFound(t *testing.T) {
	svc, users, _, _ := newRequestServiceForTest()
	_, donor := seedFacilityAndDonor(users)

	_, err := svc.Accept(context.Background(), donor.ID, "missing-id")
	assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)
}

func TestTerminalStateIsFinal(t *testing.T) {
	svc, users, requests, _ := newRequestServiceForTest()
	facility, donor := seedFacilityAndDonor(users)

	request := &models.DonationRequest{SentBy: facility.ID, SentTo: donor.ID}
	assert.NoError(t, requests.Create(request))

	_, err := svc.Accept(context.Background(), donor.ID, request.ID)
	assert.NoError(t, err)

	_, err = svc.Accept(context.Background(), donor.ID, request.ID)
	assert.ErrorIs(t, err, apperrors.ErrRequestAlreadyClosed)

	_, err = svc.Reject(context.Background(), donor.ID, request.ID, &dto.RejectRequestBody{RejectionReason: "too late"})
	assert.ErrorIs(t, err, apperrors.ErrRequestAlreadyClosed)
}

func TestRejectRequiresReason(t *testing.T) {
	svc, users, requests, notifications := newRequestServiceForTest()
	facility, donor := seedFacilityAndDonor(users)

	request := &models.DonationRequest{SentBy: facility.ID, SentTo: donor.ID}
	assert.NoError(t, requests.Create(request))

	_, err := svc.Reject(context.Background(), donor.ID, request.ID, &dto.RejectRequestBody{RejectionReason: "   "})
	assert.ErrorIs(t, err, apperrors.ErrRejectionReasonEmpty)

	// A blank reason must not consume the pending state.
	stored, _ := requests.FindByID(request.ID)
	assert.Equal(t, models.RequestStatusPending, stored.Status)
	assert.Empty(t, notifications.declined)
}

func TestRejectPersistsReasonAndNotifiesFacility(t *testing.T) {
	svc, users, requests, notifications := newRequestServiceForTest()
	facility, donor := seedFacilityAndDonor(users)

	request := &models.DonationRequest{SentBy: facility.ID, SentTo: donor.ID}
	assert.NoError(t, requests.Create(request))

	rejected, err := svc.Reject(context.Background(), donor.ID, request.ID, &dto.RejectRequestBody{
		RejectionReason: "recovering from surgery",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.RequestStatusRejected, rejected.Status)
	assert.NotNil(t, rejected.RespondedAt)
	if assert.NotNil(t, rejected.RejectionReason) {
		assert.Equal(t, "recovering from surgery", *rejected.RejectionReason)
	}
	assert.Equal(t, []string{"clinic@example.com"}, notifications.declined)
}

func TestListForFacilityFiltersByStatus(t *testing.T) {
	svc, users, requests, _ := newRequestServiceForTest()
	facility, donor := seedFacilityAndDonor(users)

	pending := &models.DonationRequest{SentBy: facility.ID, SentTo: donor.ID}
	accepted := &models.DonationRequest{SentBy: facility.ID, SentTo: donor.ID}
	assert.NoError(t, requests.Create(pending))
	assert.NoError(t, requests.Create(accepted))
	_, err := svc.Accept(context.Background(), donor.ID, accepted.ID)
	assert.NoError(t, err)

	all, err := svc.ListForFacility(context.Background(), facility.ID, "", 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)

	onlyPending, err := svc.ListForFacility(context.Background(), facility.ID, models.RequestStatusPending, 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), onlyPending.Total)
	assert.Equal(t, pending.ID, onlyPending.Requests[0].ID)
}
