package repositories

import (
	"errors"
	"fmt"
	"testing"

	"bloodlink_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// Re-completing a profile must be able to flip a questionnaire boolean back
// to false or blank a string, so every completion-managed column has to be
// present in the update even when its value is the zero value.
func TestDonorProfileColumnsIncludeZeroValues(t *testing.T) {
	profile := &models.DonorProfile{
		UserID:             "donor-1",
		FirstName:          "Ada",
		HistoryOfDrugAbuse: false,
		RecentVaccination:  false,
		Bio:                "",
	}

	columns := donorProfileColumns(profile)

	assert.Equal(t, false, columns["history_of_drug_abuse"])
	assert.Equal(t, false, columns["recent_vaccination"])
	assert.Equal(t, "", columns["bio"])
	assert.Equal(t, "Ada", columns["first_name"])
}

// The eligibility brackets are set at onboarding and are not part of the
// completion payload; row identity columns never move either.
func TestDonorProfileColumnsLeaveBracketsAndIdentityAlone(t *testing.T) {
	columns := donorProfileColumns(&models.DonorProfile{UserID: "donor-1"})

	for _, column := range []string{"age_bracket", "weight_bracket", "pregnancy_status", "id", "user_id", "created_at"} {
		assert.NotContains(t, columns, column)
	}
}

func TestFacilityProfileColumnsIncludeZeroValues(t *testing.T) {
	profile := &models.FacilityProfile{
		UserID:           "facility-1",
		OrganizationName: "City Blood Bank",
		Website:          "",
	}

	columns := facilityProfileColumns(profile)

	assert.Equal(t, "", columns["website"])
	assert.Equal(t, "City Blood Bank", columns["organization_name"])
}

// The decline reason is owned by the admin review flow; profile completion
// must not be able to clear it.
func TestFacilityProfileColumnsExcludeDeclineReason(t *testing.T) {
	columns := facilityProfileColumns(&models.FacilityProfile{UserID: "facility-1"})

	for _, column := range []string{"decline_verification_reason", "id", "user_id", "created_at"} {
		assert.NotContains(t, columns, column)
	}
}

// Concurrent registrations can both pass the pre-insert lookup; the unique
// email index rejects the loser, which must surface as the duplicate error
// rather than an internal failure.
func TestMapCreateErrorTranslatesDuplicateKey(t *testing.T) {
	err := fmt.Errorf("insert users: %w", gorm.ErrDuplicatedKey)
	assert.ErrorIs(t, mapCreateError(err), ErrUserAlreadyExists)
}

func TestMapCreateErrorPassesThroughOtherErrors(t *testing.T) {
	sentinel := errors.New("connection reset")
	assert.ErrorIs(t, mapCreateError(sentinel), sentinel)
	assert.NoError(t, mapCreateError(nil))
}
