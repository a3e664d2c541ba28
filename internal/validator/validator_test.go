package validator

import (
	"testing"

	"bloodlink_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

type bracketPayload struct {
	AgeBracket      models.AgeBracket      `json:"ageBracket" validate:"required,is-age-bracket"`
	WeightBracket   models.WeightBracket   `json:"weightBracket" validate:"required,is-weight-bracket"`
	PregnancyStatus models.PregnancyStatus `json:"pregnancyStatus" validate:"omitempty,is-pregnancy-status"`
	BloodGroup      string                 `json:"bloodGroup" validate:"omitempty,is-blood-group"`
	CollectionType  string                 `json:"collectionType" validate:"omitempty,is-collection-type"`
}

func TestValidateAcceptsKnownBrackets(t *testing.T) {
	v := New()

	err := v.Validate(&bracketPayload{
		AgeBracket:      models.AgeBracket18To30,
		WeightBracket:   models.WeightBracket50To70,
		PregnancyStatus: models.PregnancyStatusNotPregnant,
		BloodGroup:      "O-",
		CollectionType:  "whole-blood",
	})
	assert.NoError(t, err)
}

func TestValidateRejectsUnknownAgeBracket(t *testing.T) {
	v := New()

	err := v.Validate(&bracketPayload{
		AgeBracket:    "18 to 30",
		WeightBracket: models.WeightBracket50To70,
	})
	assert.Error(t, err)

	vErr, ok := err.(*ValidationError)
	assert.True(t, ok)
	assert.Contains(t, vErr.Errors, "ageBracket")
}

func TestValidateRejectsUnknownBloodGroup(t *testing.T) {
	v := New()

	err := v.Validate(&bracketPayload{
		AgeBracket:    models.AgeBracket31To45,
		WeightBracket: models.WeightBracket71To90,
		BloodGroup:    "C+",
	})
	assert.Error(t, err)

	vErr, ok := err.(*ValidationError)
	assert.True(t, ok)
	assert.Contains(t, vErr.Errors, "bloodGroup")
}

func TestValidateUsesJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&bracketPayload{WeightBracket: models.WeightBracket50To70})
	vErr, ok := err.(*ValidationError)
	assert.True(t, ok)
	assert.Contains(t, vErr.Errors, "ageBracket")
	assert.NotContains(t, vErr.Errors, "AgeBracket")
}
