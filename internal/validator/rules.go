package validator

import (
	"log"
	"strings"

	"bloodlink_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the domain validation tags. Empty values pass;
// 'required' handles presence separately.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// The application must not start with a broken rule set.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-age-bracket", validateAgeBracket)
	mustRegister("is-weight-bracket", validateWeightBracket)
	mustRegister("is-pregnancy-status", validatePregnancyStatus)
	mustRegister("is-blood-group", validateBloodGroup)
	mustRegister("is-collection-type", validateCollectionType)
	mustRegister("is-request-status", validateRequestStatus)
}

func validateAgeBracket(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.AgeBracket(strings.ToLower(value)) {
	case models.AgeBracketMinor, models.AgeBracket18To30, models.AgeBracket31To45, models.AgeBracket46Plus:
		return true
	default:
		return false
	}
}

func validateWeightBracket(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.WeightBracket(strings.ToLower(value)) {
	case models.WeightBracketUnder50, models.WeightBracket50To70, models.WeightBracket71To90, models.WeightBracket90Plus:
		return true
	default:
		return false
	}
}

func validatePregnancyStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.PregnancyStatus(strings.ToLower(value)) {
	case models.PregnancyStatusPregnant, models.PregnancyStatusNotPregnant:
		return true
	default:
		return false
	}
}

func validateBloodGroup(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch strings.ToUpper(value) {
	case "A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-":
		return true
	default:
		return false
	}
}

func validateCollectionType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch strings.ToLower(value) {
	case "whole-blood", "plasma", "platelets", "double-red-cells":
		return true
	default:
		return false
	}
}

func validateRequestStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.RequestStatus(value) {
	case models.RequestStatusPending, models.RequestStatusAccepted, models.RequestStatusRejected:
		return true
	default:
		return false
	}
}
