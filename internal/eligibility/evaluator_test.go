package eligibility

import (
	"testing"

	"bloodlink_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateEligibleDonor(t *testing.T) {
	result := Evaluate(models.AgeBracket18To30, models.WeightBracket50To70, models.PregnancyStatusNotPregnant)

	assert.True(t, result.Eligible)
	assert.Empty(t, result.Reasons)
}

func TestEvaluateSingleDisqualifiers(t *testing.T) {
	tests := []struct {
		name      string
		age       models.AgeBracket
		weight    models.WeightBracket
		pregnancy models.PregnancyStatus
	}{
		{"minor", models.AgeBracketMinor, models.WeightBracket71To90, models.PregnancyStatusNotPregnant},
		{"underweight", models.AgeBracket31To45, models.WeightBracketUnder50, models.PregnancyStatusNotPregnant},
		{"pregnant", models.AgeBracket18To30, models.WeightBracket50To70, models.PregnancyStatusPregnant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(tt.age, tt.weight, tt.pregnancy)
			assert.False(t, result.Eligible)
			assert.Len(t, result.Reasons, 1)
		})
	}
}

func TestEvaluateAccumulatesAllReasons(t *testing.T) {
	result := Evaluate(models.AgeBracketMinor, models.WeightBracketUnder50, models.PregnancyStatusPregnant)

	assert.False(t, result.Eligible)
	assert.Len(t, result.Reasons, 3)
}

func TestEvaluateHighestBracketsAreEligible(t *testing.T) {
	result := Evaluate(models.AgeBracket46Plus, models.WeightBracket90Plus, models.PregnancyStatusNotPregnant)

	assert.True(t, result.Eligible)
}
