// AngelaMos | 2026
// validate_test.go

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type formatProbe struct {
	AgeGroup  string `validate:"omitempty,agegroup"`
	Duration  string `validate:"omitempty,programduration"`
	TimeRange string `validate:"omitempty,timerange"`
}

func TestAgeGroupFormat(t *testing.T) {
	v := NewValidator()

	valid := []string{"8-12 years", "5-7 years", "16+ years", "18+ years"}
	for _, s := range valid {
		assert.NoError(t, v.Struct(formatProbe{AgeGroup: s}), s)
	}

	invalid := []string{
		"8-12",
		"8 - 12 years",
		"years 8-12",
		"8-12 Years",
		"8+12 years",
		"eight-twelve years",
		"123-456 years",
	}
	for _, s := range invalid {
		assert.Error(t, v.Struct(formatProbe{AgeGroup: s}), s)
	}
}

func TestProgramDurationFormat(t *testing.T) {
	v := NewValidator()

	valid := []string{
		"4 hours/week",
		"1 hour/week",
		"90 minutes/session",
		"1 minute/day",
		"20 hours/month",
	}
	for _, s := range valid {
		assert.NoError(t, v.Struct(formatProbe{Duration: s}), s)
	}

	invalid := []string{
		"4 hours per week",
		"4hours/week",
		"4 hours/year",
		"four hours/week",
		"4 days/week",
	}
	for _, s := range invalid {
		assert.Error(t, v.Struct(formatProbe{Duration: s}), s)
	}
}

func TestTimeRangeFormat(t *testing.T) {
	v := NewValidator()

	valid := []string{"16:00-18:00", "06:30-08:45", "00:00-23:59"}
	for _, s := range valid {
		assert.NoError(t, v.Struct(formatProbe{TimeRange: s}), s)
	}

	invalid := []string{
		"24:00-25:00",
		"16:00 - 18:00",
		"4pm-6pm",
		"16:60-18:00",
		"16:00",
	}
	for _, s := range invalid {
		assert.Error(t, v.Struct(formatProbe{TimeRange: s}), s)
	}
}

func TestFormatValidationErrorsReportsAllFields(t *testing.T) {
	v := NewValidator()

	err := v.Struct(formatProbe{
		AgeGroup:  "whenever",
		Duration:  "a lot",
		TimeRange: "sometime",
	})
	require.Error(t, err)

	details := FormatValidationErrors(err)
	assert.Len(t, details, 3)
}
