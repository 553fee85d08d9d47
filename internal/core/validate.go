// AngelaMos | 2026
// validate.go

package core

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// "8-12 years" or "16+ years"
	ageGroupRe = regexp.MustCompile(`^\d{1,2}(-\d{1,2}|\+) years$`)

	// "4 hours/week", "90 minutes/session", "20 hours/month"
	durationRe = regexp.MustCompile(
		`^\d{1,3} (hours?|minutes?)/(week|session|day|month)$`,
	)

	// "16:00-18:30", 24h clock
	timeRangeRe = regexp.MustCompile(
		`^([01]\d|2[0-3]):[0-5]\d-([01]\d|2[0-3]):[0-5]\d$`,
	)
)

// NewValidator returns a validator with the academy's composite-string
// formats registered. A rule that panics counts as invalid for that field
// only, matching the engine's edge-case policy.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	//nolint:errcheck // registration only fails on empty tag names
	_ = v.RegisterValidation("agegroup", safeMatch(ageGroupRe))
	_ = v.RegisterValidation("programduration", safeMatch(durationRe))
	_ = v.RegisterValidation("timerange", safeMatch(timeRangeRe))

	return v
}

func safeMatch(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) (valid bool) {
		defer func() {
			if recover() != nil {
				valid = false
			}
		}()

		return re.MatchString(fl.Field().String())
	}
}
