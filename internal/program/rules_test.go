// AngelaMos | 2026
// rules_test.go

package program

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDerivedStatus(t *testing.T) {
	tests := []struct {
		name    string
		program Program
		want    string
	}{
		{
			name:    "at capacity becomes full",
			program: Program{Status: StatusActive, CurrentStudents: 25, MaxStudents: 25},
			want:    StatusFull,
		},
		{
			name:    "over capacity stays full",
			program: Program{Status: StatusFull, CurrentStudents: 26, MaxStudents: 25},
			want:    StatusFull,
		},
		{
			name:    "below capacity demotes full to active",
			program: Program{Status: StatusFull, CurrentStudents: 24, MaxStudents: 25},
			want:    StatusActive,
		},
		{
			name:    "inactive never overridden by occupancy",
			program: Program{Status: StatusInactive, CurrentStudents: 25, MaxStudents: 25},
			want:    StatusInactive,
		},
		{
			name:    "suspended never overridden by occupancy",
			program: Program{Status: StatusSuspended, CurrentStudents: 0, MaxStudents: 25},
			want:    StatusSuspended,
		},
		{
			name:    "empty status resolves to active",
			program: Program{CurrentStudents: 0, MaxStudents: 25},
			want:    StatusActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			applyDerivedStatus(&tt.program)
			assert.Equal(t, tt.want, tt.program.Status)

			// Applying twice must not change the outcome.
			applyDerivedStatus(&tt.program)
			assert.Equal(t, tt.want, tt.program.Status)
		})
	}
}

func TestOccupancyRate(t *testing.T) {
	p := Program{CurrentStudents: 10, MaxStudents: 25}
	assert.InDelta(t, 0.4, p.OccupancyRate(), 1e-9)

	empty := Program{CurrentStudents: 0, MaxStudents: 0}
	assert.Zero(t, empty.OccupancyRate())
}

func TestCrossFieldErrors(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 1, 0)
	past := now.AddDate(0, -1, 0)

	t.Run("valid request has no errors", func(t *testing.T) {
		end := future.AddDate(0, 3, 0)
		errs := crossFieldErrors(
			5000,
			future,
			&end,
			&Discount{Type: DiscountPercentage, Amount: 15},
			true,
			now,
		)
		assert.Empty(t, errs)
	})

	t.Run("past start date rejected on create", func(t *testing.T) {
		errs := crossFieldErrors(5000, past, nil, nil, true, now)
		assert.Contains(t, errs, "start_date must not be in the past")
	})

	t.Run("past start date allowed on update", func(t *testing.T) {
		errs := crossFieldErrors(5000, past, nil, nil, false, now)
		assert.Empty(t, errs)
	})

	t.Run("end date must follow start date", func(t *testing.T) {
		errs := crossFieldErrors(5000, future, &past, nil, true, now)
		assert.Contains(t, errs, "end_date must be after start_date")
	})

	t.Run("percentage discount over 100 rejected", func(t *testing.T) {
		errs := crossFieldErrors(
			5000,
			future,
			nil,
			&Discount{Type: DiscountPercentage, Amount: 120},
			true,
			now,
		)
		assert.Len(t, errs, 1)
	})

	t.Run("fixed discount above price rejected", func(t *testing.T) {
		errs := crossFieldErrors(
			5000,
			future,
			nil,
			&Discount{Type: DiscountFixed, Amount: 6000},
			true,
			now,
		)
		assert.Len(t, errs, 1)
	})

	t.Run("all violations reported together", func(t *testing.T) {
		errs := crossFieldErrors(
			5000,
			past,
			&past,
			&Discount{Type: "bogus", Amount: 10},
			true,
			now,
		)
		assert.Len(t, errs, 3)
	})
}

func TestDiscountedPrice(t *testing.T) {
	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	expired := now.AddDate(0, 0, -1)

	tests := []struct {
		name     string
		discount *Discount
		want     float64
	}{
		{"no discount", nil, 5000},
		{
			"percentage",
			&Discount{Type: DiscountPercentage, Amount: 20},
			4000,
		},
		{
			"fixed",
			&Discount{Type: DiscountFixed, Amount: 500},
			4500,
		},
		{
			"expired discount ignored",
			&Discount{Type: DiscountFixed, Amount: 500, ValidUntil: &expired},
			5000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Program{Price: 5000, Discount: tt.discount}
			assert.InDelta(t, tt.want, p.DiscountedPrice(now), 1e-9)
		})
	}
}

func TestDiscountColumnRoundTrip(t *testing.T) {
	until := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	d := Discount{Type: DiscountPercentage, Amount: 15, ValidUntil: &until}

	raw, err := d.Value()
	require.NoError(t, err)
	assert.Contains(t, string(raw.([]byte)), `"value":15`)

	var got Discount
	require.NoError(t, got.Scan(raw))
	assert.Equal(t, d, got)
}
