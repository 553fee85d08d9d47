// AngelaMos | 2026
// rules_test.go

package coach

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyRating(t *testing.T) {
	tests := []struct {
		name      string
		ratings   []int
		wantMean  float64
		wantCount int
	}{
		{"no reviews", nil, 0, 0},
		{"single review", []int{4}, 4.0, 1},
		{"rounds to one decimal", []int{5, 4, 4}, 4.3, 3},
		{"rounds half up", []int{4, 5}, 4.5, 2},
		{"two thirds", []int{1, 2, 2}, 1.7, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Coach{}
			for _, r := range tt.ratings {
				c.Reviews = append(c.Reviews, Review{Rating: r})
			}

			applyRating(&c)
			assert.InDelta(t, tt.wantMean, c.Rating, 1e-9)
			assert.Equal(t, tt.wantCount, c.RatingCount)

			// Recomputing without new reviews must not drift.
			applyRating(&c)
			assert.InDelta(t, tt.wantMean, c.Rating, 1e-9)
		})
	}
}

func TestSlotErrors(t *testing.T) {
	t.Run("distinct slots pass", func(t *testing.T) {
		errs := slotErrors([]SlotRequest{
			{Day: "monday", Time: "16:00-18:00"},
			{Day: "monday", Time: "18:00-20:00"},
			{Day: "tuesday", Time: "16:00-18:00"},
		})
		assert.Empty(t, errs)
	})

	t.Run("duplicate slot reported", func(t *testing.T) {
		errs := slotErrors([]SlotRequest{
			{Day: "monday", Time: "16:00-18:00"},
			{Day: "monday", Time: "16:00-18:00"},
		})
		assert.Len(t, errs, 1)
	})
}
