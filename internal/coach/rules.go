// AngelaMos | 2026
// rules.go

package coach

import "math"

// applyRating recomputes the aggregate rating from the review log.
// The mean is rounded to one decimal place; a coach with no reviews
// carries a zero rating. Idempotent.
func applyRating(c *Coach) {
	c.RatingCount = len(c.Reviews)
	if c.RatingCount == 0 {
		c.Rating = 0
		return
	}

	sum := 0
	for _, r := range c.Reviews {
		sum += r.Rating
	}

	mean := float64(sum) / float64(c.RatingCount)
	c.Rating = math.Round(mean*10) / 10
}
