// AngelaMos | 2026
// rules.go

package program

import "time"

// applyDerivedStatus recomputes the occupancy-driven status in place.
// "full" and "active" flip with occupancy; "inactive" and "suspended"
// are administrative and never overridden here. Idempotent.
func applyDerivedStatus(p *Program) {
	switch p.Status {
	case StatusInactive, StatusSuspended:
		return
	}

	if p.CurrentStudents >= p.MaxStudents {
		p.Status = StatusFull
		return
	}

	p.Status = StatusActive
}

// crossFieldErrors checks the rules that single-field validator tags
// cannot express. Returns one message per violation so a bad request
// reports everything wrong at once.
func crossFieldErrors(
	price float64,
	startDate time.Time,
	endDate *time.Time,
	discount *Discount,
	isCreate bool,
	now time.Time,
) []string {
	var errs []string

	if isCreate && startDate.Before(now.Truncate(24*time.Hour)) {
		errs = append(errs, "start_date must not be in the past")
	}

	if endDate != nil && !endDate.After(startDate) {
		errs = append(errs, "end_date must be after start_date")
	}

	if discount != nil {
		switch discount.Type {
		case DiscountPercentage:
			if discount.Amount <= 0 || discount.Amount > 100 {
				errs = append(
					errs,
					"discount.value must be between 0 and 100 for percentage discounts",
				)
			}
		case DiscountFixed:
			if discount.Amount <= 0 {
				errs = append(errs, "discount.value must be positive")
			} else if discount.Amount > price {
				errs = append(
					errs,
					"discount.value must not exceed price for fixed discounts",
				)
			}
		default:
			errs = append(
				errs,
				"discount.type must be one of: percentage, fixed",
			)
		}
	}

	return errs
}
