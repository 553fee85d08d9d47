// AngelaMos | 2026
// entity.go

package program

import (
	"database/sql/driver"
	"time"

	"github.com/coverdrive/academy/internal/core"
)

const (
	StatusActive    = "active"
	StatusFull      = "full"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

type Program struct {
	ID              string     `db:"id"`
	Title           string     `db:"title"`
	Description     string     `db:"description"`
	AgeGroup        string     `db:"age_group"`
	Duration        string     `db:"duration"`
	Price           float64    `db:"price"`
	MaxStudents     int        `db:"max_students"`
	CurrentStudents int        `db:"current_students"`
	Status          string     `db:"status"`
	Level           string     `db:"level"`
	Category        string     `db:"category"`
	ScheduleDays    DayList    `db:"schedule_days"`
	ScheduleTime    string     `db:"schedule_time"`
	Venue           string     `db:"venue"`
	StartDate       time.Time  `db:"start_date"`
	EndDate         *time.Time `db:"end_date"`
	Discount        *Discount  `db:"discount"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

type Discount struct {
	Type       string     `json:"type"`
	Amount     float64    `json:"value"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
}

func (d *Discount) Scan(src any) error {
	return core.JSONScan(d, src)
}

func (d Discount) Value() (driver.Value, error) {
	return core.JSONValue(d)
}

type DayList []string

func (l DayList) Value() (driver.Value, error) {
	if l == nil {
		return core.JSONValue([]string{})
	}
	return core.JSONValue([]string(l))
}

func (l *DayList) Scan(src any) error {
	return core.JSONScan(l, src)
}

func (p *Program) IsFull() bool {
	return p.CurrentStudents >= p.MaxStudents
}

// OccupancyRate is computed on read and never stored.
func (p *Program) OccupancyRate() float64 {
	if p.MaxStudents == 0 {
		return 0
	}
	return float64(p.CurrentStudents) / float64(p.MaxStudents)
}

// DiscountedPrice applies an active discount, if any.
func (p *Program) DiscountedPrice(now time.Time) float64 {
	if p.Discount == nil {
		return p.Price
	}
	if p.Discount.ValidUntil != nil && p.Discount.ValidUntil.Before(now) {
		return p.Price
	}

	switch p.Discount.Type {
	case DiscountPercentage:
		return p.Price * (1 - p.Discount.Amount/100)
	case DiscountFixed:
		return p.Price - p.Discount.Amount
	default:
		return p.Price
	}
}
