// AngelaMos | 2026
// entity.go

package coach

import (
	"database/sql/driver"
	"time"

	"github.com/coverdrive/academy/internal/core"
)

const (
	EmploymentActive   = "active"
	EmploymentInactive = "inactive"
	EmploymentOnLeave  = "on-leave"
)

type Coach struct {
	ID              string     `db:"id"`
	Name            string     `db:"name"`
	Email           string     `db:"email"`
	Phone           string     `db:"phone"`
	Bio             string     `db:"bio"`
	Specializations StringList `db:"specializations"`
	Certifications  StringList `db:"certifications"`
	ExperienceYears int        `db:"experience_years"`
	Availability    SlotList   `db:"availability"`
	Employment      string     `db:"employment"`
	Reviews         ReviewList `db:"reviews"`
	Rating          float64    `db:"rating"`
	RatingCount     int        `db:"rating_count"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

// Slot is one recurring weekly availability window.
type Slot struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

type Review struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return core.JSONValue([]string{})
	}
	return core.JSONValue([]string(l))
}

func (l *StringList) Scan(src any) error {
	return core.JSONScan(l, src)
}

type SlotList []Slot

func (l SlotList) Value() (driver.Value, error) {
	if l == nil {
		return core.JSONValue([]Slot{})
	}
	return core.JSONValue([]Slot(l))
}

func (l *SlotList) Scan(src any) error {
	return core.JSONScan(l, src)
}

type ReviewList []Review

func (l ReviewList) Value() (driver.Value, error) {
	if l == nil {
		return core.JSONValue([]Review{})
	}
	return core.JSONValue([]Review(l))
}

func (l *ReviewList) Scan(src any) error {
	return core.JSONScan(l, src)
}
