// AngelaMos | 2026
// entity.go

package student

import (
	"database/sql/driver"
	"time"

	"github.com/coverdrive/academy/internal/core"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusPending  = "pending"
)

const (
	PaymentPaid    = "paid"
	PaymentPending = "pending"
	PaymentOverdue = "overdue"
)

type Student struct {
	ID            string      `db:"id"`
	FirstName     string      `db:"first_name"`
	LastName      string      `db:"last_name"`
	Email         string      `db:"email"`
	Phone         string      `db:"phone"`
	DateOfBirth   time.Time   `db:"date_of_birth"`
	GuardianName  string      `db:"guardian_name"`
	GuardianPhone string      `db:"guardian_phone"`
	Address       string      `db:"address"`
	ProgramID     *string     `db:"program_id"`
	Status        string      `db:"status"`
	Payments      PaymentList `db:"payments"`
	JoinedAt      time.Time   `db:"joined_at"`
	CreatedAt     time.Time   `db:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at"`
}

// Payment is one billing period's record, stored as jsonb alongside the
// student rather than in its own table.
type Payment struct {
	Period string     `json:"period"`
	Amount float64    `json:"amount"`
	Status string     `json:"status"`
	PaidAt *time.Time `json:"paid_at,omitempty"`
}

type PaymentList []Payment

func (l PaymentList) Value() (driver.Value, error) {
	if l == nil {
		return core.JSONValue([]Payment{})
	}
	return core.JSONValue([]Payment(l))
}

func (l *PaymentList) Scan(src any) error {
	return core.JSONScan(l, src)
}

func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

func (s *Student) OverdueCount() int {
	n := 0
	for _, p := range s.Payments {
		if p.Status == PaymentOverdue {
			n++
		}
	}
	return n
}
