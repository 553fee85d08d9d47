// AngelaMos | 2026
// entity.go

package contact

import (
	"database/sql/driver"
	"time"

	"github.com/coverdrive/academy/internal/core"
)

const (
	StatusNew        = "new"
	StatusInProgress = "in-progress"
	StatusResolved   = "resolved"
	StatusClosed     = "closed"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

const (
	CategoryInquiry    = "inquiry"
	CategoryEnrollment = "enrollment"
	CategoryComplaint  = "complaint"
	CategorySuggestion = "suggestion"
	CategoryOther      = "other"
)

type Contact struct {
	ID           string       `db:"id"`
	Name         string       `db:"name"`
	Email        string       `db:"email"`
	Phone        string       `db:"phone"`
	Subject      string       `db:"subject"`
	Message      string       `db:"message"`
	Category     string       `db:"category"`
	Priority     string       `db:"priority"`
	Status       string       `db:"status"`
	Tags         TagList      `db:"tags"`
	Responses    ResponseList `db:"responses"`
	FollowUpDate *time.Time   `db:"follow_up_date"`
	IsArchived   bool         `db:"is_archived"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

// Response is one reply on the enquiry thread. Internal notes never
// advance the enquiry's status.
type Response struct {
	ID          string    `json:"id"`
	ResponderID string    `json:"responder_id"`
	Message     string    `json:"message"`
	Internal    bool      `json:"internal"`
	CreatedAt   time.Time `json:"created_at"`
}

type ResponseList []Response

func (l ResponseList) Value() (driver.Value, error) {
	if l == nil {
		return core.JSONValue([]Response{})
	}
	return core.JSONValue([]Response(l))
}

func (l *ResponseList) Scan(src any) error {
	return core.JSONScan(l, src)
}

type TagList []string

func (l TagList) Value() (driver.Value, error) {
	if l == nil {
		return core.JSONValue([]string{})
	}
	return core.JSONValue([]string(l))
}

func (l *TagList) Scan(src any) error {
	return core.JSONScan(l, src)
}

func (c *Contact) HasExternalResponse() bool {
	for _, r := range c.Responses {
		if !r.Internal {
			return true
		}
	}
	return false
}
