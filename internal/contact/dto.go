// AngelaMos | 2026
// dto.go

package contact

import "time"

// CreateContactRequest is the public enquiry form. Priority is not
// accepted from the public; it starts low and triage escalates it.
type CreateContactRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Phone    string `json:"phone"    validate:"omitempty,min=7,max=20"`
	Subject  string `json:"subject"  validate:"required,min=3,max=200"`
	Message  string `json:"message"  validate:"required,min=10,max=5000"`
	Category string `json:"category" validate:"required,oneof=inquiry enrollment complaint suggestion other"`
}

type UpdateContactRequest struct {
	Status       *string    `json:"status"         validate:"omitempty,oneof=new in-progress resolved closed"`
	Priority     *string    `json:"priority"       validate:"omitempty,oneof=low medium high urgent"`
	FollowUpDate *time.Time `json:"follow_up_date"`
}

type RespondRequest struct {
	Message  string `json:"message" validate:"required,min=1,max=5000"`
	Internal bool   `json:"internal"`
}

type ContactResponse struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone,omitempty"`
	Subject      string       `json:"subject"`
	Message      string       `json:"message"`
	Category     string       `json:"category"`
	Priority     string       `json:"priority"`
	Status       string       `json:"status"`
	Tags         TagList      `json:"tags"`
	Responses    ResponseList `json:"responses"`
	FollowUpDate *time.Time   `json:"follow_up_date,omitempty"`
	IsArchived   bool         `json:"is_archived"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type ListContactsParams struct {
	Status          string `json:"status"`
	Category        string `json:"category"`
	Priority        string `json:"priority"`
	IncludeArchived bool   `json:"include_archived"`
	Page            int    `json:"page"`
	PerPage         int    `json:"per_page"`
}

func (p *ListContactsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 || p.PerPage > 100 {
		p.PerPage = 20
	}
}

func (p *ListContactsParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

type ListContactsResponse struct {
	Contacts []ContactResponse `json:"contacts"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PerPage  int               `json:"per_page"`
}

func ToContactResponse(c *Contact) ContactResponse {
	tags := c.Tags
	if tags == nil {
		tags = TagList{}
	}
	responses := c.Responses
	if responses == nil {
		responses = ResponseList{}
	}

	return ContactResponse{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Subject:      c.Subject,
		Message:      c.Message,
		Category:     c.Category,
		Priority:     c.Priority,
		Status:       c.Status,
		Tags:         tags,
		Responses:    responses,
		FollowUpDate: c.FollowUpDate,
		IsArchived:   c.IsArchived,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
