// AngelaMos | 2026
// dto.go

package coach

import "time"

type SlotRequest struct {
	Day  string `json:"day"  validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Time string `json:"time" validate:"required,timerange"`
}

type CreateCoachRequest struct {
	Name            string        `json:"name"             validate:"required,min=2,max=100"`
	Email           string        `json:"email"            validate:"required,email,max=255"`
	Phone           string        `json:"phone"            validate:"required,min=7,max=20"`
	Bio             string        `json:"bio"              validate:"omitempty,max=2000"`
	Specializations []string      `json:"specializations"  validate:"required,min=1,dive,oneof=batting bowling fielding wicket-keeping fitness strategy"`
	Certifications  []string      `json:"certifications"   validate:"omitempty,dive,min=2,max=200"`
	ExperienceYears int           `json:"experience_years" validate:"gte=0,lte=60"`
	Availability    []SlotRequest `json:"availability"     validate:"omitempty,dive"`
	Employment      string        `json:"employment"       validate:"required,oneof=active on-leave"`
}

type UpdateCoachRequest struct {
	Name            *string       `json:"name"             validate:"omitempty,min=2,max=100"`
	Email           *string       `json:"email"            validate:"omitempty,email,max=255"`
	Phone           *string       `json:"phone"            validate:"omitempty,min=7,max=20"`
	Bio             *string       `json:"bio"              validate:"omitempty,max=2000"`
	Specializations []string      `json:"specializations"  validate:"omitempty,min=1,dive,oneof=batting bowling fielding wicket-keeping fitness strategy"`
	Certifications  []string      `json:"certifications"   validate:"omitempty,dive,min=2,max=200"`
	ExperienceYears *int          `json:"experience_years" validate:"omitempty,gte=0,lte=60"`
	Availability    []SlotRequest `json:"availability"     validate:"omitempty,dive"`
	Employment      *string       `json:"employment"       validate:"omitempty,oneof=active inactive on-leave"`
}

type AddReviewRequest struct {
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=1000"`
	Author  string `json:"author"  validate:"omitempty,max=100"`
}

type CoachResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Bio             string     `json:"bio,omitempty"`
	Specializations StringList `json:"specializations"`
	Certifications  StringList `json:"certifications"`
	ExperienceYears int        `json:"experience_years"`
	Availability    SlotList   `json:"availability"`
	Employment      string     `json:"employment"`
	Rating          float64    `json:"rating"`
	RatingCount     int        `json:"rating_count"`
	Reviews         ReviewList `json:"reviews"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type ListCoachesParams struct {
	Specialization string `json:"specialization"`
	Employment     string `json:"employment"`
	Page           int    `json:"page"`
	PerPage        int    `json:"per_page"`
}

func (p *ListCoachesParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 || p.PerPage > 100 {
		p.PerPage = 20
	}
}

func (p *ListCoachesParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

type ListCoachesResponse struct {
	Coaches []CoachResponse `json:"coaches"`
	Total   int             `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
}

func ToCoachResponse(c *Coach) CoachResponse {
	specs := c.Specializations
	if specs == nil {
		specs = StringList{}
	}
	certs := c.Certifications
	if certs == nil {
		certs = StringList{}
	}
	avail := c.Availability
	if avail == nil {
		avail = SlotList{}
	}
	reviews := c.Reviews
	if reviews == nil {
		reviews = ReviewList{}
	}

	return CoachResponse{
		ID:              c.ID,
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		Bio:             c.Bio,
		Specializations: specs,
		Certifications:  certs,
		ExperienceYears: c.ExperienceYears,
		Availability:    avail,
		Employment:      c.Employment,
		Rating:          c.Rating,
		RatingCount:     c.RatingCount,
		Reviews:         reviews,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
