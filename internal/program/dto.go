// AngelaMos | 2026
// dto.go

package program

import "time"

type DiscountRequest struct {
	Type       string     `json:"type"        validate:"required,oneof=percentage fixed"`
	Value      float64    `json:"value"       validate:"required,gt=0"`
	ValidUntil *time.Time `json:"valid_until" validate:"omitempty"`
}

type CreateProgramRequest struct {
	Title        string           `json:"title"         validate:"required,min=3,max=120"`
	Description  string           `json:"description"   validate:"required,min=10,max=2000"`
	AgeGroup     string           `json:"age_group"     validate:"required,agegroup"`
	Duration     string           `json:"duration"      validate:"required,programduration"`
	Price        float64          `json:"price"         validate:"gte=0"`
	MaxStudents  int              `json:"max_students"  validate:"required,min=1,max=500"`
	Level        string           `json:"level"         validate:"required,oneof=beginner intermediate advanced elite"`
	Category     string           `json:"category"      validate:"required,oneof=junior senior women specialized"`
	ScheduleDays []string         `json:"schedule_days" validate:"required,min=1,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	ScheduleTime string           `json:"schedule_time" validate:"required,timerange"`
	Venue        string           `json:"venue"         validate:"required,min=2,max=200"`
	StartDate    time.Time        `json:"start_date"    validate:"required"`
	EndDate      *time.Time       `json:"end_date"`
	Discount     *DiscountRequest `json:"discount"`
}

type UpdateProgramRequest struct {
	Title        *string          `json:"title"         validate:"omitempty,min=3,max=120"`
	Description  *string          `json:"description"   validate:"omitempty,min=10,max=2000"`
	AgeGroup     *string          `json:"age_group"     validate:"omitempty,agegroup"`
	Duration     *string          `json:"duration"      validate:"omitempty,programduration"`
	Price        *float64         `json:"price"         validate:"omitempty,gte=0"`
	MaxStudents  *int             `json:"max_students"  validate:"omitempty,min=1,max=500"`
	Status       *string          `json:"status"        validate:"omitempty,oneof=active inactive suspended"`
	Level        *string          `json:"level"         validate:"omitempty,oneof=beginner intermediate advanced elite"`
	Category     *string          `json:"category"      validate:"omitempty,oneof=junior senior women specialized"`
	ScheduleDays []string         `json:"schedule_days" validate:"omitempty,min=1,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	ScheduleTime *string          `json:"schedule_time" validate:"omitempty,timerange"`
	Venue        *string          `json:"venue"         validate:"omitempty,min=2,max=200"`
	StartDate    *time.Time       `json:"start_date"`
	EndDate      *time.Time       `json:"end_date"`
	Discount     *DiscountRequest `json:"discount"`
}

type ProgramResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	AgeGroup        string     `json:"age_group"`
	Duration        string     `json:"duration"`
	Price           float64    `json:"price"`
	DiscountedPrice float64    `json:"discounted_price"`
	MaxStudents     int        `json:"max_students"`
	CurrentStudents int        `json:"current_students"`
	OccupancyRate   float64    `json:"occupancy_rate"`
	Status          string     `json:"status"`
	Level           string     `json:"level"`
	Category        string     `json:"category"`
	ScheduleDays    []string   `json:"schedule_days"`
	ScheduleTime    string     `json:"schedule_time"`
	Venue           string     `json:"venue"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	Discount        *Discount  `json:"discount,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type ListProgramsParams struct {
	Status   string `json:"status"`
	Category string `json:"category"`
	Level    string `json:"level"`
	Page     int    `json:"page"`
	PerPage  int    `json:"per_page"`
}

func (p *ListProgramsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 || p.PerPage > 100 {
		p.PerPage = 20
	}
}

func (p *ListProgramsParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

type ListProgramsResponse struct {
	Programs []ProgramResponse `json:"programs"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PerPage  int               `json:"per_page"`
}

func ToProgramResponse(p *Program, now time.Time) ProgramResponse {
	return ProgramResponse{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		AgeGroup:        p.AgeGroup,
		Duration:        p.Duration,
		Price:           p.Price,
		DiscountedPrice: p.DiscountedPrice(now),
		MaxStudents:     p.MaxStudents,
		CurrentStudents: p.CurrentStudents,
		OccupancyRate:   p.OccupancyRate(),
		Status:          p.Status,
		Level:           p.Level,
		Category:        p.Category,
		ScheduleDays:    p.ScheduleDays,
		ScheduleTime:    p.ScheduleTime,
		Venue:           p.Venue,
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		Discount:        p.Discount,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
