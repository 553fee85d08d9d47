// AngelaMos | 2026
// dto.go

package student

import "time"

type CreateStudentRequest struct {
	FirstName     string    `json:"first_name"     validate:"required,min=2,max=50"`
	LastName      string    `json:"last_name"      validate:"required,min=2,max=50"`
	Email         string    `json:"email"          validate:"required,email,max=255"`
	Phone         string    `json:"phone"          validate:"required,min=7,max=20"`
	DateOfBirth   time.Time `json:"date_of_birth"  validate:"required"`
	GuardianName  string    `json:"guardian_name"  validate:"required,min=2,max=100"`
	GuardianPhone string    `json:"guardian_phone" validate:"required,min=7,max=20"`
	Address       string    `json:"address"        validate:"required,min=5,max=500"`
	ProgramID     *string   `json:"program_id"     validate:"omitempty,uuid"`
}

type UpdateStudentRequest struct {
	FirstName     *string    `json:"first_name"     validate:"omitempty,min=2,max=50"`
	LastName      *string    `json:"last_name"      validate:"omitempty,min=2,max=50"`
	Email         *string    `json:"email"          validate:"omitempty,email,max=255"`
	Phone         *string    `json:"phone"          validate:"omitempty,min=7,max=20"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	GuardianName  *string    `json:"guardian_name"  validate:"omitempty,min=2,max=100"`
	GuardianPhone *string    `json:"guardian_phone" validate:"omitempty,min=7,max=20"`
	Address       *string    `json:"address"        validate:"omitempty,min=5,max=500"`
	Status        *string    `json:"status"         validate:"omitempty,oneof=active inactive pending"`
}

type RecordPaymentRequest struct {
	Period string  `json:"period" validate:"required,len=7"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Status string  `json:"status" validate:"required,oneof=paid pending overdue"`
}

type TransferRequest struct {
	ProgramID *string `json:"program_id" validate:"omitempty,uuid"`
}

type StudentResponse struct {
	ID            string      `json:"id"`
	FirstName     string      `json:"first_name"`
	LastName      string      `json:"last_name"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	DateOfBirth   time.Time   `json:"date_of_birth"`
	GuardianName  string      `json:"guardian_name"`
	GuardianPhone string      `json:"guardian_phone"`
	Address       string      `json:"address"`
	ProgramID     *string     `json:"program_id,omitempty"`
	Status        string      `json:"status"`
	Payments      PaymentList `json:"payments"`
	OverdueCount  int         `json:"overdue_count"`
	JoinedAt      time.Time   `json:"joined_at"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type ListStudentsParams struct {
	Status    string `json:"status"`
	ProgramID string `json:"program_id"`
	Search    string `json:"search"`
	Page      int    `json:"page"`
	PerPage   int    `json:"per_page"`
}

func (p *ListStudentsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 || p.PerPage > 100 {
		p.PerPage = 20
	}
}

func (p *ListStudentsParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

type ListStudentsResponse struct {
	Students []StudentResponse `json:"students"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PerPage  int               `json:"per_page"`
}

func ToStudentResponse(s *Student) StudentResponse {
	payments := s.Payments
	if payments == nil {
		payments = PaymentList{}
	}

	return StudentResponse{
		ID:            s.ID,
		FirstName:     s.FirstName,
		LastName:      s.LastName,
		Email:         s.Email,
		Phone:         s.Phone,
		DateOfBirth:   s.DateOfBirth,
		GuardianName:  s.GuardianName,
		GuardianPhone: s.GuardianPhone,
		Address:       s.Address,
		ProgramID:     s.ProgramID,
		Status:        s.Status,
		Payments:      payments,
		OverdueCount:  s.OverdueCount(),
		JoinedAt:      s.JoinedAt,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
