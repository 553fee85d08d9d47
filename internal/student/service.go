// AngelaMos | 2026
// service.go

package student

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coverdrive/academy/internal/core"
	"github.com/coverdrive/academy/internal/program"
)

// ProgramEnroller is the slice of the program service students need:
// claiming and releasing seats. Implemented by *program.Service.
type ProgramEnroller interface {
	Enroll(ctx context.Context, programID string) (*program.Program, error)
	Unenroll(ctx context.Context, programID string) (*program.Program, error)
}

type Service struct {
	repo     Repository
	programs ProgramEnroller
	now      func() time.Time
}

func NewService(repo Repository, programs ProgramEnroller) *Service {
	return &Service{
		repo:     repo,
		programs: programs,
		now:      time.Now,
	}
}

func (s *Service) Create(
	ctx context.Context,
	req CreateStudentRequest,
) (*Student, error) {
	st := &Student{
		ID:            uuid.NewString(),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         req.Phone,
		DateOfBirth:   req.DateOfBirth,
		GuardianName:  req.GuardianName,
		GuardianPhone: req.GuardianPhone,
		Address:       req.Address,
		Status:        StatusPending,
		Payments:      PaymentList{},
		JoinedAt:      s.now(),
	}

	// Claim the seat before persisting so a full program rejects the
	// registration outright.
	if req.ProgramID != nil {
		if _, err := s.programs.Enroll(ctx, *req.ProgramID); err != nil {
			if errors.Is(err, program.ErrProgramFull) {
				return nil, core.BadRequestError("Program is full")
			}
			if errors.Is(err, core.ErrNotFound) {
				return nil, core.NotFoundError("program")
			}
			return nil, fmt.Errorf("enroll student: %w", err)
		}
		st.ProgramID = req.ProgramID
		st.Status = StatusActive
	}

	if err := s.repo.Create(ctx, st); err != nil {
		if st.ProgramID != nil {
			// Release the seat; nothing else references it yet.
			//nolint:errcheck // best-effort rollback
			_, _ = s.programs.Unenroll(ctx, *st.ProgramID)
		}
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.DuplicateError("email")
		}
		return nil, err
	}

	return st, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Student, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListStudentsParams,
) (*ListStudentsResponse, error) {
	params.Normalize()

	students, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	responses := make([]StudentResponse, 0, len(students))
	for i := range students {
		responses = append(responses, ToStudentResponse(&students[i]))
	}

	return &ListStudentsResponse{
		Students: responses,
		Total:    total,
		Page:     params.Page,
		PerPage:  params.PerPage,
	}, nil
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateStudentRequest,
) (*Student, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		st.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		st.LastName = *req.LastName
	}
	if req.Email != nil {
		st.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		st.Phone = *req.Phone
	}
	if req.DateOfBirth != nil {
		st.DateOfBirth = *req.DateOfBirth
	}
	if req.GuardianName != nil {
		st.GuardianName = *req.GuardianName
	}
	if req.GuardianPhone != nil {
		st.GuardianPhone = *req.GuardianPhone
	}
	if req.Address != nil {
		st.Address = *req.Address
	}
	if req.Status != nil {
		st.Status = *req.Status
	}

	// An explicit reactivation still yields to payment standing.
	applyPaymentStanding(st)

	if err := s.repo.Update(ctx, st); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.DuplicateError("email")
		}
		return nil, err
	}

	return st, nil
}

// Transfer moves a student between programs, or out of one entirely
// when programID is nil. The new seat is claimed before the old one is
// released so a failed transfer leaves the student where they were.
func (s *Service) Transfer(
	ctx context.Context,
	id string,
	programID *string,
) (*Student, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	samePlace := (st.ProgramID == nil && programID == nil) ||
		(st.ProgramID != nil && programID != nil && *st.ProgramID == *programID)
	if samePlace {
		return st, nil
	}

	if programID != nil {
		if _, err := s.programs.Enroll(ctx, *programID); err != nil {
			if errors.Is(err, program.ErrProgramFull) {
				return nil, core.BadRequestError("Program is full")
			}
			if errors.Is(err, core.ErrNotFound) {
				return nil, core.NotFoundError("program")
			}
			return nil, fmt.Errorf("transfer student: %w", err)
		}
	}

	oldProgram := st.ProgramID
	st.ProgramID = programID

	if err := s.repo.Update(ctx, st); err != nil {
		if programID != nil {
			//nolint:errcheck // best-effort rollback
			_, _ = s.programs.Unenroll(ctx, *programID)
		}
		return nil, err
	}

	if oldProgram != nil {
		//nolint:errcheck // seat release is advisory once the row moved
		_, _ = s.programs.Unenroll(ctx, *oldProgram)
	}

	return st, nil
}

// RecordPayment upserts the payment entry for one billing period and
// re-derives the student's standing.
func (s *Service) RecordPayment(
	ctx context.Context,
	id string,
	req RecordPaymentRequest,
) (*Student, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entry := Payment{
		Period: req.Period,
		Amount: req.Amount,
		Status: req.Status,
	}
	if req.Status == PaymentPaid {
		now := s.now()
		entry.PaidAt = &now
	}

	replaced := false
	for i := range st.Payments {
		if st.Payments[i].Period == entry.Period {
			st.Payments[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		st.Payments = append(st.Payments, entry)
	}

	applyPaymentStanding(st)

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if st.ProgramID != nil {
		//nolint:errcheck // seat release is advisory once the row is gone
		_, _ = s.programs.Unenroll(ctx, *st.ProgramID)
	}

	return nil
}
