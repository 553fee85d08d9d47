// AngelaMos | 2026
// service.go

package program

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coverdrive/academy/internal/core"
)

// ErrProgramFull is returned when an enrollment hits a program at
// capacity.
var ErrProgramFull = errors.New("program is full")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) Create(
	ctx context.Context,
	req CreateProgramRequest,
) (*Program, error) {
	if errs := crossFieldErrors(
		req.Price,
		req.StartDate,
		req.EndDate,
		toDiscount(req.Discount),
		true,
		s.now(),
	); len(errs) > 0 {
		return nil, core.ValidationFailedError(errs)
	}

	p := &Program{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Description:     req.Description,
		AgeGroup:        req.AgeGroup,
		Duration:        req.Duration,
		Price:           req.Price,
		MaxStudents:     req.MaxStudents,
		CurrentStudents: 0,
		Level:           req.Level,
		Category:        req.Category,
		ScheduleDays:    DayList(req.ScheduleDays),
		ScheduleTime:    req.ScheduleTime,
		Venue:           req.Venue,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Discount:        toDiscount(req.Discount),
	}
	applyDerivedStatus(p)

	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.DuplicateError("title")
		}
		return nil, fmt.Errorf("create program: %w", err)
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Program, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListProgramsParams,
) (*ListProgramsResponse, error) {
	params.Normalize()

	programs, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	now := s.now()
	responses := make([]ProgramResponse, 0, len(programs))
	for i := range programs {
		responses = append(responses, ToProgramResponse(&programs[i], now))
	}

	return &ListProgramsResponse{
		Programs: responses,
		Total:    total,
		Page:     params.Page,
		PerPage:  params.PerPage,
	}, nil
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateProgramRequest,
) (*Program, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.AgeGroup != nil {
		p.AgeGroup = *req.AgeGroup
	}
	if req.Duration != nil {
		p.Duration = *req.Duration
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.MaxStudents != nil {
		p.MaxStudents = *req.MaxStudents
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	if req.Level != nil {
		p.Level = *req.Level
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.ScheduleDays != nil {
		p.ScheduleDays = DayList(req.ScheduleDays)
	}
	if req.ScheduleTime != nil {
		p.ScheduleTime = *req.ScheduleTime
	}
	if req.StartDate != nil {
		p.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		p.EndDate = req.EndDate
	}
	if req.Venue != nil {
		p.Venue = *req.Venue
	}
	if req.Discount != nil {
		p.Discount = toDiscount(req.Discount)
	}

	errs := crossFieldErrors(
		p.Price,
		p.StartDate,
		p.EndDate,
		p.Discount,
		false,
		s.now(),
	)
	if p.MaxStudents < p.CurrentStudents {
		errs = append(
			errs,
			"max_students must not be below current enrollment",
		)
	}
	if len(errs) > 0 {
		return nil, core.ValidationFailedError(errs)
	}

	// Capacity or administrative status may have changed; recompute
	// before persisting so the stored status never contradicts occupancy.
	applyDerivedStatus(p)

	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.DuplicateError("title")
		}
		return nil, err
	}

	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Enroll claims one seat. Translates the repository guard failure into
// ErrProgramFull for the API layer.
func (s *Service) Enroll(ctx context.Context, id string) (*Program, error) {
	p, err := s.repo.Enroll(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNoCapacity) {
			return nil, ErrProgramFull
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) Unenroll(ctx context.Context, id string) (*Program, error) {
	return s.repo.Unenroll(ctx, id)
}

func (s *Service) ToResponse(p *Program) ProgramResponse {
	return ToProgramResponse(p, s.now())
}

func toDiscount(req *DiscountRequest) *Discount {
	if req == nil {
		return nil
	}
	return &Discount{
		Type:       req.Type,
		Amount:     req.Value,
		ValidUntil: req.ValidUntil,
	}
}
