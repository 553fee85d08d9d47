// AngelaMos | 2026
// service.go

package coach

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coverdrive/academy/internal/core"
)

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
	req CreateCoachRequest,
) (*Coach, error) {
	if errs := slotErrors(req.Availability); len(errs) > 0 {
		return nil, core.ValidationFailedError(errs)
	}

	c := &Coach{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:           req.Phone,
		Bio:             req.Bio,
		Specializations: StringList(req.Specializations),
		Certifications:  StringList(req.Certifications),
		ExperienceYears: req.ExperienceYears,
		Availability:    toSlots(req.Availability),
		Employment:      req.Employment,
		Reviews:         ReviewList{},
	}
	applyRating(c)

	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.DuplicateError("email")
		}
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Coach, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListCoachesParams,
) (*ListCoachesResponse, error) {
	params.Normalize()

	coaches, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	responses := make([]CoachResponse, 0, len(coaches))
	for i := range coaches {
		responses = append(responses, ToCoachResponse(&coaches[i]))
	}

	return &ListCoachesResponse{
		Coaches: responses,
		Total:   total,
		Page:    params.Page,
		PerPage: params.PerPage,
	}, nil
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateCoachRequest,
) (*Coach, error) {
	if errs := slotErrors(req.Availability); len(errs) > 0 {
		return nil, core.ValidationFailedError(errs)
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Email != nil {
		c.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Bio != nil {
		c.Bio = *req.Bio
	}
	if req.Specializations != nil {
		c.Specializations = StringList(req.Specializations)
	}
	if req.Certifications != nil {
		c.Certifications = StringList(req.Certifications)
	}
	if req.ExperienceYears != nil {
		c.ExperienceYears = *req.ExperienceYears
	}
	if req.Availability != nil {
		c.Availability = toSlots(req.Availability)
	}
	if req.Employment != nil {
		c.Employment = *req.Employment
	}

	if err := s.repo.Update(ctx, c); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.DuplicateError("email")
		}
		return nil, err
	}

	return c, nil
}

// AddReview appends a review and recomputes the aggregate rating.
func (s *Service) AddReview(
	ctx context.Context,
	id string,
	req AddReviewRequest,
) (*Coach, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Reviews = append(c.Reviews, Review{
		ID:        uuid.NewString(),
		Rating:    req.Rating,
		Comment:   req.Comment,
		Author:    req.Author,
		CreatedAt: s.now(),
	})
	applyRating(c)

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// slotErrors checks for duplicate availability windows; slot shape is
// covered by field tags.
func slotErrors(slots []SlotRequest) []string {
	seen := make(map[string]struct{}, len(slots))
	var errs []string

	for _, slot := range slots {
		key := slot.Day + " " + slot.Time
		if _, dup := seen[key]; dup {
			errs = append(
				errs,
				"availability has duplicate slot: "+key,
			)
			continue
		}
		seen[key] = struct{}{}
	}

	return errs
}

func toSlots(reqs []SlotRequest) SlotList {
	slots := make(SlotList, 0, len(reqs))
	for _, r := range reqs {
		slots = append(slots, Slot{Day: r.Day, Time: r.Time})
	}
	return slots
}
