// AngelaMos | 2026
// service.go

package contact

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
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

// Create records a public enquiry. Every enquiry starts low/new and is
// triaged from its own content.
func (s *Service) Create(
	ctx context.Context,
	req CreateContactRequest,
) (*Contact, error) {
	c := &Contact{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
		Category:  req.Category,
		Priority:  PriorityLow,
		Status:    StatusNew,
		Responses: ResponseList{},
	}
	applyTriage(c, s.now())

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Contact, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListContactsParams,
) (*ListContactsResponse, error) {
	params.Normalize()

	contacts, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	responses := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		responses = append(responses, ToContactResponse(&contacts[i]))
	}

	return &ListContactsResponse{
		Contacts: responses,
		Total:    total,
		Page:     params.Page,
		PerPage:  params.PerPage,
	}, nil
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateContactRequest,
) (*Contact, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		c.Status = *req.Status
	}
	if req.Priority != nil {
		c.Priority = *req.Priority
	}
	if req.FollowUpDate != nil {
		c.FollowUpDate = req.FollowUpDate
	}

	// Staff can raise priority freely; triage only enforces the floor.
	applyTriage(c, s.now())

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Respond appends a reply to the enquiry thread. The first external
// response moves a new enquiry to in-progress; internal notes do not.
func (s *Service) Respond(
	ctx context.Context,
	id string,
	responderID string,
	req RespondRequest,
) (*Contact, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Responses = append(c.Responses, Response{
		ID:          uuid.NewString(),
		ResponderID: responderID,
		Message:     req.Message,
		Internal:    req.Internal,
		CreatedAt:   s.now(),
	})

	applyTriage(c, s.now())

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Archive(ctx context.Context, id string) error {
	return s.repo.SetArchived(ctx, id, true)
}

func (s *Service) Unarchive(ctx context.Context, id string) error {
	return s.repo.SetArchived(ctx, id, false)
}
