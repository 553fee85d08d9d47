// AngelaMos | 2026
// service_test.go

package program

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverdrive/academy/internal/core"
)

type fakeRepo struct {
	programs map[string]*Program
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{programs: make(map[string]*Program)}
}

func (f *fakeRepo) Create(_ context.Context, p *Program) error {
	for _, existing := range f.programs {
		if existing.Title == p.Title {
			return fmt.Errorf("create program: %w", core.ErrDuplicateKey)
		}
	}
	cp := *p
	f.programs[p.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Program, error) {
	p, ok := f.programs[id]
	if !ok {
		return nil, fmt.Errorf("get program: %w", core.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) Update(_ context.Context, p *Program) error {
	if _, ok := f.programs[p.ID]; !ok {
		return fmt.Errorf("update program: %w", core.ErrNotFound)
	}
	cp := *p
	f.programs[p.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.programs[id]; !ok {
		return fmt.Errorf("delete program: %w", core.ErrNotFound)
	}
	delete(f.programs, id)
	return nil
}

func (f *fakeRepo) List(
	_ context.Context,
	_ ListProgramsParams,
) ([]Program, int, error) {
	out := make([]Program, 0, len(f.programs))
	for _, p := range f.programs {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Enroll(_ context.Context, id string) (*Program, error) {
	p, ok := f.programs[id]
	if !ok {
		return nil, fmt.Errorf("get program: %w", core.ErrNotFound)
	}
	if p.CurrentStudents >= p.MaxStudents ||
		p.Status == StatusInactive || p.Status == StatusSuspended {
		return nil, fmt.Errorf("enroll: %w", ErrNoCapacity)
	}
	p.CurrentStudents++
	if p.CurrentStudents >= p.MaxStudents {
		p.Status = StatusFull
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) Unenroll(_ context.Context, id string) (*Program, error) {
	p, ok := f.programs[id]
	if !ok || p.CurrentStudents == 0 {
		return nil, fmt.Errorf("unenroll: %w", core.ErrNotFound)
	}
	p.CurrentStudents--
	if p.Status == StatusFull && p.CurrentStudents < p.MaxStudents {
		p.Status = StatusActive
	}
	cp := *p
	return &cp, nil
}

func testService(repo Repository) *Service {
	s := NewService(repo)
	s.now = func() time.Time {
		return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func validCreateRequest() CreateProgramRequest {
	return CreateProgramRequest{
		Title:        "Junior Batting Camp",
		Description:  "Technique and footwork drills for juniors.",
		AgeGroup:     "8-12 years",
		Duration:     "3 hours/week",
		Price:        5000,
		MaxStudents:  2,
		Level:        "beginner",
		Category:     "junior",
		ScheduleDays: []string{"monday", "wednesday"},
		ScheduleTime: "16:00-18:00",
		Venue:        "Main Ground",
		StartDate:    time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestServiceCreate(t *testing.T) {
	svc := testService(newFakeRepo())

	p, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, StatusActive, p.Status)
	assert.Zero(t, p.CurrentStudents)
}

func TestServiceCreateDuplicateTitle(t *testing.T) {
	svc := testService(newFakeRepo())

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validCreateRequest())
	require.Error(t, err)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "DUPLICATE_KEY", appErr.Code)
}

func TestServiceCreateRejectsPastStart(t *testing.T) {
	svc := testService(newFakeRepo())

	req := validCreateRequest()
	req.StartDate = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, core.IsAppError(err))
}

func TestServiceEnrollUntilFull(t *testing.T) {
	svc := testService(newFakeRepo())
	ctx := context.Background()

	p, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	p, err = svc.Enroll(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, p.CurrentStudents)
	assert.Equal(t, StatusActive, p.Status)

	p, err = svc.Enroll(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, p.CurrentStudents)
	assert.Equal(t, StatusFull, p.Status)

	_, err = svc.Enroll(ctx, p.ID)
	assert.ErrorIs(t, err, ErrProgramFull)
}

func TestServiceUnenrollReopensProgram(t *testing.T) {
	svc := testService(newFakeRepo())
	ctx := context.Background()

	p, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Enroll(ctx, p.ID)
	require.NoError(t, err)
	p, err = svc.Enroll(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, StatusFull, p.Status)

	p, err = svc.Unenroll(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, p.CurrentStudents)
	assert.Equal(t, StatusActive, p.Status)
}

func TestServiceEnrollSuspendedProgram(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo)
	ctx := context.Background()

	p, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	suspended := StatusSuspended
	_, err = svc.Update(ctx, p.ID, UpdateProgramRequest{Status: &suspended})
	require.NoError(t, err)

	_, err = svc.Enroll(ctx, p.ID)
	assert.ErrorIs(t, err, ErrProgramFull)
}

func TestServiceUpdateRecomputesStatus(t *testing.T) {
	svc := testService(newFakeRepo())
	ctx := context.Background()

	p, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Enroll(ctx, p.ID)
	require.NoError(t, err)
	p, err = svc.Enroll(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, StatusFull, p.Status)

	// Raising capacity should reopen the program.
	bigger := 10
	p, err = svc.Update(ctx, p.ID, UpdateProgramRequest{MaxStudents: &bigger})
	require.NoError(t, err)
	assert.Equal(t, StatusActive, p.Status)
}

func TestServiceUpdateRejectsCapacityBelowEnrollment(t *testing.T) {
	svc := testService(newFakeRepo())
	ctx := context.Background()

	p, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Enroll(ctx, p.ID)
	require.NoError(t, err)
	_, err = svc.Enroll(ctx, p.ID)
	require.NoError(t, err)

	smaller := 1
	_, err = svc.Update(ctx, p.ID, UpdateProgramRequest{
		MaxStudents: &smaller,
	})
	require.Error(t, err)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}
