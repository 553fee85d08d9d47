// AngelaMos | 2026
// service_test.go

package student

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverdrive/academy/internal/core"
	"github.com/coverdrive/academy/internal/program"
)

type fakeRepo struct {
	students map[string]*Student
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{students: make(map[string]*Student)}
}

func (f *fakeRepo) Create(_ context.Context, s *Student) error {
	for _, existing := range f.students {
		if existing.Email == s.Email {
			return fmt.Errorf("create student: %w", core.ErrDuplicateKey)
		}
	}
	cp := *s
	f.students[s.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, fmt.Errorf("get student: %w", core.ErrNotFound)
	}
	cp := *s
	cp.Payments = append(PaymentList{}, s.Payments...)
	return &cp, nil
}

func (f *fakeRepo) Update(_ context.Context, s *Student) error {
	if _, ok := f.students[s.ID]; !ok {
		return fmt.Errorf("update student: %w", core.ErrNotFound)
	}
	cp := *s
	f.students[s.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.students[id]; !ok {
		return fmt.Errorf("delete student: %w", core.ErrNotFound)
	}
	delete(f.students, id)
	return nil
}

func (f *fakeRepo) List(
	_ context.Context,
	_ ListStudentsParams,
) ([]Student, int, error) {
	out := make([]Student, 0, len(f.students))
	for _, s := range f.students {
		out = append(out, *s)
	}
	return out, len(out), nil
}

// fakeEnroller tracks seats per program and rejects once full.
type fakeEnroller struct {
	capacity map[string]int
	enrolled map[string]int
}

func newFakeEnroller() *fakeEnroller {
	return &fakeEnroller{
		capacity: make(map[string]int),
		enrolled: make(map[string]int),
	}
}

func (f *fakeEnroller) Enroll(
	_ context.Context,
	programID string,
) (*program.Program, error) {
	limit, ok := f.capacity[programID]
	if !ok {
		return nil, fmt.Errorf("get program: %w", core.ErrNotFound)
	}
	if f.enrolled[programID] >= limit {
		return nil, program.ErrProgramFull
	}
	f.enrolled[programID]++
	return &program.Program{ID: programID}, nil
}

func (f *fakeEnroller) Unenroll(
	_ context.Context,
	programID string,
) (*program.Program, error) {
	if f.enrolled[programID] == 0 {
		return nil, fmt.Errorf("unenroll: %w", core.ErrNotFound)
	}
	f.enrolled[programID]--
	return &program.Program{ID: programID}, nil
}

func testService(repo Repository, enroller ProgramEnroller) *Service {
	s := NewService(repo, enroller)
	s.now = func() time.Time {
		return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func validCreateRequest() CreateStudentRequest {
	return CreateStudentRequest{
		FirstName:     "Arjun",
		LastName:      "Sharma",
		Email:         "Arjun.Sharma@example.com",
		Phone:         "+919876543210",
		DateOfBirth:   time.Date(2014, 3, 15, 0, 0, 0, 0, time.UTC),
		GuardianName:  "Priya Sharma",
		GuardianPhone: "+919876543211",
		Address:       "12 MG Road, Bengaluru",
	}
}

func TestCreateWithoutProgram(t *testing.T) {
	svc := testService(newFakeRepo(), newFakeEnroller())

	st, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, StatusPending, st.Status)
	assert.Equal(t, "arjun.sharma@example.com", st.Email)
	assert.Nil(t, st.ProgramID)
}

func TestCreateEnrollsIntoProgram(t *testing.T) {
	enroller := newFakeEnroller()
	enroller.capacity["prog-1"] = 1
	svc := testService(newFakeRepo(), enroller)

	req := validCreateRequest()
	progID := "prog-1"
	req.ProgramID = &progID

	st, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, st.Status)
	assert.Equal(t, 1, enroller.enrolled["prog-1"])
}

func TestCreateRejectsFullProgram(t *testing.T) {
	enroller := newFakeEnroller()
	enroller.capacity["prog-1"] = 0
	svc := testService(newFakeRepo(), enroller)

	req := validCreateRequest()
	progID := "prog-1"
	req.ProgramID = &progID

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "Program is full", appErr.Message)
}

func TestCreateReleasesSeatOnDuplicateEmail(t *testing.T) {
	enroller := newFakeEnroller()
	enroller.capacity["prog-1"] = 5
	svc := testService(newFakeRepo(), enroller)

	progID := "prog-1"

	first := validCreateRequest()
	first.ProgramID = &progID
	_, err := svc.Create(context.Background(), first)
	require.NoError(t, err)

	second := validCreateRequest()
	second.ProgramID = &progID
	_, err = svc.Create(context.Background(), second)
	require.Error(t, err)

	assert.Equal(t, 1, enroller.enrolled["prog-1"])
}

func TestRecordPaymentDeactivatesAfterThreeOverdue(t *testing.T) {
	svc := testService(newFakeRepo(), newFakeEnroller())
	ctx := context.Background()

	st, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	active := StatusActive
	_, err = svc.Update(ctx, st.ID, UpdateStudentRequest{Status: &active})
	require.NoError(t, err)

	for i, period := range []string{"2026-05", "2026-06"} {
		st, err = svc.RecordPayment(ctx, st.ID, RecordPaymentRequest{
			Period: period,
			Amount: 2500,
			Status: PaymentOverdue,
		})
		require.NoError(t, err)
		assert.Equal(t, StatusActive, st.Status, "still active at %d overdue", i+1)
	}

	st, err = svc.RecordPayment(ctx, st.ID, RecordPaymentRequest{
		Period: "2026-07",
		Amount: 2500,
		Status: PaymentOverdue,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, st.Status)

	// Recording the same overdue period again must not change anything.
	st, err = svc.RecordPayment(ctx, st.ID, RecordPaymentRequest{
		Period: "2026-07",
		Amount: 2500,
		Status: PaymentOverdue,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, st.Status)
	assert.Equal(t, 3, st.OverdueCount())
}

func TestPaymentStandingAppliesToPendingStudents(t *testing.T) {
	svc := testService(newFakeRepo(), newFakeEnroller())
	ctx := context.Background()

	st, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)
	require.Equal(t, StatusPending, st.Status)

	// Deactivation for non-payment is not reserved for active students.
	for _, period := range []string{"2026-05", "2026-06", "2026-07"} {
		st, err = svc.RecordPayment(ctx, st.ID, RecordPaymentRequest{
			Period: period,
			Amount: 2500,
			Status: PaymentOverdue,
		})
		require.NoError(t, err)
	}

	assert.Equal(t, StatusInactive, st.Status)
}

func TestRecordPaymentUpsertsPeriod(t *testing.T) {
	svc := testService(newFakeRepo(), newFakeEnroller())
	ctx := context.Background()

	st, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	st, err = svc.RecordPayment(ctx, st.ID, RecordPaymentRequest{
		Period: "2026-08",
		Amount: 2500,
		Status: PaymentPending,
	})
	require.NoError(t, err)
	require.Len(t, st.Payments, 1)
	assert.Nil(t, st.Payments[0].PaidAt)

	st, err = svc.RecordPayment(ctx, st.ID, RecordPaymentRequest{
		Period: "2026-08",
		Amount: 2500,
		Status: PaymentPaid,
	})
	require.NoError(t, err)
	require.Len(t, st.Payments, 1)
	assert.Equal(t, PaymentPaid, st.Payments[0].Status)
	assert.NotNil(t, st.Payments[0].PaidAt)
}

func TestReactivationYieldsToPaymentStanding(t *testing.T) {
	svc := testService(newFakeRepo(), newFakeEnroller())
	ctx := context.Background()

	st, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	active := StatusActive
	_, err = svc.Update(ctx, st.ID, UpdateStudentRequest{Status: &active})
	require.NoError(t, err)

	for _, period := range []string{"2026-05", "2026-06", "2026-07"} {
		_, err = svc.RecordPayment(ctx, st.ID, RecordPaymentRequest{
			Period: period,
			Amount: 2500,
			Status: PaymentOverdue,
		})
		require.NoError(t, err)
	}

	// Flipping back to active while three periods are overdue is
	// immediately re-derived to inactive.
	st, err = svc.Update(ctx, st.ID, UpdateStudentRequest{Status: &active})
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, st.Status)
}

func TestTransferKeepsSeatOnFullTarget(t *testing.T) {
	enroller := newFakeEnroller()
	enroller.capacity["prog-1"] = 5
	enroller.capacity["prog-2"] = 0
	svc := testService(newFakeRepo(), enroller)
	ctx := context.Background()

	req := validCreateRequest()
	progID := "prog-1"
	req.ProgramID = &progID

	st, err := svc.Create(ctx, req)
	require.NoError(t, err)

	target := "prog-2"
	_, err = svc.Transfer(ctx, st.ID, &target)
	require.Error(t, err)

	got, err := svc.Get(ctx, st.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ProgramID)
	assert.Equal(t, "prog-1", *got.ProgramID)
	assert.Equal(t, 1, enroller.enrolled["prog-1"])
}

func TestTransferMovesSeat(t *testing.T) {
	enroller := newFakeEnroller()
	enroller.capacity["prog-1"] = 5
	enroller.capacity["prog-2"] = 5
	svc := testService(newFakeRepo(), enroller)
	ctx := context.Background()

	req := validCreateRequest()
	progID := "prog-1"
	req.ProgramID = &progID

	st, err := svc.Create(ctx, req)
	require.NoError(t, err)

	target := "prog-2"
	st, err = svc.Transfer(ctx, st.ID, &target)
	require.NoError(t, err)
	assert.Equal(t, "prog-2", *st.ProgramID)
	assert.Equal(t, 0, enroller.enrolled["prog-1"])
	assert.Equal(t, 1, enroller.enrolled["prog-2"])
}

func TestDeleteReleasesSeat(t *testing.T) {
	enroller := newFakeEnroller()
	enroller.capacity["prog-1"] = 5
	svc := testService(newFakeRepo(), enroller)
	ctx := context.Background()

	req := validCreateRequest()
	progID := "prog-1"
	req.ProgramID = &progID

	st, err := svc.Create(ctx, req)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, st.ID))
	assert.Equal(t, 0, enroller.enrolled["prog-1"])
}
