// AngelaMos | 2026
// service_test.go

package identity

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverdrive/academy/internal/auth"
	"github.com/coverdrive/academy/internal/config"
	"github.com/coverdrive/academy/internal/core"
	"github.com/coverdrive/academy/internal/rbac"
)

type fakeRepo struct {
	identities map[string]*Identity
	byEmail    map[string]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		identities: make(map[string]*Identity),
		byEmail:    make(map[string]string),
	}
}

func (f *fakeRepo) Create(_ context.Context, ident *Identity) error {
	if _, dup := f.byEmail[ident.Email]; dup {
		return fmt.Errorf("create identity: %w", core.ErrDuplicateKey)
	}
	cp := *ident
	f.identities[ident.ID] = &cp
	f.byEmail[ident.Email] = ident.ID
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Identity, error) {
	ident, ok := f.identities[id]
	if !ok {
		return nil, fmt.Errorf("get identity: %w", core.ErrNotFound)
	}
	cp := *ident
	return &cp, nil
}

func (f *fakeRepo) GetByEmail(
	_ context.Context,
	email string,
) (*Identity, error) {
	id, ok := f.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("get identity: %w", core.ErrNotFound)
	}
	cp := *f.identities[id]
	return &cp, nil
}

func (f *fakeRepo) Update(_ context.Context, ident *Identity) error {
	if _, ok := f.identities[ident.ID]; !ok {
		return fmt.Errorf("update identity: %w", core.ErrNotFound)
	}
	cp := *ident
	f.identities[ident.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdatePassword(
	_ context.Context,
	id, passwordHash string,
) error {
	ident, ok := f.identities[id]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	ident.PasswordHash = passwordHash
	return nil
}

func (f *fakeRepo) IncrementTokenVersion(_ context.Context, id string) error {
	ident, ok := f.identities[id]
	if !ok {
		return fmt.Errorf("increment token version: %w", core.ErrNotFound)
	}
	ident.TokenVersion++
	return nil
}

func (f *fakeRepo) List(
	_ context.Context,
	_ ListIdentitiesParams,
) ([]Identity, int, error) {
	out := make([]Identity, 0, len(f.identities))
	for _, ident := range f.identities {
		out = append(out, *ident)
	}
	return out, len(out), nil
}

func (f *fakeRepo) RecordFailedLogin(
	_ context.Context,
	id string,
	maxAttempts int,
	lockUntil time.Time,
) (int, *time.Time, error) {
	ident, ok := f.identities[id]
	if !ok {
		return 0, nil, fmt.Errorf("record failed login: %w", core.ErrNotFound)
	}

	ident.LoginAttempts++
	if ident.LockUntil == nil && ident.LoginAttempts >= maxAttempts {
		until := lockUntil
		ident.LockUntil = &until
	}

	return ident.LoginAttempts, ident.LockUntil, nil
}

func (f *fakeRepo) ResetLockout(_ context.Context, id string) error {
	ident, ok := f.identities[id]
	if !ok {
		return fmt.Errorf("reset lockout: %w", core.ErrNotFound)
	}
	ident.LoginAttempts = 0
	ident.LockUntil = nil
	return nil
}

const testPassword = "correct-horse-battery"

func seedIdentity(t *testing.T, repo *fakeRepo) *Identity {
	t.Helper()

	hash, err := core.HashPassword(testPassword)
	require.NoError(t, err)

	ident := &Identity{
		ID:           "ident-1",
		Name:         "Front Desk",
		Email:        "desk@academy.test",
		PasswordHash: hash,
		Role:         rbac.RoleStaff,
		IsActive:     true,
	}
	require.NoError(t, repo.Create(context.Background(), ident))
	return ident
}

func lockoutService(repo Repository) *Service {
	s := NewService(repo, config.LockoutConfig{
		MaxAttempts: 5,
		Duration:    2 * time.Hour,
	})
	s.now = func() time.Time {
		return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func TestAuthenticateSuccess(t *testing.T) {
	repo := newFakeRepo()
	seedIdentity(t, repo)
	svc := lockoutService(repo)

	info, err := svc.Authenticate(
		context.Background(),
		"Desk@Academy.test",
		testPassword,
	)
	require.NoError(t, err)
	assert.Equal(t, "ident-1", info.ID)
	assert.Equal(t, rbac.RoleStaff, info.Role)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	repo := newFakeRepo()
	seedIdentity(t, repo)
	svc := lockoutService(repo)

	_, err := svc.Authenticate(
		context.Background(),
		"desk@academy.test",
		"wrong",
	)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.Equal(t, 1, repo.identities["ident-1"].LoginAttempts)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	repo := newFakeRepo()
	seedIdentity(t, repo)
	svc := lockoutService(repo)

	_, err := svc.Authenticate(
		context.Background(),
		"nobody@academy.test",
		testPassword,
	)
	// Indistinguishable from a wrong password.
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthenticateLockoutEngagesAtThreshold(t *testing.T) {
	repo := newFakeRepo()
	seedIdentity(t, repo)
	svc := lockoutService(repo)
	ctx := context.Background()

	// The first five failures all read as bad credentials, including
	// the one that engages the lock.
	for i := 1; i <= 5; i++ {
		_, err := svc.Authenticate(ctx, "desk@academy.test", "wrong")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials, "attempt %d", i)
	}

	ident := repo.identities["ident-1"]
	assert.Equal(t, 5, ident.LoginAttempts)
	require.NotNil(t, ident.LockUntil)

	// The sixth attempt is rejected for the lock, even with the right
	// password.
	_, err := svc.Authenticate(ctx, "desk@academy.test", testPassword)
	require.Error(t, err)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 423, appErr.Status)
	assert.Equal(t, "ACCOUNT_LOCKED", appErr.Code)
}

func TestAuthenticateSuccessClearsLockoutState(t *testing.T) {
	repo := newFakeRepo()
	seedIdentity(t, repo)
	svc := lockoutService(repo)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Authenticate(ctx, "desk@academy.test", "wrong")
		require.Error(t, err)
	}
	require.Equal(t, 3, repo.identities["ident-1"].LoginAttempts)

	_, err := svc.Authenticate(ctx, "desk@academy.test", testPassword)
	require.NoError(t, err)

	ident := repo.identities["ident-1"]
	assert.Zero(t, ident.LoginAttempts)
	assert.Nil(t, ident.LockUntil)
}

func TestAuthenticateExpiredLockAllowsLogin(t *testing.T) {
	repo := newFakeRepo()
	ident := seedIdentity(t, repo)
	svc := lockoutService(repo)
	ctx := context.Background()

	expired := time.Date(2026, 8, 30, 11, 0, 0, 0, time.UTC)
	stored := repo.identities[ident.ID]
	stored.LoginAttempts = 5
	stored.LockUntil = &expired

	_, err := svc.Authenticate(ctx, "desk@academy.test", testPassword)
	require.NoError(t, err)
	assert.Zero(t, repo.identities[ident.ID].LoginAttempts)
	assert.Nil(t, repo.identities[ident.ID].LockUntil)
}

func TestAuthenticateInactiveIdentity(t *testing.T) {
	repo := newFakeRepo()
	ident := seedIdentity(t, repo)
	repo.identities[ident.ID].IsActive = false
	svc := lockoutService(repo)

	_, err := svc.Authenticate(
		context.Background(),
		"desk@academy.test",
		testPassword,
	)
	// Same message as a bad credential; deactivation is not disclosed.
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestCreateRejectsUnknownGrants(t *testing.T) {
	svc := lockoutService(newFakeRepo())

	_, err := svc.Create(context.Background(), CreateIdentityRequest{
		Name:        "New Admin",
		Email:       "new@academy.test",
		Password:    "long-enough-password",
		Role:        "admin",
		Permissions: []string{"students.fly"},
	})
	require.Error(t, err)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestUpdateBumpsTokenVersionOnRoleChange(t *testing.T) {
	repo := newFakeRepo()
	ident := seedIdentity(t, repo)
	svc := lockoutService(repo)

	role := "manager"
	_, err := svc.Update(context.Background(), ident.ID, UpdateIdentityRequest{
		Role: &role,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.identities[ident.ID].TokenVersion)
}
