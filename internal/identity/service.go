// AngelaMos | 2026
// service.go

package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coverdrive/academy/internal/auth"
	"github.com/coverdrive/academy/internal/config"
	"github.com/coverdrive/academy/internal/core"
	"github.com/coverdrive/academy/internal/rbac"
)

type Service struct {
	repo    Repository
	lockout config.LockoutConfig
	now     func() time.Time
}

func NewService(repo Repository, lockout config.LockoutConfig) *Service {
	return &Service{
		repo:    repo,
		lockout: lockout,
		now:     time.Now,
	}
}

// Authenticate verifies a credential against the lockout policy. A locked
// identity is rejected before the credential is checked, so the lock signal
// is independent of credential correctness. The external message for wrong
// password, unknown email, and deactivated identity is identical.
func (s *Service) Authenticate(
	ctx context.Context,
	email, password string,
) (*auth.IdentityInfo, error) {
	ident, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(password, nil)
			return nil, auth.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get identity: %w", err)
	}

	now := s.now()
	if ident.IsLocked(now) {
		return nil, core.AccountLockedError(*ident.LockUntil)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		password,
		&ident.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		lockUntil := now.Add(s.lockout.Duration)
		_, _, recErr := s.repo.RecordFailedLogin(
			ctx,
			ident.ID,
			s.lockout.MaxAttempts,
			lockUntil,
		)
		if recErr != nil && !errors.Is(recErr, core.ErrNotFound) {
			return nil, fmt.Errorf("record failed login: %w", recErr)
		}
		return nil, auth.ErrInvalidCredentials
	}

	if !ident.IsActive {
		return nil, auth.ErrInvalidCredentials
	}

	if newHash != "" {
		//nolint:errcheck // best-effort rehash upgrade
		_ = s.repo.UpdatePassword(ctx, ident.ID, newHash)
	}

	if ident.LoginAttempts > 0 || ident.LockUntil != nil {
		if err := s.repo.ResetLockout(ctx, ident.ID); err != nil {
			return nil, fmt.Errorf("reset lockout: %w", err)
		}
	}

	return toIdentityInfo(ident), nil
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.IdentityInfo, error) {
	ident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toIdentityInfo(ident), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, id, passwordHash)
}

func (s *Service) IncrementTokenVersion(ctx context.Context, id string) error {
	return s.repo.IncrementTokenVersion(ctx, id)
}

func (s *Service) Create(
	ctx context.Context,
	req CreateIdentityRequest,
) (*Identity, error) {
	if details := checkGrants(req.Role, req.Permissions); len(details) > 0 {
		return nil, core.ValidationFailedError(details)
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	ident := &Identity{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: passwordHash,
		Role:         rbac.Role(req.Role),
		Permissions:  toPermissionList(req.Permissions),
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, ident); err != nil {
		return nil, err
	}

	return ident, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Identity, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateIdentityRequest,
) (*Identity, error) {
	role := ""
	if req.Role != nil {
		role = *req.Role
	}
	var perms []string
	if req.Permissions != nil {
		perms = *req.Permissions
	}
	if details := checkGrants(role, perms); len(details) > 0 {
		return nil, core.ValidationFailedError(details)
	}

	ident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		ident.Name = *req.Name
	}
	if req.Role != nil {
		ident.Role = rbac.Role(*req.Role)
	}
	if req.Permissions != nil {
		ident.Permissions = toPermissionList(*req.Permissions)
	}
	if req.IsActive != nil {
		ident.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, ident); err != nil {
		return nil, err
	}

	// role or grant changes take effect on next login
	if req.Role != nil || req.Permissions != nil || req.IsActive != nil {
		//nolint:errcheck // best-effort token invalidation
		_ = s.repo.IncrementTokenVersion(ctx, id)
	}

	return ident, nil
}

func (s *Service) List(
	ctx context.Context,
	params ListIdentitiesParams,
) ([]Identity, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	ident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	ident.IsActive = false
	if err := s.repo.Update(ctx, ident); err != nil {
		return err
	}

	return s.repo.IncrementTokenVersion(ctx, id)
}

func checkGrants(role string, perms []string) []string {
	var details []string

	if role != "" && !rbac.ValidRole(rbac.Role(role)) {
		details = append(details, fmt.Sprintf("unknown role %q", role))
	}

	for _, p := range perms {
		if !rbac.ValidPermission(rbac.Permission(p)) {
			details = append(details, fmt.Sprintf("unknown permission %q", p))
		}
	}

	return details
}

func toIdentityInfo(i *Identity) *auth.IdentityInfo {
	return &auth.IdentityInfo{
		ID:           i.ID,
		Email:        i.Email,
		Name:         i.Name,
		PasswordHash: i.PasswordHash,
		Role:         i.Role,
		Permissions:  []rbac.Permission(i.Permissions),
		TokenVersion: i.TokenVersion,
	}
}

var _ auth.IdentityProvider = (*Service)(nil)
