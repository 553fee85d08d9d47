// AngelaMos | 2026
// entity.go

package identity

import (
	"database/sql/driver"
	"time"

	"github.com/coverdrive/academy/internal/core"
	"github.com/coverdrive/academy/internal/rbac"
)

// Identity is a back-office user. PasswordHash never leaves this package:
// responses are built from IdentityResponse, which has no hash field.
type Identity struct {
	ID                string         `db:"id"`
	Name              string         `db:"name"`
	Email             string         `db:"email"`
	PasswordHash      string         `db:"password_hash"`
	Role              rbac.Role      `db:"role"`
	Permissions       PermissionList `db:"permissions"`
	IsActive          bool           `db:"is_active"`
	LoginAttempts     int            `db:"login_attempts"`
	LockUntil         *time.Time     `db:"lock_until"`
	TokenVersion      int            `db:"token_version"`
	PasswordChangedAt time.Time      `db:"password_changed_at"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

type PermissionList []rbac.Permission

func (p PermissionList) Value() (driver.Value, error) {
	if p == nil {
		return core.JSONValue([]rbac.Permission{})
	}
	return core.JSONValue([]rbac.Permission(p))
}

func (p *PermissionList) Scan(src any) error {
	return core.JSONScan(p, src)
}

func (i *Identity) IsLocked(now time.Time) bool {
	return i.LockUntil != nil && i.LockUntil.After(now)
}

func (i *Identity) ResolvedPermissions() rbac.PermissionSet {
	return rbac.Resolve(i.Role, i.Permissions)
}

func (i *Identity) HasPermission(p rbac.Permission) bool {
	return i.ResolvedPermissions().Has(p)
}

func (i *Identity) IsSuperAdmin() bool {
	return i.Role == rbac.RoleSuperAdmin
}
