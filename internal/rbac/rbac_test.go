// AngelaMos | 2026
// rbac_test.go

package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBaseLists(t *testing.T) {
	tests := []struct {
		name    string
		role    Role
		has     []Permission
		missing []Permission
	}{
		{
			name: "super-admin has everything",
			role: RoleSuperAdmin,
			has:  Permissions(),
		},
		{
			name:    "admin cannot manage identities or settings",
			role:    RoleAdmin,
			has:     []Permission{PermStudentsDelete, PermContactsDelete},
			missing: []Permission{PermIdentitiesManage, PermSettingsEdit},
		},
		{
			name:    "manager cannot delete",
			role:    RoleManager,
			has:     []Permission{PermStudentsEdit, PermContactsRespond},
			missing: []Permission{PermStudentsDelete, PermProgramsCreate},
		},
		{
			name: "staff is read-mostly",
			role: RoleStaff,
			has:  []Permission{PermStudentsView, PermContactsRespond},
			missing: []Permission{
				PermStudentsEdit,
				PermStudentsDelete,
				PermProgramsCreate,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := Resolve(tt.role, nil)
			for _, p := range tt.has {
				assert.True(t, set.Has(p), "expected %s to have %s", tt.role, p)
			}
			for _, p := range tt.missing {
				assert.False(t, set.Has(p), "expected %s to lack %s", tt.role, p)
			}
		})
	}
}

func TestResolveUnknownRoleFailsClosed(t *testing.T) {
	set := Resolve(Role("superuser"), nil)
	assert.Empty(t, set)
	assert.False(t, HasPermission(Role(""), nil, PermStudentsView))
}

func TestResolveUnionsExplicitGrants(t *testing.T) {
	set := Resolve(RoleStaff, []Permission{PermStudentsDelete})

	assert.True(t, set.Has(PermStudentsDelete))
	assert.True(t, set.Has(PermStudentsView), "base list must survive the union")
}

func TestResolveIgnoresUnknownExplicitGrants(t *testing.T) {
	set := Resolve(RoleStaff, []Permission{"students.*", "bogus"})

	for p := range set {
		assert.True(t, ValidPermission(p))
	}
}

// Adding an explicit grant must never remove anything from the resolved set.
func TestResolveMonotonic(t *testing.T) {
	for _, role := range Roles() {
		base := Resolve(role, nil)

		for _, extra := range Permissions() {
			grown := Resolve(role, []Permission{extra})

			require.True(t, grown.Has(extra))
			for p := range base {
				require.True(t, grown.Has(p),
					"granting %s to %s dropped %s", extra, role, p)
			}
		}
	}
}

func TestStaffDeniedStudentsDelete(t *testing.T) {
	assert.False(t, HasPermission(RoleStaff, nil, PermStudentsDelete))
}

func TestResolveDeduplicates(t *testing.T) {
	set := Resolve(RoleStaff, []Permission{PermStudentsView, PermStudentsView})
	assert.Len(t, set.List(), len(Resolve(RoleStaff, nil).List()))
}

func TestValidRole(t *testing.T) {
	for _, role := range Roles() {
		assert.True(t, ValidRole(role))
	}
	assert.False(t, ValidRole("root"))
}
