// AngelaMos | 2026
// rbac.go

package rbac

import (
	"sort"
)

type Role string

const (
	RoleSuperAdmin Role = "super-admin"
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleStaff      Role = "staff"
)

type Permission string

const (
	PermStudentsView   Permission = "students.view"
	PermStudentsCreate Permission = "students.create"
	PermStudentsEdit   Permission = "students.edit"
	PermStudentsDelete Permission = "students.delete"

	PermProgramsView   Permission = "programs.view"
	PermProgramsCreate Permission = "programs.create"
	PermProgramsEdit   Permission = "programs.edit"
	PermProgramsDelete Permission = "programs.delete"

	PermCoachesView   Permission = "coaches.view"
	PermCoachesCreate Permission = "coaches.create"
	PermCoachesEdit   Permission = "coaches.edit"
	PermCoachesDelete Permission = "coaches.delete"

	PermContactsView    Permission = "contacts.view"
	PermContactsRespond Permission = "contacts.respond"
	PermContactsEdit    Permission = "contacts.edit"
	PermContactsDelete  Permission = "contacts.delete"

	PermIdentitiesManage Permission = "identities.manage"
	PermSettingsEdit     Permission = "settings.edit"
)

// vocabulary is the closed set of permission strings. Explicit grants
// outside this set are rejected at validation time.
var vocabulary = map[Permission]struct{}{
	PermStudentsView:   {},
	PermStudentsCreate: {},
	PermStudentsEdit:   {},
	PermStudentsDelete: {},

	PermProgramsView:   {},
	PermProgramsCreate: {},
	PermProgramsEdit:   {},
	PermProgramsDelete: {},

	PermCoachesView:   {},
	PermCoachesCreate: {},
	PermCoachesEdit:   {},
	PermCoachesDelete: {},

	PermContactsView:    {},
	PermContactsRespond: {},
	PermContactsEdit:    {},
	PermContactsDelete:  {},

	PermIdentitiesManage: {},
	PermSettingsEdit:     {},
}

// rolePermissions is the hand-enumerated base list per role. The lists are
// curated, not strictly nested: a manager keeps contact editing that plain
// admins also have, while staff only get read paths plus contact responses.
var rolePermissions = map[Role][]Permission{
	RoleSuperAdmin: {
		PermStudentsView, PermStudentsCreate, PermStudentsEdit, PermStudentsDelete,
		PermProgramsView, PermProgramsCreate, PermProgramsEdit, PermProgramsDelete,
		PermCoachesView, PermCoachesCreate, PermCoachesEdit, PermCoachesDelete,
		PermContactsView, PermContactsRespond, PermContactsEdit, PermContactsDelete,
		PermIdentitiesManage, PermSettingsEdit,
	},
	RoleAdmin: {
		PermStudentsView, PermStudentsCreate, PermStudentsEdit, PermStudentsDelete,
		PermProgramsView, PermProgramsCreate, PermProgramsEdit, PermProgramsDelete,
		PermCoachesView, PermCoachesCreate, PermCoachesEdit, PermCoachesDelete,
		PermContactsView, PermContactsRespond, PermContactsEdit, PermContactsDelete,
	},
	RoleManager: {
		PermStudentsView, PermStudentsCreate, PermStudentsEdit,
		PermProgramsView, PermProgramsEdit,
		PermCoachesView, PermCoachesEdit,
		PermContactsView, PermContactsRespond, PermContactsEdit,
	},
	RoleStaff: {
		PermStudentsView,
		PermProgramsView,
		PermCoachesView,
		PermContactsView, PermContactsRespond,
	},
}

func ValidPermission(p Permission) bool {
	_, ok := vocabulary[p]
	return ok
}

func ValidRole(r Role) bool {
	_, ok := rolePermissions[r]
	return ok
}

func Roles() []Role {
	return []Role{RoleSuperAdmin, RoleAdmin, RoleManager, RoleStaff}
}

func Permissions() []Permission {
	perms := make([]Permission, 0, len(vocabulary))
	for p := range vocabulary {
		perms = append(perms, p)
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i] < perms[j] })
	return perms
}

type PermissionSet map[Permission]struct{}

func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

func (s PermissionSet) List() []Permission {
	perms := make([]Permission, 0, len(s))
	for p := range s {
		perms = append(perms, p)
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i] < perms[j] })
	return perms
}

// Resolve unions the role's base list with the identity's explicit grants.
// An unknown role contributes nothing, so authorization fails closed.
func Resolve(role Role, explicit []Permission) PermissionSet {
	base := rolePermissions[role]

	set := make(PermissionSet, len(base)+len(explicit))
	for _, p := range base {
		set[p] = struct{}{}
	}
	for _, p := range explicit {
		if ValidPermission(p) {
			set[p] = struct{}{}
		}
	}

	return set
}

func HasPermission(role Role, explicit []Permission, p Permission) bool {
	return Resolve(role, explicit).Has(p)
}
