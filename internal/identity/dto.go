// AngelaMos | 2026
// dto.go

package identity

import (
	"time"

	"github.com/coverdrive/academy/internal/rbac"
)

type CreateIdentityRequest struct {
	Name        string   `json:"name"        validate:"required,min=1,max=100"`
	Email       string   `json:"email"       validate:"required,email,max=255"`
	Password    string   `json:"password"    validate:"required,min=8,max=128"`
	Role        string   `json:"role"        validate:"required,oneof=super-admin admin manager staff"`
	Permissions []string `json:"permissions" validate:"omitempty,dive,min=1"`
}

type UpdateIdentityRequest struct {
	Name        *string   `json:"name,omitempty"        validate:"omitempty,min=1,max=100"`
	Role        *string   `json:"role,omitempty"        validate:"omitempty,oneof=super-admin admin manager staff"`
	Permissions *[]string `json:"permissions,omitempty"`
	IsActive    *bool     `json:"is_active,omitempty"`
}

type IdentityResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	Resolved    []string  `json:"resolved_permissions"`
	IsActive    bool      `json:"is_active"`
	Locked      bool      `json:"locked"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type IdentityListResponse struct {
	Identities []IdentityResponse `json:"identities"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
}

type ListIdentitiesParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
	Role     string `json:"role"`
}

func (p *ListIdentitiesParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListIdentitiesParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToIdentityResponse(i *Identity, now time.Time) IdentityResponse {
	explicit := make([]string, 0, len(i.Permissions))
	for _, p := range i.Permissions {
		explicit = append(explicit, string(p))
	}

	resolved := i.ResolvedPermissions().List()
	resolvedStr := make([]string, 0, len(resolved))
	for _, p := range resolved {
		resolvedStr = append(resolvedStr, string(p))
	}

	return IdentityResponse{
		ID:          i.ID,
		Name:        i.Name,
		Email:       i.Email,
		Role:        string(i.Role),
		Permissions: explicit,
		Resolved:    resolvedStr,
		IsActive:    i.IsActive,
		Locked:      i.IsLocked(now),
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func toPermissionList(perms []string) PermissionList {
	list := make(PermissionList, 0, len(perms))
	for _, p := range perms {
		list = append(list, rbac.Permission(p))
	}
	return list
}
