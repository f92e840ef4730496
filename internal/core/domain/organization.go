package domain

import "time"

// Organization is a tenant. All GL accounts, budgets, products and Exact tokens belong to one.
type Organization struct {
	OrganizationID string `json:"organizationID"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	IsActive       bool   `json:"isActive"`
	AuditFields
}

// UserOrganizationRole defines the possible roles a user can have within an organization.
type UserOrganizationRole string

const (
	RoleAdmin    UserOrganizationRole = "ADMIN"
	RoleMember   UserOrganizationRole = "MEMBER"
	RoleReadOnly UserOrganizationRole = "READONLY"
)

// rank orders roles so that a higher role satisfies a lower requirement.
func (r UserOrganizationRole) rank() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleMember:
		return 2
	case RoleReadOnly:
		return 1
	default:
		return 0
	}
}

// IsValid reports whether r is one of the known roles.
func (r UserOrganizationRole) IsValid() bool {
	return r.rank() > 0
}

// Satisfies reports whether r grants at least the permissions of required.
func (r UserOrganizationRole) Satisfies(required UserOrganizationRole) bool {
	return r.IsValid() && r.rank() >= required.rank()
}

// UserOrganization represents the membership of a User in an Organization.
type UserOrganization struct {
	UserID         string               `json:"userID"`
	UserName       string               `json:"userName"`
	OrganizationID string               `json:"organizationID"`
	Role           UserOrganizationRole `json:"role"`
	JoinedAt       time.Time            `json:"joinedAt"`
}
