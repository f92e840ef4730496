package repositories

import (
	"context"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
)

// OrganizationReader defines read operations for organization data
type OrganizationReader interface {
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)
	ListOrganizationsByUserID(ctx context.Context, userID string) ([]domain.Organization, error)
}

// OrganizationWriter defines write operations for organization data
type OrganizationWriter interface {
	// SaveOrganization persists a new organization and makes creator its admin in one transaction.
	SaveOrganization(ctx context.Context, org domain.Organization, creator domain.UserOrganization) error
}

// OrganizationMembershipManager defines operations for managing organization memberships
type OrganizationMembershipManager interface {
	// AddUserToOrganization adds a user or updates the role of an existing member.
	AddUserToOrganization(ctx context.Context, membership domain.UserOrganization) error

	// FindUserOrganizationRole retrieves the membership of a user; ErrNotFound when not a member.
	FindUserOrganizationRole(ctx context.Context, userID, organizationID string) (*domain.UserOrganization, error)

	ListOrganizationMembers(ctx context.Context, organizationID string) ([]domain.UserOrganization, error)
}

// OrganizationRepositoryFacade combines all organization-related repository interfaces
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
	OrganizationMembershipManager
}
