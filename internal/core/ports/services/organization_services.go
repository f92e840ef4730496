package services

import (
	"context"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
)

// OrganizationReaderSvc defines read operations for organization data
type OrganizationReaderSvc interface {
	// FindOrganizationByID retrieves an organization the requesting user is a member of.
	FindOrganizationByID(ctx context.Context, organizationID, requestingUserID string) (*domain.Organization, error)

	// ListUserOrganizations retrieves the organizations a user belongs to.
	ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error)

	// ListOrganizationMembers retrieves all users and their roles. Members only.
	ListOrganizationMembers(ctx context.Context, organizationID, requestingUserID string) ([]domain.UserOrganization, error)
}

// OrganizationWriterSvc defines write operations for organization data
type OrganizationWriterSvc interface {
	// CreateOrganization persists a new organization with its creator as ADMIN.
	CreateOrganization(ctx context.Context, name, description, creatorUserID string) (*domain.Organization, error)
}

// OrganizationMembershipSvc defines operations for managing membership
type OrganizationMembershipSvc interface {
	// AddUserToOrganization adds a user with a role. Only admins may do this.
	AddUserToOrganization(ctx context.Context, addingUserID, targetUserID, organizationID string, role domain.UserOrganizationRole) error
}

// OrganizationAuthorizerSvc checks organization permissions
type OrganizationAuthorizerSvc interface {
	// AuthorizeUserAction returns ErrForbidden unless the user holds requiredRole or higher.
	AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.UserOrganizationRole) error
}

// OrganizationSvcFacade combines all organization-related service interfaces
type OrganizationSvcFacade interface {
	OrganizationReaderSvc
	OrganizationWriterSvc
	OrganizationMembershipSvc
	OrganizationAuthorizerSvc
}
