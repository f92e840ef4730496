package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	portsrepo "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/repositories"
	portssvc "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/services"
)

// organizationService handles business logic related to organizations and memberships.
type organizationService struct {
	BaseService
	orgRepo  portsrepo.OrganizationRepositoryFacade
	userRepo portsrepo.UserReader
}

// NewOrganizationService creates a new organization service. It is its own authorizer.
func NewOrganizationService(orgRepo portsrepo.OrganizationRepositoryFacade, userRepo portsrepo.UserReader) portssvc.OrganizationSvcFacade {
	svc := &organizationService{orgRepo: orgRepo, userRepo: userRepo}
	svc.OrganizationAuthorizer = svc
	return svc
}

var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

// CreateOrganization creates a new organization and makes the creator the initial admin.
func (s *organizationService) CreateOrganization(ctx context.Context, name, description, creatorUserID string) (*domain.Organization, error) {
	now := time.Now()
	org := domain.Organization{
		OrganizationID: uuid.NewString(),
		Name:           name,
		Description:    description,
		IsActive:       true,
		AuditFields:    domain.NewAuditFields(creatorUserID, now),
	}
	creator := domain.UserOrganization{
		UserID:         creatorUserID,
		OrganizationID: org.OrganizationID,
		Role:           domain.RoleAdmin,
		JoinedAt:       now,
	}

	if err := s.orgRepo.SaveOrganization(ctx, org, creator); err != nil {
		s.LogError(ctx, err, "Failed to save organization", slog.String("organization_name", name))
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	s.LogInfo(ctx, "Organization created successfully",
		slog.String("organization_id", org.OrganizationID),
		slog.String("creator_user_id", creatorUserID))
	return &org, nil
}

// AddUserToOrganization adds a user to an organization with a specific role.
func (s *organizationService) AddUserToOrganization(ctx context.Context, addingUserID, targetUserID, organizationID string, role domain.UserOrganizationRole) error {
	if err := s.AuthorizeUserAction(ctx, addingUserID, organizationID, domain.RoleAdmin); err != nil {
		return err
	}
	if !role.IsValid() {
		return apperrors.NewValidationFailedError("unknown role " + string(role))
	}
	if _, err := s.userRepo.FindUserByID(ctx, targetUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("user " + targetUserID + " not found")
		}
		return fmt.Errorf("failed to look up user %s: %w", targetUserID, err)
	}

	membership := domain.UserOrganization{
		UserID:         targetUserID,
		OrganizationID: organizationID,
		Role:           role,
		JoinedAt:       time.Now(),
	}
	if err := s.orgRepo.AddUserToOrganization(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add user to organization",
			slog.String("target_user_id", targetUserID),
			slog.String("organization_id", organizationID))
		return fmt.Errorf("failed to add user %s to organization %s: %w", targetUserID, organizationID, err)
	}

	s.LogInfo(ctx, "User added to organization successfully",
		slog.String("target_user_id", targetUserID),
		slog.String("organization_id", organizationID),
		slog.String("role", string(role)),
		slog.String("added_by_user_id", addingUserID))
	return nil
}

// ListUserOrganizations retrieves the list of organizations a given user belongs to.
func (s *organizationService) ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error) {
	orgs, err := s.orgRepo.ListOrganizationsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list organizations for user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list organizations for user %s: %w", userID, err)
	}
	if orgs == nil {
		return []domain.Organization{}, nil
	}
	return orgs, nil
}

func (s *organizationService) FindOrganizationByID(ctx context.Context, organizationID, requestingUserID string) (*domain.Organization, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find organization", slog.String("organization_id", organizationID))
		}
		return nil, err
	}
	return org, nil
}

func (s *organizationService) ListOrganizationMembers(ctx context.Context, organizationID, requestingUserID string) ([]domain.UserOrganization, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	members, err := s.orgRepo.ListOrganizationMembers(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list organization members", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list members of organization %s: %w", organizationID, err)
	}
	return members, nil
}

// AuthorizeUserAction checks if a user has the required role (or higher) within an organization.
// Non-members get ErrForbidden as well so organization existence is not revealed.
func (s *organizationService) AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.UserOrganizationRole) error {
	membership, err := s.orgRepo.FindUserOrganizationRole(ctx, userID, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.GetLogger(ctx).Warn("Authorization failed: user is not a member",
				slog.String("user_id", userID),
				slog.String("organization_id", organizationID))
			return apperrors.NewForbiddenError("you are not a member of this organization")
		}
		s.LogError(ctx, err, "Failed to check user organization role",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID))
		return fmt.Errorf("failed to check authorization: %w", err)
	}

	if membership.Role.Satisfies(requiredRole) {
		return nil
	}

	s.GetLogger(ctx).Warn("Authorization failed: user lacks required role",
		slog.String("user_id", userID),
		slog.String("organization_id", organizationID),
		slog.String("user_role", string(membership.Role)),
		slog.String("required_role", string(requiredRole)))
	return apperrors.NewForbiddenError("this action requires the " + string(requiredRole) + " role")
}
