package dto

import (
	"time"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
)

// --- Organization DTOs ---

// CreateOrganizationRequest defines data for creating a new organization.
type CreateOrganizationRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

// OrganizationResponse defines data returned for an organization.
type OrganizationResponse struct {
	OrganizationID string    `json:"organizationID"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
}

// ToOrganizationResponse converts domain.Organization to DTO.
func ToOrganizationResponse(o *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID: o.OrganizationID,
		Name:           o.Name,
		Description:    o.Description,
		IsActive:       o.IsActive,
		CreatedAt:      o.CreatedAt,
		CreatedBy:      o.CreatedBy,
	}
}

// ListOrganizationsResponse wraps a list of organizations.
type ListOrganizationsResponse struct {
	Organizations []OrganizationResponse `json:"organizations"`
}

// ToListOrganizationsResponse converts a slice of domain.Organization to DTO.
func ToListOrganizationsResponse(os []domain.Organization) ListOrganizationsResponse {
	list := make([]OrganizationResponse, len(os))
	for i := range os {
		list[i] = ToOrganizationResponse(&os[i])
	}
	return ListOrganizationsResponse{Organizations: list}
}

// --- Membership DTOs ---

// AddMemberRequest defines data for adding a user to an organization.
type AddMemberRequest struct {
	UserID string                      `json:"userID" binding:"required"`
	Role   domain.UserOrganizationRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// MemberResponse defines data returned about a user's membership.
type MemberResponse struct {
	UserID   string                      `json:"userID"`
	UserName string                      `json:"userName,omitempty"`
	Role     domain.UserOrganizationRole `json:"role"`
	JoinedAt time.Time                   `json:"joinedAt"`
}

// ToMemberResponses converts memberships to DTOs.
func ToMemberResponses(ms []domain.UserOrganization) []MemberResponse {
	list := make([]MemberResponse, len(ms))
	for i, m := range ms {
		list[i] = MemberResponse{UserID: m.UserID, UserName: m.UserName, Role: m.Role, JoinedAt: m.JoinedAt}
	}
	return list
}
