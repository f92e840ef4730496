package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/services"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/dto"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/middleware"
)

// orgParam is the path parameter that scopes every tenant route.
const orgParam = "organizationID"

// organizationHandler handles HTTP requests related to organizations.
type organizationHandler struct {
	orgService portssvc.OrganizationSvcFacade
}

func newOrganizationHandler(os portssvc.OrganizationSvcFacade) *organizationHandler {
	return &organizationHandler{orgService: os}
}

// registerOrganizationRoutes registers the organization routes and returns the
// group under which organization-scoped resources are mounted.
func registerOrganizationRoutes(rg *gin.RouterGroup, orgService portssvc.OrganizationSvcFacade) *gin.RouterGroup {
	h := newOrganizationHandler(orgService)

	orgs := rg.Group("/organizations")
	{
		orgs.POST("", h.createOrganization)
		orgs.GET("", h.listUserOrganizations)
	}

	org := rg.Group("/organizations/:" + orgParam)
	{
		org.GET("", h.getOrganization)
		org.GET("/members", h.listMembers)
		org.POST("/members", h.addMember)
	}
	return org
}

// createOrganization godoc
// @Summary Create a new organization
// @Description Creates a new organization and makes the creator its admin.
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization body dto.CreateOrganizationRequest true "Organization details"
// @Success 201 {object} dto.OrganizationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations [post]
func (h *organizationHandler) createOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateOrganization", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	org, err := h.orgService.CreateOrganization(c.Request.Context(), req.Name, req.Description, userID)
	if err != nil {
		respondError(c, err, "Failed to create organization")
		return
	}
	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}

// listUserOrganizations godoc
// @Summary List organizations of the current user
// @Tags organizations
// @Produce json
// @Success 200 {object} dto.ListOrganizationsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations [get]
func (h *organizationHandler) listUserOrganizations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orgs, err := h.orgService.ListUserOrganizations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list organizations")
		return
	}
	c.JSON(http.StatusOK, dto.ToListOrganizationsResponse(orgs))
}

// getOrganization godoc
// @Summary Get an organization
// @Tags organizations
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID} [get]
func (h *organizationHandler) getOrganization(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	org, err := h.orgService.FindOrganizationByID(c.Request.Context(), c.Param(orgParam), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve organization")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// listMembers godoc
// @Summary List organization members
// @Tags organizations
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Success 200 {array} dto.MemberResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/members [get]
func (h *organizationHandler) listMembers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	members, err := h.orgService.ListOrganizationMembers(c.Request.Context(), c.Param(orgParam), userID)
	if err != nil {
		respondError(c, err, "Failed to list members")
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberResponses(members))
}

// addMember godoc
// @Summary Add a user to an organization
// @Description Adds a user with a role, or changes the role of an existing member. Admins only.
// @Tags organizations
// @Accept json
// @Param organizationID path string true "Organization ID"
// @Param member body dto.AddMemberRequest true "Member"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "User not found"
// @Security BearerAuth
// @Router /organizations/{organizationID}/members [post]
func (h *organizationHandler) addMember(c *gin.Context) {
	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.orgService.AddUserToOrganization(c.Request.Context(), userID, req.UserID, c.Param(orgParam), req.Role); err != nil {
		respondError(c, err, "Failed to add member")
		return
	}
	c.Status(http.StatusNoContent)
}
