package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	portssvc "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/services"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/services"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/dto"
)

type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

func newBudgetHandler(bs portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{budgetService: bs}
}

// registerBudgetRoutes registers scenario and budget entry routes under an organization group.
func registerBudgetRoutes(org *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(budgetService)

	scenarios := org.Group("/scenarios")
	{
		scenarios.POST("", h.createScenario)
		scenarios.GET("", h.listScenarios)
		scenarios.GET("/:scenarioID", h.getScenario)
		scenarios.DELETE("/:scenarioID", h.deleteScenario)

		scenarios.POST("/:scenarioID/entries", h.createBudgetEntry)
		scenarios.GET("/:scenarioID/entries", h.listBudgetEntries)
		scenarios.DELETE("/:scenarioID/entries/:entryID", h.deleteBudgetEntry)
	}
}

// createScenario godoc
// @Summary Create a budget scenario
// @Tags budgets
// @Accept json
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param scenario body dto.CreateScenarioRequest true "Scenario"
// @Success 201 {object} domain.Scenario
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Name already used for this year"
// @Security BearerAuth
// @Router /organizations/{organizationID}/scenarios [post]
func (h *budgetHandler) createScenario(c *gin.Context) {
	var req dto.CreateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	scenario, err := h.budgetService.CreateScenario(c.Request.Context(), c.Param(orgParam), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create scenario")
		return
	}
	c.JSON(http.StatusCreated, scenario)
}

// listScenarios godoc
// @Summary List budget scenarios
// @Tags budgets
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Success 200 {object} dto.ListScenariosResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/scenarios [get]
func (h *budgetHandler) listScenarios(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	scenarios, err := h.budgetService.ListScenarios(c.Request.Context(), c.Param(orgParam), userID)
	if err != nil {
		respondError(c, err, "Failed to list scenarios")
		return
	}
	if scenarios == nil {
		scenarios = []domain.Scenario{}
	}
	c.JSON(http.StatusOK, dto.ListScenariosResponse{Scenarios: scenarios})
}

// getScenario godoc
// @Summary Get a budget scenario
// @Tags budgets
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param scenarioID path string true "Scenario ID"
// @Success 200 {object} domain.Scenario
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/scenarios/{scenarioID} [get]
func (h *budgetHandler) getScenario(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	scenario, err := h.budgetService.GetScenario(c.Request.Context(), c.Param(orgParam), c.Param("scenarioID"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve scenario")
		return
	}
	c.JSON(http.StatusOK, scenario)
}

// deleteScenario godoc
// @Summary Delete a budget scenario
// @Description Deletes the scenario and all of its entries.
// @Tags budgets
// @Param organizationID path string true "Organization ID"
// @Param scenarioID path string true "Scenario ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/scenarios/{scenarioID} [delete]
func (h *budgetHandler) deleteScenario(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.budgetService.DeleteScenario(c.Request.Context(), c.Param(orgParam), c.Param("scenarioID"), userID); err != nil {
		respondError(c, err, "Failed to delete scenario")
		return
	}
	c.Status(http.StatusNoContent)
}

// createBudgetEntry godoc
// @Summary Add a budget entry
// @Description Period is YYYY-MM within the scenario year. The entry type must fit the GL account type.
// @Tags budgets
// @Accept json
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param scenarioID path string true "Scenario ID"
// @Param entry body dto.CreateBudgetEntryRequest true "Budget entry"
// @Success 201 {object} domain.BudgetEntry
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/scenarios/{scenarioID}/entries [post]
func (h *budgetHandler) createBudgetEntry(c *gin.Context) {
	var req dto.CreateBudgetEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entry, err := h.budgetService.CreateBudgetEntry(c.Request.Context(), c.Param(orgParam), c.Param("scenarioID"), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create budget entry")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// listBudgetEntries godoc
// @Summary List budget entries of a scenario
// @Tags budgets
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param scenarioID path string true "Scenario ID"
// @Param period query string false "Month (YYYY-MM)"
// @Success 200 {object} dto.ListBudgetEntriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/scenarios/{scenarioID}/entries [get]
func (h *budgetHandler) listBudgetEntries(c *gin.Context) {
	var params dto.ListBudgetEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	var period *time.Time
	if params.Period != "" {
		p, err := services.ParsePeriod(params.Period)
		if err != nil {
			respondError(c, err, "Invalid period")
			return
		}
		period = &p
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.budgetService.ListBudgetEntries(c.Request.Context(), c.Param(orgParam), c.Param("scenarioID"), userID, period)
	if err != nil {
		respondError(c, err, "Failed to list budget entries")
		return
	}
	if entries == nil {
		entries = []domain.BudgetEntry{}
	}
	c.JSON(http.StatusOK, dto.ListBudgetEntriesResponse{Entries: entries})
}

// deleteBudgetEntry godoc
// @Summary Delete a budget entry
// @Tags budgets
// @Param organizationID path string true "Organization ID"
// @Param scenarioID path string true "Scenario ID"
// @Param entryID path string true "Entry ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/scenarios/{scenarioID}/entries/{entryID} [delete]
func (h *budgetHandler) deleteBudgetEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	err := h.budgetService.DeleteBudgetEntry(c.Request.Context(), c.Param(orgParam), c.Param("scenarioID"), c.Param("entryID"), userID)
	if err != nil {
		respondError(c, err, "Failed to delete budget entry")
		return
	}
	c.Status(http.StatusNoContent)
}
