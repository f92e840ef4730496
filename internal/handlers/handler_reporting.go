package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/services"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/dto"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/middleware"
)

// reportingHandler handles HTTP requests related to financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

func registerReportingRoutes(org *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := org.Group("/reports")
	{
		reports.GET("/budget-vs-actual", h.getBudgetVsActual)
	}
}

// getBudgetVsActual godoc
// @Summary Budget versus actual
// @Description Compares a scenario with the actuals booked in Exact Online, per income and expense account.
// @Tags reports
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param scenarioID query string true "Scenario ID"
// @Param year query int false "Year of actuals; must equal the scenario year (the default)"
// @Success 200 {object} domain.BudgetVsActualReport
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/reports/budget-vs-actual [get]
func (h *reportingHandler) getBudgetVsActual(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.BudgetVsActualParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid budget vs actual parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	report, err := h.reportingService.BudgetVsActual(c.Request.Context(), c.Param(orgParam), userID, params.ScenarioID, params.Year)
	if err != nil {
		respondError(c, err, "Failed to generate budget vs actual report")
		return
	}
	c.JSON(http.StatusOK, report)
}
