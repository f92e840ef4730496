package services

import (
	"context"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
)

// ReportingService builds financial overviews
type ReportingService interface {
	// BudgetVsActual compares a scenario with booked actuals of year. A zero year means the scenario's year.
	BudgetVsActual(ctx context.Context, organizationID, userID, scenarioID string, year int) (*domain.BudgetVsActualReport, error)
}
