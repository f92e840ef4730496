package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	portsrepo "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/repositories"
	portssvc "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/services"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	scenarioRepo portsrepo.ScenarioRepository
	entryRepo    portsrepo.BudgetEntryRepository
	actualRepo   portsrepo.ActualEntryRepository
	glRepo       portsrepo.GLAccountReader
}

// ReportingDeps groups the collaborators of the reporting service.
type ReportingDeps struct {
	ScenarioRepo portsrepo.ScenarioRepository
	EntryRepo    portsrepo.BudgetEntryRepository
	ActualRepo   portsrepo.ActualEntryRepository
	GLRepo       portsrepo.GLAccountReader
	Authorizer   portssvc.OrganizationAuthorizerSvc
}

// NewReportingService creates a new reporting service
func NewReportingService(deps ReportingDeps) portssvc.ReportingService {
	svc := &reportingService{
		scenarioRepo: deps.ScenarioRepo,
		entryRepo:    deps.EntryRepo,
		actualRepo:   deps.ActualRepo,
		glRepo:       deps.GLRepo,
	}
	svc.OrganizationAuthorizer = deps.Authorizer
	return svc
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// BudgetVsActual compares budgeted and booked amounts of income and expense accounts.
// Accounts with neither a budget nor an actual amount are left out. year defaults to
// the scenario year and must equal it when given.
func (s *reportingService) BudgetVsActual(ctx context.Context, organizationID, userID, scenarioID string, year int) (*domain.BudgetVsActualReport, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		s.LogError(ctx, err, "User not authorized to view budget vs actual report",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	scenario, err := s.scenarioRepo.FindScenarioByID(ctx, organizationID, scenarioID)
	if err != nil {
		return nil, err
	}
	if year == 0 {
		year = scenario.Year
	}
	if year != scenario.Year {
		return nil, apperrors.NewValidationFailedError(
			fmt.Sprintf("year %d does not match scenario year %d", year, scenario.Year))
	}

	budgets, err := s.entryRepo.SumBudgetByAccount(ctx, organizationID, scenarioID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum budget entries", slog.String("scenario_id", scenarioID))
		return nil, fmt.Errorf("failed to retrieve budget totals: %w", err)
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	actuals, err := s.actualRepo.SumActualsByAccount(ctx, organizationID, from, from.AddDate(1, 0, 0))
	if err != nil {
		s.LogError(ctx, err, "Failed to sum actual entries", slog.Int("year", year))
		return nil, fmt.Errorf("failed to retrieve actual totals: %w", err)
	}
	accounts, err := s.glRepo.ListGLAccounts(ctx, organizationID, domain.GLAccountFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve GL accounts: %w", err)
	}

	report := BuildBudgetVsActual(accounts, budgets, actuals)
	report.ScenarioID = scenarioID
	report.Year = year

	s.LogInfo(ctx, "Budget vs actual report generated",
		slog.String("organization_id", organizationID),
		slog.String("scenario_id", scenarioID),
		slog.Int("year", year),
		slog.Int("row_count", len(report.Rows)))
	return report, nil
}

// BuildBudgetVsActual assembles the report rows in account order. Actual amounts are
// booked amounts (debit positive) and are converted with accounting.ReportingAmount.
func BuildBudgetVsActual(accounts []domain.GLAccount, budgets, actuals []domain.AccountTotal) *domain.BudgetVsActualReport {
	budgetByAccount := make(map[string]decimal.Decimal, len(budgets))
	for _, b := range budgets {
		budgetByAccount[b.GLAccountID] = b.Amount
	}
	actualByAccount := make(map[string]decimal.Decimal, len(actuals))
	for _, a := range actuals {
		actualByAccount[a.GLAccountID] = a.Amount
	}

	report := &domain.BudgetVsActualReport{Rows: []domain.BudgetVsActualRow{}}
	for _, acc := range accounts {
		if acc.Type != domain.GLTypeIncome && acc.Type != domain.GLTypeExpense {
			continue
		}
		budget, hasBudget := budgetByAccount[acc.GLAccountID]
		booked, hasActual := actualByAccount[acc.GLAccountID]
		if !hasBudget && !hasActual {
			continue
		}
		actual := accounting.ReportingAmount(booked, acc.Type)
		row := domain.BudgetVsActualRow{
			GLAccountID: acc.GLAccountID,
			Code:        acc.Code,
			Name:        acc.Name,
			Type:        acc.Type,
			Budget:      budget,
			Actual:      actual,
			Variance:    accounting.Variance(budget, actual),
		}
		report.Rows = append(report.Rows, row)

		totals := &report.Expenses
		if acc.Type == domain.GLTypeIncome {
			totals = &report.Income
		}
		totals.Budget = totals.Budget.Add(row.Budget)
		totals.Actual = totals.Actual.Add(row.Actual)
		totals.Variance = totals.Variance.Add(row.Variance)
	}

	report.NetBudget = accounting.NetResult(report.Income.Budget, report.Expenses.Budget)
	report.NetActual = accounting.NetResult(report.Income.Actual, report.Expenses.Actual)
	report.NetVariance = accounting.Variance(report.NetBudget, report.NetActual)
	return report
}
