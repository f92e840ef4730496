package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	portsrepo "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/repositories"
	portssvc "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/services"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/dto"
)

// PeriodLayout is the month format of budget periods.
const PeriodLayout = "2006-01"

type budgetService struct {
	BaseService
	scenarioRepo portsrepo.ScenarioRepository
	entryRepo    portsrepo.BudgetEntryRepository
	glRepo       portsrepo.GLAccountReader
	productRepo  portsrepo.ProductRepository
}

// BudgetDeps groups the collaborators of the budget service.
type BudgetDeps struct {
	ScenarioRepo portsrepo.ScenarioRepository
	EntryRepo    portsrepo.BudgetEntryRepository
	GLRepo       portsrepo.GLAccountReader
	ProductRepo  portsrepo.ProductRepository
	Authorizer   portssvc.OrganizationAuthorizerSvc
}

func NewBudgetService(deps BudgetDeps) portssvc.BudgetSvcFacade {
	svc := &budgetService{
		scenarioRepo: deps.ScenarioRepo,
		entryRepo:    deps.EntryRepo,
		glRepo:       deps.GLRepo,
		productRepo:  deps.ProductRepo,
	}
	svc.OrganizationAuthorizer = deps.Authorizer
	return svc
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// ParsePeriod parses a "YYYY-MM" month into its first day in UTC.
func ParsePeriod(raw string) (time.Time, error) {
	t, err := time.Parse(PeriodLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, apperrors.NewValidationFailedError("period must be formatted as YYYY-MM")
	}
	return domain.FirstOfMonth(t), nil
}

func (s *budgetService) CreateScenario(ctx context.Context, organizationID, userID string, req dto.CreateScenarioRequest) (*domain.Scenario, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}
	scenario := domain.Scenario{
		ScenarioID:     uuid.NewString(),
		OrganizationID: organizationID,
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		Year:           req.Year,
		AuditFields:    domain.NewAuditFields(userID, time.Now()),
	}
	if err := s.scenarioRepo.SaveScenario(ctx, scenario); err != nil {
		s.LogError(ctx, err, "Failed to save scenario", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to create scenario: %w", err)
	}
	s.LogInfo(ctx, "Scenario created",
		slog.String("organization_id", organizationID),
		slog.String("scenario_id", scenario.ScenarioID),
		slog.Int("year", scenario.Year))
	return &scenario, nil
}

func (s *budgetService) ListScenarios(ctx context.Context, organizationID, userID string) ([]domain.Scenario, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	scenarios, err := s.scenarioRepo.ListScenarios(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	return scenarios, nil
}

func (s *budgetService) GetScenario(ctx context.Context, organizationID, scenarioID, userID string) (*domain.Scenario, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.scenarioRepo.FindScenarioByID(ctx, organizationID, scenarioID)
}

func (s *budgetService) DeleteScenario(ctx context.Context, organizationID, scenarioID, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return err
	}
	if err := s.scenarioRepo.DeleteScenario(ctx, organizationID, scenarioID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Scenario deleted",
		slog.String("organization_id", organizationID),
		slog.String("scenario_id", scenarioID),
		slog.String("user_id", userID))
	return nil
}

func (s *budgetService) CreateBudgetEntry(ctx context.Context, organizationID, scenarioID, userID string, req dto.CreateBudgetEntryRequest) (*domain.BudgetEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationFailedError("amount must be greater than zero")
	}
	period, err := ParsePeriod(req.Period)
	if err != nil {
		return nil, err
	}

	scenario, err := s.scenarioRepo.FindScenarioByID(ctx, organizationID, scenarioID)
	if err != nil {
		return nil, err
	}
	if period.Year() != scenario.Year {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("period %s is outside scenario year %d", req.Period, scenario.Year))
	}

	account, err := s.glRepo.FindGLAccountByID(ctx, organizationID, req.GLAccountID)
	if err != nil {
		return nil, err
	}
	entryType := domain.EntryType(req.EntryType)
	if !entryType.MatchesAccountType(account.Type) {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("entry type %s does not match GL account type %s", entryType, account.Type))
	}

	if req.ProductID != nil && *req.ProductID != "" {
		if _, err := s.productRepo.FindProductByID(ctx, organizationID, *req.ProductID); err != nil {
			return nil, err
		}
	} else {
		req.ProductID = nil
	}

	entry := domain.BudgetEntry{
		BudgetEntryID:  uuid.NewString(),
		OrganizationID: organizationID,
		ScenarioID:     scenarioID,
		GLAccountID:    account.GLAccountID,
		ProductID:      req.ProductID,
		EntryType:      entryType,
		Period:         period,
		Amount:         req.Amount,
		Description:    req.Description,
		AuditFields:    domain.NewAuditFields(userID, time.Now()),
	}
	if err := s.entryRepo.SaveBudgetEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save budget entry", slog.String("scenario_id", scenarioID))
		return nil, fmt.Errorf("failed to create budget entry: %w", err)
	}
	return &entry, nil
}

func (s *budgetService) ListBudgetEntries(ctx context.Context, organizationID, scenarioID, userID string, period *time.Time) ([]domain.BudgetEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if _, err := s.scenarioRepo.FindScenarioByID(ctx, organizationID, scenarioID); err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.ListBudgetEntries(ctx, organizationID, scenarioID, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budget entries", slog.String("scenario_id", scenarioID))
		return nil, fmt.Errorf("failed to list budget entries: %w", err)
	}
	return entries, nil
}

func (s *budgetService) DeleteBudgetEntry(ctx context.Context, organizationID, scenarioID, entryID, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return err
	}
	return s.entryRepo.DeleteBudgetEntry(ctx, organizationID, scenarioID, entryID)
}
