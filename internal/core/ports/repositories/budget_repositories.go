package repositories

import (
	"context"
	"time"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
)

// ScenarioRepository persists budget scenarios
type ScenarioRepository interface {
	SaveScenario(ctx context.Context, scenario domain.Scenario) error
	FindScenarioByID(ctx context.Context, organizationID, scenarioID string) (*domain.Scenario, error)
	ListScenarios(ctx context.Context, organizationID string) ([]domain.Scenario, error)

	// DeleteScenario removes the scenario and its entries.
	DeleteScenario(ctx context.Context, organizationID, scenarioID string) error
}

// BudgetEntryRepository persists budget entries
type BudgetEntryRepository interface {
	SaveBudgetEntry(ctx context.Context, entry domain.BudgetEntry) error

	// ListBudgetEntries returns the scenario's entries; a non-nil period limits them to that month.
	ListBudgetEntries(ctx context.Context, organizationID, scenarioID string, period *time.Time) ([]domain.BudgetEntry, error)

	DeleteBudgetEntry(ctx context.Context, organizationID, scenarioID, entryID string) error

	// SumBudgetByAccount sums the scenario's entry amounts per GL account.
	SumBudgetByAccount(ctx context.Context, organizationID, scenarioID string) ([]domain.AccountTotal, error)
}

// ProductRepository persists products
type ProductRepository interface {
	SaveProduct(ctx context.Context, product domain.Product) error
	FindProductByID(ctx context.Context, organizationID, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, organizationID string, activeOnly bool) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) error
}
