package services

import (
	"context"
	"time"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/dto"
)

// ScenarioSvc manages budget scenarios
type ScenarioSvc interface {
	CreateScenario(ctx context.Context, organizationID, userID string, req dto.CreateScenarioRequest) (*domain.Scenario, error)
	ListScenarios(ctx context.Context, organizationID, userID string) ([]domain.Scenario, error)
	GetScenario(ctx context.Context, organizationID, scenarioID, userID string) (*domain.Scenario, error)
	DeleteScenario(ctx context.Context, organizationID, scenarioID, userID string) error
}

// BudgetEntrySvc manages budget entries
type BudgetEntrySvc interface {
	CreateBudgetEntry(ctx context.Context, organizationID, scenarioID, userID string, req dto.CreateBudgetEntryRequest) (*domain.BudgetEntry, error)
	ListBudgetEntries(ctx context.Context, organizationID, scenarioID, userID string, period *time.Time) ([]domain.BudgetEntry, error)
	DeleteBudgetEntry(ctx context.Context, organizationID, scenarioID, entryID, userID string) error
}

// BudgetSvcFacade combines scenario and entry operations
type BudgetSvcFacade interface {
	ScenarioSvc
	BudgetEntrySvc
}

// ProductSvcFacade manages products
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, organizationID, userID string, req dto.CreateProductRequest) (*domain.Product, error)
	ListProducts(ctx context.Context, organizationID, userID string, activeOnly bool) ([]domain.Product, error)
	GetProduct(ctx context.Context, organizationID, productID, userID string) (*domain.Product, error)
	UpdateProduct(ctx context.Context, organizationID, productID, userID string, req dto.UpdateProductRequest) (*domain.Product, error)
}
