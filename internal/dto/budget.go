package dto

import (
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateScenarioRequest defines data for creating a budget scenario.
type CreateScenarioRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	Year        int    `json:"year" binding:"required,min=2000,max=2100"`
}

// CreateBudgetEntryRequest defines data for a budget entry. Period is "YYYY-MM".
type CreateBudgetEntryRequest struct {
	GLAccountID string          `json:"glAccountID" binding:"required"`
	ProductID   *string         `json:"productID"`
	EntryType   string          `json:"entryType" binding:"required,oneof=revenue expense"`
	Period      string          `json:"period" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// ListBudgetEntriesParams filters entries by month ("YYYY-MM").
type ListBudgetEntriesParams struct {
	Period string `form:"period"`
}

// CreateProductRequest defines data for creating a product.
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,max=255"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	UnitCost    decimal.Decimal `json:"unitCost"`
}

// UpdateProductRequest uses pointers to differentiate omitted fields from zero values.
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=255"`
	Description *string          `json:"description"`
	UnitPrice   *decimal.Decimal `json:"unitPrice"`
	UnitCost    *decimal.Decimal `json:"unitCost"`
	IsActive    *bool            `json:"isActive"`
}

// BudgetVsActualParams selects the scenario and year of the report.
type BudgetVsActualParams struct {
	ScenarioID string `form:"scenarioID" binding:"required"`
	Year       int    `form:"year" binding:"omitempty,min=2000,max=2100"`
}

// ListScenariosResponse wraps a list of scenarios.
type ListScenariosResponse struct {
	Scenarios []domain.Scenario `json:"scenarios"`
}

// ListBudgetEntriesResponse wraps the entries of a scenario.
type ListBudgetEntriesResponse struct {
	Entries []domain.BudgetEntry `json:"entries"`
}

// ListProductsParams filters the product listing.
type ListProductsParams struct {
	ActiveOnly bool `form:"active"`
}

// ListProductsResponse wraps a list of products.
type ListProductsResponse struct {
	Products []domain.Product `json:"products"`
}
