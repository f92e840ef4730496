package domain

import (
	"github.com/shopspring/decimal"
)

// AccountTotal is an aggregated amount per GL account, as returned by the reporting queries.
type AccountTotal struct {
	GLAccountID string          `json:"glAccountID"`
	Amount      decimal.Decimal `json:"amount"`
}

// BudgetVsActualRow compares budget and actuals for one GL account
type BudgetVsActualRow struct {
	GLAccountID string          `json:"glAccountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Type        GLAccountType   `json:"type"`
	Budget      decimal.Decimal `json:"budget"`
	Actual      decimal.Decimal `json:"actual"`
	Variance    decimal.Decimal `json:"variance"` // Actual minus Budget
}

// TypeTotals sums the rows of one account type
type TypeTotals struct {
	Budget   decimal.Decimal `json:"budget"`
	Actual   decimal.Decimal `json:"actual"`
	Variance decimal.Decimal `json:"variance"`
}

// BudgetVsActualReport is the budget-versus-actual overview of a scenario year
type BudgetVsActualReport struct {
	ScenarioID  string              `json:"scenarioID"`
	Year        int                 `json:"year"`
	Rows        []BudgetVsActualRow `json:"rows"`
	Income      TypeTotals          `json:"income"`
	Expenses    TypeTotals          `json:"expenses"`
	NetBudget   decimal.Decimal     `json:"netBudget"` // Income minus expenses
	NetActual   decimal.Decimal     `json:"netActual"`
	NetVariance decimal.Decimal     `json:"netVariance"`
}
