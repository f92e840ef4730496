package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Scenario is a named budget version for one year.
type Scenario struct {
	ScenarioID     string `json:"scenarioID"`
	OrganizationID string `json:"organizationID"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Year           int    `json:"year"`
	AuditFields
}

// EntryType tells whether a budget entry is planned income or planned cost.
type EntryType string

const (
	EntryTypeRevenue EntryType = "revenue"
	EntryTypeExpense EntryType = "expense"
)

// MatchesAccountType reports whether the entry type is allowed on an account of type t.
// Balance accounts accept either.
func (e EntryType) MatchesAccountType(t GLAccountType) bool {
	switch t {
	case GLTypeIncome:
		return e == EntryTypeRevenue
	case GLTypeExpense:
		return e == EntryTypeExpense
	default:
		return e == EntryTypeRevenue || e == EntryTypeExpense
	}
}

// BudgetEntry is a planned amount for one GL account in one month.
type BudgetEntry struct {
	BudgetEntryID  string          `json:"budgetEntryID"`
	OrganizationID string          `json:"organizationID"`
	ScenarioID     string          `json:"scenarioID"`
	GLAccountID    string          `json:"glAccountID"`
	ProductID      *string         `json:"productID,omitempty"`
	EntryType      EntryType       `json:"entryType"`
	Period         time.Time       `json:"period"` // first day of the month, UTC
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	AuditFields
}

// FirstOfMonth normalizes t to the first day of its month in UTC.
func FirstOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// ActualEntry is a booked amount imported from Exact Online transaction lines.
type ActualEntry struct {
	ActualEntryID  string          `json:"actualEntryID"`
	OrganizationID string          `json:"organizationID"`
	GLAccountID    string          `json:"glAccountID"`
	ExternalID     string          `json:"externalID"`
	EntryDate      time.Time       `json:"entryDate"`
	Amount         decimal.Decimal `json:"amount"` // AmountDC as booked: debit positive
	Description    string          `json:"description"`
	EntryNumber    int             `json:"entryNumber"`
	CreatedAt      time.Time       `json:"createdAt"`
}
