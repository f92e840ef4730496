package domain

import "github.com/shopspring/decimal"

// Product is something the organization sells, used to detail revenue budgets.
type Product struct {
	ProductID      string          `json:"productID"`
	OrganizationID string          `json:"organizationID"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	UnitCost       decimal.Decimal `json:"unitCost"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// Margin is the unit price minus the unit cost.
func (p Product) Margin() decimal.Decimal {
	return p.UnitPrice.Sub(p.UnitCost)
}
