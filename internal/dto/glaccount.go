package dto

import (
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
)

// CreateGLAccountRequest defines data for manually creating a GL account.
// Level, parent and type are derived from the code.
type CreateGLAccountRequest struct {
	Code        string `json:"code" binding:"required,max=20"`
	Name        string `json:"name" binding:"required,max=255"`
	BalanceType string `json:"balanceType" binding:"omitempty,oneof='Balans' 'Winst & Verlies'"`
	DebitCredit string `json:"debitCredit" binding:"omitempty,oneof=Debet Credit"`
}

// UpdateGLAccountRequest uses pointers to differentiate omitted fields from zero values.
type UpdateGLAccountRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=255"`
	IsActive *bool   `json:"isActive"`
}

// ListGLAccountsParams are the optional filters of the GL account listing.
type ListGLAccountsParams struct {
	Level      int    `form:"level" binding:"omitempty,oneof=1 2 3"`
	Type       string `form:"type" binding:"omitempty,oneof=Inkomsten Uitgaven Balans"`
	ActiveOnly bool   `form:"active"`
}

// ToFilter converts the query params to a repository filter.
func (p ListGLAccountsParams) ToFilter() domain.GLAccountFilter {
	return domain.GLAccountFilter{
		Level:      domain.GLAccountLevel(p.Level),
		Type:       domain.GLAccountType(p.Type),
		ActiveOnly: p.ActiveOnly,
	}
}

// ListGLAccountsResponse wraps a list of GL accounts.
type ListGLAccountsResponse struct {
	GLAccounts []domain.GLAccount `json:"glAccounts"`
}

// GLAccountTreeResponse wraps the account hierarchy.
type GLAccountTreeResponse struct {
	Roots []domain.GLAccountNode `json:"roots"`
}
