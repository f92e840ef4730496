package accounting

import (
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingAmount converts a booked Exact amount (AmountDC, debit positive) into the
// sign used by reports, where both income and expenses are shown as positive figures.
// DEBIT to Uitgaven -> Positive (+)
// CREDIT to Inkomsten -> Positive (+), so the booked amount is negated
// Balance accounts keep the booked sign.
func ReportingAmount(amountDC decimal.Decimal, accountType domain.GLAccountType) decimal.Decimal {
	if accountType == domain.GLTypeIncome {
		return amountDC.Neg()
	}
	return amountDC
}

// Variance is actual minus budget.
func Variance(budget, actual decimal.Decimal) decimal.Decimal {
	return actual.Sub(budget)
}

// NetResult is income minus expenses.
func NetResult(income, expenses decimal.Decimal) decimal.Decimal {
	return income.Sub(expenses)
}
