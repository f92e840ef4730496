package accounting_test

import (
	"testing"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestReportingAmount(t *testing.T) {
	credit := decimal.RequireFromString("-1250.50")
	debit := decimal.RequireFromString("300")

	assert.True(t, accounting.ReportingAmount(credit, domain.GLTypeIncome).Equal(decimal.RequireFromString("1250.50")))
	assert.True(t, accounting.ReportingAmount(debit, domain.GLTypeExpense).Equal(debit))
	assert.True(t, accounting.ReportingAmount(debit, domain.GLTypeBalance).Equal(debit))
}

func TestVarianceAndNetResult(t *testing.T) {
	budget := decimal.NewFromInt(1000)
	actual := decimal.NewFromInt(1200)

	assert.True(t, accounting.Variance(budget, actual).Equal(decimal.NewFromInt(200)))
	assert.True(t, accounting.NetResult(decimal.NewFromInt(5000), decimal.NewFromInt(3500)).Equal(decimal.NewFromInt(1500)))
}
