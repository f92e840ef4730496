package accounting

import (
	"errors"
	"fmt"
	"strings"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
)

// ErrInvalidCode marks a GL account code that is empty, non-numeric or too short
// to derive a parent from. Classify still returns the documented defaults with it.
var ErrInvalidCode = errors.New("invalid GL account code")

// CodeInput is what the classifier needs to know about an account.
// BalanceType and DebitCredit are optional and only consulted when the code
// prefix is not conclusive.
type CodeInput struct {
	Code        string
	BalanceType string
	DebitCredit string
}

// Classification is the derived hierarchy position and type of a GL account.
type Classification struct {
	Level      domain.GLAccountLevel
	ParentCode *string
	Type       domain.GLAccountType
}

// Classify derives level, parent code and type for a GL account code.
// On a malformed code the classification holds the fail-closed defaults
// (level 1, no parent, type from the aux fields) and err wraps ErrInvalidCode,
// so the caller decides whether to keep the defaults or reject the row.
func Classify(in CodeInput) (Classification, error) {
	code := strings.TrimSpace(in.Code)
	level := DetermineLevel(code)
	c := Classification{
		Level:      level,
		ParentCode: DetermineParentCode(code, level),
		Type:       DetermineType(code, in.BalanceType, in.DebitCredit),
	}

	if !isDigits(code) {
		return c, fmt.Errorf("%w: %q must contain digits only", ErrInvalidCode, in.Code)
	}
	if level != domain.LevelMainGroup && c.ParentCode == nil {
		return c, fmt.Errorf("%w: %q is too short to derive a parent code", ErrInvalidCode, in.Code)
	}
	return c, nil
}

// DetermineLevel returns 1 for codes ending in "00" (hoofdgroep), 2 for codes
// ending in a single "0" (subgroep) and 3 for all other numeric codes (kostenpost).
// Empty or non-numeric codes default to level 1.
func DetermineLevel(code string) domain.GLAccountLevel {
	if !isDigits(code) {
		return domain.LevelMainGroup
	}
	switch {
	case len(code) >= 3 && strings.HasSuffix(code, "00"):
		return domain.LevelMainGroup
	case len(code) >= 2 && strings.HasSuffix(code, "0"):
		return domain.LevelSubGroup
	default:
		return domain.LevelCostItem
	}
}

// DetermineParentCode returns the code of the enclosing group: the first two
// digits plus "00" for a subgroup, the first three digits plus "0" for a cost item.
// Main groups and codes too short to slice have no parent.
func DetermineParentCode(code string, level domain.GLAccountLevel) *string {
	var parent string
	switch level {
	case domain.LevelSubGroup:
		if len(code) < 2 {
			return nil
		}
		parent = code[:2] + "00"
	case domain.LevelCostItem:
		if len(code) < 3 {
			return nil
		}
		parent = code[:3] + "0"
	default:
		return nil
	}
	return &parent
}

// DetermineType classifies an account as income, expense or balance.
// The leading digit decides first (8, 9 income; 4 to 7 expense). Otherwise a
// profit-and-loss account falls back on its debit/credit side.
func DetermineType(code, balanceType, debitCredit string) domain.GLAccountType {
	if code != "" {
		switch code[0] {
		case '8', '9':
			return domain.GLTypeIncome
		case '4', '5', '6', '7':
			return domain.GLTypeExpense
		}
	}

	if strings.EqualFold(strings.TrimSpace(balanceType), domain.BalanceTypeProfitLoss) {
		switch {
		case strings.EqualFold(strings.TrimSpace(debitCredit), domain.SideDebit):
			return domain.GLTypeExpense
		case strings.EqualFold(strings.TrimSpace(debitCredit), domain.SideCredit):
			return domain.GLTypeIncome
		}
	}
	return domain.GLTypeBalance
}

// ExactBalanceType maps Exact's one-letter BalanceType to the sheet wording.
func ExactBalanceType(v string) string {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "W":
		return domain.BalanceTypeProfitLoss
	case "B":
		return domain.BalanceTypeBalance
	default:
		return ""
	}
}

// ExactBalanceSide maps Exact's one-letter BalanceSide to Debet or Credit.
func ExactBalanceSide(v string) string {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "D":
		return domain.SideDebit
	case "C":
		return domain.SideCredit
	default:
		return ""
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
