package domain

// GLAccountRow is one data row of a GL account import sheet.
type GLAccountRow struct {
	RowNumber   int    `validate:"min=1"`
	Code        string `validate:"max=20"`
	Name        string `validate:"max=255"`
	BalanceType string
	DebitCredit string
}

// ImportIssue explains why a row was not imported.
type ImportIssue struct {
	Row    int    `json:"row"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// ImportResult summarizes a GL account import. Skipped rows had no code and are not errors.
type ImportResult struct {
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Errors   int           `json:"errors"`
	Issues   []ImportIssue `json:"issues"`
}

// AddIssue counts a failed row and keeps the reason.
func (r *ImportResult) AddIssue(row int, code, reason string) {
	r.Errors++
	r.Issues = append(r.Issues, ImportIssue{Row: row, Code: code, Reason: reason})
}
