// Package excel reads chart-of-accounts workbooks.
package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/gateways"
	"github.com/xuri/excelize/v2"
)

// The header row must appear within this many rows from the top of a sheet.
const headerSearchDepth = 20

// Header aliases, compared after lowercasing and removing whitespace.
var (
	codeHeaders        = []string{"code", "grootboekrekening", "rekening"}
	nameHeaders        = []string{"omschrijving", "naam", "description", "name"}
	balanceTypeHeaders = []string{"balans/winst&verlies", "balanstype", "balancetype"}
	debitCreditHeaders = []string{"debet/credit", "debitcredit", "balanceside"}
)

// GLAccountReader parses .xlsx uploads.
type GLAccountReader struct{}

var _ gateways.GLAccountSheetReader = (*GLAccountReader)(nil)

// NewGLAccountReader creates a workbook reader.
func NewGLAccountReader() *GLAccountReader {
	return &GLAccountReader{}
}

type columns struct {
	code, name, balanceType, debitCredit int
}

// ReadGLAccountRows returns the data rows of the first sheet that has a Code
// header. Rows with a blank code are returned as-is so the caller can count them.
func (GLAccountReader) ReadGLAccountRows(r io.Reader) ([]domain.GLAccountRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unable to open Excel file: %v", err))
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("unable to read sheet %q: %w", sheet, err)
		}

		headerIdx, cols, ok := findHeader(rows)
		if !ok {
			continue
		}
		return dataRows(rows, headerIdx, cols), nil
	}

	return nil, apperrors.NewValidationFailedError("no sheet with a 'Code' column found")
}

func findHeader(rows [][]string) (int, columns, bool) {
	for i := 0; i < len(rows) && i < headerSearchDepth; i++ {
		cols := columns{code: -1, name: -1, balanceType: -1, debitCredit: -1}
		for j, cell := range rows[i] {
			h := normalizeHeader(cell)
			switch {
			case cols.code < 0 && contains(codeHeaders, h):
				cols.code = j
			case cols.name < 0 && contains(nameHeaders, h):
				cols.name = j
			case cols.balanceType < 0 && contains(balanceTypeHeaders, h):
				cols.balanceType = j
			case cols.debitCredit < 0 && contains(debitCreditHeaders, h):
				cols.debitCredit = j
			}
		}
		if cols.code >= 0 {
			return i, cols, true
		}
	}
	return 0, columns{}, false
}

func dataRows(rows [][]string, headerIdx int, cols columns) []domain.GLAccountRow {
	var out []domain.GLAccountRow
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}
		out = append(out, domain.GLAccountRow{
			RowNumber:   i + 1, // spreadsheet rows are 1-based
			Code:        cell(row, cols.code),
			Name:        cell(row, cols.name),
			BalanceType: cell(row, cols.balanceType),
			DebitCredit: cell(row, cols.debitCredit),
		})
	}
	return out
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
