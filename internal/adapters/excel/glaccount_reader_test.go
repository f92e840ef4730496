package excel

import (
	"bytes"
	"strings"
	"testing"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes rows to the named sheets, in order, and returns the .xlsx bytes.
func buildWorkbook(t *testing.T, sheets map[string][][]any, order ...string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			axis, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			values := row
			require.NoError(t, f.SetSheetRow(name, axis, &values))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadGLAccountRows_LocatesHeaderByName(t *testing.T) {
	buf := buildWorkbook(t, map[string][][]any{
		"Rekeningschema": {
			{"Export grootboek 2024"},
			{},
			{"Omschrijving", "CODE", "Balans/Winst & Verlies", "Debet/Credit"},
			{"Omzet", "8000", "Winst & Verlies", "Credit"},
			{"Zonder code", "", "Balans", "Debet"},
			{},
			{"Lonen", "4010", "Winst & Verlies", "Debet"},
		},
	}, "Rekeningschema")

	rows, err := NewGLAccountReader().ReadGLAccountRows(buf)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, domain.GLAccountRow{RowNumber: 4, Code: "8000", Name: "Omzet", BalanceType: "Winst & Verlies", DebitCredit: "Credit"}, rows[0])
	assert.Equal(t, 5, rows[1].RowNumber)
	assert.Equal(t, "", rows[1].Code)
	assert.Equal(t, "Zonder code", rows[1].Name)
	assert.Equal(t, 7, rows[2].RowNumber)
	assert.Equal(t, "4010", rows[2].Code)
}

func TestReadGLAccountRows_SkipsSheetsWithoutCodeColumn(t *testing.T) {
	buf := buildWorkbook(t, map[string][][]any{
		"Info":   {{"Dit is een toelichting"}},
		"Import": {{"Code", "Naam"}, {"1000", "Vaste activa"}},
	}, "Info", "Import")

	rows, err := NewGLAccountReader().ReadGLAccountRows(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Vaste activa", rows[0].Name)
	assert.Equal(t, "", rows[0].BalanceType)
}

func TestReadGLAccountRows_NoCodeHeader(t *testing.T) {
	buf := buildWorkbook(t, map[string][][]any{
		"Sheet": {{"Naam", "Bedrag"}, {"Iets", 10}},
	}, "Sheet")

	_, err := NewGLAccountReader().ReadGLAccountRows(buf)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestReadGLAccountRows_NotAWorkbook(t *testing.T) {
	_, err := NewGLAccountReader().ReadGLAccountRows(strings.NewReader("code,naam\n1000,Kas\n"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
