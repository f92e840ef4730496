package services_test

import (
	"context"
	"testing"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/adapters/excel"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestImportGLAccounts_FromWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := [][]any{
		{"Code", "Omschrijving", "Balans/Winst & Verlies", "Debet/Credit"},
		{"2000", "Vaste activa", "Balans", "Debet"},
		{"4000", "Personeelskosten", "Winst & Verlies", "Debet"},
		{"4100", "Huisvesting", "Winst & Verlies", "Debet"},
		{"4110", "Huur", "Winst & Verlies", "Debet"},
		{"", "Tussenkop zonder code", "", ""},
		{"4111", "Huur kantoor", "Winst & Verlies", "Debet"},
		{"4300", "Kantoorkosten", "Winst & Verlies", "Debet"},
		{"4310", "Kantoorbenodigdheden", "Winst & Verlies", "Debet"},
		{"8000", "Omzet", "Winst & Verlies", "Credit"},
		{"", "Nog een lege code", "", ""},
		{"8100", "Omzet diensten", "Winst & Verlies", "Credit"},
		{"8110", "Consultancy", "Winst & Verlies", "Credit"},
	}
	for r, row := range sheet {
		axis, err := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, err)
		values := row
		require.NoError(t, f.SetSheetRow("Sheet1", axis, &values))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	repo := new(MockGLAccountRepository)
	authorizer := new(MockAuthorizer)
	svc := services.NewGLAccountService(repo,
		services.WithGLAccountAuthorizer(authorizer),
		services.WithSheetReader(excel.NewGLAccountReader()),
	)

	authorizer.On("AuthorizeUserAction", mock.Anything, "user-1", "org-1", domain.RoleMember).Return(nil).Once()
	var saved []domain.GLAccount
	repo.On("UpsertGLAccountsByCode", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = append(saved, args.Get(1).([]domain.GLAccount)...)
		}).
		Return(10, nil).Once()

	result, err := svc.ImportGLAccounts(context.Background(), "org-1", "user-1", buf)

	require.NoError(t, err)
	assert.Equal(t, 10, result.Imported)
	assert.Equal(t, 2, result.Skipped)
	assert.Equal(t, 0, result.Errors)
	assert.Empty(t, result.Issues)

	require.Len(t, saved, 10)
	var office *domain.GLAccount
	for i := range saved {
		if saved[i].Code == "4310" {
			office = &saved[i]
		}
	}
	require.NotNil(t, office)
	assert.Equal(t, domain.LevelSubGroup, office.Level)
	require.NotNil(t, office.ParentCode)
	assert.Equal(t, "4300", *office.ParentCode)
	assert.Equal(t, domain.GLTypeExpense, office.Type)
	assert.Equal(t, domain.SourceImport, office.Source)

	repo.AssertExpectations(t)
	authorizer.AssertExpectations(t)
}
