package services

import (
	"context"
	"io"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/dto"
)

// GLAccountReaderSvc defines read operations on GL accounts
type GLAccountReaderSvc interface {
	ListGLAccounts(ctx context.Context, organizationID, userID string, filter domain.GLAccountFilter) ([]domain.GLAccount, error)
	GetGLAccount(ctx context.Context, organizationID, glAccountID, userID string) (*domain.GLAccount, error)

	// GetGLAccountTree nests accounts by parent code. Accounts whose parent is missing are roots marked orphan.
	GetGLAccountTree(ctx context.Context, organizationID, userID string) ([]domain.GLAccountNode, error)
}

// GLAccountWriterSvc defines write operations on GL accounts
type GLAccountWriterSvc interface {
	// CreateGLAccount classifies the code and stores a manual account. Malformed codes fail validation.
	CreateGLAccount(ctx context.Context, organizationID, userID string, req dto.CreateGLAccountRequest) (*domain.GLAccount, error)

	UpdateGLAccount(ctx context.Context, organizationID, glAccountID, userID string, req dto.UpdateGLAccountRequest) (*domain.GLAccount, error)
}

// GLAccountImportSvc imports a chart of accounts from a spreadsheet
type GLAccountImportSvc interface {
	ImportGLAccounts(ctx context.Context, organizationID, userID string, file io.Reader) (*domain.ImportResult, error)
}

// GLAccountSvcFacade combines all GL account service interfaces
type GLAccountSvcFacade interface {
	GLAccountReaderSvc
	GLAccountWriterSvc
	GLAccountImportSvc
}
