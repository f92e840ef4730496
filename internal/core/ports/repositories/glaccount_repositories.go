package repositories

import (
	"context"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
)

// GLAccountReader defines read operations for GL accounts
type GLAccountReader interface {
	FindGLAccountByID(ctx context.Context, organizationID, glAccountID string) (*domain.GLAccount, error)
	FindGLAccountByCode(ctx context.Context, organizationID, code string) (*domain.GLAccount, error)

	// ListGLAccounts returns the organization's accounts ordered by code.
	ListGLAccounts(ctx context.Context, organizationID string, filter domain.GLAccountFilter) ([]domain.GLAccount, error)

	// MapExternalIDs returns Exact GL account ID -> local GL account for every linked account.
	MapExternalIDs(ctx context.Context, organizationID string) (map[string]domain.GLAccount, error)
}

// GLAccountWriter defines write operations for GL accounts. Accounts are never deleted.
type GLAccountWriter interface {
	SaveGLAccount(ctx context.Context, account domain.GLAccount) error
	UpdateGLAccount(ctx context.Context, account domain.GLAccount) error

	// UpsertGLAccountsByCode writes a batch keyed on (organization_id, code) and returns the rows written.
	UpsertGLAccountsByCode(ctx context.Context, accounts []domain.GLAccount) (int, error)

	// UpsertGLAccountByExternalID writes one Exact account keyed on (organization_id, external_id).
	// created is false when an existing row was updated.
	UpsertGLAccountByExternalID(ctx context.Context, account domain.GLAccount) (created bool, err error)
}

// GLAccountRepositoryFacade combines all GL account repository interfaces
type GLAccountRepositoryFacade interface {
	GLAccountReader
	GLAccountWriter
}
