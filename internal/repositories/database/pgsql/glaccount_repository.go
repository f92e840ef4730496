package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	portsrepo "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/repositories"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/models"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/utils/mapping"
)

// PgxGLAccountRepository implements the GL account repository on PostgreSQL.
type PgxGLAccountRepository struct {
	BaseRepository
}

// newPgxGLAccountRepository creates a new repository for GL account data.
func newPgxGLAccountRepository(pool *pgxpool.Pool) portsrepo.GLAccountRepositoryFacade {
	return &PgxGLAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.GLAccountRepositoryFacade = (*PgxGLAccountRepository)(nil)

const selectGLAccountQuery = `
SELECT gl_account_id, organization_id, code, name, level, parent_code, type,
	balance_type, debit_credit, external_id, source, is_active,
	created_at, created_by, last_updated_at, last_updated_by
FROM gl_accounts
`

const insertGLAccountColumns = `
INSERT INTO gl_accounts (gl_account_id, organization_id, code, name, level, parent_code, type,
	balance_type, debit_credit, external_id, source, is_active,
	created_at, created_by, last_updated_at, last_updated_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
`

func glAccountArgs(m models.GLAccount) []any {
	return []any{
		m.GLAccountID, m.OrganizationID, m.Code, m.Name, m.Level, m.ParentCode, m.Type,
		m.BalanceType, m.DebitCredit, m.ExternalID, m.Source, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

func (r *PgxGLAccountRepository) queryGLAccounts(ctx context.Context, filter string, args ...any) ([]domain.GLAccount, error) {
	rows, err := r.Pool.Query(ctx, selectGLAccountQuery+filter, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying gl accounts: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.GLAccount])
	if err != nil {
		return nil, fmt.Errorf("error collecting gl account rows: %w", err)
	}
	return mapping.ToDomainGLAccountSlice(ms), nil
}

func (r *PgxGLAccountRepository) findOne(ctx context.Context, filter string, args ...any) (*domain.GLAccount, error) {
	rows, err := r.Pool.Query(ctx, selectGLAccountQuery+filter, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query gl account", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.GLAccount])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("gl account not found")
		}
		return nil, apperrors.NewAppError(500, "failed to collect gl account row", err)
	}
	acc := mapping.ToDomainGLAccount(m)
	return &acc, nil
}

func (r *PgxGLAccountRepository) FindGLAccountByID(ctx context.Context, organizationID, glAccountID string) (*domain.GLAccount, error) {
	return r.findOne(ctx, "WHERE organization_id = $1 AND gl_account_id = $2", organizationID, glAccountID)
}

func (r *PgxGLAccountRepository) FindGLAccountByCode(ctx context.Context, organizationID, code string) (*domain.GLAccount, error) {
	return r.findOne(ctx, "WHERE organization_id = $1 AND code = $2", organizationID, code)
}

func (r *PgxGLAccountRepository) ListGLAccounts(ctx context.Context, organizationID string, filter domain.GLAccountFilter) ([]domain.GLAccount, error) {
	where := "WHERE organization_id = $1"
	args := []any{organizationID}
	if filter.Level != 0 {
		args = append(args, int16(filter.Level))
		where += fmt.Sprintf(" AND level = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		where += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.ActiveOnly {
		where += " AND is_active = TRUE"
	}
	return r.queryGLAccounts(ctx, where+" ORDER BY code;", args...)
}

func (r *PgxGLAccountRepository) MapExternalIDs(ctx context.Context, organizationID string) (map[string]domain.GLAccount, error) {
	accounts, err := r.queryGLAccounts(ctx, "WHERE organization_id = $1 AND external_id IS NOT NULL;", organizationID)
	if err != nil {
		return nil, err
	}
	byExternal := make(map[string]domain.GLAccount, len(accounts))
	for _, acc := range accounts {
		byExternal[*acc.ExternalID] = acc
	}
	return byExternal, nil
}

func (r *PgxGLAccountRepository) SaveGLAccount(ctx context.Context, account domain.GLAccount) error {
	_, err := r.Pool.Exec(ctx, insertGLAccountColumns, glAccountArgs(mapping.ToModelGLAccount(account))...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("gl account with code " + account.Code + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save gl account "+account.Code, err)
	}
	return nil
}

func (r *PgxGLAccountRepository) UpdateGLAccount(ctx context.Context, account domain.GLAccount) error {
	query := `
		UPDATE gl_accounts
		SET name = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE organization_id = $1 AND gl_account_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.OrganizationID, account.GLAccountID, account.Name, account.IsActive,
		account.LastUpdatedAt, account.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update gl account "+account.GLAccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("gl account not found")
	}
	return nil
}

// UpsertGLAccountsByCode keeps the identity, source and external link of rows that already exist.
func (r *PgxGLAccountRepository) UpsertGLAccountsByCode(ctx context.Context, accounts []domain.GLAccount) (int, error) {
	if len(accounts) == 0 {
		return 0, nil
	}

	query := insertGLAccountColumns + `
		ON CONFLICT (organization_id, code) DO UPDATE SET
			name = EXCLUDED.name,
			level = EXCLUDED.level,
			parent_code = EXCLUDED.parent_code,
			type = EXCLUDED.type,
			balance_type = EXCLUDED.balance_type,
			debit_credit = EXCLUDED.debit_credit,
			is_active = TRUE,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, acc := range accounts {
		batch.Queue(query, glAccountArgs(mapping.ToModelGLAccount(acc))...)
	}

	br := tx.SendBatch(ctx, batch)
	written := 0
	for _, acc := range accounts {
		tag, err := br.Exec()
		if err != nil {
			br.Close()
			return 0, apperrors.NewAppError(500, "failed to upsert gl account "+acc.Code, err)
		}
		written += int(tag.RowsAffected())
	}
	if err := br.Close(); err != nil {
		return 0, apperrors.NewAppError(500, "failed to close gl account batch", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return written, nil
}

// UpsertGLAccountByExternalID first follows the external link. An unlinked account
// with the same code is adopted instead of duplicated.
func (r *PgxGLAccountRepository) UpsertGLAccountByExternalID(ctx context.Context, account domain.GLAccount) (bool, error) {
	if account.ExternalID == nil {
		return false, apperrors.NewValidationFailedError("external id is required")
	}
	m := mapping.ToModelGLAccount(account)

	updateQuery := `
		UPDATE gl_accounts SET
			code = $3, name = $4, level = $5, parent_code = $6, type = $7,
			balance_type = $8, debit_credit = $9, is_active = TRUE,
			last_updated_at = $10, last_updated_by = $11
		WHERE organization_id = $1 AND external_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, updateQuery,
		m.OrganizationID, m.ExternalID, m.Code, m.Name, m.Level, m.ParentCode, m.Type,
		m.BalanceType, m.DebitCredit, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, apperrors.NewConflictError("gl account code " + account.Code + " is used by another account")
		}
		return false, apperrors.NewAppError(500, "failed to update gl account "+account.Code, err)
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	insertQuery := insertGLAccountColumns + `
		ON CONFLICT (organization_id, code) DO UPDATE SET
			name = EXCLUDED.name,
			level = EXCLUDED.level,
			parent_code = EXCLUDED.parent_code,
			type = EXCLUDED.type,
			balance_type = EXCLUDED.balance_type,
			debit_credit = EXCLUDED.debit_credit,
			external_id = EXCLUDED.external_id,
			is_active = TRUE,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		WHERE gl_accounts.external_id IS NULL
		RETURNING (xmax = 0) AS inserted;
	`
	var inserted bool
	err = r.Pool.QueryRow(ctx, insertQuery, glAccountArgs(m)...).Scan(&inserted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, apperrors.NewConflictError("gl account code " + account.Code + " is linked to another Exact account")
		}
		if isUniqueViolation(err) {
			return false, apperrors.NewConflictError("gl account " + account.Code + " already exists")
		}
		return false, apperrors.NewAppError(500, "failed to insert gl account "+account.Code, err)
	}
	return inserted, nil
}
