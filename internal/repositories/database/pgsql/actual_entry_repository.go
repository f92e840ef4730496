package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	portsrepo "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/repositories"
)

type PgxActualEntryRepository struct {
	BaseRepository
}

func newPgxActualEntryRepository(pool *pgxpool.Pool) portsrepo.ActualEntryRepository {
	return &PgxActualEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ActualEntryRepository = (*PgxActualEntryRepository)(nil)

func (r *PgxActualEntryRepository) UpsertActualEntries(ctx context.Context, entries []domain.ActualEntry) (int, int, error) {
	if len(entries) == 0 {
		return 0, 0, nil
	}

	query := `
		INSERT INTO actual_entries (actual_entry_id, organization_id, gl_account_id, external_id,
			entry_date, amount, description, entry_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (organization_id, external_id) DO UPDATE SET
			gl_account_id = EXCLUDED.gl_account_id,
			entry_date = EXCLUDED.entry_date,
			amount = EXCLUDED.amount,
			description = EXCLUDED.description,
			entry_number = EXCLUDED.entry_number
		RETURNING (xmax = 0) AS inserted;
	`

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, 0, err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(query,
			e.ActualEntryID, e.OrganizationID, e.GLAccountID, e.ExternalID,
			e.EntryDate, e.Amount, e.Description, e.EntryNumber, e.CreatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	created, updated := 0, 0
	for _, e := range entries {
		var inserted bool
		if err := br.QueryRow().Scan(&inserted); err != nil {
			br.Close()
			return 0, 0, apperrors.NewAppError(500, "failed to upsert actual entry "+e.ExternalID, err)
		}
		if inserted {
			created++
		} else {
			updated++
		}
	}
	if err := br.Close(); err != nil {
		return 0, 0, apperrors.NewAppError(500, "failed to close actual entry batch", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, 0, err
	}
	return created, updated, nil
}

func (r *PgxActualEntryRepository) SumActualsByAccount(ctx context.Context, organizationID string, from, to time.Time) ([]domain.AccountTotal, error) {
	query := `
		SELECT gl_account_id, COALESCE(SUM(amount), 0)
		FROM actual_entries
		WHERE organization_id = $1 AND entry_date >= $2 AND entry_date < $3
		GROUP BY gl_account_id;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying actual totals: %w", err)
	}
	return collectAccountTotals(rows)
}

// collectAccountTotals scans (gl_account_id, amount) rows. It never returns a nil slice.
func collectAccountTotals(rows pgx.Rows) ([]domain.AccountTotal, error) {
	defer rows.Close()

	totals := []domain.AccountTotal{}
	for rows.Next() {
		var t domain.AccountTotal
		if err := rows.Scan(&t.GLAccountID, &t.Amount); err != nil {
			return nil, fmt.Errorf("error scanning account total row: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account total rows: %w", err)
	}
	return totals, nil
}
