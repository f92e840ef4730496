package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	portsrepo "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/repositories"
)

// PgxBudgetRepository stores scenarios and their budget entries.
type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(pool *pgxpool.Pool) *PgxBudgetRepository {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.ScenarioRepository    = (*PgxBudgetRepository)(nil)
	_ portsrepo.BudgetEntryRepository = (*PgxBudgetRepository)(nil)
)

func (r *PgxBudgetRepository) SaveScenario(ctx context.Context, s domain.Scenario) error {
	query := `
		INSERT INTO scenarios (scenario_id, organization_id, name, description, year,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		s.ScenarioID, s.OrganizationID, s.Name, s.Description, s.Year,
		s.CreatedAt, s.CreatedBy, s.LastUpdatedAt, s.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save scenario "+s.ScenarioID, err)
	}
	return nil
}

const selectScenarioQuery = `
SELECT scenario_id, organization_id, name, description, year,
	created_at, created_by, last_updated_at, last_updated_by
FROM scenarios
`

func scanScenario(row pgx.Row) (domain.Scenario, error) {
	var s domain.Scenario
	err := row.Scan(
		&s.ScenarioID, &s.OrganizationID, &s.Name, &s.Description, &s.Year,
		&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
	)
	return s, err
}

func (r *PgxBudgetRepository) FindScenarioByID(ctx context.Context, organizationID, scenarioID string) (*domain.Scenario, error) {
	s, err := scanScenario(r.Pool.QueryRow(ctx, selectScenarioQuery+"WHERE organization_id = $1 AND scenario_id = $2;", organizationID, scenarioID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("scenario not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find scenario "+scenarioID, err)
	}
	return &s, nil
}

func (r *PgxBudgetRepository) ListScenarios(ctx context.Context, organizationID string) ([]domain.Scenario, error) {
	rows, err := r.Pool.Query(ctx, selectScenarioQuery+"WHERE organization_id = $1 ORDER BY year DESC, name;", organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query scenarios", err)
	}
	defer rows.Close()

	scenarios := []domain.Scenario{}
	for rows.Next() {
		s, err := scanScenario(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan scenario", err)
		}
		scenarios = append(scenarios, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate scenarios", err)
	}
	return scenarios, nil
}

// DeleteScenario relies on ON DELETE CASCADE for the entries.
func (r *PgxBudgetRepository) DeleteScenario(ctx context.Context, organizationID, scenarioID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM scenarios WHERE organization_id = $1 AND scenario_id = $2;`, organizationID, scenarioID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete scenario "+scenarioID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("scenario not found")
	}
	return nil
}

func (r *PgxBudgetRepository) SaveBudgetEntry(ctx context.Context, e domain.BudgetEntry) error {
	query := `
		INSERT INTO budget_entries (budget_entry_id, organization_id, scenario_id, gl_account_id, product_id,
			entry_type, period, amount, description,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		e.BudgetEntryID, e.OrganizationID, e.ScenarioID, e.GLAccountID, e.ProductID,
		string(e.EntryType), e.Period, e.Amount, e.Description,
		e.CreatedAt, e.CreatedBy, e.LastUpdatedAt, e.LastUpdatedBy,
	)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgForeignKeyViolation {
			return apperrors.NewValidationFailedError("referenced scenario, gl account or product does not exist")
		}
		return apperrors.NewAppError(500, "failed to save budget entry "+e.BudgetEntryID, err)
	}
	return nil
}

func (r *PgxBudgetRepository) ListBudgetEntries(ctx context.Context, organizationID, scenarioID string, period *time.Time) ([]domain.BudgetEntry, error) {
	query := `
		SELECT budget_entry_id, organization_id, scenario_id, gl_account_id, product_id,
			entry_type, period, amount, description,
			created_at, created_by, last_updated_at, last_updated_by
		FROM budget_entries
		WHERE organization_id = $1 AND scenario_id = $2
	`
	args := []any{organizationID, scenarioID}
	if period != nil {
		query += " AND period = $3"
		args = append(args, domain.FirstOfMonth(*period))
	}
	query += " ORDER BY period, gl_account_id;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying budget entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.BudgetEntry{}
	for rows.Next() {
		var e domain.BudgetEntry
		var entryType string
		if err := rows.Scan(
			&e.BudgetEntryID, &e.OrganizationID, &e.ScenarioID, &e.GLAccountID, &e.ProductID,
			&entryType, &e.Period, &e.Amount, &e.Description,
			&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("error scanning budget entry row: %w", err)
		}
		e.EntryType = domain.EntryType(entryType)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget entry rows: %w", err)
	}
	return entries, nil
}

func (r *PgxBudgetRepository) DeleteBudgetEntry(ctx context.Context, organizationID, scenarioID, entryID string) error {
	query := `DELETE FROM budget_entries WHERE organization_id = $1 AND scenario_id = $2 AND budget_entry_id = $3;`
	tag, err := r.Pool.Exec(ctx, query, organizationID, scenarioID, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete budget entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("budget entry not found")
	}
	return nil
}

func (r *PgxBudgetRepository) SumBudgetByAccount(ctx context.Context, organizationID, scenarioID string) ([]domain.AccountTotal, error) {
	query := `
		SELECT gl_account_id, COALESCE(SUM(amount), 0)
		FROM budget_entries
		WHERE organization_id = $1 AND scenario_id = $2
		GROUP BY gl_account_id;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("error querying budget totals: %w", err)
	}
	return collectAccountTotals(rows)
}
