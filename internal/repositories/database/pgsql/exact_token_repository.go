package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	portsrepo "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/repositories"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/models"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/utils/mapping"
)

type PgxExactTokenRepository struct {
	BaseRepository
}

func newPgxExactTokenRepository(pool *pgxpool.Pool) portsrepo.ExactTokenRepository {
	return &PgxExactTokenRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExactTokenRepository = (*PgxExactTokenRepository)(nil)

func (r *PgxExactTokenRepository) FindCurrentToken(ctx context.Context, organizationID string) (*domain.ExactToken, error) {
	query := `
		SELECT organization_id, access_token, refresh_token, token_type,
			expires_in, division, created_at, created_by
		FROM exact_tokens
		WHERE organization_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query exact token", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.ExactToken])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to collect exact token row", err)
	}
	token := mapping.ToDomainExactToken(m)
	return &token, nil
}

func (r *PgxExactTokenRepository) SaveToken(ctx context.Context, token domain.ExactToken) error {
	m := mapping.ToModelExactToken(token)
	args := []any{m.OrganizationID, m.AccessToken, m.RefreshToken, m.TokenType, m.ExpiresIn, m.Division, m.CreatedAt, m.CreatedBy}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO exact_tokens (organization_id, access_token, refresh_token, token_type,
			expires_in, division, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (organization_id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			token_type = EXCLUDED.token_type,
			expires_in = EXCLUDED.expires_in,
			division = EXCLUDED.division,
			created_at = EXCLUDED.created_at,
			created_by = EXCLUDED.created_by;`, args...)
	batch.Queue(`
		INSERT INTO exact_token_history (organization_id, access_token, refresh_token, token_type,
			expires_in, division, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`, args...)

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to save exact token for organization "+token.OrganizationID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxExactTokenRepository) DeleteCurrentToken(ctx context.Context, organizationID string) error {
	_, err := r.Pool.Exec(ctx, `DELETE FROM exact_tokens WHERE organization_id = $1;`, organizationID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete exact token for organization "+organizationID, err)
	}
	return nil
}
