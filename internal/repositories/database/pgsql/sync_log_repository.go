package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	portsrepo "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/repositories"
)

type PgxSyncLogRepository struct {
	BaseRepository
}

func newPgxSyncLogRepository(pool *pgxpool.Pool) portsrepo.SyncLogRepository {
	return &PgxSyncLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SyncLogRepository = (*PgxSyncLogRepository)(nil)

func (r *PgxSyncLogRepository) CreateSyncLog(ctx context.Context, log domain.SyncLog) error {
	query := `
		INSERT INTO sync_logs (sync_log_id, organization_id, sync_type, status,
			processed, created, updated, failed, error_message,
			period_start, period_end, started_at, finished_at, started_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		log.SyncLogID, log.OrganizationID, string(log.SyncType), string(log.Status),
		log.Processed, log.Created, log.Updated, log.Failed, log.ErrorMessage,
		log.PeriodStart, log.PeriodEnd, log.StartedAt, log.FinishedAt, log.StartedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to create sync log", err)
	}
	return nil
}

func (r *PgxSyncLogRepository) UpdateSyncLog(ctx context.Context, log domain.SyncLog) error {
	query := `
		UPDATE sync_logs SET
			status = $2, processed = $3, created = $4, updated = $5, failed = $6,
			error_message = $7, finished_at = $8
		WHERE sync_log_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		log.SyncLogID, string(log.Status), log.Processed, log.Created, log.Updated, log.Failed,
		log.ErrorMessage, log.FinishedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update sync log "+log.SyncLogID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("sync log not found")
	}
	return nil
}

func (r *PgxSyncLogRepository) ListSyncLogs(ctx context.Context, organizationID string, limit int, cursor *portsrepo.SyncLogCursor) ([]domain.SyncLog, error) {
	query := `
		SELECT sync_log_id, organization_id, sync_type, status,
			processed, created, updated, failed, error_message,
			period_start, period_end, started_at, finished_at, started_by
		FROM sync_logs
		WHERE organization_id = $1
	`
	args := []any{organizationID}
	if cursor != nil {
		query += ` AND (started_at, sync_log_id) < ($3, $4)`
		args = append(args, limit, cursor.StartedAt, cursor.SyncLogID)
	} else {
		args = append(args, limit)
	}
	query += ` ORDER BY started_at DESC, sync_log_id DESC LIMIT $2;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query sync logs", err)
	}
	defer rows.Close()

	logs := []domain.SyncLog{}
	for rows.Next() {
		var l domain.SyncLog
		var syncType, status string
		if err := rows.Scan(
			&l.SyncLogID, &l.OrganizationID, &syncType, &status,
			&l.Processed, &l.Created, &l.Updated, &l.Failed, &l.ErrorMessage,
			&l.PeriodStart, &l.PeriodEnd, &l.StartedAt, &l.FinishedAt, &l.StartedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan sync log", err)
		}
		l.SyncType = domain.SyncType(syncType)
		l.Status = domain.SyncStatus(status)
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate sync logs", err)
	}
	return logs, nil
}
