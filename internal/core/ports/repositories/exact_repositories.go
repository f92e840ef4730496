package repositories

import (
	"context"
	"time"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
)

// ExactTokenRepository stores the current Exact Online token per organization.
type ExactTokenRepository interface {
	// FindCurrentToken returns apperrors.ErrNotFound when the organization has no token.
	FindCurrentToken(ctx context.Context, organizationID string) (*domain.ExactToken, error)

	// SaveToken replaces the current token and appends it to the history in one transaction.
	SaveToken(ctx context.Context, token domain.ExactToken) error

	// DeleteCurrentToken removes the current token. History rows are kept.
	DeleteCurrentToken(ctx context.Context, organizationID string) error
}

// SyncLogRepository persists synchronization runs.
type SyncLogRepository interface {
	CreateSyncLog(ctx context.Context, log domain.SyncLog) error
	UpdateSyncLog(ctx context.Context, log domain.SyncLog) error

	// ListSyncLogs returns runs newest first. A non-nil cursor continues after that run.
	ListSyncLogs(ctx context.Context, organizationID string, limit int, cursor *SyncLogCursor) ([]domain.SyncLog, error)
}

// SyncLogCursor points at the last sync log of a previous page.
type SyncLogCursor struct {
	StartedAt time.Time
	SyncLogID string
}

// ActualEntryRepository persists booked amounts synchronized from Exact Online.
type ActualEntryRepository interface {
	// UpsertActualEntries writes entries keyed on (organization_id, external_id).
	UpsertActualEntries(ctx context.Context, entries []domain.ActualEntry) (created, updated int, err error)

	// SumActualsByAccount sums booked amounts per GL account for entry dates in [from, to).
	SumActualsByAccount(ctx context.Context, organizationID string, from, to time.Time) ([]domain.AccountTotal, error)
}
