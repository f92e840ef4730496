package services

import (
	"context"
	"time"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
)

// ExactTokenSvc hands out usable Exact Online access tokens
type ExactTokenSvc interface {
	// GetValidToken returns the stored token when still valid, otherwise refreshes and persists it.
	GetValidToken(ctx context.Context, organizationID string) (*domain.ExactToken, error)
}

// ExactConnectionSvc manages the OAuth link between an organization and Exact Online
type ExactConnectionSvc interface {
	// BuildAuthorizationURL returns the Exact consent URL with a signed state. Admins only.
	BuildAuthorizationURL(ctx context.Context, organizationID, userID string) (string, error)

	// CompleteAuthorization verifies state, exchanges the code and stores the first token.
	// It returns the organization the token was stored for.
	CompleteAuthorization(ctx context.Context, code, state string) (string, error)

	GetStatus(ctx context.Context, organizationID, userID string) (*domain.ExactConnectionStatus, error)

	// Disconnect removes the current token. Admins only.
	Disconnect(ctx context.Context, organizationID, userID string) error

	TestConnection(ctx context.Context, organizationID, userID string) (*domain.ExactConnectionInfo, error)
}

// ExactSyncSvc pulls data from Exact Online
type ExactSyncSvc interface {
	SyncGLAccounts(ctx context.Context, organizationID, userID string) (*domain.SyncLog, error)

	// SyncTransactions imports transaction lines dated in [startDate, endDate].
	SyncTransactions(ctx context.Context, organizationID, userID string, startDate, endDate time.Time) (*domain.SyncLog, error)

	// ListSyncLogs returns a page of sync history and the token of the next page, empty when done.
	ListSyncLogs(ctx context.Context, organizationID, userID string, limit int, nextToken string) ([]domain.SyncLog, string, error)
}
