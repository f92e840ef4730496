// Package gateways declares the external systems the core services talk to.
package gateways

import (
	"context"
	"io"
	"time"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
)

// ExactTokenEndpoint is the Exact Online OAuth2 token endpoint.
type ExactTokenEndpoint interface {
	// AuthCodeURL returns the consent URL carrying state.
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for a token grant.
	Exchange(ctx context.Context, code string) (*domain.ExactTokenGrant, error)

	// Refresh performs the refresh_token grant. Non-2xx answers surface as *apperrors.ExactAPIError.
	Refresh(ctx context.Context, refreshToken string) (*domain.ExactTokenGrant, error)
}

// ExactAPI is the Exact Online REST (OData) API.
type ExactAPI interface {
	// CurrentDivision returns the division and full name of the authorizing user.
	CurrentDivision(ctx context.Context, accessToken string) (division int, userName string, err error)

	ListGLAccounts(ctx context.Context, accessToken string, division int) ([]domain.ExactGLAccount, error)

	// ListTransactionLines returns booked lines dated in [from, to].
	ListTransactionLines(ctx context.Context, accessToken string, division int, from, to time.Time) ([]domain.ExactTransactionLine, error)
}

// Locker serializes work per key across processes.
type Locker interface {
	// Obtain acquires key for ttl or fails with apperrors.ErrLockNotObtained.
	Obtain(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}

// GLAccountSheetReader parses an uploaded chart-of-accounts workbook.
type GLAccountSheetReader interface {
	ReadGLAccountRows(r io.Reader) ([]domain.GLAccountRow, error)
}

// Analytics records product events. Capture must not block the caller.
type Analytics interface {
	Capture(distinctID, event string, properties map[string]any)
}
