package services

import (
	"context"
	"time"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
)

// TokenSvcFacade issues the application's own access tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
