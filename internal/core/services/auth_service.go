package services

import (
	"context"
	"fmt"
	"time"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	portssvc "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/services"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/platform/config"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/utils"
)

// tokenService issues the application's own JWT access tokens.
type tokenService struct {
	BaseService
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	now := time.Now()
	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token")
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, now.Add(s.cfg.JWTExpiryDuration), nil
}
