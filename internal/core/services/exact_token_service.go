package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/gateways"
	portsrepo "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/repositories"
	portssvc "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/services"
)

const tokenLockPrefix = "exact-token:"

// exactTokenService keeps one usable Exact Online token per organization.
type exactTokenService struct {
	BaseService
	tokenRepo portsrepo.ExactTokenRepository
	endpoint  gateways.ExactTokenEndpoint
	locker    gateways.Locker
	lockTTL   time.Duration
}

// NewExactTokenService creates the token manager. lockTTL bounds how long one refresh may hold the organization lock.
func NewExactTokenService(repo portsrepo.ExactTokenRepository, endpoint gateways.ExactTokenEndpoint, locker gateways.Locker, lockTTL time.Duration) portssvc.ExactTokenSvc {
	return &exactTokenService{
		tokenRepo: repo,
		endpoint:  endpoint,
		locker:    locker,
		lockTTL:   lockTTL,
	}
}

var _ portssvc.ExactTokenSvc = (*exactTokenService)(nil)

func (s *exactTokenService) GetValidToken(ctx context.Context, organizationID string) (*domain.ExactToken, error) {
	token, err := s.loadToken(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if !token.IsExpired(time.Now()) {
		return token, nil
	}

	release, err := s.locker.Obtain(ctx, tokenLockPrefix+organizationID, s.lockTTL)
	if err != nil {
		s.LogError(ctx, err, "Failed to obtain token refresh lock", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to lock Exact Online token refresh: %w", err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.LogError(ctx, err, "Failed to release token refresh lock", slog.String("organization_id", organizationID))
		}
	}()

	// Someone else may have refreshed while we waited for the lock.
	token, err = s.loadToken(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	requestedAt := time.Now()
	if !token.IsExpired(requestedAt) {
		s.LogDebug(ctx, "Exact Online token was refreshed concurrently", slog.String("organization_id", organizationID))
		return token, nil
	}

	grant, err := s.endpoint.Refresh(ctx, token.RefreshToken)
	if err != nil {
		attrs := []any{slog.String("organization_id", organizationID)}
		if status, ok := apperrors.ExactStatusCode(err); ok {
			attrs = append(attrs, slog.Int("upstream_status", status))
		}
		s.LogError(ctx, err, "Exact Online token refresh failed", attrs...)
		return nil, fmt.Errorf("%w: %w", apperrors.ErrExactTokenRefresh, err)
	}

	refreshed := domain.ExactToken{
		OrganizationID: organizationID,
		AccessToken:    grant.AccessToken,
		RefreshToken:   grant.RefreshToken,
		TokenType:      grant.TokenType,
		ExpiresIn:      grant.ExpiresIn,
		Division:       token.Division,
		CreatedAt:      requestedAt,
		CreatedBy:      token.CreatedBy,
	}
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = token.RefreshToken
	}
	if refreshed.TokenType == "" {
		refreshed.TokenType = token.TokenType
	}

	if err := s.tokenRepo.SaveToken(ctx, refreshed); err != nil {
		s.LogError(ctx, err, "Failed to persist refreshed Exact Online token", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save refreshed Exact Online token: %w", err)
	}

	s.LogInfo(ctx, "Exact Online token refreshed",
		slog.String("organization_id", organizationID),
		slog.Time("expires_at", refreshed.ExpiresAt()))
	return &refreshed, nil
}

func (s *exactTokenService) loadToken(ctx context.Context, organizationID string) (*domain.ExactToken, error) {
	token, err := s.tokenRepo.FindCurrentToken(ctx, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrExactTokenNotFound
		}
		s.LogError(ctx, err, "Failed to load Exact Online token", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to load Exact Online token: %w", err)
	}
	return token, nil
}
