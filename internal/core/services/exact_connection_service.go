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
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/utils"
)

// exactConnectionService runs the authorization-code flow that links an organization to Exact Online.
type exactConnectionService struct {
	BaseService
	tokenRepo   portsrepo.ExactTokenRepository
	tokens      portssvc.ExactTokenSvc
	endpoint    gateways.ExactTokenEndpoint
	api         gateways.ExactAPI
	stateSecret string
	stateTTL    time.Duration
}

// ExactConnectionDeps groups the collaborators of the connection service.
type ExactConnectionDeps struct {
	TokenRepo   portsrepo.ExactTokenRepository
	Tokens      portssvc.ExactTokenSvc
	Endpoint    gateways.ExactTokenEndpoint
	API         gateways.ExactAPI
	Authorizer  portssvc.OrganizationAuthorizerSvc
	StateSecret string
	StateTTL    time.Duration
}

func NewExactConnectionService(deps ExactConnectionDeps) portssvc.ExactConnectionSvc {
	svc := &exactConnectionService{
		tokenRepo:   deps.TokenRepo,
		tokens:      deps.Tokens,
		endpoint:    deps.Endpoint,
		api:         deps.API,
		stateSecret: deps.StateSecret,
		stateTTL:    deps.StateTTL,
	}
	svc.OrganizationAuthorizer = deps.Authorizer
	return svc
}

var _ portssvc.ExactConnectionSvc = (*exactConnectionService)(nil)

func (s *exactConnectionService) BuildAuthorizationURL(ctx context.Context, organizationID, userID string) (string, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleAdmin); err != nil {
		return "", err
	}
	nonce, err := utils.NewStateNonce()
	if err != nil {
		return "", fmt.Errorf("failed to create state nonce: %w", err)
	}
	state, err := utils.SignExactState(organizationID, userID, s.stateSecret, nonce, s.stateTTL, time.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to sign Exact Online state")
		return "", fmt.Errorf("failed to sign state: %w", err)
	}
	return s.endpoint.AuthCodeURL(state), nil
}

func (s *exactConnectionService) CompleteAuthorization(ctx context.Context, code, state string) (string, error) {
	claims, err := utils.ParseExactState(state, s.stateSecret)
	if err != nil {
		s.GetLogger(ctx).Warn("Rejected Exact Online callback state", slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %v", apperrors.ErrExactStateInvalid, err)
	}
	organizationID := claims.OrganizationID

	// The role may have been revoked between connect and callback.
	if err := s.AuthorizeUser(ctx, claims.UserID, organizationID, domain.RoleAdmin); err != nil {
		return "", err
	}

	grant, err := s.endpoint.Exchange(ctx, code)
	if err != nil {
		s.LogError(ctx, err, "Exact Online code exchange failed", slog.String("organization_id", organizationID))
		return "", fmt.Errorf("failed to exchange Exact Online authorization code: %w", err)
	}

	division, userName, err := s.api.CurrentDivision(ctx, grant.AccessToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to read Exact Online current division", slog.String("organization_id", organizationID))
		return "", fmt.Errorf("failed to read Exact Online division: %w", err)
	}

	token := domain.ExactToken{
		OrganizationID: organizationID,
		AccessToken:    grant.AccessToken,
		RefreshToken:   grant.RefreshToken,
		TokenType:      grant.TokenType,
		ExpiresIn:      grant.ExpiresIn,
		Division:       division,
		CreatedAt:      time.Now(),
		CreatedBy:      claims.UserID,
	}
	if err := s.tokenRepo.SaveToken(ctx, token); err != nil {
		s.LogError(ctx, err, "Failed to save Exact Online token", slog.String("organization_id", organizationID))
		return "", fmt.Errorf("failed to save Exact Online token: %w", err)
	}

	s.LogInfo(ctx, "Organization connected to Exact Online",
		slog.String("organization_id", organizationID),
		slog.Int("division", division),
		slog.String("exact_user", userName))
	return organizationID, nil
}

func (s *exactConnectionService) GetStatus(ctx context.Context, organizationID, userID string) (*domain.ExactConnectionStatus, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	token, err := s.tokenRepo.FindCurrentToken(ctx, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.ExactConnectionStatus{Connected: false}, nil
		}
		return nil, fmt.Errorf("failed to load Exact Online token: %w", err)
	}
	expiresAt := token.ExpiresAt()
	return &domain.ExactConnectionStatus{
		Connected: true,
		Division:  token.Division,
		ExpiresAt: &expiresAt,
		Expired:   token.IsExpired(time.Now()),
	}, nil
}

func (s *exactConnectionService) Disconnect(ctx context.Context, organizationID, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.tokenRepo.DeleteCurrentToken(ctx, organizationID); err != nil {
		s.LogError(ctx, err, "Failed to delete Exact Online token", slog.String("organization_id", organizationID))
		return fmt.Errorf("failed to disconnect Exact Online: %w", err)
	}
	s.LogInfo(ctx, "Organization disconnected from Exact Online",
		slog.String("organization_id", organizationID),
		slog.String("user_id", userID))
	return nil
}

func (s *exactConnectionService) TestConnection(ctx context.Context, organizationID, userID string) (*domain.ExactConnectionInfo, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	token, err := s.tokens.GetValidToken(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	current, userName, err := s.api.CurrentDivision(ctx, token.AccessToken)
	if err != nil {
		s.LogError(ctx, err, "Exact Online connection test failed", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("exact online connection test failed: %w", err)
	}
	return &domain.ExactConnectionInfo{
		Division:        token.Division,
		CurrentDivision: current,
		UserName:        userName,
	}, nil
}
