package services

import (
	"context"
	"log/slog"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/gateways"
	portssvc "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/services"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	OrganizationAuthorizer portssvc.OrganizationAuthorizerSvc
	// Analytics is optional.
	Analytics gateways.Analytics
}

// Analytics events.
const (
	EventGLAccountsImported = "gl_accounts_imported"
	EventExactSyncFinished  = "exact_sync_finished"
)

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeUser checks if a user has the required role for an organization.
// Without an authorizer every action is refused.
func (s *BaseService) AuthorizeUser(ctx context.Context, userID, organizationID string, requiredRole domain.UserOrganizationRole) error {
	if s.OrganizationAuthorizer != nil {
		return s.OrganizationAuthorizer.AuthorizeUserAction(ctx, userID, organizationID, requiredRole)
	}
	s.LogError(ctx, apperrors.ErrForbidden, "No organization authorizer configured, access denied",
		slog.String("user_id", userID),
		slog.String("organization_id", organizationID),
		slog.String("required_role", string(requiredRole)))
	return apperrors.NewForbiddenError("authorization is not configured")
}

// CaptureEvent sends an analytics event for userID when analytics is configured.
func (s *BaseService) CaptureEvent(userID, event string, properties map[string]any) {
	if s.Analytics == nil || userID == "" {
		return
	}
	s.Analytics.Capture(userID, event, properties)
}
