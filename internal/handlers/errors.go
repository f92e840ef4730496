package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/dto"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/middleware"
)

// ErrorResponse is the body of every non-Exact error answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

const (
	msgExactSessionExpired = "Exact Online sessie is verlopen, koppel opnieuw"
	msgExactNoPermission   = "Geen rechten voor deze Exact Online administratie"
)

// errorStatus maps service errors to HTTP status codes.
func errorStatus(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrExactStateInvalid):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrLockNotObtained):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrUnauthorized), errors.Is(err, apperrors.ErrExactTokenRefresh):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrExactTokenNotFound), errors.Is(err, apperrors.ErrExactNotConnected):
		return http.StatusBadRequest
	}
	if _, ok := apperrors.ExactStatusCode(err); ok {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondError writes {error}. Server errors hide the cause behind fallback.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: fallback})
		return
	}
	logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, ErrorResponse{Error: clientMessage(err)})
}

// clientMessage prefers the AppError message over the wrapped chain.
func clientMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// exactErrorMessage is the user-facing text for a failed Exact Online call.
// A rejected refresh means the user must reconnect, whatever Exact answered.
func exactErrorMessage(err error) string {
	if errors.Is(err, apperrors.ErrExactTokenRefresh) {
		return msgExactSessionExpired
	}
	if status, ok := apperrors.ExactStatusCode(err); ok {
		switch status {
		case http.StatusUnauthorized:
			return msgExactSessionExpired
		case http.StatusForbidden:
			return msgExactNoPermission
		}
	}
	switch {
	case errors.Is(err, apperrors.ErrExactTokenNotFound):
		return apperrors.ErrExactTokenNotFound.Error()
	case errors.Is(err, apperrors.ErrLockNotObtained):
		return apperrors.ErrLockNotObtained.Error()
	}
	return clientMessage(err)
}

// respondExactError writes the {status:"error", error} envelope of the Exact endpoints.
func respondExactError(c *gin.Context, err error, logMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := errorStatus(err)
	attrs := []any{slog.String("error", err.Error()), slog.Int("status", status)}
	if upstream, ok := apperrors.ExactStatusCode(err); ok {
		attrs = append(attrs, slog.Int("upstream_status", upstream))
	}
	if status >= http.StatusInternalServerError {
		logger.Error(logMsg, attrs...)
	} else {
		logger.Warn(logMsg, attrs...)
	}
	c.JSON(status, dto.ExactFailed(exactErrorMessage(err)))
}

// currentUserID aborts with 401 when the auth middleware did not set a user.
func currentUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
