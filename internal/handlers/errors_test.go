package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestExactErrorMapping(t *testing.T) {
	invalidGrant := &apperrors.ExactAPIError{StatusCode: http.StatusBadRequest, Body: `{"error":"invalid_grant"}`, Endpoint: "oauth2/token"}

	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "refresh rejected with invalid_grant",
			err:     fmt.Errorf("%w: %w", apperrors.ErrExactTokenRefresh, invalidGrant),
			status:  http.StatusUnauthorized,
			message: msgExactSessionExpired,
		},
		{
			name:    "refresh failed without upstream answer",
			err:     fmt.Errorf("%w: dial tcp: timeout", apperrors.ErrExactTokenRefresh),
			status:  http.StatusUnauthorized,
			message: msgExactSessionExpired,
		},
		{
			name:    "api call unauthorized",
			err:     fmt.Errorf("fetch: %w", &apperrors.ExactAPIError{StatusCode: http.StatusUnauthorized, Endpoint: "financial/GLAccounts"}),
			status:  http.StatusBadGateway,
			message: msgExactSessionExpired,
		},
		{
			name:    "api call forbidden",
			err:     &apperrors.ExactAPIError{StatusCode: http.StatusForbidden, Endpoint: "financial/GLAccounts"},
			status:  http.StatusBadGateway,
			message: msgExactNoPermission,
		},
		{
			name:    "no token stored",
			err:     apperrors.ErrExactTokenNotFound,
			status:  http.StatusBadRequest,
			message: apperrors.ErrExactTokenNotFound.Error(),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, errorStatus(tc.err))
			assert.Equal(t, tc.message, exactErrorMessage(tc.err))
		})
	}
}
