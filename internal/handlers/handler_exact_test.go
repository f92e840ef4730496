package handlers_test

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/dto"
	"github.com/stretchr/testify/mock"
)

const exactBaseURL = "/api/v1/organizations/" + testOrgID + "/exact"

func (suite *HandlerTestSuite) TestExactSync_UpstreamErrorsAreTranslated() {
	cases := []struct {
		name     string
		upstream int
		message  string
	}{
		{"expired session", http.StatusUnauthorized, "Exact Online sessie is verlopen, koppel opnieuw"},
		{"no permission", http.StatusForbidden, "Geen rechten voor deze Exact Online administratie"},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			apiErr := &apperrors.ExactAPIError{StatusCode: tc.upstream, Body: "denied", Endpoint: "financial/GLAccounts"}
			failed := &domain.SyncLog{SyncLogID: "log-1", Status: domain.SyncStatusFailed}
			suite.mockExactSync.On("SyncGLAccounts", mock.Anything, testOrgID, testUserID).
				Return(failed, fmt.Errorf("failed to fetch GL accounts from Exact Online: %w", apiErr)).Once()

			w := suite.serve(http.MethodPost, exactBaseURL+"/sync-gl-accounts", nil, "", testUserID)

			suite.Equal(http.StatusBadGateway, w.Code)
			var resp dto.ExactResponse
			suite.decode(w, &resp)
			suite.Equal("error", resp.Status)
			suite.Equal(tc.message, resp.Error)
			suite.mockExactSync.AssertExpectations(suite.T())
		})
	}
}

func (suite *HandlerTestSuite) TestExactSync_NoToken() {
	suite.mockExactSync.On("SyncGLAccounts", mock.Anything, testOrgID, testUserID).
		Return(&domain.SyncLog{Status: domain.SyncStatusFailed}, apperrors.ErrExactTokenNotFound).Once()

	w := suite.serve(http.MethodPost, exactBaseURL+"/sync-gl-accounts", nil, "", testUserID)

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp dto.ExactResponse
	suite.decode(w, &resp)
	suite.Equal("No Exact Online token found", resp.Error)
}

func (suite *HandlerTestSuite) TestExactSync_AlreadyRunning() {
	suite.mockExactSync.On("SyncGLAccounts", mock.Anything, testOrgID, testUserID).
		Return(nil, fmt.Errorf("failed to start gl_accounts sync: %w", apperrors.ErrLockNotObtained)).Once()

	w := suite.serve(http.MethodPost, exactBaseURL+"/sync-gl-accounts", nil, "", testUserID)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestExactSyncGLAccounts_Partial() {
	log := &domain.SyncLog{
		SyncLogID: "log-2",
		Status:    domain.SyncStatusPartial,
		Processed: 10,
		Created:   7,
		Updated:   2,
		Failed:    1,
	}
	suite.mockExactSync.On("SyncGLAccounts", mock.Anything, testOrgID, testUserID).Return(log, nil).Once()

	w := suite.serve(http.MethodPost, exactBaseURL+"/sync-gl-accounts", nil, "", testUserID)

	suite.Equal(http.StatusOK, w.Code)
	var resp struct {
		Status  string         `json:"status"`
		Message string         `json:"message"`
		Data    dto.SyncResult `json:"data"`
	}
	suite.decode(w, &resp)
	suite.Equal("success", resp.Status)
	suite.Contains(resp.Message, "failures")
	suite.Equal("partial", resp.Data.Status)
	suite.Equal(7, resp.Data.Created)
	suite.Equal(1, resp.Data.Failed)
}

func (suite *HandlerTestSuite) TestExactSyncTransactions_InvalidDates() {
	w := suite.serveJSON(http.MethodPost, exactBaseURL+"/sync-transactions",
		dto.SyncTransactionsRequest{StartDate: "01-01-2024", EndDate: "2024-01-31"}, testUserID)

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp dto.ExactResponse
	suite.decode(w, &resp)
	suite.Equal("error", resp.Status)
	suite.mockExactSync.AssertNotCalled(suite.T(), "SyncTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestExactSyncTransactions_MissingDates() {
	w := suite.serveJSON(http.MethodPost, exactBaseURL+"/sync-transactions", map[string]string{"startDate": "2024-01-01"}, testUserID)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestExactSyncTransactions_Success() {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	suite.mockExactSync.On("SyncTransactions", mock.Anything, testOrgID, testUserID,
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(start) }),
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(end) }),
	).Return(&domain.SyncLog{SyncLogID: "log-3", Status: domain.SyncStatusSuccess, Processed: 4, Created: 4}, nil).Once()

	w := suite.serveJSON(http.MethodPost, exactBaseURL+"/sync-transactions",
		dto.SyncTransactionsRequest{StartDate: "2024-01-01", EndDate: "2024-01-31"}, testUserID)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"syncLogID":"log-3"`)
}

func (suite *HandlerTestSuite) TestExactSyncTransactions_AcceptsTimestamps() {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	suite.mockExactSync.On("SyncTransactions", mock.Anything, testOrgID, testUserID,
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(start) }),
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(end) }),
	).Return(&domain.SyncLog{SyncLogID: "log-4", Status: domain.SyncStatusSuccess}, nil).Once()

	w := suite.serveJSON(http.MethodPost, exactBaseURL+"/sync-transactions",
		dto.SyncTransactionsRequest{StartDate: "2024-01-01T00:00:00.000Z", EndDate: "2024-01-31T23:59:59.999Z"}, testUserID)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"syncLogID":"log-4"`)
}

func (suite *HandlerTestSuite) TestExactSyncTransactions_AcceptsRFC3339WithoutFraction() {
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	suite.mockExactSync.On("SyncTransactions", mock.Anything, testOrgID, testUserID,
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(start) }),
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(end) }),
	).Return(&domain.SyncLog{SyncLogID: "log-5", Status: domain.SyncStatusSuccess}, nil).Once()

	w := suite.serveJSON(http.MethodPost, exactBaseURL+"/sync-transactions",
		dto.SyncTransactionsRequest{StartDate: "2024-02-01T08:30:00Z", EndDate: "2024-02-29T17:00:00+01:00"}, testUserID)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestExactSync_RejectedRefreshAsksToReconnect() {
	apiErr := &apperrors.ExactAPIError{StatusCode: http.StatusBadRequest, Body: `{"error":"invalid_grant"}`, Endpoint: "oauth2/token"}
	failed := &domain.SyncLog{SyncLogID: "log-6", Status: domain.SyncStatusFailed}
	suite.mockExactSync.On("SyncGLAccounts", mock.Anything, testOrgID, testUserID).
		Return(failed, fmt.Errorf("%w: %w", apperrors.ErrExactTokenRefresh, apiErr)).Once()

	w := suite.serve(http.MethodPost, exactBaseURL+"/sync-gl-accounts", nil, "", testUserID)

	suite.Equal(http.StatusUnauthorized, w.Code)
	var resp dto.ExactResponse
	suite.decode(w, &resp)
	suite.Equal("error", resp.Status)
	suite.Equal("Exact Online sessie is verlopen, koppel opnieuw", resp.Error)
	suite.NotContains(w.Body.String(), "invalid_grant")
}

func (suite *HandlerTestSuite) TestExactTestConnection_RejectedRefreshAsksToReconnect() {
	apiErr := &apperrors.ExactAPIError{StatusCode: http.StatusBadRequest, Body: `{"error":"invalid_grant"}`, Endpoint: "oauth2/token"}
	suite.mockExactConnection.On("TestConnection", mock.Anything, testOrgID, testUserID).
		Return(nil, fmt.Errorf("%w: %w", apperrors.ErrExactTokenRefresh, apiErr)).Once()

	w := suite.serve(http.MethodGet, exactBaseURL+"/test-connection", nil, "", testUserID)

	suite.Equal(http.StatusUnauthorized, w.Code)
	var resp dto.ExactResponse
	suite.decode(w, &resp)
	suite.Equal("Exact Online sessie is verlopen, koppel opnieuw", resp.Error)
}

func (suite *HandlerTestSuite) TestExactCallback_RedirectsToFrontend() {
	suite.mockExactConnection.On("CompleteAuthorization", mock.Anything, "the-code", "signed-state").Return(testOrgID, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/exact/callback?code=the-code&state=signed-state", nil, "", "")

	suite.Equal(http.StatusFound, w.Code)
	location, err := url.Parse(w.Header().Get("Location"))
	suite.Require().NoError(err)
	suite.Equal("frontend.test", location.Host)
	suite.Equal("/settings/exact", location.Path)
	suite.Equal("connected", location.Query().Get("status"))
	suite.Equal(testOrgID, location.Query().Get("organizationID"))
}

func (suite *HandlerTestSuite) TestExactCallback_InvalidState() {
	suite.mockExactConnection.On("CompleteAuthorization", mock.Anything, "the-code", "forged").
		Return("", apperrors.ErrExactStateInvalid).Once()

	w := suite.serve(http.MethodGet, "/api/v1/exact/callback?code=the-code&state=forged", nil, "", "")

	suite.Equal(http.StatusFound, w.Code)
	location, err := url.Parse(w.Header().Get("Location"))
	suite.Require().NoError(err)
	suite.Equal("error", location.Query().Get("status"))
	suite.NotEmpty(location.Query().Get("error"))
}

func (suite *HandlerTestSuite) TestExactCallback_ConsentDenied() {
	w := suite.serve(http.MethodGet, "/api/v1/exact/callback?error=access_denied", nil, "", "")

	suite.Equal(http.StatusFound, w.Code)
	location, err := url.Parse(w.Header().Get("Location"))
	suite.Require().NoError(err)
	suite.Equal("access_denied", location.Query().Get("error"))
	suite.mockExactConnection.AssertNotCalled(suite.T(), "CompleteAuthorization", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestExactCallback_MissingCode() {
	w := suite.serve(http.MethodGet, "/api/v1/exact/callback?state=signed-state", nil, "", "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestExactConnect_ForbiddenForMembers() {
	suite.mockExactConnection.On("BuildAuthorizationURL", mock.Anything, testOrgID, testUserID).
		Return("", apperrors.NewForbiddenError("insufficient role")).Once()

	w := suite.serve(http.MethodGet, exactBaseURL+"/connect", nil, "", testUserID)

	suite.Equal(http.StatusForbidden, w.Code)
	var resp dto.ExactResponse
	suite.decode(w, &resp)
	suite.Equal("insufficient role", resp.Error)
}

func (suite *HandlerTestSuite) TestExactStatus_Connected() {
	expires := time.Now().Add(5 * time.Minute).UTC().Truncate(time.Second)
	suite.mockExactConnection.On("GetStatus", mock.Anything, testOrgID, testUserID).
		Return(&domain.ExactConnectionStatus{Connected: true, Division: 12345, ExpiresAt: &expires}, nil).Once()

	w := suite.serve(http.MethodGet, exactBaseURL+"/status", nil, "", testUserID)

	suite.Equal(http.StatusOK, w.Code)
	var resp struct {
		Status string                       `json:"status"`
		Data   domain.ExactConnectionStatus `json:"data"`
	}
	suite.decode(w, &resp)
	suite.True(resp.Data.Connected)
	suite.Equal(12345, resp.Data.Division)
}

func (suite *HandlerTestSuite) TestExactSyncLogs_PassesPaging() {
	logs := []domain.SyncLog{{SyncLogID: "log-9", SyncType: domain.SyncTypeTransactions}}
	suite.mockExactSync.On("ListSyncLogs", mock.Anything, testOrgID, testUserID, 5, "abc").Return(logs, "next", nil).Once()

	w := suite.serve(http.MethodGet, exactBaseURL+"/sync-logs?limit=5&nextToken=abc", nil, "", testUserID)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"nextToken":"next"`)
}
