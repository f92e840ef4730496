package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	portssvc "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/services"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/handlers"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/platform/config"
	"github.com/stretchr/testify/suite"
)

const (
	testFrontendURL = "http://frontend.test"
	testOrgID       = "org-1"
	testUserID      = "user-1"
)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	jwtSecret string

	mockUserService      *MockUserService
	mockTokenService     *MockTokenService
	mockGLAccountService *MockGLAccountService
	mockExactConnection  *MockExactConnectionService
	mockExactSync        *MockExactSyncService
	mockBudgetService    *MockBudgetService
	mockReporting        *MockReportingService
	mockProductService   *MockProductService
}

// generateTestToken creates a signed JWT for userID.
func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "flowqi-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockUserService = new(MockUserService)
	suite.mockTokenService = new(MockTokenService)
	suite.mockGLAccountService = new(MockGLAccountService)
	suite.mockExactConnection = new(MockExactConnectionService)
	suite.mockExactSync = new(MockExactSyncService)
	suite.mockBudgetService = new(MockBudgetService)
	suite.mockReporting = new(MockReportingService)
	suite.mockProductService = new(MockProductService)

	cfg := &config.Config{
		JWTSecret:       suite.jwtSecret,
		IsProduction:    true,
		FrontendBaseURL: testFrontendURL,
	}
	container := &portssvc.ServiceContainer{
		User:            suite.mockUserService,
		Token:           suite.mockTokenService,
		GLAccount:       suite.mockGLAccountService,
		ExactConnection: suite.mockExactConnection,
		ExactSync:       suite.mockExactSync,
		Budget:          suite.mockBudgetService,
		Reporting:       suite.mockReporting,
		Product:         suite.mockProductService,
	}
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, cfg, container))
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.mockUserService.AssertExpectations(suite.T())
	suite.mockTokenService.AssertExpectations(suite.T())
	suite.mockGLAccountService.AssertExpectations(suite.T())
	suite.mockExactConnection.AssertExpectations(suite.T())
	suite.mockExactSync.AssertExpectations(suite.T())
	suite.mockBudgetService.AssertExpectations(suite.T())
	suite.mockReporting.AssertExpectations(suite.T())
	suite.mockProductService.AssertExpectations(suite.T())
}

// serve sends a request, authenticated as userID unless userID is empty.
func (suite *HandlerTestSuite) serve(method, url string, body io.Reader, contentType, userID string) *httptest.ResponseRecorder {
	req, err := http.NewRequest(method, url, body)
	suite.Require().NoError(err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	}
	req.RemoteAddr = "192.0.2.10:40000"

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) serveJSON(method, url string, payload any, userID string) *httptest.ResponseRecorder {
	raw, err := json.Marshal(payload)
	suite.Require().NoError(err)
	return suite.serve(method, url, bytes.NewReader(raw), "application/json", userID)
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, target any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), target), "Failed to unmarshal response body: %s", w.Body.String())
}

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.serve(http.MethodGet, "/health", nil, "", "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestProtectedRouteRequiresToken() {
	w := suite.serve(http.MethodGet, "/api/v1/organizations/"+testOrgID+"/exact/status", nil, "", "")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockExactConnection.AssertNotCalled(suite.T(), "GetStatus")
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
