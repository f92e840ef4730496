package handlers_test

import (
	"net/http"
	"time"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/dto"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/handlers"
	"github.com/stretchr/testify/mock"
)

const loginURL = "/api/v1/auth/login"

func (suite *HandlerTestSuite) TestLogin_Success() {
	user := &domain.User{UserID: testUserID, Username: "anna"}
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)

	suite.mockUserService.On("AuthenticateUser", mock.Anything, "anna", "s3cret").Return(user, nil).Once()
	suite.mockTokenService.On("GenerateAccessToken", mock.Anything, user).Return("signed-token", expiresAt, nil).Once()

	w := suite.serveJSON(http.MethodPost, loginURL, dto.LoginRequest{Username: "anna", Password: "s3cret"}, "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.decode(w, &resp)
	suite.Equal("signed-token", resp.Token)
	suite.Equal(expiresAt.Unix(), resp.ExpiresAt)
}

func (suite *HandlerTestSuite) TestLogin_InvalidCredentials() {
	suite.mockUserService.On("AuthenticateUser", mock.Anything, "anna", "wrong").
		Return(nil, apperrors.NewUnauthorizedError("invalid username or password")).Once()

	w := suite.serveJSON(http.MethodPost, loginURL, dto.LoginRequest{Username: "anna", Password: "wrong"}, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	var resp handlers.ErrorResponse
	suite.decode(w, &resp)
	suite.Equal("invalid username or password", resp.Error)
	suite.mockTokenService.AssertNotCalled(suite.T(), "GenerateAccessToken", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestLogin_MissingFields() {
	w := suite.serveJSON(http.MethodPost, loginURL, map[string]string{"username": "anna"}, "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestLogin_RateLimited() {
	for i := 0; i < 5; i++ {
		w := suite.serveJSON(http.MethodPost, loginURL, map[string]string{}, "")
		suite.Equal(http.StatusBadRequest, w.Code, "attempt %d", i+1)
	}
	w := suite.serveJSON(http.MethodPost, loginURL, map[string]string{}, "")
	suite.Equal(http.StatusTooManyRequests, w.Code)
}

func (suite *HandlerTestSuite) TestRegister_Conflict() {
	req := dto.CreateUserRequest{Username: "anna", Password: "long-enough-password", Name: "Anna"}
	suite.mockUserService.On("CreateUser", mock.Anything, mock.AnythingOfType("dto.CreateUserRequest")).
		Return(nil, apperrors.NewConflictError("username already exists")).Once()

	w := suite.serveJSON(http.MethodPost, "/api/v1/auth/register", req, "")

	suite.Equal(http.StatusConflict, w.Code)
	var resp handlers.ErrorResponse
	suite.decode(w, &resp)
	suite.Equal("username already exists", resp.Error)
}
