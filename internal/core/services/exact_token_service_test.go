package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	portssvc "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/services"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ExactTokenServiceTestSuite struct {
	suite.Suite
	repo     *MockExactTokenRepository
	endpoint *MockTokenEndpoint
	locker   *fakeLocker
	service  portssvc.ExactTokenSvc
	ctx      context.Context
	orgID    string
}

func (s *ExactTokenServiceTestSuite) SetupTest() {
	s.repo = new(MockExactTokenRepository)
	s.endpoint = new(MockTokenEndpoint)
	s.locker = &fakeLocker{}
	s.service = services.NewExactTokenService(s.repo, s.endpoint, s.locker, 30*time.Second)
	s.ctx = context.Background()
	s.orgID = "org-1"
}

func (s *ExactTokenServiceTestSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
	s.endpoint.AssertExpectations(s.T())
}

func TestExactTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExactTokenServiceTestSuite))
}

func (s *ExactTokenServiceTestSuite) validToken() *domain.ExactToken {
	return &domain.ExactToken{
		OrganizationID: s.orgID,
		AccessToken:    "access-valid",
		RefreshToken:   "refresh-valid",
		TokenType:      "bearer",
		ExpiresIn:      600,
		Division:       12345,
		CreatedAt:      time.Now(),
		CreatedBy:      "user-1",
	}
}

func (s *ExactTokenServiceTestSuite) expiredToken() *domain.ExactToken {
	return &domain.ExactToken{
		OrganizationID: s.orgID,
		AccessToken:    "access-old",
		RefreshToken:   "refresh-old",
		TokenType:      "bearer",
		ExpiresIn:      600,
		Division:       12345,
		CreatedAt:      time.Now().Add(-time.Hour),
		CreatedBy:      "user-1",
	}
}

func (s *ExactTokenServiceTestSuite) TestGetValidToken_ValidTokenIsReturnedWithoutRefresh() {
	stored := s.validToken()
	s.repo.On("FindCurrentToken", mock.Anything, s.orgID).Return(stored, nil).Once()

	token, err := s.service.GetValidToken(s.ctx, s.orgID)

	s.Require().NoError(err)
	s.Equal("access-valid", token.AccessToken)
	s.endpoint.AssertNotCalled(s.T(), "Refresh", mock.Anything, mock.Anything)
	s.repo.AssertNotCalled(s.T(), "SaveToken", mock.Anything, mock.Anything)
	s.Empty(s.locker.obtained)
}

func (s *ExactTokenServiceTestSuite) TestGetValidToken_ExpiredTokenIsRefreshedAndPersisted() {
	stored := s.expiredToken()
	s.repo.On("FindCurrentToken", mock.Anything, s.orgID).Return(stored, nil).Twice()
	s.endpoint.On("Refresh", mock.Anything, "refresh-old").Return(&domain.ExactTokenGrant{
		AccessToken:  "access-new",
		RefreshToken: "refresh-new",
		TokenType:    "bearer",
		ExpiresIn:    600,
	}, nil).Once()

	before := time.Now()
	s.repo.On("SaveToken", mock.Anything, mock.MatchedBy(func(t domain.ExactToken) bool {
		return t.OrganizationID == s.orgID &&
			t.AccessToken == "access-new" &&
			t.RefreshToken == "refresh-new" &&
			t.ExpiresIn == 600 &&
			t.Division == 12345 &&
			t.CreatedBy == "user-1" &&
			!t.CreatedAt.Before(before)
	})).Return(nil).Once()

	token, err := s.service.GetValidToken(s.ctx, s.orgID)

	s.Require().NoError(err)
	s.Equal("access-new", token.AccessToken)
	s.False(token.IsExpired(time.Now()))
	s.Equal([]string{"exact-token:" + s.orgID}, s.locker.obtained)
	s.Equal(1, s.locker.released)
}

func (s *ExactTokenServiceTestSuite) TestGetValidToken_KeepsRefreshTokenWhenGrantOmitsIt() {
	stored := s.expiredToken()
	s.repo.On("FindCurrentToken", mock.Anything, s.orgID).Return(stored, nil).Twice()
	s.endpoint.On("Refresh", mock.Anything, "refresh-old").Return(&domain.ExactTokenGrant{
		AccessToken: "access-new",
		ExpiresIn:   600,
	}, nil).Once()
	s.repo.On("SaveToken", mock.Anything, mock.MatchedBy(func(t domain.ExactToken) bool {
		return t.RefreshToken == "refresh-old" && t.TokenType == "bearer"
	})).Return(nil).Once()

	token, err := s.service.GetValidToken(s.ctx, s.orgID)

	s.Require().NoError(err)
	s.Equal("refresh-old", token.RefreshToken)
}

func (s *ExactTokenServiceTestSuite) TestGetValidToken_ConcurrentRefreshIsReused() {
	s.repo.On("FindCurrentToken", mock.Anything, s.orgID).Return(s.expiredToken(), nil).Once()
	s.repo.On("FindCurrentToken", mock.Anything, s.orgID).Return(s.validToken(), nil).Once()

	token, err := s.service.GetValidToken(s.ctx, s.orgID)

	s.Require().NoError(err)
	s.Equal("access-valid", token.AccessToken)
	s.endpoint.AssertNotCalled(s.T(), "Refresh", mock.Anything, mock.Anything)
	s.repo.AssertNotCalled(s.T(), "SaveToken", mock.Anything, mock.Anything)
	s.Equal(1, s.locker.released)
}

func (s *ExactTokenServiceTestSuite) TestGetValidToken_NoTokenStored() {
	s.repo.On("FindCurrentToken", mock.Anything, s.orgID).Return(nil, apperrors.ErrNotFound).Once()

	token, err := s.service.GetValidToken(s.ctx, s.orgID)

	s.Nil(token)
	s.ErrorIs(err, apperrors.ErrExactTokenNotFound)
	s.Equal("No Exact Online token found", err.Error())
}

func (s *ExactTokenServiceTestSuite) TestGetValidToken_RepositoryFailure() {
	dbErr := errors.New("connection refused")
	s.repo.On("FindCurrentToken", mock.Anything, s.orgID).Return(nil, dbErr).Once()

	_, err := s.service.GetValidToken(s.ctx, s.orgID)

	s.Require().Error(err)
	s.ErrorIs(err, dbErr)
	s.NotErrorIs(err, apperrors.ErrExactTokenNotFound)
}

func (s *ExactTokenServiceTestSuite) TestGetValidToken_RefreshFailureCarriesUpstreamStatus() {
	s.repo.On("FindCurrentToken", mock.Anything, s.orgID).Return(s.expiredToken(), nil).Twice()
	upstream := &apperrors.ExactAPIError{StatusCode: 400, Body: `{"error":"invalid_grant"}`, Endpoint: "token"}
	s.endpoint.On("Refresh", mock.Anything, "refresh-old").Return(nil, upstream).Once()

	token, err := s.service.GetValidToken(s.ctx, s.orgID)

	s.Nil(token)
	s.ErrorIs(err, apperrors.ErrExactTokenRefresh)
	status, ok := apperrors.ExactStatusCode(err)
	s.True(ok)
	s.Equal(400, status)
	s.Contains(err.Error(), "invalid_grant")
	s.repo.AssertNotCalled(s.T(), "SaveToken", mock.Anything, mock.Anything)
	s.Equal(1, s.locker.released)
}

func (s *ExactTokenServiceTestSuite) TestGetValidToken_LockHeldElsewhere() {
	s.locker.err = apperrors.ErrLockNotObtained
	s.repo.On("FindCurrentToken", mock.Anything, s.orgID).Return(s.expiredToken(), nil).Once()

	_, err := s.service.GetValidToken(s.ctx, s.orgID)

	s.ErrorIs(err, apperrors.ErrLockNotObtained)
	s.endpoint.AssertNotCalled(s.T(), "Refresh", mock.Anything, mock.Anything)
}

func (s *ExactTokenServiceTestSuite) TestGetValidToken_SaveFailure() {
	s.repo.On("FindCurrentToken", mock.Anything, s.orgID).Return(s.expiredToken(), nil).Twice()
	s.endpoint.On("Refresh", mock.Anything, "refresh-old").Return(&domain.ExactTokenGrant{
		AccessToken: "access-new", RefreshToken: "refresh-new", ExpiresIn: 600,
	}, nil).Once()
	s.repo.On("SaveToken", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	token, err := s.service.GetValidToken(s.ctx, s.orgID)

	s.Nil(token)
	s.Require().Error(err)
	s.NotErrorIs(err, apperrors.ErrExactTokenRefresh)
}

func TestExactToken_IsExpiredBoundary(t *testing.T) {
	created := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	token := domain.ExactToken{CreatedAt: created, ExpiresIn: 600}

	require.False(t, token.IsExpired(created.Add(600*time.Second)), "exactly expires_in seconds old is still valid")
	assert.True(t, token.IsExpired(created.Add(601*time.Second)))
	assert.Equal(t, created.Add(10*time.Minute), token.ExpiresAt())
}
