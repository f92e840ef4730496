package handlers_test

import (
	"context"
	"io"
	"time"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	portssvc "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/services"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock GLAccountService ---
type MockGLAccountService struct {
	mock.Mock
}

func (m *MockGLAccountService) ListGLAccounts(ctx context.Context, organizationID, userID string, filter domain.GLAccountFilter) ([]domain.GLAccount, error) {
	args := m.Called(ctx, organizationID, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GLAccount), args.Error(1)
}

func (m *MockGLAccountService) GetGLAccount(ctx context.Context, organizationID, glAccountID, userID string) (*domain.GLAccount, error) {
	args := m.Called(ctx, organizationID, glAccountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLAccount), args.Error(1)
}

func (m *MockGLAccountService) GetGLAccountTree(ctx context.Context, organizationID, userID string) ([]domain.GLAccountNode, error) {
	args := m.Called(ctx, organizationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GLAccountNode), args.Error(1)
}

func (m *MockGLAccountService) CreateGLAccount(ctx context.Context, organizationID, userID string, req dto.CreateGLAccountRequest) (*domain.GLAccount, error) {
	args := m.Called(ctx, organizationID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLAccount), args.Error(1)
}

func (m *MockGLAccountService) UpdateGLAccount(ctx context.Context, organizationID, glAccountID, userID string, req dto.UpdateGLAccountRequest) (*domain.GLAccount, error) {
	args := m.Called(ctx, organizationID, glAccountID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLAccount), args.Error(1)
}

func (m *MockGLAccountService) ImportGLAccounts(ctx context.Context, organizationID, userID string, file io.Reader) (*domain.ImportResult, error) {
	args := m.Called(ctx, organizationID, userID, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportResult), args.Error(1)
}

var _ portssvc.GLAccountSvcFacade = (*MockGLAccountService)(nil)

// --- Mock ExactConnectionService ---
type MockExactConnectionService struct {
	mock.Mock
}

func (m *MockExactConnectionService) BuildAuthorizationURL(ctx context.Context, organizationID, userID string) (string, error) {
	args := m.Called(ctx, organizationID, userID)
	return args.String(0), args.Error(1)
}

func (m *MockExactConnectionService) CompleteAuthorization(ctx context.Context, code, state string) (string, error) {
	args := m.Called(ctx, code, state)
	return args.String(0), args.Error(1)
}

func (m *MockExactConnectionService) GetStatus(ctx context.Context, organizationID, userID string) (*domain.ExactConnectionStatus, error) {
	args := m.Called(ctx, organizationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExactConnectionStatus), args.Error(1)
}

func (m *MockExactConnectionService) Disconnect(ctx context.Context, organizationID, userID string) error {
	return m.Called(ctx, organizationID, userID).Error(0)
}

func (m *MockExactConnectionService) TestConnection(ctx context.Context, organizationID, userID string) (*domain.ExactConnectionInfo, error) {
	args := m.Called(ctx, organizationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExactConnectionInfo), args.Error(1)
}

var _ portssvc.ExactConnectionSvc = (*MockExactConnectionService)(nil)

// --- Mock ExactSyncService ---
type MockExactSyncService struct {
	mock.Mock
}

func (m *MockExactSyncService) SyncGLAccounts(ctx context.Context, organizationID, userID string) (*domain.SyncLog, error) {
	args := m.Called(ctx, organizationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncLog), args.Error(1)
}

func (m *MockExactSyncService) SyncTransactions(ctx context.Context, organizationID, userID string, startDate, endDate time.Time) (*domain.SyncLog, error) {
	args := m.Called(ctx, organizationID, userID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncLog), args.Error(1)
}

func (m *MockExactSyncService) ListSyncLogs(ctx context.Context, organizationID, userID string, limit int, nextToken string) ([]domain.SyncLog, string, error) {
	args := m.Called(ctx, organizationID, userID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.SyncLog), args.String(1), args.Error(2)
}

var _ portssvc.ExactSyncSvc = (*MockExactSyncService)(nil)

// --- Mock BudgetService ---
type MockBudgetService struct {
	mock.Mock
}

func (m *MockBudgetService) CreateScenario(ctx context.Context, organizationID, userID string, req dto.CreateScenarioRequest) (*domain.Scenario, error) {
	args := m.Called(ctx, organizationID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scenario), args.Error(1)
}

func (m *MockBudgetService) ListScenarios(ctx context.Context, organizationID, userID string) ([]domain.Scenario, error) {
	args := m.Called(ctx, organizationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Scenario), args.Error(1)
}

func (m *MockBudgetService) GetScenario(ctx context.Context, organizationID, scenarioID, userID string) (*domain.Scenario, error) {
	args := m.Called(ctx, organizationID, scenarioID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scenario), args.Error(1)
}

func (m *MockBudgetService) DeleteScenario(ctx context.Context, organizationID, scenarioID, userID string) error {
	return m.Called(ctx, organizationID, scenarioID, userID).Error(0)
}

func (m *MockBudgetService) CreateBudgetEntry(ctx context.Context, organizationID, scenarioID, userID string, req dto.CreateBudgetEntryRequest) (*domain.BudgetEntry, error) {
	args := m.Called(ctx, organizationID, scenarioID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetEntry), args.Error(1)
}

func (m *MockBudgetService) ListBudgetEntries(ctx context.Context, organizationID, scenarioID, userID string, period *time.Time) ([]domain.BudgetEntry, error) {
	args := m.Called(ctx, organizationID, scenarioID, userID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetEntry), args.Error(1)
}

func (m *MockBudgetService) DeleteBudgetEntry(ctx context.Context, organizationID, scenarioID, entryID, userID string) error {
	return m.Called(ctx, organizationID, scenarioID, entryID, userID).Error(0)
}

var _ portssvc.BudgetSvcFacade = (*MockBudgetService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) BudgetVsActual(ctx context.Context, organizationID, userID, scenarioID string, year int) (*domain.BudgetVsActualReport, error) {
	args := m.Called(ctx, organizationID, userID, scenarioID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetVsActualReport), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock ProductService ---
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) CreateProduct(ctx context.Context, organizationID, userID string, req dto.CreateProductRequest) (*domain.Product, error) {
	args := m.Called(ctx, organizationID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) ListProducts(ctx context.Context, organizationID, userID string, activeOnly bool) ([]domain.Product, error) {
	args := m.Called(ctx, organizationID, userID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductService) GetProduct(ctx context.Context, organizationID, productID, userID string) (*domain.Product, error) {
	args := m.Called(ctx, organizationID, productID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) UpdateProduct(ctx context.Context, organizationID, productID, userID string, req dto.UpdateProductRequest) (*domain.Product, error) {
	args := m.Called(ctx, organizationID, productID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

var _ portssvc.ProductSvcFacade = (*MockProductService)(nil)
