package services_test

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/gateways"
	portsrepo "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/repositories"
	portssvc "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Repositories ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

type MockOrganizationRepository struct {
	mock.Mock
}

var _ portsrepo.OrganizationRepositoryFacade = (*MockOrganizationRepository)(nil)

func (m *MockOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) ListOrganizationsByUserID(ctx context.Context, userID string) ([]domain.Organization, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) SaveOrganization(ctx context.Context, org domain.Organization, creator domain.UserOrganization) error {
	return m.Called(ctx, org, creator).Error(0)
}

func (m *MockOrganizationRepository) AddUserToOrganization(ctx context.Context, membership domain.UserOrganization) error {
	return m.Called(ctx, membership).Error(0)
}

func (m *MockOrganizationRepository) FindUserOrganizationRole(ctx context.Context, userID, organizationID string) (*domain.UserOrganization, error) {
	args := m.Called(ctx, userID, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserOrganization), args.Error(1)
}

func (m *MockOrganizationRepository) ListOrganizationMembers(ctx context.Context, organizationID string) ([]domain.UserOrganization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserOrganization), args.Error(1)
}

type MockGLAccountRepository struct {
	mock.Mock
}

var _ portsrepo.GLAccountRepositoryFacade = (*MockGLAccountRepository)(nil)

func (m *MockGLAccountRepository) FindGLAccountByID(ctx context.Context, organizationID, glAccountID string) (*domain.GLAccount, error) {
	args := m.Called(ctx, organizationID, glAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLAccount), args.Error(1)
}

func (m *MockGLAccountRepository) FindGLAccountByCode(ctx context.Context, organizationID, code string) (*domain.GLAccount, error) {
	args := m.Called(ctx, organizationID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLAccount), args.Error(1)
}

func (m *MockGLAccountRepository) ListGLAccounts(ctx context.Context, organizationID string, filter domain.GLAccountFilter) ([]domain.GLAccount, error) {
	args := m.Called(ctx, organizationID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GLAccount), args.Error(1)
}

func (m *MockGLAccountRepository) MapExternalIDs(ctx context.Context, organizationID string) (map[string]domain.GLAccount, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.GLAccount), args.Error(1)
}

func (m *MockGLAccountRepository) SaveGLAccount(ctx context.Context, account domain.GLAccount) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockGLAccountRepository) UpdateGLAccount(ctx context.Context, account domain.GLAccount) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockGLAccountRepository) UpsertGLAccountsByCode(ctx context.Context, accounts []domain.GLAccount) (int, error) {
	// Copy: the service reuses its batch slice after the call returns.
	batch := append([]domain.GLAccount(nil), accounts...)
	args := m.Called(ctx, batch)
	return args.Int(0), args.Error(1)
}

func (m *MockGLAccountRepository) UpsertGLAccountByExternalID(ctx context.Context, account domain.GLAccount) (bool, error) {
	args := m.Called(ctx, account)
	return args.Bool(0), args.Error(1)
}

type MockExactTokenRepository struct {
	mock.Mock
}

var _ portsrepo.ExactTokenRepository = (*MockExactTokenRepository)(nil)

func (m *MockExactTokenRepository) FindCurrentToken(ctx context.Context, organizationID string) (*domain.ExactToken, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExactToken), args.Error(1)
}

func (m *MockExactTokenRepository) SaveToken(ctx context.Context, token domain.ExactToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockExactTokenRepository) DeleteCurrentToken(ctx context.Context, organizationID string) error {
	return m.Called(ctx, organizationID).Error(0)
}

type MockSyncLogRepository struct {
	mock.Mock
}

var _ portsrepo.SyncLogRepository = (*MockSyncLogRepository)(nil)

func (m *MockSyncLogRepository) CreateSyncLog(ctx context.Context, log domain.SyncLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *MockSyncLogRepository) UpdateSyncLog(ctx context.Context, log domain.SyncLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *MockSyncLogRepository) ListSyncLogs(ctx context.Context, organizationID string, limit int, cursor *portsrepo.SyncLogCursor) ([]domain.SyncLog, error) {
	args := m.Called(ctx, organizationID, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SyncLog), args.Error(1)
}

type MockActualEntryRepository struct {
	mock.Mock
}

var _ portsrepo.ActualEntryRepository = (*MockActualEntryRepository)(nil)

func (m *MockActualEntryRepository) UpsertActualEntries(ctx context.Context, entries []domain.ActualEntry) (int, int, error) {
	batch := append([]domain.ActualEntry(nil), entries...)
	args := m.Called(ctx, batch)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockActualEntryRepository) SumActualsByAccount(ctx context.Context, organizationID string, from, to time.Time) ([]domain.AccountTotal, error) {
	args := m.Called(ctx, organizationID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountTotal), args.Error(1)
}

type MockBudgetRepository struct {
	mock.Mock
}

var (
	_ portsrepo.ScenarioRepository    = (*MockBudgetRepository)(nil)
	_ portsrepo.BudgetEntryRepository = (*MockBudgetRepository)(nil)
)

func (m *MockBudgetRepository) SaveScenario(ctx context.Context, scenario domain.Scenario) error {
	return m.Called(ctx, scenario).Error(0)
}

func (m *MockBudgetRepository) FindScenarioByID(ctx context.Context, organizationID, scenarioID string) (*domain.Scenario, error) {
	args := m.Called(ctx, organizationID, scenarioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scenario), args.Error(1)
}

func (m *MockBudgetRepository) ListScenarios(ctx context.Context, organizationID string) ([]domain.Scenario, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Scenario), args.Error(1)
}

func (m *MockBudgetRepository) DeleteScenario(ctx context.Context, organizationID, scenarioID string) error {
	return m.Called(ctx, organizationID, scenarioID).Error(0)
}

func (m *MockBudgetRepository) SaveBudgetEntry(ctx context.Context, entry domain.BudgetEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockBudgetRepository) ListBudgetEntries(ctx context.Context, organizationID, scenarioID string, period *time.Time) ([]domain.BudgetEntry, error) {
	args := m.Called(ctx, organizationID, scenarioID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetEntry), args.Error(1)
}

func (m *MockBudgetRepository) DeleteBudgetEntry(ctx context.Context, organizationID, scenarioID, entryID string) error {
	return m.Called(ctx, organizationID, scenarioID, entryID).Error(0)
}

func (m *MockBudgetRepository) SumBudgetByAccount(ctx context.Context, organizationID, scenarioID string) ([]domain.AccountTotal, error) {
	args := m.Called(ctx, organizationID, scenarioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountTotal), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

var _ portsrepo.ProductRepository = (*MockProductRepository)(nil)

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, organizationID, productID string) (*domain.Product, error) {
	args := m.Called(ctx, organizationID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, organizationID string, activeOnly bool) ([]domain.Product, error) {
	args := m.Called(ctx, organizationID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	return m.Called(ctx, product).Error(0)
}

// --- Services and gateways ---

type MockAuthorizer struct {
	mock.Mock
}

var _ portssvc.OrganizationAuthorizerSvc = (*MockAuthorizer)(nil)

func (m *MockAuthorizer) AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.UserOrganizationRole) error {
	return m.Called(ctx, userID, organizationID, requiredRole).Error(0)
}

type MockExactTokenSvc struct {
	mock.Mock
}

var _ portssvc.ExactTokenSvc = (*MockExactTokenSvc)(nil)

func (m *MockExactTokenSvc) GetValidToken(ctx context.Context, organizationID string) (*domain.ExactToken, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExactToken), args.Error(1)
}

type MockTokenEndpoint struct {
	mock.Mock
}

var _ gateways.ExactTokenEndpoint = (*MockTokenEndpoint)(nil)

func (m *MockTokenEndpoint) AuthCodeURL(state string) string {
	return m.Called(state).String(0)
}

func (m *MockTokenEndpoint) Exchange(ctx context.Context, code string) (*domain.ExactTokenGrant, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExactTokenGrant), args.Error(1)
}

func (m *MockTokenEndpoint) Refresh(ctx context.Context, refreshToken string) (*domain.ExactTokenGrant, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExactTokenGrant), args.Error(1)
}

type MockExactAPI struct {
	mock.Mock
}

var _ gateways.ExactAPI = (*MockExactAPI)(nil)

func (m *MockExactAPI) CurrentDivision(ctx context.Context, accessToken string) (int, string, error) {
	args := m.Called(ctx, accessToken)
	return args.Int(0), args.String(1), args.Error(2)
}

func (m *MockExactAPI) ListGLAccounts(ctx context.Context, accessToken string, division int) ([]domain.ExactGLAccount, error) {
	args := m.Called(ctx, accessToken, division)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExactGLAccount), args.Error(1)
}

func (m *MockExactAPI) ListTransactionLines(ctx context.Context, accessToken string, division int, from, to time.Time) ([]domain.ExactTransactionLine, error) {
	args := m.Called(ctx, accessToken, division, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExactTransactionLine), args.Error(1)
}

type MockSheetReader struct {
	mock.Mock
}

var _ gateways.GLAccountSheetReader = (*MockSheetReader)(nil)

func (m *MockSheetReader) ReadGLAccountRows(r io.Reader) ([]domain.GLAccountRow, error) {
	args := m.Called(r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GLAccountRow), args.Error(1)
}

// fakeLocker records obtained keys. A non-nil err makes every Obtain fail.
type fakeLocker struct {
	mu       sync.Mutex
	obtained []string
	ttls     []time.Duration
	released int
	err      error
}

var _ gateways.Locker = (*fakeLocker)(nil)

func (l *fakeLocker) Obtain(_ context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	l.obtained = append(l.obtained, key)
	l.ttls = append(l.ttls, ttl)
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.released++
		return nil
	}, nil
}

type MockAnalytics struct {
	mock.Mock
}

var _ gateways.Analytics = (*MockAnalytics)(nil)

func (m *MockAnalytics) Capture(distinctID, event string, properties map[string]any) {
	m.Called(distinctID, event, properties)
}
