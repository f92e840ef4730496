package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo         UserRepositoryFacade
	OrganizationRepo OrganizationRepositoryFacade
	GLAccountRepo    GLAccountRepositoryFacade
	ExactTokenRepo   ExactTokenRepository
	SyncLogRepo      SyncLogRepository
	ActualRepo       ActualEntryRepository
	ScenarioRepo     ScenarioRepository
	BudgetEntryRepo  BudgetEntryRepository
	ProductRepo      ProductRepository
}
