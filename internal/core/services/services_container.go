package services

import (
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/gateways"
	portsrepo "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/repositories"
	portssvc "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/services"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/platform/config"
)

// Gateways holds the adapters for external systems.
type Gateways struct {
	ExactTokenEndpoint gateways.ExactTokenEndpoint
	ExactAPI           gateways.ExactAPI
	Locker             gateways.Locker
	SheetReader        gateways.GLAccountSheetReader
	// Analytics may be nil.
	Analytics gateways.Analytics
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, gw Gateways) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Organization service first since every organization-scoped service authorizes through it
	container.Organization = NewOrganizationService(repos.OrganizationRepo, repos.UserRepo)
	authorizer := container.Organization.(portssvc.OrganizationAuthorizerSvc)

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)

	container.GLAccount = NewGLAccountService(
		repos.GLAccountRepo,
		WithGLAccountAuthorizer(authorizer),
		WithSheetReader(gw.SheetReader),
		WithImportBatchSize(cfg.ImportBatchSize),
		WithGLAccountAnalytics(gw.Analytics),
	)

	container.ExactToken = NewExactTokenService(repos.ExactTokenRepo, gw.ExactTokenEndpoint, gw.Locker, cfg.TokenLockTTL)
	container.ExactConnection = NewExactConnectionService(ExactConnectionDeps{
		TokenRepo:   repos.ExactTokenRepo,
		Tokens:      container.ExactToken,
		Endpoint:    gw.ExactTokenEndpoint,
		API:         gw.ExactAPI,
		Authorizer:  authorizer,
		StateSecret: cfg.JWTSecret,
		StateTTL:    cfg.ExactStateTTL,
	})
	container.ExactSync = NewExactSyncService(ExactSyncDeps{
		Tokens:      container.ExactToken,
		API:         gw.ExactAPI,
		GLRepo:      repos.GLAccountRepo,
		ActualRepo:  repos.ActualRepo,
		SyncLogRepo: repos.SyncLogRepo,
		Locker:      gw.Locker,
		Authorizer:  authorizer,
		LockTTL:     cfg.SyncLockTTL,
		Analytics:   gw.Analytics,
	})

	container.Budget = NewBudgetService(BudgetDeps{
		ScenarioRepo: repos.ScenarioRepo,
		EntryRepo:    repos.BudgetEntryRepo,
		GLRepo:       repos.GLAccountRepo,
		ProductRepo:  repos.ProductRepo,
		Authorizer:   authorizer,
	})
	container.Product = NewProductService(repos.ProductRepo, authorizer)
	container.Reporting = NewReportingService(ReportingDeps{
		ScenarioRepo: repos.ScenarioRepo,
		EntryRepo:    repos.BudgetEntryRepo,
		ActualRepo:   repos.ActualRepo,
		GLRepo:       repos.GLAccountRepo,
		Authorizer:   authorizer,
	})

	return container
}
