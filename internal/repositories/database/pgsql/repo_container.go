package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	budgetRepo := newPgxBudgetRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(dbPool),
		OrganizationRepo: newPgxOrganizationRepository(dbPool),
		GLAccountRepo:    newPgxGLAccountRepository(dbPool),
		ExactTokenRepo:   newPgxExactTokenRepository(dbPool),
		SyncLogRepo:      newPgxSyncLogRepository(dbPool),
		ActualRepo:       newPgxActualEntryRepository(dbPool),
		ScenarioRepo:     budgetRepo,
		BudgetEntryRepo:  budgetRepo,
		ProductRepo:      newPgxProductRepository(dbPool),
	}
}
