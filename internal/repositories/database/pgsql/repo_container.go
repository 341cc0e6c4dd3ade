package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/gilmry/koprogo-sub003/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:      newPgxAccountRepository(dbPool),
		JournalRepo:      newPgxJournalEntryRepository(dbPool),
		DistributionRepo: newPgxDistributionRepository(dbPool),
		BudgetRepo:       newPgxBudgetRepository(dbPool),
		ExpenseRepo:      newPgxExpenseRepository(dbPool),
		BuildingRepo:     newPgxBuildingRepository(dbPool),
		OrganizationRepo: newPgxOrganizationRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
	}
}
