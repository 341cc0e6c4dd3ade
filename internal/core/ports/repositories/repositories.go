package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo      AccountRepositoryFacade
	JournalRepo      JournalEntryRepositoryWithTx
	DistributionRepo DistributionRepositoryFacade
	BudgetRepo       BudgetRepositoryFacade
	ExpenseRepo      ExpenseRepositoryFacade
	BuildingRepo     BuildingRepositoryFacade
	OrganizationRepo OrganizationRepositoryFacade
	UserRepo         UserRepositoryFacade
}
