package services

import (
	portsrepo "github.com/gilmry/koprogo-sub003/internal/core/ports/repositories"
	portssvc "github.com/gilmry/koprogo-sub003/internal/core/ports/services"
	"github.com/gilmry/koprogo-sub003/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Initialize the organization service first since every other service relies
	// on it for authorization
	container.Organization = NewOrganizationService(repos.OrganizationRepo)

	authorizer := container.Organization.(portssvc.OrganizationAuthorizerSvc)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithOrganizationAuthorizer(authorizer),
	)
	container.Building = NewBuildingService(repos.BuildingRepo, authorizer)
	container.JournalEntry = NewJournalEntryService(repos.JournalRepo, container.Account, container.Organization)
	container.Distribution = NewDistributionService(repos.DistributionRepo, repos.ExpenseRepo, repos.BuildingRepo, authorizer)
	container.Budget = NewBudgetService(repos.BudgetRepo, repos.BuildingRepo, authorizer)
	container.Expense = NewExpenseService(repos.ExpenseRepo, repos.BuildingRepo, container.Distribution, container.JournalEntry, authorizer)
	container.User = NewUserService(repos.UserRepo)

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade      = (*accountService)(nil)
	_ portssvc.OrganizationSvcFacade = (*OrganizationService)(nil)
	_ portssvc.JournalEntrySvcFacade = (*journalEntryService)(nil)
	_ portssvc.DistributionSvcFacade = (*distributionService)(nil)
	_ portssvc.BudgetSvcFacade       = (*budgetService)(nil)
	_ portssvc.ExpenseSvcFacade      = (*expenseService)(nil)
	_ portssvc.BuildingSvcFacade     = (*buildingService)(nil)
	_ portssvc.UserSvcFacade         = (*userService)(nil)
)
