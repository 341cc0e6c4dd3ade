package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	portsrepo "github.com/gilmry/koprogo-sub003/internal/core/ports/repositories"
	portssvc "github.com/gilmry/koprogo-sub003/internal/core/ports/services"
	"github.com/gilmry/koprogo-sub003/internal/dto"
)

// --- Mock OrganizationService ---

type MockOrganizationService struct {
	mock.Mock
}

var _ portssvc.OrganizationSvcFacade = (*MockOrganizationService)(nil)

func (m *MockOrganizationService) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationService) ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}

func (m *MockOrganizationService) CreateOrganization(ctx context.Context, name string, vatNumber string, creatorUserID string) (*domain.Organization, error) {
	args := m.Called(ctx, name, vatNumber, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationService) AddUserToOrganization(ctx context.Context, addingUserID, targetUserID, organizationID string, role domain.UserOrganizationRole) error {
	args := m.Called(ctx, addingUserID, targetUserID, organizationID, role)
	return args.Error(0)
}

func (m *MockOrganizationService) UpdateUserRole(ctx context.Context, requestingUserID, targetUserID, organizationID string, newRole domain.UserOrganizationRole) error {
	args := m.Called(ctx, requestingUserID, targetUserID, organizationID, newRole)
	return args.Error(0)
}

func (m *MockOrganizationService) AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.UserOrganizationRole) error {
	args := m.Called(ctx, userID, organizationID, requiredRole)
	return args.Error(0)
}

// --- Mock AccountService ---

type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) GetAccountByCode(ctx context.Context, organizationID string, code string, requestingUserID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, code, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, organizationID string, requestingUserID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, requestingUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, organizationID string, code string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, code, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, organizationID string, code string, requestingUserID string) error {
	args := m.Called(ctx, organizationID, code, requestingUserID)
	return args.Error(0)
}

// --- Mock JournalEntryRepository ---

type MockJournalEntryRepository struct {
	mock.Mock
}

var _ portsrepo.JournalEntryRepositoryWithTx = (*MockJournalEntryRepository)(nil)

func (m *MockJournalEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) ListEntriesByOrganization(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, organizationID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalEntryRepository) FindEntriesByExpenseID(ctx context.Context, expenseID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntryLine), args.Error(1)
}

func (m *MockJournalEntryRepository) ListLinesByAccountCode(ctx context.Context, organizationID string, accountCode string, limit int, nextToken *string) ([]domain.JournalEntryLine, *string, error) {
	args := m.Called(ctx, organizationID, accountCode, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntryLine), returnedNextToken, args.Error(2)
}

func (m *MockJournalEntryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockJournalEntryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock BudgetRepository ---

type MockBudgetRepository struct {
	mock.Mock
}

var _ portsrepo.BudgetRepositoryFacade = (*MockBudgetRepository)(nil)

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) FindBudgetByBuildingAndYear(ctx context.Context, buildingID string, fiscalYear int) (*domain.Budget, error) {
	args := m.Called(ctx, buildingID, fiscalYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListBudgetsByBuilding(ctx context.Context, buildingID string) ([]domain.Budget, error) {
	args := m.Called(ctx, buildingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget, expectedStatus domain.BudgetStatus) error {
	args := m.Called(ctx, budget, expectedStatus)
	return args.Error(0)
}

// --- Mock DistributionRepository ---

type MockDistributionRepository struct {
	mock.Mock
}

var _ portsrepo.DistributionRepositoryFacade = (*MockDistributionRepository)(nil)

func (m *MockDistributionRepository) FindDistributionsByExpenseID(ctx context.Context, expenseID string) ([]domain.ChargeDistribution, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChargeDistribution), args.Error(1)
}

func (m *MockDistributionRepository) FindDistributionsByOwnerID(ctx context.Context, ownerID string, limit int, offset int) ([]domain.ChargeDistribution, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChargeDistribution), args.Error(1)
}

func (m *MockDistributionRepository) SaveDistributions(ctx context.Context, distributions []domain.ChargeDistribution) error {
	args := m.Called(ctx, distributions)
	return args.Error(0)
}

func (m *MockDistributionRepository) UpdateDistributions(ctx context.Context, distributions []domain.ChargeDistribution) error {
	args := m.Called(ctx, distributions)
	return args.Error(0)
}

// --- Mock ExpenseRepository ---

type MockExpenseRepository struct {
	mock.Mock
}

var _ portsrepo.ExpenseRepositoryFacade = (*MockExpenseRepository)(nil)

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesByBuilding(ctx context.Context, buildingID string, limit int, offset int) ([]domain.Expense, error) {
	args := m.Called(ctx, buildingID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

// --- Mock BuildingRepository ---

type MockBuildingRepository struct {
	mock.Mock
}

var _ portsrepo.BuildingRepositoryFacade = (*MockBuildingRepository)(nil)

func (m *MockBuildingRepository) FindBuildingByID(ctx context.Context, buildingID string) (*domain.Building, error) {
	args := m.Called(ctx, buildingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Building), args.Error(1)
}

func (m *MockBuildingRepository) ListBuildingsByOrganization(ctx context.Context, organizationID string) ([]domain.Building, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Building), args.Error(1)
}

func (m *MockBuildingRepository) ListUnitsByBuilding(ctx context.Context, buildingID string) ([]domain.Unit, error) {
	args := m.Called(ctx, buildingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Unit), args.Error(1)
}

func (m *MockBuildingRepository) SaveBuilding(ctx context.Context, building domain.Building) error {
	args := m.Called(ctx, building)
	return args.Error(0)
}

func (m *MockBuildingRepository) SaveUnit(ctx context.Context, unit domain.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockBuildingRepository) SaveOwner(ctx context.Context, owner domain.Owner) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

func (m *MockBuildingRepository) FindActiveOwnershipsByBuilding(ctx context.Context, buildingID string) ([]domain.UnitOwnership, error) {
	args := m.Called(ctx, buildingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UnitOwnership), args.Error(1)
}

func (m *MockBuildingRepository) FindOwnerByID(ctx context.Context, ownerID string) (*domain.Owner, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Owner), args.Error(1)
}

func (m *MockBuildingRepository) SaveOwnership(ctx context.Context, ownership domain.UnitOwnership) error {
	args := m.Called(ctx, ownership)
	return args.Error(0)
}

func (m *MockBuildingRepository) EndOwnership(ctx context.Context, ownershipID string, userID string) error {
	args := m.Called(ctx, ownershipID, userID)
	return args.Error(0)
}

// --- Mock DistributionService ---

type MockDistributionService struct {
	mock.Mock
}

var _ portssvc.DistributionSvcFacade = (*MockDistributionService)(nil)

func (m *MockDistributionService) GetDistributionsByExpense(ctx context.Context, organizationID string, expenseID string, requestingUserID string) ([]domain.ChargeDistribution, error) {
	args := m.Called(ctx, organizationID, expenseID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChargeDistribution), args.Error(1)
}

func (m *MockDistributionService) ListDistributionsByOwner(ctx context.Context, organizationID string, ownerID string, requestingUserID string, params dto.ListDistributionsParams) ([]domain.ChargeDistribution, error) {
	args := m.Called(ctx, organizationID, ownerID, requestingUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChargeDistribution), args.Error(1)
}

func (m *MockDistributionService) DistributeExpense(ctx context.Context, organizationID string, expenseID string, requestingUserID string) ([]domain.ChargeDistribution, error) {
	args := m.Called(ctx, organizationID, expenseID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChargeDistribution), args.Error(1)
}

func (m *MockDistributionService) RecalculateDistributions(ctx context.Context, organizationID string, expenseID string, newTotal decimal.Decimal, requestingUserID string) ([]domain.ChargeDistribution, error) {
	args := m.Called(ctx, organizationID, expenseID, newTotal, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChargeDistribution), args.Error(1)
}

// --- Mock JournalEntryService ---

type MockJournalEntryService struct {
	mock.Mock
}

var _ portssvc.JournalEntrySvcFacade = (*MockJournalEntryService)(nil)

func (m *MockJournalEntryService) GetEntryByID(ctx context.Context, organizationID string, entryID string, requestingUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, entryID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryService) ListEntries(ctx context.Context, organizationID string, requestingUserID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, organizationID, requestingUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResponse), args.Error(1)
}

func (m *MockJournalEntryService) ListAccountActivity(ctx context.Context, organizationID string, accountCode string, requestingUserID string, params dto.ListAccountActivityParams) (*dto.ListAccountActivityResponse, error) {
	args := m.Called(ctx, organizationID, accountCode, requestingUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAccountActivityResponse), args.Error(1)
}

func (m *MockJournalEntryService) CreateEntry(ctx context.Context, organizationID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// helper to keep expiry handling out of individual tests
func timePtr(t time.Time) *time.Time { return &t }
