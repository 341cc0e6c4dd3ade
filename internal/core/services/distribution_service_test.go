package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gilmry/koprogo-sub003/internal/apperrors"
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	portssvc "github.com/gilmry/koprogo-sub003/internal/core/ports/services"
	"github.com/gilmry/koprogo-sub003/internal/core/services"
)

type DistributionServiceTestSuite struct {
	suite.Suite
	mockDistributionRepo *MockDistributionRepository
	mockExpenseRepo      *MockExpenseRepository
	mockBuildingRepo     *MockBuildingRepository
	mockOrgSvc           *MockOrganizationService
	service              portssvc.DistributionSvcFacade
	organizationID       string
	buildingID           string
	userID               string
	building             *domain.Building
}

func (suite *DistributionServiceTestSuite) SetupTest() {
	suite.mockDistributionRepo = new(MockDistributionRepository)
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockBuildingRepo = new(MockBuildingRepository)
	suite.mockOrgSvc = new(MockOrganizationService)
	suite.service = services.NewDistributionService(suite.mockDistributionRepo, suite.mockExpenseRepo, suite.mockBuildingRepo, suite.mockOrgSvc)

	suite.organizationID = uuid.NewString()
	suite.buildingID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.building = &domain.Building{
		BuildingID:     suite.buildingID,
		OrganizationID: suite.organizationID,
	}
}

func (suite *DistributionServiceTestSuite) approvedExpense(total int64) *domain.Expense {
	now := time.Now()
	return &domain.Expense{
		ExpenseID:    uuid.NewString(),
		BuildingID:   suite.buildingID,
		Description:  "Roof repair",
		Amount:       decimal.NewFromInt(total),
		AccountCode:  "6100",
		ExpenseDate:  now,
		Status:       domain.ExpenseApproved,
		ApprovedDate: &now,
	}
}

func (suite *DistributionServiceTestSuite) ownerships(quotas ...float64) []domain.UnitOwnership {
	result := make([]domain.UnitOwnership, len(quotas))
	for i, q := range quotas {
		result[i] = domain.UnitOwnership{
			OwnershipID:     uuid.NewString(),
			UnitID:          uuid.NewString(),
			OwnerID:         uuid.NewString(),
			QuotaPercentage: decimal.NewFromFloat(q),
			StartDate:       time.Now().AddDate(-1, 0, 0),
		}
	}
	return result
}

func (suite *DistributionServiceTestSuite) TestDistributeExpense_Success() {
	ctx := context.Background()
	expense := suite.approvedExpense(1000)

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockBuildingRepo.On("FindBuildingByID", ctx, suite.buildingID).Return(suite.building, nil).Once()
	suite.mockBuildingRepo.On("FindActiveOwnershipsByBuilding", ctx, suite.buildingID).Return(suite.ownerships(0.25, 0.35, 0.40), nil).Once()
	suite.mockDistributionRepo.On("SaveDistributions", ctx, mock.AnythingOfType("[]domain.ChargeDistribution")).Return(nil).Once()

	distributions, err := suite.service.DistributeExpense(ctx, suite.organizationID, expense.ExpenseID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(distributions, 3)

	sum := decimal.Zero
	for _, d := range distributions {
		suite.Equal(expense.ExpenseID, d.ExpenseID)
		sum = sum.Add(d.AmountDue)
	}
	suite.True(sum.Equal(decimal.NewFromInt(1000)))
	suite.mockDistributionRepo.AssertExpectations(suite.T())
}

func (suite *DistributionServiceTestSuite) TestDistributeExpense_PendingExpenseConflicts() {
	ctx := context.Background()
	expense := suite.approvedExpense(1000)
	expense.Status = domain.ExpensePending
	expense.ApprovedDate = nil

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockBuildingRepo.On("FindBuildingByID", ctx, suite.buildingID).Return(suite.building, nil).Once()

	distributions, err := suite.service.DistributeExpense(ctx, suite.organizationID, expense.ExpenseID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(distributions)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockDistributionRepo.AssertNotCalled(suite.T(), "SaveDistributions", mock.Anything, mock.Anything)
}

func (suite *DistributionServiceTestSuite) TestDistributeExpense_QuotaOverflow() {
	ctx := context.Background()
	expense := suite.approvedExpense(1000)

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockBuildingRepo.On("FindBuildingByID", ctx, suite.buildingID).Return(suite.building, nil).Once()
	suite.mockBuildingRepo.On("FindActiveOwnershipsByBuilding", ctx, suite.buildingID).Return(suite.ownerships(0.60, 0.50), nil).Once()

	distributions, err := suite.service.DistributeExpense(ctx, suite.organizationID, expense.ExpenseID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(distributions)
	suite.ErrorIs(err, apperrors.ErrQuotaOverflow)
	suite.mockDistributionRepo.AssertNotCalled(suite.T(), "SaveDistributions", mock.Anything, mock.Anything)
}

func (suite *DistributionServiceTestSuite) TestDistributeExpense_AlreadyDistributed() {
	ctx := context.Background()
	expense := suite.approvedExpense(1000)

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockBuildingRepo.On("FindBuildingByID", ctx, suite.buildingID).Return(suite.building, nil).Once()
	suite.mockBuildingRepo.On("FindActiveOwnershipsByBuilding", ctx, suite.buildingID).Return(suite.ownerships(1.0), nil).Once()
	suite.mockDistributionRepo.On("SaveDistributions", ctx, mock.AnythingOfType("[]domain.ChargeDistribution")).Return(apperrors.ErrDuplicate).Once()

	distributions, err := suite.service.DistributeExpense(ctx, suite.organizationID, expense.ExpenseID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(distributions)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *DistributionServiceTestSuite) TestDistributeExpense_NoActiveOwners() {
	ctx := context.Background()
	expense := suite.approvedExpense(1000)

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockBuildingRepo.On("FindBuildingByID", ctx, suite.buildingID).Return(suite.building, nil).Once()
	suite.mockBuildingRepo.On("FindActiveOwnershipsByBuilding", ctx, suite.buildingID).Return([]domain.UnitOwnership{}, nil).Once()

	distributions, err := suite.service.DistributeExpense(ctx, suite.organizationID, expense.ExpenseID, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(distributions)
	suite.mockDistributionRepo.AssertNotCalled(suite.T(), "SaveDistributions", mock.Anything, mock.Anything)
}

func (suite *DistributionServiceTestSuite) TestRecalculateDistributions_Success() {
	ctx := context.Background()
	expense := suite.approvedExpense(1000)
	existing := []domain.ChargeDistribution{
		{DistributionID: uuid.NewString(), ExpenseID: expense.ExpenseID, UnitID: uuid.NewString(), OwnerID: uuid.NewString(), QuotaPercentage: decimal.NewFromFloat(0.5), AmountDue: decimal.NewFromInt(500)},
		{DistributionID: uuid.NewString(), ExpenseID: expense.ExpenseID, UnitID: uuid.NewString(), OwnerID: uuid.NewString(), QuotaPercentage: decimal.NewFromFloat(0.5), AmountDue: decimal.NewFromInt(500)},
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockBuildingRepo.On("FindBuildingByID", ctx, suite.buildingID).Return(suite.building, nil).Once()
	suite.mockDistributionRepo.On("FindDistributionsByExpenseID", ctx, expense.ExpenseID).Return(existing, nil).Once()
	suite.mockDistributionRepo.On("UpdateDistributions", ctx, mock.AnythingOfType("[]domain.ChargeDistribution")).Return(nil).Once()

	distributions, err := suite.service.RecalculateDistributions(ctx, suite.organizationID, expense.ExpenseID, decimal.NewFromInt(1200), suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(distributions, 2)
	suite.True(distributions[0].AmountDue.Equal(decimal.NewFromInt(600)))
	suite.True(distributions[1].AmountDue.Equal(decimal.NewFromInt(600)))
	suite.mockDistributionRepo.AssertNumberOfCalls(suite.T(), "UpdateDistributions", 1)
}

func (suite *DistributionServiceTestSuite) TestRecalculateDistributions_PersistFailure() {
	ctx := context.Background()
	expense := suite.approvedExpense(1000)
	existing := []domain.ChargeDistribution{
		{DistributionID: uuid.NewString(), ExpenseID: expense.ExpenseID, UnitID: uuid.NewString(), OwnerID: uuid.NewString(), QuotaPercentage: decimal.NewFromFloat(0.5), AmountDue: decimal.NewFromInt(500)},
		{DistributionID: uuid.NewString(), ExpenseID: expense.ExpenseID, UnitID: uuid.NewString(), OwnerID: uuid.NewString(), QuotaPercentage: decimal.NewFromFloat(0.5), AmountDue: decimal.NewFromInt(500)},
	}
	repoErr := apperrors.NewAppError(500, "failed to update distribution batch", nil)

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockBuildingRepo.On("FindBuildingByID", ctx, suite.buildingID).Return(suite.building, nil).Once()
	suite.mockDistributionRepo.On("FindDistributionsByExpenseID", ctx, expense.ExpenseID).Return(existing, nil).Once()
	suite.mockDistributionRepo.On("UpdateDistributions", ctx, mock.AnythingOfType("[]domain.ChargeDistribution")).Return(repoErr).Once()

	distributions, err := suite.service.RecalculateDistributions(ctx, suite.organizationID, expense.ExpenseID, decimal.NewFromInt(1200), suite.userID)

	suite.Require().Error(err)
	suite.Nil(distributions)
	// The whole batch is handed to the repository in one call, so a failed
	// rewrite cannot leave a half-updated batch behind.
	suite.mockDistributionRepo.AssertNumberOfCalls(suite.T(), "UpdateDistributions", 1)
}

func (suite *DistributionServiceTestSuite) TestRecalculateDistributions_NoBatch() {
	ctx := context.Background()
	expense := suite.approvedExpense(1000)

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockBuildingRepo.On("FindBuildingByID", ctx, suite.buildingID).Return(suite.building, nil).Once()
	suite.mockDistributionRepo.On("FindDistributionsByExpenseID", ctx, expense.ExpenseID).Return([]domain.ChargeDistribution{}, nil).Once()

	distributions, err := suite.service.RecalculateDistributions(ctx, suite.organizationID, expense.ExpenseID, decimal.NewFromInt(1200), suite.userID)

	suite.Require().Error(err)
	suite.Nil(distributions)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestDistributionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DistributionServiceTestSuite))
}
