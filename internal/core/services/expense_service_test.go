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
	"github.com/gilmry/koprogo-sub003/internal/dto"
)

type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo     *MockExpenseRepository
	mockBuildingRepo    *MockBuildingRepository
	mockDistributionSvc *MockDistributionService
	mockJournalSvc      *MockJournalEntryService
	mockOrgSvc          *MockOrganizationService
	service             portssvc.ExpenseSvcFacade
	organizationID      string
	buildingID          string
	userID              string
	building            *domain.Building
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockBuildingRepo = new(MockBuildingRepository)
	suite.mockDistributionSvc = new(MockDistributionService)
	suite.mockJournalSvc = new(MockJournalEntryService)
	suite.mockOrgSvc = new(MockOrganizationService)
	suite.service = services.NewExpenseService(suite.mockExpenseRepo, suite.mockBuildingRepo, suite.mockDistributionSvc, suite.mockJournalSvc, suite.mockOrgSvc)

	suite.organizationID = uuid.NewString()
	suite.buildingID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.building = &domain.Building{
		BuildingID:     suite.buildingID,
		OrganizationID: suite.organizationID,
	}
}

func (suite *ExpenseServiceTestSuite) pendingExpense() *domain.Expense {
	inclVAT := decimal.NewFromInt(1210)
	return &domain.Expense{
		ExpenseID:     uuid.NewString(),
		BuildingID:    suite.buildingID,
		Description:   "Elevator maintenance",
		Amount:        decimal.NewFromInt(1000),
		AmountInclVAT: &inclVAT,
		AccountCode:   "6100",
		ExpenseDate:   time.Now().AddDate(0, 0, -3),
		SupplierName:  "Ascenseurs Generaux SA",
		Status:        domain.ExpensePending,
	}
}

func (suite *ExpenseServiceTestSuite) expectAuthorized() {
	suite.mockOrgSvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
}

func (suite *ExpenseServiceTestSuite) expectBuildingLookup() {
	suite.mockBuildingRepo.On("FindBuildingByID", mock.Anything, suite.buildingID).Return(suite.building, nil).Once()
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_Success() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		BuildingID:   suite.buildingID,
		Description:  "Facade cleaning",
		Amount:       decimal.NewFromInt(500),
		AccountCode:  "6110",
		ExpenseDate:  time.Now(),
		SupplierName: "CleanCo",
	}

	suite.expectAuthorized()
	suite.expectBuildingLookup()
	suite.mockExpenseRepo.On("SaveExpense", ctx, mock.AnythingOfType("domain.Expense")).Return(nil).Once()

	expense, err := suite.service.CreateExpense(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(expense)
	suite.Equal(domain.ExpensePending, expense.Status)
	suite.Equal(suite.userID, expense.CreatedBy)
	suite.NotEmpty(expense.ExpenseID)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_ForeignBuilding() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		BuildingID:  suite.buildingID,
		Description: "Facade cleaning",
		Amount:      decimal.NewFromInt(500),
		AccountCode: "6110",
		ExpenseDate: time.Now(),
	}
	foreign := &domain.Building{BuildingID: suite.buildingID, OrganizationID: uuid.NewString()}

	suite.expectAuthorized()
	suite.mockBuildingRepo.On("FindBuildingByID", mock.Anything, suite.buildingID).Return(foreign, nil).Once()

	expense, err := suite.service.CreateExpense(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestApproveExpense_Success() {
	ctx := context.Background()
	expense := suite.pendingExpense()
	batch := []domain.ChargeDistribution{
		{DistributionID: uuid.NewString(), ExpenseID: expense.ExpenseID, AmountDue: decimal.NewFromInt(605)},
		{DistributionID: uuid.NewString(), ExpenseID: expense.ExpenseID, AmountDue: decimal.NewFromInt(605)},
	}

	suite.expectAuthorized()
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.expectBuildingLookup()
	suite.mockExpenseRepo.On("UpdateExpense", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.Status == domain.ExpenseApproved && e.ApprovedDate != nil
	})).Return(nil).Once()
	suite.mockDistributionSvc.On("DistributeExpense", ctx, suite.organizationID, expense.ExpenseID, suite.userID).Return(batch, nil).Once()
	suite.mockJournalSvc.On("CreateEntry", ctx, suite.organizationID, mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool {
		if req.JournalType == nil || *req.JournalType != string(domain.Purchases) {
			return false
		}
		if req.ExpenseID == nil || *req.ExpenseID != expense.ExpenseID {
			return false
		}
		if len(req.Lines) != 3 {
			return false
		}
		return req.Lines[0].AccountCode == "6100" && req.Lines[0].Debit.Equal(decimal.NewFromInt(1000)) &&
			req.Lines[1].AccountCode == "4110" && req.Lines[1].Debit.Equal(decimal.NewFromInt(210)) &&
			req.Lines[2].AccountCode == "4400" && req.Lines[2].Credit.Equal(decimal.NewFromInt(1210))
	}), suite.userID).Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Once()

	approved, distributions, err := suite.service.ApproveExpense(ctx, suite.organizationID, expense.ExpenseID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(approved)
	suite.Equal(domain.ExpenseApproved, approved.Status)
	suite.Len(distributions, 2)
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestApproveExpense_NoVATLine() {
	ctx := context.Background()
	expense := suite.pendingExpense()
	expense.AmountInclVAT = nil

	suite.expectAuthorized()
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.expectBuildingLookup()
	suite.mockExpenseRepo.On("UpdateExpense", ctx, mock.AnythingOfType("domain.Expense")).Return(nil).Once()
	suite.mockDistributionSvc.On("DistributeExpense", ctx, suite.organizationID, expense.ExpenseID, suite.userID).Return([]domain.ChargeDistribution{}, nil).Once()
	suite.mockJournalSvc.On("CreateEntry", ctx, suite.organizationID, mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool {
		return len(req.Lines) == 2 &&
			req.Lines[0].Debit.Equal(decimal.NewFromInt(1000)) &&
			req.Lines[1].AccountCode == "4400" && req.Lines[1].Credit.Equal(decimal.NewFromInt(1000))
	}), suite.userID).Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Once()

	_, _, err := suite.service.ApproveExpense(ctx, suite.organizationID, expense.ExpenseID, suite.userID)

	suite.Require().NoError(err)
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestApproveExpense_AlreadyApproved() {
	ctx := context.Background()
	expense := suite.pendingExpense()
	now := time.Now()
	expense.Status = domain.ExpenseApproved
	expense.ApprovedDate = &now

	suite.expectAuthorized()
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.expectBuildingLookup()

	approved, distributions, err := suite.service.ApproveExpense(ctx, suite.organizationID, expense.ExpenseID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(approved)
	suite.Nil(distributions)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "UpdateExpense", mock.Anything, mock.Anything)
	suite.mockDistributionSvc.AssertNotCalled(suite.T(), "DistributeExpense", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestApproveExpense_DistributionFailureKeepsApproval() {
	ctx := context.Background()
	expense := suite.pendingExpense()

	suite.expectAuthorized()
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.expectBuildingLookup()
	suite.mockExpenseRepo.On("UpdateExpense", ctx, mock.AnythingOfType("domain.Expense")).Return(nil).Once()
	suite.mockDistributionSvc.On("DistributeExpense", ctx, suite.organizationID, expense.ExpenseID, suite.userID).Return(nil, apperrors.ErrDuplicate).Once()

	approved, distributions, err := suite.service.ApproveExpense(ctx, suite.organizationID, expense.ExpenseID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(approved)
	suite.Nil(distributions)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	// The approval itself was persisted before distribution ran.
	suite.mockExpenseRepo.AssertCalled(suite.T(), "UpdateExpense", ctx, mock.AnythingOfType("domain.Expense"))
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestGetExpenseByID_ForeignOrganization() {
	ctx := context.Background()
	expense := suite.pendingExpense()
	foreign := &domain.Building{BuildingID: suite.buildingID, OrganizationID: uuid.NewString()}

	suite.mockOrgSvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.organizationID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockBuildingRepo.On("FindBuildingByID", mock.Anything, suite.buildingID).Return(foreign, nil).Once()

	result, err := suite.service.GetExpenseByID(ctx, suite.organizationID, expense.ExpenseID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
