package services_test

import (
	"context"
	"testing"

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

type BudgetServiceTestSuite struct {
	suite.Suite
	mockBudgetRepo   *MockBudgetRepository
	mockBuildingRepo *MockBuildingRepository
	mockOrgSvc       *MockOrganizationService
	service          portssvc.BudgetSvcFacade
	organizationID   string
	buildingID       string
	userID           string
	building         *domain.Building
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.mockBuildingRepo = new(MockBuildingRepository)
	suite.mockOrgSvc = new(MockOrganizationService)
	suite.service = services.NewBudgetService(suite.mockBudgetRepo, suite.mockBuildingRepo, suite.mockOrgSvc)

	suite.organizationID = uuid.NewString()
	suite.buildingID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.building = &domain.Building{
		BuildingID:     suite.buildingID,
		OrganizationID: suite.organizationID,
		Name:           "Résidence du Parc",
	}
}

func (suite *BudgetServiceTestSuite) draftBudget() *domain.Budget {
	budget, err := domain.NewBudget(suite.buildingID, 2026, decimal.NewFromInt(50000), decimal.NewFromInt(10000), suite.userID)
	suite.Require().NoError(err)
	return budget
}

func (suite *BudgetServiceTestSuite) expectAuthorized() {
	suite.mockOrgSvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil)
}

func (suite *BudgetServiceTestSuite) expectBuildingLookup() {
	suite.mockBuildingRepo.On("FindBuildingByID", mock.Anything, suite.buildingID).Return(suite.building, nil)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_Success() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		BuildingID:          suite.buildingID,
		FiscalYear:          2026,
		OrdinaryBudget:      decimal.NewFromInt(50000),
		ExtraordinaryBudget: decimal.NewFromInt(10000),
	}

	suite.expectAuthorized()
	suite.expectBuildingLookup()
	suite.mockBudgetRepo.On("SaveBudget", ctx, mock.AnythingOfType("domain.Budget")).Return(nil).Once()

	budget, err := suite.service.CreateBudget(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(budget)
	suite.Equal(domain.BudgetDraft, budget.Status)
	suite.True(budget.TotalBudget.Equal(decimal.NewFromInt(60000)))
	suite.True(budget.MonthlyProvisionAmount.Equal(decimal.NewFromInt(5000)))
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_DuplicateYear() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		BuildingID:     suite.buildingID,
		FiscalYear:     2026,
		OrdinaryBudget: decimal.NewFromInt(50000),
	}

	suite.expectAuthorized()
	suite.expectBuildingLookup()
	suite.mockBudgetRepo.On("SaveBudget", ctx, mock.AnythingOfType("domain.Budget")).Return(apperrors.ErrDuplicate).Once()

	budget, err := suite.service.CreateBudget(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(budget)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *BudgetServiceTestSuite) TestSubmitBudget_FromDraft() {
	ctx := context.Background()
	budget := suite.draftBudget()

	suite.expectAuthorized()
	suite.expectBuildingLookup()
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(budget, nil).Once()
	suite.mockBudgetRepo.On("UpdateBudget", ctx, mock.AnythingOfType("domain.Budget"), domain.BudgetDraft).Return(nil).Once()

	updated, err := suite.service.SubmitBudget(ctx, suite.organizationID, budget.BudgetID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.BudgetSubmitted, updated.Status)
	suite.NotNil(updated.SubmittedDate)
}

func (suite *BudgetServiceTestSuite) TestApproveBudget_RecordsMeeting() {
	ctx := context.Background()
	budget := suite.draftBudget()
	suite.Require().NoError(budget.SubmitForApproval(suite.userID))
	meetingID := uuid.NewString()

	suite.expectAuthorized()
	suite.expectBuildingLookup()
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(budget, nil).Once()
	suite.mockBudgetRepo.On("UpdateBudget", ctx, mock.AnythingOfType("domain.Budget"), domain.BudgetSubmitted).Return(nil).Once()

	updated, err := suite.service.ApproveBudget(ctx, suite.organizationID, budget.BudgetID, meetingID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.BudgetApproved, updated.Status)
	suite.Require().NotNil(updated.ApprovedByMeetingID)
	suite.Equal(meetingID, *updated.ApprovedByMeetingID)
	suite.True(updated.IsActive())
}

func (suite *BudgetServiceTestSuite) TestApproveBudget_FromDraftFails() {
	ctx := context.Background()
	budget := suite.draftBudget()

	suite.expectAuthorized()
	suite.expectBuildingLookup()
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(budget, nil).Once()

	updated, err := suite.service.ApproveBudget(ctx, suite.organizationID, budget.BudgetID, uuid.NewString(), suite.userID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrStateTransition)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "UpdateBudget", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestUpdateBudgetAmounts_SubmittedNotEditable() {
	ctx := context.Background()
	budget := suite.draftBudget()
	suite.Require().NoError(budget.SubmitForApproval(suite.userID))

	suite.expectAuthorized()
	suite.expectBuildingLookup()
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(budget, nil).Once()

	req := dto.UpdateBudgetAmountsRequest{
		OrdinaryBudget:      decimal.NewFromInt(55000),
		ExtraordinaryBudget: decimal.NewFromInt(5000),
	}
	updated, err := suite.service.UpdateBudgetAmounts(ctx, suite.organizationID, budget.BudgetID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotEditable)
}

func (suite *BudgetServiceTestSuite) TestRejectedBudget_EditAndResubmit() {
	ctx := context.Background()
	budget := suite.draftBudget()
	suite.Require().NoError(budget.SubmitForApproval(suite.userID))
	suite.Require().NoError(budget.Reject(suite.userID))

	suite.expectAuthorized()
	suite.expectBuildingLookup()
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(budget, nil).Twice()
	suite.mockBudgetRepo.On("UpdateBudget", ctx, mock.AnythingOfType("domain.Budget"), domain.BudgetRejected).Return(nil).Twice()

	req := dto.UpdateBudgetAmountsRequest{
		OrdinaryBudget:      decimal.NewFromInt(48000),
		ExtraordinaryBudget: decimal.NewFromInt(12000),
	}
	updated, err := suite.service.UpdateBudgetAmounts(ctx, suite.organizationID, budget.BudgetID, req, suite.userID)
	suite.Require().NoError(err)
	// Editing a rejected budget keeps it Rejected; only resubmission changes state.
	suite.Equal(domain.BudgetRejected, updated.Status)
	suite.True(updated.TotalBudget.Equal(decimal.NewFromInt(60000)))

	resubmitted, err := suite.service.SubmitBudget(ctx, suite.organizationID, budget.BudgetID, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(domain.BudgetSubmitted, resubmitted.Status)
}

func (suite *BudgetServiceTestSuite) TestApproveBudget_ConcurrentTransitionLoses() {
	ctx := context.Background()
	budget := suite.draftBudget()
	suite.Require().NoError(budget.SubmitForApproval(suite.userID))

	suite.expectAuthorized()
	suite.expectBuildingLookup()
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(budget, nil).Once()
	suite.mockBudgetRepo.On("UpdateBudget", ctx, mock.AnythingOfType("domain.Budget"), domain.BudgetSubmitted).
		Return(apperrors.ErrStateTransition).Once()

	updated, err := suite.service.ApproveBudget(ctx, suite.organizationID, budget.BudgetID, uuid.NewString(), suite.userID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrStateTransition)
}

func (suite *BudgetServiceTestSuite) TestGetBudgetByID_WrongOrganization() {
	ctx := context.Background()
	budget := suite.draftBudget()
	foreignBuilding := &domain.Building{
		BuildingID:     suite.buildingID,
		OrganizationID: uuid.NewString(),
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.organizationID, domain.RoleReadOnly).Return(nil)
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(budget, nil).Once()
	suite.mockBuildingRepo.On("FindBuildingByID", mock.Anything, suite.buildingID).Return(foreignBuilding, nil).Once()

	found, err := suite.service.GetBudgetByID(ctx, suite.organizationID, budget.BudgetID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(found)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestBudgetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
