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

type JournalEntryServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalEntryRepository
	mockAccountSvc  *MockAccountService
	mockOrgSvc      *MockOrganizationService
	service         portssvc.JournalEntrySvcFacade
	organizationID  string
	userID          string
}

func (suite *JournalEntryServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalEntryRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockOrgSvc = new(MockOrganizationService)
	suite.service = services.NewJournalEntryService(suite.mockJournalRepo, suite.mockAccountSvc, suite.mockOrgSvc)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *JournalEntryServiceTestSuite) directUseAccount(code string, accountType domain.AccountType) *domain.Account {
	return &domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		Code:           code,
		Label:          "Account " + code,
		AccountType:    accountType,
		DirectUse:      true,
	}
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: "Elevator maintenance invoice",
		Lines: []dto.CreateJournalLineRequest{
			{AccountCode: "6100", Debit: decimal.NewFromInt(1000)},
			{AccountCode: "4110", Debit: decimal.NewFromInt(210)},
			{AccountCode: "4400", Credit: decimal.NewFromInt(1210)},
		},
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountSvc.On("GetAccountByCode", ctx, suite.organizationID, "6100", suite.userID).Return(suite.directUseAccount("6100", domain.AccountTypeExpense), nil).Once()
	suite.mockAccountSvc.On("GetAccountByCode", ctx, suite.organizationID, "4110", suite.userID).Return(suite.directUseAccount("4110", domain.AccountTypeAsset), nil).Once()
	suite.mockAccountSvc.On("GetAccountByCode", ctx, suite.organizationID, "4400", suite.userID).Return(suite.directUseAccount("4400", domain.AccountTypeLiability), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(suite.organizationID, entry.OrganizationID)
	suite.Len(entry.Lines, 3)
	suite.True(entry.IsBalanced())
	suite.Equal(suite.userID, entry.CreatedBy)

	suite.mockOrgSvc.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate: time.Now(),
		Lines: []dto.CreateJournalLineRequest{
			{AccountCode: "6100", Debit: decimal.NewFromInt(1000)},
			{AccountCode: "4400", Credit: decimal.NewFromInt(900)},
		},
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrUnbalancedEntry)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_AuthorizationFail() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate: time.Now(),
		Lines: []dto.CreateJournalLineRequest{
			{AccountCode: "6100", Debit: decimal.NewFromInt(100)},
			{AccountCode: "4400", Credit: decimal.NewFromInt(100)},
		},
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(apperrors.ErrForbidden).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_UnknownAccountCode() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate: time.Now(),
		Lines: []dto.CreateJournalLineRequest{
			{AccountCode: "9999", Debit: decimal.NewFromInt(100)},
			{AccountCode: "4400", Credit: decimal.NewFromInt(100)},
		},
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountSvc.On("GetAccountByCode", ctx, suite.organizationID, "9999", suite.userID).Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_NonDirectUseAccount() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate: time.Now(),
		Lines: []dto.CreateJournalLineRequest{
			{AccountCode: "6", Debit: decimal.NewFromInt(100)},
			{AccountCode: "4400", Credit: decimal.NewFromInt(100)},
		},
	}

	rootAccount := suite.directUseAccount("6", domain.AccountTypeExpense)
	rootAccount.DirectUse = false

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountSvc.On("GetAccountByCode", ctx, suite.organizationID, "6", suite.userID).Return(rootAccount, nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalEntryServiceTestSuite) TestGetEntryByID_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	stored := &domain.JournalEntry{
		EntryID:        entryID,
		OrganizationID: suite.organizationID,
		EntryDate:      time.Now(),
	}
	lines := []domain.JournalEntryLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountCode: "6100", Debit: decimal.NewFromInt(500)},
		{LineID: uuid.NewString(), EntryID: entryID, AccountCode: "4400", Credit: decimal.NewFromInt(500)},
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()

	entry, err := suite.service.GetEntryByID(ctx, suite.organizationID, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Len(entry.Lines, 2)
	suite.True(entry.IsBalanced())
}

func (suite *JournalEntryServiceTestSuite) TestGetEntryByID_CorruptUnbalancedEntry() {
	ctx := context.Background()
	entryID := uuid.NewString()
	stored := &domain.JournalEntry{
		EntryID:        entryID,
		OrganizationID: suite.organizationID,
		EntryDate:      time.Now(),
	}
	// A line went missing in storage; the loaded entry no longer balances.
	lines := []domain.JournalEntryLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountCode: "6100", Debit: decimal.NewFromInt(500)},
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()

	entry, err := suite.service.GetEntryByID(ctx, suite.organizationID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrInternal)
}

func (suite *JournalEntryServiceTestSuite) TestGetEntryByID_WrongOrganization() {
	ctx := context.Background()
	entryID := uuid.NewString()
	stored := &domain.JournalEntry{
		EntryID:        entryID,
		OrganizationID: uuid.NewString(), // different organization
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()

	entry, err := suite.service.GetEntryByID(ctx, suite.organizationID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindLinesByEntryID", mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestListEntries_Success() {
	ctx := context.Background()
	entries := []domain.JournalEntry{
		{EntryID: uuid.NewString(), OrganizationID: suite.organizationID},
		{EntryID: uuid.NewString(), OrganizationID: suite.organizationID},
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockJournalRepo.On("ListEntriesByOrganization", ctx, suite.organizationID, 20, (*string)(nil)).Return(entries, "next-page", nil).Once()

	resp, err := suite.service.ListEntries(ctx, suite.organizationID, suite.userID, dto.ListJournalEntriesParams{})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Len(resp.Entries, 2)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("next-page", *resp.NextToken)
}

func (suite *JournalEntryServiceTestSuite) TestListAccountActivity_Success() {
	ctx := context.Background()
	account := suite.directUseAccount("6100", domain.AccountTypeExpense)
	lines := []domain.JournalEntryLine{
		{LineID: uuid.NewString(), AccountCode: "6100", Debit: decimal.NewFromInt(500)},
		{LineID: uuid.NewString(), AccountCode: "6100", Debit: decimal.NewFromInt(250)},
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockAccountSvc.On("GetAccountByCode", ctx, suite.organizationID, "6100", suite.userID).Return(account, nil).Once()
	suite.mockJournalRepo.On("ListLinesByAccountCode", ctx, suite.organizationID, "6100", 20, (*string)(nil)).Return(lines, nil, nil).Once()

	resp, err := suite.service.ListAccountActivity(ctx, suite.organizationID, "6100", suite.userID, dto.ListAccountActivityParams{})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Equal("6100", resp.AccountCode)
	suite.Len(resp.Lines, 2)
	suite.Nil(resp.NextToken)
}

func (suite *JournalEntryServiceTestSuite) TestListAccountActivity_UnknownAccount() {
	ctx := context.Background()

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockAccountSvc.On("GetAccountByCode", ctx, suite.organizationID, "9999", suite.userID).Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.ListAccountActivity(ctx, suite.organizationID, "9999", suite.userID, dto.ListAccountActivityParams{})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ListLinesByAccountCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestJournalEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalEntryServiceTestSuite))
}
