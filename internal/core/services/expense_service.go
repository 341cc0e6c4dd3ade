package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gilmry/koprogo-sub003/internal/apperrors"
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	portsrepo "github.com/gilmry/koprogo-sub003/internal/core/ports/repositories"
	portssvc "github.com/gilmry/koprogo-sub003/internal/core/ports/services"
	"github.com/gilmry/koprogo-sub003/internal/dto"
)

// Accounts the purchase entry of an approved expense posts against. The VAT and
// supplier accounts are fixed by the chart conventions; the expense side comes from
// the expense itself.
const (
	vatDeductibleAccountCode = "4110"
	suppliersAccountCode     = "4400"
)

// expenseService records building expenses and drives the approval flow: approving
// an expense distributes its chargeable amount across the active owners and books
// the matching purchase journal entry.
type expenseService struct {
	BaseService
	expenseRepo     portsrepo.ExpenseRepositoryFacade
	buildingRepo    portsrepo.BuildingReader
	distributionSvc portssvc.DistributionSvcFacade
	journalSvc      portssvc.JournalEntrySvcFacade
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, buildingRepo portsrepo.BuildingReader, distributionSvc portssvc.DistributionSvcFacade, journalSvc portssvc.JournalEntrySvcFacade, authorizer portssvc.OrganizationAuthorizerSvc) portssvc.ExpenseSvcFacade {
	return &expenseService{
		BaseService:     BaseService{OrganizationAuthorizer: authorizer},
		expenseRepo:     expenseRepo,
		buildingRepo:    buildingRepo,
		distributionSvc: distributionSvc,
		journalSvc:      journalSvc,
	}
}

// Ensure expenseService implements the portssvc.ExpenseSvcFacade interface
var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// CreateExpense records a pending expense against a building.
func (s *expenseService) CreateExpense(ctx context.Context, organizationID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}

	if _, err := s.findBuildingInOrganization(ctx, organizationID, req.BuildingID); err != nil {
		return nil, err
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:     uuid.NewString(),
		BuildingID:    req.BuildingID,
		Description:   req.Description,
		Amount:        req.Amount,
		AmountInclVAT: req.AmountInclVAT,
		AccountCode:   req.AccountCode,
		ExpenseDate:   req.ExpenseDate,
		SupplierName:  req.SupplierName,
		Status:        domain.ExpensePending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := expense.Validate(); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense",
			slog.String("building_id", req.BuildingID))
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}

	s.LogInfo(ctx, "Expense created successfully",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("building_id", expense.BuildingID),
		slog.String("amount", expense.Amount.String()))
	return &expense, nil
}

// GetExpenseByID retrieves an expense scoped to the caller's organization.
func (s *expenseService) GetExpenseByID(ctx context.Context, organizationID string, expenseID string, requestingUserID string) (*domain.Expense, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.findExpenseInOrganization(ctx, organizationID, expenseID)
}

// ListExpensesByBuilding retrieves a paginated list of a building's expenses.
func (s *expenseService) ListExpensesByBuilding(ctx context.Context, organizationID string, buildingID string, requestingUserID string, params dto.ListExpensesParams) ([]domain.Expense, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	if _, err := s.findBuildingInOrganization(ctx, organizationID, buildingID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	expenses, err := s.expenseRepo.ListExpensesByBuilding(ctx, buildingID, limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses", slog.String("building_id", buildingID))
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	return expenses, nil
}

// ApproveExpense approves a pending expense, distributes its chargeable amount
// across the building's active owners and books the purchase journal entry.
// Concurrent approvals of the same expense are arbitrated by the distribution
// batch's uniqueness guarantee: the loser surfaces apperrors.ErrDuplicate.
func (s *expenseService) ApproveExpense(ctx context.Context, organizationID string, expenseID string, requestingUserID string) (*domain.Expense, []domain.ChargeDistribution, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleAccountant); err != nil {
		return nil, nil, err
	}

	expense, err := s.findExpenseInOrganization(ctx, organizationID, expenseID)
	if err != nil {
		return nil, nil, err
	}

	if err := expense.Approve(requestingUserID); err != nil {
		return nil, nil, err
	}

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "Failed to persist expense approval", slog.String("expense_id", expenseID))
		return nil, nil, fmt.Errorf("failed to update expense: %w", err)
	}

	distributions, err := s.distributionSvc.DistributeExpense(ctx, organizationID, expenseID, requestingUserID)
	if err != nil {
		// The approval stands; a failed distribution run can be repeated through
		// the distribution endpoint once the cause is fixed.
		s.LogError(ctx, err, "Distribution failed after expense approval", slog.String("expense_id", expenseID))
		return nil, nil, err
	}

	if err := s.bookPurchaseEntry(ctx, organizationID, expense, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to book purchase entry for approved expense", slog.String("expense_id", expenseID))
		return nil, nil, err
	}

	s.LogInfo(ctx, "Expense approved and distributed",
		slog.String("expense_id", expenseID),
		slog.Int("distribution_count", len(distributions)),
		slog.String("user_id", requestingUserID))
	return expense, distributions, nil
}

// bookPurchaseEntry records the double-entry counterpart of an approved expense:
// debit the expense account (and deductible VAT when present), credit suppliers.
func (s *expenseService) bookPurchaseEntry(ctx context.Context, organizationID string, expense *domain.Expense, userID string) error {
	if s.journalSvc == nil {
		return nil
	}

	lines := []dto.CreateJournalLineRequest{
		{
			AccountCode: expense.AccountCode,
			Debit:       expense.Amount,
			Description: expense.Description,
		},
	}
	if expense.AmountInclVAT != nil {
		vat := expense.AmountInclVAT.Sub(expense.Amount)
		if vat.IsPositive() {
			lines = append(lines, dto.CreateJournalLineRequest{
				AccountCode: vatDeductibleAccountCode,
				Debit:       vat,
				Description: "VAT on " + expense.Description,
			})
		}
	}
	lines = append(lines, dto.CreateJournalLineRequest{
		AccountCode: suppliersAccountCode,
		Credit:      expense.ChargeableAmount(),
		Description: expense.SupplierName,
	})

	journalType := string(domain.Purchases)
	req := dto.CreateJournalEntryRequest{
		BuildingID:  &expense.BuildingID,
		EntryDate:   expense.ExpenseDate,
		Description: expense.Description,
		JournalType: &journalType,
		ExpenseID:   &expense.ExpenseID,
		Lines:       lines,
	}

	if _, err := s.journalSvc.CreateEntry(ctx, organizationID, req, userID); err != nil {
		return fmt.Errorf("failed to create purchase entry: %w", err)
	}
	return nil
}

func (s *expenseService) findExpenseInOrganization(ctx context.Context, organizationID string, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find expense", slog.String("expense_id", expenseID))
		}
		return nil, err
	}

	if _, err := s.findBuildingInOrganization(ctx, organizationID, expense.BuildingID); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) findBuildingInOrganization(ctx context.Context, organizationID string, buildingID string) (*domain.Building, error) {
	building, err := s.buildingRepo.FindBuildingByID(ctx, buildingID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find building", slog.String("building_id", buildingID))
		}
		return nil, err
	}
	if building.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	return building, nil
}
