package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/gilmry/koprogo-sub003/internal/apperrors"
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	portsrepo "github.com/gilmry/koprogo-sub003/internal/core/ports/repositories"
	portssvc "github.com/gilmry/koprogo-sub003/internal/core/ports/services"
	"github.com/gilmry/koprogo-sub003/internal/dto"
	"github.com/gilmry/koprogo-sub003/internal/utils/accounting"
)

// distributionService computes and persists charge distribution batches. The
// arithmetic lives in the accounting package; this service feeds it the active
// ownership quotas and guards batch persistence.
type distributionService struct {
	BaseService
	distributionRepo portsrepo.DistributionRepositoryFacade
	expenseRepo      portsrepo.ExpenseReader
	buildingRepo     portsrepo.BuildingRepositoryFacade
}

// NewDistributionService creates a new distribution service.
func NewDistributionService(distributionRepo portsrepo.DistributionRepositoryFacade, expenseRepo portsrepo.ExpenseReader, buildingRepo portsrepo.BuildingRepositoryFacade, authorizer portssvc.OrganizationAuthorizerSvc) portssvc.DistributionSvcFacade {
	return &distributionService{
		BaseService:      BaseService{OrganizationAuthorizer: authorizer},
		distributionRepo: distributionRepo,
		expenseRepo:      expenseRepo,
		buildingRepo:     buildingRepo,
	}
}

// Ensure distributionService implements the portssvc.DistributionSvcFacade interface
var _ portssvc.DistributionSvcFacade = (*distributionService)(nil)

// DistributeExpense computes and persists the charge distribution batch for an
// approved expense, reading the building's active ownership quotas.
func (s *distributionService) DistributeExpense(ctx context.Context, organizationID string, expenseID string, requestingUserID string) ([]domain.ChargeDistribution, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}

	expense, err := s.findExpenseInOrganization(ctx, organizationID, expenseID)
	if err != nil {
		return nil, err
	}

	if expense.Status != domain.ExpenseApproved {
		return nil, fmt.Errorf("%w: expense %s is not approved", apperrors.ErrConflict, expenseID)
	}

	return s.distributeApprovedExpense(ctx, expense, requestingUserID)
}

// distributeApprovedExpense runs the calculation and batch persistence for an
// expense already known to be approved and scope-checked. The expense approval
// flow calls this directly to avoid a second status round trip.
func (s *distributionService) distributeApprovedExpense(ctx context.Context, expense *domain.Expense, requestingUserID string) ([]domain.ChargeDistribution, error) {
	ownerships, err := s.buildingRepo.FindActiveOwnershipsByBuilding(ctx, expense.BuildingID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch active ownerships",
			slog.String("building_id", expense.BuildingID))
		return nil, fmt.Errorf("failed to fetch active ownerships: %w", err)
	}

	shares := make([]domain.OwnershipShare, len(ownerships))
	for i := range ownerships {
		shares[i] = ownerships[i].Share()
	}

	total := expense.ChargeableAmount()
	distributions, err := accounting.CalculateDistributions(expense.ExpenseID, total, shares, requestingUserID)
	if err != nil {
		return nil, err
	}

	if len(distributions) == 0 {
		s.LogInfo(ctx, "Expense has no active owners to distribute to",
			slog.String("expense_id", expense.ExpenseID),
			slog.String("building_id", expense.BuildingID))
		return []domain.ChargeDistribution{}, nil
	}

	if err := s.distributionRepo.SaveDistributions(ctx, distributions); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: expense %s is already distributed", apperrors.ErrDuplicate, expense.ExpenseID)
		}
		s.LogError(ctx, err, "Failed to save distribution batch",
			slog.String("expense_id", expense.ExpenseID))
		return nil, fmt.Errorf("failed to save distributions: %w", err)
	}

	if !accounting.VerifyDistributionTotal(distributions, total) {
		// The batch is already stored; the mismatch is an audit signal, not a
		// reason to roll back real rows.
		s.LogError(ctx, apperrors.ErrInternal, "Distributed amounts drift beyond tolerance",
			slog.String("expense_id", expense.ExpenseID),
			slog.String("expected_total", total.String()))
	}

	s.LogInfo(ctx, "Expense distributed successfully",
		slog.String("expense_id", expense.ExpenseID),
		slog.Int("row_count", len(distributions)),
		slog.String("total", total.String()))
	return distributions, nil
}

// GetDistributionsByExpense retrieves the persisted batch for one expense.
func (s *distributionService) GetDistributionsByExpense(ctx context.Context, organizationID string, expenseID string, requestingUserID string) ([]domain.ChargeDistribution, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	if _, err := s.findExpenseInOrganization(ctx, organizationID, expenseID); err != nil {
		return nil, err
	}

	distributions, err := s.distributionRepo.FindDistributionsByExpenseID(ctx, expenseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch distributions", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to fetch distributions: %w", err)
	}
	if distributions == nil {
		distributions = []domain.ChargeDistribution{}
	}
	return distributions, nil
}

// ListDistributionsByOwner retrieves a paginated list of one owner's charges
// across all expenses.
func (s *distributionService) ListDistributionsByOwner(ctx context.Context, organizationID string, ownerID string, requestingUserID string, params dto.ListDistributionsParams) ([]domain.ChargeDistribution, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	if _, err := s.buildingRepo.FindOwnerByID(ctx, ownerID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	distributions, err := s.distributionRepo.FindDistributionsByOwnerID(ctx, ownerID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch owner distributions", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to fetch owner distributions: %w", err)
	}
	if distributions == nil {
		distributions = []domain.ChargeDistribution{}
	}
	return distributions, nil
}

// RecalculateDistributions recomputes every row of an expense's batch from a
// corrected total, keeping the already-validated quotas.
func (s *distributionService) RecalculateDistributions(ctx context.Context, organizationID string, expenseID string, newTotal decimal.Decimal, requestingUserID string) ([]domain.ChargeDistribution, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}

	if _, err := s.findExpenseInOrganization(ctx, organizationID, expenseID); err != nil {
		return nil, err
	}

	distributions, err := s.distributionRepo.FindDistributionsByExpenseID(ctx, expenseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch distributions for recalculation", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to fetch distributions: %w", err)
	}
	if len(distributions) == 0 {
		return nil, fmt.Errorf("%w: expense %s has no distributions", apperrors.ErrNotFound, expenseID)
	}

	for i := range distributions {
		if err := accounting.RecalculateDistribution(&distributions[i], newTotal, requestingUserID); err != nil {
			return nil, err
		}
	}

	if err := s.distributionRepo.UpdateDistributions(ctx, distributions); err != nil {
		s.LogError(ctx, err, "Failed to persist recalculated distributions",
			slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to update distributions: %w", err)
	}

	s.LogInfo(ctx, "Distributions recalculated successfully",
		slog.String("expense_id", expenseID),
		slog.Int("row_count", len(distributions)),
		slog.String("new_total", newTotal.String()))
	return distributions, nil
}

func (s *distributionService) findExpenseInOrganization(ctx context.Context, organizationID string, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find expense", slog.String("expense_id", expenseID))
		}
		return nil, err
	}

	building, err := s.buildingRepo.FindBuildingByID(ctx, expense.BuildingID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find building for expense", slog.String("building_id", expense.BuildingID))
		}
		return nil, err
	}
	if building.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	return expense, nil
}
