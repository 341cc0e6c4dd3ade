package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gilmry/koprogo-sub003/internal/apperrors"
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	portsrepo "github.com/gilmry/koprogo-sub003/internal/core/ports/repositories"
	portssvc "github.com/gilmry/koprogo-sub003/internal/core/ports/services"
	"github.com/gilmry/koprogo-sub003/internal/dto"
)

// budgetService drives the budget lifecycle. All state transitions live on the
// domain type; this service adds authorization, building scoping and persistence.
type budgetService struct {
	BaseService
	budgetRepo   portsrepo.BudgetRepositoryFacade
	buildingRepo portsrepo.BuildingReader
}

// NewBudgetService creates a new budget service.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, buildingRepo portsrepo.BuildingReader, authorizer portssvc.OrganizationAuthorizerSvc) portssvc.BudgetSvcFacade {
	return &budgetService{
		BaseService:  BaseService{OrganizationAuthorizer: authorizer},
		budgetRepo:   budgetRepo,
		buildingRepo: buildingRepo,
	}
}

// Ensure budgetService implements the portssvc.BudgetSvcFacade interface
var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// CreateBudget creates a draft budget for a (building, fiscal year) pair.
func (s *budgetService) CreateBudget(ctx context.Context, organizationID string, req dto.CreateBudgetRequest, creatorUserID string) (*domain.Budget, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}

	if _, err := s.findBuildingInOrganization(ctx, organizationID, req.BuildingID); err != nil {
		return nil, err
	}

	budget, err := domain.NewBudget(req.BuildingID, req.FiscalYear, req.OrdinaryBudget, req.ExtraordinaryBudget, creatorUserID)
	if err != nil {
		return nil, err
	}

	if err := s.budgetRepo.SaveBudget(ctx, *budget); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: building %s already has a budget for fiscal year %d", apperrors.ErrDuplicate, req.BuildingID, req.FiscalYear)
		}
		s.LogError(ctx, err, "Failed to save budget",
			slog.String("building_id", req.BuildingID),
			slog.Int("fiscal_year", req.FiscalYear))
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	s.LogInfo(ctx, "Budget created successfully",
		slog.String("budget_id", budget.BudgetID),
		slog.String("building_id", budget.BuildingID),
		slog.Int("fiscal_year", budget.FiscalYear))
	return budget, nil
}

// GetBudgetByID retrieves a budget scoped to the caller's organization.
func (s *budgetService) GetBudgetByID(ctx context.Context, organizationID string, budgetID string, requestingUserID string) (*domain.Budget, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.findBudgetInOrganization(ctx, organizationID, budgetID)
}

// ListBudgetsByBuilding retrieves all budgets of a building, newest fiscal year first.
func (s *budgetService) ListBudgetsByBuilding(ctx context.Context, organizationID string, buildingID string, requestingUserID string) ([]domain.Budget, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	if _, err := s.findBuildingInOrganization(ctx, organizationID, buildingID); err != nil {
		return nil, err
	}

	budgets, err := s.budgetRepo.ListBudgetsByBuilding(ctx, buildingID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets", slog.String("building_id", buildingID))
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	if budgets == nil {
		budgets = []domain.Budget{}
	}
	return budgets, nil
}

// UpdateBudgetAmounts replaces both amounts of an editable budget.
func (s *budgetService) UpdateBudgetAmounts(ctx context.Context, organizationID string, budgetID string, req dto.UpdateBudgetAmountsRequest, requestingUserID string) (*domain.Budget, error) {
	return s.mutateBudget(ctx, organizationID, budgetID, requestingUserID, "amounts updated", func(b *domain.Budget) error {
		return b.UpdateAmounts(req.OrdinaryBudget, req.ExtraordinaryBudget, requestingUserID)
	})
}

// SubmitBudget moves a draft or rejected budget to submitted.
func (s *budgetService) SubmitBudget(ctx context.Context, organizationID string, budgetID string, requestingUserID string) (*domain.Budget, error) {
	return s.mutateBudget(ctx, organizationID, budgetID, requestingUserID, "submitted", func(b *domain.Budget) error {
		return b.SubmitForApproval(requestingUserID)
	})
}

// ApproveBudget moves a submitted budget to approved, recording the general meeting.
func (s *budgetService) ApproveBudget(ctx context.Context, organizationID string, budgetID string, meetingID string, requestingUserID string) (*domain.Budget, error) {
	return s.mutateBudget(ctx, organizationID, budgetID, requestingUserID, "approved", func(b *domain.Budget) error {
		return b.Approve(meetingID, requestingUserID)
	})
}

// RejectBudget moves a submitted budget back to rejected.
func (s *budgetService) RejectBudget(ctx context.Context, organizationID string, budgetID string, requestingUserID string) (*domain.Budget, error) {
	return s.mutateBudget(ctx, organizationID, budgetID, requestingUserID, "rejected", func(b *domain.Budget) error {
		return b.Reject(requestingUserID)
	})
}

// ArchiveBudget moves an approved budget to the terminal archived state.
func (s *budgetService) ArchiveBudget(ctx context.Context, organizationID string, budgetID string, requestingUserID string) (*domain.Budget, error) {
	return s.mutateBudget(ctx, organizationID, budgetID, requestingUserID, "archived", func(b *domain.Budget) error {
		return b.Archive(requestingUserID)
	})
}

// mutateBudget loads a budget, applies a domain mutation and persists the result.
// The domain type rejects illegal lifecycle transitions before anything is written.
func (s *budgetService) mutateBudget(ctx context.Context, organizationID string, budgetID string, requestingUserID string, action string, mutate func(*domain.Budget) error) (*domain.Budget, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}

	budget, err := s.findBudgetInOrganization(ctx, organizationID, budgetID)
	if err != nil {
		return nil, err
	}
	previousStatus := budget.Status

	if err := mutate(budget); err != nil {
		return nil, err
	}

	if err := s.budgetRepo.UpdateBudget(ctx, *budget, previousStatus); err != nil {
		if errors.Is(err, apperrors.ErrStateTransition) {
			// Lost the race against a concurrent transition.
			return nil, fmt.Errorf("%w: budget %s changed state concurrently", apperrors.ErrStateTransition, budgetID)
		}
		s.LogError(ctx, err, "Failed to persist budget change",
			slog.String("budget_id", budgetID),
			slog.String("action", action))
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	s.LogInfo(ctx, "Budget "+action,
		slog.String("budget_id", budgetID),
		slog.String("status", string(budget.Status)),
		slog.String("user_id", requestingUserID))
	return budget, nil
}

// findBudgetInOrganization loads a budget and verifies its building belongs to the
// caller's organization. Budgets of foreign organizations read as not found.
func (s *budgetService) findBudgetInOrganization(ctx context.Context, organizationID string, budgetID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find budget", slog.String("budget_id", budgetID))
		}
		return nil, err
	}

	if _, err := s.findBuildingInOrganization(ctx, organizationID, budget.BuildingID); err != nil {
		return nil, err
	}
	return budget, nil
}

func (s *budgetService) findBuildingInOrganization(ctx context.Context, organizationID string, buildingID string) (*domain.Building, error) {
	building, err := s.buildingRepo.FindBuildingByID(ctx, buildingID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find building", slog.String("building_id", buildingID))
		}
		return nil, err
	}
	if building.OrganizationID != organizationID {
		s.LogDebug(ctx, "Building belongs to different organization",
			slog.String("building_id", buildingID),
			slog.String("building_organization", building.OrganizationID),
			slog.String("requested_organization", organizationID))
		return nil, apperrors.ErrNotFound
	}
	return building, nil
}
