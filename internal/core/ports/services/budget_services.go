package services

import (
	"context"

	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	"github.com/gilmry/koprogo-sub003/internal/dto"
)

// BudgetReaderSvc defines read operations for budgets
type BudgetReaderSvc interface {
	// GetBudgetByID retrieves a budget by its unique identifier.
	GetBudgetByID(ctx context.Context, organizationID string, budgetID string, requestingUserID string) (*domain.Budget, error)

	// ListBudgetsByBuilding retrieves all budgets of a building.
	ListBudgetsByBuilding(ctx context.Context, organizationID string, buildingID string, requestingUserID string) ([]domain.Budget, error)
}

// BudgetWriterSvc defines write and lifecycle operations for budgets
type BudgetWriterSvc interface {
	// CreateBudget creates a draft budget for a (building, fiscal year) pair.
	CreateBudget(ctx context.Context, organizationID string, req dto.CreateBudgetRequest, creatorUserID string) (*domain.Budget, error)

	// UpdateBudgetAmounts replaces both amounts of an editable budget.
	UpdateBudgetAmounts(ctx context.Context, organizationID string, budgetID string, req dto.UpdateBudgetAmountsRequest, requestingUserID string) (*domain.Budget, error)

	// SubmitBudget moves a draft or rejected budget to submitted.
	SubmitBudget(ctx context.Context, organizationID string, budgetID string, requestingUserID string) (*domain.Budget, error)

	// ApproveBudget moves a submitted budget to approved, recording the meeting.
	ApproveBudget(ctx context.Context, organizationID string, budgetID string, meetingID string, requestingUserID string) (*domain.Budget, error)

	// RejectBudget moves a submitted budget back to rejected.
	RejectBudget(ctx context.Context, organizationID string, budgetID string, requestingUserID string) (*domain.Budget, error)

	// ArchiveBudget moves an approved budget to the terminal archived state.
	ArchiveBudget(ctx context.Context, organizationID string, budgetID string, requestingUserID string) (*domain.Budget, error)
}

// BudgetSvcFacade combines all budget service interfaces
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
}
