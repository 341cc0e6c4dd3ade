package repositories

import (
	"context"

	"github.com/gilmry/koprogo-sub003/internal/core/domain"
)

// BudgetReader defines read operations for budgets
type BudgetReader interface {
	// FindBudgetByID retrieves a budget by its unique identifier.
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)

	// FindBudgetByBuildingAndYear retrieves the budget of one building for one
	// fiscal year. Each (building, fiscal_year) pair has at most one budget.
	FindBudgetByBuildingAndYear(ctx context.Context, buildingID string, fiscalYear int) (*domain.Budget, error)

	// ListBudgetsByBuilding retrieves all budgets of a building, newest fiscal year first.
	ListBudgetsByBuilding(ctx context.Context, buildingID string) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budgets
type BudgetWriter interface {
	// SaveBudget persists a new budget. A second budget for the same
	// (building, fiscal_year) must surface apperrors.ErrDuplicate.
	SaveBudget(ctx context.Context, budget domain.Budget) error

	// UpdateBudget persists amount or lifecycle changes of an existing budget.
	// The update only applies while the stored row still carries expectedStatus;
	// a concurrent transition makes it match zero rows and surface
	// apperrors.ErrStateTransition.
	UpdateBudget(ctx context.Context, budget domain.Budget, expectedStatus domain.BudgetStatus) error
}

// BudgetRepositoryFacade combines all budget repository interfaces
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
