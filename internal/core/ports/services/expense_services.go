package services

import (
	"context"

	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	"github.com/gilmry/koprogo-sub003/internal/dto"
)

// ExpenseReaderSvc defines read operations for expenses
type ExpenseReaderSvc interface {
	// GetExpenseByID retrieves an expense by its unique identifier.
	GetExpenseByID(ctx context.Context, organizationID string, expenseID string, requestingUserID string) (*domain.Expense, error)

	// ListExpensesByBuilding retrieves a paginated list of a building's expenses.
	ListExpensesByBuilding(ctx context.Context, organizationID string, buildingID string, requestingUserID string, params dto.ListExpensesParams) ([]domain.Expense, error)
}

// ExpenseWriterSvc defines write operations for expenses
type ExpenseWriterSvc interface {
	// CreateExpense records a pending expense against a building.
	CreateExpense(ctx context.Context, organizationID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error)

	// ApproveExpense approves a pending expense, distributes its chargeable amount
	// across the building's active owners, and generates the purchase journal
	// entry. The distribution batch is persisted all-or-nothing.
	ApproveExpense(ctx context.Context, organizationID string, expenseID string, requestingUserID string) (*domain.Expense, []domain.ChargeDistribution, error)
}

// ExpenseSvcFacade combines all expense service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
