package repositories

import (
	"context"

	"github.com/gilmry/koprogo-sub003/internal/core/domain"
)

// ExpenseReader defines read operations for expenses
type ExpenseReader interface {
	// FindExpenseByID retrieves an expense by its unique identifier.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpensesByBuilding retrieves a paginated list of a building's expenses.
	ListExpensesByBuilding(ctx context.Context, buildingID string, limit int, offset int) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expenses
type ExpenseWriter interface {
	// SaveExpense persists a new expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// UpdateExpense persists changes to an existing expense.
	UpdateExpense(ctx context.Context, expense domain.Expense) error
}

// ExpenseRepositoryFacade combines all expense repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
