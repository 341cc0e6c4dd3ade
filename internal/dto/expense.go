package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gilmry/koprogo-sub003/internal/core/domain"
)

// CreateExpenseRequest defines the payload for recording an expense.
type CreateExpenseRequest struct {
	BuildingID    string           `json:"buildingID" binding:"required"`
	Description   string           `json:"description" binding:"required"`
	Amount        decimal.Decimal  `json:"amount" binding:"required"`
	AmountInclVAT *decimal.Decimal `json:"amountInclVAT"`
	AccountCode   string           `json:"accountCode" binding:"required"`
	ExpenseDate   time.Time        `json:"expenseDate" binding:"required"`
	SupplierName  string           `json:"supplierName"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID     string           `json:"expenseID"`
	BuildingID    string           `json:"buildingID"`
	Description   string           `json:"description"`
	Amount        decimal.Decimal  `json:"amount"`
	AmountInclVAT *decimal.Decimal `json:"amountInclVAT,omitempty"`
	AccountCode   string           `json:"accountCode"`
	ExpenseDate   time.Time        `json:"expenseDate"`
	SupplierName  string           `json:"supplierName,omitempty"`
	Status        string           `json:"status"`
	ApprovedDate  *time.Time       `json:"approvedDate,omitempty"`
}

// ApproveExpenseResponse returns the approved expense together with the charge
// distribution batch generated by the approval.
type ApproveExpenseResponse struct {
	Expense       ExpenseResponse        `json:"expense"`
	Distributions []DistributionResponse `json:"distributions"`
	Verified      bool                   `json:"verified"`
}

// ListExpensesParams defines query parameters for listing a building's expenses.
type ListExpensesParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListExpensesResponse wraps a page of expenses.
type ListExpensesResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// ToExpenseResponse converts a domain expense to its DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:     e.ExpenseID,
		BuildingID:    e.BuildingID,
		Description:   e.Description,
		Amount:        e.Amount,
		AmountInclVAT: e.AmountInclVAT,
		AccountCode:   e.AccountCode,
		ExpenseDate:   e.ExpenseDate,
		SupplierName:  e.SupplierName,
		Status:        string(e.Status),
		ApprovedDate:  e.ApprovedDate,
	}
}

// ToListExpensesResponse converts domain expenses to the list DTO.
func ToListExpensesResponse(expenses []domain.Expense) ListExpensesResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return ListExpensesResponse{Expenses: responses}
}
