package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gilmry/koprogo-sub003/internal/apperrors"
)

// ExpenseStatus is the approval state of an expense.
type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "PENDING"
	ExpenseApproved ExpenseStatus = "APPROVED"
	ExpenseRejected ExpenseStatus = "REJECTED"
)

// Expense is an invoice charged to a building. Distribution across owners only runs
// once the expense is approved.
type Expense struct {
	ExpenseID     string           `json:"expenseID"`  // Primary Key (e.g., UUID)
	BuildingID    string           `json:"buildingID"` // FK -> buildings.building_id
	Description   string           `json:"description"`
	Amount        decimal.Decimal  `json:"amount"`        // Excl. VAT
	AmountInclVAT *decimal.Decimal `json:"amountInclVAT"` // Nullable; preferred when present
	AccountCode   string           `json:"accountCode"`   // Expense account (e.g. "6100")
	ExpenseDate   time.Time        `json:"expenseDate"`
	SupplierName  string           `json:"supplierName"`
	Status        ExpenseStatus    `json:"status"`
	ApprovedDate  *time.Time       `json:"approvedDate"`
	AuditFields
}

// ChargeableAmount is the amount distributed across owners: amount including VAT when
// known, otherwise the bare amount.
func (e *Expense) ChargeableAmount() decimal.Decimal {
	if e.AmountInclVAT != nil {
		return *e.AmountInclVAT
	}
	return e.Amount
}

// Approve flips a pending expense to approved. Approving twice conflicts.
func (e *Expense) Approve(updatedBy string) error {
	if e.Status == ExpenseApproved {
		return fmt.Errorf("%w: expense %s is already approved", apperrors.ErrConflict, e.ExpenseID)
	}
	if e.Status != ExpensePending {
		return fmt.Errorf("%w: expense %s in status %s cannot be approved", apperrors.ErrConflict, e.ExpenseID, e.Status)
	}
	now := time.Now().UTC()
	e.Status = ExpenseApproved
	e.ApprovedDate = &now
	e.LastUpdatedAt = now
	e.LastUpdatedBy = updatedBy
	return nil
}

// Validate checks the invariants that must hold before an expense is persisted.
func (e *Expense) Validate() error {
	if e.BuildingID == "" {
		return fmt.Errorf("%w: building ID is required", apperrors.ErrValidation)
	}
	if e.Description == "" {
		return fmt.Errorf("%w: expense description is required", apperrors.ErrValidation)
	}
	if e.Amount.IsNegative() {
		return fmt.Errorf("%w: expense amount must be non-negative", apperrors.ErrValidation)
	}
	if e.AmountInclVAT != nil && e.AmountInclVAT.LessThan(e.Amount) {
		return fmt.Errorf("%w: amount including VAT cannot be below the base amount", apperrors.ErrValidation)
	}
	return nil
}
