package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gilmry/koprogo-sub003/internal/apperrors"
)

// BudgetStatus is the lifecycle state of an annual budget.
type BudgetStatus string

const (
	BudgetDraft     BudgetStatus = "DRAFT"
	BudgetSubmitted BudgetStatus = "SUBMITTED"
	BudgetApproved  BudgetStatus = "APPROVED"
	BudgetRejected  BudgetStatus = "REJECTED"
	BudgetArchived  BudgetStatus = "ARCHIVED" // Terminal
)

// ParseBudgetStatus validates a string against the closed set of budget statuses.
func ParseBudgetStatus(s string) (BudgetStatus, error) {
	switch BudgetStatus(s) {
	case BudgetDraft, BudgetSubmitted, BudgetApproved, BudgetRejected, BudgetArchived:
		return BudgetStatus(s), nil
	default:
		return "", fmt.Errorf("%w: unknown budget status %q", apperrors.ErrValidation, s)
	}
}

const (
	minFiscalYear = 2000
	maxFiscalYear = 2100
)

var monthsPerYear = decimal.NewFromInt(12)

// InvalidTransitionError reports a budget lifecycle transition outside the allowed table.
type InvalidTransitionError struct {
	From BudgetStatus
	To   BudgetStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("budget cannot transition from %s to %s", e.From, e.To)
}

// Unwrap makes the error matchable by kind with errors.Is.
func (e *InvalidTransitionError) Unwrap() error { return apperrors.ErrStateTransition }

// Budget is the annual budget of one building for one fiscal year. TotalBudget and
// MonthlyProvisionAmount are derived and recomputed on every amount change; they are
// never independently settable.
type Budget struct {
	BudgetID               string          `json:"budgetID"`   // Primary Key (e.g., UUID)
	BuildingID             string          `json:"buildingID"` // FK -> buildings.building_id
	FiscalYear             int             `json:"fiscalYear"`
	OrdinaryBudget         decimal.Decimal `json:"ordinaryBudget"`
	ExtraordinaryBudget    decimal.Decimal `json:"extraordinaryBudget"`
	TotalBudget            decimal.Decimal `json:"totalBudget"`            // ordinary + extraordinary
	MonthlyProvisionAmount decimal.Decimal `json:"monthlyProvisionAmount"` // total / 12
	Status                 BudgetStatus    `json:"status"`
	SubmittedDate          *time.Time      `json:"submittedDate"`
	ApprovedDate           *time.Time      `json:"approvedDate"`
	ApprovedByMeetingID    *string         `json:"approvedByMeetingID"`
	AuditFields
}

// NewBudget constructs a Draft budget after validating fiscal year and amounts.
// A zero-total budget is meaningless and rejected.
func NewBudget(buildingID string, fiscalYear int, ordinary, extraordinary decimal.Decimal, createdBy string) (*Budget, error) {
	if buildingID == "" {
		return nil, fmt.Errorf("%w: building ID is required", apperrors.ErrValidation)
	}
	if err := validateBudgetAmounts(fiscalYear, ordinary, extraordinary); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	b := &Budget{
		BudgetID:            uuid.NewString(),
		BuildingID:          buildingID,
		FiscalYear:          fiscalYear,
		OrdinaryBudget:      ordinary,
		ExtraordinaryBudget: extraordinary,
		Status:              BudgetDraft,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}
	b.recompute()
	return b, nil
}

func validateBudgetAmounts(fiscalYear int, ordinary, extraordinary decimal.Decimal) error {
	if fiscalYear < minFiscalYear || fiscalYear > maxFiscalYear {
		return fmt.Errorf("%w: fiscal year %d is outside [%d, %d]", apperrors.ErrValidation, fiscalYear, minFiscalYear, maxFiscalYear)
	}
	if ordinary.IsNegative() || extraordinary.IsNegative() {
		return fmt.Errorf("%w: budget amounts must be non-negative", apperrors.ErrValidation)
	}
	if !ordinary.Add(extraordinary).IsPositive() {
		return fmt.Errorf("%w: total budget must be greater than zero", apperrors.ErrValidation)
	}
	return nil
}

// recompute re-derives TotalBudget and MonthlyProvisionAmount from the two inputs.
func (b *Budget) recompute() {
	b.TotalBudget = b.OrdinaryBudget.Add(b.ExtraordinaryBudget)
	b.MonthlyProvisionAmount = b.TotalBudget.Div(monthsPerYear)
}

// UpdateAmounts replaces both budget amounts. Allowed only in Draft or Rejected.
func (b *Budget) UpdateAmounts(ordinary, extraordinary decimal.Decimal, updatedBy string) error {
	if b.Status != BudgetDraft && b.Status != BudgetRejected {
		return fmt.Errorf("%w: budget in status %s", apperrors.ErrNotEditable, b.Status)
	}
	if err := validateBudgetAmounts(b.FiscalYear, ordinary, extraordinary); err != nil {
		return err
	}
	b.OrdinaryBudget = ordinary
	b.ExtraordinaryBudget = extraordinary
	b.recompute()
	b.touch(updatedBy)
	return nil
}

// SubmitForApproval moves a Draft or Rejected budget to Submitted.
func (b *Budget) SubmitForApproval(updatedBy string) error {
	if b.Status != BudgetDraft && b.Status != BudgetRejected {
		return &InvalidTransitionError{From: b.Status, To: BudgetSubmitted}
	}
	now := time.Now().UTC()
	b.Status = BudgetSubmitted
	b.SubmittedDate = &now
	b.touch(updatedBy)
	return nil
}

// Approve moves a Submitted budget to Approved, recording the approving meeting.
func (b *Budget) Approve(meetingID string, updatedBy string) error {
	if b.Status != BudgetSubmitted {
		return &InvalidTransitionError{From: b.Status, To: BudgetApproved}
	}
	if meetingID == "" {
		return fmt.Errorf("%w: approving meeting ID is required", apperrors.ErrValidation)
	}
	now := time.Now().UTC()
	b.Status = BudgetApproved
	b.ApprovedDate = &now
	b.ApprovedByMeetingID = &meetingID
	b.touch(updatedBy)
	return nil
}

// Reject moves a Submitted budget back to Rejected. A rejected budget is re-editable.
func (b *Budget) Reject(updatedBy string) error {
	if b.Status != BudgetSubmitted {
		return &InvalidTransitionError{From: b.Status, To: BudgetRejected}
	}
	b.Status = BudgetRejected
	b.touch(updatedBy)
	return nil
}

// Archive moves an Approved budget to the terminal Archived state.
func (b *Budget) Archive(updatedBy string) error {
	if b.Status != BudgetApproved {
		return &InvalidTransitionError{From: b.Status, To: BudgetArchived}
	}
	b.Status = BudgetArchived
	b.touch(updatedBy)
	return nil
}

// IsActive reports whether the budget currently drives provisions.
func (b *Budget) IsActive() bool {
	return b.Status == BudgetApproved
}

func (b *Budget) touch(updatedBy string) {
	b.LastUpdatedAt = time.Now().UTC()
	b.LastUpdatedBy = updatedBy
}
