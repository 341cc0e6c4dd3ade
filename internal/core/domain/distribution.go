package domain

import (
	"github.com/shopspring/decimal"
)

// OwnershipShare is the flat (unit, owner, quota) triple consumed by the charge
// distribution calculator. Quotas are fractions in [0, 1], not percentages.
type OwnershipShare struct {
	UnitID          string          `json:"unitID"`
	OwnerID         string          `json:"ownerID"`
	QuotaPercentage decimal.Decimal `json:"quotaPercentage"`
}

// ChargeDistribution is one owner's share of one approved expense. The whole batch
// for an expense is computed together and persisted as a single atomic unit; rows are
// only mutated afterwards through an explicit recalculation.
type ChargeDistribution struct {
	DistributionID  string          `json:"distributionID"` // Primary Key (e.g., UUID)
	ExpenseID       string          `json:"expenseID"`      // FK -> expenses.expense_id
	UnitID          string          `json:"unitID"`         // FK -> units.unit_id
	OwnerID         string          `json:"ownerID"`        // FK -> owners.owner_id
	QuotaPercentage decimal.Decimal `json:"quotaPercentage"`
	AmountDue       decimal.Decimal `json:"amountDue"` // total invoice amount x quota
	AuditFields
}
