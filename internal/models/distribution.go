package models

import "github.com/shopspring/decimal"

// ChargeDistribution represents one owner's share of one approved expense. The
// table carries a unique constraint on (expense_id, unit_id, owner_id) so a
// batch can never be stored twice.
type ChargeDistribution struct {
	DistributionID  string          `db:"distribution_id"`
	ExpenseID       string          `db:"expense_id"`
	UnitID          string          `db:"unit_id"`
	OwnerID         string          `db:"owner_id"`
	QuotaPercentage decimal.Decimal `db:"quota_percentage"`
	AmountDue       decimal.Decimal `db:"amount_due"`
	AuditFields
}
