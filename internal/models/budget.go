package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Budget represents the annual budget row of one building for one fiscal year.
// The table carries a unique constraint on (building_id, fiscal_year).
type Budget struct {
	BudgetID               string          `db:"budget_id"`
	BuildingID             string          `db:"building_id"`
	FiscalYear             int             `db:"fiscal_year"`
	OrdinaryBudget         decimal.Decimal `db:"ordinary_budget"`
	ExtraordinaryBudget    decimal.Decimal `db:"extraordinary_budget"`
	TotalBudget            decimal.Decimal `db:"total_budget"`
	MonthlyProvisionAmount decimal.Decimal `db:"monthly_provision_amount"`
	Status                 string          `db:"status"`
	SubmittedDate          sql.NullTime    `db:"submitted_date"`
	ApprovedDate           sql.NullTime    `db:"approved_date"`
	ApprovedByMeetingID    sql.NullString  `db:"approved_by_meeting_id"`
	AuditFields
}
