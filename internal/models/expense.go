package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents an invoice row charged to a building.
type Expense struct {
	ExpenseID     string              `db:"expense_id"`
	BuildingID    string              `db:"building_id"`
	Description   string              `db:"description"`
	Amount        decimal.Decimal     `db:"amount"`
	AmountInclVAT decimal.NullDecimal `db:"amount_incl_vat"`
	AccountCode   string              `db:"account_code"`
	ExpenseDate   time.Time           `db:"expense_date"`
	SupplierName  string              `db:"supplier_name"`
	Status        string              `db:"status"`
	ApprovedDate  sql.NullTime        `db:"approved_date"`
	AuditFields
}
