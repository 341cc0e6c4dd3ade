package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents the header row of a balanced double-entry transaction.
// Lines live in their own table and share the entry's lifetime.
type JournalEntry struct {
	EntryID        string         `db:"entry_id"`
	OrganizationID string         `db:"organization_id"`
	BuildingID     sql.NullString `db:"building_id"`
	EntryDate      time.Time      `db:"entry_date"`
	Description    string         `db:"description"`
	DocumentRef    string         `db:"document_ref"`
	JournalType    sql.NullString `db:"journal_type"`
	ExpenseID      sql.NullString `db:"expense_id"`
	ContributionID sql.NullString `db:"contribution_id"`
	AuditFields
}

// JournalEntryLine represents one debit or credit leg of a journal entry.
type JournalEntryLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	AccountCode string          `db:"account_code"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
	AuditFields
}
