package models

import "database/sql"

// Account represents one row of an organization's chart of accounts.
type Account struct {
	AccountID      string         `db:"account_id"`
	OrganizationID string         `db:"organization_id"`
	Code           string         `db:"code"`
	Label          string         `db:"label"`
	ParentCode     sql.NullString `db:"parent_code"`
	AccountType    string         `db:"account_type"`
	DirectUse      bool           `db:"direct_use"`
	AuditFields
}
