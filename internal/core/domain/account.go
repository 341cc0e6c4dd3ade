package domain

import (
	"fmt"

	"github.com/gilmry/koprogo-sub003/internal/apperrors"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeExpense   AccountType = "EXPENSE"
	AccountTypeRevenue   AccountType = "REVENUE"
)

// ParseAccountType validates a string against the closed set of account types.
// Statuses are stored as strings; conversion happens only at this boundary.
func ParseAccountType(s string) (AccountType, error) {
	switch AccountType(s) {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeExpense, AccountTypeRevenue:
		return AccountType(s), nil
	default:
		return "", fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, s)
	}
}

// Account is one entry of the chart of accounts (PCMN-style numbering, e.g. "6100").
// Pure reference data: journal lines refer to accounts by code only.
type Account struct {
	AccountID      string      `json:"accountID"`      // Primary Key (e.g., UUID)
	OrganizationID string      `json:"organizationID"` // FK -> organizations.organization_id
	Code           string      `json:"code"`           // Unique per organization, e.g. "6100"
	Label          string      `json:"label"`          // Human readable name
	ParentCode     *string     `json:"parentCode"`     // Nullable, hierarchy link to another code
	AccountType    AccountType `json:"accountType"`    // ASSET, LIABILITY, EXPENSE, REVENUE
	DirectUse      bool        `json:"directUse"`      // Leaf accounts usable on journal lines
	AuditFields
}

// Validate checks the invariants that must hold before an account is persisted.
func (a *Account) Validate() error {
	if a.Code == "" {
		return fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}
	if a.Label == "" {
		return fmt.Errorf("%w: account label is required", apperrors.ErrValidation)
	}
	if _, err := ParseAccountType(string(a.AccountType)); err != nil {
		return err
	}
	if a.ParentCode != nil && *a.ParentCode == a.Code {
		return fmt.Errorf("%w: account %s cannot be its own parent", apperrors.ErrValidation, a.Code)
	}
	return nil
}

// IsRoot reports whether the account sits at the top of the hierarchy.
func (a *Account) IsRoot() bool {
	return a.ParentCode == nil || *a.ParentCode == ""
}
