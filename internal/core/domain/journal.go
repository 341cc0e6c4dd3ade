package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gilmry/koprogo-sub003/internal/apperrors"
)

// JournalType classifies an entry into one of the standard accounting journals.
type JournalType string

const (
	Purchases     JournalType = "PURCHASES"
	Sales         JournalType = "SALES"
	Financial     JournalType = "FINANCIAL"
	Miscellaneous JournalType = "MISCELLANEOUS"
)

// ParseJournalType validates a string against the closed set of journal types.
func ParseJournalType(s string) (JournalType, error) {
	switch JournalType(s) {
	case Purchases, Sales, Financial, Miscellaneous:
		return JournalType(s), nil
	default:
		return "", fmt.Errorf("%w: unknown journal type %q", apperrors.ErrInvalidJournalType, s)
	}
}

// BalanceTolerance is the fixed absolute tolerance for the debit/credit balance check.
// Deliberately slightly above one cent: upstream percentage splits accumulate sub-cent
// floating point drift, and a relative tolerance would be too lax for large invoices
// and too strict for small ones.
var BalanceTolerance = decimal.NewFromFloat(0.011)

// JournalEntry is a single balanced double-entry transaction. Once constructed it is
// immutable in this core; administrative corrections are recorded as new entries.
type JournalEntry struct {
	EntryID        string       `json:"entryID"`        // Primary Key (e.g., UUID)
	OrganizationID string       `json:"organizationID"` // FK -> organizations.organization_id
	BuildingID     *string      `json:"buildingID"`     // Nullable FK -> buildings.building_id
	EntryDate      time.Time    `json:"entryDate"`      // Date the transaction occurred
	Description    string       `json:"description"`    // Nullable user description
	DocumentRef    string       `json:"documentRef"`    // Invoice/receipt reference
	JournalType    *JournalType `json:"journalType"`    // Nullable, validated against the closed set
	ExpenseID      *string      `json:"expenseID"`      // Nullable link to the originating expense
	ContributionID *string      `json:"contributionID"` // Nullable link to the originating contribution
	Lines          []JournalEntryLine `json:"lines"`
	AuditFields
}

// JournalEntryLine is one debit or credit leg of a journal entry. Lines are exclusively
// owned by their entry and share its lifetime.
type JournalEntryLine struct {
	LineID      string          `json:"lineID"`      // Primary Key (e.g., UUID)
	EntryID     string          `json:"entryID"`     // FK -> journal_entries.entry_id
	AccountCode string          `json:"accountCode"` // PCMN code, opaque to this core
	Debit       decimal.Decimal `json:"debit"`       // Non-negative; exclusive with Credit
	Credit      decimal.Decimal `json:"credit"`      // Non-negative; exclusive with Debit
	Description string          `json:"description"` // Nullable line description
	AuditFields
}

// Validate enforces the per-line invariant: non-empty account code, non-negative
// amounts, and exactly one of debit/credit strictly positive.
func (l *JournalEntryLine) Validate() error {
	if l.AccountCode == "" {
		return fmt.Errorf("%w: line account code is required", apperrors.ErrInvalidLine)
	}
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return fmt.Errorf("%w: debit and credit must be non-negative for account %s", apperrors.ErrInvalidLine, l.AccountCode)
	}
	debitSet := l.Debit.IsPositive()
	creditSet := l.Credit.IsPositive()
	if debitSet == creditSet {
		return fmt.Errorf("%w: exactly one of debit or credit must be positive for account %s", apperrors.ErrInvalidLine, l.AccountCode)
	}
	return nil
}

// UnbalancedEntryError reports a debit/credit mismatch beyond BalanceTolerance.
type UnbalancedEntryError struct {
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
	Difference  decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("journal entry is unbalanced: debits %s, credits %s, difference %s",
		e.DebitTotal.String(), e.CreditTotal.String(), e.Difference.String())
}

// Unwrap makes the error matchable by kind with errors.Is.
func (e *UnbalancedEntryError) Unwrap() error { return apperrors.ErrUnbalancedEntry }

// NewJournalEntryParams carries the inputs for constructing a journal entry.
type NewJournalEntryParams struct {
	OrganizationID string
	BuildingID     *string
	EntryDate      time.Time
	Description    string
	DocumentRef    string
	JournalType    *string
	ExpenseID      *string
	ContributionID *string
	Lines          []NewJournalLineParams
	CreatedBy      string
}

// NewJournalLineParams carries the inputs for one line of a new entry.
type NewJournalLineParams struct {
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
}

// NewJournalEntry constructs a validated journal entry. Checks run in order: lines
// non-empty, each line individually valid, totals balanced within BalanceTolerance,
// journal type in the closed set when present. No I/O; persistence is the caller's
// concern and must write header and lines atomically.
func NewJournalEntry(p NewJournalEntryParams) (*JournalEntry, error) {
	if p.OrganizationID == "" {
		return nil, fmt.Errorf("%w: organization ID is required", apperrors.ErrValidation)
	}
	if len(p.Lines) == 0 {
		return nil, apperrors.ErrEmptyEntry
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	audit := AuditFields{
		CreatedAt:     now,
		CreatedBy:     p.CreatedBy,
		LastUpdatedAt: now,
		LastUpdatedBy: p.CreatedBy,
	}

	lines := make([]JournalEntryLine, len(p.Lines))
	for i, lp := range p.Lines {
		lines[i] = JournalEntryLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountCode: lp.AccountCode,
			Debit:       lp.Debit,
			Credit:      lp.Credit,
			Description: lp.Description,
			AuditFields: audit,
		}
		if err := lines[i].Validate(); err != nil {
			return nil, err
		}
	}

	entry := &JournalEntry{
		EntryID:        entryID,
		OrganizationID: p.OrganizationID,
		BuildingID:     p.BuildingID,
		EntryDate:      p.EntryDate,
		Description:    p.Description,
		DocumentRef:    p.DocumentRef,
		ExpenseID:      p.ExpenseID,
		ContributionID: p.ContributionID,
		Lines:          lines,
		AuditFields:    audit,
	}

	if !entry.IsBalanced() {
		debits := entry.TotalDebits()
		credits := entry.TotalCredits()
		return nil, &UnbalancedEntryError{
			DebitTotal:  debits,
			CreditTotal: credits,
			Difference:  debits.Sub(credits).Abs(),
		}
	}

	if p.JournalType != nil {
		jt, err := ParseJournalType(*p.JournalType)
		if err != nil {
			return nil, err
		}
		entry.JournalType = &jt
	}

	return entry, nil
}

// TotalDebits sums the debit side of the entry.
func (j *JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range j.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredits sums the credit side of the entry.
func (j *JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range j.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

// IsBalanced reports whether debits and credits differ by no more than
// BalanceTolerance. Usable to re-verify an entry loaded from storage.
func (j *JournalEntry) IsBalanced() bool {
	diff := j.TotalDebits().Sub(j.TotalCredits()).Abs()
	return diff.LessThanOrEqual(BalanceTolerance)
}
