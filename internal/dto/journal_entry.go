package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gilmry/koprogo-sub003/internal/core/domain"
)

// CreateJournalLineRequest is one debit or credit leg of a new entry.
type CreateJournalLineRequest struct {
	AccountCode string          `json:"accountCode" binding:"required,accountcode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateJournalEntryRequest defines the payload for recording a journal entry.
type CreateJournalEntryRequest struct {
	BuildingID     *string                    `json:"buildingID"`
	EntryDate      time.Time                  `json:"entryDate" binding:"required"`
	Description    string                     `json:"description"`
	DocumentRef    string                     `json:"documentRef"`
	JournalType    *string                    `json:"journalType" binding:"omitempty,oneof=PURCHASES SALES FINANCIAL MISCELLANEOUS"`
	ExpenseID      *string                    `json:"expenseID"`
	ContributionID *string                    `json:"contributionID"`
	Lines          []CreateJournalLineRequest `json:"lines" binding:"required,dive"`
}

// JournalLineResponse defines the data returned for one entry line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID      string                `json:"entryID"`
	BuildingID   *string               `json:"buildingID,omitempty"`
	EntryDate    time.Time             `json:"entryDate"`
	Description  string                `json:"description"`
	DocumentRef  string                `json:"documentRef,omitempty"`
	JournalType  *string               `json:"journalType,omitempty"`
	ExpenseID    *string               `json:"expenseID,omitempty"`
	TotalDebits  decimal.Decimal       `json:"totalDebits"`
	TotalCredits decimal.Decimal       `json:"totalCredits"`
	Balanced     bool                  `json:"balanced"`
	Lines        []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	CreatedBy    string                `json:"createdBy"`
}

// ListJournalEntriesParams defines query parameters for listing entries.
type ListJournalEntriesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListJournalEntriesResponse wraps a page of journal entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ListAccountActivityParams defines query parameters for listing the lines
// posted against one account code.
type ListAccountActivityParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListAccountActivityResponse wraps a page of lines posted against an account.
type ListAccountActivityResponse struct {
	AccountCode string                `json:"accountCode"`
	Lines       []JournalLineResponse `json:"lines"`
	NextToken   *string               `json:"nextToken,omitempty"`
}

// ToJournalLineResponse converts a domain line to its DTO.
func ToJournalLineResponse(l *domain.JournalEntryLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:      l.LineID,
		AccountCode: l.AccountCode,
		Debit:       l.Debit,
		Credit:      l.Credit,
		Description: l.Description,
	}
}

// ToJournalEntryResponse converts a domain entry (with lines) to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i := range e.Lines {
		lines[i] = ToJournalLineResponse(&e.Lines[i])
	}
	var journalType *string
	if e.JournalType != nil {
		jt := string(*e.JournalType)
		journalType = &jt
	}
	return JournalEntryResponse{
		EntryID:      e.EntryID,
		BuildingID:   e.BuildingID,
		EntryDate:    e.EntryDate,
		Description:  e.Description,
		DocumentRef:  e.DocumentRef,
		JournalType:  journalType,
		ExpenseID:    e.ExpenseID,
		TotalDebits:  e.TotalDebits(),
		TotalCredits: e.TotalCredits(),
		Balanced:     e.IsBalanced(),
		Lines:        lines,
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
	}
}
