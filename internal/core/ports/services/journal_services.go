package services

import (
	"context"

	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	"github.com/gilmry/koprogo-sub003/internal/dto"
)

// JournalEntryReaderSvc defines read operations for journal entries
type JournalEntryReaderSvc interface {
	// GetEntryByID retrieves a journal entry with its lines, re-verifying the
	// balance invariant on the loaded data.
	GetEntryByID(ctx context.Context, organizationID string, entryID string, requestingUserID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of an organization's entries.
	ListEntries(ctx context.Context, organizationID string, requestingUserID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)

	// ListAccountActivity retrieves a paginated list of lines posted against an
	// account code within an organization, newest entry first.
	ListAccountActivity(ctx context.Context, organizationID string, accountCode string, requestingUserID string, params dto.ListAccountActivityParams) (*dto.ListAccountActivityResponse, error)
}

// JournalEntryWriterSvc defines write operations for journal entries
type JournalEntryWriterSvc interface {
	// CreateEntry constructs a balanced journal entry and persists header and
	// lines atomically. Entries are immutable once created.
	CreateEntry(ctx context.Context, organizationID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
}

// JournalEntrySvcFacade combines all journal-entry service interfaces
type JournalEntrySvcFacade interface {
	JournalEntryReaderSvc
	JournalEntryWriterSvc
}
