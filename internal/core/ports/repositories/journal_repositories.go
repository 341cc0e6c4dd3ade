package repositories

import (
	"context"

	"github.com/gilmry/koprogo-sub003/internal/core/domain"
)

// JournalEntryReader defines read operations for journal entries
type JournalEntryReader interface {
	// FindEntryByID retrieves a journal entry header by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntriesByOrganization retrieves a paginated list of entries for an
	// organization using token-based pagination. Returns entries, a token for the
	// next page, and an error.
	ListEntriesByOrganization(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// FindEntriesByExpenseID retrieves the entries generated by an expense.
	FindEntriesByExpenseID(ctx context.Context, expenseID string) ([]domain.JournalEntry, error)
}

// JournalEntryWriter defines write operations for journal entries
type JournalEntryWriter interface {
	// SaveEntry persists a journal entry and all of its lines atomically. An entry
	// with some but not all lines stored is an unbalanced ledger by definition, so
	// implementations must write header and lines in one database transaction.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error
}

// JournalLineReader defines read operations for journal entry lines
type JournalLineReader interface {
	// FindLinesByEntryID retrieves all lines of one entry in insertion order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error)

	// ListLinesByAccountCode retrieves a paginated list of lines posted against an
	// account code within an organization.
	ListLinesByAccountCode(ctx context.Context, organizationID string, accountCode string, limit int, nextToken *string) ([]domain.JournalEntryLine, *string, error)
}

// JournalEntryRepositoryFacade combines all journal-entry repository interfaces
type JournalEntryRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
	JournalLineReader
}

// JournalEntryRepositoryWithTx extends the facade with transaction capabilities
type JournalEntryRepositoryWithTx interface {
	JournalEntryRepositoryFacade
	TransactionManager
}
