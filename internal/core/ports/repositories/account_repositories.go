package repositories

import (
	"context"
	"time"

	"github.com/gilmry/koprogo-sub003/internal/core/domain"
)

// AccountReader defines read operations for the chart of accounts
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its PCMN code within an organization.
	FindAccountByCode(ctx context.Context, organizationID string, code string) (*domain.Account, error)

	// ListAccounts retrieves the chart of accounts for an organization, ordered by code.
	ListAccounts(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Account, error)

	// HasChildren reports whether any account references the given code as its parent.
	HasChildren(ctx context.Context, organizationID string, code string) (bool, error)

	// IsReferencedByJournalLines reports whether any journal line carries the given code.
	IsReferencedByJournalLines(ctx context.Context, organizationID string, code string) (bool, error)
}

// AccountWriter defines write operations for the chart of accounts
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's label and direct-use flag.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account. Callers must first check hierarchy and
	// journal references; the store additionally enforces both with constraints.
	DeleteAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
