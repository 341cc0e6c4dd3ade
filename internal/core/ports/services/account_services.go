package services

import (
	"context"

	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	"github.com/gilmry/koprogo-sub003/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// GetAccountByCode retrieves an account by its PCMN code.
	GetAccountByCode(ctx context.Context, organizationID string, code string, requestingUserID string) (*domain.Account, error)

	// ListAccounts retrieves the chart of accounts for an organization.
	ListAccounts(ctx context.Context, organizationID string, requestingUserID string, params dto.ListAccountsParams) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// CreateAccount adds an account to the chart after validating the hierarchy.
	CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount changes an account's label or direct-use flag.
	UpdateAccount(ctx context.Context, organizationID string, code string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error)

	// DeleteAccount removes an account. Fails while children exist or while the
	// code is referenced by journal lines.
	DeleteAccount(ctx context.Context, organizationID string, code string, requestingUserID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
