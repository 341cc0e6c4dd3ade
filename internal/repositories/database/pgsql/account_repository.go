package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gilmry/koprogo-sub003/internal/apperrors"
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	portsrepo "github.com/gilmry/koprogo-sub003/internal/core/ports/repositories"
	"github.com/gilmry/koprogo-sub003/internal/models"
	"github.com/gilmry/koprogo-sub003/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, organization_id, code, label, parent_code, account_type, direct_use,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.OrganizationID,
		&m.Code,
		&m.Label,
		&m.ParentCode,
		&m.AccountType,
		&m.DirectUse,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account into the chart of accounts.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.OrganizationID,
		m.Code,
		m.Label,
		m.ParentCode,
		m.AccountType,
		m.DirectUse,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save account "+m.Code, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID "+accountID, err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// FindAccountByCode retrieves an account by its code within an organization.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, organizationID string, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organization_id = $1 AND code = $2;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, organizationID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by code "+code, err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// ListAccounts retrieves a page of an organization's chart of accounts, ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE organization_id = $1
		ORDER BY code
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts for organization "+organizationID, err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}

	return mapping.ToDomainAccountSlice(accounts), nil
}

// HasChildren reports whether any account references the given code as its parent.
func (r *PgxAccountRepository) HasChildren(ctx context.Context, organizationID string, code string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE organization_id = $1 AND parent_code = $2);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, organizationID, code).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check children of account "+code, err)
	}
	return exists, nil
}

// IsReferencedByJournalLines reports whether any journal line posts against the code.
func (r *PgxAccountRepository) IsReferencedByJournalLines(ctx context.Context, organizationID string, code string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM journal_entry_lines l
			JOIN journal_entries e ON l.entry_id = e.entry_id
			WHERE e.organization_id = $1 AND l.account_code = $2
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, organizationID, code).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check journal references of account "+code, err)
	}
	return exists, nil
}

// UpdateAccount updates an existing account's mutable fields.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET label = $2, direct_use = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Label,
		m.DirectUse,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account. The service layer checks hierarchy and
// journal references first; foreign keys enforce both regardless.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `DELETE FROM accounts WHERE account_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, accountID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
