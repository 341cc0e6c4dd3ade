package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gilmry/koprogo-sub003/internal/apperrors"
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	portsrepo "github.com/gilmry/koprogo-sub003/internal/core/ports/repositories"
	"github.com/gilmry/koprogo-sub003/internal/models"
	"github.com/gilmry/koprogo-sub003/internal/utils/mapping"
	"github.com/gilmry/koprogo-sub003/internal/utils/pagination"
)

type PgxJournalEntryRepository struct {
	BaseRepository
}

// newPgxJournalEntryRepository creates a new repository for journal entry data.
func newPgxJournalEntryRepository(pool *pgxpool.Pool) portsrepo.JournalEntryRepositoryWithTx {
	return &PgxJournalEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJournalEntryRepository implements portsrepo.JournalEntryRepositoryWithTx
var _ portsrepo.JournalEntryRepositoryWithTx = (*PgxJournalEntryRepository)(nil)

const entryColumns = `entry_id, organization_id, building_id, entry_date, description, document_ref,
	journal_type, expense_id, contribution_id,
	created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, account_code, debit, credit, description,
	created_at, created_by, last_updated_at, last_updated_by`

func scanJournalEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.OrganizationID,
		&m.BuildingID,
		&m.EntryDate,
		&m.Description,
		&m.DocumentRef,
		&m.JournalType,
		&m.ExpenseID,
		&m.ContributionID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanJournalEntryLine(row pgx.Row) (models.JournalEntryLine, error) {
	var m models.JournalEntryLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountCode,
		&m.Debit,
		&m.Credit,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveEntry persists the entry header and all of its lines within one database
// transaction. A header without its full line set is an unbalanced ledger, so a
// failure anywhere rolls back everything.
func (r *PgxJournalEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.OrganizationID,
		m.BuildingID,
		m.EntryDate,
		m.Description,
		m.DocumentRef,
		m.JournalType,
		m.ExpenseID,
		m.ContributionID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, line := range entry.Lines {
		ml := mapping.ToModelJournalEntryLine(line)
		batch.Queue(lineQuery,
			ml.LineID,
			ml.EntryID,
			ml.AccountCode,
			ml.Debit,
			ml.Credit,
			ml.Description,
			ml.CreatedAt,
			ml.CreatedBy,
			ml.LastUpdatedAt,
			ml.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for journal entry "+m.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a journal entry header by its ID.
func (r *PgxJournalEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	m, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry by ID "+entryID, err)
	}
	d := mapping.ToDomainJournalEntry(m)
	return &d, nil
}

// FindLinesByEntryID retrieves all lines of one entry in insertion order.
func (r *PgxJournalEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM journal_entry_lines
		WHERE entry_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalEntryLine{}
	for rows.Next() {
		ml, err := scanJournalEntryLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		lines = append(lines, ml)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for entry "+entryID, err)
	}

	return mapping.ToDomainJournalEntryLineSlice(lines), nil
}

// FindEntriesByExpenseID retrieves the entries generated by an expense.
func (r *PgxJournalEntryRepository) FindEntriesByExpenseID(ctx context.Context, expenseID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE expense_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, expenseID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for expense "+expenseID, err)
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		m, err := scanJournalEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row for expense "+expenseID, err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows for expense "+expenseID, err)
	}

	return mapping.ToDomainJournalEntrySlice(entries), nil
}

// ListEntriesByOrganization retrieves a paginated list of entries for an
// organization using token-based pagination. Ordering is entry_date DESC with
// created_at DESC as a stable tie-breaker; the token encodes the cursor pair.
func (r *PgxJournalEntryRepository) ListEntriesByOrganization(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE organization_id = $1
	`
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	args := []interface{}{organizationID}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (entry_date, created_at) < ($2, $3)`
		args = append(args, lastEntryDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries for organization "+organizationID, err)
	}
	defer rows.Close()

	entries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanJournalEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &token
		entries = entries[:limit]
	}

	return mapping.ToDomainJournalEntrySlice(entries), nextTokenVal, nil
}

// ListLinesByAccountCode retrieves a paginated list of lines posted against an
// account code within an organization.
func (r *PgxJournalEntryRepository) ListLinesByAccountCode(ctx context.Context, organizationID string, accountCode string, limit int, nextToken *string) ([]domain.JournalEntryLine, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT l.line_id, l.entry_id, l.account_code, l.debit, l.credit, l.description,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by, e.entry_date
		FROM journal_entry_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.organization_id = $1 AND l.account_code = $2
	`
	orderByClause := `ORDER BY e.entry_date DESC, l.created_at DESC`

	args := []interface{}{organizationID, accountCode}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (e.entry_date, l.created_at) < ($3, $4)`
		args = append(args, lastEntryDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query lines for account "+accountCode, err)
	}
	defer rows.Close()

	type lineWithDate struct {
		line      models.JournalEntryLine
		entryDate time.Time
	}
	lines := make([]lineWithDate, 0, fetchLimit)
	for rows.Next() {
		var lw lineWithDate
		err := rows.Scan(
			&lw.line.LineID,
			&lw.line.EntryID,
			&lw.line.AccountCode,
			&lw.line.Debit,
			&lw.line.Credit,
			&lw.line.Description,
			&lw.line.CreatedAt,
			&lw.line.CreatedBy,
			&lw.line.LastUpdatedAt,
			&lw.line.LastUpdatedBy,
			&lw.entryDate,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan line row for account "+accountCode, err)
		}
		lines = append(lines, lw)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating line rows for account "+accountCode, err)
	}

	var nextTokenVal *string
	if len(lines) > limit {
		last := lines[limit-1]
		token := pagination.EncodeToken(last.entryDate, last.line.CreatedAt)
		nextTokenVal = &token
		lines = lines[:limit]
	}

	result := make([]models.JournalEntryLine, len(lines))
	for i, lw := range lines {
		result[i] = lw.line
	}
	return mapping.ToDomainJournalEntryLineSlice(result), nextTokenVal, nil
}
