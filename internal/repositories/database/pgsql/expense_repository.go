package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gilmry/koprogo-sub003/internal/apperrors"
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	portsrepo "github.com/gilmry/koprogo-sub003/internal/core/ports/repositories"
	"github.com/gilmry/koprogo-sub003/internal/models"
	"github.com/gilmry/koprogo-sub003/internal/utils/mapping"
)

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, building_id, description, amount, amount_incl_vat, account_code,
	expense_date, supplier_name, status, approved_date,
	created_at, created_by, last_updated_at, last_updated_by`

func scanExpense(row pgx.Row) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.BuildingID,
		&m.Description,
		&m.Amount,
		&m.AmountInclVAT,
		&m.AccountCode,
		&m.ExpenseDate,
		&m.SupplierName,
		&m.Status,
		&m.ApprovedDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveExpense persists a new expense.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExpenseID,
		m.BuildingID,
		m.Description,
		m.Amount,
		m.AmountInclVAT,
		m.AccountCode,
		m.ExpenseDate,
		m.SupplierName,
		m.Status,
		m.ApprovedDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save expense "+m.ExpenseID, err)
	}
	return nil
}

// FindExpenseByID retrieves an expense by its ID.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	m, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find expense by ID "+expenseID, err)
	}
	d := mapping.ToDomainExpense(m)
	return &d, nil
}

// ListExpensesByBuilding retrieves a paginated list of a building's expenses,
// newest first.
func (r *PgxExpenseRepository) ListExpensesByBuilding(ctx context.Context, buildingID string, limit int, offset int) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE building_id = $1
		ORDER BY expense_date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, buildingID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expenses for building "+buildingID, err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense row", err)
		}
		expenses = append(expenses, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating expense rows", err)
	}

	return mapping.ToDomainExpenseSlice(expenses), nil
}

// UpdateExpense persists changes to an existing expense, including its status
// and approval date.
func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		UPDATE expenses
		SET description = $2, amount = $3, amount_incl_vat = $4, account_code = $5,
		    expense_date = $6, supplier_name = $7, status = $8, approved_date = $9,
		    last_updated_at = $10, last_updated_by = $11
		WHERE expense_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ExpenseID,
		m.Description,
		m.Amount,
		m.AmountInclVAT,
		m.AccountCode,
		m.ExpenseDate,
		m.SupplierName,
		m.Status,
		m.ApprovedDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update expense "+m.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
