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

type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

const budgetColumns = `budget_id, building_id, fiscal_year, ordinary_budget, extraordinary_budget,
	total_budget, monthly_provision_amount, status, submitted_date, approved_date, approved_by_meeting_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanBudget(row pgx.Row) (models.Budget, error) {
	var m models.Budget
	err := row.Scan(
		&m.BudgetID,
		&m.BuildingID,
		&m.FiscalYear,
		&m.OrdinaryBudget,
		&m.ExtraordinaryBudget,
		&m.TotalBudget,
		&m.MonthlyProvisionAmount,
		&m.Status,
		&m.SubmittedDate,
		&m.ApprovedDate,
		&m.ApprovedByMeetingID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveBudget persists a new budget. The unique constraint on
// (building_id, fiscal_year) surfaces as ErrDuplicate.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BudgetID,
		m.BuildingID,
		m.FiscalYear,
		m.OrdinaryBudget,
		m.ExtraordinaryBudget,
		m.TotalBudget,
		m.MonthlyProvisionAmount,
		m.Status,
		m.SubmittedDate,
		m.ApprovedDate,
		m.ApprovedByMeetingID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save budget "+m.BudgetID, err)
	}
	return nil
}

// FindBudgetByID retrieves a budget by its ID.
func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1;`
	m, err := scanBudget(r.Pool.QueryRow(ctx, query, budgetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find budget by ID "+budgetID, err)
	}
	d := mapping.ToDomainBudget(m)
	return &d, nil
}

// FindBudgetByBuildingAndYear retrieves the budget of one building for one fiscal year.
func (r *PgxBudgetRepository) FindBudgetByBuildingAndYear(ctx context.Context, buildingID string, fiscalYear int) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE building_id = $1 AND fiscal_year = $2;`
	m, err := scanBudget(r.Pool.QueryRow(ctx, query, buildingID, fiscalYear))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find budget for building "+buildingID, err)
	}
	d := mapping.ToDomainBudget(m)
	return &d, nil
}

// ListBudgetsByBuilding retrieves all budgets of a building, newest fiscal year first.
func (r *PgxBudgetRepository) ListBudgetsByBuilding(ctx context.Context, buildingID string) ([]domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE building_id = $1
		ORDER BY fiscal_year DESC;
	`
	rows, err := r.Pool.Query(ctx, query, buildingID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query budgets for building "+buildingID, err)
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		m, err := scanBudget(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan budget row", err)
		}
		budgets = append(budgets, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating budget rows", err)
	}

	return mapping.ToDomainBudgetSlice(budgets), nil
}

// UpdateBudget persists amount or lifecycle changes of an existing budget. The
// status predicate arbitrates concurrent transitions: whoever commits first
// wins, the loser's update matches nothing.
func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget, expectedStatus domain.BudgetStatus) error {
	m := mapping.ToModelBudget(budget)
	query := `
		UPDATE budgets
		SET ordinary_budget = $2, extraordinary_budget = $3, total_budget = $4,
		    monthly_provision_amount = $5, status = $6, submitted_date = $7,
		    approved_date = $8, approved_by_meeting_id = $9,
		    last_updated_at = $10, last_updated_by = $11
		WHERE budget_id = $1 AND status = $12;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.BudgetID,
		m.OrdinaryBudget,
		m.ExtraordinaryBudget,
		m.TotalBudget,
		m.MonthlyProvisionAmount,
		m.Status,
		m.SubmittedDate,
		m.ApprovedDate,
		m.ApprovedByMeetingID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		string(expectedStatus),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update budget "+m.BudgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStateTransition
	}
	return nil
}
