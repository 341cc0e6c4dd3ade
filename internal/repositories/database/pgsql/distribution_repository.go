package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gilmry/koprogo-sub003/internal/apperrors"
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	portsrepo "github.com/gilmry/koprogo-sub003/internal/core/ports/repositories"
	"github.com/gilmry/koprogo-sub003/internal/models"
	"github.com/gilmry/koprogo-sub003/internal/utils/mapping"
)

type PgxDistributionRepository struct {
	BaseRepository
}

func newPgxDistributionRepository(pool *pgxpool.Pool) portsrepo.DistributionRepositoryFacade {
	return &PgxDistributionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.DistributionRepositoryFacade = (*PgxDistributionRepository)(nil)

const distributionColumns = `distribution_id, expense_id, unit_id, owner_id, quota_percentage, amount_due,
	created_at, created_by, last_updated_at, last_updated_by`

func scanDistribution(row pgx.Row) (models.ChargeDistribution, error) {
	var m models.ChargeDistribution
	err := row.Scan(
		&m.DistributionID,
		&m.ExpenseID,
		&m.UnitID,
		&m.OwnerID,
		&m.QuotaPercentage,
		&m.AmountDue,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveDistributions persists a whole batch within one database transaction. The
// unique constraint on (expense_id, unit_id, owner_id) rejects a second batch
// for the same expense; the first writer wins and later ones get ErrDuplicate.
func (r *PgxDistributionRepository) SaveDistributions(ctx context.Context, distributions []domain.ChargeDistribution) error {
	if len(distributions) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	batch := &pgx.Batch{}
	query := `
		INSERT INTO charge_distributions (` + distributionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, d := range distributions {
		m := mapping.ToModelChargeDistribution(d)
		batch.Queue(query,
			m.DistributionID,
			m.ExpenseID,
			m.UnitID,
			m.OwnerID,
			m.QuotaPercentage,
			m.AmountDue,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert distribution batch for expense "+distributions[0].ExpenseID, err)
	}

	return r.Commit(ctx, tx)
}

// FindDistributionsByExpenseID retrieves the full batch for one expense.
func (r *PgxDistributionRepository) FindDistributionsByExpenseID(ctx context.Context, expenseID string) ([]domain.ChargeDistribution, error) {
	query := `
		SELECT ` + distributionColumns + `
		FROM charge_distributions
		WHERE expense_id = $1
		ORDER BY unit_id, owner_id;
	`
	rows, err := r.Pool.Query(ctx, query, expenseID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query distributions for expense "+expenseID, err)
	}
	defer rows.Close()

	distributions := []models.ChargeDistribution{}
	for rows.Next() {
		m, err := scanDistribution(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan distribution row", err)
		}
		distributions = append(distributions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating distribution rows", err)
	}

	return mapping.ToDomainChargeDistributionSlice(distributions), nil
}

// FindDistributionsByOwnerID retrieves a paginated list of an owner's charges,
// newest first.
func (r *PgxDistributionRepository) FindDistributionsByOwnerID(ctx context.Context, ownerID string, limit int, offset int) ([]domain.ChargeDistribution, error) {
	query := `
		SELECT ` + distributionColumns + `
		FROM charge_distributions
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query distributions for owner "+ownerID, err)
	}
	defer rows.Close()

	distributions := []models.ChargeDistribution{}
	for rows.Next() {
		m, err := scanDistribution(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan distribution row", err)
		}
		distributions = append(distributions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating distribution rows", err)
	}

	return mapping.ToDomainChargeDistributionSlice(distributions), nil
}

// UpdateDistributions rewrites the recalculated amounts for a batch within one
// database transaction, so a failure part-way leaves the stored batch untouched.
func (r *PgxDistributionRepository) UpdateDistributions(ctx context.Context, distributions []domain.ChargeDistribution) error {
	if len(distributions) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	batch := &pgx.Batch{}
	query := `
		UPDATE charge_distributions
		SET amount_due = $2, last_updated_at = $3, last_updated_by = $4
		WHERE distribution_id = $1;
	`
	for _, d := range distributions {
		m := mapping.ToModelChargeDistribution(d)
		batch.Queue(query,
			m.DistributionID,
			m.AmountDue,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to update distribution batch for expense "+distributions[0].ExpenseID, err)
	}

	return r.Commit(ctx, tx)
}
