package repositories

import (
	"context"

	"github.com/gilmry/koprogo-sub003/internal/core/domain"
)

// DistributionReader defines read operations for charge distributions
type DistributionReader interface {
	// FindDistributionsByExpenseID retrieves the full batch for one expense.
	FindDistributionsByExpenseID(ctx context.Context, expenseID string) ([]domain.ChargeDistribution, error)

	// FindDistributionsByOwnerID retrieves a paginated list of an owner's charges.
	FindDistributionsByOwnerID(ctx context.Context, ownerID string, limit int, offset int) ([]domain.ChargeDistribution, error)
}

// DistributionWriter defines write operations for charge distributions
type DistributionWriter interface {
	// SaveDistributions persists a whole batch as one all-or-nothing unit. A
	// partially persisted distribution set is a worse failure mode than rejecting
	// the whole expense approval, so implementations must use a single database
	// transaction. A batch that collides with an already-distributed expense must
	// surface apperrors.ErrDuplicate.
	SaveDistributions(ctx context.Context, distributions []domain.ChargeDistribution) error

	// UpdateDistributions persists a recalculated batch with the same
	// all-or-nothing transaction requirement as SaveDistributions.
	UpdateDistributions(ctx context.Context, distributions []domain.ChargeDistribution) error
}

// DistributionRepositoryFacade combines all distribution repository interfaces
type DistributionRepositoryFacade interface {
	DistributionReader
	DistributionWriter
}
