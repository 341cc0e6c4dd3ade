package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	"github.com/gilmry/koprogo-sub003/internal/dto"
)

// DistributionReaderSvc defines read operations for charge distributions
type DistributionReaderSvc interface {
	// GetDistributionsByExpense retrieves the persisted batch for one expense.
	GetDistributionsByExpense(ctx context.Context, organizationID string, expenseID string, requestingUserID string) ([]domain.ChargeDistribution, error)

	// ListDistributionsByOwner retrieves a paginated list of one owner's charges
	// across all expenses.
	ListDistributionsByOwner(ctx context.Context, organizationID string, ownerID string, requestingUserID string, params dto.ListDistributionsParams) ([]domain.ChargeDistribution, error)
}

// DistributionWriterSvc defines write operations for charge distributions
type DistributionWriterSvc interface {
	// DistributeExpense computes and persists the charge distribution batch for an
	// approved expense, reading the building's active ownership quotas. The batch
	// is written all-or-nothing; a second distribution of the same expense fails
	// with a duplicate error.
	DistributeExpense(ctx context.Context, organizationID string, expenseID string, requestingUserID string) ([]domain.ChargeDistribution, error)

	// RecalculateDistributions recomputes every row of an expense's batch from a
	// corrected total, keeping the already-validated quotas.
	RecalculateDistributions(ctx context.Context, organizationID string, expenseID string, newTotal decimal.Decimal, requestingUserID string) ([]domain.ChargeDistribution, error)
}

// DistributionSvcFacade combines all distribution service interfaces
type DistributionSvcFacade interface {
	DistributionReaderSvc
	DistributionWriterSvc
}
