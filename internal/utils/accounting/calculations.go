package accounting

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gilmry/koprogo-sub003/internal/apperrors"
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
)

// QuotaSumMax is the upper bound for the aggregate of all quotas of a building.
// Quotas are expected to sum to at most 1.0 (100% of the building); the small
// allowance absorbs rounding residue carried by stored quotas.
var QuotaSumMax = decimal.NewFromFloat(1.0001)

// DistributionTolerance bounds the acceptable gap between the sum of distributed
// amounts and the original expense total. Distinct from domain.BalanceTolerance;
// the two constants are intentionally not unified.
var DistributionTolerance = decimal.NewFromFloat(0.01)

var one = decimal.NewFromInt(1)

// CalculateDistributions computes one ChargeDistribution per ownership share for an
// approved expense, with amount_due = totalAmount x quota. The returned batch must be
// persisted all-or-nothing by the caller.
//
// An empty share list yields an empty successful result: a building with no active
// owners is a data completeness problem for the caller, not a calculator failure.
// A quota of exactly 0 (non-monetary lot) and exactly 1 (single owner) are both valid.
func CalculateDistributions(expenseID string, totalAmount decimal.Decimal, shares []domain.OwnershipShare, createdBy string) ([]domain.ChargeDistribution, error) {
	if expenseID == "" {
		return nil, fmt.Errorf("%w: expense ID is required", apperrors.ErrValidation)
	}
	if totalAmount.IsNegative() {
		return nil, fmt.Errorf("%w: total amount must be non-negative, got %s", apperrors.ErrValidation, totalAmount.String())
	}

	quotaSum := decimal.Zero
	for _, s := range shares {
		quotaSum = quotaSum.Add(s.QuotaPercentage)
	}
	if quotaSum.GreaterThan(QuotaSumMax) {
		return nil, fmt.Errorf("%w: quotas sum to %s", apperrors.ErrQuotaOverflow, quotaSum.String())
	}

	now := time.Now().UTC()
	distributions := make([]domain.ChargeDistribution, 0, len(shares))
	for _, s := range shares {
		// Per-share bound check, separate from the aggregate check above, so one
		// malformed quota is reported precisely instead of folded into the sum.
		if err := validateQuota(s.QuotaPercentage, s.UnitID, s.OwnerID); err != nil {
			return nil, err
		}
		distributions = append(distributions, domain.ChargeDistribution{
			DistributionID:  uuid.NewString(),
			ExpenseID:       expenseID,
			UnitID:          s.UnitID,
			OwnerID:         s.OwnerID,
			QuotaPercentage: s.QuotaPercentage,
			AmountDue:       totalAmount.Mul(s.QuotaPercentage),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     createdBy,
				LastUpdatedAt: now,
				LastUpdatedBy: createdBy,
			},
		})
	}
	return distributions, nil
}

// RecalculateDistribution recomputes AmountDue in place from the distribution's
// already-validated quota, e.g. after a correction of the expense total.
func RecalculateDistribution(d *domain.ChargeDistribution, newTotalAmount decimal.Decimal, updatedBy string) error {
	if newTotalAmount.IsNegative() {
		return fmt.Errorf("%w: total amount must be non-negative, got %s", apperrors.ErrValidation, newTotalAmount.String())
	}
	if err := validateQuota(d.QuotaPercentage, d.UnitID, d.OwnerID); err != nil {
		return err
	}
	d.AmountDue = newTotalAmount.Mul(d.QuotaPercentage)
	d.LastUpdatedAt = time.Now().UTC()
	d.LastUpdatedBy = updatedBy
	return nil
}

// VerifyDistributionTotal reports whether the distributed amounts add back up to the
// expected total within DistributionTolerance. Intended as a post-condition check
// after persistence, not a gating precondition.
func VerifyDistributionTotal(distributions []domain.ChargeDistribution, expectedTotal decimal.Decimal) bool {
	sum := decimal.Zero
	for _, d := range distributions {
		sum = sum.Add(d.AmountDue)
	}
	return sum.Sub(expectedTotal).Abs().LessThan(DistributionTolerance)
}

func validateQuota(quota decimal.Decimal, unitID, ownerID string) error {
	if quota.IsNegative() || quota.GreaterThan(one) {
		return fmt.Errorf("%w: quota %s for unit %s owner %s is outside [0, 1]",
			apperrors.ErrValidation, quota.String(), unitID, ownerID)
	}
	return nil
}
