package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilmry/koprogo-sub003/internal/apperrors"
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	"github.com/gilmry/koprogo-sub003/internal/utils/accounting"
)

func share(unitID, ownerID string, quota float64) domain.OwnershipShare {
	return domain.OwnershipShare{
		UnitID:          unitID,
		OwnerID:         ownerID,
		QuotaPercentage: decimal.NewFromFloat(quota),
	}
}

func TestCalculateDistributions_ProportionalSplit(t *testing.T) {
	shares := []domain.OwnershipShare{
		share("u1", "o1", 0.25),
		share("u2", "o2", 0.35),
		share("u3", "o3", 0.40),
	}

	distributions, err := accounting.CalculateDistributions("exp-1", decimal.NewFromFloat(1000.0), shares, "user-1")
	require.NoError(t, err)
	require.Len(t, distributions, 3)

	expected := []float64{250.0, 350.0, 400.0}
	for i, d := range distributions {
		assert.Equal(t, "exp-1", d.ExpenseID)
		assert.Equal(t, shares[i].UnitID, d.UnitID)
		assert.Equal(t, shares[i].OwnerID, d.OwnerID)
		assert.True(t, d.AmountDue.Equal(decimal.NewFromFloat(expected[i])),
			"amount due %s, want %v", d.AmountDue, expected[i])
		assert.NotEmpty(t, d.DistributionID)
	}

	assert.True(t, accounting.VerifyDistributionTotal(distributions, decimal.NewFromFloat(1000.0)))
}

func TestCalculateDistributions_QuotaOverflow(t *testing.T) {
	shares := []domain.OwnershipShare{
		share("u1", "o1", 0.60),
		share("u2", "o2", 0.50),
	}

	distributions, err := accounting.CalculateDistributions("exp-1", decimal.NewFromFloat(1000.0), shares, "user-1")
	assert.Nil(t, distributions)
	assert.ErrorIs(t, err, apperrors.ErrQuotaOverflow)
}

func TestCalculateDistributions_RoundingResidueAllowed(t *testing.T) {
	// Stored quotas may carry tiny rounding residue above 1.0.
	shares := []domain.OwnershipShare{
		share("u1", "o1", 0.5),
		share("u2", "o2", 0.5001),
	}
	_, err := accounting.CalculateDistributions("exp-1", decimal.NewFromFloat(100.0), shares, "user-1")
	assert.NoError(t, err)

	shares[1].QuotaPercentage = decimal.NewFromFloat(0.5002)
	_, err = accounting.CalculateDistributions("exp-1", decimal.NewFromFloat(100.0), shares, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrQuotaOverflow)
}

func TestCalculateDistributions_EdgeQuotas(t *testing.T) {
	t.Run("empty share list is a successful empty batch", func(t *testing.T) {
		distributions, err := accounting.CalculateDistributions("exp-1", decimal.NewFromFloat(500.0), nil, "user-1")
		require.NoError(t, err)
		assert.Empty(t, distributions)
	})

	t.Run("zero quota is valid", func(t *testing.T) {
		distributions, err := accounting.CalculateDistributions("exp-1", decimal.NewFromFloat(500.0),
			[]domain.OwnershipShare{share("u1", "o1", 0.0)}, "user-1")
		require.NoError(t, err)
		require.Len(t, distributions, 1)
		assert.True(t, distributions[0].AmountDue.IsZero())
	})

	t.Run("single owner with full quota", func(t *testing.T) {
		distributions, err := accounting.CalculateDistributions("exp-1", decimal.NewFromFloat(500.0),
			[]domain.OwnershipShare{share("u1", "o1", 1.0)}, "user-1")
		require.NoError(t, err)
		require.Len(t, distributions, 1)
		assert.True(t, distributions[0].AmountDue.Equal(decimal.NewFromFloat(500.0)))
	})
}

func TestCalculateDistributions_InvalidInputs(t *testing.T) {
	t.Run("negative total", func(t *testing.T) {
		_, err := accounting.CalculateDistributions("exp-1", decimal.NewFromFloat(-1.0),
			[]domain.OwnershipShare{share("u1", "o1", 0.5)}, "user-1")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("missing expense id", func(t *testing.T) {
		_, err := accounting.CalculateDistributions("", decimal.NewFromFloat(100.0), nil, "user-1")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("negative single quota reported precisely", func(t *testing.T) {
		// Sum stays below the aggregate cap, so the per-share check must catch it.
		shares := []domain.OwnershipShare{
			share("u1", "o1", 0.9),
			share("u2", "o2", -0.1),
		}
		_, err := accounting.CalculateDistributions("exp-1", decimal.NewFromFloat(100.0), shares, "user-1")
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.NotErrorIs(t, err, apperrors.ErrQuotaOverflow)
		assert.Contains(t, err.Error(), "u2")
	})
}

func TestRecalculateDistribution(t *testing.T) {
	distributions, err := accounting.CalculateDistributions("exp-1", decimal.NewFromFloat(1000.0),
		[]domain.OwnershipShare{share("u1", "o1", 0.25)}, "user-1")
	require.NoError(t, err)
	d := distributions[0]

	require.NoError(t, accounting.RecalculateDistribution(&d, decimal.NewFromFloat(1200.0), "user-2"))
	assert.True(t, d.AmountDue.Equal(decimal.NewFromFloat(300.0)))
	assert.Equal(t, "user-2", d.LastUpdatedBy)

	err = accounting.RecalculateDistribution(&d, decimal.NewFromFloat(-5.0), "user-2")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRecalculateDistribution_Monotonic(t *testing.T) {
	distributions, err := accounting.CalculateDistributions("exp-1", decimal.NewFromFloat(100.0),
		[]domain.OwnershipShare{share("u1", "o1", 0.4)}, "user-1")
	require.NoError(t, err)
	d := distributions[0]

	previous := d.AmountDue
	for _, total := range []float64{150.0, 151.0, 500.0, 10000.0} {
		require.NoError(t, accounting.RecalculateDistribution(&d, decimal.NewFromFloat(total), "user-1"))
		assert.True(t, d.AmountDue.GreaterThanOrEqual(previous),
			"amount due decreased from %s to %s for a larger total", previous, d.AmountDue)
		previous = d.AmountDue
	}
}

func TestVerifyDistributionTotal(t *testing.T) {
	distributions := []domain.ChargeDistribution{
		{AmountDue: decimal.NewFromFloat(250.0)},
		{AmountDue: decimal.NewFromFloat(750.0)},
	}

	assert.True(t, accounting.VerifyDistributionTotal(distributions, decimal.NewFromFloat(1000.0)))
	assert.True(t, accounting.VerifyDistributionTotal(distributions, decimal.NewFromFloat(1000.009)))
	assert.False(t, accounting.VerifyDistributionTotal(distributions, decimal.NewFromFloat(1000.01)))
	assert.False(t, accounting.VerifyDistributionTotal(distributions, decimal.NewFromFloat(999.0)))
	assert.True(t, accounting.VerifyDistributionTotal(nil, decimal.Zero))
}
