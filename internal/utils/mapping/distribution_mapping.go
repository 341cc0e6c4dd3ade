package mapping

import (
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	"github.com/gilmry/koprogo-sub003/internal/models"
)

// ToModelChargeDistribution converts a domain ChargeDistribution to a model ChargeDistribution
func ToModelChargeDistribution(d domain.ChargeDistribution) models.ChargeDistribution {
	return models.ChargeDistribution{
		DistributionID:  d.DistributionID,
		ExpenseID:       d.ExpenseID,
		UnitID:          d.UnitID,
		OwnerID:         d.OwnerID,
		QuotaPercentage: d.QuotaPercentage,
		AmountDue:       d.AmountDue,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainChargeDistribution converts a model ChargeDistribution to a domain ChargeDistribution
func ToDomainChargeDistribution(m models.ChargeDistribution) domain.ChargeDistribution {
	return domain.ChargeDistribution{
		DistributionID:  m.DistributionID,
		ExpenseID:       m.ExpenseID,
		UnitID:          m.UnitID,
		OwnerID:         m.OwnerID,
		QuotaPercentage: m.QuotaPercentage,
		AmountDue:       m.AmountDue,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainChargeDistributionSlice converts a slice of model ChargeDistributions to domain form
func ToDomainChargeDistributionSlice(ms []models.ChargeDistribution) []domain.ChargeDistribution {
	ds := make([]domain.ChargeDistribution, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainChargeDistribution(m)
	}
	return ds
}
