package mapping

import (
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	"github.com/gilmry/koprogo-sub003/internal/models"
)

// ToModelBudget converts a domain Budget to a model Budget
func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:               d.BudgetID,
		BuildingID:             d.BuildingID,
		FiscalYear:             d.FiscalYear,
		OrdinaryBudget:         d.OrdinaryBudget,
		ExtraordinaryBudget:    d.ExtraordinaryBudget,
		TotalBudget:            d.TotalBudget,
		MonthlyProvisionAmount: d.MonthlyProvisionAmount,
		Status:                 string(d.Status),
		SubmittedDate:          ToNullTime(d.SubmittedDate),
		ApprovedDate:           ToNullTime(d.ApprovedDate),
		ApprovedByMeetingID:    ToNullString(d.ApprovedByMeetingID),
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudget converts a model Budget to a domain Budget
func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:               m.BudgetID,
		BuildingID:             m.BuildingID,
		FiscalYear:             m.FiscalYear,
		OrdinaryBudget:         m.OrdinaryBudget,
		ExtraordinaryBudget:    m.ExtraordinaryBudget,
		TotalBudget:            m.TotalBudget,
		MonthlyProvisionAmount: m.MonthlyProvisionAmount,
		Status:                 domain.BudgetStatus(m.Status),
		SubmittedDate:          FromNullTime(m.SubmittedDate),
		ApprovedDate:           FromNullTime(m.ApprovedDate),
		ApprovedByMeetingID:    FromNullString(m.ApprovedByMeetingID),
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBudgetSlice converts a slice of model Budgets to domain form
func ToDomainBudgetSlice(ms []models.Budget) []domain.Budget {
	ds := make([]domain.Budget, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBudget(m)
	}
	return ds
}
