package mapping

import (
	"github.com/shopspring/decimal"

	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	"github.com/gilmry/koprogo-sub003/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	var amountInclVAT decimal.NullDecimal
	if d.AmountInclVAT != nil {
		amountInclVAT = decimal.NewNullDecimal(*d.AmountInclVAT)
	}
	return models.Expense{
		ExpenseID:     d.ExpenseID,
		BuildingID:    d.BuildingID,
		Description:   d.Description,
		Amount:        d.Amount,
		AmountInclVAT: amountInclVAT,
		AccountCode:   d.AccountCode,
		ExpenseDate:   d.ExpenseDate,
		SupplierName:  d.SupplierName,
		Status:        string(d.Status),
		ApprovedDate:  ToNullTime(d.ApprovedDate),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	var amountInclVAT *decimal.Decimal
	if m.AmountInclVAT.Valid {
		v := m.AmountInclVAT.Decimal
		amountInclVAT = &v
	}
	return domain.Expense{
		ExpenseID:     m.ExpenseID,
		BuildingID:    m.BuildingID,
		Description:   m.Description,
		Amount:        m.Amount,
		AmountInclVAT: amountInclVAT,
		AccountCode:   m.AccountCode,
		ExpenseDate:   m.ExpenseDate,
		SupplierName:  m.SupplierName,
		Status:        domain.ExpenseStatus(m.Status),
		ApprovedDate:  FromNullTime(m.ApprovedDate),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseSlice converts a slice of model Expenses to domain form
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}
