package mapping

import (
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	"github.com/gilmry/koprogo-sub003/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		OrganizationID: d.OrganizationID,
		Code:           d.Code,
		Label:          d.Label,
		ParentCode:     ToNullString(d.ParentCode),
		AccountType:    string(d.AccountType),
		DirectUse:      d.DirectUse,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		OrganizationID: m.OrganizationID,
		Code:           m.Code,
		Label:          m.Label,
		ParentCode:     FromNullString(m.ParentCode),
		AccountType:    domain.AccountType(m.AccountType),
		DirectUse:      m.DirectUse,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
