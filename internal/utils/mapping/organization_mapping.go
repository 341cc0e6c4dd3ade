package mapping

import (
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	"github.com/gilmry/koprogo-sub003/internal/models"
)

// ToModelOrganization converts a domain Organization to a model Organization
func ToModelOrganization(d domain.Organization) models.Organization {
	return models.Organization{
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		VATNumber:      d.VATNumber,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrganization converts a model Organization to a domain Organization
func ToDomainOrganization(m models.Organization) domain.Organization {
	return domain.Organization{
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		VATNumber:      m.VATNumber,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOrganizationSlice converts a slice of model Organizations to domain form
func ToDomainOrganizationSlice(ms []models.Organization) []domain.Organization {
	ds := make([]domain.Organization, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOrganization(m)
	}
	return ds
}

// ToModelUserOrganization converts a domain membership to a model membership
func ToModelUserOrganization(d domain.UserOrganization) models.UserOrganization {
	return models.UserOrganization{
		UserID:         d.UserID,
		OrganizationID: d.OrganizationID,
		Role:           string(d.Role),
		JoinedAt:       d.JoinedAt,
	}
}

// ToDomainUserOrganization converts a model membership to a domain membership
func ToDomainUserOrganization(m models.UserOrganization) domain.UserOrganization {
	return domain.UserOrganization{
		UserID:         m.UserID,
		OrganizationID: m.OrganizationID,
		Role:           domain.UserOrganizationRole(m.Role),
		JoinedAt:       m.JoinedAt,
	}
}
