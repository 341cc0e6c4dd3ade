package mapping

import (
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	"github.com/gilmry/koprogo-sub003/internal/models"
)

// ToModelBuilding converts a domain Building to a model Building
func ToModelBuilding(d domain.Building) models.Building {
	return models.Building{
		BuildingID:     d.BuildingID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		Address:        d.Address,
		City:           d.City,
		PostalCode:     d.PostalCode,
		TotalUnits:     d.TotalUnits,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBuilding converts a model Building to a domain Building
func ToDomainBuilding(m models.Building) domain.Building {
	return domain.Building{
		BuildingID:     m.BuildingID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Address:        m.Address,
		City:           m.City,
		PostalCode:     m.PostalCode,
		TotalUnits:     m.TotalUnits,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBuildingSlice converts a slice of model Buildings to domain form
func ToDomainBuildingSlice(ms []models.Building) []domain.Building {
	ds := make([]domain.Building, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBuilding(m)
	}
	return ds
}

// ToModelUnit converts a domain Unit to a model Unit
func ToModelUnit(d domain.Unit) models.Unit {
	return models.Unit{
		UnitID:      d.UnitID,
		BuildingID:  d.BuildingID,
		Reference:   d.Reference,
		Floor:       d.Floor,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUnit converts a model Unit to a domain Unit
func ToDomainUnit(m models.Unit) domain.Unit {
	return domain.Unit{
		UnitID:      m.UnitID,
		BuildingID:  m.BuildingID,
		Reference:   m.Reference,
		Floor:       m.Floor,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainUnitSlice converts a slice of model Units to domain form
func ToDomainUnitSlice(ms []models.Unit) []domain.Unit {
	ds := make([]domain.Unit, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUnit(m)
	}
	return ds
}

// ToModelOwner converts a domain Owner to a model Owner
func ToModelOwner(d domain.Owner) models.Owner {
	return models.Owner{
		OwnerID:     d.OwnerID,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Email:       d.Email,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOwner converts a model Owner to a domain Owner
func ToDomainOwner(m models.Owner) domain.Owner {
	return domain.Owner{
		OwnerID:     m.OwnerID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       m.Email,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelUnitOwnership converts a domain UnitOwnership to a model UnitOwnership
func ToModelUnitOwnership(d domain.UnitOwnership) models.UnitOwnership {
	return models.UnitOwnership{
		OwnershipID:     d.OwnershipID,
		UnitID:          d.UnitID,
		OwnerID:         d.OwnerID,
		QuotaPercentage: d.QuotaPercentage,
		StartDate:       d.StartDate,
		EndDate:         ToNullTime(d.EndDate),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUnitOwnership converts a model UnitOwnership to a domain UnitOwnership
func ToDomainUnitOwnership(m models.UnitOwnership) domain.UnitOwnership {
	return domain.UnitOwnership{
		OwnershipID:     m.OwnershipID,
		UnitID:          m.UnitID,
		OwnerID:         m.OwnerID,
		QuotaPercentage: m.QuotaPercentage,
		StartDate:       m.StartDate,
		EndDate:         FromNullTime(m.EndDate),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainUnitOwnershipSlice converts a slice of model UnitOwnerships to domain form
func ToDomainUnitOwnershipSlice(ms []models.UnitOwnership) []domain.UnitOwnership {
	ds := make([]domain.UnitOwnership, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUnitOwnership(m)
	}
	return ds
}
