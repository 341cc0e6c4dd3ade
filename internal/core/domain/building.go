package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Building is a co-owned property managed by an organization.
type Building struct {
	BuildingID     string `json:"buildingID"`     // Primary Key (e.g., UUID)
	OrganizationID string `json:"organizationID"` // FK -> organizations.organization_id
	Name           string `json:"name"`
	Address        string `json:"address"`
	City           string `json:"city"`
	PostalCode     string `json:"postalCode"`
	TotalUnits     int    `json:"totalUnits"`
	IsActive       bool   `json:"isActive"`
	AuditFields
}

// Unit is a single lot within a building (apartment, parking, cellar).
type Unit struct {
	UnitID     string `json:"unitID"`     // Primary Key (e.g., UUID)
	BuildingID string `json:"buildingID"` // FK -> buildings.building_id
	Reference  string `json:"reference"`  // e.g. "A-2.3"
	Floor      int    `json:"floor"`
	AuditFields
}

// Owner is a co-owner of one or more units.
type Owner struct {
	OwnerID   string `json:"ownerID"` // Primary Key (e.g., UUID)
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	AuditFields
}

// UnitOwnership links an owner to a unit with a quota of the building's charges.
// An ownership without an end date is active.
type UnitOwnership struct {
	OwnershipID     string          `json:"ownershipID"` // Primary Key (e.g., UUID)
	UnitID          string          `json:"unitID"`      // FK -> units.unit_id
	OwnerID         string          `json:"ownerID"`     // FK -> owners.owner_id
	QuotaPercentage decimal.Decimal `json:"quotaPercentage"`
	StartDate       time.Time       `json:"startDate"`
	EndDate         *time.Time      `json:"endDate"` // Nullable; set when ownership ends
	AuditFields
}

// IsActive reports whether the ownership is current.
func (o *UnitOwnership) IsActive() bool {
	return o.EndDate == nil
}

// Share converts the ownership into the flat tuple the calculator consumes.
func (o *UnitOwnership) Share() OwnershipShare {
	return OwnershipShare{
		UnitID:          o.UnitID,
		OwnerID:         o.OwnerID,
		QuotaPercentage: o.QuotaPercentage,
	}
}
