package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Building represents a co-owned property row.
type Building struct {
	BuildingID     string `db:"building_id"`
	OrganizationID string `db:"organization_id"`
	Name           string `db:"name"`
	Address        string `db:"address"`
	City           string `db:"city"`
	PostalCode     string `db:"postal_code"`
	TotalUnits     int    `db:"total_units"`
	IsActive       bool   `db:"is_active"`
	AuditFields
}

// Unit represents a single lot row within a building.
type Unit struct {
	UnitID     string `db:"unit_id"`
	BuildingID string `db:"building_id"`
	Reference  string `db:"reference"`
	Floor      int    `db:"floor"`
	AuditFields
}

// Owner represents a co-owner row.
type Owner struct {
	OwnerID   string `db:"owner_id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`
	AuditFields
}

// UnitOwnership links an owner to a unit with a charge quota. A null end date
// means the ownership is active.
type UnitOwnership struct {
	OwnershipID     string          `db:"ownership_id"`
	UnitID          string          `db:"unit_id"`
	OwnerID         string          `db:"owner_id"`
	QuotaPercentage decimal.Decimal `db:"quota_percentage"`
	StartDate       time.Time       `db:"start_date"`
	EndDate         sql.NullTime    `db:"end_date"`
	AuditFields
}
