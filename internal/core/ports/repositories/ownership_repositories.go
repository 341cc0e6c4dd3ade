package repositories

import (
	"context"

	"github.com/gilmry/koprogo-sub003/internal/core/domain"
)

// BuildingReader defines read operations for buildings and their lots
type BuildingReader interface {
	// FindBuildingByID retrieves a building by its unique identifier.
	FindBuildingByID(ctx context.Context, buildingID string) (*domain.Building, error)

	// ListBuildingsByOrganization retrieves all buildings managed by an organization.
	ListBuildingsByOrganization(ctx context.Context, organizationID string) ([]domain.Building, error)

	// ListUnitsByBuilding retrieves all units of a building.
	ListUnitsByBuilding(ctx context.Context, buildingID string) ([]domain.Unit, error)
}

// BuildingWriter defines write operations for buildings and their lots
type BuildingWriter interface {
	// SaveBuilding persists a new building.
	SaveBuilding(ctx context.Context, building domain.Building) error

	// SaveUnit persists a new unit.
	SaveUnit(ctx context.Context, unit domain.Unit) error

	// SaveOwner persists a new owner.
	SaveOwner(ctx context.Context, owner domain.Owner) error
}

// OwnershipReader defines read operations for unit ownership records
type OwnershipReader interface {
	// FindActiveOwnershipsByBuilding retrieves the (unit, owner, quota) records of
	// currently active ownerships only; ended ownerships are excluded.
	FindActiveOwnershipsByBuilding(ctx context.Context, buildingID string) ([]domain.UnitOwnership, error)

	// FindOwnerByID retrieves an owner by their unique identifier.
	FindOwnerByID(ctx context.Context, ownerID string) (*domain.Owner, error)
}

// OwnershipWriter defines write operations for unit ownership records
type OwnershipWriter interface {
	// SaveOwnership persists a new ownership record.
	SaveOwnership(ctx context.Context, ownership domain.UnitOwnership) error

	// EndOwnership sets the end date of an ownership, excluding it from future
	// distribution runs.
	EndOwnership(ctx context.Context, ownershipID string, userID string) error
}

// BuildingRepositoryFacade combines building and ownership repository interfaces
type BuildingRepositoryFacade interface {
	BuildingReader
	BuildingWriter
	OwnershipReader
	OwnershipWriter
}
