package services

import (
	"context"

	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	"github.com/gilmry/koprogo-sub003/internal/dto"
)

// BuildingReaderSvc defines read operations for buildings and ownerships
type BuildingReaderSvc interface {
	// GetBuildingByID retrieves a building by its unique identifier.
	GetBuildingByID(ctx context.Context, organizationID string, buildingID string, requestingUserID string) (*domain.Building, error)

	// ListBuildings retrieves all buildings managed by an organization.
	ListBuildings(ctx context.Context, organizationID string, requestingUserID string) ([]domain.Building, error)

	// ListActiveOwnerships retrieves the active ownership records of a building.
	ListActiveOwnerships(ctx context.Context, organizationID string, buildingID string, requestingUserID string) ([]domain.UnitOwnership, error)
}

// BuildingWriterSvc defines write operations for buildings and ownerships
type BuildingWriterSvc interface {
	// CreateBuilding registers a building under an organization.
	CreateBuilding(ctx context.Context, organizationID string, req dto.CreateBuildingRequest, creatorUserID string) (*domain.Building, error)

	// CreateUnit adds a unit to a building.
	CreateUnit(ctx context.Context, organizationID string, buildingID string, req dto.CreateUnitRequest, creatorUserID string) (*domain.Unit, error)

	// CreateOwner registers an owner.
	CreateOwner(ctx context.Context, organizationID string, req dto.CreateOwnerRequest, creatorUserID string) (*domain.Owner, error)

	// CreateOwnership links an owner to a unit with a charge quota.
	CreateOwnership(ctx context.Context, organizationID string, buildingID string, req dto.CreateOwnershipRequest, creatorUserID string) (*domain.UnitOwnership, error)

	// EndOwnership closes an ownership record, excluding it from future
	// distribution runs.
	EndOwnership(ctx context.Context, organizationID string, ownershipID string, requestingUserID string) error
}

// BuildingSvcFacade combines all building service interfaces
type BuildingSvcFacade interface {
	BuildingReaderSvc
	BuildingWriterSvc
}
