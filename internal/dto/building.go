package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gilmry/koprogo-sub003/internal/core/domain"
)

// CreateBuildingRequest defines the payload for registering a building.
type CreateBuildingRequest struct {
	Name       string `json:"name" binding:"required"`
	Address    string `json:"address" binding:"required"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	TotalUnits int    `json:"totalUnits" binding:"min=0"`
}

// CreateUnitRequest defines the payload for adding a unit to a building.
type CreateUnitRequest struct {
	Reference string `json:"reference" binding:"required"`
	Floor     int    `json:"floor"`
}

// CreateOwnerRequest defines the payload for registering an owner.
type CreateOwnerRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
}

// CreateOwnershipRequest links an owner to a unit with a charge quota.
type CreateOwnershipRequest struct {
	UnitID          string          `json:"unitID" binding:"required"`
	OwnerID         string          `json:"ownerID" binding:"required"`
	QuotaPercentage decimal.Decimal `json:"quotaPercentage"`
	StartDate       time.Time       `json:"startDate" binding:"required"`
}

// BuildingResponse defines the data returned for a building.
type BuildingResponse struct {
	BuildingID string `json:"buildingID"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	TotalUnits int    `json:"totalUnits"`
	IsActive   bool   `json:"isActive"`
}

// OwnershipResponse defines the data returned for an ownership record.
type OwnershipResponse struct {
	OwnershipID     string          `json:"ownershipID"`
	UnitID          string          `json:"unitID"`
	OwnerID         string          `json:"ownerID"`
	QuotaPercentage decimal.Decimal `json:"quotaPercentage"`
	StartDate       time.Time       `json:"startDate"`
	EndDate         *time.Time      `json:"endDate,omitempty"`
	Active          bool            `json:"active"`
}

// ToBuildingResponse converts a domain building to its DTO.
func ToBuildingResponse(b *domain.Building) BuildingResponse {
	return BuildingResponse{
		BuildingID: b.BuildingID,
		Name:       b.Name,
		Address:    b.Address,
		City:       b.City,
		PostalCode: b.PostalCode,
		TotalUnits: b.TotalUnits,
		IsActive:   b.IsActive,
	}
}

// ToOwnershipResponse converts a domain ownership to its DTO.
func ToOwnershipResponse(o *domain.UnitOwnership) OwnershipResponse {
	return OwnershipResponse{
		OwnershipID:     o.OwnershipID,
		UnitID:          o.UnitID,
		OwnerID:         o.OwnerID,
		QuotaPercentage: o.QuotaPercentage,
		StartDate:       o.StartDate,
		EndDate:         o.EndDate,
		Active:          o.IsActive(),
	}
}
