package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gilmry/koprogo-sub003/internal/apperrors"
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	portsrepo "github.com/gilmry/koprogo-sub003/internal/core/ports/repositories"
	portssvc "github.com/gilmry/koprogo-sub003/internal/core/ports/services"
	"github.com/gilmry/koprogo-sub003/internal/dto"
	"github.com/gilmry/koprogo-sub003/internal/utils/accounting"
)

// buildingService manages buildings, units, owners and ownership records. Ownership
// quotas feed the charge distribution calculator, so quota bounds are enforced here
// at write time as well.
type buildingService struct {
	BaseService
	buildingRepo portsrepo.BuildingRepositoryFacade
}

// NewBuildingService creates a new building service.
func NewBuildingService(buildingRepo portsrepo.BuildingRepositoryFacade, authorizer portssvc.OrganizationAuthorizerSvc) portssvc.BuildingSvcFacade {
	return &buildingService{
		BaseService:  BaseService{OrganizationAuthorizer: authorizer},
		buildingRepo: buildingRepo,
	}
}

// Ensure buildingService implements the portssvc.BuildingSvcFacade interface
var _ portssvc.BuildingSvcFacade = (*buildingService)(nil)

// CreateBuilding registers a building under an organization.
func (s *buildingService) CreateBuilding(ctx context.Context, organizationID string, req dto.CreateBuildingRequest, creatorUserID string) (*domain.Building, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	now := time.Now()
	building := domain.Building{
		BuildingID:     uuid.NewString(),
		OrganizationID: organizationID,
		Name:           req.Name,
		Address:        req.Address,
		City:           req.City,
		PostalCode:     req.PostalCode,
		TotalUnits:     req.TotalUnits,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.buildingRepo.SaveBuilding(ctx, building); err != nil {
		s.LogError(ctx, err, "Failed to save building", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save building: %w", err)
	}

	s.LogInfo(ctx, "Building created successfully",
		slog.String("building_id", building.BuildingID),
		slog.String("organization_id", organizationID))
	return &building, nil
}

// GetBuildingByID retrieves a building scoped to the caller's organization.
func (s *buildingService) GetBuildingByID(ctx context.Context, organizationID string, buildingID string, requestingUserID string) (*domain.Building, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.findBuildingInOrganization(ctx, organizationID, buildingID)
}

// ListBuildings retrieves all buildings managed by an organization.
func (s *buildingService) ListBuildings(ctx context.Context, organizationID string, requestingUserID string) ([]domain.Building, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	buildings, err := s.buildingRepo.ListBuildingsByOrganization(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list buildings", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list buildings: %w", err)
	}
	if buildings == nil {
		buildings = []domain.Building{}
	}
	return buildings, nil
}

// CreateUnit adds a unit to a building.
func (s *buildingService) CreateUnit(ctx context.Context, organizationID string, buildingID string, req dto.CreateUnitRequest, creatorUserID string) (*domain.Unit, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if _, err := s.findBuildingInOrganization(ctx, organizationID, buildingID); err != nil {
		return nil, err
	}

	now := time.Now()
	unit := domain.Unit{
		UnitID:     uuid.NewString(),
		BuildingID: buildingID,
		Reference:  req.Reference,
		Floor:      req.Floor,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.buildingRepo.SaveUnit(ctx, unit); err != nil {
		s.LogError(ctx, err, "Failed to save unit", slog.String("building_id", buildingID))
		return nil, fmt.Errorf("failed to save unit: %w", err)
	}

	s.LogInfo(ctx, "Unit created successfully",
		slog.String("unit_id", unit.UnitID),
		slog.String("building_id", buildingID),
		slog.String("reference", unit.Reference))
	return &unit, nil
}

// CreateOwner registers an owner.
func (s *buildingService) CreateOwner(ctx context.Context, organizationID string, req dto.CreateOwnerRequest, creatorUserID string) (*domain.Owner, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	now := time.Now()
	owner := domain.Owner{
		OwnerID:   uuid.NewString(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.buildingRepo.SaveOwner(ctx, owner); err != nil {
		s.LogError(ctx, err, "Failed to save owner", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save owner: %w", err)
	}

	s.LogInfo(ctx, "Owner created successfully", slog.String("owner_id", owner.OwnerID))
	return &owner, nil
}

// CreateOwnership links an owner to a unit with a charge quota. The quota must be a
// fraction within [0, 1], and the aggregate of all active quotas of the building
// (including the new one) must stay within the distribution calculator's bound.
func (s *buildingService) CreateOwnership(ctx context.Context, organizationID string, buildingID string, req dto.CreateOwnershipRequest, creatorUserID string) (*domain.UnitOwnership, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if _, err := s.findBuildingInOrganization(ctx, organizationID, buildingID); err != nil {
		return nil, err
	}

	if req.QuotaPercentage.IsNegative() || req.QuotaPercentage.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: quota %s is outside [0, 1]", apperrors.ErrValidation, req.QuotaPercentage.String())
	}

	if _, err := s.buildingRepo.FindOwnerByID(ctx, req.OwnerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: owner %s not found", apperrors.ErrValidation, req.OwnerID)
		}
		return nil, fmt.Errorf("failed to check owner: %w", err)
	}

	existing, err := s.buildingRepo.FindActiveOwnershipsByBuilding(ctx, buildingID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch active ownerships", slog.String("building_id", buildingID))
		return nil, fmt.Errorf("failed to fetch active ownerships: %w", err)
	}
	quotaSum := req.QuotaPercentage
	for _, o := range existing {
		quotaSum = quotaSum.Add(o.QuotaPercentage)
	}
	if quotaSum.GreaterThan(accounting.QuotaSumMax) {
		return nil, fmt.Errorf("%w: building quotas would sum to %s", apperrors.ErrQuotaOverflow, quotaSum.String())
	}

	now := time.Now()
	ownership := domain.UnitOwnership{
		OwnershipID:     uuid.NewString(),
		UnitID:          req.UnitID,
		OwnerID:         req.OwnerID,
		QuotaPercentage: req.QuotaPercentage,
		StartDate:       req.StartDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.buildingRepo.SaveOwnership(ctx, ownership); err != nil {
		s.LogError(ctx, err, "Failed to save ownership", slog.String("unit_id", req.UnitID))
		return nil, fmt.Errorf("failed to save ownership: %w", err)
	}

	s.LogInfo(ctx, "Ownership created successfully",
		slog.String("ownership_id", ownership.OwnershipID),
		slog.String("unit_id", req.UnitID),
		slog.String("owner_id", req.OwnerID),
		slog.String("quota", req.QuotaPercentage.String()))
	return &ownership, nil
}

// ListActiveOwnerships retrieves the active ownership records of a building.
func (s *buildingService) ListActiveOwnerships(ctx context.Context, organizationID string, buildingID string, requestingUserID string) ([]domain.UnitOwnership, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	if _, err := s.findBuildingInOrganization(ctx, organizationID, buildingID); err != nil {
		return nil, err
	}

	ownerships, err := s.buildingRepo.FindActiveOwnershipsByBuilding(ctx, buildingID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active ownerships", slog.String("building_id", buildingID))
		return nil, fmt.Errorf("failed to list active ownerships: %w", err)
	}
	if ownerships == nil {
		ownerships = []domain.UnitOwnership{}
	}
	return ownerships, nil
}

// EndOwnership closes an ownership record, excluding it from future distribution runs.
func (s *buildingService) EndOwnership(ctx context.Context, organizationID string, ownershipID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		return err
	}

	if err := s.buildingRepo.EndOwnership(ctx, ownershipID, requestingUserID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to end ownership", slog.String("ownership_id", ownershipID))
		}
		return err
	}

	s.LogInfo(ctx, "Ownership ended", slog.String("ownership_id", ownershipID), slog.String("user_id", requestingUserID))
	return nil
}

func (s *buildingService) findBuildingInOrganization(ctx context.Context, organizationID string, buildingID string) (*domain.Building, error) {
	building, err := s.buildingRepo.FindBuildingByID(ctx, buildingID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find building", slog.String("building_id", buildingID))
		}
		return nil, err
	}
	if building.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	return building, nil
}
