package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gilmry/koprogo-sub003/internal/apperrors"
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	portsrepo "github.com/gilmry/koprogo-sub003/internal/core/ports/repositories"
	"github.com/gilmry/koprogo-sub003/internal/models"
	"github.com/gilmry/koprogo-sub003/internal/utils/mapping"
)

type PgxBuildingRepository struct {
	BaseRepository
}

// newPgxBuildingRepository creates a new repository for buildings, units,
// owners and ownership records.
func newPgxBuildingRepository(pool *pgxpool.Pool) portsrepo.BuildingRepositoryFacade {
	return &PgxBuildingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.BuildingRepositoryFacade = (*PgxBuildingRepository)(nil)

const buildingColumns = `building_id, organization_id, name, address, city, postal_code, total_units, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanBuilding(row pgx.Row) (models.Building, error) {
	var m models.Building
	err := row.Scan(
		&m.BuildingID,
		&m.OrganizationID,
		&m.Name,
		&m.Address,
		&m.City,
		&m.PostalCode,
		&m.TotalUnits,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveBuilding persists a new building.
func (r *PgxBuildingRepository) SaveBuilding(ctx context.Context, building domain.Building) error {
	m := mapping.ToModelBuilding(building)
	query := `
		INSERT INTO buildings (` + buildingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BuildingID,
		m.OrganizationID,
		m.Name,
		m.Address,
		m.City,
		m.PostalCode,
		m.TotalUnits,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save building "+m.BuildingID, err)
	}
	return nil
}

// FindBuildingByID retrieves a building by its ID.
func (r *PgxBuildingRepository) FindBuildingByID(ctx context.Context, buildingID string) (*domain.Building, error) {
	query := `SELECT ` + buildingColumns + ` FROM buildings WHERE building_id = $1;`
	m, err := scanBuilding(r.Pool.QueryRow(ctx, query, buildingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find building by ID "+buildingID, err)
	}
	d := mapping.ToDomainBuilding(m)
	return &d, nil
}

// ListBuildingsByOrganization retrieves all buildings managed by an organization.
func (r *PgxBuildingRepository) ListBuildingsByOrganization(ctx context.Context, organizationID string) ([]domain.Building, error) {
	query := `
		SELECT ` + buildingColumns + `
		FROM buildings
		WHERE organization_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query buildings for organization "+organizationID, err)
	}
	defer rows.Close()

	buildings := []models.Building{}
	for rows.Next() {
		m, err := scanBuilding(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan building row", err)
		}
		buildings = append(buildings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating building rows", err)
	}

	return mapping.ToDomainBuildingSlice(buildings), nil
}

// SaveUnit persists a new unit.
func (r *PgxBuildingRepository) SaveUnit(ctx context.Context, unit domain.Unit) error {
	m := mapping.ToModelUnit(unit)
	query := `
		INSERT INTO units (unit_id, building_id, reference, floor,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UnitID,
		m.BuildingID,
		m.Reference,
		m.Floor,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save unit "+m.UnitID, err)
	}
	return nil
}

// ListUnitsByBuilding retrieves all units of a building.
func (r *PgxBuildingRepository) ListUnitsByBuilding(ctx context.Context, buildingID string) ([]domain.Unit, error) {
	query := `
		SELECT unit_id, building_id, reference, floor,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM units
		WHERE building_id = $1
		ORDER BY reference;
	`
	rows, err := r.Pool.Query(ctx, query, buildingID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query units for building "+buildingID, err)
	}
	defer rows.Close()

	units := []models.Unit{}
	for rows.Next() {
		var m models.Unit
		err := rows.Scan(
			&m.UnitID,
			&m.BuildingID,
			&m.Reference,
			&m.Floor,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan unit row", err)
		}
		units = append(units, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating unit rows", err)
	}

	return mapping.ToDomainUnitSlice(units), nil
}

// SaveOwner persists a new owner.
func (r *PgxBuildingRepository) SaveOwner(ctx context.Context, owner domain.Owner) error {
	m := mapping.ToModelOwner(owner)
	query := `
		INSERT INTO owners (owner_id, first_name, last_name, email,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.OwnerID,
		m.FirstName,
		m.LastName,
		m.Email,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save owner "+m.OwnerID, err)
	}
	return nil
}

// FindOwnerByID retrieves an owner by their ID.
func (r *PgxBuildingRepository) FindOwnerByID(ctx context.Context, ownerID string) (*domain.Owner, error) {
	query := `
		SELECT owner_id, first_name, last_name, email,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM owners
		WHERE owner_id = $1;
	`
	var m models.Owner
	err := r.Pool.QueryRow(ctx, query, ownerID).Scan(
		&m.OwnerID,
		&m.FirstName,
		&m.LastName,
		&m.Email,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find owner by ID "+ownerID, err)
	}
	d := mapping.ToDomainOwner(m)
	return &d, nil
}

// SaveOwnership persists a new ownership record.
func (r *PgxBuildingRepository) SaveOwnership(ctx context.Context, ownership domain.UnitOwnership) error {
	m := mapping.ToModelUnitOwnership(ownership)
	query := `
		INSERT INTO unit_ownerships (ownership_id, unit_id, owner_id, quota_percentage, start_date, end_date,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.OwnershipID,
		m.UnitID,
		m.OwnerID,
		m.QuotaPercentage,
		m.StartDate,
		m.EndDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save ownership "+m.OwnershipID, err)
	}
	return nil
}

// FindActiveOwnershipsByBuilding retrieves the currently active ownership
// records of a building's units. Ended ownerships are excluded.
func (r *PgxBuildingRepository) FindActiveOwnershipsByBuilding(ctx context.Context, buildingID string) ([]domain.UnitOwnership, error) {
	query := `
		SELECT uo.ownership_id, uo.unit_id, uo.owner_id, uo.quota_percentage, uo.start_date, uo.end_date,
		       uo.created_at, uo.created_by, uo.last_updated_at, uo.last_updated_by
		FROM unit_ownerships uo
		JOIN units u ON uo.unit_id = u.unit_id
		WHERE u.building_id = $1 AND uo.end_date IS NULL
		ORDER BY u.reference;
	`
	rows, err := r.Pool.Query(ctx, query, buildingID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ownerships for building "+buildingID, err)
	}
	defer rows.Close()

	ownerships := []models.UnitOwnership{}
	for rows.Next() {
		var m models.UnitOwnership
		err := rows.Scan(
			&m.OwnershipID,
			&m.UnitID,
			&m.OwnerID,
			&m.QuotaPercentage,
			&m.StartDate,
			&m.EndDate,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ownership row", err)
		}
		ownerships = append(ownerships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ownership rows", err)
	}

	return mapping.ToDomainUnitOwnershipSlice(ownerships), nil
}

// EndOwnership sets the end date of an ownership, excluding it from future
// distribution runs. Already-ended ownerships are left untouched.
func (r *PgxBuildingRepository) EndOwnership(ctx context.Context, ownershipID string, userID string) error {
	now := time.Now().UTC()
	query := `
		UPDATE unit_ownerships
		SET end_date = $2, last_updated_at = $2, last_updated_by = $3
		WHERE ownership_id = $1 AND end_date IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, ownershipID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to end ownership "+ownershipID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
