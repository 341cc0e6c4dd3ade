package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gilmry/koprogo-sub003/internal/apperrors"
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	portsrepo "github.com/gilmry/koprogo-sub003/internal/core/ports/repositories"
	"github.com/gilmry/koprogo-sub003/internal/models"
	"github.com/gilmry/koprogo-sub003/internal/utils/mapping"
)

type PgxOrganizationRepository struct {
	BaseRepository
}

func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

const organizationColumns = `organization_id, name, vat_number, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanOrganization(row pgx.Row) (models.Organization, error) {
	var m models.Organization
	err := row.Scan(
		&m.OrganizationID,
		&m.Name,
		&m.VATNumber,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveOrganization persists a new organization.
func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, organization domain.Organization) error {
	m := mapping.ToModelOrganization(organization)
	query := `
		INSERT INTO organizations (` + organizationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.OrganizationID,
		m.Name,
		m.VATNumber,
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
		return apperrors.NewAppError(500, "failed to save organization "+m.OrganizationID, err)
	}
	return nil
}

// FindOrganizationByID retrieves an organization by its ID.
func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE organization_id = $1;`
	m, err := scanOrganization(r.Pool.QueryRow(ctx, query, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find organization by ID "+organizationID, err)
	}
	d := mapping.ToDomainOrganization(m)
	return &d, nil
}

// FindUserOrganization retrieves the membership of a user in an organization.
func (r *PgxOrganizationRepository) FindUserOrganization(ctx context.Context, userID string, organizationID string) (*domain.UserOrganization, error) {
	query := `
		SELECT user_id, organization_id, role, joined_at
		FROM user_organizations
		WHERE user_id = $1 AND organization_id = $2;
	`
	var m models.UserOrganization
	err := r.Pool.QueryRow(ctx, query, userID, organizationID).Scan(
		&m.UserID,
		&m.OrganizationID,
		&m.Role,
		&m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find membership of user "+userID, err)
	}
	d := mapping.ToDomainUserOrganization(m)
	return &d, nil
}

// ListOrganizationsByUser retrieves the organizations a user belongs to.
func (r *PgxOrganizationRepository) ListOrganizationsByUser(ctx context.Context, userID string) ([]domain.Organization, error) {
	query := `
		SELECT o.organization_id, o.name, o.vat_number, o.is_active,
		       o.created_at, o.created_by, o.last_updated_at, o.last_updated_by
		FROM organizations o
		JOIN user_organizations uo ON o.organization_id = uo.organization_id
		WHERE uo.user_id = $1 AND uo.role != $2
		ORDER BY o.name;
	`
	rows, err := r.Pool.Query(ctx, query, userID, string(domain.RoleRemoved))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query organizations for user "+userID, err)
	}
	defer rows.Close()

	organizations := []models.Organization{}
	for rows.Next() {
		m, err := scanOrganization(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan organization row", err)
		}
		organizations = append(organizations, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating organization rows", err)
	}

	return mapping.ToDomainOrganizationSlice(organizations), nil
}

// AddUserToOrganization persists a membership record. Re-adding an existing
// member updates their role.
func (r *PgxOrganizationRepository) AddUserToOrganization(ctx context.Context, membership domain.UserOrganization) error {
	m := mapping.ToModelUserOrganization(membership)
	query := `
		INSERT INTO user_organizations (user_id, organization_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, organization_id) DO UPDATE SET role = EXCLUDED.role;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.OrganizationID,
		m.Role,
		m.JoinedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to add user "+m.UserID+" to organization "+m.OrganizationID, err)
	}
	return nil
}

// UpdateUserOrganizationRole changes the role of a member.
func (r *PgxOrganizationRepository) UpdateUserOrganizationRole(ctx context.Context, userID string, organizationID string, role domain.UserOrganizationRole) error {
	query := `
		UPDATE user_organizations
		SET role = $3
		WHERE user_id = $1 AND organization_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, organizationID, string(role))
	if err != nil {
		return apperrors.NewAppError(500, "failed to update role of user "+userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
