package repositories

import (
	"context"

	"github.com/gilmry/koprogo-sub003/internal/core/domain"
)

// OrganizationReader defines read operations for organizations and memberships
type OrganizationReader interface {
	// FindOrganizationByID retrieves an organization by its unique identifier.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// FindUserOrganization retrieves the membership of a user in an organization.
	FindUserOrganization(ctx context.Context, userID string, organizationID string) (*domain.UserOrganization, error)

	// ListOrganizationsByUser retrieves the organizations a user belongs to.
	ListOrganizationsByUser(ctx context.Context, userID string) ([]domain.Organization, error)
}

// OrganizationWriter defines write operations for organizations and memberships
type OrganizationWriter interface {
	// SaveOrganization persists a new organization.
	SaveOrganization(ctx context.Context, organization domain.Organization) error

	// AddUserToOrganization persists a membership record.
	AddUserToOrganization(ctx context.Context, membership domain.UserOrganization) error

	// UpdateUserOrganizationRole changes the role of a member.
	UpdateUserOrganizationRole(ctx context.Context, userID string, organizationID string, role domain.UserOrganizationRole) error
}

// OrganizationRepositoryFacade combines all organization repository interfaces
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
}
