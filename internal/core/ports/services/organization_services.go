package services

import (
	"context"

	"github.com/gilmry/koprogo-sub003/internal/core/domain"
)

// OrganizationReaderSvc defines read operations for organization data
type OrganizationReaderSvc interface {
	// FindOrganizationByID retrieves a specific organization by its ID.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListUserOrganizations retrieves the organizations a user belongs to.
	ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error)
}

// OrganizationWriterSvc defines write operations for organization data
type OrganizationWriterSvc interface {
	// CreateOrganization persists a new organization with the creator as admin.
	CreateOrganization(ctx context.Context, name string, vatNumber string, creatorUserID string) (*domain.Organization, error)
}

// OrganizationMembershipSvc defines operations for managing membership
type OrganizationMembershipSvc interface {
	// AddUserToOrganization adds a user with a specific role. Admin only.
	AddUserToOrganization(ctx context.Context, addingUserID, targetUserID, organizationID string, role domain.UserOrganizationRole) error

	// UpdateUserRole changes a member's role. Admin only.
	UpdateUserRole(ctx context.Context, requestingUserID, targetUserID, organizationID string, newRole domain.UserOrganizationRole) error
}

// OrganizationAuthorizerSvc defines operations for organization authorization
type OrganizationAuthorizerSvc interface {
	// AuthorizeUserAction checks if a user has the required role in an organization.
	AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.UserOrganizationRole) error
}

// OrganizationSvcFacade combines all organization-related service interfaces
type OrganizationSvcFacade interface {
	OrganizationReaderSvc
	OrganizationWriterSvc
	OrganizationMembershipSvc
	OrganizationAuthorizerSvc
}
