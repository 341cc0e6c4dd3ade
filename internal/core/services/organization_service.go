package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gilmry/koprogo-sub003/internal/apperrors"
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	portsrepo "github.com/gilmry/koprogo-sub003/internal/core/ports/repositories"
	portssvc "github.com/gilmry/koprogo-sub003/internal/core/ports/services"
	"github.com/gilmry/koprogo-sub003/internal/middleware"
)

// OrganizationService handles business logic related to organizations and memberships.
type OrganizationService struct {
	organizationRepo portsrepo.OrganizationRepositoryFacade
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(or portsrepo.OrganizationRepositoryFacade) portssvc.OrganizationSvcFacade {
	return &OrganizationService{
		organizationRepo: or,
	}
}

// Ensure OrganizationService implements the portssvc.OrganizationSvcFacade interface
var _ portssvc.OrganizationSvcFacade = (*OrganizationService)(nil)

// CreateOrganization creates a new organization and makes the creator the initial admin.
func (s *OrganizationService) CreateOrganization(ctx context.Context, name string, vatNumber string, creatorUserID string) (*domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if name == "" {
		return nil, fmt.Errorf("%w: organization name is required", apperrors.ErrValidation)
	}

	now := time.Now()
	newOrganizationID := uuid.NewString()

	organization := domain.Organization{
		OrganizationID: newOrganizationID,
		Name:           name,
		VATNumber:      vatNumber,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.organizationRepo.SaveOrganization(ctx, organization); err != nil {
		logger.Error("Failed to save organization in repository", slog.String("error", err.Error()), slog.String("organization_name", name))
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	// Add the creator as the initial admin
	membership := domain.UserOrganization{
		UserID:         creatorUserID,
		OrganizationID: newOrganizationID,
		Role:           domain.RoleAdmin,
		JoinedAt:       now,
	}
	if err := s.organizationRepo.AddUserToOrganization(ctx, membership); err != nil {
		logger.Error("Failed to add creator as admin to new organization", slog.String("error", err.Error()), slog.String("organization_id", newOrganizationID), slog.String("user_id", creatorUserID))
		return nil, fmt.Errorf("failed to add creator membership: %w", err)
	}

	logger.Info("Organization created successfully", slog.String("organization_id", newOrganizationID), slog.String("creator_user_id", creatorUserID))
	return &organization, nil
}

// AddUserToOrganization adds a user to an organization with a specific role.
func (s *OrganizationService) AddUserToOrganization(ctx context.Context, addingUserID, targetUserID, organizationID string, role domain.UserOrganizationRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Only admins may manage memberships
	if err := s.AuthorizeUserAction(ctx, addingUserID, organizationID, domain.RoleAdmin); err != nil {
		return err
	}

	now := time.Now()
	membership := domain.UserOrganization{
		UserID:         targetUserID,
		OrganizationID: organizationID,
		Role:           role,
		JoinedAt:       now,
	}

	if err := s.organizationRepo.AddUserToOrganization(ctx, membership); err != nil {
		logger.Error("Failed to add user to organization in repository", slog.String("error", err.Error()), slog.String("target_user_id", targetUserID), slog.String("organization_id", organizationID))
		return fmt.Errorf("failed to add user %s to organization %s: %w", targetUserID, organizationID, err)
	}

	logger.Info("User added to organization successfully", slog.String("target_user_id", targetUserID), slog.String("organization_id", organizationID), slog.String("role", string(role)), slog.String("added_by_user_id", addingUserID))
	return nil
}

// UpdateUserRole changes the role of an existing member.
func (s *OrganizationService) UpdateUserRole(ctx context.Context, requestingUserID, targetUserID, organizationID string, newRole domain.UserOrganizationRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		return err
	}

	// The membership must already exist for a role change.
	if _, err := s.organizationRepo.FindUserOrganization(ctx, targetUserID, organizationID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Role update target is not a member", slog.String("target_user_id", targetUserID), slog.String("organization_id", organizationID))
			return apperrors.ErrNotFound
		}
		logger.Error("Failed to check membership for role update", slog.String("error", err.Error()), slog.String("target_user_id", targetUserID), slog.String("organization_id", organizationID))
		return fmt.Errorf("failed to check membership: %w", err)
	}

	if err := s.organizationRepo.UpdateUserOrganizationRole(ctx, targetUserID, organizationID, newRole); err != nil {
		logger.Error("Failed to update member role in repository", slog.String("error", err.Error()), slog.String("target_user_id", targetUserID), slog.String("organization_id", organizationID))
		return fmt.Errorf("failed to update role of user %s in organization %s: %w", targetUserID, organizationID, err)
	}

	logger.Info("Member role updated successfully", slog.String("target_user_id", targetUserID), slog.String("organization_id", organizationID), slog.String("new_role", string(newRole)))
	return nil
}

// ListUserOrganizations retrieves the list of organizations a given user belongs to.
func (s *OrganizationService) ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	organizations, err := s.organizationRepo.ListOrganizationsByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to list organizations for user from repository", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list organizations for user %s: %w", userID, err)
	}

	if organizations == nil {
		return []domain.Organization{}, nil // Return empty slice, not nil
	}

	logger.Debug("Organizations listed successfully for user", slog.String("user_id", userID), slog.Int("count", len(organizations)))
	return organizations, nil
}

// FindOrganizationByID retrieves an organization by its ID.
func (s *OrganizationService) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	organization, err := s.organizationRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find organization by ID in repository", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		}
		return nil, err
	}
	logger.Debug("Organization found by ID", slog.String("organization_id", organizationID))
	return organization, nil
}

// AuthorizeUserAction checks if a user has the required role (or higher) within an organization.
// Returns apperrors.ErrNotFound if user/organization doesn't exist or user not member.
// Returns apperrors.ErrForbidden if user is a member but lacks the required role.
// Returns nil if authorized.
func (s *OrganizationService) AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.UserOrganizationRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	membership, err := s.organizationRepo.FindUserOrganization(ctx, userID, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Authorization failed: User or organization not found, or user not a member", slog.String("user_id", userID), slog.String("organization_id", organizationID))
			// Return NotFound to avoid revealing organization existence
			return apperrors.ErrNotFound
		}
		logger.Error("Failed to check user organization role in repository", slog.String("error", err.Error()), slog.String("user_id", userID), slog.String("organization_id", organizationID))
		return fmt.Errorf("failed to check authorization: %w", err)
	}

	if membership.Role.Meets(requiredRole) {
		return nil
	}

	logger.Warn("Authorization failed: User lacks required role", slog.String("user_id", userID), slog.String("organization_id", organizationID), slog.String("user_role", string(membership.Role)), slog.String("required_role", string(requiredRole)))
	return apperrors.ErrForbidden
}
