package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gilmry/koprogo-sub003/internal/apperrors"
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	portssvc "github.com/gilmry/koprogo-sub003/internal/core/ports/services"
	"github.com/gilmry/koprogo-sub003/internal/dto"
	"github.com/gilmry/koprogo-sub003/internal/middleware"

	"github.com/gin-gonic/gin"
)

// organizationHandler handles HTTP requests related to syndic organizations.
type organizationHandler struct {
	organizationService portssvc.OrganizationSvcFacade
}

// newOrganizationHandler creates a new organizationHandler.
func newOrganizationHandler(os portssvc.OrganizationSvcFacade) *organizationHandler {
	return &organizationHandler{
		organizationService: os,
	}
}

// registerOrganizationRoutes registers the organization routes and nests every
// organization-scoped resource under /organizations/:organization_id.
func registerOrganizationRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newOrganizationHandler(services.Organization)

	orgs := rg.Group("/organizations")
	{
		orgs.POST("", h.createOrganization)
		orgs.GET("", h.listOrganizations)
	}

	orgIDGroup := orgs.Group("/:organization_id")
	{
		orgIDGroup.GET("", h.getOrganization)
		orgIDGroup.POST("/users", h.addUserToOrganization)
		orgIDGroup.PUT("/users/:user_id/role", h.updateUserRole)
	}

	// Organization-scoped resources
	registerAccountRoutes(orgIDGroup, services.Account, services.JournalEntry)
	registerJournalEntryRoutes(orgIDGroup, services.JournalEntry)
	registerBuildingRoutes(orgIDGroup, services.Building, services.Expense, services.Budget)
	registerExpenseRoutes(orgIDGroup, services.Expense, services.Distribution)
	registerBudgetRoutes(orgIDGroup, services.Budget)
	registerOwnerRoutes(orgIDGroup, services.Building, services.Distribution)
}

// createOrganization godoc
// @Summary Create a new organization
// @Description Creates a new syndic organization with the caller as admin
// @Tags organizations
// @Accept  json
// @Produce  json
// @Param   organization body dto.CreateOrganizationRequest true "Organization details"
// @Success 201 {object} dto.OrganizationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create organization"
// @Security BearerAuth
// @Router /organizations [post]
func (h *organizationHandler) createOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	org, err := h.organizationService.CreateOrganization(c.Request.Context(), req.Name, req.VATNumber, creatorUserID)
	if err != nil {
		logger.Error("Failed to create organization", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create organization"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}

// listOrganizations godoc
// @Summary List the caller's organizations
// @Description Retrieves the organizations the logged-in user belongs to
// @Tags organizations
// @Produce  json
// @Success 200 {object} dto.ListOrganizationsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list organizations"
// @Security BearerAuth
// @Router /organizations [get]
func (h *organizationHandler) listOrganizations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orgs, err := h.organizationService.ListUserOrganizations(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list organizations", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list organizations"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListOrganizationsResponse(orgs))
}

// getOrganization godoc
// @Summary Get an organization by ID
// @Description Retrieves details for a specific organization
// @Tags organizations
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Organization not found"
// @Failure 500 {object} map[string]string "Failed to retrieve organization"
// @Security BearerAuth
// @Router /organizations/{organization_id} [get]
func (h *organizationHandler) getOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// Membership check before exposing organization details
	if err := h.organizationService.AuthorizeUserAction(c.Request.Context(), userID, organizationID, domain.RoleReadOnly); err != nil {
		respondWithError(c, logger, err, "organization")
		return
	}

	org, err := h.organizationService.FindOrganizationByID(c.Request.Context(), organizationID)
	if err != nil {
		respondWithError(c, logger, err, "organization")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// addUserToOrganization godoc
// @Summary Add a user to an organization
// @Description Adds a user to the organization with a role (admin only)
// @Tags organizations
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   membership body dto.AddOrganizationUserRequest true "User and role"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Organization or user not found"
// @Failure 500 {object} map[string]string "Failed to add user"
// @Security BearerAuth
// @Router /organizations/{organization_id}/users [post]
func (h *organizationHandler) addUserToOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	var req dto.AddOrganizationUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	addingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.organizationService.AddUserToOrganization(c.Request.Context(), addingUserID, req.UserID, organizationID, domain.UserOrganizationRole(req.Role))
	if err != nil {
		respondWithError(c, logger, err, "organization")
		return
	}

	c.Status(http.StatusNoContent)
}

// updateUserRole godoc
// @Summary Update a member's role
// @Description Changes the role of an organization member (admin only)
// @Tags organizations
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   user_id path string true "Target user ID"
// @Param   role body dto.UpdateOrganizationUserRoleRequest true "New role"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Organization or member not found"
// @Failure 500 {object} map[string]string "Failed to update role"
// @Security BearerAuth
// @Router /organizations/{organization_id}/users/{user_id}/role [put]
func (h *organizationHandler) updateUserRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	targetUserID := c.Param("user_id")
	var req dto.UpdateOrganizationUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.organizationService.UpdateUserRole(c.Request.Context(), requestingUserID, targetUserID, organizationID, domain.UserOrganizationRole(req.Role))
	if err != nil {
		respondWithError(c, logger, err, "organization")
		return
	}

	c.Status(http.StatusNoContent)
}

// respondWithError maps service errors onto HTTP status codes. The resource name
// only shows up in the 404 message.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, resource string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrStateTransition), errors.Is(err, apperrors.ErrNotEditable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrQuotaOverflow):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
