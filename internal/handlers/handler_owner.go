package handlers

import (
	"net/http"

	portssvc "github.com/gilmry/koprogo-sub003/internal/core/ports/services"
	"github.com/gilmry/koprogo-sub003/internal/dto"
	"github.com/gilmry/koprogo-sub003/internal/middleware"

	"github.com/gin-gonic/gin"
)

// ownerHandler handles HTTP requests for owners and their charge statements.
type ownerHandler struct {
	buildingService     portssvc.BuildingSvcFacade
	distributionService portssvc.DistributionSvcFacade
}

// newOwnerHandler creates a new ownerHandler.
func newOwnerHandler(bs portssvc.BuildingSvcFacade, ds portssvc.DistributionSvcFacade) *ownerHandler {
	return &ownerHandler{
		buildingService:     bs,
		distributionService: ds,
	}
}

// registerOwnerRoutes registers owner routes under an organization group.
func registerOwnerRoutes(rg *gin.RouterGroup, buildingService portssvc.BuildingSvcFacade, distributionService portssvc.DistributionSvcFacade) {
	h := newOwnerHandler(buildingService, distributionService)

	owners := rg.Group("/owners")
	{
		owners.POST("", h.createOwner)
		owners.GET("/:owner_id/distributions", h.listOwnerDistributions)
	}
}

// createOwner godoc
// @Summary Register an owner
// @Description Registers a co-owner so units can be assigned to them
// @Tags owners
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   owner body dto.CreateOwnerRequest true "Owner details"
// @Success 201 {object} domain.Owner
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to register owner"
// @Security BearerAuth
// @Router /organizations/{organization_id}/owners [post]
func (h *ownerHandler) createOwner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	var req dto.CreateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	owner, err := h.buildingService.CreateOwner(c.Request.Context(), organizationID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "owner")
		return
	}

	c.JSON(http.StatusCreated, owner)
}

// listOwnerDistributions godoc
// @Summary List an owner's charges
// @Description Retrieves a paginated list of the charge distribution rows billed
// to one owner across all expenses
// @Tags distributions
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   owner_id path string true "Owner ID"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.DistributionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Owner not found"
// @Failure 500 {object} map[string]string "Failed to list charges"
// @Security BearerAuth
// @Router /organizations/{organization_id}/owners/{owner_id}/distributions [get]
func (h *ownerHandler) listOwnerDistributions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	ownerID := c.Param("owner_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListDistributionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	distributions, err := h.distributionService.ListDistributionsByOwner(c.Request.Context(), organizationID, ownerID, userID, params)
	if err != nil {
		respondWithError(c, logger, err, "owner")
		return
	}

	c.JSON(http.StatusOK, dto.ToDistributionResponses(distributions))
}
