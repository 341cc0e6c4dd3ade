package handlers

import (
	"net/http"

	portssvc "github.com/gilmry/koprogo-sub003/internal/core/ports/services"
	"github.com/gilmry/koprogo-sub003/internal/dto"
	"github.com/gilmry/koprogo-sub003/internal/middleware"

	"github.com/gin-gonic/gin"
)

// buildingHandler handles HTTP requests for buildings, units and ownerships.
type buildingHandler struct {
	buildingService portssvc.BuildingSvcFacade
	expenseService  portssvc.ExpenseSvcFacade
	budgetService   portssvc.BudgetSvcFacade
}

// newBuildingHandler creates a new buildingHandler.
func newBuildingHandler(bs portssvc.BuildingSvcFacade, es portssvc.ExpenseSvcFacade, bds portssvc.BudgetSvcFacade) *buildingHandler {
	return &buildingHandler{
		buildingService: bs,
		expenseService:  es,
		budgetService:   bds,
	}
}

// registerBuildingRoutes registers building routes under an organization group.
// Building-scoped expense and budget listings live here because their URLs hang
// off the building.
func registerBuildingRoutes(rg *gin.RouterGroup, buildingService portssvc.BuildingSvcFacade, expenseService portssvc.ExpenseSvcFacade, budgetService portssvc.BudgetSvcFacade) {
	h := newBuildingHandler(buildingService, expenseService, budgetService)

	buildings := rg.Group("/buildings")
	{
		buildings.POST("", h.createBuilding)
		buildings.GET("", h.listBuildings)
	}

	buildingIDGroup := buildings.Group("/:building_id")
	{
		buildingIDGroup.GET("", h.getBuilding)
		buildingIDGroup.POST("/units", h.createUnit)
		buildingIDGroup.GET("/ownerships", h.listActiveOwnerships)
		buildingIDGroup.POST("/ownerships", h.createOwnership)
		buildingIDGroup.GET("/expenses", h.listExpenses)
		buildingIDGroup.GET("/budgets", h.listBudgets)
	}

	// Ownership closure sits at organization level since the ownership ID alone
	// identifies the record.
	rg.DELETE("/ownerships/:ownership_id", h.endOwnership)
}

// createBuilding godoc
// @Summary Register a building
// @Description Registers a building under the organization
// @Tags buildings
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   building body dto.CreateBuildingRequest true "Building details"
// @Success 201 {object} dto.BuildingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to create building"
// @Security BearerAuth
// @Router /organizations/{organization_id}/buildings [post]
func (h *buildingHandler) createBuilding(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	var req dto.CreateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	building, err := h.buildingService.CreateBuilding(c.Request.Context(), organizationID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "building")
		return
	}

	c.JSON(http.StatusCreated, dto.ToBuildingResponse(building))
}

// listBuildings godoc
// @Summary List buildings
// @Description Retrieves all buildings managed by the organization
// @Tags buildings
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Success 200 {array} dto.BuildingResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list buildings"
// @Security BearerAuth
// @Router /organizations/{organization_id}/buildings [get]
func (h *buildingHandler) listBuildings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	buildings, err := h.buildingService.ListBuildings(c.Request.Context(), organizationID, userID)
	if err != nil {
		respondWithError(c, logger, err, "building")
		return
	}

	responses := make([]dto.BuildingResponse, len(buildings))
	for i := range buildings {
		responses[i] = dto.ToBuildingResponse(&buildings[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getBuilding godoc
// @Summary Get a building by ID
// @Description Retrieves details for one building of the organization
// @Tags buildings
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   building_id path string true "Building ID"
// @Success 200 {object} dto.BuildingResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Building not found"
// @Failure 500 {object} map[string]string "Failed to retrieve building"
// @Security BearerAuth
// @Router /organizations/{organization_id}/buildings/{building_id} [get]
func (h *buildingHandler) getBuilding(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	buildingID := c.Param("building_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	building, err := h.buildingService.GetBuildingByID(c.Request.Context(), organizationID, buildingID, userID)
	if err != nil {
		respondWithError(c, logger, err, "building")
		return
	}

	c.JSON(http.StatusOK, dto.ToBuildingResponse(building))
}

// createUnit godoc
// @Summary Add a unit to a building
// @Description Adds a unit (apartment, cellar, parking spot) to a building
// @Tags buildings
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   building_id path string true "Building ID"
// @Param   unit body dto.CreateUnitRequest true "Unit details"
// @Success 201 {object} domain.Unit
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Building not found"
// @Failure 500 {object} map[string]string "Failed to create unit"
// @Security BearerAuth
// @Router /organizations/{organization_id}/buildings/{building_id}/units [post]
func (h *buildingHandler) createUnit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	buildingID := c.Param("building_id")
	var req dto.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	unit, err := h.buildingService.CreateUnit(c.Request.Context(), organizationID, buildingID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "building")
		return
	}

	c.JSON(http.StatusCreated, unit)
}

// listActiveOwnerships godoc
// @Summary List active ownerships
// @Description Retrieves the active ownership records of a building with their
// charge quotas
// @Tags buildings
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   building_id path string true "Building ID"
// @Success 200 {array} dto.OwnershipResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Building not found"
// @Failure 500 {object} map[string]string "Failed to list ownerships"
// @Security BearerAuth
// @Router /organizations/{organization_id}/buildings/{building_id}/ownerships [get]
func (h *buildingHandler) listActiveOwnerships(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	buildingID := c.Param("building_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ownerships, err := h.buildingService.ListActiveOwnerships(c.Request.Context(), organizationID, buildingID, userID)
	if err != nil {
		respondWithError(c, logger, err, "building")
		return
	}

	responses := make([]dto.OwnershipResponse, len(ownerships))
	for i := range ownerships {
		responses[i] = dto.ToOwnershipResponse(&ownerships[i])
	}
	c.JSON(http.StatusOK, responses)
}

// createOwnership godoc
// @Summary Link an owner to a unit
// @Description Creates an ownership record with a charge quota. The aggregate of
// the building's active quotas must stay within 100%.
// @Tags buildings
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   building_id path string true "Building ID"
// @Param   ownership body dto.CreateOwnershipRequest true "Ownership details"
// @Success 201 {object} dto.OwnershipResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Building, unit or owner not found"
// @Failure 422 {object} map[string]string "Quota would push the building past 100%"
// @Failure 500 {object} map[string]string "Failed to create ownership"
// @Security BearerAuth
// @Router /organizations/{organization_id}/buildings/{building_id}/ownerships [post]
func (h *buildingHandler) createOwnership(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	buildingID := c.Param("building_id")
	var req dto.CreateOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ownership, err := h.buildingService.CreateOwnership(c.Request.Context(), organizationID, buildingID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "ownership")
		return
	}

	c.JSON(http.StatusCreated, dto.ToOwnershipResponse(ownership))
}

// listExpenses godoc
// @Summary List a building's expenses
// @Description Retrieves a paginated list of the building's expenses, newest first
// @Tags expenses
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   building_id path string true "Building ID"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Building not found"
// @Failure 500 {object} map[string]string "Failed to list expenses"
// @Security BearerAuth
// @Router /organizations/{organization_id}/buildings/{building_id}/expenses [get]
func (h *buildingHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	buildingID := c.Param("building_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	expenses, err := h.expenseService.ListExpensesByBuilding(c.Request.Context(), organizationID, buildingID, userID, params)
	if err != nil {
		respondWithError(c, logger, err, "building")
		return
	}

	c.JSON(http.StatusOK, dto.ToListExpensesResponse(expenses))
}

// listBudgets godoc
// @Summary List a building's budgets
// @Description Retrieves all budgets of a building, newest fiscal year first
// @Tags budgets
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   building_id path string true "Building ID"
// @Success 200 {object} dto.ListBudgetsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Building not found"
// @Failure 500 {object} map[string]string "Failed to list budgets"
// @Security BearerAuth
// @Router /organizations/{organization_id}/buildings/{building_id}/budgets [get]
func (h *buildingHandler) listBudgets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	buildingID := c.Param("building_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budgets, err := h.budgetService.ListBudgetsByBuilding(c.Request.Context(), organizationID, buildingID, userID)
	if err != nil {
		respondWithError(c, logger, err, "building")
		return
	}

	c.JSON(http.StatusOK, dto.ToListBudgetsResponse(budgets))
}

// endOwnership godoc
// @Summary End an ownership
// @Description Closes an ownership record, excluding it from future charge
// distribution runs
// @Tags buildings
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   ownership_id path string true "Ownership ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Ownership not found or already ended"
// @Failure 500 {object} map[string]string "Failed to end ownership"
// @Security BearerAuth
// @Router /organizations/{organization_id}/ownerships/{ownership_id} [delete]
func (h *buildingHandler) endOwnership(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	ownershipID := c.Param("ownership_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.buildingService.EndOwnership(c.Request.Context(), organizationID, ownershipID, userID); err != nil {
		respondWithError(c, logger, err, "ownership")
		return
	}

	c.Status(http.StatusNoContent)
}
