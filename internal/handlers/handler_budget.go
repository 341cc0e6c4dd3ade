package handlers

import (
	"net/http"

	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	portssvc "github.com/gilmry/koprogo-sub003/internal/core/ports/services"
	"github.com/gilmry/koprogo-sub003/internal/dto"
	"github.com/gilmry/koprogo-sub003/internal/middleware"

	"github.com/gin-gonic/gin"
)

// budgetHandler handles HTTP requests for the annual budget lifecycle.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

// newBudgetHandler creates a new budgetHandler.
func newBudgetHandler(bs portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{
		budgetService: bs,
	}
}

// registerBudgetRoutes registers budget routes under an organization group. The
// lifecycle transitions are separate POST endpoints rather than a generic status
// update so each transition keeps its own authorization and payload.
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(budgetService)

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.createBudget)
	}

	budgetIDGroup := budgets.Group("/:budget_id")
	{
		budgetIDGroup.GET("", h.getBudget)
		budgetIDGroup.PUT("/amounts", h.updateBudgetAmounts)
		budgetIDGroup.POST("/submit", h.submitBudget)
		budgetIDGroup.POST("/approve", h.approveBudget)
		budgetIDGroup.POST("/reject", h.rejectBudget)
		budgetIDGroup.POST("/archive", h.archiveBudget)
	}
}

// createBudget godoc
// @Summary Create a draft budget
// @Description Creates a draft budget for a (building, fiscal year) pair. Only
// one budget may exist per building and year.
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   budget body dto.CreateBudgetRequest true "Budget details"
// @Success 201 {object} dto.BudgetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Building not found"
// @Failure 409 {object} map[string]string "Budget already exists for that year"
// @Failure 500 {object} map[string]string "Failed to create budget"
// @Security BearerAuth
// @Router /organizations/{organization_id}/budgets [post]
func (h *budgetHandler) createBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), organizationID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "budget")
		return
	}

	c.JSON(http.StatusCreated, dto.ToBudgetResponse(budget))
}

// getBudget godoc
// @Summary Get a budget by ID
// @Description Retrieves one budget with its computed totals and monthly provision
// @Tags budgets
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   budget_id path string true "Budget ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 500 {object} map[string]string "Failed to retrieve budget"
// @Security BearerAuth
// @Router /organizations/{organization_id}/budgets/{budget_id} [get]
func (h *budgetHandler) getBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	budgetID := c.Param("budget_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budget, err := h.budgetService.GetBudgetByID(c.Request.Context(), organizationID, budgetID, userID)
	if err != nil {
		respondWithError(c, logger, err, "budget")
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// updateBudgetAmounts godoc
// @Summary Update a budget's amounts
// @Description Replaces both amounts of a budget while it is still editable
// (draft or rejected). Totals and the monthly provision are recomputed.
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   budget_id path string true "Budget ID"
// @Param   amounts body dto.UpdateBudgetAmountsRequest true "New amounts"
// @Success 200 {object} dto.BudgetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 409 {object} map[string]string "Budget not editable in its current state"
// @Failure 500 {object} map[string]string "Failed to update budget"
// @Security BearerAuth
// @Router /organizations/{organization_id}/budgets/{budget_id}/amounts [put]
func (h *budgetHandler) updateBudgetAmounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	budgetID := c.Param("budget_id")
	var req dto.UpdateBudgetAmountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budget, err := h.budgetService.UpdateBudgetAmounts(c.Request.Context(), organizationID, budgetID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "budget")
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// submitBudget godoc
// @Summary Submit a budget
// @Description Moves a draft or rejected budget to submitted, freezing its amounts
// @Tags budgets
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   budget_id path string true "Budget ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 409 {object} map[string]string "Transition not allowed from the current state"
// @Failure 500 {object} map[string]string "Failed to submit budget"
// @Security BearerAuth
// @Router /organizations/{organization_id}/budgets/{budget_id}/submit [post]
func (h *budgetHandler) submitBudget(c *gin.Context) {
	h.transition(c, func(c *gin.Context, organizationID, budgetID, userID string) (*domain.Budget, error) {
		return h.budgetService.SubmitBudget(c.Request.Context(), organizationID, budgetID, userID)
	})
}

// approveBudget godoc
// @Summary Approve a budget
// @Description Moves a submitted budget to approved, recording the general
// meeting that voted it
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   budget_id path string true "Budget ID"
// @Param   approval body dto.ApproveBudgetRequest true "Approving meeting"
// @Success 200 {object} dto.BudgetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 409 {object} map[string]string "Transition not allowed from the current state"
// @Failure 500 {object} map[string]string "Failed to approve budget"
// @Security BearerAuth
// @Router /organizations/{organization_id}/budgets/{budget_id}/approve [post]
func (h *budgetHandler) approveBudget(c *gin.Context) {
	var req dto.ApproveBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	h.transition(c, func(c *gin.Context, organizationID, budgetID, userID string) (*domain.Budget, error) {
		return h.budgetService.ApproveBudget(c.Request.Context(), organizationID, budgetID, req.MeetingID, userID)
	})
}

// rejectBudget godoc
// @Summary Reject a budget
// @Description Moves a submitted budget back to rejected so it can be reworked
// @Tags budgets
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   budget_id path string true "Budget ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 409 {object} map[string]string "Transition not allowed from the current state"
// @Failure 500 {object} map[string]string "Failed to reject budget"
// @Security BearerAuth
// @Router /organizations/{organization_id}/budgets/{budget_id}/reject [post]
func (h *budgetHandler) rejectBudget(c *gin.Context) {
	h.transition(c, func(c *gin.Context, organizationID, budgetID, userID string) (*domain.Budget, error) {
		return h.budgetService.RejectBudget(c.Request.Context(), organizationID, budgetID, userID)
	})
}

// archiveBudget godoc
// @Summary Archive a budget
// @Description Moves an approved budget to the terminal archived state
// @Tags budgets
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   budget_id path string true "Budget ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 409 {object} map[string]string "Transition not allowed from the current state"
// @Failure 500 {object} map[string]string "Failed to archive budget"
// @Security BearerAuth
// @Router /organizations/{organization_id}/budgets/{budget_id}/archive [post]
func (h *budgetHandler) archiveBudget(c *gin.Context) {
	h.transition(c, func(c *gin.Context, organizationID, budgetID, userID string) (*domain.Budget, error) {
		return h.budgetService.ArchiveBudget(c.Request.Context(), organizationID, budgetID, userID)
	})
}

// transition runs one lifecycle operation with the shared parameter plumbing.
func (h *budgetHandler) transition(c *gin.Context, op func(c *gin.Context, organizationID, budgetID, userID string) (*domain.Budget, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	budgetID := c.Param("budget_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budget, err := op(c, organizationID, budgetID, userID)
	if err != nil {
		respondWithError(c, logger, err, "budget")
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}
