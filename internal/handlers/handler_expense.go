package handlers

import (
	"net/http"

	portssvc "github.com/gilmry/koprogo-sub003/internal/core/ports/services"
	"github.com/gilmry/koprogo-sub003/internal/dto"
	"github.com/gilmry/koprogo-sub003/internal/middleware"
	"github.com/gilmry/koprogo-sub003/internal/utils/accounting"

	"github.com/gin-gonic/gin"
)

// expenseHandler handles HTTP requests for expenses and their charge
// distributions.
type expenseHandler struct {
	expenseService      portssvc.ExpenseSvcFacade
	distributionService portssvc.DistributionSvcFacade
}

// newExpenseHandler creates a new expenseHandler.
func newExpenseHandler(es portssvc.ExpenseSvcFacade, ds portssvc.DistributionSvcFacade) *expenseHandler {
	return &expenseHandler{
		expenseService:      es,
		distributionService: ds,
	}
}

// registerExpenseRoutes registers expense routes under an organization group.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade, distributionService portssvc.DistributionSvcFacade) {
	h := newExpenseHandler(expenseService, distributionService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
	}

	expenseIDGroup := expenses.Group("/:expense_id")
	{
		expenseIDGroup.GET("", h.getExpense)
		expenseIDGroup.POST("/approve", h.approveExpense)
		expenseIDGroup.GET("/distributions", h.getDistributions)
		expenseIDGroup.POST("/distributions/recalculate", h.recalculateDistributions)
	}
}

// createExpense godoc
// @Summary Record an expense
// @Description Records a pending expense against a building
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Building not found"
// @Failure 500 {object} map[string]string "Failed to record expense"
// @Security BearerAuth
// @Router /organizations/{organization_id}/expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), organizationID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "expense")
		return
	}

	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// getExpense godoc
// @Summary Get an expense by ID
// @Description Retrieves details for one expense of the organization
// @Tags expenses
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   expense_id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 500 {object} map[string]string "Failed to retrieve expense"
// @Security BearerAuth
// @Router /organizations/{organization_id}/expenses/{expense_id} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	expenseID := c.Param("expense_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), organizationID, expenseID, userID)
	if err != nil {
		respondWithError(c, logger, err, "expense")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// approveExpense godoc
// @Summary Approve an expense
// @Description Approves a pending expense, distributes its chargeable amount
// across the building's active owners, and books the purchase journal entry.
// @Tags expenses
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   expense_id path string true "Expense ID"
// @Success 200 {object} dto.ApproveExpenseResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 409 {object} map[string]string "Expense not pending or already distributed"
// @Failure 422 {object} map[string]string "Ownership quotas exceed 100%"
// @Failure 500 {object} map[string]string "Failed to approve expense"
// @Security BearerAuth
// @Router /organizations/{organization_id}/expenses/{expense_id}/approve [post]
func (h *expenseHandler) approveExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	expenseID := c.Param("expense_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	expense, distributions, err := h.expenseService.ApproveExpense(c.Request.Context(), organizationID, expenseID, userID)
	if err != nil {
		respondWithError(c, logger, err, "expense")
		return
	}

	c.JSON(http.StatusOK, dto.ApproveExpenseResponse{
		Expense:       dto.ToExpenseResponse(expense),
		Distributions: dto.ToDistributionResponses(distributions),
		Verified:      accounting.VerifyDistributionTotal(distributions, expense.ChargeableAmount()),
	})
}

// getDistributions godoc
// @Summary Get an expense's charge distributions
// @Description Retrieves the persisted distribution batch of an expense together
// with the verification of its total.
// @Tags distributions
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   expense_id path string true "Expense ID"
// @Success 200 {object} dto.DistributionBatchResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 500 {object} map[string]string "Failed to retrieve distributions"
// @Security BearerAuth
// @Router /organizations/{organization_id}/expenses/{expense_id}/distributions [get]
func (h *expenseHandler) getDistributions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	expenseID := c.Param("expense_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), organizationID, expenseID, userID)
	if err != nil {
		respondWithError(c, logger, err, "expense")
		return
	}

	distributions, err := h.distributionService.GetDistributionsByExpense(c.Request.Context(), organizationID, expenseID, userID)
	if err != nil {
		respondWithError(c, logger, err, "expense")
		return
	}

	total := expense.ChargeableAmount()
	c.JSON(http.StatusOK, dto.DistributionBatchResponse{
		ExpenseID:     expenseID,
		Distributions: dto.ToDistributionResponses(distributions),
		TotalAmount:   total,
		Verified:      accounting.VerifyDistributionTotal(distributions, total),
	})
}

// recalculateDistributions godoc
// @Summary Recalculate an expense's distributions
// @Description Recomputes every row of the expense's batch from a corrected
// total, keeping the already-validated quotas.
// @Tags distributions
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   expense_id path string true "Expense ID"
// @Param   recalculation body dto.RecalculateDistributionsRequest true "Corrected total"
// @Success 200 {object} dto.DistributionBatchResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Expense or batch not found"
// @Failure 500 {object} map[string]string "Failed to recalculate distributions"
// @Security BearerAuth
// @Router /organizations/{organization_id}/expenses/{expense_id}/distributions/recalculate [post]
func (h *expenseHandler) recalculateDistributions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	expenseID := c.Param("expense_id")
	var req dto.RecalculateDistributionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	distributions, err := h.distributionService.RecalculateDistributions(c.Request.Context(), organizationID, expenseID, req.NewTotalAmount, userID)
	if err != nil {
		respondWithError(c, logger, err, "expense")
		return
	}

	c.JSON(http.StatusOK, dto.DistributionBatchResponse{
		ExpenseID:     expenseID,
		Distributions: dto.ToDistributionResponses(distributions),
		TotalAmount:   req.NewTotalAmount,
		Verified:      accounting.VerifyDistributionTotal(distributions, req.NewTotalAmount),
	})
}
