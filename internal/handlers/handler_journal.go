package handlers

import (
	"net/http"

	portssvc "github.com/gilmry/koprogo-sub003/internal/core/ports/services"
	"github.com/gilmry/koprogo-sub003/internal/dto"
	"github.com/gilmry/koprogo-sub003/internal/middleware"

	"github.com/gin-gonic/gin"
)

// journalEntryHandler handles HTTP requests for the journal entry ledger.
type journalEntryHandler struct {
	journalService portssvc.JournalEntrySvcFacade
}

// newJournalEntryHandler creates a new journalEntryHandler.
func newJournalEntryHandler(js portssvc.JournalEntrySvcFacade) *journalEntryHandler {
	return &journalEntryHandler{
		journalService: js,
	}
}

// registerJournalEntryRoutes registers the ledger routes under an organization group.
func registerJournalEntryRoutes(rg *gin.RouterGroup, journalService portssvc.JournalEntrySvcFacade) {
	h := newJournalEntryHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entry_id", h.getEntry)
	}
}

// createEntry godoc
// @Summary Record a journal entry
// @Description Records a balanced double-entry journal entry. Header and lines
// are persisted atomically; entries are immutable once created.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   entry body dto.CreateJournalEntryRequest true "Entry with debit and credit lines"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input or unbalanced entry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to record entry"
// @Security BearerAuth
// @Router /organizations/{organization_id}/journal-entries [post]
func (h *journalEntryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), organizationID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "journal entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Retrieves a page of the organization's entries, newest first.
// Pass the returned nextToken to fetch the following page.
// @Tags journal-entries
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Security BearerAuth
// @Router /organizations/{organization_id}/journal-entries [get]
func (h *journalEntryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.journalService.ListEntries(c.Request.Context(), organizationID, userID, params)
	if err != nil {
		respondWithError(c, logger, err, "journal entry")
		return
	}

	c.JSON(http.StatusOK, page)
}

// getEntry godoc
// @Summary Get a journal entry by ID
// @Description Retrieves one entry with its lines. The balance invariant is
// re-verified on the loaded data.
// @Tags journal-entries
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Security BearerAuth
// @Router /organizations/{organization_id}/journal-entries/{entry_id} [get]
func (h *journalEntryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), organizationID, entryID, userID)
	if err != nil {
		respondWithError(c, logger, err, "journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}
