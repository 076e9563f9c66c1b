package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/werkportal/accounting_backend/internal/core/domain"
	portssvc "github.com/werkportal/accounting_backend/internal/core/ports/services"
	"github.com/werkportal/accounting_backend/internal/dto"
	"github.com/werkportal/accounting_backend/internal/middleware"
)

// bookingHandler handles HTTP requests for journal entries and stornos.
type bookingHandler struct {
	bookingService portssvc.BookingSvcFacade
	ledgerService  portssvc.LedgerSvcFacade
}

func newBookingHandler(bookingService portssvc.BookingSvcFacade, ledgerService portssvc.LedgerSvcFacade) *bookingHandler {
	return &bookingHandler{
		bookingService: bookingService,
		ledgerService:  ledgerService,
	}
}

// registerBookingRoutes registers routes related to the journal.
func registerBookingRoutes(rg *gin.RouterGroup, bookingService portssvc.BookingSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := newBookingHandler(bookingService, ledgerService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createBooking)
		entries.GET("", h.listEntries)
		entries.GET("/source", h.listEntriesBySource)
		entries.GET("/:id", h.getEntry)
		entries.POST("/:id/storno", h.createStorno)
	}
}

func (h *bookingHandler) createBooking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBooking", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.bookingService.CreateBooking(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create booking")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func (h *bookingHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.ledgerService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list entries")
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *bookingHandler) listEntriesBySource(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	sourceType := c.Query("sourceType")
	sourceID := c.Query("sourceID")
	if sourceType == "" || sourceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameters 'sourceType' and 'sourceID' are required"})
		return
	}

	entries, err := h.ledgerService.GetEntriesBySource(c.Request.Context(), domain.SourceType(sourceType), sourceID)
	if err != nil {
		respondError(c, logger, err, "Failed to list entries by source")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponses(entries))
}

func (h *bookingHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	entry, err := h.ledgerService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *bookingHandler) createStorno(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	var req dto.StornoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateStorno", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	storno, err := h.bookingService.CreateStorno(c.Request.Context(), entryID, req.Reason, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to reverse entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(storno))
}
