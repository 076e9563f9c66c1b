package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/werkportal/accounting_backend/internal/core/ports/services"
	"github.com/werkportal/accounting_backend/internal/dto"
	"github.com/werkportal/accounting_backend/internal/middleware"
)

// provisionHandler handles HTTP requests for provisions.
type provisionHandler struct {
	provisionService portssvc.ProvisionSvcFacade
}

func newProvisionHandler(provisionService portssvc.ProvisionSvcFacade) *provisionHandler {
	return &provisionHandler{provisionService: provisionService}
}

// registerProvisionRoutes registers routes related to provisions.
func registerProvisionRoutes(rg *gin.RouterGroup, provisionService portssvc.ProvisionSvcFacade) {
	h := newProvisionHandler(provisionService)

	provisions := rg.Group("/provisions")
	{
		provisions.POST("", h.createProvision)
		provisions.GET("", h.listProvisions)
		provisions.GET("/totals", h.getActiveTotals)
		provisions.GET("/:id", h.getProvision)
		provisions.POST("/:id/book", h.bookProvision)
		provisions.POST("/:id/release", h.releaseProvision)
	}
}

func (h *provisionHandler) createProvision(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateProvisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProvision", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	provision, err := h.provisionService.CreateProvision(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create provision")
		return
	}

	c.JSON(http.StatusCreated, dto.ToProvisionResponse(provision))
}

func (h *provisionHandler) listProvisions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'year' is required and must be an integer"})
		return
	}

	provisions, err := h.provisionService.ListProvisionsByYear(c.Request.Context(), year)
	if err != nil {
		respondError(c, logger, err, "Failed to list provisions")
		return
	}

	c.JSON(http.StatusOK, dto.ToProvisionResponses(provisions))
}

func (h *provisionHandler) getActiveTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'year' is required and must be an integer"})
		return
	}

	totals, err := h.provisionService.ActiveTotals(c.Request.Context(), year)
	if err != nil {
		respondError(c, logger, err, "Failed to compute provision totals")
		return
	}

	c.JSON(http.StatusOK, totals)
}

func (h *provisionHandler) getProvision(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	provisionID := c.Param("id")

	provision, err := h.provisionService.GetProvision(c.Request.Context(), provisionID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve provision")
		return
	}

	c.JSON(http.StatusOK, dto.ToProvisionResponse(provision))
}

func (h *provisionHandler) bookProvision(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	provisionID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.provisionService.Book(c.Request.Context(), provisionID, userID); err != nil {
		respondError(c, logger, err, "Failed to book provision")
		return
	}

	provision, err := h.provisionService.GetProvision(c.Request.Context(), provisionID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve provision")
		return
	}

	c.JSON(http.StatusOK, dto.ToProvisionResponse(provision))
}

func (h *provisionHandler) releaseProvision(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	provisionID := c.Param("id")

	var req dto.ReleaseProvisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReleaseProvision", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.provisionService.Release(c.Request.Context(), provisionID, userID, req.Amount, req.Reason); err != nil {
		respondError(c, logger, err, "Failed to release provision")
		return
	}

	provision, err := h.provisionService.GetProvision(c.Request.Context(), provisionID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve provision")
		return
	}

	c.JSON(http.StatusOK, dto.ToProvisionResponse(provision))
}
