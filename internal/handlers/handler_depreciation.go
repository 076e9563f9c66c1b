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

// depreciationHandler handles HTTP requests for assets and depreciation runs.
type depreciationHandler struct {
	depreciationService portssvc.DepreciationSvcFacade
}

func newDepreciationHandler(depreciationService portssvc.DepreciationSvcFacade) *depreciationHandler {
	return &depreciationHandler{depreciationService: depreciationService}
}

// registerDepreciationRoutes registers routes related to fixed assets.
func registerDepreciationRoutes(rg *gin.RouterGroup, depreciationService portssvc.DepreciationSvcFacade) {
	h := newDepreciationHandler(depreciationService)

	assets := rg.Group("/assets")
	{
		assets.POST("", h.createAsset)
		assets.GET("/:id", h.getAsset)
	}

	depreciation := rg.Group("/depreciation")
	{
		depreciation.POST("/:depEntryID/book", h.bookDepreciation)
		depreciation.POST("/run", h.runYearlyDepreciation)
	}
}

func (h *depreciationHandler) createAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAsset", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asset, schedule, err := h.depreciationService.CreateAsset(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create asset")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAssetResponse(asset, schedule))
}

func (h *depreciationHandler) getAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	assetID := c.Param("id")

	asset, schedule, err := h.depreciationService.GetAsset(c.Request.Context(), assetID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve asset")
		return
	}

	c.JSON(http.StatusOK, dto.ToAssetResponse(asset, schedule))
}

func (h *depreciationHandler) bookDepreciation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	depEntryID := c.Param("depEntryID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.depreciationService.BookDepreciation(c.Request.Context(), depEntryID, userID); err != nil {
		respondError(c, logger, err, "Failed to book depreciation")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *depreciationHandler) runYearlyDepreciation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'year' is required and must be an integer"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.depreciationService.RunYearlyDepreciation(c.Request.Context(), year, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to run yearly depreciation")
		return
	}

	c.JSON(http.StatusOK, result)
}
