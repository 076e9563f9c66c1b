package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/werkportal/accounting_backend/internal/core/ports/services"
	"github.com/werkportal/accounting_backend/internal/dto"
	"github.com/werkportal/accounting_backend/internal/middleware"
)

// closingHandler handles HTTP requests for the fiscal year closing workflow.
type closingHandler struct {
	closingService portssvc.ClosingSvcFacade
}

func newClosingHandler(closingService portssvc.ClosingSvcFacade) *closingHandler {
	return &closingHandler{closingService: closingService}
}

// registerClosingRoutes registers routes related to fiscal period closing.
func registerClosingRoutes(rg *gin.RouterGroup, closingService portssvc.ClosingSvcFacade) {
	h := newClosingHandler(closingService)

	closing := rg.Group("/closing/:year")
	{
		closing.GET("", h.getStatus)
		closing.POST("/reconcile", h.transition(portssvc.ClosingSvcFacade.Reconcile, "Failed to reconcile fiscal year"))
		closing.POST("/close", h.transition(portssvc.ClosingSvcFacade.Close, "Failed to close fiscal year"))
		closing.POST("/finalize", h.transition(portssvc.ClosingSvcFacade.Finalize, "Failed to finalize fiscal year"))
		closing.POST("/unlock", h.transition(portssvc.ClosingSvcFacade.Unlock, "Failed to unlock fiscal year"))
	}
}

func (h *closingHandler) getStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year, userID, ok := h.yearAndUser(c)
	if !ok {
		return
	}

	status, err := h.closingService.GetStatus(c.Request.Context(), year, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to get closing status")
		return
	}

	c.JSON(http.StatusOK, status)
}

// transition builds a handler for one closing state change; they only differ
// in the service method and the failure message.
func (h *closingHandler) transition(op func(portssvc.ClosingSvcFacade, context.Context, int, string) (*dto.ClosingResponse, error), fallbackMsg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())

		year, userID, ok := h.yearAndUser(c)
		if !ok {
			return
		}

		status, err := op(h.closingService, c.Request.Context(), year, userID)
		if err != nil {
			respondError(c, logger, err, fallbackMsg)
			return
		}

		c.JSON(http.StatusOK, status)
	}
}

func (h *closingHandler) yearAndUser(c *gin.Context) (int, string, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Path parameter 'year' must be an integer"})
		return 0, "", false
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, "", false
	}

	return year, userID, true
}
