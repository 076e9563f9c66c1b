package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/werkportal/accounting_backend/internal/core/ports/services"
	"github.com/werkportal/accounting_backend/internal/dto"
	"github.com/werkportal/accounting_backend/internal/middleware"
)

// invoiceHandler bridges invoice events into the ledger.
type invoiceHandler struct {
	invoiceBridgeService portssvc.InvoiceBridgeSvcFacade
}

func newInvoiceHandler(invoiceBridgeService portssvc.InvoiceBridgeSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceBridgeService: invoiceBridgeService}
}

// registerInvoiceRoutes registers routes for invoice bookings.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceBridgeService portssvc.InvoiceBridgeSvcFacade) {
	h := newInvoiceHandler(invoiceBridgeService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("/bookings", h.createInvoiceBooking)
	}
}

func (h *invoiceHandler) createInvoiceBooking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.InvoiceBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvoiceBooking", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.invoiceBridgeService.CreateInvoiceBooking(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to book invoice")
		return
	}

	c.JSON(http.StatusCreated, resp)
}
