package services

import (
	"context"

	"github.com/werkportal/accounting_backend/internal/dto"
)

// InvoiceBridgeSvcFacade translates an issued invoice into balanced ledger
// entries, at most once per invoice.
type InvoiceBridgeSvcFacade interface {
	// CreateInvoiceBooking posts the receivable/revenue and receivable/VAT
	// entries for an invoice and returns the recorded link. A second call
	// for the same invoice fails with ErrConflict.
	CreateInvoiceBooking(ctx context.Context, req dto.InvoiceBookingRequest, userID string) (*dto.InvoiceBookingResponse, error)
}
