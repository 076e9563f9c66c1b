package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceBookingRequest carries the summary of an issued invoice to be
// recorded in the ledger. Totals must satisfy subtotal + vatAmount = total;
// SourceTransactionIDs are the business transactions the invoice documents
// and end up in the entry description for traceability.
type InvoiceBookingRequest struct {
	InvoiceID            string          `json:"invoiceID" binding:"required"`
	InvoiceNumber        string          `json:"invoiceNumber" binding:"required"`
	Subtotal             decimal.Decimal `json:"subtotal" binding:"required,gtzerodecimal"`
	VATAmount            decimal.Decimal `json:"vatAmount"`
	TotalAmount          decimal.Decimal `json:"totalAmount" binding:"required,gtzerodecimal"`
	IssueDate            time.Time       `json:"issueDate" binding:"required"`
	SourceTransactionIDs []string        `json:"sourceTransactionIDs,omitempty"`
}

// InvoiceBookingResponse returns the main ledger entry recorded for the
// invoice, for storage on the invoice record.
type InvoiceBookingResponse struct {
	InvoiceID  string  `json:"invoiceID"`
	EntryID    string  `json:"entryID"`
	VATEntryID *string `json:"vatEntryID,omitempty"`
}
