package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// InvoiceLink connects an issued invoice to the ledger entries that record it.
type InvoiceLink struct {
	InvoiceID  string
	EntryID    string
	VATEntryID *string
	CreatedBy  string
	CreatedAt  time.Time
}

// InvoiceLinkRepositoryFacade persists the at-most-once link between an
// invoice and its ledger entries. The link row's primary key on the invoice
// id is what makes the bridge idempotent.
type InvoiceLinkRepositoryFacade interface {
	// FindInvoiceLink retrieves the link for an invoice, ErrNotFound if none.
	FindInvoiceLink(ctx context.Context, invoiceID string) (*InvoiceLink, error)

	// SaveInvoiceLinkInTx inserts the link within the caller's transaction;
	// a second link for the same invoice fails with ErrDuplicate.
	SaveInvoiceLinkInTx(ctx context.Context, tx pgx.Tx, link InvoiceLink) error
}

// InvoiceLinkRepositoryWithTx extends the facade with transaction capabilities.
type InvoiceLinkRepositoryWithTx interface {
	InvoiceLinkRepositoryFacade
	TransactionManager
}
