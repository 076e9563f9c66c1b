package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/werkportal/accounting_backend/internal/apperrors"
	portsrepo "github.com/werkportal/accounting_backend/internal/core/ports/repositories"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint hit.
const uniqueViolation = "23505"

type PgxInvoiceLinkRepository struct {
	BaseRepository
}

func newPgxInvoiceLinkRepository(pool *pgxpool.Pool) portsrepo.InvoiceLinkRepositoryWithTx {
	return &PgxInvoiceLinkRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceLinkRepositoryWithTx = (*PgxInvoiceLinkRepository)(nil)

func (r *PgxInvoiceLinkRepository) FindInvoiceLink(ctx context.Context, invoiceID string) (*portsrepo.InvoiceLink, error) {
	var link portsrepo.InvoiceLink
	err := r.Pool.QueryRow(ctx, `
		SELECT invoice_id, entry_id, vat_entry_id, created_by, created_at
		FROM invoice_bookings WHERE invoice_id = $1;
	`, invoiceID).Scan(
		&link.InvoiceID,
		&link.EntryID,
		&link.VATEntryID,
		&link.CreatedBy,
		&link.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan invoice link "+invoiceID, err)
	}
	return &link, nil
}

// SaveInvoiceLinkInTx inserts the link row. The primary key on invoice_id
// turns a concurrent double booking into ErrDuplicate, which aborts the
// transaction carrying the second pair of entries.
func (r *PgxInvoiceLinkRepository) SaveInvoiceLinkInTx(ctx context.Context, tx pgx.Tx, link portsrepo.InvoiceLink) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO invoice_bookings (invoice_id, entry_id, vat_entry_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`, link.InvoiceID, link.EntryID, link.VATEntryID, link.CreatedBy, link.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert invoice link "+link.InvoiceID, err)
	}
	return nil
}
