package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/werkportal/accounting_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgsql repositories over one shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo:      newPgxAccountRepository(pool),
		EntryRepo:        newPgxEntryRepository(pool),
		ProvisionRepo:    newPgxProvisionRepository(pool),
		DepreciationRepo: newPgxDepreciationRepository(pool),
		ClosingRepo:      newPgxClosingRepository(pool),
		InvoiceLinkRepo:  newPgxInvoiceLinkRepository(pool),
	}
}
