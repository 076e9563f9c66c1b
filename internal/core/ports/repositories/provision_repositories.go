package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/werkportal/accounting_backend/internal/core/domain"
)

// ProvisionRepositoryFacade defines persistence for provisions. Booking and
// release mutate the provision and post the ledger entry inside one caller
// transaction; the ...InTx methods exist for that composition.
type ProvisionRepositoryFacade interface {
	// SaveProvision persists a newly created, unbooked provision.
	SaveProvision(ctx context.Context, provision domain.Provision) error

	// FindProvisionByID retrieves a provision by its primary key.
	FindProvisionByID(ctx context.Context, provisionID string) (*domain.Provision, error)

	// FindProvisionByIDForUpdate retrieves a provision inside a transaction
	// with a row lock, serializing concurrent book/release attempts.
	FindProvisionByIDForUpdate(ctx context.Context, tx pgx.Tx, provisionID string) (*domain.Provision, error)

	// SetProvisionBookedInTx stores the booked entry id on the provision.
	SetProvisionBookedInTx(ctx context.Context, tx pgx.Tx, provisionID, entryID, userID string, now time.Time) error

	// ApplyProvisionReleaseInTx updates the cumulative released amount and
	// the released flag.
	ApplyProvisionReleaseInTx(ctx context.Context, tx pgx.Tx, provisionID string, releasedAmount decimal.Decimal, released bool, userID string, now time.Time) error

	// ListProvisionsByYear retrieves all provisions of one fiscal year.
	ListProvisionsByYear(ctx context.Context, year int) ([]domain.Provision, error)

	// CountUnreleasedByYear counts booked but not fully released provisions
	// dated in or before the given year. Used by the closing pre-checks.
	CountUnreleasedByYear(ctx context.Context, year int) (int, error)

	// SumRemainingByType sums the unreleased remainder of booked provisions
	// dated in or before the given year, grouped by provision type.
	SumRemainingByType(ctx context.Context, year int) (map[domain.ProvisionType]decimal.Decimal, error)
}

// ProvisionRepositoryWithTx extends ProvisionRepositoryFacade with transaction capabilities.
type ProvisionRepositoryWithTx interface {
	ProvisionRepositoryFacade
	TransactionManager
}
