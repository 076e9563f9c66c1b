package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/werkportal/accounting_backend/internal/core/domain"
)

// DepreciationRepositoryFacade defines persistence for assets and their
// depreciation schedules.
type DepreciationRepositoryFacade interface {
	// SaveAsset persists a fixed asset.
	SaveAsset(ctx context.Context, asset domain.DepreciationAsset) error

	// FindAssetByID retrieves an asset by its primary key.
	FindAssetByID(ctx context.Context, assetID string) (*domain.DepreciationAsset, error)

	// SaveScheduleEntries persists the generated schedule rows for an asset.
	SaveScheduleEntries(ctx context.Context, entries []domain.DepreciationEntry) error

	// FindDepEntryByIDForUpdate retrieves a schedule row inside a transaction
	// with a row lock, serializing concurrent booking attempts.
	FindDepEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, depEntryID string) (*domain.DepreciationEntry, error)

	// SetDepEntryBookedInTx stores the booked ledger entry id on the row.
	SetDepEntryBookedInTx(ctx context.Context, tx pgx.Tx, depEntryID, entryID, userID string, now time.Time) error

	// ListScheduleByAsset retrieves all schedule rows of an asset ordered by year.
	ListScheduleByAsset(ctx context.Context, assetID string) ([]domain.DepreciationEntry, error)

	// ListUnbookedByYear retrieves all unbooked schedule rows of one year.
	ListUnbookedByYear(ctx context.Context, year int) ([]domain.DepreciationEntry, error)

	// CountUnbookedByYear counts unbooked schedule rows dated in or before
	// the given year. Used by the closing pre-checks.
	CountUnbookedByYear(ctx context.Context, year int) (int, error)
}

// DepreciationRepositoryWithTx extends DepreciationRepositoryFacade with
// transaction capabilities.
type DepreciationRepositoryWithTx interface {
	DepreciationRepositoryFacade
	TransactionManager
}
