package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/werkportal/accounting_backend/internal/core/domain"
)

// EntryReader defines read operations for journal entries.
type EntryReader interface {
	// FindEntryByID retrieves a specific journal entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntryByIDForUpdate retrieves an entry within a transaction, taking a
	// row lock so a concurrent reversal of the same entry blocks until commit.
	FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, entryID string) (*domain.JournalEntry, error)

	// FindEntriesBySource retrieves all entries posted for one business object.
	FindEntriesBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) ([]domain.JournalEntry, error)

	// ListEntriesByYear retrieves a page of entries for a fiscal year ordered
	// by entry number, using the last seen entry number as the page token.
	ListEntriesByYear(ctx context.Context, year int, limit int, nextToken *string, includeStornos bool) ([]domain.JournalEntry, *string, error)
}

// EntryWriter defines the single write path for journal entries. Entry
// numbers are assigned inside SaveEntryInTx from a row-locked per-year
// sequence, so the number assignment commits or rolls back with the insert.
type EntryWriter interface {
	// SaveEntry persists one entry in its own transaction.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error)

	// SaveEntryInTx persists one entry as part of a caller-managed
	// transaction: it verifies the booking year is not locked, assigns the
	// next entry number for that year and inserts the row.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) (*domain.JournalEntry, error)

	// MarkEntryReversedInTx links the original entry to its storno entry.
	// This is the only mutation ever applied to a persisted entry.
	MarkEntryReversedInTx(ctx context.Context, tx pgx.Tx, originalEntryID, stornoEntryID string) error
}

// EntryRepositoryFacade combines all entry repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}

// EntryRepositoryWithTx extends EntryRepositoryFacade with transaction capabilities.
type EntryRepositoryWithTx interface {
	EntryRepositoryFacade
	TransactionManager
}
