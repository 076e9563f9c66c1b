package services

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/werkportal/accounting_backend/internal/core/domain"
	"github.com/werkportal/accounting_backend/internal/dto"
)

// LedgerSvc is the single path by which journal entries come into existence.
// It enforces the balance invariants (distinct accounts, positive amount),
// the fiscal period lock and atomic entry numbering.
type LedgerSvc interface {
	// PostEntry validates and persists one journal entry.
	PostEntry(ctx context.Context, draft domain.EntryDraft) (*domain.JournalEntry, error)

	// PostEntryInTx validates and persists one journal entry as part of a
	// caller-managed transaction, for services that must post money and
	// update their own state atomically.
	PostEntryInTx(ctx context.Context, tx pgx.Tx, draft domain.EntryDraft) (*domain.JournalEntry, error)

	// ReverseEntry creates the storno entry for an existing entry. The
	// original is never mutated beyond its reversal link.
	ReverseEntry(ctx context.Context, entryID, reason, userID string) (*domain.JournalEntry, error)
}

// LedgerReaderSvc exposes read access to the journal.
type LedgerReaderSvc interface {
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// GetEntriesBySource returns every entry posted for one business object,
	// stornos included, in posting order.
	GetEntriesBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) ([]domain.JournalEntry, error)
}

// LedgerSvcFacade combines ledger write and read operations.
type LedgerSvcFacade interface {
	LedgerSvc
	LedgerReaderSvc
}
