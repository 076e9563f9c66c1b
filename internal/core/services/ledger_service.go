package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/werkportal/accounting_backend/internal/apperrors"
	"github.com/werkportal/accounting_backend/internal/core/domain"
	portsrepo "github.com/werkportal/accounting_backend/internal/core/ports/repositories"
	portssvc "github.com/werkportal/accounting_backend/internal/core/ports/services"
	"github.com/werkportal/accounting_backend/internal/dto"
	"github.com/werkportal/accounting_backend/internal/middleware"
)

// minStornoReasonLen guards against empty or throwaway reversal reasons.
const minStornoReasonLen = 3

// LedgerService is the only writer of journal entries. All booking paths
// (manual, provisions, depreciation, invoices) funnel through it so the
// balance rules and the period lock are enforced in exactly one place.
type LedgerService struct {
	entryRepo portsrepo.EntryRepositoryWithTx
}

func NewLedgerService(entryRepo portsrepo.EntryRepositoryWithTx) *LedgerService {
	return &LedgerService{entryRepo: entryRepo}
}

var _ portssvc.LedgerSvcFacade = (*LedgerService)(nil)

// validateDraft applies the balance invariants that hold for every entry
// regardless of its source.
func validateDraft(draft domain.EntryDraft) error {
	if draft.DebitAccountID == "" || draft.CreditAccountID == "" {
		return fmt.Errorf("%w: debit and credit accounts are required", apperrors.ErrValidation)
	}
	if draft.DebitAccountID == draft.CreditAccountID {
		return fmt.Errorf("%w: debit and credit accounts must differ", apperrors.ErrValidation)
	}
	if !draft.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}
	if !draft.SourceType.Valid() {
		return fmt.Errorf("%w: unknown source type %q", apperrors.ErrValidation, draft.SourceType)
	}
	if draft.BookingDate.IsZero() {
		return fmt.Errorf("%w: booking date is required", apperrors.ErrValidation)
	}
	return nil
}

// PostEntry validates and persists one journal entry in its own transaction.
func (s *LedgerService) PostEntry(ctx context.Context, draft domain.EntryDraft) (*domain.JournalEntry, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	entry := s.entryFromDraft(draft)
	saved, err := s.entryRepo.SaveEntry(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to post journal entry: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Journal entry posted",
		slog.String("entry_id", saved.EntryID),
		slog.String("document_number", saved.DocumentNumber()),
		slog.String("source_type", string(saved.SourceType)),
	)
	return saved, nil
}

// PostEntryInTx validates and persists one journal entry as part of the
// caller's transaction. All repositories share one pool, so a transaction
// begun on any of them is valid here.
func (s *LedgerService) PostEntryInTx(ctx context.Context, tx pgx.Tx, draft domain.EntryDraft) (*domain.JournalEntry, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	entry := s.entryFromDraft(draft)
	saved, err := s.entryRepo.SaveEntryInTx(ctx, tx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to post journal entry: %w", err)
	}
	return saved, nil
}

// ReverseEntry creates the storno entry for an existing entry: same amount,
// debit and credit swapped. The storno is dated now, so it lands in the
// currently open year even when the original's year is already locked. The
// original is only touched to record the reversal link.
func (s *LedgerService) ReverseEntry(ctx context.Context, entryID, reason, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if utf8.RuneCountInString(reason) < minStornoReasonLen {
		return nil, fmt.Errorf("%w: storno reason is required", apperrors.ErrValidation)
	}

	tx, err := s.entryRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.entryRepo.Rollback(ctx, tx)

	original, err := s.entryRepo.FindEntryByIDForUpdate(ctx, tx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry %s for reversal: %w", entryID, err)
	}
	if original.ReversedByID != nil {
		return nil, fmt.Errorf("%w: entry %s is already reversed", apperrors.ErrConflict, entryID)
	}
	if original.IsStorno() {
		return nil, fmt.Errorf("%w: storno entries cannot be reversed", apperrors.ErrConflict)
	}

	now := time.Now()
	storno := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		BookingDate:     now,
		DebitAccountID:  original.CreditAccountID,
		CreditAccountID: original.DebitAccountID,
		Amount:          original.Amount,
		Description:     fmt.Sprintf("Storno zu %s: %s", original.DocumentNumber(), reason),
		ReferenceNumber: original.ReferenceNumber,
		SourceType:      domain.SourceStorno,
		SourceID:        original.SourceID,
		StornoOfEntryID: &original.EntryID,
		CreatedBy:       userID,
		CreatedAt:       now,
	}

	saved, err := s.entryRepo.SaveEntryInTx(ctx, tx, storno)
	if err != nil {
		return nil, fmt.Errorf("failed to post storno entry: %w", err)
	}

	if err := s.entryRepo.MarkEntryReversedInTx(ctx, tx, original.EntryID, saved.EntryID); err != nil {
		return nil, err
	}

	if err := s.entryRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Journal entry reversed",
		slog.String("original_entry_id", original.EntryID),
		slog.String("storno_entry_id", saved.EntryID),
		slog.String("storno_document_number", saved.DocumentNumber()),
	)
	return saved, nil
}

// GetEntryByID retrieves an entry by id.
func (s *LedgerService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entry %s: %w", entryID, err)
	}
	return entry, nil
}

// GetEntriesBySource returns the full posting trail of one business object,
// for example an invoice's net and VAT entries plus any stornos.
func (s *LedgerService) GetEntriesBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) ([]domain.JournalEntry, error) {
	if !sourceType.Valid() {
		return nil, fmt.Errorf("%w: unknown source type %q", apperrors.ErrValidation, sourceType)
	}
	if sourceID == "" {
		return nil, fmt.Errorf("%w: source id is required", apperrors.ErrValidation)
	}

	entries, err := s.entryRepo.FindEntriesBySource(ctx, sourceType, sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for %s %s: %w", sourceType, sourceID, err)
	}
	if entries == nil {
		return []domain.JournalEntry{}, nil
	}
	return entries, nil
}

// ListEntries returns one page of a year's journal ordered by entry number.
func (s *LedgerService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	entries, nextToken, err := s.entryRepo.ListEntriesByYear(ctx, params.Year, params.Limit, params.NextToken, params.IncludeStornos)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for year %d: %w", params.Year, err)
	}
	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

func (s *LedgerService) entryFromDraft(draft domain.EntryDraft) domain.JournalEntry {
	now := time.Now()
	return domain.JournalEntry{
		EntryID:         uuid.NewString(),
		BookingDate:     draft.BookingDate,
		DebitAccountID:  draft.DebitAccountID,
		CreditAccountID: draft.CreditAccountID,
		Amount:          draft.Amount,
		Description:     draft.Description,
		ReferenceNumber: draft.ReferenceNumber,
		SourceType:      draft.SourceType,
		SourceID:        draft.SourceID,
		StornoOfEntryID: draft.StornoOfEntryID,
		CreatedBy:       draft.CreatedBy,
		CreatedAt:       now,
	}
}
