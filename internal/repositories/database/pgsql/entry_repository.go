package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/werkportal/accounting_backend/internal/apperrors"
	"github.com/werkportal/accounting_backend/internal/core/domain"
	portsrepo "github.com/werkportal/accounting_backend/internal/core/ports/repositories"
	"github.com/werkportal/accounting_backend/internal/models"
	"github.com/werkportal/accounting_backend/internal/utils/mapping"
)

const entryColumns = `entry_id, fiscal_year, entry_number, booking_date, debit_account_id, credit_account_id,
	       amount, description, reference_number, source_type, source_id,
	       storno_of_entry_id, reversed_by_entry_id, created_by, created_at`

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates the repository for the append-only journal.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryWithTx {
	return &PgxEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EntryRepositoryWithTx = (*PgxEntryRepository)(nil)

// SaveEntry persists one entry in its own transaction.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	saved, err := r.SaveEntryInTx(ctx, tx, entry)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return saved, nil
}

// SaveEntryInTx persists one entry as part of the caller's transaction.
// The period-lock check, the sequence increment and the insert share the
// transaction, so an assigned number is never observed without its entry.
// The ON CONFLICT update takes a row lock on the year's sequence row, which
// serializes concurrent posters of the same fiscal year.
func (r *PgxEntryRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	year := entry.BookingDate.Year()

	var phase string
	err := tx.QueryRow(ctx,
		`SELECT phase FROM fiscal_period_closing WHERE year = $1;`, year,
	).Scan(&phase)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewAppError(500, "failed to check fiscal period phase", err)
	}
	if err == nil {
		closing := domain.FiscalPeriodClosing{Year: year, Phase: domain.ClosingPhase(phase)}
		if !closing.AcceptsEntries() {
			return nil, fmt.Errorf("%w: fiscal year %d is %s", apperrors.ErrConflict, year, phase)
		}
	}

	var number int64
	err = tx.QueryRow(ctx, `
		INSERT INTO entry_sequences (fiscal_year, counter)
		VALUES ($1, 1)
		ON CONFLICT (fiscal_year) DO UPDATE SET counter = entry_sequences.counter + 1
		RETURNING counter;
	`, year).Scan(&number)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to assign entry number for year "+strconv.Itoa(year), err)
	}

	entry.FiscalYear = year
	entry.EntryNumber = number

	modelEntry := mapping.ToModelEntry(entry)
	_, err = tx.Exec(ctx, `
		INSERT INTO journal_entries (
			entry_id, fiscal_year, entry_number, booking_date, debit_account_id, credit_account_id,
			amount, description, reference_number, source_type, source_id,
			storno_of_entry_id, created_by, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`,
		modelEntry.EntryID,
		modelEntry.FiscalYear,
		modelEntry.EntryNumber,
		modelEntry.BookingDate,
		modelEntry.DebitAccountID,
		modelEntry.CreditAccountID,
		modelEntry.Amount,
		modelEntry.Description,
		modelEntry.ReferenceNumber,
		modelEntry.SourceType,
		modelEntry.SourceID,
		modelEntry.StornoOfEntryID,
		modelEntry.CreatedBy,
		modelEntry.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert journal entry "+modelEntry.EntryID, err)
	}

	return &entry, nil
}

// MarkEntryReversedInTx links the original entry to its storno entry. The
// WHERE clause refuses a second link, which backs the "reverse at most once"
// rule under concurrency.
func (r *PgxEntryRepository) MarkEntryReversedInTx(ctx context.Context, tx pgx.Tx, originalEntryID, stornoEntryID string) error {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE journal_entries
		SET reversed_by_entry_id = $2
		WHERE entry_id = $1 AND reversed_by_entry_id IS NULL;
	`, originalEntryID, stornoEntryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark entry "+originalEntryID+" reversed", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s already reversed", apperrors.ErrConflict, originalEntryID)
	}
	return nil
}

// FindEntryByID retrieves an entry by its primary key.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	row := r.Pool.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM journal_entries WHERE entry_id = $1;`, entryID)
	return scanEntry(row, entryID)
}

// FindEntryByIDForUpdate retrieves an entry within a transaction, locking
// the row so concurrent reversals of the same entry serialize.
func (r *PgxEntryRepository) FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, entryID string) (*domain.JournalEntry, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`, entryID)
	return scanEntry(row, entryID)
}

// FindEntriesBySource retrieves all entries posted for one business object.
func (r *PgxEntryRepository) FindEntriesBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) ([]domain.JournalEntry, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+entryColumns+`
		FROM journal_entries
		WHERE source_type = $1 AND source_id = $2
		ORDER BY fiscal_year, entry_number;
	`, string(sourceType), sourceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for source "+sourceID, err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// ListEntriesByYear retrieves one page of a year's entries ordered by entry
// number; the token is the last entry number of the previous page.
func (r *PgxEntryRepository) ListEntriesByYear(ctx context.Context, year int, limit int, nextToken *string, includeStornos bool) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE fiscal_year = $1`
	args := []interface{}{year}

	if !includeStornos {
		query += ` AND source_type != 'STORNO' AND reversed_by_entry_id IS NULL`
	}

	if nextToken != nil && *nextToken != "" {
		afterNumber, err := strconv.ParseInt(*nextToken, 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, afterNumber)
		query += ` AND entry_number > $` + strconv.Itoa(len(args))
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY entry_number LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for year "+strconv.Itoa(year), err)
	}
	defer rows.Close()

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(entries) > limit {
		entries = entries[:limit]
		token := strconv.FormatInt(entries[limit-1].EntryNumber, 10)
		nextTokenVal = &token
	}
	return entries, nextTokenVal, nil
}

func scanEntry(row pgx.Row, entryID string) (*domain.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.FiscalYear,
		&m.EntryNumber,
		&m.BookingDate,
		&m.DebitAccountID,
		&m.CreditAccountID,
		&m.Amount,
		&m.Description,
		&m.ReferenceNumber,
		&m.SourceType,
		&m.SourceID,
		&m.StornoOfEntryID,
		&m.ReversedByID,
		&m.CreatedBy,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan journal entry "+entryID, err)
	}
	d := mapping.ToDomainEntry(m)
	return &d, nil
}

func collectEntries(rows pgx.Rows) ([]domain.JournalEntry, error) {
	modelEntries := []models.JournalEntry{}
	for rows.Next() {
		var m models.JournalEntry
		err := rows.Scan(
			&m.EntryID,
			&m.FiscalYear,
			&m.EntryNumber,
			&m.BookingDate,
			&m.DebitAccountID,
			&m.CreditAccountID,
			&m.Amount,
			&m.Description,
			&m.ReferenceNumber,
			&m.SourceType,
			&m.SourceID,
			&m.StornoOfEntryID,
			&m.ReversedByID,
			&m.CreatedBy,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}
	return mapping.ToDomainEntrySlice(modelEntries), nil
}
