package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceType identifies the business origin of a journal entry.
type SourceType string

// JournalEntry is the append-only journal_entries row. Rows are never
// updated apart from reversed_by_entry_id, which links the original to its
// storno entry.
type JournalEntry struct {
	EntryID         string          `db:"entry_id"`
	FiscalYear      int             `db:"fiscal_year"`
	EntryNumber     int64           `db:"entry_number"`
	BookingDate     time.Time       `db:"booking_date"`
	DebitAccountID  string          `db:"debit_account_id"`
	CreditAccountID string          `db:"credit_account_id"`
	Amount          decimal.Decimal `db:"amount"`
	Description     string          `db:"description"`
	ReferenceNumber string          `db:"reference_number"`
	SourceType      SourceType      `db:"source_type"`
	SourceID        *string         `db:"source_id"`
	StornoOfEntryID *string         `db:"storno_of_entry_id"`
	ReversedByID    *string         `db:"reversed_by_entry_id"`
	CreatedBy       string          `db:"created_by"`
	CreatedAt       time.Time       `db:"created_at"`
}
