package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SourceType identifies the business origin of a journal entry. The set is
// closed; every variant has exactly one posting path through the ledger.
type SourceType string

const (
	SourceManual         SourceType = "MANUAL"
	SourceCommission     SourceType = "COMMISSION"
	SourceInvoice        SourceType = "INVOICE"
	SourceExpensePayment SourceType = "EXPENSE_PAYMENT"
	SourceDepreciation   SourceType = "DEPRECIATION"
	SourceProvision      SourceType = "PROVISION"
	SourceStorno         SourceType = "STORNO"
)

// Valid reports whether s is one of the closed set of source types.
func (s SourceType) Valid() bool {
	switch s {
	case SourceManual, SourceCommission, SourceInvoice, SourceExpensePayment,
		SourceDepreciation, SourceProvision, SourceStorno:
		return true
	}
	return false
}

// JournalEntry is a single balanced debit/credit posting between two accounts.
// Entries are immutable once created; a correction is a new STORNO entry,
// never an edit or delete. EntryNumber is assigned by the ledger at persist
// time, strictly increasing and gapless per fiscal year.
type JournalEntry struct {
	EntryID         string          `json:"entryID"` // Primary Key (UUID)
	FiscalYear      int             `json:"fiscalYear"`
	EntryNumber     int64           `json:"entryNumber"`
	BookingDate     time.Time       `json:"bookingDate"`
	DebitAccountID  string          `json:"debitAccountID"`
	CreditAccountID string          `json:"creditAccountID"`
	Amount          decimal.Decimal `json:"amount"` // Always positive
	Description     string          `json:"description"`
	ReferenceNumber string          `json:"referenceNumber,omitempty"`
	SourceType      SourceType      `json:"sourceType"`
	SourceID        *string         `json:"sourceID,omitempty"`        // Originating business object
	StornoOfEntryID *string         `json:"stornoOfEntryID,omitempty"` // Set only on STORNO entries
	ReversedByID    *string         `json:"reversedByID,omitempty"`    // Set on the original once reversed
	CreatedBy       string          `json:"createdBy"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// EntryDraft is the input to the ledger's post operation: everything a
// JournalEntry needs except identity, entry number and timestamps, which the
// ledger assigns at persist time.
type EntryDraft struct {
	BookingDate     time.Time
	DebitAccountID  string
	CreditAccountID string
	Amount          decimal.Decimal
	Description     string
	ReferenceNumber string
	SourceType      SourceType
	SourceID        *string
	StornoOfEntryID *string
	CreatedBy       string
}

// DocumentNumber renders the classic BEL-YYYY-NNNNNN belege number derived
// from year and entry number.
func (e JournalEntry) DocumentNumber() string {
	return fmt.Sprintf("BEL-%d-%06d", e.FiscalYear, e.EntryNumber)
}

// IsStorno reports whether the entry reverses another entry.
func (e JournalEntry) IsStorno() bool {
	return e.SourceType == SourceStorno
}
