package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/werkportal/accounting_backend/internal/core/domain"
)

// CreateBookingRequest is the payload for posting a manual or
// business-sourced journal entry. Account references use chart codes; the
// service resolves them to account ids.
type CreateBookingRequest struct {
	DebitAccountCode  string          `json:"debitAccountCode" binding:"required"`
	CreditAccountCode string          `json:"creditAccountCode" binding:"required"`
	Amount            decimal.Decimal `json:"amount" binding:"required,gtzerodecimal"`
	Description       string          `json:"description" binding:"required"`
	BookingDate       time.Time       `json:"bookingDate" binding:"required"`
	SourceType        string          `json:"sourceType" binding:"required"`
	SourceID          *string         `json:"sourceID,omitempty"`
	ReferenceNumber   string          `json:"referenceNumber,omitempty"`
}

// StornoRequest carries the mandatory reason for reversing an entry.
type StornoRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListEntriesParams are the query parameters for listing journal entries.
type ListEntriesParams struct {
	Year           int     `form:"year" binding:"required"`
	Limit          int     `form:"limit"`
	NextToken      *string `form:"nextToken"`
	IncludeStornos bool    `form:"includeStornos"`
}

// EntryResponse is the API representation of a journal entry.
type EntryResponse struct {
	EntryID         string          `json:"entryID"`
	FiscalYear      int             `json:"fiscalYear"`
	EntryNumber     int64           `json:"entryNumber"`
	DocumentNumber  string          `json:"documentNumber"`
	BookingDate     time.Time       `json:"bookingDate"`
	DebitAccountID  string          `json:"debitAccountID"`
	CreditAccountID string          `json:"creditAccountID"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	ReferenceNumber string          `json:"referenceNumber,omitempty"`
	SourceType      string          `json:"sourceType"`
	SourceID        *string         `json:"sourceID,omitempty"`
	StornoOfEntryID *string         `json:"stornoOfEntryID,omitempty"`
	ReversedByID    *string         `json:"reversedByID,omitempty"`
	CreatedBy       string          `json:"createdBy"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ListEntriesResponse is one page of journal entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a domain entry to its API representation.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	return EntryResponse{
		EntryID:         e.EntryID,
		FiscalYear:      e.FiscalYear,
		EntryNumber:     e.EntryNumber,
		DocumentNumber:  e.DocumentNumber(),
		BookingDate:     e.BookingDate,
		DebitAccountID:  e.DebitAccountID,
		CreditAccountID: e.CreditAccountID,
		Amount:          e.Amount,
		Description:     e.Description,
		ReferenceNumber: e.ReferenceNumber,
		SourceType:      string(e.SourceType),
		SourceID:        e.SourceID,
		StornoOfEntryID: e.StornoOfEntryID,
		ReversedByID:    e.ReversedByID,
		CreatedBy:       e.CreatedBy,
		CreatedAt:       e.CreatedAt,
	}
}

// ToEntryResponses converts a slice of domain entries.
func ToEntryResponses(es []domain.JournalEntry) []EntryResponse {
	out := make([]EntryResponse, len(es))
	for i := range es {
		out[i] = ToEntryResponse(&es[i])
	}
	return out
}
