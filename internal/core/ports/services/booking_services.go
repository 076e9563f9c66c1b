package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/werkportal/accounting_backend/internal/core/domain"
	"github.com/werkportal/accounting_backend/internal/dto"
)

// BookingSvcFacade orchestrates business-originated postings over the
// ledger: manual bookings, stornos and the automatic bookings fired by
// commission and expense events.
type BookingSvcFacade interface {
	// CreateBooking posts a journal entry from a request carrying account codes.
	CreateBooking(ctx context.Context, req dto.CreateBookingRequest, userID string) (*domain.JournalEntry, error)

	// CreateStorno reverses an existing entry with a mandatory reason.
	CreateStorno(ctx context.Context, entryID, reason, userID string) (*domain.JournalEntry, error)

	// BookCommissionReceived records a collected platform commission
	// (debit bank, credit commission revenue).
	BookCommissionReceived(ctx context.Context, commissionID string, amount decimal.Decimal, paymentDate time.Time, userID string) (*domain.JournalEntry, error)

	// BookCommissionPaid records a commission payout to a partner
	// (debit commission expense, credit bank).
	BookCommissionPaid(ctx context.Context, commissionID string, amount decimal.Decimal, paymentDate time.Time, userID string) (*domain.JournalEntry, error)

	// BookExpenseApproved records an approved employee expense
	// (debit office expense, credit trade payables).
	BookExpenseApproved(ctx context.Context, expenseID string, amount decimal.Decimal, expenseDate time.Time, description, userID string) (*domain.JournalEntry, error)

	// BookExpensePaid records the payout of a previously approved expense
	// (debit trade payables, credit bank).
	BookExpensePaid(ctx context.Context, expenseID string, amount decimal.Decimal, paymentDate time.Time, userID string) (*domain.JournalEntry, error)
}
