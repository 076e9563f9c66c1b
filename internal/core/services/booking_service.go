package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/werkportal/accounting_backend/internal/apperrors"
	"github.com/werkportal/accounting_backend/internal/core/domain"
	portsrepo "github.com/werkportal/accounting_backend/internal/core/ports/repositories"
	portssvc "github.com/werkportal/accounting_backend/internal/core/ports/services"
	"github.com/werkportal/accounting_backend/internal/dto"
	"github.com/werkportal/accounting_backend/internal/middleware"
)

// BookingService turns business events into journal entries. It resolves
// chart codes to account ids and delegates posting to the ledger.
type BookingService struct {
	ledgerSvc   portssvc.LedgerSvcFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

func NewBookingService(ledgerSvc portssvc.LedgerSvcFacade, accountRepo portsrepo.AccountRepositoryFacade) *BookingService {
	return &BookingService{
		ledgerSvc:   ledgerSvc,
		accountRepo: accountRepo,
	}
}

var _ portssvc.BookingSvcFacade = (*BookingService)(nil)

// CreateBooking posts a journal entry from a request carrying account codes.
func (s *BookingService) CreateBooking(ctx context.Context, req dto.CreateBookingRequest, userID string) (*domain.JournalEntry, error) {
	sourceType := domain.SourceType(req.SourceType)
	if !sourceType.Valid() {
		return nil, fmt.Errorf("%w: unknown source type %q", apperrors.ErrValidation, req.SourceType)
	}
	if sourceType == domain.SourceStorno {
		return nil, fmt.Errorf("%w: storno entries are created via the reversal endpoint", apperrors.ErrValidation)
	}

	accounts, err := s.resolveAccounts(ctx, req.DebitAccountCode, req.CreditAccountCode)
	if err != nil {
		return nil, err
	}

	entry, err := s.ledgerSvc.PostEntry(ctx, domain.EntryDraft{
		BookingDate:     req.BookingDate,
		DebitAccountID:  accounts[req.DebitAccountCode].AccountID,
		CreditAccountID: accounts[req.CreditAccountCode].AccountID,
		Amount:          req.Amount,
		Description:     req.Description,
		ReferenceNumber: req.ReferenceNumber,
		SourceType:      sourceType,
		SourceID:        req.SourceID,
		CreatedBy:       userID,
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// CreateStorno reverses an existing entry with a mandatory reason.
func (s *BookingService) CreateStorno(ctx context.Context, entryID, reason, userID string) (*domain.JournalEntry, error) {
	return s.ledgerSvc.ReverseEntry(ctx, entryID, reason, userID)
}

// BookCommissionReceived records a collected platform commission.
func (s *BookingService) BookCommissionReceived(ctx context.Context, commissionID string, amount decimal.Decimal, paymentDate time.Time, userID string) (*domain.JournalEntry, error) {
	return s.bookAuto(ctx, autoBooking{
		debitCode:   domain.AccountBank,
		creditCode:  domain.AccountCommissionRevenue,
		amount:      amount,
		date:        paymentDate,
		description: "Provisionseinnahme " + commissionID,
		sourceType:  domain.SourceCommission,
		sourceID:    commissionID,
		userID:      userID,
	})
}

// BookCommissionPaid records a commission payout to a partner.
func (s *BookingService) BookCommissionPaid(ctx context.Context, commissionID string, amount decimal.Decimal, paymentDate time.Time, userID string) (*domain.JournalEntry, error) {
	return s.bookAuto(ctx, autoBooking{
		debitCode:   domain.AccountCommissionExpense,
		creditCode:  domain.AccountBank,
		amount:      amount,
		date:        paymentDate,
		description: "Provisionsauszahlung " + commissionID,
		sourceType:  domain.SourceCommission,
		sourceID:    commissionID,
		userID:      userID,
	})
}

// BookExpenseApproved records an approved employee expense as a payable.
func (s *BookingService) BookExpenseApproved(ctx context.Context, expenseID string, amount decimal.Decimal, expenseDate time.Time, description, userID string) (*domain.JournalEntry, error) {
	if description == "" {
		description = "Auslage " + expenseID
	}
	return s.bookAuto(ctx, autoBooking{
		debitCode:   domain.AccountOfficeExpense,
		creditCode:  domain.AccountTradePayables,
		amount:      amount,
		date:        expenseDate,
		description: description,
		sourceType:  domain.SourceExpensePayment,
		sourceID:    expenseID,
		userID:      userID,
	})
}

// BookExpensePaid records the payout of a previously approved expense.
func (s *BookingService) BookExpensePaid(ctx context.Context, expenseID string, amount decimal.Decimal, paymentDate time.Time, userID string) (*domain.JournalEntry, error) {
	return s.bookAuto(ctx, autoBooking{
		debitCode:   domain.AccountTradePayables,
		creditCode:  domain.AccountBank,
		amount:      amount,
		date:        paymentDate,
		description: "Auszahlung Auslage " + expenseID,
		sourceType:  domain.SourceExpensePayment,
		sourceID:    expenseID,
		userID:      userID,
	})
}

type autoBooking struct {
	debitCode   string
	creditCode  string
	amount      decimal.Decimal
	date        time.Time
	description string
	sourceType  domain.SourceType
	sourceID    string
	userID      string
}

func (s *BookingService) bookAuto(ctx context.Context, b autoBooking) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if b.sourceID == "" {
		return nil, fmt.Errorf("%w: source id is required", apperrors.ErrValidation)
	}

	accounts, err := s.resolveAccounts(ctx, b.debitCode, b.creditCode)
	if err != nil {
		return nil, err
	}

	sourceID := b.sourceID
	entry, err := s.ledgerSvc.PostEntry(ctx, domain.EntryDraft{
		BookingDate:     b.date,
		DebitAccountID:  accounts[b.debitCode].AccountID,
		CreditAccountID: accounts[b.creditCode].AccountID,
		Amount:          b.amount,
		Description:     b.description,
		SourceType:      b.sourceType,
		SourceID:        &sourceID,
		CreatedBy:       b.userID,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Automatic booking posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("document_number", entry.DocumentNumber()),
		slog.String("source_type", string(b.sourceType)),
		slog.String("source_id", b.sourceID),
	)
	return entry, nil
}

// resolveAccounts maps chart codes to active accounts, failing validation on
// any unknown code.
func (s *BookingService) resolveAccounts(ctx context.Context, codes ...string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account codes: %w", err)
	}
	for _, code := range codes {
		if _, ok := accounts[code]; !ok {
			return nil, fmt.Errorf("%w: unknown account code %s", apperrors.ErrValidation, code)
		}
	}
	return accounts, nil
}
