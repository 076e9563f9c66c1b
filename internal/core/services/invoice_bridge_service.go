package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/werkportal/accounting_backend/internal/apperrors"
	"github.com/werkportal/accounting_backend/internal/core/domain"
	portsrepo "github.com/werkportal/accounting_backend/internal/core/ports/repositories"
	portssvc "github.com/werkportal/accounting_backend/internal/core/ports/services"
	"github.com/werkportal/accounting_backend/internal/dto"
	"github.com/werkportal/accounting_backend/internal/middleware"
)

// InvoiceBridgeService records issued invoices in the ledger: one entry for
// the net amount against revenue, one for the VAT, both receivable-side,
// at most once per invoice.
type InvoiceBridgeService struct {
	invoiceLinkRepo portsrepo.InvoiceLinkRepositoryWithTx
	accountRepo     portsrepo.AccountRepositoryFacade
	ledgerSvc       portssvc.LedgerSvcFacade
}

func NewInvoiceBridgeService(invoiceLinkRepo portsrepo.InvoiceLinkRepositoryWithTx, accountRepo portsrepo.AccountRepositoryFacade, ledgerSvc portssvc.LedgerSvcFacade) *InvoiceBridgeService {
	return &InvoiceBridgeService{
		invoiceLinkRepo: invoiceLinkRepo,
		accountRepo:     accountRepo,
		ledgerSvc:       ledgerSvc,
	}
}

var _ portssvc.InvoiceBridgeSvcFacade = (*InvoiceBridgeService)(nil)

// CreateInvoiceBooking posts the receivable/revenue and receivable/VAT
// entries for an invoice. Both entries and the idempotency link are written
// in one transaction; a concurrent duplicate loses on the link's primary
// key and takes its entries down with the rollback.
func (s *InvoiceBridgeService) CreateInvoiceBooking(ctx context.Context, req dto.InvoiceBookingRequest, userID string) (*dto.InvoiceBookingResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Subtotal.Add(req.VATAmount).Equal(req.TotalAmount) {
		return nil, fmt.Errorf("%w: subtotal plus VAT must equal total", apperrors.ErrValidation)
	}
	if req.VATAmount.IsNegative() {
		return nil, fmt.Errorf("%w: VAT amount must not be negative", apperrors.ErrValidation)
	}

	if _, err := s.invoiceLinkRepo.FindInvoiceLink(ctx, req.InvoiceID); err == nil {
		return nil, fmt.Errorf("%w: invoice %s is already booked", apperrors.ErrConflict, req.InvoiceID)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check invoice link: %w", err)
	}

	codes := []string{domain.AccountReceivables, domain.AccountCommissionRevenue, domain.AccountVATLiability}
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve invoice accounts: %w", err)
	}
	for _, code := range codes {
		if _, ok := accounts[code]; !ok {
			return nil, fmt.Errorf("%w: account %s missing from chart", apperrors.ErrInternal, code)
		}
	}

	description := "Rechnung " + req.InvoiceNumber
	if len(req.SourceTransactionIDs) > 0 {
		description += " (" + strings.Join(req.SourceTransactionIDs, ", ") + ")"
	}

	tx, err := s.invoiceLinkRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.invoiceLinkRepo.Rollback(ctx, tx)

	invoiceID := req.InvoiceID
	netEntry, err := s.ledgerSvc.PostEntryInTx(ctx, tx, domain.EntryDraft{
		BookingDate:     req.IssueDate,
		DebitAccountID:  accounts[domain.AccountReceivables].AccountID,
		CreditAccountID: accounts[domain.AccountCommissionRevenue].AccountID,
		Amount:          req.Subtotal,
		Description:     description,
		ReferenceNumber: req.InvoiceNumber,
		SourceType:      domain.SourceInvoice,
		SourceID:        &invoiceID,
		CreatedBy:       userID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to post invoice net entry: %w", err)
	}

	var vatEntryID *string
	if req.VATAmount.IsPositive() {
		vatEntry, err := s.ledgerSvc.PostEntryInTx(ctx, tx, domain.EntryDraft{
			BookingDate:     req.IssueDate,
			DebitAccountID:  accounts[domain.AccountReceivables].AccountID,
			CreditAccountID: accounts[domain.AccountVATLiability].AccountID,
			Amount:          req.VATAmount,
			Description:     "USt " + description,
			ReferenceNumber: req.InvoiceNumber,
			SourceType:      domain.SourceInvoice,
			SourceID:        &invoiceID,
			CreatedBy:       userID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to post invoice VAT entry: %w", err)
		}
		vatEntryID = &vatEntry.EntryID
	}

	link := portsrepo.InvoiceLink{
		InvoiceID:  req.InvoiceID,
		EntryID:    netEntry.EntryID,
		VATEntryID: vatEntryID,
		CreatedBy:  userID,
		CreatedAt:  time.Now(),
	}
	if err := s.invoiceLinkRepo.SaveInvoiceLinkInTx(ctx, tx, link); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: invoice %s is already booked", apperrors.ErrConflict, req.InvoiceID)
		}
		return nil, fmt.Errorf("failed to save invoice link: %w", err)
	}

	if err := s.invoiceLinkRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Invoice booked",
		slog.String("invoice_id", req.InvoiceID),
		slog.String("entry_id", netEntry.EntryID),
		slog.String("document_number", netEntry.DocumentNumber()),
	)
	return &dto.InvoiceBookingResponse{
		InvoiceID:  req.InvoiceID,
		EntryID:    netEntry.EntryID,
		VATEntryID: vatEntryID,
	}, nil
}
