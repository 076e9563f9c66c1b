package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/werkportal/accounting_backend/internal/apperrors"
	"github.com/werkportal/accounting_backend/internal/core/domain"
	portsrepo "github.com/werkportal/accounting_backend/internal/core/ports/repositories"
	portssvc "github.com/werkportal/accounting_backend/internal/core/ports/services"
	"github.com/werkportal/accounting_backend/internal/dto"
	"github.com/werkportal/accounting_backend/internal/middleware"
)

// ProvisionService manages provisions: create unbooked, book exactly once,
// release in one or more steps. Booking and every release pair a ledger
// entry with the provision state change in one transaction.
type ProvisionService struct {
	provisionRepo portsrepo.ProvisionRepositoryWithTx
	accountRepo   portsrepo.AccountRepositoryFacade
	ledgerSvc     portssvc.LedgerSvcFacade
}

func NewProvisionService(provisionRepo portsrepo.ProvisionRepositoryWithTx, accountRepo portsrepo.AccountRepositoryFacade, ledgerSvc portssvc.LedgerSvcFacade) *ProvisionService {
	return &ProvisionService{
		provisionRepo: provisionRepo,
		accountRepo:   accountRepo,
		ledgerSvc:     ledgerSvc,
	}
}

var _ portssvc.ProvisionSvcFacade = (*ProvisionService)(nil)

// CreateProvision creates an unbooked provision.
func (s *ProvisionService) CreateProvision(ctx context.Context, req dto.CreateProvisionRequest, userID string) (*domain.Provision, error) {
	provType := domain.ProvisionType(req.Type)
	switch provType {
	case domain.ProvisionTax, domain.ProvisionVacation, domain.ProvisionWarranty,
		domain.ProvisionLegal, domain.ProvisionRestructuring, domain.ProvisionPension, domain.ProvisionOther:
	default:
		return nil, fmt.Errorf("%w: unknown provision type %q", apperrors.ErrValidation, req.Type)
	}

	now := time.Now()
	provision := domain.Provision{
		ProvisionID:    uuid.NewString(),
		Type:           provType,
		Amount:         req.Amount,
		Year:           req.Year,
		Description:    req.Description,
		Released:       false,
		ReleasedAmount: decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.provisionRepo.SaveProvision(ctx, provision); err != nil {
		return nil, fmt.Errorf("failed to create provision: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Provision created",
		slog.String("provision_id", provision.ProvisionID),
		slog.String("type", string(provType)),
		slog.Int("year", req.Year),
	)
	return &provision, nil
}

// GetProvision retrieves a provision by id.
func (s *ProvisionService) GetProvision(ctx context.Context, provisionID string) (*domain.Provision, error) {
	provision, err := s.provisionRepo.FindProvisionByID(ctx, provisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get provision %s: %w", provisionID, err)
	}
	return provision, nil
}

// ListProvisionsByYear lists all provisions of a fiscal year.
func (s *ProvisionService) ListProvisionsByYear(ctx context.Context, year int) ([]domain.Provision, error) {
	provisions, err := s.provisionRepo.ListProvisionsByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list provisions for year %d: %w", year, err)
	}
	if provisions == nil {
		return []domain.Provision{}, nil
	}
	return provisions, nil
}

// Book posts the provision's expense entry (debit provision expense, credit
// the type's liability account) and records the entry on the provision. The
// row lock on the provision makes concurrent bookings lose with a conflict.
func (s *ProvisionService) Book(ctx context.Context, provisionID, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountsFor(ctx, domain.AccountProvisionExpense)
	if err != nil {
		return err
	}

	tx, err := s.provisionRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.provisionRepo.Rollback(ctx, tx)

	provision, err := s.provisionRepo.FindProvisionByIDForUpdate(ctx, tx, provisionID)
	if err != nil {
		return fmt.Errorf("failed to load provision %s for booking: %w", provisionID, err)
	}
	if provision.BookedEntryID != nil {
		return fmt.Errorf("%w: provision %s is already booked", apperrors.ErrConflict, provisionID)
	}

	liabilityCode := provision.Type.LiabilityAccount()
	liability, err := s.accountsFor(ctx, liabilityCode)
	if err != nil {
		return err
	}

	sourceID := provision.ProvisionID
	entry, err := s.ledgerSvc.PostEntryInTx(ctx, tx, domain.EntryDraft{
		BookingDate:     time.Date(provision.Year, time.December, 31, 0, 0, 0, 0, time.UTC),
		DebitAccountID:  accounts[domain.AccountProvisionExpense].AccountID,
		CreditAccountID: liability[liabilityCode].AccountID,
		Amount:          provision.Amount,
		Description:     "Rueckstellung: " + provision.Description,
		SourceType:      domain.SourceProvision,
		SourceID:        &sourceID,
		CreatedBy:       userID,
	})
	if err != nil {
		return fmt.Errorf("failed to post provision booking: %w", err)
	}

	if err := s.provisionRepo.SetProvisionBookedInTx(ctx, tx, provisionID, entry.EntryID, userID, time.Now()); err != nil {
		return fmt.Errorf("failed to mark provision %s booked: %w", provisionID, err)
	}

	if err := s.provisionRepo.Commit(ctx, tx); err != nil {
		return err
	}

	logger.Info("Provision booked",
		slog.String("provision_id", provisionID),
		slog.String("entry_id", entry.EntryID),
		slog.String("document_number", entry.DocumentNumber()),
	)
	return nil
}

// Release books out part or all of a booked provision (debit the liability
// account, credit provision release). A nil amount releases the remainder;
// the provision flips to released once the cumulative amount is reached.
func (s *ProvisionService) Release(ctx context.Context, provisionID, userID string, amount *decimal.Decimal, reason string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	releaseAccounts, err := s.accountsFor(ctx, domain.AccountProvisionRelease)
	if err != nil {
		return err
	}

	tx, err := s.provisionRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.provisionRepo.Rollback(ctx, tx)

	provision, err := s.provisionRepo.FindProvisionByIDForUpdate(ctx, tx, provisionID)
	if err != nil {
		return fmt.Errorf("failed to load provision %s for release: %w", provisionID, err)
	}
	if provision.BookedEntryID == nil {
		return fmt.Errorf("%w: provision %s is not booked yet", apperrors.ErrConflict, provisionID)
	}
	if provision.Released {
		return fmt.Errorf("%w: provision %s is already fully released", apperrors.ErrConflict, provisionID)
	}

	remaining := provision.Remaining()
	releaseAmount := remaining
	if amount != nil {
		releaseAmount = *amount
	}
	if !releaseAmount.IsPositive() {
		return fmt.Errorf("%w: release amount must be greater than zero", apperrors.ErrValidation)
	}
	if releaseAmount.GreaterThan(remaining) {
		return fmt.Errorf("%w: release amount %s exceeds remaining %s", apperrors.ErrValidation, releaseAmount, remaining)
	}

	liabilityCode := provision.Type.LiabilityAccount()
	liability, err := s.accountsFor(ctx, liabilityCode)
	if err != nil {
		return err
	}

	description := "Aufloesung Rueckstellung: " + provision.Description
	if reason != "" {
		description += " (" + reason + ")"
	}

	sourceID := provision.ProvisionID
	entry, err := s.ledgerSvc.PostEntryInTx(ctx, tx, domain.EntryDraft{
		BookingDate:     time.Now(),
		DebitAccountID:  liability[liabilityCode].AccountID,
		CreditAccountID: releaseAccounts[domain.AccountProvisionRelease].AccountID,
		Amount:          releaseAmount,
		Description:     description,
		SourceType:      domain.SourceProvision,
		SourceID:        &sourceID,
		CreatedBy:       userID,
	})
	if err != nil {
		return fmt.Errorf("failed to post provision release: %w", err)
	}

	newReleased := provision.ReleasedAmount.Add(releaseAmount)
	fullyReleased := newReleased.GreaterThanOrEqual(provision.Amount)
	if err := s.provisionRepo.ApplyProvisionReleaseInTx(ctx, tx, provisionID, newReleased, fullyReleased, userID, time.Now()); err != nil {
		return err
	}

	if err := s.provisionRepo.Commit(ctx, tx); err != nil {
		return err
	}

	logger.Info("Provision released",
		slog.String("provision_id", provisionID),
		slog.String("entry_id", entry.EntryID),
		slog.String("release_amount", releaseAmount.String()),
		slog.Bool("fully_released", fullyReleased),
	)
	return nil
}

// ActiveTotals reports the unreleased remainder of booked provisions up to
// the given year, grouped by type and sorted for a stable response.
func (s *ProvisionService) ActiveTotals(ctx context.Context, year int) (*dto.ProvisionTotalsResponse, error) {
	totals, err := s.provisionRepo.SumRemainingByType(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to sum provisions for year %d: %w", year, err)
	}

	resp := &dto.ProvisionTotalsResponse{Year: year, Totals: []dto.ProvisionTypeTotal{}}
	for provType, total := range totals {
		resp.Totals = append(resp.Totals, dto.ProvisionTypeTotal{
			Type:  string(provType),
			Total: total,
		})
	}
	sort.Slice(resp.Totals, func(i, j int) bool { return resp.Totals[i].Type < resp.Totals[j].Type })
	return resp, nil
}

func (s *ProvisionService) accountsFor(ctx context.Context, codes ...string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account codes: %w", err)
	}
	for _, code := range codes {
		if _, ok := accounts[code]; !ok {
			return nil, fmt.Errorf("%w: account %s missing from chart", apperrors.ErrInternal, code)
		}
	}
	return accounts, nil
}
