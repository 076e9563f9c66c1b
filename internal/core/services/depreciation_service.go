package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/werkportal/accounting_backend/internal/apperrors"
	"github.com/werkportal/accounting_backend/internal/core/domain"
	portsrepo "github.com/werkportal/accounting_backend/internal/core/ports/repositories"
	portssvc "github.com/werkportal/accounting_backend/internal/core/ports/services"
	"github.com/werkportal/accounting_backend/internal/dto"
	"github.com/werkportal/accounting_backend/internal/middleware"
)

// DepreciationService manages fixed assets, their generated schedules and
// the posting of schedule rows to the ledger.
type DepreciationService struct {
	depreciationRepo portsrepo.DepreciationRepositoryWithTx
	accountRepo      portsrepo.AccountRepositoryFacade
	ledgerSvc        portssvc.LedgerSvcFacade
}

func NewDepreciationService(depreciationRepo portsrepo.DepreciationRepositoryWithTx, accountRepo portsrepo.AccountRepositoryFacade, ledgerSvc portssvc.LedgerSvcFacade) *DepreciationService {
	return &DepreciationService{
		depreciationRepo: depreciationRepo,
		accountRepo:      accountRepo,
		ledgerSvc:        ledgerSvc,
	}
}

var _ portssvc.DepreciationSvcFacade = (*DepreciationService)(nil)

// CreateAsset registers an asset and persists its full depreciation
// schedule, derived once at creation time.
func (s *DepreciationService) CreateAsset(ctx context.Context, req dto.CreateAssetRequest, userID string) (*domain.DepreciationAsset, []domain.DepreciationEntry, error) {
	now := time.Now()
	asset := domain.DepreciationAsset{
		AssetID:         uuid.NewString(),
		Name:            req.Name,
		Category:        req.Category,
		AcquisitionDate: req.AcquisitionDate,
		AcquisitionCost: req.AcquisitionCost,
		UsefulLifeYears: req.UsefulLifeYears,
		Method:          domain.DepreciationMethod(req.Method),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	schedule := domain.GenerateSchedule(asset)
	if len(schedule) == 0 {
		return nil, nil, fmt.Errorf("%w: asset yields an empty depreciation schedule", apperrors.ErrValidation)
	}
	for i := range schedule {
		schedule[i].DepEntryID = uuid.NewString()
		schedule[i].AuditFields = asset.AuditFields
	}

	if err := s.depreciationRepo.SaveAsset(ctx, asset); err != nil {
		return nil, nil, fmt.Errorf("failed to create asset: %w", err)
	}
	if err := s.depreciationRepo.SaveScheduleEntries(ctx, schedule); err != nil {
		return nil, nil, fmt.Errorf("failed to persist depreciation schedule: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Depreciation asset created",
		slog.String("asset_id", asset.AssetID),
		slog.String("method", string(asset.Method)),
		slog.Int("schedule_rows", len(schedule)),
	)
	return &asset, schedule, nil
}

// GetAsset retrieves an asset with its schedule.
func (s *DepreciationService) GetAsset(ctx context.Context, assetID string) (*domain.DepreciationAsset, []domain.DepreciationEntry, error) {
	asset, err := s.depreciationRepo.FindAssetByID(ctx, assetID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get asset %s: %w", assetID, err)
	}
	schedule, err := s.depreciationRepo.ListScheduleByAsset(ctx, assetID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get schedule for asset %s: %w", assetID, err)
	}
	return asset, schedule, nil
}

// BookDepreciation posts the ledger entry for one unbooked schedule row
// (debit depreciation expense, credit accumulated depreciation) and marks
// the row booked, all in one transaction.
func (s *DepreciationService) BookDepreciation(ctx context.Context, depEntryID, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, []string{domain.AccountDepreciationExpense, domain.AccountAccumulatedDep})
	if err != nil {
		return fmt.Errorf("failed to resolve depreciation accounts: %w", err)
	}
	expense, okE := accounts[domain.AccountDepreciationExpense]
	accumulated, okA := accounts[domain.AccountAccumulatedDep]
	if !okE || !okA {
		return fmt.Errorf("%w: depreciation accounts missing from chart", apperrors.ErrInternal)
	}

	tx, err := s.depreciationRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.depreciationRepo.Rollback(ctx, tx)

	depEntry, err := s.depreciationRepo.FindDepEntryByIDForUpdate(ctx, tx, depEntryID)
	if err != nil {
		return fmt.Errorf("failed to load depreciation row %s: %w", depEntryID, err)
	}
	if depEntry.BookedEntryID != nil {
		return fmt.Errorf("%w: depreciation row %s is already booked", apperrors.ErrConflict, depEntryID)
	}

	asset, err := s.depreciationRepo.FindAssetByID(ctx, depEntry.AssetID)
	if err != nil {
		return fmt.Errorf("failed to load asset %s: %w", depEntry.AssetID, err)
	}

	sourceID := depEntry.DepEntryID
	entry, err := s.ledgerSvc.PostEntryInTx(ctx, tx, domain.EntryDraft{
		BookingDate:     time.Date(depEntry.Year, time.December, 31, 0, 0, 0, 0, time.UTC),
		DebitAccountID:  expense.AccountID,
		CreditAccountID: accumulated.AccountID,
		Amount:          depEntry.DepreciationAmount,
		Description:     "Abschreibung " + asset.Name + " " + strconv.Itoa(depEntry.Year),
		SourceType:      domain.SourceDepreciation,
		SourceID:        &sourceID,
		CreatedBy:       userID,
	})
	if err != nil {
		return fmt.Errorf("failed to post depreciation entry: %w", err)
	}

	if err := s.depreciationRepo.SetDepEntryBookedInTx(ctx, tx, depEntryID, entry.EntryID, userID, time.Now()); err != nil {
		return fmt.Errorf("failed to mark depreciation row %s booked: %w", depEntryID, err)
	}

	if err := s.depreciationRepo.Commit(ctx, tx); err != nil {
		return err
	}

	logger.Info("Depreciation booked",
		slog.String("dep_entry_id", depEntryID),
		slog.String("entry_id", entry.EntryID),
		slog.String("document_number", entry.DocumentNumber()),
	)
	return nil
}

// RunYearlyDepreciation books every unbooked schedule row of the given
// year. Per-row failures are collected, not fatal, so one bad row cannot
// block the year-end run.
func (s *DepreciationService) RunYearlyDepreciation(ctx context.Context, year int, userID string) (*dto.DepreciationRunResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	unbooked, err := s.depreciationRepo.ListUnbookedByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list unbooked depreciation for year %d: %w", year, err)
	}

	result := &dto.DepreciationRunResult{Year: year, Processed: len(unbooked)}
	for _, row := range unbooked {
		if err := s.BookDepreciation(ctx, row.DepEntryID, userID); err != nil {
			logger.Warn("Depreciation row failed during yearly run",
				slog.String("dep_entry_id", row.DepEntryID),
				slog.String("error", err.Error()),
			)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", row.DepEntryID, err))
			continue
		}
		result.Booked++
	}

	logger.Info("Yearly depreciation run completed",
		slog.Int("year", year),
		slog.Int("processed", result.Processed),
		slog.Int("booked", result.Booked),
		slog.Int("failed", len(result.Errors)),
	)
	return result, nil
}
