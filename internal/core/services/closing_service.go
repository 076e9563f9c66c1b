package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/werkportal/accounting_backend/internal/apperrors"
	"github.com/werkportal/accounting_backend/internal/core/domain"
	portsrepo "github.com/werkportal/accounting_backend/internal/core/ports/repositories"
	portssvc "github.com/werkportal/accounting_backend/internal/core/ports/services"
	"github.com/werkportal/accounting_backend/internal/dto"
	"github.com/werkportal/accounting_backend/internal/middleware"
)

// ClosingService drives the closing workflow of a fiscal year. Transitions
// are persisted as conditional updates, so racing administrators cannot move
// the same year twice.
type ClosingService struct {
	closingRepo      portsrepo.ClosingRepositoryFacade
	provisionRepo    portsrepo.ProvisionRepositoryFacade
	depreciationRepo portsrepo.DepreciationRepositoryFacade
}

func NewClosingService(closingRepo portsrepo.ClosingRepositoryFacade, provisionRepo portsrepo.ProvisionRepositoryFacade, depreciationRepo portsrepo.DepreciationRepositoryFacade) *ClosingService {
	return &ClosingService{
		closingRepo:      closingRepo,
		provisionRepo:    provisionRepo,
		depreciationRepo: depreciationRepo,
	}
}

var _ portssvc.ClosingSvcFacade = (*ClosingService)(nil)

// GetStatus returns the closing record for a year, creating it OPEN on
// first access.
func (s *ClosingService) GetStatus(ctx context.Context, year int, userID string) (*dto.ClosingResponse, error) {
	closing, err := s.closingRepo.EnsureClosing(ctx, year, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get closing status for year %d: %w", year, err)
	}
	resp := dto.ToClosingResponse(closing)
	return &resp, nil
}

// Reconcile runs the advisory pre-checks and marks the year RECONCILED.
// The findings are reported as warnings and never block the transition;
// whether to proceed with open items is the accountant's call.
func (s *ClosingService) Reconcile(ctx context.Context, year int, userID string) (*dto.ClosingResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.closingRepo.EnsureClosing(ctx, year, userID); err != nil {
		return nil, fmt.Errorf("failed to prepare closing record for year %d: %w", year, err)
	}

	warnings, err := s.reconcileWarnings(ctx, year)
	if err != nil {
		return nil, err
	}

	ok, err := s.closingRepo.TransitionPhase(ctx, year, []domain.ClosingPhase{domain.PhaseOpen}, domain.PhaseReconciled, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.transitionConflict(ctx, year, "reconciled", "OPEN")
	}

	logger.Info("Fiscal year reconciled",
		slog.Int("year", year),
		slog.Int("warnings", len(warnings)),
	)
	return s.responseWithWarnings(ctx, year, warnings)
}

// Close locks the year. Reconciling first is optional; an OPEN year locks
// directly. From then on the ledger refuses entries dated in it.
func (s *ClosingService) Close(ctx context.Context, year int, userID string) (*dto.ClosingResponse, error) {
	if _, err := s.closingRepo.EnsureClosing(ctx, year, userID); err != nil {
		return nil, fmt.Errorf("failed to prepare closing record for year %d: %w", year, err)
	}

	ok, err := s.closingRepo.TransitionPhase(ctx, year, []domain.ClosingPhase{domain.PhaseOpen, domain.PhaseReconciled}, domain.PhaseLocked, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.transitionConflict(ctx, year, "closed", "OPEN or RECONCILED")
	}

	middleware.GetLoggerFromCtx(ctx).Info("Fiscal year locked", slog.Int("year", year))
	return s.responseWithWarnings(ctx, year, nil)
}

// Finalize irreversibly completes the year. Requires LOCKED.
func (s *ClosingService) Finalize(ctx context.Context, year int, userID string) (*dto.ClosingResponse, error) {
	ok, err := s.closingRepo.TransitionPhase(ctx, year, []domain.ClosingPhase{domain.PhaseLocked}, domain.PhaseFinalized, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.transitionConflict(ctx, year, "finalized", "LOCKED")
	}

	middleware.GetLoggerFromCtx(ctx).Info("Fiscal year finalized", slog.Int("year", year))
	return s.responseWithWarnings(ctx, year, nil)
}

// Unlock reverts a LOCKED year back to OPEN. FINALIZED years never reopen.
func (s *ClosingService) Unlock(ctx context.Context, year int, userID string) (*dto.ClosingResponse, error) {
	ok, err := s.closingRepo.TransitionPhase(ctx, year, []domain.ClosingPhase{domain.PhaseLocked}, domain.PhaseOpen, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.transitionConflict(ctx, year, "unlocked", "LOCKED")
	}

	middleware.GetLoggerFromCtx(ctx).Warn("Fiscal year unlocked", slog.Int("year", year))
	return s.responseWithWarnings(ctx, year, nil)
}

// reconcileWarnings collects the advisory pre-check findings for a year.
func (s *ClosingService) reconcileWarnings(ctx context.Context, year int) ([]string, error) {
	var warnings []string

	unbookedDep, err := s.depreciationRepo.CountUnbookedByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to count unbooked depreciation: %w", err)
	}
	if unbookedDep > 0 {
		warnings = append(warnings, fmt.Sprintf("%d depreciation schedule rows up to %d are not booked yet", unbookedDep, year))
	}

	unreleased, err := s.provisionRepo.CountUnreleasedByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to count unreleased provisions: %w", err)
	}
	if unreleased > 0 {
		warnings = append(warnings, fmt.Sprintf("%d booked provisions up to %d are not fully released", unreleased, year))
	}

	return warnings, nil
}

// transitionConflict builds a precise conflict error naming the phase the
// year is actually in.
func (s *ClosingService) transitionConflict(ctx context.Context, year int, action string, required string) error {
	closing, err := s.closingRepo.FindClosingByYear(ctx, year)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: year %d has no closing record, it must be %s first", apperrors.ErrConflict, year, required)
		}
		return err
	}
	return fmt.Errorf("%w: year %d cannot be %s while %s, requires %s", apperrors.ErrConflict, year, action, closing.Phase, required)
}

func (s *ClosingService) responseWithWarnings(ctx context.Context, year int, warnings []string) (*dto.ClosingResponse, error) {
	closing, err := s.closingRepo.FindClosingByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load closing record for year %d: %w", year, err)
	}
	resp := dto.ToClosingResponse(closing)
	resp.Warnings = warnings
	return &resp, nil
}
