package repositories

import (
	"context"

	"github.com/werkportal/accounting_backend/internal/core/domain"
)

// ClosingRepositoryFacade defines persistence for the per-year fiscal period
// closing records.
type ClosingRepositoryFacade interface {
	// FindClosingByYear retrieves the closing record for a year.
	FindClosingByYear(ctx context.Context, year int) (*domain.FiscalPeriodClosing, error)

	// EnsureClosing creates the OPEN closing record for a year if it does not
	// exist yet and returns the current record either way.
	EnsureClosing(ctx context.Context, year int, userID string) (*domain.FiscalPeriodClosing, error)

	// TransitionPhase atomically moves the year's phase to `to` provided the
	// current phase is one of `allowedFrom`. It reports false without error
	// when the precondition does not hold, so callers can surface a precise
	// conflict; timestamps (lockedAt, finalizedAt) are maintained per target
	// phase.
	TransitionPhase(ctx context.Context, year int, allowedFrom []domain.ClosingPhase, to domain.ClosingPhase, userID string) (bool, error)
}
