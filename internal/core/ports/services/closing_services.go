package services

import (
	"context"

	"github.com/werkportal/accounting_backend/internal/dto"
)

// ClosingSvcFacade drives the per-year closing state machine:
// OPEN -> RECONCILED -> LOCKED -> FINALIZED, with an administrative unlock
// from LOCKED back to OPEN until the year is finalized.
type ClosingSvcFacade interface {
	// GetStatus returns the closing record for a year, creating it OPEN on
	// first access.
	GetStatus(ctx context.Context, year int, userID string) (*dto.ClosingResponse, error)

	// Reconcile runs advisory pre-checks and marks the year RECONCILED.
	Reconcile(ctx context.Context, year int, userID string) (*dto.ClosingResponse, error)

	// Close locks the year; from then on the ledger refuses entries dated in it.
	Close(ctx context.Context, year int, userID string) (*dto.ClosingResponse, error)

	// Finalize irreversibly completes the year. Requires LOCKED.
	Finalize(ctx context.Context, year int, userID string) (*dto.ClosingResponse, error)

	// Unlock reverts a locked (not finalized) year back to OPEN.
	Unlock(ctx context.Context, year int, userID string) (*dto.ClosingResponse, error)
}
