package services

import (
	"context"

	"github.com/werkportal/accounting_backend/internal/core/domain"
	"github.com/werkportal/accounting_backend/internal/dto"
)

// DepreciationSvcFacade manages fixed assets and their depreciation
// schedules. Schedule generation is a pure computation; booking posts the
// ledger entry for one schedule row.
type DepreciationSvcFacade interface {
	// CreateAsset registers an asset and persists its generated schedule.
	CreateAsset(ctx context.Context, req dto.CreateAssetRequest, userID string) (*domain.DepreciationAsset, []domain.DepreciationEntry, error)

	// GetAsset retrieves an asset with its schedule.
	GetAsset(ctx context.Context, assetID string) (*domain.DepreciationAsset, []domain.DepreciationEntry, error)

	// BookDepreciation posts the ledger entry for one unbooked schedule row.
	BookDepreciation(ctx context.Context, depEntryID, userID string) error

	// RunYearlyDepreciation books every unbooked schedule row of the given
	// year, collecting per-row failures instead of aborting the batch.
	RunYearlyDepreciation(ctx context.Context, year int, userID string) (*dto.DepreciationRunResult, error)
}
