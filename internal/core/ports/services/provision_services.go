package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/werkportal/accounting_backend/internal/core/domain"
	"github.com/werkportal/accounting_backend/internal/dto"
)

// ProvisionSvcFacade manages the provision lifecycle: create unbooked, book
// once, release partially or fully through reversing ledger entries.
type ProvisionSvcFacade interface {
	// CreateProvision creates an unbooked provision.
	CreateProvision(ctx context.Context, req dto.CreateProvisionRequest, userID string) (*domain.Provision, error)

	// GetProvision retrieves a provision by id.
	GetProvision(ctx context.Context, provisionID string) (*domain.Provision, error)

	// ListProvisionsByYear lists all provisions of a fiscal year.
	ListProvisionsByYear(ctx context.Context, year int) ([]domain.Provision, error)

	// Book posts the provision's expense entry and links it to the provision.
	Book(ctx context.Context, provisionID, userID string) error

	// Release books out part or all of a provision. A nil amount releases
	// the full remainder; the provision flips to released once the
	// cumulative released amount reaches its amount.
	Release(ctx context.Context, provisionID, userID string, amount *decimal.Decimal, reason string) error

	// ActiveTotals reports the unreleased remainder of booked provisions up
	// to the given year, grouped by provision type.
	ActiveTotals(ctx context.Context, year int) (*dto.ProvisionTotalsResponse, error)
}
