package repositories

import (
	"context"

	"github.com/werkportal/accounting_backend/internal/core/domain"
)

// AccountRepositoryFacade defines read access to the chart of accounts.
// The chart is seeded by migration and treated as immutable at runtime.
type AccountRepositoryFacade interface {
	// FindAccountByCode retrieves an active account by its chart code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByCodes retrieves multiple active accounts keyed by code.
	// Missing codes are simply absent from the result map.
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the full chart of accounts ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}
