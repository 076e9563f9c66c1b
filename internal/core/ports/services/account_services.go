package services

import (
	"context"

	"github.com/werkportal/accounting_backend/internal/core/domain"
)

// AccountSvcFacade exposes read access to the chart of accounts.
type AccountSvcFacade interface {
	// GetAccountByCode retrieves an active account by its chart code.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// ListAccounts lists the full chart ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}
