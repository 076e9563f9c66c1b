package services

import (
	"context"
	"fmt"

	"github.com/werkportal/accounting_backend/internal/core/domain"
	portsrepo "github.com/werkportal/accounting_backend/internal/core/ports/repositories"
	portssvc "github.com/werkportal/accounting_backend/internal/core/ports/services"
)

// AccountService exposes the seeded chart of accounts.
type AccountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

func (s *AccountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", code, err)
	}
	return account, nil
}

func (s *AccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}
