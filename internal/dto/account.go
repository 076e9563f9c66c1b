package dto

import (
	"github.com/werkportal/accounting_backend/internal/core/domain"
)

// AccountResponse is the API representation of a chart account.
type AccountResponse struct {
	AccountID   string `json:"accountID"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	AccountType string `json:"accountType"`
	IsActive    bool   `json:"isActive"`
}

// ToAccountResponse converts a domain account.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   a.AccountID,
		Code:        a.Code,
		Name:        a.Name,
		AccountType: string(a.AccountType),
		IsActive:    a.IsActive,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(as []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(as))
	for i := range as {
		out[i] = ToAccountResponse(&as[i])
	}
	return out
}
