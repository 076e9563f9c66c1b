package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/werkportal/accounting_backend/internal/core/domain"
)

// CreateProvisionRequest is the payload for creating an unbooked provision.
type CreateProvisionRequest struct {
	Type        string          `json:"type" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,gtzerodecimal"`
	Year        int             `json:"year" binding:"required"`
	Description string          `json:"description" binding:"required"`
}

// ReleaseProvisionRequest releases part or all of a booked provision. A nil
// amount releases the full remainder.
type ReleaseProvisionRequest struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Reason string           `json:"reason,omitempty"`
}

// ProvisionTypeTotal is the unreleased remainder of one provision type.
type ProvisionTypeTotal struct {
	Type  string          `json:"type"`
	Total decimal.Decimal `json:"total"`
}

// ProvisionTotalsResponse reports booked but unreleased provision amounts
// up to a fiscal year, grouped by type.
type ProvisionTotalsResponse struct {
	Year   int                  `json:"year"`
	Totals []ProvisionTypeTotal `json:"totals"`
}

// ProvisionResponse is the API representation of a provision.
type ProvisionResponse struct {
	ProvisionID    string          `json:"provisionID"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Year           int             `json:"year"`
	Description    string          `json:"description"`
	Released       bool            `json:"released"`
	ReleasedAmount decimal.Decimal `json:"releasedAmount"`
	BookedEntryID  *string         `json:"bookedEntryID,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToProvisionResponse converts a domain provision to its API representation.
func ToProvisionResponse(p *domain.Provision) ProvisionResponse {
	return ProvisionResponse{
		ProvisionID:    p.ProvisionID,
		Type:           string(p.Type),
		Amount:         p.Amount,
		Year:           p.Year,
		Description:    p.Description,
		Released:       p.Released,
		ReleasedAmount: p.ReleasedAmount,
		BookedEntryID:  p.BookedEntryID,
		CreatedAt:      p.CreatedAt,
	}
}

// ToProvisionResponses converts a slice of domain provisions.
func ToProvisionResponses(ps []domain.Provision) []ProvisionResponse {
	out := make([]ProvisionResponse, len(ps))
	for i := range ps {
		out[i] = ToProvisionResponse(&ps[i])
	}
	return out
}
