package dto

import (
	"time"

	"github.com/werkportal/accounting_backend/internal/core/domain"
)

// ClosingResponse is the API representation of a fiscal year's closing state.
type ClosingResponse struct {
	Year        int        `json:"year"`
	Phase       string     `json:"phase"`
	LockedAt    *time.Time `json:"lockedAt,omitempty"`
	FinalizedAt *time.Time `json:"finalizedAt,omitempty"`
	FinalizedBy *string    `json:"finalizedBy,omitempty"`
	// Advisory findings from the reconcile pre-checks; never blocking.
	Warnings []string `json:"warnings,omitempty"`
}

// ToClosingResponse converts a domain closing record.
func ToClosingResponse(c *domain.FiscalPeriodClosing) ClosingResponse {
	return ClosingResponse{
		Year:        c.Year,
		Phase:       string(c.Phase),
		LockedAt:    c.LockedAt,
		FinalizedAt: c.FinalizedAt,
		FinalizedBy: c.FinalizedBy,
	}
}
