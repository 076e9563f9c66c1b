package domain

import (
	"github.com/shopspring/decimal"
)

// ProvisionType categorizes a provision; it decides the liability account
// the booking credits.
type ProvisionType string

const (
	ProvisionTax           ProvisionType = "TAX"
	ProvisionVacation      ProvisionType = "VACATION"
	ProvisionWarranty      ProvisionType = "WARRANTY"
	ProvisionLegal         ProvisionType = "LEGAL"
	ProvisionRestructuring ProvisionType = "RESTRUCTURING"
	ProvisionPension       ProvisionType = "PENSION"
	ProvisionOther         ProvisionType = "OTHER"
)

// LiabilityAccount returns the chart account credited when a provision of
// this type is booked (and debited when it is released).
func (t ProvisionType) LiabilityAccount() string {
	switch t {
	case ProvisionTax:
		return AccountProvisionTax
	case ProvisionVacation:
		return AccountProvisionVacation
	case ProvisionWarranty:
		return AccountProvisionWarranty
	case ProvisionPension:
		return AccountProvisionPension
	default:
		return AccountProvisionOther
	}
}

// Provision is a liability set aside for an anticipated future obligation.
// Lifecycle: created unbooked, booked (one journal entry), then released
// partially or fully (one reversing entry per release). Released flips to
// true once ReleasedAmount reaches Amount.
type Provision struct {
	ProvisionID    string          `json:"provisionID"` // Primary Key (UUID)
	Type           ProvisionType   `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Year           int             `json:"year"` // Fiscal year the provision belongs to
	Description    string          `json:"description"`
	Released       bool            `json:"released"`
	ReleasedAmount decimal.Decimal `json:"releasedAmount"` // Cumulative, never exceeds Amount
	BookedEntryID  *string         `json:"bookedEntryID,omitempty"`
	AuditFields
}

// Remaining returns the still-unreleased part of the provision.
func (p Provision) Remaining() decimal.Decimal {
	return p.Amount.Sub(p.ReleasedAmount)
}
