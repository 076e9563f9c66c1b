package models

import "github.com/shopspring/decimal"

// ProvisionType categorizes a provision.
type ProvisionType string

// Provision is a provisions row.
type Provision struct {
	ProvisionID    string          `db:"provision_id"`
	Type           ProvisionType   `db:"type"`
	Amount         decimal.Decimal `db:"amount"`
	Year           int             `db:"year"`
	Description    string          `db:"description"`
	Released       bool            `db:"released"`
	ReleasedAmount decimal.Decimal `db:"released_amount"`
	BookedEntryID  *string         `db:"booked_entry_id"`
	AuditFields
}
