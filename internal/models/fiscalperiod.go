package models

import "time"

// FiscalPeriodClosing is the one-row-per-year fiscal_period_closing record.
type FiscalPeriodClosing struct {
	Year        int        `db:"year"`
	Phase       string     `db:"phase"`
	LockedAt    *time.Time `db:"locked_at"`
	FinalizedAt *time.Time `db:"finalized_at"`
	FinalizedBy *string    `db:"finalized_by"`
	AuditFields
}
