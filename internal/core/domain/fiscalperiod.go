package domain

import "time"

// ClosingPhase is the state of a fiscal year's closing workflow.
type ClosingPhase string

const (
	PhaseOpen       ClosingPhase = "OPEN"
	PhaseReconciled ClosingPhase = "RECONCILED"
	PhaseLocked     ClosingPhase = "LOCKED"
	PhaseFinalized  ClosingPhase = "FINALIZED"
)

// FiscalPeriodClosing tracks the closing workflow of one fiscal year.
// Phases move OPEN -> RECONCILED -> LOCKED -> FINALIZED; reconciling is
// optional, an OPEN year may be locked directly. LOCKED may be
// administratively unlocked back to OPEN until finalization. Once a year is
// LOCKED or FINALIZED the ledger refuses entries dated within it.
type FiscalPeriodClosing struct {
	Year        int          `json:"year"`
	Phase       ClosingPhase `json:"phase"`
	LockedAt    *time.Time   `json:"lockedAt,omitempty"`
	FinalizedAt *time.Time   `json:"finalizedAt,omitempty"`
	FinalizedBy *string      `json:"finalizedBy,omitempty"`
	AuditFields
}

// AcceptsEntries reports whether the ledger may still post entries dated in
// this year.
func (c FiscalPeriodClosing) AcceptsEntries() bool {
	return c.Phase != PhaseLocked && c.Phase != PhaseFinalized
}
