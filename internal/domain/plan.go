package domain

import "time"

// ApplyPlanItem is one apply-ready time entry derived from a block.
// Stateless; discarded after the apply loop.
type ApplyPlanItem struct {
	Start       time.Time
	Stop        time.Time
	Description string
	Tags        []string
	ProjectID   *int64
}

// LedgerEntry is one row of the idempotency ledger. Append-only; unique on
// Fingerprint.
type LedgerEntry struct {
	TS          time.Time
	Fingerprint string
	Start       time.Time
	Stop        time.Time
	Description string
	TimeEntryID *int64
}
