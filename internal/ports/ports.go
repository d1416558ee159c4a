package ports

import (
	"context"
	"time"

	"toggl-sherpa/internal/domain"
)

// ActivitySource supplies ordered samples and tab events for a UTC range.
// Both sequences are ascending by timestamp.
type ActivitySource interface {
	FetchSamples(ctx context.Context, from, to time.Time) ([]domain.ActivitySample, error)
	FetchTabEvents(ctx context.Context, from, to time.Time) ([]domain.TabEvent, error)
}

// TogglClient creates entries in and reads reference data from Toggl Track.
type TogglClient interface {
	// CreateTimeEntry returns the remote entry id when the response carries
	// one; the Toggl response shape does not guarantee it.
	CreateTimeEntry(ctx context.Context, item domain.ApplyPlanItem) (*int64, error)
	ListProjects(ctx context.Context, workspaceID int64) ([]domain.RemoteProject, error)
	ListClients(ctx context.Context, workspaceID int64) ([]domain.RemoteClient, error)
}

// Ledger is the durable record of entries already applied remotely.
type Ledger interface {
	AlreadyApplied(ctx context.Context, fingerprint string) (bool, error)
	// RecordApplied inserts a ledger row; inserting an existing fingerprint
	// is a no-op, not an error.
	RecordApplied(ctx context.Context, entry domain.LedgerEntry) error
}
