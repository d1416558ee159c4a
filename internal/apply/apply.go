package apply

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"toggl-sherpa/internal/domain"
	"toggl-sherpa/internal/ledger"
	"toggl-sherpa/internal/ports"
)

// Orchestrator walks a plan in order, skipping items whose fingerprint is
// already in the ledger and recording every successful remote creation.
type Orchestrator struct {
	Log    *slog.Logger
	Toggl  ports.TogglClient
	Ledger ports.Ledger
}

// Result summarises one apply run.
type Result struct {
	Created      int
	Skipped      int
	SkippedItems []domain.ApplyPlanItem
}

// Run applies the plan. With force, ledger checks are bypassed (entries are
// still recorded). A remote failure aborts the remaining items; everything
// recorded before the failure stays recorded, so a retry run picks up where
// this one stopped.
func (o *Orchestrator) Run(ctx context.Context, plan []domain.ApplyPlanItem, force bool) (Result, error) {
	if o.Toggl == nil || o.Ledger == nil {
		return Result{}, errors.New("apply: orchestrator not initialized: missing dependencies")
	}

	var res Result
	for i, p := range plan {
		fp := ledger.Fingerprint(domain.TSUTC(p.Start), domain.TSUTC(p.Stop), p.Description)

		if !force {
			applied, err := o.Ledger.AlreadyApplied(ctx, fp)
			if err != nil {
				return res, fmt.Errorf("apply: ledger check for item %d: %w", i+1, err)
			}
			if applied {
				res.Skipped++
				res.SkippedItems = append(res.SkippedItems, p)
				o.Log.Debug("skipping already applied entry",
					slog.String("fingerprint", fp),
					slog.String("description", p.Description))
				continue
			}
		}

		id, err := o.Toggl.CreateTimeEntry(ctx, p)
		if err != nil {
			return res, fmt.Errorf("apply: creating entry %d (%s): %w", i+1, p.Description, err)
		}

		if err := o.Ledger.RecordApplied(ctx, domain.LedgerEntry{
			TS:          time.Now().UTC().Truncate(time.Second),
			Fingerprint: fp,
			Start:       p.Start,
			Stop:        p.Stop,
			Description: p.Description,
			TimeEntryID: id,
		}); err != nil {
			return res, fmt.Errorf("apply: recording entry %d: %w", i+1, err)
		}

		res.Created++
		o.Log.Info("created time entry",
			slog.Time("start", p.Start),
			slog.Time("stop", p.Stop),
			slog.String("description", p.Description))
	}
	return res, nil
}
