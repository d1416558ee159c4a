package app

import (
	"context"
	"log/slog"
	"time"

	"toggl-sherpa/internal/adapter/sqlite"
	tg "toggl-sherpa/internal/adapter/toggl"
	"toggl-sherpa/internal/apply"
	"toggl-sherpa/internal/config"
	"toggl-sherpa/internal/domain"
	"toggl-sherpa/internal/ingest"
	"toggl-sherpa/internal/redact"
	"toggl-sherpa/internal/summarise"
	"toggl-sherpa/internal/usecase"
)

// App wires adapters and use cases around one sqlite store.
type App struct {
	Log   *slog.Logger
	Cfg   config.Config
	Store *sqlite.Store
}

// New opens the store (running migrations) and returns the wired app.
func New(ctx context.Context, log *slog.Logger, cfg config.Config) (*App, error) {
	store, err := sqlite.Open(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}
	return &App{Log: log, Cfg: cfg, Store: store}, nil
}

func (a *App) Close() error { return a.Store.Close() }

// SummariseDay segments one UTC day into draft blocks.
func (a *App) SummariseDay(ctx context.Context, date time.Time, opts summarise.Options) ([]domain.TimesheetBlock, error) {
	from, to := usecase.DayBounds(date)
	uc := &usecase.DayUseCase{Log: a.Log, Source: a.Store, Opts: opts}
	return uc.Run(ctx, from, to)
}

// ApplyPlan pushes a plan through the ledger-gated orchestrator. The caller
// must have validated Toggl credentials via cfg.RequireToggl.
func (a *App) ApplyPlan(ctx context.Context, plan []domain.ApplyPlanItem, force bool) (apply.Result, error) {
	client := tg.NewClient(a.Cfg.Toggl.BaseURL, a.Cfg.Toggl.APIToken, a.Cfg.Toggl.WorkspaceID, a.Log)
	orch := &apply.Orchestrator{Log: a.Log, Toggl: client, Ledger: a.Store}
	return orch.Run(ctx, plan, force)
}

// Ingestor returns the tab-event ingestor configured with the allowlist.
func (a *App) Ingestor() *ingest.Ingestor {
	return &ingest.Ingestor{
		Store:      a.Store,
		Allow:      redact.ParseAllowlist(a.Cfg.AllowHosts),
		MaxLinkAge: ingest.DefaultMaxLinkAge,
	}
}
