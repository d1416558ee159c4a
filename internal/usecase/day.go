package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"toggl-sherpa/internal/domain"
	"toggl-sherpa/internal/ports"
	"toggl-sherpa/internal/summarise"
)

// DayUseCase coordinates fetching a day's activity and segmenting it into
// draft blocks.
type DayUseCase struct {
	Log    *slog.Logger
	Source ports.ActivitySource
	Opts   summarise.Options
}

func (uc *DayUseCase) Run(ctx context.Context, from, to time.Time) ([]domain.TimesheetBlock, error) {
	if uc.Source == nil {
		return nil, errors.New("usecase not initialized: missing dependencies")
	}
	uc.Log.Info("fetching activity", slog.Time("from", from), slog.Time("to", to))

	samples, err := uc.Source.FetchSamples(ctx, from, to)
	if err != nil {
		return nil, err
	}
	tabs, err := uc.Source.FetchTabEvents(ctx, from, to)
	if err != nil {
		return nil, err
	}
	uc.Log.Info("fetched activity", slog.Int("samples", len(samples)), slog.Int("tab_events", len(tabs)))

	blocks := summarise.Blocks(samples, tabs, uc.Opts)
	uc.Log.Info("segmented blocks", slog.Int("count", len(blocks)))
	return blocks, nil
}

// DayBounds returns the UTC [start, end] range covering one calendar day.
func DayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24*time.Hour - time.Second)
}
