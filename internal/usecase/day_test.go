package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"toggl-sherpa/internal/domain"
	"toggl-sherpa/internal/summarise"
)

type fakeSource struct {
	samples []domain.ActivitySample
	tabs    []domain.TabEvent
	err     error

	gotFrom, gotTo time.Time
}

func (f *fakeSource) FetchSamples(_ context.Context, from, to time.Time) ([]domain.ActivitySample, error) {
	f.gotFrom, f.gotTo = from, to
	return f.samples, f.err
}

func (f *fakeSource) FetchTabEvents(context.Context, time.Time, time.Time) ([]domain.TabEvent, error) {
	return f.tabs, f.err
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDayBounds(t *testing.T) {
	d := time.Date(2025, 3, 10, 14, 30, 12, 0, time.UTC)
	from, to := DayBounds(d)

	if !from.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("from = %v", from)
	}
	if !to.Equal(time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("to = %v", to)
	}
}

func TestDayUseCaseRun(t *testing.T) {
	idle := int64(0)
	wm := "code"
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	src := &fakeSource{samples: []domain.ActivitySample{
		{ID: 1, TS: base, IdleMS: &idle, FocusWMClass: &wm},
		{ID: 2, TS: base.Add(time.Minute), IdleMS: &idle, FocusWMClass: &wm},
	}}

	uc := &DayUseCase{Log: discard(), Source: src, Opts: summarise.DefaultOptions()}
	from, to := DayBounds(base)
	blocks, err := uc.Run(context.Background(), from, to)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if !src.gotFrom.Equal(from) || !src.gotTo.Equal(to) {
		t.Errorf("range passed through: %v..%v", src.gotFrom, src.gotTo)
	}
}

func TestDayUseCaseSourceError(t *testing.T) {
	src := &fakeSource{err: errors.New("boom")}
	uc := &DayUseCase{Log: discard(), Source: src, Opts: summarise.DefaultOptions()}
	if _, err := uc.Run(context.Background(), time.Now(), time.Now()); err == nil {
		t.Fatal("expected an error")
	}
}

func TestDayUseCaseMissingSource(t *testing.T) {
	uc := &DayUseCase{Log: discard()}
	if _, err := uc.Run(context.Background(), time.Now(), time.Now()); err == nil {
		t.Fatal("expected an error for a missing source")
	}
}
