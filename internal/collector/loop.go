package collector

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"toggl-sherpa/internal/domain"
)

// SampleStore is the slice of the sqlite store the collector needs.
type SampleStore interface {
	InsertSample(ctx context.Context, sample domain.ActivitySample, rawJSON string) (int64, error)
}

// InsertOnce captures a single sample and stores it.
func InsertOnce(ctx context.Context, store SampleStore) error {
	fs, err := GetFocusSample(ctx)
	if err != nil {
		return err
	}
	return insert(ctx, store, fs)
}

// RunLoop samples at the given interval until the context is canceled.
// Capture failures are recorded as empty samples so gaps stay debuggable.
func RunLoop(ctx context.Context, store SampleStore, interval time.Duration, log *slog.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		fs, err := GetFocusSample(ctx)
		if err != nil {
			log.Warn("focus capture failed", slog.String("error", err.Error()))
			fs = FocusSample{Raw: map[string]any{"error": err.Error()}}
		}
		if err := insert(ctx, store, fs); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func insert(ctx context.Context, store SampleStore, fs FocusSample) error {
	raw, _ := json.Marshal(fs.Raw)
	_, err := store.InsertSample(ctx, domain.ActivitySample{
		TS:           time.Now().UTC().Truncate(time.Second),
		IdleMS:       fs.IdleMS,
		FocusTitle:   fs.Title,
		FocusWMClass: fs.WMClass,
		FocusPID:     fs.PID,
	}, string(raw))
	return err
}
