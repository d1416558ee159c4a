package timesheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"toggl-sherpa/internal/domain"
)

// WriteCSV writes a Toggl Track import CSV for the given blocks, using the
// blocks' UTC timestamps.
func WriteCSV(path string, blocks []domain.TimesheetBlock) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("writing csv %s: %w", path, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing csv %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Description", "Project", "Tags", "Start date", "Start time", "Duration"}); err != nil {
		f.Close()
		return err
	}

	for _, b := range blocks {
		proj := ""
		if b.ProjectSuggestion != nil {
			proj = *b.ProjectSuggestion
		}
		start := b.Start.UTC()
		row := []string{
			b.Label,
			proj,
			strings.Join(b.TagsSuggestion, ","),
			start.Format("2006-01-02"),
			start.Format("15:04:05"),
			formatDurationHHMMSS(b.Seconds),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("writing csv %s: %w", path, err)
	}
	return f.Close()
}

func formatDurationHHMMSS(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
