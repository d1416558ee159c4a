// Package timesheet owns the block interchange format shared by the
// segmentation, review and merge stages, plus the post-review merge pass and
// the human-facing report/export renderers.
package timesheet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"toggl-sherpa/internal/domain"
)

// wireEvidence mirrors one evidence object on disk. Pointer fields let the
// loader distinguish missing required fields from zero values.
type wireEvidence struct {
	TS            *time.Time `json:"ts_utc"`
	Allowed       *bool      `json:"allowed"`
	URL           *string    `json:"url"`
	Title         *string    `json:"title"`
	URLRedacted   *string    `json:"url_redacted"`
	TitleRedacted *string    `json:"title_redacted"`
}

type wireBlock struct {
	Start             *time.Time     `json:"start_ts_utc"`
	End               *time.Time     `json:"end_ts_utc"`
	Seconds           *int64         `json:"seconds"`
	Label             *string        `json:"label"`
	ProjectSuggestion *string        `json:"project_suggestion"`
	TagsSuggestion    []string       `json:"tags_suggestion"`
	Evidence          []wireEvidence `json:"evidence"`
}

// Load reads a block list from path. A malformed record fails the whole
// load, nothing is partially accepted, and the error names the offending
// block so it can be located in the file.
func Load(path string) ([]domain.TimesheetBlock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading blocks %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses the interchange JSON held in data.
func Decode(data []byte) ([]domain.TimesheetBlock, error) {
	var wire []wireBlock
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decoding blocks: %w", err)
	}

	blocks := make([]domain.TimesheetBlock, 0, len(wire))
	for i, w := range wire {
		switch {
		case w.Start == nil:
			return nil, fmt.Errorf("block[%d]: missing start_ts_utc", i)
		case w.End == nil:
			return nil, fmt.Errorf("block[%d]: missing end_ts_utc", i)
		case w.Seconds == nil:
			return nil, fmt.Errorf("block[%d]: missing seconds", i)
		case w.Label == nil:
			return nil, fmt.Errorf("block[%d]: missing label", i)
		}

		ev := make([]domain.EvidenceItem, 0, len(w.Evidence))
		for j, e := range w.Evidence {
			if e.TS == nil {
				return nil, fmt.Errorf("block[%d].evidence[%d]: missing ts_utc", i, j)
			}
			if e.Allowed == nil {
				return nil, fmt.Errorf("block[%d].evidence[%d]: missing allowed", i, j)
			}
			ev = append(ev, domain.EvidenceItem{
				TS:            *e.TS,
				Allowed:       *e.Allowed,
				URL:           e.URL,
				Title:         e.Title,
				URLRedacted:   e.URLRedacted,
				TitleRedacted: e.TitleRedacted,
			})
		}

		tags := w.TagsSuggestion
		if tags == nil {
			tags = []string{}
		}
		blocks = append(blocks, domain.TimesheetBlock{
			Start:             *w.Start,
			End:               *w.End,
			Seconds:           *w.Seconds,
			Label:             *w.Label,
			ProjectSuggestion: w.ProjectSuggestion,
			TagsSuggestion:    tags,
			Evidence:          ev,
		})
	}
	return blocks, nil
}

// Write stores a block list at path as indented interchange JSON.
func Write(path string, blocks []domain.TimesheetBlock) error {
	data, err := Encode(blocks)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("writing blocks %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing blocks %s: %w", path, err)
	}
	return nil
}

// Encode renders the interchange JSON. Nil tag/evidence slices are written
// as empty arrays so the format round-trips without nulls.
func Encode(blocks []domain.TimesheetBlock) ([]byte, error) {
	out := make([]domain.TimesheetBlock, len(blocks))
	copy(out, blocks)
	for i := range out {
		if out[i].TagsSuggestion == nil {
			out[i].TagsSuggestion = []string{}
		}
		if out[i].Evidence == nil {
			out[i].Evidence = []domain.EvidenceItem{}
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding blocks: %w", err)
	}
	return append(data, '\n'), nil
}
