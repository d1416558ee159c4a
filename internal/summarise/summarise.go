// Package summarise turns the day's ordered activity samples and correlated
// tab events into draft timesheet blocks. It is a linear pass over the
// stream: a block stays open until the derived label changes or a time gap
// exceeds the threshold, then it is flushed.
package summarise

import (
	"strings"
	"time"

	"toggl-sherpa/internal/domain"
	"toggl-sherpa/internal/redact"
	"toggl-sherpa/internal/suggest"
)

// RedactedLabel is the label for tabs whose host was not allowlisted.
const RedactedLabel = "browser:[redacted]"

// Options control segmentation thresholds.
type Options struct {
	IdleThresholdMS  int64 // samples with idle_ms >= this are dropped
	GapThresholdS    int64 // a gap strictly greater than this splits
	MinBlockS        int64 // blocks shorter than this are discarded
	AssumedIntervalS int64 // synthetic duration of the final sample
}

// DefaultOptions mirrors the collector's 10s sampling cadence.
func DefaultOptions() Options {
	return Options{
		IdleThresholdMS:  60_000,
		GapThresholdS:    90,
		MinBlockS:        60,
		AssumedIntervalS: 10,
	}
}

// CorrelateTabs maps sample id -> the tab event correlated with it.
// When several events reference the same sample, the latest by timestamp
// wins; on equal timestamps the later event encountered wins. Events without
// a sample reference are ignored.
func CorrelateTabs(tabEvents []domain.TabEvent) map[int64]domain.TabEvent {
	out := make(map[int64]domain.TabEvent)
	for _, t := range tabEvents {
		if t.SampleID == nil {
			continue
		}
		prev, ok := out[*t.SampleID]
		if !ok || !t.TS.Before(prev.TS) {
			out[*t.SampleID] = t
		}
	}
	return out
}

// labelFor derives the block label for one (sample, tab) pair.
func labelFor(sample domain.ActivitySample, tab *domain.TabEvent) string {
	if tab != nil {
		if tab.Allowed && tab.URL != nil {
			host := redact.Hostname(*tab.URL)
			if host == "" {
				host = "browser"
			}
			// Keep it short; evidence carries the details.
			return "browser:" + host
		}
		return RedactedLabel
	}

	wm := "unknown"
	if sample.FocusWMClass != nil && *sample.FocusWMClass != "" {
		wm = *sample.FocusWMClass
	}
	if sample.FocusTitle != nil && *sample.FocusTitle != "" {
		title := *sample.FocusTitle
		// Truncate by runes so a multibyte title never yields a broken label.
		if r := []rune(title); len(r) > 80 {
			title = string(r[:80])
		}
		return strings.TrimSpace(wm + ":" + title)
	}
	return wm
}

// pair is one active sample with its correlated tab event (may be nil).
type pair struct {
	sample domain.ActivitySample
	tab    *domain.TabEvent
}

func evidenceFrom(t *domain.TabEvent) domain.EvidenceItem {
	return domain.EvidenceItem{
		TS:            t.TS,
		Allowed:       t.Allowed,
		URL:           t.URL,
		Title:         t.Title,
		URLRedacted:   t.URLRedacted,
		TitleRedacted: t.TitleRedacted,
	}
}

func secondsBetween(a, b time.Time) int64 {
	return int64(b.Sub(a).Seconds())
}

// Blocks segments ordered samples into timesheet blocks.
//
// Idle samples (idle_ms >= threshold) are dropped up front. A block closes
// when the next sample's label differs or the gap since the previous sample
// strictly exceeds the gap threshold; blocks shorter than the minimum are
// discarded outright, evidence included. The final block is closed at
// last sample + assumed interval so single-sample tails keep a plausible
// duration. The suggestion attached on flush comes from the last
// (sample, tab) pair seen inside the block.
func Blocks(samples []domain.ActivitySample, tabEvents []domain.TabEvent, opts Options) []domain.TimesheetBlock {
	tabMap := CorrelateTabs(tabEvents)

	active := make([]pair, 0, len(samples))
	for _, s := range samples {
		if s.IdleMS != nil && *s.IdleMS >= opts.IdleThresholdMS {
			continue
		}
		p := pair{sample: s}
		if t, ok := tabMap[s.ID]; ok {
			tc := t
			p.tab = &tc
		}
		active = append(active, p)
	}

	if len(active) == 0 {
		return nil
	}

	var blocks []domain.TimesheetBlock

	// The open block, carried explicitly so flush logic lives in one place.
	curStart := active[0].sample.TS
	curLabel := labelFor(active[0].sample, active[0].tab)
	var curEvidence []domain.EvidenceItem
	last := active[0]

	flush := func(end time.Time) {
		secs := secondsBetween(curStart, end)
		if secs < opts.MinBlockS {
			return
		}
		sug := suggest.ForSample(last.sample, last.tab)
		blocks = append(blocks, domain.TimesheetBlock{
			Start:             curStart,
			End:               end,
			Seconds:           secs,
			Label:             curLabel,
			ProjectSuggestion: sug.Project,
			TagsSuggestion:    sug.Tags,
			Evidence:          curEvidence,
		})
	}

	prevTS := active[0].sample.TS
	if active[0].tab != nil {
		curEvidence = append(curEvidence, evidenceFrom(active[0].tab))
	}

	for _, p := range active[1:] {
		label := labelFor(p.sample, p.tab)
		gap := secondsBetween(prevTS, p.sample.TS)

		if label != curLabel || gap > opts.GapThresholdS {
			// Close the current block at the start of this sample.
			flush(p.sample.TS)
			curStart = p.sample.TS
			curLabel = label
			curEvidence = nil
		}

		// Evidence belongs to the block open after any boundary split.
		if p.tab != nil {
			curEvidence = append(curEvidence, evidenceFrom(p.tab))
		}

		prevTS = p.sample.TS
		last = p
	}

	// Close the tail at last sample + assumed interval so single-sample
	// blocks do not collapse to zero seconds.
	flush(prevTS.Add(time.Duration(opts.AssumedIntervalS) * time.Second))

	return blocks
}
