// Package ingest turns raw browser-tab payloads into stored tab events:
// redaction first, then correlation with the nearest activity sample, then a
// single insert. Transport (the local HTTP listener) lives in internal/app.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"toggl-sherpa/internal/domain"
	"toggl-sherpa/internal/redact"
)

// DefaultMaxLinkAge bounds how far a tab event may sit from the sample it
// links to.
const DefaultMaxLinkAge = 60 * time.Second

// Payload is one observation posted by the browser extension.
type Payload struct {
	URL       *string    `json:"url"`
	Title     *string    `json:"title"`
	TS        *time.Time `json:"ts_utc"`
	UserAgent *string    `json:"user_agent"`
}

// Store is the slice of the sqlite store the ingestor needs.
type Store interface {
	NearestSampleID(ctx context.Context, ts time.Time, maxAge time.Duration) (*int64, error)
	InsertTabEvent(ctx context.Context, ev domain.TabEvent, rawJSON string) (int64, error)
}

// Ingestor applies the allowlist and writes tab events.
type Ingestor struct {
	Store      Store
	Allow      map[string]struct{}
	MaxLinkAge time.Duration
}

// Ingest processes one payload and returns the redaction outcome. The raw
// payload is kept verbatim in the row for debugging; the queryable columns
// only ever hold the redaction-processed values.
func (in *Ingestor) Ingest(ctx context.Context, p Payload) (redact.Tab, error) {
	ts := time.Now().UTC().Truncate(time.Second)
	if p.TS != nil {
		ts = p.TS.UTC()
	}

	red := redact.RedactTab(p.URL, p.Title, in.Allow)

	maxAge := in.MaxLinkAge
	if maxAge == 0 {
		maxAge = DefaultMaxLinkAge
	}
	sampleID, err := in.Store.NearestSampleID(ctx, ts, maxAge)
	if err != nil {
		return redact.Tab{}, err
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return redact.Tab{}, fmt.Errorf("ingest: marshaling raw payload: %w", err)
	}

	ev := domain.TabEvent{
		TS:            ts,
		SampleID:      sampleID,
		Allowed:       red.Allowed,
		URL:           red.URL,
		Title:         red.Title,
		URLRedacted:   red.URLRedacted,
		TitleRedacted: red.TitleRedacted,
	}
	if _, err := in.Store.InsertTabEvent(ctx, ev, string(raw)); err != nil {
		return redact.Tab{}, err
	}
	return red, nil
}
