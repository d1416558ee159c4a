package domain

import "time"

// ActivitySample is one focus/idle observation captured by the collector.
// Immutable once recorded; downstream logic assumes ascending timestamps.
type ActivitySample struct {
	ID           int64
	TS           time.Time
	IdleMS       *int64
	FocusTitle   *string
	FocusWMClass *string
	FocusPID     *int64
}

// TabEvent is one browser-tab observation, redaction-processed at ingestion.
// Allowed events keep raw URL/title; disallowed events carry only the
// host-level redacted URL and the fixed redaction marker.
type TabEvent struct {
	ID            int64
	TS            time.Time
	SampleID      *int64
	Allowed       bool
	URL           *string
	Title         *string
	URLRedacted   *string
	TitleRedacted *string
}

// TSUTC renders a timestamp the way the store and the idempotency
// fingerprint expect it: RFC 3339 in UTC, second precision.
func TSUTC(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}
