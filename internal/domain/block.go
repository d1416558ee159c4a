package domain

import (
	"slices"
	"time"
)

// EvidenceItem is the display-oriented projection of a TabEvent attached to a
// block. Raw and redacted fields are mutually gated by Allowed.
type EvidenceItem struct {
	TS            time.Time `json:"ts_utc"`
	Allowed       bool      `json:"allowed"`
	URL           *string   `json:"url"`
	Title         *string   `json:"title"`
	URLRedacted   *string   `json:"url_redacted"`
	TitleRedacted *string   `json:"title_redacted"`
}

// DisplayURL returns the raw URL for allowed evidence, otherwise the
// redacted one (or empty).
func (e EvidenceItem) DisplayURL() string {
	if e.Allowed && e.URL != nil {
		return *e.URL
	}
	if e.URLRedacted != nil {
		return *e.URLRedacted
	}
	return ""
}

// DisplayTitle returns the raw title for allowed evidence, otherwise the
// redacted one (or empty).
func (e EvidenceItem) DisplayTitle() string {
	if e.Allowed && e.Title != nil {
		return *e.Title
	}
	if e.TitleRedacted != nil {
		return *e.TitleRedacted
	}
	return ""
}

// TimesheetBlock is a contiguous labeled time segment with its supporting
// evidence. The JSON tags define the interchange format shared by the
// segmentation, review and merge stages.
type TimesheetBlock struct {
	Start             time.Time      `json:"start_ts_utc"`
	End               time.Time      `json:"end_ts_utc"`
	Seconds           int64          `json:"seconds"`
	Label             string         `json:"label"`
	ProjectSuggestion *string        `json:"project_suggestion"`
	TagsSuggestion    []string       `json:"tags_suggestion"`
	Evidence          []EvidenceItem `json:"evidence"`
}

// SameAttributes reports whether two blocks agree on label, project
// suggestion and tag suggestions, the merge compatibility test.
func (b TimesheetBlock) SameAttributes(o TimesheetBlock) bool {
	if b.Label != o.Label {
		return false
	}
	if (b.ProjectSuggestion == nil) != (o.ProjectSuggestion == nil) {
		return false
	}
	if b.ProjectSuggestion != nil && *b.ProjectSuggestion != *o.ProjectSuggestion {
		return false
	}
	return slices.Equal(b.TagsSuggestion, o.TagsSuggestion)
}
