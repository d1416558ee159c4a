// Package apply maps reviewed blocks to Toggl time entries and pushes them
// through the idempotency ledger exactly once per logical entry.
package apply

import (
	"strings"

	"toggl-sherpa/internal/domain"
)

// BuildPlan derives one apply-ready item per block. projectIDs maps a
// project suggestion to its Toggl project id; tagMap canonicalises tag
// names. Both may be nil.
//
// The composed description is also the value hashed for idempotency, so any
// label/project/tag change yields a logically distinct entry.
func BuildPlan(blocks []domain.TimesheetBlock, projectIDs map[string]int64, tagMap map[string]string) []domain.ApplyPlanItem {
	plan := make([]domain.ApplyPlanItem, 0, len(blocks))
	for _, b := range blocks {
		tags := mapTags(b.TagsSuggestion, tagMap)

		var projID *int64
		if b.ProjectSuggestion != nil {
			if id, ok := projectIDs[*b.ProjectSuggestion]; ok {
				idc := id
				projID = &idc
			}
		}

		parts := []string{b.Label}
		if b.ProjectSuggestion != nil {
			parts = append(parts, "[proj:"+*b.ProjectSuggestion+"]")
		}
		if len(tags) > 0 {
			parts = append(parts, "[tags:"+strings.Join(tags, ",")+"]")
		}

		plan = append(plan, domain.ApplyPlanItem{
			Start:       b.Start,
			Stop:        b.End,
			Description: strings.Join(parts, " "),
			Tags:        tags,
			ProjectID:   projID,
		})
	}
	return plan
}

// mapTags applies the tag map per tag, then drops blanks and duplicates
// while preserving original order (first occurrence wins).
func mapTags(tags []string, tagMap map[string]string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		mapped := t
		if m, ok := tagMap[t]; ok {
			mapped = m
		}
		mapped = strings.TrimSpace(mapped)
		if mapped == "" {
			continue
		}
		if _, dup := seen[mapped]; dup {
			continue
		}
		seen[mapped] = struct{}{}
		out = append(out, mapped)
	}
	return out
}
