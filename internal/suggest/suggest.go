// Package suggest derives project/tag suggestions for a sample and its
// correlated tab event. Rules are heuristics only (no learning) and the
// output is deterministic for identical input, so suggestions stay auditable.
package suggest

import (
	"regexp"
	"sort"
	"strings"

	"toggl-sherpa/internal/domain"
	"toggl-sherpa/internal/redact"
)

// Suggestion is the outcome of the rule pass: at most one project and a
// sorted, deduplicated tag list.
type Suggestion struct {
	Project *string
	Tags    []string
}

// ruleInput is what the predicates see: the allowlisted tab host (empty if
// none), the best available title, and the lowercased window class.
type ruleInput struct {
	host  string
	title string
	wm    string
}

// rule pairs a predicate with the project and tags it contributes.
// Rules run in order; the first rule to set a project wins, tags accumulate.
type rule struct {
	match   func(ruleInput) bool
	project string
	tags    []string
}

var (
	adminTitleRe  = regexp.MustCompile(`(?i)\b(timesheet|invoice|expenses)\b`)
	reviewTitleRe = regexp.MustCompile(`(?i)\b(pr|pull request|merge request|ci)\b`)
)

// rules is an ordered table: allowlisted hosts first, then window-class
// cues, then title cues.
var rules = []rule{
	{func(in ruleInput) bool { return strings.HasSuffix(in.host, "github.com") }, "dev", []string{"code", "github"}},
	{func(in ruleInput) bool { return strings.HasSuffix(in.host, "docs.google.com") }, "admin", []string{"docs"}},
	{func(in ruleInput) bool { return strings.HasSuffix(in.host, "notion.so") }, "planning", []string{"notes"}},
	{func(in ruleInput) bool { return strings.Contains(in.wm, "rstudio") }, "analysis", []string{"r"}},
	{func(in ruleInput) bool { return strings.Contains(in.wm, "code") || strings.Contains(in.wm, "vscode") }, "dev", []string{"code"}},
	{func(in ruleInput) bool {
		return strings.Contains(in.wm, "slack") || strings.Contains(in.wm, "discord") || strings.Contains(in.wm, "element")
	}, "comms", []string{"comms"}},
	{func(in ruleInput) bool { return adminTitleRe.MatchString(in.title) }, "admin", []string{"admin"}},
	{func(in ruleInput) bool { return reviewTitleRe.MatchString(in.title) }, "dev", []string{"review"}},
}

// ForSample runs the rule table for one (sample, tab) pair. tab may be nil.
func ForSample(sample domain.ActivitySample, tab *domain.TabEvent) Suggestion {
	var in ruleInput

	if tab != nil && tab.Allowed {
		if tab.URL != nil {
			in.host = redact.Hostname(*tab.URL)
		}
		if tab.Title != nil {
			in.title = *tab.Title
		}
	} else if sample.FocusTitle != nil {
		in.title = *sample.FocusTitle
	}
	if sample.FocusWMClass != nil {
		in.wm = strings.ToLower(*sample.FocusWMClass)
	}

	var project *string
	tagSet := make(map[string]struct{})
	for _, r := range rules {
		if !r.match(in) {
			continue
		}
		if project == nil {
			p := r.project
			project = &p
		}
		for _, t := range r.tags {
			tagSet[t] = struct{}{}
		}
	}

	tags := make([]string, 0, len(tagSet))
	for t := range tagSet {
		tags = append(tags, t)
	}
	sort.Strings(tags)

	return Suggestion{Project: project, Tags: tags}
}
