package review

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"toggl-sherpa/internal/domain"
)

var r0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func strp(s string) *string { return &s }

func testBlocks() []domain.TimesheetBlock {
	return []domain.TimesheetBlock{
		{
			Start: r0, End: r0.Add(time.Hour), Seconds: 3600,
			Label:             "code:main.go",
			ProjectSuggestion: strp("dev"),
			TagsSuggestion:    []string{"code"},
			Evidence:          []domain.EvidenceItem{{TS: r0, Allowed: true}},
		},
		{
			Start: r0.Add(2 * time.Hour), End: r0.Add(3 * time.Hour), Seconds: 3600,
			Label: "unknown",
		},
	}
}

func TestAcceptAll(t *testing.T) {
	blocks := testBlocks()
	got := AcceptAll(blocks)
	if len(got) != len(blocks) {
		t.Errorf("AcceptAll changed the block count: %d -> %d", len(blocks), len(got))
	}
}

func TestInteractiveAcceptAndSkip(t *testing.T) {
	// Blank input takes the default action (accept); "s" skips.
	in := strings.NewReader("\ns\n")
	var out bytes.Buffer

	got := Interactive(in, &out, testBlocks())
	if len(got) != 1 {
		t.Fatalf("expected 1 accepted block, got %d", len(got))
	}
	if got[0].Label != "code:main.go" {
		t.Errorf("wrong block accepted: %q", got[0].Label)
	}
}

func TestInteractiveEdit(t *testing.T) {
	// Edit the first block: new label, clear nothing, new tags.
	// Then accept the second unchanged.
	in := strings.NewReader("e\nstandup notes\nplanning\nnotes, meeting\n\n")
	var out bytes.Buffer

	got := Interactive(in, &out, testBlocks())
	if len(got) != 2 {
		t.Fatalf("expected 2 accepted blocks, got %d", len(got))
	}

	edited := got[0]
	if edited.Label != "standup notes" {
		t.Errorf("label = %q", edited.Label)
	}
	if edited.ProjectSuggestion == nil || *edited.ProjectSuggestion != "planning" {
		t.Errorf("project = %v", edited.ProjectSuggestion)
	}
	if len(edited.TagsSuggestion) != 2 || edited.TagsSuggestion[0] != "notes" || edited.TagsSuggestion[1] != "meeting" {
		t.Errorf("tags = %v", edited.TagsSuggestion)
	}
	// Evidence is never editable.
	if len(edited.Evidence) != 1 {
		t.Errorf("evidence changed during edit: %d items", len(edited.Evidence))
	}
	// Times are never editable either.
	if !edited.Start.Equal(r0) || edited.Seconds != 3600 {
		t.Errorf("times changed during edit: %+v", edited)
	}
}

func TestInteractiveEditKeepsDefaults(t *testing.T) {
	// Blank answers during edit keep the existing values.
	in := strings.NewReader("e\n\n\n\n\n")
	var out bytes.Buffer

	got := Interactive(in, &out, testBlocks())
	if len(got) != 2 {
		t.Fatalf("expected 2 accepted blocks, got %d", len(got))
	}
	if got[0].Label != "code:main.go" {
		t.Errorf("label = %q, want the original kept", got[0].Label)
	}
	if got[0].ProjectSuggestion == nil || *got[0].ProjectSuggestion != "dev" {
		t.Errorf("project = %v, want dev kept", got[0].ProjectSuggestion)
	}
}

func TestInteractiveUnknownActionSkips(t *testing.T) {
	in := strings.NewReader("x\n\n")
	var out bytes.Buffer

	got := Interactive(in, &out, testBlocks())
	if len(got) != 1 {
		t.Fatalf("expected 1 accepted block, got %d", len(got))
	}
	if got[0].Label != "unknown" {
		t.Errorf("wrong block accepted: %q", got[0].Label)
	}
}

func TestInteractiveEOFSkipsRest(t *testing.T) {
	// Input ends mid-review: the default accepts the first block, then the
	// scanner keeps returning the default for the second.
	in := strings.NewReader("")
	var out bytes.Buffer

	got := Interactive(in, &out, testBlocks())
	if len(got) != 2 {
		t.Errorf("EOF must fall back to the default action, got %d blocks", len(got))
	}
}
