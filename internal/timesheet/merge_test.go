package timesheet

import (
	"testing"
	"time"

	"toggl-sherpa/internal/domain"
)

var m0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func block(startS, endS int64, label string, project *string, tags []string) domain.TimesheetBlock {
	start := m0.Add(time.Duration(startS) * time.Second)
	end := m0.Add(time.Duration(endS) * time.Second)
	return domain.TimesheetBlock{
		Start:             start,
		End:               end,
		Seconds:           endS - startS,
		Label:             label,
		ProjectSuggestion: project,
		TagsSuggestion:    tags,
	}
}

func strp(s string) *string { return &s }

func TestMergeWithinTolerance(t *testing.T) {
	a := block(0, 600, "code:x", strp("dev"), []string{"code"})
	b := block(630, 1200, "code:x", strp("dev"), []string{"code"})
	a.Evidence = []domain.EvidenceItem{{TS: m0, Allowed: true}}
	b.Evidence = []domain.EvidenceItem{{TS: m0.Add(time.Minute), Allowed: true}}

	merged := Merge([]domain.TimesheetBlock{a, b}, 60)
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged block, got %d", len(merged))
	}
	got := merged[0]
	// 600 + 570 + the 30s gap.
	if got.Seconds != 1200 {
		t.Errorf("seconds = %d, want 1200", got.Seconds)
	}
	if !got.End.Equal(b.End) {
		t.Errorf("end = %v, want %v", got.End, b.End)
	}
	if len(got.Evidence) != 2 {
		t.Errorf("evidence = %d items, want 2", len(got.Evidence))
	}
}

func TestMergeRespectsTolerance(t *testing.T) {
	a := block(0, 600, "code:x", nil, nil)
	b := block(700, 1200, "code:x", nil, nil)

	if merged := Merge([]domain.TimesheetBlock{a, b}, 60); len(merged) != 2 {
		t.Fatalf("100s gap with 60s tolerance must not merge, got %d blocks", len(merged))
	}
	if merged := Merge([]domain.TimesheetBlock{a, b}, 100); len(merged) != 1 {
		t.Fatalf("100s gap with 100s tolerance must merge, got %d blocks", len(merged))
	}
}

func TestMergeRequiresIdenticalAttributes(t *testing.T) {
	cases := []struct {
		name string
		b    domain.TimesheetBlock
	}{
		{"label", block(610, 1200, "other", strp("dev"), []string{"code"})},
		{"project", block(610, 1200, "code:x", strp("ops"), []string{"code"})},
		{"project nil", block(610, 1200, "code:x", nil, []string{"code"})},
		{"tags", block(610, 1200, "code:x", strp("dev"), []string{"review"})},
	}
	a := block(0, 600, "code:x", strp("dev"), []string{"code"})

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if merged := Merge([]domain.TimesheetBlock{a, tc.b}, 60); len(merged) != 2 {
				t.Errorf("blocks differing in %s must not merge", tc.name)
			}
		})
	}
}

func TestMergeChains(t *testing.T) {
	blocks := []domain.TimesheetBlock{
		block(0, 100, "code:x", nil, nil),
		block(110, 200, "code:x", nil, nil),
		block(210, 300, "code:x", nil, nil),
	}
	merged := Merge(blocks, 60)
	if len(merged) != 1 {
		t.Fatalf("expected a single chained block, got %d", len(merged))
	}
	if merged[0].Seconds != 300 {
		t.Errorf("seconds = %d, want 300", merged[0].Seconds)
	}
}

func TestMergeOverlapDoesNotAddGap(t *testing.T) {
	a := block(0, 600, "code:x", nil, nil)
	b := block(590, 1200, "code:x", nil, nil) // overlaps by 10s

	merged := Merge([]domain.TimesheetBlock{a, b}, 60)
	if len(merged) != 1 {
		t.Fatalf("expected 1 block, got %d", len(merged))
	}
	if merged[0].Seconds != 1210 {
		t.Errorf("seconds = %d, want 1210 (no negative gap added)", merged[0].Seconds)
	}
}

func TestMergeEmpty(t *testing.T) {
	if got := Merge(nil, 60); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}

func TestMergeIdempotent(t *testing.T) {
	blocks := []domain.TimesheetBlock{
		block(0, 600, "code:x", strp("dev"), []string{"code"}),
		block(630, 1200, "code:x", strp("dev"), []string{"code"}),
		block(2000, 2600, "comms", nil, nil),
	}
	once := Merge(blocks, 60)
	twice := Merge(once, 60)
	if len(once) != len(twice) {
		t.Fatalf("merge not idempotent: %d then %d blocks", len(once), len(twice))
	}
	for i := range once {
		if once[i].Seconds != twice[i].Seconds || !once[i].Start.Equal(twice[i].Start) || !once[i].End.Equal(twice[i].End) {
			t.Errorf("block %d changed on second merge", i)
		}
	}
}
