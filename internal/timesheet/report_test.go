package timesheet

import (
	"strings"
	"testing"
	"time"

	"toggl-sherpa/internal/domain"
)

func TestMarkdownEmpty(t *testing.T) {
	md := Markdown(nil)
	if !strings.Contains(md, "no activity in range") {
		t.Errorf("empty report missing placeholder:\n%s", md)
	}
}

func TestMarkdownRendersBlocks(t *testing.T) {
	url := "https://github.com/acme/widgets"
	b := block(0, 1800, "browser:github.com", strp("dev"), []string{"code", "github"})
	b.Evidence = []domain.EvidenceItem{
		{TS: m0, Allowed: true, URL: &url, Title: strp("widgets repo")},
	}

	md := Markdown([]domain.TimesheetBlock{b})
	for _, want := range []string{
		"# Draft timesheet",
		"(30 min)",
		"- label: browser:github.com",
		"- project suggestion: dev",
		"- tags suggestion: code, github",
		"widgets repo",
		url,
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q:\n%s", want, md)
		}
	}
}

func TestMarkdownTruncatesEvidence(t *testing.T) {
	b := block(0, 3600, "browser:github.com", nil, nil)
	for i := 0; i < 25; i++ {
		red := "https://x.example/…"
		b.Evidence = append(b.Evidence, domain.EvidenceItem{
			TS: m0.Add(time.Duration(i) * time.Minute), URLRedacted: &red,
		})
	}

	md := Markdown([]domain.TimesheetBlock{b})
	if !strings.Contains(md, "(5 more)") {
		t.Errorf("report missing truncation marker:\n%s", md)
	}
}

func TestMarkdownRedactedEvidence(t *testing.T) {
	b := block(0, 1800, "browser:[redacted]", nil, nil)
	red := "https://host.example/…"
	marker := "[REDACTED]"
	b.Evidence = []domain.EvidenceItem{
		{TS: m0, Allowed: false, URLRedacted: &red, TitleRedacted: &marker},
	}

	md := Markdown([]domain.TimesheetBlock{b})
	if !strings.Contains(md, red) || !strings.Contains(md, marker) {
		t.Errorf("redacted evidence not rendered:\n%s", md)
	}
	if strings.Contains(md, "https://host.example/secret") {
		t.Errorf("raw URL leaked into report:\n%s", md)
	}
}
