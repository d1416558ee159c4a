package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"toggl-sherpa/internal/domain"
	"toggl-sherpa/internal/ledger"
)

func TestPrintPlanShowsFingerprints(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	plan := []domain.ApplyPlanItem{
		{
			Start:       start,
			Stop:        start.Add(time.Hour),
			Description: "code:x [proj:dev] [tags:code]",
			Tags:        []string{"code"},
		},
		{
			Start:       start.Add(2 * time.Hour),
			Stop:        start.Add(3 * time.Hour),
			Description: "unknown",
		},
	}

	var out bytes.Buffer
	printPlan(&out, plan)
	got := out.String()

	if !strings.Contains(got, "plan: 2 time entr(y/ies)") {
		t.Errorf("missing plan header:\n%s", got)
	}
	// Every item carries the same fingerprint prefix a real apply run
	// would check against the ledger.
	for _, p := range plan {
		fp := ledger.Fingerprint(domain.TSUTC(p.Start), domain.TSUTC(p.Stop), p.Description)
		if !strings.Contains(got, fp[:12]) {
			t.Errorf("plan output missing fingerprint %s for %q:\n%s", fp[:12], p.Description, got)
		}
	}
	if !strings.Contains(got, "code:x [proj:dev] [tags:code]") {
		t.Errorf("plan output missing description:\n%s", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2025-03-10")
	if err != nil {
		t.Fatalf("parseDate: %v", err)
	}
	if !d.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("parseDate = %v", d)
	}

	if _, err := parseDate("10.03.2025"); err == nil {
		t.Fatal("expected an error for a non-ISO date")
	}

	today, err := parseDate("")
	if err != nil {
		t.Fatalf("parseDate(\"\"): %v", err)
	}
	if today.Hour() != 0 || today.Location() != time.UTC {
		t.Errorf("empty date must default to UTC midnight, got %v", today)
	}
}
