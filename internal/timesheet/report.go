package timesheet

import (
	"fmt"
	"math"
	"strings"

	"toggl-sherpa/internal/domain"
)

// evidence lines shown per block before truncating
const reportEvidenceLimit = 20

// Markdown renders a draft timesheet for human inspection.
func Markdown(blocks []domain.TimesheetBlock) string {
	if len(blocks) == 0 {
		return "# Draft timesheet\n\n(no activity in range)\n"
	}

	var b strings.Builder
	b.WriteString("# Draft timesheet\n\n")

	for _, blk := range blocks {
		mins := int(math.Round(float64(blk.Seconds) / 60))
		proj := "(unsuggested)"
		if blk.ProjectSuggestion != nil {
			proj = *blk.ProjectSuggestion
		}
		tags := "(none)"
		if len(blk.TagsSuggestion) > 0 {
			tags = strings.Join(blk.TagsSuggestion, ", ")
		}

		fmt.Fprintf(&b, "## %s → %s (%d min)\n\n", domain.TSUTC(blk.Start), domain.TSUTC(blk.End), mins)
		fmt.Fprintf(&b, "- label: %s\n", blk.Label)
		fmt.Fprintf(&b, "- project suggestion: %s\n", proj)
		fmt.Fprintf(&b, "- tags suggestion: %s\n\n", tags)

		if len(blk.Evidence) == 0 {
			continue
		}
		b.WriteString("Evidence:\n")
		for i, ev := range blk.Evidence {
			if i == reportEvidenceLimit {
				fmt.Fprintf(&b, "- … (%d more)\n", len(blk.Evidence)-reportEvidenceLimit)
				break
			}
			title := ev.DisplayTitle()
			url := ev.DisplayURL()
			switch {
			case title != "" && url != "":
				fmt.Fprintf(&b, "- %s — %s (%s)\n", domain.TSUTC(ev.TS), title, url)
			case url != "":
				fmt.Fprintf(&b, "- %s — %s\n", domain.TSUTC(ev.TS), url)
			case title != "":
				fmt.Fprintf(&b, "- %s — %s\n", domain.TSUTC(ev.TS), title)
			default:
				fmt.Fprintf(&b, "- %s — (redacted)\n", domain.TSUTC(ev.TS))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
