// Package review is the human checkpoint between segmentation and apply.
// Labels, projects and tags may be rewritten; evidence is never editable and
// travels through review verbatim.
package review

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"toggl-sherpa/internal/domain"
)

// AcceptAll returns the blocks unchanged, as the non-interactive review path.
func AcceptAll(blocks []domain.TimesheetBlock) []domain.TimesheetBlock {
	return blocks
}

func formatBlock(b domain.TimesheetBlock, i, n int) string {
	mins := int(math.Round(float64(b.Seconds) / 60))
	proj := "(unsuggested)"
	if b.ProjectSuggestion != nil {
		proj = *b.ProjectSuggestion
	}
	tags := "(none)"
	if len(b.TagsSuggestion) > 0 {
		tags = strings.Join(b.TagsSuggestion, ", ")
	}
	return fmt.Sprintf("[%d/%d] %s → %s (%d min)\n  label: %s\n  project: %s\n  tags: %s\n  evidence: %d item(s)\n",
		i, n, domain.TSUTC(b.Start), domain.TSUTC(b.End), mins, b.Label, proj, tags, len(b.Evidence))
}

func prompt(sc *bufio.Scanner, out io.Writer, label, def string) string {
	fmt.Fprintf(out, "%s [%s]: ", label, def)
	if !sc.Scan() {
		return def
	}
	v := strings.TrimSpace(sc.Text())
	if v == "" {
		return def
	}
	return v
}

// Interactive walks blocks one by one, asking to accept, edit or skip each.
// It returns the accepted blocks, possibly edited.
func Interactive(in io.Reader, out io.Writer, blocks []domain.TimesheetBlock) []domain.TimesheetBlock {
	sc := bufio.NewScanner(in)
	var accepted []domain.TimesheetBlock
	n := len(blocks)

	for i, b := range blocks {
		fmt.Fprintln(out, formatBlock(b, i+1, n))

		action := strings.ToLower(prompt(sc, out, "action [a]ccept/[e]dit/[s]kip", "a"))
		switch action {
		case "s", "skip":
			fmt.Fprintln(out, "skipped")
			fmt.Fprintln(out)
			continue
		case "a", "accept":
			accepted = append(accepted, b)
			fmt.Fprintln(out, "accepted")
			fmt.Fprintln(out)
			continue
		case "e", "edit":
		default:
			fmt.Fprintln(out, "unrecognised action; skipping")
			fmt.Fprintln(out)
			continue
		}

		label := strings.TrimSpace(prompt(sc, out, "label", b.Label))
		projDef := ""
		if b.ProjectSuggestion != nil {
			projDef = *b.ProjectSuggestion
		}
		projIn := strings.TrimSpace(prompt(sc, out, "project (blank for none)", projDef))
		tagsIn := prompt(sc, out, "tags (comma-separated)", strings.Join(b.TagsSuggestion, ", "))

		var proj *string
		if projIn != "" {
			proj = &projIn
		}
		var tags []string
		for _, t := range strings.Split(tagsIn, ",") {
			if tt := strings.TrimSpace(t); tt != "" {
				tags = append(tags, tt)
			}
		}

		edited := b
		edited.Label = label
		edited.ProjectSuggestion = proj
		edited.TagsSuggestion = tags
		accepted = append(accepted, edited)
		fmt.Fprintln(out, "accepted (edited)")
		fmt.Fprintln(out)
	}
	return accepted
}
