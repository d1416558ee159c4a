package timesheet

import "toggl-sherpa/internal/domain"

// Merge coalesces adjacent blocks that are effectively contiguous and
// attribute-identical: the gap between the previous block's end and the next
// block's start is at most gapSeconds, and label, project suggestion and tag
// suggestions all match exactly.
//
// The pass is single and greedy: each block is only compared against the
// last emitted one, so chains of compatible blocks merge transitively.
// Evidence lists are concatenated in original order and the merged duration
// is the sum of both plus the (non-negative) gap.
func Merge(blocks []domain.TimesheetBlock, gapSeconds int64) []domain.TimesheetBlock {
	if len(blocks) == 0 {
		return nil
	}

	merged := make([]domain.TimesheetBlock, 0, len(blocks))
	merged = append(merged, blocks[0])

	for _, b := range blocks[1:] {
		prev := &merged[len(merged)-1]
		gap := int64(b.Start.Sub(prev.End).Seconds())

		if gap <= gapSeconds && prev.SameAttributes(b) {
			prev.End = b.End
			prev.Seconds += b.Seconds + max(gap, 0)
			prev.Evidence = append(append([]domain.EvidenceItem{}, prev.Evidence...), b.Evidence...)
			continue
		}
		merged = append(merged, b)
	}
	return merged
}
