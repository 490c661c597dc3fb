package diff

import "strings"

// Stats summarizes a comparison.
type Stats struct {
	// TotalLines is the number of non-blank lines in the new snapshot, header included.
	TotalLines int `json:"total_lines"`

	// ChangedLines is the number of data rows reported as changed.
	ChangedLines int `json:"changed_lines"`

	// AddedLines counts new data rows absent from the previous snapshot.
	AddedLines int `json:"added_lines"`

	// RemovedLines counts previous data rows absent from the new snapshot.
	// Reported for observability only.
	RemovedLines int `json:"removed_lines"`
}

// ChangeSet is the ephemeral result of one comparison.
type ChangeSet struct {
	// HasChanges is false when nothing beyond the header needs processing.
	HasChanges bool `json:"has_changes"`

	// ChangedLines holds the header followed by every new or modified row, in
	// the order they appear in the new snapshot.
	ChangedLines []string `json:"-"`

	Stats Stats `json:"stats"`
}

// Compute compares next against previous. A nil previous is the bootstrap case:
// every line of next is reported.
func Compute(previous *string, next string) ChangeSet {
	nextLines := SplitLines(next)
	cs := ChangeSet{
		Stats: Stats{TotalLines: len(nextLines)},
	}
	if len(nextLines) == 0 {
		cs.ChangedLines = []string{}
		return cs
	}

	header, rows := nextLines[0], nextLines[1:]

	if previous == nil {
		cs.ChangedLines = nextLines
		cs.Stats.ChangedLines = len(rows)
		cs.Stats.AddedLines = len(rows)
		cs.HasChanges = len(rows) > 0
		return cs
	}

	prevRows := dataRows(SplitLines(*previous))
	prevSet := make(map[string]struct{}, len(prevRows))
	for _, line := range prevRows {
		prevSet[line] = struct{}{}
	}

	changed := make([]string, 0, 1+len(rows)/8)
	changed = append(changed, header)
	nextSet := make(map[string]struct{}, len(rows))
	for _, line := range rows {
		nextSet[line] = struct{}{}
		if _, ok := prevSet[line]; !ok {
			changed = append(changed, line)
		}
	}

	for line := range prevSet {
		if _, ok := nextSet[line]; !ok {
			cs.Stats.RemovedLines++
		}
	}

	cs.ChangedLines = changed
	cs.Stats.ChangedLines = len(changed) - 1
	cs.Stats.AddedLines = len(changed) - 1
	cs.HasChanges = len(changed) > 1
	return cs
}

// SplitLines splits a snapshot into its non-blank lines. A trailing carriage
// return is dropped so CRLF and LF exports compare equal.
func SplitLines(snapshot string) []string {
	if snapshot == "" {
		return nil
	}
	raw := strings.Split(snapshot, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func dataRows(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	return lines[1:]
}
