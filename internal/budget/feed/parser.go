package feed

import (
	"fmt"
	"strings"
)

// StatusColumnIndex is the canonical position of the status rating column
// (column J). The published sheet carries no stable header for it, so it
// is resolved positionally. Known fragility: some sheet revisions moved
// it to column K.
const StatusColumnIndex = 9

// Fallback positions used when the header scan finds no candidate.
const (
	fallbackIDIndex        = 0
	fallbackActualIndex    = 1
	fallbackCommittedIndex = 2
)

// Columns holds the resolved field positions of a parsed feed.
type Columns struct {
	ID        int
	Actual    int
	Committed int
	Status    int
}

// Parse splits raw delimited feed text into field rows, header included.
// Fields are split on plain commas; quoted-comma escaping is not
// supported (known fragility inherited from the sheet export format).
func Parse(raw string) ([][]string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("feed body is empty: %w", ErrFeedUnavailable)
	}

	lines := strings.Split(trimmed, "\n")
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, strings.Split(line, ","))
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("feed has no rows: %w", ErrFeedUnavailable)
	}
	return rows, nil
}

// ResolveColumns locates the id, actual and committed columns by
// case-insensitive substring match on the header row, and the status
// column by its fixed position. Zero or multiple candidates never fail
// resolution: the first match (or the documented fallback index) is used
// and a warning is reported for the caller to log.
func ResolveColumns(header []string) (Columns, []string) {
	var warnings []string

	cols := Columns{
		ID:        findHeader(header, "id", fallbackIDIndex, &warnings),
		Actual:    findHeader(header, "a2026", fallbackActualIndex, &warnings),
		Committed: findHeader(header, "commit", fallbackCommittedIndex, &warnings),
		Status:    StatusColumnIndex,
	}

	if len(header) <= StatusColumnIndex {
		warnings = append(warnings, fmt.Sprintf(
			"header has %d columns, status column expected at index %d; status ratings default to unset",
			len(header), StatusColumnIndex))
	}
	return cols, warnings
}

func findHeader(header []string, sub string, fallback int, warnings *[]string) int {
	matches := make([]int, 0, 1)
	for i, h := range header {
		if strings.Contains(strings.ToLower(strings.TrimSpace(h)), sub) {
			matches = append(matches, i)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0]
	case 0:
		*warnings = append(*warnings, fmt.Sprintf(
			"no header matches %q, falling back to column %d", sub, fallback))
		return fallback
	default:
		*warnings = append(*warnings, fmt.Sprintf(
			"%d headers match %q, using first at column %d", len(matches), sub, matches[0]))
		return matches[0]
	}
}

// Field reads one cell of a row. Rows shorter than the resolved layout
// yield the empty string, which downstream normalization turns into zero.
func Field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
