package aggregate

import (
	"math"
	"sort"
	"strings"

	"github.com/omercouncil/budget-portal/internal/budget/normalize"
	"github.com/omercouncil/budget-portal/internal/budget/types"
)

// Summarize sums the five headline figures across expense lines,
// optionally restricted to one wing. Revenue lines are excluded from
// top-line totals; this is the consistently observed rule across the
// council's reports, not an oversight.
func Summarize(lines []types.ReconciledLine, wing string) types.Totals {
	var t types.Totals
	for _, line := range lines {
		if line.Type != types.Expense {
			continue
		}
		if wing != "" && !normalize.Equal(line.Wing, wing) {
			continue
		}
		t.Actual2024 += line.Budget2024Actual
		t.Budget2025 += line.Budget2025Plan
		t.Budget2026 += line.Budget2026Plan
		t.Actual2026 += line.Actual2026
		t.Committed2026 += line.Committed2026
	}
	return t
}

// GroupBy reduces expense lines into chart slices keyed by the caller's
// choice (wing at the top level, dept when drilled into one wing).
// Planned 2026 amounts are summed as absolute values so negative entries
// cannot invert chart proportions. Slices come back sorted descending by
// value, stable on first appearance for ties.
func GroupBy(lines []types.ReconciledLine, key func(types.ReconciledLine) string) []types.ChartSlice {
	index := make(map[string]int)
	slices := make([]types.ChartSlice, 0)
	for _, line := range lines {
		if line.Type != types.Expense {
			continue
		}
		k := normalize.String(key(line))
		i, ok := index[k]
		if !ok {
			i = len(slices)
			index[k] = i
			slices = append(slices, types.ChartSlice{Name: k})
		}
		slices[i].Value += math.Abs(line.Budget2026Plan)
	}
	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Value > slices[j].Value
	})
	return slices
}

// ByWing groups at the wing level.
func ByWing(lines []types.ReconciledLine) []types.ChartSlice {
	return GroupBy(lines, func(l types.ReconciledLine) string { return l.Wing })
}

// ByDept groups at the department level, for views already scoped to one
// wing.
func ByDept(lines []types.ReconciledLine) []types.ChartSlice {
	return GroupBy(lines, func(l types.ReconciledLine) string { return l.Dept })
}

// Breakdown computes integer-rounded percentages of a task collection by
// rating. The four fractions are rounded independently; the displayed sum
// may deviate from 100 and that is accepted, not corrected.
func Breakdown(tasks []types.WorkPlanTask) types.StatusBreakdown {
	if len(tasks) == 0 {
		return types.StatusBreakdown{}
	}
	var done, inProgress, notDone, unset int
	for _, task := range tasks {
		switch task.Rating {
		case 1:
			done++
		case 2:
			inProgress++
		case 3:
			notDone++
		default:
			unset++
		}
	}
	pct := func(n int) int {
		return int(math.Round(float64(n) * 100 / float64(len(tasks))))
	}
	return types.StatusBreakdown{
		DonePct:       pct(done),
		InProgressPct: pct(inProgress),
		NotDonePct:    pct(notDone),
		UnsetPct:      pct(unset),
	}
}

// Filter is the detail-table row filter: wing drill-down, dept and type
// selectors, and a free-text search over name and id.
type Filter struct {
	Wing      string
	Dept      string
	TypeLabel string
	Search    string
}

// Apply returns the lines matching every set field of the filter.
func (f Filter) Apply(lines []types.ReconciledLine) []types.ReconciledLine {
	out := make([]types.ReconciledLine, 0, len(lines))
	for _, line := range lines {
		if f.Wing != "" && !normalize.Equal(line.Wing, f.Wing) {
			continue
		}
		if f.Dept != "" && !normalize.Equal(line.Dept, f.Dept) {
			continue
		}
		if f.TypeLabel != "" && normalize.String(line.TypeLabel) != normalize.String(f.TypeLabel) {
			continue
		}
		if f.Search != "" &&
			!strings.Contains(line.Name, f.Search) &&
			!strings.Contains(line.ID, f.Search) {
			continue
		}
		out = append(out, line)
	}
	return out
}

// WingDepartments lists the distinct departments under a wing in first-
// seen order, for the drill-down dept selector.
func WingDepartments(lines []types.ReconciledLine, wing string) []string {
	seen := make(map[string]struct{})
	depts := make([]string, 0)
	for _, line := range lines {
		if !normalize.Equal(line.Wing, wing) {
			continue
		}
		d := normalize.String(line.Dept)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		depts = append(depts, d)
	}
	return depts
}
