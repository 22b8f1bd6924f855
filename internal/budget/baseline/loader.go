package baseline

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/omercouncil/budget-portal/internal/budget/normalize"
	"github.com/omercouncil/budget-portal/internal/budget/types"
)

// ParseBudgetLines decodes the baseline dataset. The source is loosely
// typed: numeric fields may arrive as JSON numbers or as comma-grouped
// strings, and ids may be numbers large enough to have been rendered in
// scientific notation upstream. gjson reads both shapes uniformly and
// normalization canonicalizes them.
func ParseBudgetLines(data []byte) ([]types.BudgetLine, error) {
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("baseline dataset is not a JSON array")
	}

	items := root.Array()
	lines := make([]types.BudgetLine, 0, len(items))
	seen := make(map[string]struct{}, len(items))

	for i, item := range items {
		id := normalize.ID(item.Get("id").String())
		if id == "" {
			return nil, fmt.Errorf("baseline row %d has no id", i)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("baseline id %q appears more than once", id)
		}
		seen[id] = struct{}{}

		typeLabel := normalize.String(item.Get("type").String())
		lines = append(lines, types.BudgetLine{
			ID:               id,
			Name:             item.Get("name").String(),
			Dept:             item.Get("dept").String(),
			Wing:             item.Get("wing").String(),
			Type:             types.LineTypeFromLabel(typeLabel),
			TypeLabel:        typeLabel,
			Budget2024Actual: normalize.Number(item.Get("a2024").String()),
			Budget2025Plan:   normalize.Number(item.Get("b2025").String()),
			Budget2026Plan:   normalize.Number(item.Get("b2026").String()),
		})
	}
	return lines, nil
}

// ParseWorkPlanTasks decodes the work-plan dataset. Some dataset
// revisions key the rating under a literal Hebrew column name instead of
// "rating"; that inconsistency is absorbed here and nowhere else.
func ParseWorkPlanTasks(data []byte) ([]types.WorkPlanTask, error) {
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("work-plan dataset is not a JSON array")
	}

	items := root.Array()
	tasks := make([]types.WorkPlanTask, 0, len(items))
	for i, item := range items {
		id := normalize.ID(item.Get("id").String())
		if id == "" {
			return nil, fmt.Errorf("work-plan row %d has no id", i)
		}

		rating := item.Get("rating")
		if !rating.Exists() {
			rating = item.Get("דירוג")
		}

		tasks = append(tasks, types.WorkPlanTask{
			ID:            id,
			Wing:          item.Get("wing").String(),
			Dept:          item.Get("dept").String(),
			Activity:      item.Get("activity").String(),
			Task:          item.Get("task").String(),
			Deadline:      normalize.Deadline(item.Get("deadline").String()),
			SuccessTarget: item.Get("success_target").String(),
			Rating:        normalize.Rating(rating.String()),
		})
	}
	return tasks, nil
}

// Index builds the O(1) lookup from canonical id to baseline row.
func Index(lines []types.BudgetLine) map[string]types.BudgetLine {
	idx := make(map[string]types.BudgetLine, len(lines))
	for _, line := range lines {
		idx[line.ID] = line
	}
	return idx
}
