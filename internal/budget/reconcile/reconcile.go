package reconcile

import (
	"github.com/omercouncil/budget-portal/internal/budget/types"
)

// Reconcile joins visible baseline rows with the execution map by
// canonical id and computes the derived variance fields. Rows with no
// execution record get a zero-valued one. The metric picks which
// execution figure the balance is measured against; the sign rule and
// the zero-budget guard never vary per view:
//
//   - EXPENSE lines are over budget when the balance goes negative.
//   - REVENUE lines are over budget when the balance stays positive
//     (less was collected than planned).
//   - A line with no 2026 planned amount is never flagged.
func Reconcile(visible []types.BudgetLine, execution types.ExecutionMap, metric types.Metric) []types.ReconciledLine {
	out := make([]types.ReconciledLine, 0, len(visible))
	for _, line := range visible {
		exec := execution[line.ID]

		metricVal := exec.Actual2026
		if metric == types.MetricCommitted {
			metricVal = exec.Committed2026
		}
		balance := line.Budget2026Plan - metricVal

		over := false
		if line.Budget2026Plan != 0 {
			if line.Type == types.Expense {
				over = balance < 0
			} else {
				over = balance > 0
			}
		}

		out = append(out, types.ReconciledLine{
			BudgetLine:    line,
			Actual2026:    exec.Actual2026,
			Committed2026: exec.Committed2026,
			Balance:       balance,
			IsOverBudget:  over,
		})
	}
	return out
}

// OverlayRatings applies the execution map's status ratings to visible
// work-plan tasks. The live feed is authoritative: a feed rating replaces
// whatever the static dataset carried. Tasks absent from the feed keep
// their baseline rating.
func OverlayRatings(tasks []types.WorkPlanTask, execution types.ExecutionMap) []types.WorkPlanTask {
	out := make([]types.WorkPlanTask, len(tasks))
	copy(out, tasks)
	for i := range out {
		if exec, ok := execution[out[i].ID]; ok && exec.StatusRating != 0 {
			out[i].Rating = exec.StatusRating
		}
	}
	return out
}
