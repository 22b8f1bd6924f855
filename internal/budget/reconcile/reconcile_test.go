package reconcile

import (
	"testing"

	"github.com/omercouncil/budget-portal/internal/budget/types"
)

func expenseLine(id string, b2026 float64) types.BudgetLine {
	return types.BudgetLine{ID: id, Wing: "A", Dept: "X", Type: types.Expense, Budget2026Plan: b2026}
}

func TestReconcileExpenseOverBudget(t *testing.T) {
	visible := []types.BudgetLine{expenseLine("1", 1000)}
	execution := types.ExecutionMap{"1": {Actual2026: 1200, Committed2026: 1300}}

	got := Reconcile(visible, execution, types.MetricActual)
	if len(got) != 1 {
		t.Fatalf("expected 1 line, got %d", len(got))
	}
	if got[0].Balance != -200 {
		t.Errorf("balance = %v, want -200", got[0].Balance)
	}
	if !got[0].IsOverBudget {
		t.Error("expense overspend should be flagged")
	}
}

func TestReconcileExpenseWithinBudget(t *testing.T) {
	visible := []types.BudgetLine{expenseLine("1", 1000)}
	execution := types.ExecutionMap{"1": {Actual2026: 800}}

	got := Reconcile(visible, execution, types.MetricActual)
	if got[0].Balance != 200 {
		t.Errorf("balance = %v, want 200", got[0].Balance)
	}
	if got[0].IsOverBudget {
		t.Error("expense underspend should not be flagged")
	}
}

func TestReconcileCommittedMetric(t *testing.T) {
	visible := []types.BudgetLine{expenseLine("1", 1000)}
	execution := types.ExecutionMap{"1": {Actual2026: 800, Committed2026: 1100}}

	got := Reconcile(visible, execution, types.MetricCommitted)
	if got[0].Balance != -100 {
		t.Errorf("committed balance = %v, want -100", got[0].Balance)
	}
	if !got[0].IsOverBudget {
		t.Error("committed overspend should be flagged")
	}
}

func TestReconcileRevenueSignRule(t *testing.T) {
	line := types.BudgetLine{ID: "1", Type: types.Revenue, Budget2026Plan: 1000}

	// Collected less than planned: positive balance, flagged.
	got := Reconcile([]types.BudgetLine{line}, types.ExecutionMap{"1": {Actual2026: 600}}, types.MetricActual)
	if !got[0].IsOverBudget {
		t.Error("revenue shortfall should be flagged")
	}

	// Collected more than planned: negative balance, fine.
	got = Reconcile([]types.BudgetLine{line}, types.ExecutionMap{"1": {Actual2026: 1400}}, types.MetricActual)
	if got[0].IsOverBudget {
		t.Error("revenue surplus should not be flagged")
	}
}

func TestReconcileZeroBudgetNeverFlagged(t *testing.T) {
	lines := []types.BudgetLine{
		expenseLine("1", 0),
		{ID: "2", Type: types.Revenue, Budget2026Plan: 0},
	}
	execution := types.ExecutionMap{
		"1": {Actual2026: 99999},
		"2": {Actual2026: -99999},
	}
	for _, rec := range Reconcile(lines, execution, types.MetricActual) {
		if rec.IsOverBudget {
			t.Errorf("line %s with zero 2026 budget was flagged", rec.ID)
		}
	}
}

func TestReconcileMissingExecutionRecord(t *testing.T) {
	visible := []types.BudgetLine{expenseLine("1", 500)}

	got := Reconcile(visible, types.ExecutionMap{}, types.MetricActual)
	rec := got[0]
	if rec.Actual2026 != 0 || rec.Committed2026 != 0 {
		t.Errorf("missing record should default to zero, got %+v", rec)
	}
	if rec.Balance != 500 || rec.IsOverBudget {
		t.Errorf("balance = %v over = %v", rec.Balance, rec.IsOverBudget)
	}
}

func TestOverlayRatings(t *testing.T) {
	tasks := []types.WorkPlanTask{
		{ID: "t1", Rating: 1},
		{ID: "t2", Rating: 3},
		{ID: "t3"},
	}
	execution := types.ExecutionMap{
		"t1": {StatusRating: 2},
		"t3": {StatusRating: 0}, // unset in feed: baseline kept
	}

	got := OverlayRatings(tasks, execution)
	if got[0].Rating != 2 {
		t.Errorf("t1 rating = %d, want feed value 2", got[0].Rating)
	}
	if got[1].Rating != 3 {
		t.Errorf("t2 rating = %d, want baseline 3", got[1].Rating)
	}
	if got[2].Rating != 0 {
		t.Errorf("t3 rating = %d, want 0", got[2].Rating)
	}
	// Input slice untouched.
	if tasks[0].Rating != 1 {
		t.Error("OverlayRatings mutated its input")
	}
}
