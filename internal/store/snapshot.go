package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/omercouncil/budget-portal/internal/budget/types"
)

type SnapshotStore struct {
	db *sqlx.DB
}

// snapshotRow represents one row of the 'reconciled_snapshots' table.
type snapshotRow struct {
	RunID         int64   `db:"run_id"`
	LineID        string  `db:"line_id"`
	Name          string  `db:"name"`
	Dept          string  `db:"dept"`
	Wing          string  `db:"wing"`
	LineType      string  `db:"line_type"`
	Budget2026    float64 `db:"budget_2026"`
	Actual2026    float64 `db:"actual_2026"`
	Committed2026 float64 `db:"committed_2026"`
	Balance       float64 `db:"balance"`
	OverBudget    bool    `db:"over_budget"`
}

// InsertSnapshot persists the reconciled lines of one fetch run.
func (ss *SnapshotStore) InsertSnapshot(ctx context.Context, runID int64, lines []types.ReconciledLine) error {
	if len(lines) == 0 {
		return nil
	}

	rows := make([]snapshotRow, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, snapshotRow{
			RunID:         runID,
			LineID:        line.ID,
			Name:          line.Name,
			Dept:          line.Dept,
			Wing:          line.Wing,
			LineType:      line.TypeLabel,
			Budget2026:    line.Budget2026Plan,
			Actual2026:    line.Actual2026,
			Committed2026: line.Committed2026,
			Balance:       line.Balance,
			OverBudget:    line.IsOverBudget,
		})
	}

	query := `INSERT INTO reconciled_snapshots (
		run_id, line_id, name, dept, wing, line_type,
		budget_2026, actual_2026, committed_2026, balance, over_budget
	) VALUES (
		:run_id, :line_id, :name, :dept, :wing, :line_type,
		:budget_2026, :actual_2026, :committed_2026, :balance, :over_budget
	)`

	if _, err := ss.db.NamedExecContext(ctx, query, rows); err != nil {
		return fmt.Errorf("inserting snapshot for run %d: %w", runID, err)
	}
	return nil
}
