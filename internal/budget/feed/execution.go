package feed

import (
	"github.com/omercouncil/budget-portal/internal/budget/normalize"
	"github.com/omercouncil/budget-portal/internal/budget/types"
)

// BuildExecutionMap turns parsed feed rows (header excluded) into the
// lookup from canonical budget line id to execution figures. The feed is
// not assumed unique per id: a later row with the same id overwrites an
// earlier one.
func BuildExecutionMap(rows [][]string, cols Columns) types.ExecutionMap {
	m := make(types.ExecutionMap, len(rows))
	for _, row := range rows {
		id := normalize.ID(Field(row, cols.ID))
		if id == "" {
			continue
		}
		m[id] = types.ExecutionRecord{
			Actual2026:    normalize.Number(Field(row, cols.Actual)),
			Committed2026: normalize.Number(Field(row, cols.Committed)),
			StatusRating:  normalize.Rating(Field(row, cols.Status)),
		}
	}
	return m
}
