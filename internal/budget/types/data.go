package types

// LineType tells whether a budget line books money going out or coming in.
// The sign semantics of variance depend on it.
type LineType int

const (
	LineTypeUnknown LineType = iota
	Expense
	Revenue
)

// Source spreadsheet values for the line type column.
const (
	ExpenseLabel = "הוצאה"
	RevenueLabel = "הכנסה"
)

func LineTypeFromLabel(label string) LineType {
	switch label {
	case ExpenseLabel:
		return Expense
	case RevenueLabel:
		return Revenue
	}
	return LineTypeUnknown
}

func (t LineType) Label() string {
	switch t {
	case Expense:
		return ExpenseLabel
	case Revenue:
		return RevenueLabel
	}
	return ""
}

// Metric selects which execution figure the balance is computed against.
type Metric int

const (
	MetricActual Metric = iota
	MetricCommitted
)

// BudgetLine is a row of the static baseline dataset. Ids are canonical
// decimal strings; all string fields are stored as received and must be
// canonicalized (normalize.String) before equality comparisons.
type BudgetLine struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Dept             string   `json:"dept"`
	Wing             string   `json:"wing"`
	Type             LineType `json:"-"`
	TypeLabel        string   `json:"type"`
	Budget2024Actual float64  `json:"a2024"`
	Budget2025Plan   float64  `json:"b2025"`
	Budget2026Plan   float64  `json:"b2026"`
}

// ExecutionRecord holds the live execution figures for one budget line id.
// Rebuilt in full on every feed fetch.
type ExecutionRecord struct {
	Actual2026    float64
	Committed2026 float64
	// StatusRating is 1=done, 2=in progress, 3=not done, 0=unset.
	StatusRating int
}

// ExecutionMap keys ExecutionRecords by canonical budget line id.
type ExecutionMap map[string]ExecutionRecord

// ReconciledLine is a baseline row joined with its execution record plus
// the derived variance fields. Ephemeral: recomputed on every input change.
type ReconciledLine struct {
	BudgetLine
	Actual2026    float64 `json:"a2026"`
	Committed2026 float64 `json:"commit2026"`
	Balance       float64 `json:"balance"`
	IsOverBudget  bool    `json:"is_over_budget"`
}

// WorkPlanTask is a row of the static work-plan dataset. Rating is always
// sourced from the live feed when present; local edits are optimistic.
type WorkPlanTask struct {
	ID            string `json:"id"`
	Wing          string `json:"wing"`
	Dept          string `json:"dept"`
	Activity      string `json:"activity"`
	Task          string `json:"task"`
	Deadline      string `json:"deadline"`
	SuccessTarget string `json:"success_target"`
	Rating        int    `json:"rating"`
}

// Totals are the top-line sums across expense lines of the active scope.
type Totals struct {
	Actual2024    float64 `json:"a2024"`
	Budget2025    float64 `json:"b2025"`
	Budget2026    float64 `json:"b2026"`
	Actual2026    float64 `json:"a2026"`
	Committed2026 float64 `json:"commit2026"`
}

// ChartSlice is one grouped value of a chart-ready breakdown.
type ChartSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// StatusBreakdown holds integer-rounded percentages of a task collection
// by rating. Each fraction is rounded independently, so the four values
// may not sum to exactly 100.
type StatusBreakdown struct {
	DonePct       int `json:"done_pct"`
	InProgressPct int `json:"in_progress_pct"`
	NotDonePct    int `json:"not_done_pct"`
	UnsetPct      int `json:"unset_pct"`
}
