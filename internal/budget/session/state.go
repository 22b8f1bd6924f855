package session

import (
	"context"
	"sync"
	"time"

	"github.com/omercouncil/budget-portal/internal/budget/baseline"
	"github.com/omercouncil/budget-portal/internal/budget/reconcile"
	"github.com/omercouncil/budget-portal/internal/budget/types"
	"github.com/omercouncil/budget-portal/internal/logger"
)

const component = "Session"

// BaselineSource provides the two static datasets.
type BaselineSource interface {
	FetchBudgetLines(ctx context.Context) ([]types.BudgetLine, error)
	FetchWorkPlanTasks(ctx context.Context) ([]types.WorkPlanTask, error)
}

// FeedSource provides the live execution map.
type FeedSource interface {
	Fetch(ctx context.Context) (types.ExecutionMap, error)
}

// AppState is one immutable snapshot of the pipeline inputs. It is
// replaced wholesale on every applied fetch cycle, never mutated in
// place.
type AppState struct {
	Lines     []types.BudgetLine
	LineIndex map[string]types.BudgetLine
	Tasks     []types.WorkPlanTask
	Execution types.ExecutionMap

	// FeedDegraded is set when the live feed could not be fetched: the
	// execution map is empty and every execution figure reads as zero.
	FeedDegraded bool

	FetchedAt time.Time
	Seq       uint64
}

// Manager owns the current AppState and serializes fetch cycles. Each
// cycle is tagged with a monotonically increasing sequence number; a
// cycle that finishes after a later one has already been applied is
// discarded, so a manual refresh racing an in-flight fetch cannot roll
// state backwards.
type Manager struct {
	baseline BaselineSource
	feed     FeedSource
	logger   *logger.Logger

	mu         sync.Mutex
	state      *AppState
	nextSeq    uint64
	appliedSeq uint64
	// pending holds optimistic rating edits, keyed by task id. They
	// overlay the state until the next successful feed fetch, which is
	// authoritative and supersedes them.
	pending map[string]int
}

func NewManager(baselineSrc BaselineSource, feedSrc FeedSource, appLogger *logger.Logger) *Manager {
	return &Manager{
		baseline: baselineSrc,
		feed:     feedSrc,
		logger:   appLogger,
		pending:  make(map[string]int),
	}
}

// State returns the current snapshot, or false before the first applied
// refresh.
func (m *Manager) State() (*AppState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.state != nil
}

// Refresh runs one fetch cycle: both static datasets and the live feed
// are fetched concurrently (no ordering dependency between them), then
// the assembled state is applied unless a later cycle beat it. A feed
// failure degrades the cycle instead of failing it; a baseline failure
// fails it and leaves the previous state in place.
func (m *Manager) Refresh(ctx context.Context) (*AppState, error) {
	m.mu.Lock()
	m.nextSeq++
	seq := m.nextSeq
	m.mu.Unlock()

	var (
		wg       sync.WaitGroup
		lines    []types.BudgetLine
		tasks    []types.WorkPlanTask
		exec     types.ExecutionMap
		linesErr error
		tasksErr error
		feedErr  error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		lines, linesErr = m.baseline.FetchBudgetLines(ctx)
	}()
	go func() {
		defer wg.Done()
		tasks, tasksErr = m.baseline.FetchWorkPlanTasks(ctx)
	}()
	go func() {
		defer wg.Done()
		exec, feedErr = m.feed.Fetch(ctx)
	}()
	wg.Wait()

	if linesErr != nil {
		return nil, linesErr
	}
	if tasksErr != nil {
		return nil, tasksErr
	}

	degraded := feedErr != nil
	if degraded {
		m.logger.Warn(component, "Live feed unavailable, proceeding with zeroed execution data: %v", feedErr)
		exec = make(types.ExecutionMap)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if seq <= m.appliedSeq {
		m.logger.Warn(component, "Discarding stale fetch cycle: seq=%d applied=%d", seq, m.appliedSeq)
		return m.state, nil
	}

	if !degraded {
		// The refetched feed supersedes any optimistic edits.
		m.pending = make(map[string]int)
	}

	state := &AppState{
		Lines:        lines,
		LineIndex:    baseline.Index(lines),
		Tasks:        m.overlayLocked(reconcile.OverlayRatings(tasks, exec)),
		Execution:    exec,
		FeedDegraded: degraded,
		FetchedAt:    time.Now(),
		Seq:          seq,
	}
	m.state = state
	m.appliedSeq = seq
	m.logger.Info(component, "State applied: seq=%d lines=%d tasks=%d degraded=%v",
		seq, len(lines), len(tasks), degraded)
	return state, nil
}

// ApplyRating records an optimistic local rating edit and publishes a new
// state with it applied. The edit is volatile: the next successful feed
// fetch replaces it with whatever the external sheet holds.
func (m *Manager) ApplyRating(id string, rating int) (*AppState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return nil, false
	}

	m.pending[id] = rating

	next := *m.state
	next.Tasks = m.overlayLocked(m.state.Tasks)
	m.state = &next
	return m.state, true
}

// overlayLocked applies pending edits to a copy of the given tasks.
// Callers must hold m.mu.
func (m *Manager) overlayLocked(tasks []types.WorkPlanTask) []types.WorkPlanTask {
	if len(m.pending) == 0 {
		return tasks
	}
	out := make([]types.WorkPlanTask, len(tasks))
	copy(out, tasks)
	for i := range out {
		if rating, ok := m.pending[out[i].ID]; ok {
			out[i].Rating = rating
		}
	}
	return out
}
