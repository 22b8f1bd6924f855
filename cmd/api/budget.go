package main

import (
	"net/http"

	"github.com/omercouncil/budget-portal/internal/budget/access"
	"github.com/omercouncil/budget-portal/internal/budget/aggregate"
	"github.com/omercouncil/budget-portal/internal/budget/reconcile"
	"github.com/omercouncil/budget-portal/internal/budget/session"
	"github.com/omercouncil/budget-portal/internal/budget/types"
	"github.com/omercouncil/budget-portal/internal/response"
)

type GetSummaryResponse = response.APIResponse[types.Totals]
type GetChartResponse = response.APIResponse[[]types.ChartSlice]
type GetLinesResponse = response.APIResponse[[]types.ReconciledLine]
type GetDepartmentsResponse = response.APIResponse[[]string]

func metricFromQuery(r *http.Request) types.Metric {
	if r.URL.Query().Get("metric") == "committed" {
		return types.MetricCommitted
	}
	return types.MetricActual
}

// currentState returns the active snapshot or reports the 503 itself.
func (app *application) currentState(w http.ResponseWriter) (*session.AppState, bool) {
	st, ok := app.manager.State()
	if !ok {
		writeJSONError(w, http.StatusServiceUnavailable, "data not loaded yet, try again shortly")
		return nil, false
	}
	return st, true
}

// reconciledFor runs the visible-rows pipeline for the request's user.
func reconciledFor(user access.User, st *session.AppState, metric types.Metric) []types.ReconciledLine {
	visible := access.ResolveVisible(user, st.Lines)
	return reconcile.Reconcile(visible, st.Execution, metric)
}

func (app *application) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	st, ok := app.currentState(w)
	if !ok {
		return
	}

	lines := reconciledFor(userFrom(r), st, metricFromQuery(r))
	totals := aggregate.Summarize(lines, r.URL.Query().Get("wing"))

	writeJSON(w, http.StatusOK, &GetSummaryResponse{
		Success:      true,
		DegradedData: st.FeedDegraded,
		Data:         totals,
	})
}

func (app *application) handleGetChart(w http.ResponseWriter, r *http.Request) {
	st, ok := app.currentState(w)
	if !ok {
		return
	}
	user := userFrom(r)

	lines := reconciledFor(user, st, metricFromQuery(r))

	// Drilled into a wing (or scoped to one) the chart breaks down by
	// department; at the top level it breaks down by wing.
	wing := r.URL.Query().Get("wing")
	var slices []types.ChartSlice
	if wing != "" {
		slices = aggregate.ByDept(aggregate.Filter{Wing: wing}.Apply(lines))
	} else if _, isWing := user.Scope.(access.WingScope); isWing {
		slices = aggregate.ByDept(lines)
	} else {
		slices = aggregate.ByWing(lines)
	}

	writeJSON(w, http.StatusOK, &GetChartResponse{
		Success:      true,
		DegradedData: st.FeedDegraded,
		Data:         slices,
	})
}

func (app *application) handleGetLines(w http.ResponseWriter, r *http.Request) {
	st, ok := app.currentState(w)
	if !ok {
		return
	}

	lines := reconciledFor(userFrom(r), st, metricFromQuery(r))

	q := r.URL.Query()
	filter := aggregate.Filter{
		Wing:      q.Get("wing"),
		Dept:      q.Get("dept"),
		TypeLabel: q.Get("type"),
		Search:    q.Get("q"),
	}

	writeJSON(w, http.StatusOK, &GetLinesResponse{
		Success:      true,
		DegradedData: st.FeedDegraded,
		Data:         filter.Apply(lines),
	})
}

func (app *application) handleGetWingDepartments(w http.ResponseWriter, r *http.Request) {
	st, ok := app.currentState(w)
	if !ok {
		return
	}

	wing := r.URL.Query().Get("wing")
	if wing == "" {
		writeJSONError(w, http.StatusBadRequest, "wing parameter is required")
		return
	}

	lines := reconciledFor(userFrom(r), st, types.MetricActual)
	writeJSON(w, http.StatusOK, &GetDepartmentsResponse{
		Success: true,
		Data:    aggregate.WingDepartments(lines, wing),
	})
}
