package main

import (
	"context"
	"net/http"
	"strconv"

	"github.com/omercouncil/budget-portal/internal/budget/session"
	"github.com/omercouncil/budget-portal/internal/response"
	"github.com/omercouncil/budget-portal/internal/store"
)

type RefreshResponse = response.APIResponse[refreshResult]
type GetFetchHistoryResponse = response.APIResponse[[]store.FetchRun]

type refreshResult struct {
	Seq       uint64 `json:"seq"`
	Lines     int    `json:"lines"`
	Tasks     int    `json:"tasks"`
	Execution int    `json:"execution_records"`
}

func (app *application) handleRefresh(w http.ResponseWriter, r *http.Request) {
	st, err := app.manager.Refresh(r.Context())

	app.recordFetchRun(r.Context(), store.TriggerTypeManual, st, err)

	if err != nil {
		writeJSONError(w, http.StatusBadGateway, "refresh failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, &RefreshResponse{
		Success:      true,
		DegradedData: st.FeedDegraded,
		Data: refreshResult{
			Seq:       st.Seq,
			Lines:     len(st.Lines),
			Tasks:     len(st.Tasks),
			Execution: len(st.Execution),
		},
	})
}

// recordFetchRun writes the audit record for a fetch cycle. History is
// best effort: a storage failure is logged, never surfaced.
func (app *application) recordFetchRun(ctx context.Context, trigger string, st *session.AppState, refreshErr error) {
	run := &store.FetchRun{TriggerType: trigger, Status: store.StatusSuccess}
	switch {
	case refreshErr != nil:
		run.Status = store.StatusFailure
		run.Detail = refreshErr.Error()
	case st.FeedDegraded:
		run.Status = store.StatusDegraded
		run.Detail = "live feed unavailable, execution figures zeroed"
	}
	if st != nil {
		run.LineCount = len(st.Lines)
		run.TaskCount = len(st.Tasks)
		run.ExecutionCount = len(st.Execution)
	}

	if err := app.store.FetchRuns.InsertFetchRun(ctx, run); err != nil {
		app.logger.Error("API", "Failed to record fetch run: %v", err)
	}
}

func (app *application) handleGetFetchHistory(w http.ResponseWriter, r *http.Request) {
	limitParam := r.URL.Query().Get("limit")
	limit := 10
	if limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil {
			limit = l
		}
	}

	data, err := app.store.FetchRuns.GetLatest(r.Context(), limit)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to get fetch history: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, &GetFetchHistoryResponse{
		Success: true,
		Data:    data,
	})
}
