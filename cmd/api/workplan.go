package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/omercouncil/budget-portal/internal/budget/access"
	"github.com/omercouncil/budget-portal/internal/budget/aggregate"
	"github.com/omercouncil/budget-portal/internal/budget/normalize"
	"github.com/omercouncil/budget-portal/internal/budget/types"
	"github.com/omercouncil/budget-portal/internal/response"
)

type GetTasksResponse = response.APIResponse[[]types.WorkPlanTask]
type GetStatusResponse = response.APIResponse[types.StatusBreakdown]
type UpdateRatingResponse = response.APIResponse[types.WorkPlanTask]

func (app *application) handleGetTasks(w http.ResponseWriter, r *http.Request) {
	st, ok := app.currentState(w)
	if !ok {
		return
	}

	tasks := access.ResolveVisibleTasks(userFrom(r), st.Tasks)
	writeJSON(w, http.StatusOK, &GetTasksResponse{
		Success:      true,
		DegradedData: st.FeedDegraded,
		Data:         tasks,
	})
}

func (app *application) handleGetStatusBreakdown(w http.ResponseWriter, r *http.Request) {
	st, ok := app.currentState(w)
	if !ok {
		return
	}

	tasks := access.ResolveVisibleTasks(userFrom(r), st.Tasks)
	writeJSON(w, http.StatusOK, &GetStatusResponse{
		Success:      true,
		DegradedData: st.FeedDegraded,
		Data:         aggregate.Breakdown(tasks),
	})
}

type updateRatingRequest struct {
	Rating int `json:"rating"`
}

// handleUpdateRating applies a rating edit optimistically and forwards it
// to the external sheet automation. The edit holds until the next feed
// fetch, which is authoritative.
func (app *application) handleUpdateRating(w http.ResponseWriter, r *http.Request) {
	id := normalize.ID(chi.URLParam(r, "id"))
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, "task id is required")
		return
	}

	var input updateRatingRequest
	if err := readJSON(w, r, &input); err != nil {
		return
	}
	if input.Rating < 0 || input.Rating > 3 {
		writeJSONError(w, http.StatusBadRequest, "rating must be between 0 and 3")
		return
	}

	st, ok := app.currentState(w)
	if !ok {
		return
	}

	// Only rate tasks the user can see.
	user := userFrom(r)
	var task *types.WorkPlanTask
	for _, t := range access.ResolveVisibleTasks(user, st.Tasks) {
		if t.ID == id {
			found := t
			task = &found
			break
		}
	}
	if task == nil {
		writeJSONError(w, http.StatusNotFound, "task not found in your scope")
		return
	}

	if _, ok := app.manager.ApplyRating(id, input.Rating); !ok {
		writeJSONError(w, http.StatusServiceUnavailable, "data not loaded yet")
		return
	}
	app.notifier.NotifyAsync(id, input.Rating)

	task.Rating = input.Rating
	writeJSON(w, http.StatusOK, &UpdateRatingResponse{
		Success: true,
		Message: "rating applied locally and forwarded",
		Data:    *task,
	})
}
