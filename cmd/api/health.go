package main

import "net/http"

// @Summary		Health check
// @Description	returns the status of the service and the active data snapshot
// @Tags			Health
// @Produce		json
// @Success		200	{object}	map[string]any
// @Router			/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {

	data := map[string]any{
		"status":  "available",
		"version": "0.0.1",
	}
	if st, ok := app.manager.State(); ok {
		data["snapshot_seq"] = st.Seq
		data["snapshot_at"] = st.FetchedAt
		data["feed_degraded"] = st.FeedDegraded
	}

	if err := writeJSON(w, http.StatusOK, data); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}
