package ui

import (
	"net/http"
)

type queryRequest struct {
	Query string `json:"query"`
}

// handleQuery runs an ad hoc SQL query against a throwaway copy of the
// filtered view. Query errors come back verbatim; nothing in the session
// changes either way.
func (a *App) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	state := sessionFrom(r)
	state.Lock()
	defer state.Unlock()

	view, err := a.dashboard.FilteredView(state)
	if err != nil {
		writeError(w, err)
		return
	}
	result, err := a.console.Run(r.Context(), view, req.Query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
