package ui

import (
	"net/http"
)

func (a *App) handleCharts(w http.ResponseWriter, r *http.Request) {
	state := sessionFrom(r)
	state.Lock()
	defer state.Unlock()

	selection, err := a.dashboard.Charts(state)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, selection)
}

func (a *App) handleStoryCurrent(w http.ResponseWriter, r *http.Request) {
	state := sessionFrom(r)
	state.Lock()
	defer state.Unlock()

	view, err := a.story.Current(state)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (a *App) handleStoryAdvance(w http.ResponseWriter, r *http.Request) {
	state := sessionFrom(r)
	state.Lock()
	defer state.Unlock()

	view, err := a.story.Advance(state)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (a *App) handleStoryRestart(w http.ResponseWriter, r *http.Request) {
	state := sessionFrom(r)
	state.Lock()
	defer state.Unlock()

	view, err := a.story.Restart(state)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
