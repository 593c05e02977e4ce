package ui

import (
	"net/http"

	"edahub/internal/errors"
)

func (a *App) handleTriviaQuestion(w http.ResponseWriter, r *http.Request) {
	state := sessionFrom(r)
	state.Lock()
	defer state.Unlock()

	round, err := a.trivia.Question(state)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, round)
}

type triviaAnswerRequest struct {
	Answer string `json:"answer"`
}

func (a *App) handleTriviaAnswer(w http.ResponseWriter, r *http.Request) {
	var req triviaAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	state := sessionFrom(r)
	state.Lock()
	defer state.Unlock()

	verdict, err := a.trivia.Submit(state, req.Answer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, verdict)
}

func (a *App) handleTriviaReset(w http.ResponseWriter, r *http.Request) {
	state := sessionFrom(r)
	state.Lock()
	defer state.Unlock()

	a.trivia.Reset(state)
	writeJSON(w, http.StatusOK, map[string]int{"score": state.TriviaScore})
}

type whatIfRequest struct {
	Column        string  `json:"column"`
	PercentChange float64 `json:"percent_change"`
}

func (a *App) handleWhatIf(w http.ResponseWriter, r *http.Request) {
	var req whatIfRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Column == "" {
		writeError(w, errors.New(errors.CodeEmptySelection, "no column selected for what-if analysis"))
		return
	}

	state := sessionFrom(r)
	state.Lock()
	defer state.Unlock()

	cmp, err := a.whatif.Run(state, req.Column, req.PercentChange)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cmp)
}
