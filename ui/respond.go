package ui

import (
	"encoding/json"
	"net/http"

	"edahub/internal/errors"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps engine error codes to HTTP statuses. Everything here is an
// inline diagnostic for the client; no engine state has changed.
func writeError(w http.ResponseWriter, err error) {
	code := errors.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeValidation, errors.CodeParse, errors.CodeQuery, errors.CodeEmptySelection:
		status = http.StatusBadRequest
	case errors.CodeDatasetNotLoaded, errors.CodeSessionNotFound:
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Wrap(errors.New(errors.CodeValidation, err.Error()), "invalid request body")
	}
	return nil
}
