package ui

import (
	"net/http"
	"time"

	"edahub/domain/dataset"
	"edahub/domain/filter"
	"edahub/internal/errors"
	"edahub/internal/ingest"
)

// handleUpload parses a multipart CSV/XLSX upload into the session's dataset.
// Loading a dataset resets roles, filters, the story, and the trivia game.
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.cfg.Upload.MaxFileBytes)
	if err := r.ParseMultipartForm(a.cfg.Upload.MaxFileBytes); err != nil {
		writeError(w, errors.New(errors.CodeValidation, "upload exceeds the size limit"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, errors.New(errors.CodeValidation, "missing uploaded file"))
		return
	}
	defer file.Close()

	frame, err := ingest.Parse(file, header.Filename)
	if err != nil {
		a.log.Warn("upload parse failed for %q: %v", header.Filename, err)
		writeError(w, err)
		return
	}
	if len(frame.Columns()) > a.cfg.Upload.MaxColumns {
		writeError(w, errors.Newf(errors.CodeValidation,
			"dataset has %d columns, limit is %d", len(frame.Columns()), a.cfg.Upload.MaxColumns))
		return
	}

	state := sessionFrom(r)
	state.Lock()
	defer state.Unlock()

	state.Frame = frame
	state.Roles = dataset.RoleSelection{}
	state.Filters = filter.FilterSet{}
	state.ResetStory()
	state.ResetTrivia()

	a.log.Info("dataset loaded: %q (%d rows, %d columns)",
		header.Filename, frame.RowCount(), len(frame.Columns()))

	overview, err := a.dashboard.Overview(state)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, overview)
}

func (a *App) handleOverview(w http.ResponseWriter, r *http.Request) {
	state := sessionFrom(r)
	state.Lock()
	defer state.Unlock()

	overview, err := a.dashboard.Overview(state)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

type rolesRequest struct {
	Date     string `json:"date_column"`
	Category string `json:"category_column"`
	Measure  string `json:"measure_column"`
}

type rolesResponse struct {
	Selection dataset.RoleSelection `json:"selection"`
	Warning   string                `json:"warning,omitempty"`
}

func (a *App) handleSelectRoles(w http.ResponseWriter, r *http.Request) {
	var req rolesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	state := sessionFrom(r)
	state.Lock()
	defer state.Unlock()

	warning, err := a.dashboard.SelectRoles(state, dataset.RoleSelection{
		Date:     req.Date,
		Category: req.Category,
		Measure:  req.Measure,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rolesResponse{Selection: state.Roles, Warning: warning})
}

type filtersRequest struct {
	Start      string              `json:"start"`
	End        string              `json:"end"`
	Categories map[string][]string `json:"categories"`
}

func (a *App) handleSetFilters(w http.ResponseWriter, r *http.Request) {
	var req filtersRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	fs := filter.FilterSet{Categories: req.Categories}
	if req.Start != "" {
		t, err := time.Parse("2006-01-02", req.Start)
		if err != nil {
			writeError(w, errors.Newf(errors.CodeValidation, "invalid start date %q", req.Start))
			return
		}
		fs.Start = &t
	}
	if req.End != "" {
		t, err := time.Parse("2006-01-02", req.End)
		if err != nil {
			writeError(w, errors.Newf(errors.CodeValidation, "invalid end date %q", req.End))
			return
		}
		fs.End = &t
	}

	state := sessionFrom(r)
	state.Lock()
	defer state.Unlock()

	if err := a.dashboard.SetFilters(state, fs); err != nil {
		writeError(w, err)
		return
	}
	overview, err := a.dashboard.Overview(state)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}
