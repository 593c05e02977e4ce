package ui

import (
	"net/http"

	"edahub/adapters/export"
)

func (a *App) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	state := sessionFrom(r)
	state.Lock()
	defer state.Unlock()

	view, err := a.report.DataView(state)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="data_report.csv"`)
	if err := export.WriteCSV(w, view); err != nil {
		a.log.Error("CSV export failed: %v", err)
	}
}

func (a *App) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	state := sessionFrom(r)
	state.Lock()
	defer state.Unlock()

	report, err := a.report.Summary(state)
	if err != nil {
		writeError(w, err)
		return
	}
	payload, err := export.WritePDF(report)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="data_summary.pdf"`)
	_, _ = w.Write(payload)
}

func (a *App) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	state := sessionFrom(r)
	state.Lock()
	defer state.Unlock()

	report, err := a.report.Summary(state)
	if err != nil {
		writeError(w, err)
		return
	}
	view, err := a.report.DataView(state)
	if err != nil {
		writeError(w, err)
		return
	}
	payload, err := export.WriteWorkbook(report, view)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="data_summary.xlsx"`)
	_, _ = w.Write(payload)
}

func (a *App) handleExportMarkdown(w http.ResponseWriter, r *http.Request) {
	state := sessionFrom(r)
	state.Lock()
	defer state.Unlock()

	report, err := a.report.Summary(state)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="data_summary.md"`)
	_, _ = w.Write(export.WriteMarkdown(report))
}

// handleReportPreview serves the Markdown rendition as HTML for in-browser
// display.
func (a *App) handleReportPreview(w http.ResponseWriter, r *http.Request) {
	state := sessionFrom(r)
	state.Lock()
	defer state.Unlock()

	report, err := a.report.Summary(state)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(export.RenderHTML(export.WriteMarkdown(report)))
}
