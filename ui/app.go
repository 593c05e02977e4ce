// Package ui is the HTTP surface of the dashboard. Handlers are thin: they
// decode parameters, lock the session, call one service, and write JSON or a
// file download. All engine failures come back as inline diagnostics, never
// as process faults.
package ui

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"edahub/adapters/query"
	"edahub/app"
	"edahub/internal"
	"edahub/internal/config"
	"edahub/internal/session"
)

// App wires the router, services, and session store.
type App struct {
	router   *chi.Mux
	cfg      *config.Config
	log      *internal.Logger
	sessions *session.Store

	dashboard *app.DashboardService
	story     *app.StoryService
	trivia    *app.TriviaService
	whatif    *app.WhatIfService
	report    *app.ReportService
	console   *query.Console
}

// NewApp assembles the application.
func NewApp(cfg *config.Config, log *internal.Logger) *App {
	dashboard := app.NewDashboardService(log)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	a := &App{
		router:    chi.NewRouter(),
		cfg:       cfg,
		log:       log,
		sessions:  session.NewStore(),
		dashboard: dashboard,
		story:     app.NewStoryService(dashboard, log),
		trivia:    app.NewTriviaService(dashboard, rng, log),
		whatif:    app.NewWhatIfService(dashboard, log),
		report:    app.NewReportService(dashboard, log),
		console:   query.NewConsole(cfg.Query.MaxResultRows, log),
	}

	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// Router returns the configured HTTP handler.
func (a *App) Router() http.Handler { return a.router }

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
	a.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))
	a.router.Use(a.withSession)
}

func (a *App) setupRoutes() {
	a.router.Route("/api", func(r chi.Router) {
		r.Post("/dataset", a.handleUpload)
		r.Get("/overview", a.handleOverview)
		r.Post("/roles", a.handleSelectRoles)
		r.Post("/filters", a.handleSetFilters)

		r.Get("/charts", a.handleCharts)

		r.Get("/story", a.handleStoryCurrent)
		r.Post("/story/advance", a.handleStoryAdvance)
		r.Post("/story/restart", a.handleStoryRestart)

		r.Get("/trivia", a.handleTriviaQuestion)
		r.Post("/trivia/answer", a.handleTriviaAnswer)
		r.Post("/trivia/reset", a.handleTriviaReset)

		r.Post("/whatif", a.handleWhatIf)

		r.Post("/query", a.handleQuery)

		r.Get("/export/csv", a.handleExportCSV)
		r.Get("/export/pdf", a.handleExportPDF)
		r.Get("/export/xlsx", a.handleExportXLSX)
		r.Get("/export/markdown", a.handleExportMarkdown)
		r.Get("/report/preview", a.handleReportPreview)
	})

	a.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
