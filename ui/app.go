package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"apptdash/domain/appointment"
	"apptdash/internal/config"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// App serves the dashboard over the table loaded at startup. The table is
// never mutated after construction, so handlers share it freely.
type App struct {
	router    *chi.Mux
	table     *appointment.Table
	defaults  config.FilterConfig
	templates *template.Template
	log       *logrus.Logger
}

// NewApp wires the dashboard application around an already-loaded table.
func NewApp(table *appointment.Table, cfg *config.Config, log *logrus.Logger) (*App, error) {
	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"has": func(values []string, v string) bool {
			for _, value := range values {
				if value == v {
					return true
				}
			}
			return false
		},
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		table:     table,
		defaults:  cfg.Filter,
		templates: templates,
		log:       log,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	// Serve static files; embedded paths already carry the static/ prefix
	a.router.Handle("/static/*", http.FileServer(http.FS(embeddedFiles)))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	// Pages
	a.router.Get("/", a.handleIndex)
	a.router.Get("/about", a.handleAbout)
	a.router.Get("/health", a.handleHealth)

	// Dashboard API
	a.router.Get("/api/dashboard", a.handleDashboard)
	a.router.Get("/api/summary", a.handleSummary)
	a.router.Get("/api/charts/outcomes", a.handleOutcomesChart)
	a.router.Get("/api/charts/ages", a.handleAgesChart)
	a.router.Get("/api/charts/weekdays", a.handleWeekdaysChart)
	a.router.Get("/api/charts/neighbourhoods", a.handleNeighbourhoodsChart)
	a.router.Get("/api/appointments", a.handleAppointments)
	a.router.Get("/api/insights", a.handleInsights)

	// Downloads of the current filtered view
	a.router.Get("/download/csv", a.handleDownloadCSV)
	a.router.Get("/download/xlsx", a.handleDownloadXLSX)
}

// Router exposes the handler tree, mainly for the server and tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Server builds the HTTP server for the given address.
func (a *App) Server(addr string) *http.Server {
	return &http.Server{Addr: addr, Handler: a.router}
}

// Template helpers
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		a.log.WithError(err).Errorf("Template %s failed", templateName)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

func (a *App) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.log.WithError(err).Error("Failed to encode JSON response")
	}
}

// isHTMX reports whether the request wants an HTML fragment instead of JSON.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true" || r.URL.Query().Get("partial") == "1"
}
