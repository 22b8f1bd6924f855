package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/omercouncil/budget-portal/internal/budget/session"
	"github.com/omercouncil/budget-portal/internal/budget/sink"
	"github.com/omercouncil/budget-portal/internal/logger"
	"github.com/omercouncil/budget-portal/internal/store"
)

type application struct {
	config   config
	store    store.Storage
	logger   *logger.Logger
	manager  *session.Manager
	notifier *sink.Notifier
	sessions *sessionTable
}

type config struct {
	addr        string
	budgetURL   string
	workPlanURL string
	feedURL     string
	sinkURL     string
	db          dbConfig
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Post("/auth/login", app.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(app.requireSession)

			r.Route("/budget", func(r chi.Router) {
				r.Get("/summary", app.handleGetSummary)
				r.Get("/chart", app.handleGetChart)
				r.Get("/lines", app.handleGetLines)
				r.Get("/departments", app.handleGetWingDepartments)
			})
			r.Route("/workplan", func(r chi.Router) {
				r.Get("/tasks", app.handleGetTasks)
				r.Get("/status", app.handleGetStatusBreakdown)
				r.Post("/{id}/rating", app.handleUpdateRating)
			})
			r.Post("/refresh", app.handleRefresh)
			r.Get("/fetch/history", app.handleGetFetchHistory)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	app.logger.Info("API", "Server started on %s", app.config.addr)
	return srv.ListenAndServe()
}
