// Package server is the HTTP surface: a chi router over the store and the
// pure workout transformations. Handlers catch store errors, log them, and
// render generic failures; validation errors never reach the store.
package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/liftlog/internal/store"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *store.DB
	log    *slog.Logger
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *store.DB, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Post("/api/v1/auth/signin", s.handleSignIn)

	// Everything else requires a session token.
	s.router.Group(func(r chi.Router) {
		r.Use(SessionAuth(s.db))

		r.Post("/api/v1/auth/signout", s.handleSignOut)
		r.Get("/api/v1/me", s.handleMe)
		r.Patch("/api/v1/me", s.handleUpdateProfile)

		r.Post("/api/v1/workouts", s.handleSaveWorkout)
		r.Get("/api/v1/history", s.handleHistory)
		r.Get("/api/v1/sessions/{date}", s.handleSessionByDate)
		r.Patch("/api/v1/sets/{id}", s.handleUpdateSet)
		r.Delete("/api/v1/sets/{id}", s.handleDeleteSet)

		r.Get("/api/v1/exercises/stats", s.handleExerciseStats)
		r.Get("/api/v1/catalog/muscles", s.handleMuscleCatalog)
		r.Get("/api/v1/catalog/exercises", s.handleExerciseCatalog)

		r.Get("/api/v1/analytics/logs", s.handleAnalyticsLogs)
		r.Get("/api/v1/analytics/weekly-volume", s.handleWeeklyVolume)
		r.Get("/api/v1/analytics/muscle-balance", s.handleMuscleBalance)
		r.Get("/api/v1/analytics/consistency", s.handleConsistency)

		r.Get("/api/v1/timer", s.handleGetTimer)
		r.Put("/api/v1/timer", s.handlePutTimer)

		r.Post("/api/v1/import/strong", s.handleImportStrong)
		r.Post("/api/v1/import/backup", s.handleImportBackup)
		r.Get("/api/v1/export", s.handleExport)
		r.Delete("/api/v1/data", s.handleDeleteAllData)
		r.Get("/api/v1/stats", s.handleDataStats)
	})
}
