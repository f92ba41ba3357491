package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/store"
	"github.com/claude/liftlog/internal/workout"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// storeError logs a store failure and renders the generic message. Schema
// errors (missing table/column, usually unapplied migrations) get their own
// log line so they stand out from ordinary outages.
func (s *Server) storeError(w http.ResponseWriter, op string, err error) {
	if code, ok := store.SchemaError(err); ok {
		s.log.Error("store schema error — are migrations applied?", "op", op, "pg_code", code, "error", err)
	} else {
		s.log.Error("store error", "op", op, "error", err)
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "operation failed"})
}

type saveWorkoutRequest struct {
	MuscleGroup string             `json:"muscleGroup"`
	Exercise    string             `json:"exercise"`
	Unit        workout.Unit       `json:"unit"`
	Date        string             `json:"date"` // optional YYYY-MM-DD, defaults to today
	Sets        []workout.SetEntry `json:"sets"`
}

func (req *saveWorkoutRequest) validate() string {
	switch {
	case req.MuscleGroup == "":
		return "muscleGroup is required"
	case req.Exercise == "":
		return "exercise is required"
	case len(req.Sets) == 0:
		return "at least one set is required"
	}
	if req.Unit != "" && req.Unit != workout.UnitKg && req.Unit != workout.UnitLb {
		return "unit must be kg or lb"
	}
	if req.Date != "" {
		if _, err := time.Parse("2006-01-02", req.Date); err != nil {
			return "date must be YYYY-MM-DD"
		}
	}
	for _, set := range req.Sets {
		if set.Weight < 0 || set.Reps < 0 {
			return "weight and reps must be non-negative"
		}
		if set.RPE != nil && (*set.RPE < 1 || *set.RPE > 10) {
			return "rpe must be between 1 and 10"
		}
	}
	return ""
}

func lower(s string) string { return strings.ToLower(s) }

func (s *Server) handleSaveWorkout(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	var req saveWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	sets := buildBatch(req, user.ID, time.Now())
	inserted, err := s.db.SaveBatch(r.Context(), sets)
	if err != nil {
		s.storeError(w, "save workout", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"inserted": inserted})
}

// buildBatch turns a validated save request into persistable records: labels
// and set orders from the pure labeling pass, lower-cased group and exercise,
// and createdAt pinned to noon of the workout day when the user backdated it.
func buildBatch(req saveWorkoutRequest, userID int, now time.Time) []workout.LoggedSet {
	unit := req.Unit
	if unit == "" {
		unit = workout.UnitKg
	}

	dateString := req.Date
	createdAt := now
	if dateString == "" {
		dateString = now.Format("2006-01-02")
	} else {
		day, _ := time.Parse("2006-01-02", dateString)
		createdAt = time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, time.UTC)
	}

	labeled := workout.Label(req.Sets)
	sets := make([]workout.LoggedSet, 0, len(labeled))
	for _, ls := range labeled {
		sets = append(sets, workout.LoggedSet{
			ID:           uuid.NewString(),
			UserID:       userID,
			MuscleGroup:  lower(req.MuscleGroup),
			Exercise:     lower(req.Exercise),
			Weight:       ls.Weight,
			Unit:         unit,
			Reps:         ls.Reps,
			RPE:          ls.RPE,
			IsWarmup:     ls.IsWarmup,
			IsDropSet:    ls.IsDropSet,
			SetOrder:     ls.SetOrder,
			Estimated1RM: ls.Calculated1RM,
			DateString:   dateString,
			CreatedAt:    createdAt,
		})
	}
	return sets
}

func (s *Server) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.db.UpdateSet(r.Context(), id, user.ID, fields); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "set not found"})
			return
		}
		s.storeError(w, "update set", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleDeleteSet(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.db.DeleteSet(r.Context(), id, user.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "set not found"})
			return
		}
		s.storeError(w, "delete set", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleSessionByDate(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	date := chi.URLParam(r, "date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		return
	}

	page, err := s.db.QuerySets(r.Context(), store.SetFilter{UserID: user.ID, Date: date}, "", 0)
	if err != nil {
		s.storeError(w, "session by date", err)
		return
	}

	session := workout.Reaggregate(page.Sets)
	if session == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no session on " + date})
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// handleExerciseStats replays the original's two-query shape: a 20-row page
// to locate the most recent session (warm-ups included) and the full
// non-warm-up history for PR scanning.
func (s *Server) handleExerciseStats(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	exercise := lower(r.URL.Query().Get("exercise"))
	if exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise parameter required"})
		return
	}

	recent, err := s.db.QuerySets(r.Context(),
		store.SetFilter{UserID: user.ID, Exercise: exercise}, "", 20)
	if err != nil {
		s.storeError(w, "exercise stats (recent)", err)
		return
	}

	noWarmups := false
	history, err := s.db.QuerySets(r.Context(),
		store.SetFilter{UserID: user.ID, Exercise: exercise, IsWarmup: &noWarmups}, "", 0)
	if err != nil {
		s.storeError(w, "exercise stats (history)", err)
		return
	}

	prs := workout.ComputeStats(history.Sets)
	writeJSON(w, http.StatusOK, workout.Stats{
		LastSession: workout.LastSession(recent.Sets),
		PR1RM:       prs.PR1RM,
		PRWeight:    prs.PRWeight,
	})
}

func (s *Server) handleMuscleCatalog(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}
	groups, err := s.db.MuscleGroups(r.Context(), user.ID)
	if err != nil {
		s.storeError(w, "muscle catalog", err)
		return
	}
	if groups == nil {
		groups = []string{}
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleExerciseCatalog(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}
	muscle := lower(r.URL.Query().Get("muscle"))
	if muscle == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "muscle parameter required"})
		return
	}
	exercises, err := s.db.Exercises(r.Context(), user.ID, muscle)
	if err != nil {
		s.storeError(w, "exercise catalog", err)
		return
	}
	if exercises == nil {
		exercises = []string{}
	}
	writeJSON(w, http.StatusOK, exercises)
}
