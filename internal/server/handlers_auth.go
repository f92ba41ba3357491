package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/workout"
)

type signInRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "a valid email is required"})
		return
	}

	user, token, err := s.db.SignIn(r.Context(), req.Email, req.DisplayName)
	if err != nil {
		s.storeError(w, "sign in", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := s.db.SignOut(r.Context(), bearerToken(r)); err != nil {
		s.storeError(w, "sign out", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	DisplayName string `json:"displayName"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.DisplayName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "displayName is required"})
		return
	}

	if err := s.db.UpdateProfile(r.Context(), user.ID, req.DisplayName); err != nil {
		s.storeError(w, "update profile", err)
		return
	}
	user.DisplayName = req.DisplayName
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleGetTimer(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	state, err := s.db.GetTimer(r.Context(), user.ID, date)
	if err != nil {
		s.storeError(w, "get timer", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"timer":   state,
		"elapsed": state.Elapsed(time.Now()),
	})
}

type timerRequest struct {
	Date   string `json:"date"`
	Action string `json:"action"` // "start" | "pause" | "reset"
}

func (s *Server) handlePutTimer(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	var req timerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Date == "" {
		req.Date = time.Now().Format("2006-01-02")
	}

	state, err := s.db.GetTimer(r.Context(), user.ID, req.Date)
	if err != nil {
		s.storeError(w, "put timer (read)", err)
		return
	}

	now := time.Now()
	switch req.Action {
	case "start":
		state = state.Start(now)
	case "pause":
		state = state.Pause(now)
	case "reset":
		state = workout.TimerState{Status: workout.TimerPaused}
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "action must be start, pause, or reset"})
		return
	}

	if err := s.db.UpsertTimer(r.Context(), user.ID, req.Date, state); err != nil {
		s.storeError(w, "put timer (write)", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"timer":   state,
		"elapsed": state.Elapsed(now),
	})
}
