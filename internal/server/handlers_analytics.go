package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/store"
	"github.com/claude/liftlog/internal/workout"
)

// displayUnit parses the unit query parameter, defaulting to kg.
func displayUnit(r *http.Request) (workout.Unit, bool) {
	switch r.URL.Query().Get("unit") {
	case "", "kg":
		return workout.UnitKg, true
	case "lb":
		return workout.UnitLb, true
	default:
		return "", false
	}
}

func (s *Server) handleAnalyticsLogs(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	start, end := q.Get("start"), q.Get("end")
	if start == "" || end == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "start and end parameters required"})
		return
	}

	page, err := s.db.QuerySets(r.Context(),
		store.SetFilter{UserID: user.ID, DateFrom: start, DateTo: end}, "", 0)
	if err != nil {
		s.storeError(w, "analytics logs", err)
		return
	}
	if page.Sets == nil {
		page.Sets = []workout.LoggedSet{}
	}
	writeJSON(w, http.StatusOK, page.Sets)
}

func (s *Server) handleWeeklyVolume(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	unit, okUnit := displayUnit(r)
	if !okUnit {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unit must be kg or lb"})
		return
	}

	weekOf := time.Now()
	if ws := r.URL.Query().Get("week"); ws != "" {
		parsed, err := time.Parse("2006-01-02", ws)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "week must be YYYY-MM-DD"})
			return
		}
		weekOf = parsed
	}

	sunday := workout.StartOfWeek(weekOf)
	page, err := s.db.QuerySets(r.Context(), store.SetFilter{
		UserID:   user.ID,
		DateFrom: sunday.Format("2006-01-02"),
		DateTo:   sunday.AddDate(0, 0, 6).Format("2006-01-02"),
	}, "", 0)
	if err != nil {
		s.storeError(w, "weekly volume", err)
		return
	}

	writeJSON(w, http.StatusOK, workout.WeeklyVolume(page.Sets, weekOf, unit))
}

func (s *Server) handleMuscleBalance(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	unit, okUnit := displayUnit(r)
	if !okUnit {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unit must be kg or lb"})
		return
	}

	window := workout.Window(r.URL.Query().Get("window"))
	switch window {
	case "":
		window = workout.WindowMonth
	case workout.WindowWeek, workout.WindowMonth, workout.Window3Months, workout.WindowYear:
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "window must be week, month, 3months, or year"})
		return
	}

	metric := workout.Metric(r.URL.Query().Get("metric"))
	switch metric {
	case "":
		metric = workout.MetricSets
	case workout.MetricSets, workout.MetricVolume:
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "metric must be sets or volume"})
		return
	}

	now := time.Now()
	page, err := s.db.QuerySets(r.Context(), store.SetFilter{
		UserID:   user.ID,
		DateFrom: windowStartDate(window, now),
		DateTo:   now.Format("2006-01-02"),
	}, "", 0)
	if err != nil {
		s.storeError(w, "muscle balance", err)
		return
	}

	shares := workout.MuscleBalance(page.Sets, window, metric, unit, now)
	if shares == nil {
		shares = []workout.MuscleShare{}
	}
	writeJSON(w, http.StatusOK, shares)
}

func windowStartDate(w workout.Window, now time.Time) string {
	switch w {
	case workout.WindowWeek:
		return now.AddDate(0, 0, -7).Format("2006-01-02")
	case workout.Window3Months:
		return now.AddDate(0, -3, 0).Format("2006-01-02")
	case workout.WindowYear:
		return now.AddDate(-1, 0, 0).Format("2006-01-02")
	default:
		return now.AddDate(0, -1, 0).Format("2006-01-02")
	}
}

func (s *Server) handleConsistency(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	unit, okUnit := displayUnit(r)
	if !okUnit {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unit must be kg or lb"})
		return
	}

	monthsParam := r.URL.Query().Get("months")
	if monthsParam == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "months parameter required (comma-separated YYYY-MM)"})
		return
	}
	months := strings.Split(monthsParam, ",")
	for _, m := range months {
		if _, err := time.Parse("2006-01", m); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "months must be YYYY-MM"})
			return
		}
	}

	// One range query covers every selected month.
	minMonth, maxMonth := months[0], months[0]
	for _, m := range months[1:] {
		if m < minMonth {
			minMonth = m
		}
		if m > maxMonth {
			maxMonth = m
		}
	}

	page, err := s.db.QuerySets(r.Context(), store.SetFilter{
		UserID:   user.ID,
		DateFrom: minMonth + "-01",
		DateTo:   maxMonth + "-31",
	}, "", 0)
	if err != nil {
		s.storeError(w, "consistency", err)
		return
	}

	matrix, maxIntensity := workout.ConsistencyMatrix(page.Sets, months, unit)
	writeJSON(w, http.StatusOK, map[string]any{
		"months":       matrix,
		"maxIntensity": maxIntensity,
	})
}
