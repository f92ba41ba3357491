package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/store"
	"github.com/claude/liftlog/internal/workout"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultDateRange returns a start/end day pair defaulting to the last 30 days.
func defaultDateRange(startStr, endStr string) (string, string, error) {
	end := time.Now()
	if endStr != "" {
		t, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return "", "", err
		}
		end = t
	}

	start := end.AddDate(0, 0, -30)
	if startStr != "" {
		t, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return "", "", err
		}
		start = t
	}

	return start.Format("2006-01-02"), end.Format("2006-01-02"), nil
}

// --- Tool definitions ---

var toolGetHistory = mcp.NewTool("get_history",
	mcp.WithDescription("Retrieve workout history as day-sessions: per day, total volume in kg, set count, muscle groups trained, and every logged set in order."),
	mcp.WithString("start", mcp.Description("Start date (YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date (YYYY-MM-DD). Defaults to today.")),
	mcp.WithString("muscle", mcp.Description("Filter by muscle group (e.g. 'chest')")),
	mcp.WithString("exercise", mcp.Description("Filter by exercise name (exact, e.g. 'bench press')")),
)

var toolGetExerciseStats = mcp.NewTool("get_exercise_stats",
	mcp.WithDescription("Most recent session and all-time personal records for one exercise. PRs are the best estimated 1RM and the heaviest weight, compared in kilograms; warm-up sets are excluded."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (e.g. 'bench press')")),
)

var toolGetWeeklyVolume = mcp.NewTool("get_weekly_volume",
	mcp.WithDescription("Per-day training volume for one week, Sunday through Saturday, in the requested display unit."),
	mcp.WithString("week", mcp.Description("Any date (YYYY-MM-DD) inside the week. Defaults to the current week.")),
	mcp.WithString("unit", mcp.Description("Display unit for volume. Defaults to kg."), mcp.Enum("kg", "lb")),
)

var toolGetMuscleBalance = mcp.NewTool("get_muscle_balance",
	mcp.WithDescription("Share of training per muscle group over a trailing window, by set count or volume."),
	mcp.WithString("window", mcp.Description("Trailing window. Defaults to month."), mcp.Enum("week", "month", "3months", "year")),
	mcp.WithString("metric", mcp.Description("What to count. Defaults to sets."), mcp.Enum("sets", "volume")),
	mcp.WithString("unit", mcp.Description("Display unit when metric is volume. Defaults to kg."), mcp.Enum("kg", "lb")),
)

var toolGetConsistency = mcp.NewTool("get_consistency",
	mcp.WithDescription("Calendar heat-map data: for each requested month, per-day set counts and volume, plus the peak day count for intensity scaling."),
	mcp.WithString("months", mcp.Required(), mcp.Description("Comma-separated months (YYYY-MM), e.g. '2026-02,2026-03'")),
	mcp.WithString("unit", mcp.Description("Display unit for daily volume. Defaults to kg."), mcp.Enum("kg", "lb")),
)

var toolGetDataStats = mcp.NewTool("get_data_stats",
	mcp.WithDescription("Totals for the user's log: sets, sessions, distinct muscle groups and exercises, and the earliest and latest workout dates."),
)

// --- Tool handlers ---

func displayUnitParam(req mcp.CallToolRequest) workout.Unit {
	if req.GetString("unit", "kg") == "lb" {
		return workout.UnitLb
	}
	return workout.UnitKg
}

func (h *handlers) getHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultDateRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	page, err := h.ds.QuerySets(ctx, store.SetFilter{
		UserID:      uid,
		DateFrom:    start,
		DateTo:      end,
		MuscleGroup: strings.ToLower(req.GetString("muscle", "")),
		Exercise:    strings.ToLower(req.GetString("exercise", "")),
	}, "", 0)
	if err != nil {
		h.log.Error("mcp get_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workout.Aggregate(page.Sets))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	uid := UserIDFromContext(ctx)
	page, err := h.ds.QuerySets(ctx, store.SetFilter{
		UserID:   uid,
		Exercise: strings.ToLower(exercise),
	}, "", 0)
	if err != nil {
		h.log.Error("mcp get_exercise_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	stats := workout.ComputeStats(page.Sets)
	stats.LastSession = workout.LastSession(page.Sets)

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWeeklyVolume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day := time.Now()
	if w := req.GetString("week", ""); w != "" {
		t, err := time.Parse("2006-01-02", w)
		if err != nil {
			return mcp.NewToolResultError("invalid week date: " + err.Error()), nil
		}
		day = t
	}
	weekStart := workout.StartOfWeek(day)

	uid := UserIDFromContext(ctx)
	page, err := h.ds.QuerySets(ctx, store.SetFilter{
		UserID:   uid,
		DateFrom: weekStart.Format("2006-01-02"),
		DateTo:   weekStart.AddDate(0, 0, 6).Format("2006-01-02"),
	}, "", 0)
	if err != nil {
		h.log.Error("mcp get_weekly_volume", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	days := workout.WeeklyVolume(page.Sets, weekStart, displayUnitParam(req))
	result, err := mcp.NewToolResultJSON(days)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getMuscleBalance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	window := workout.Window(req.GetString("window", string(workout.WindowMonth)))
	metric := workout.Metric(req.GetString("metric", string(workout.MetricSets)))

	now := time.Now()
	uid := UserIDFromContext(ctx)
	page, err := h.ds.QuerySets(ctx, store.SetFilter{
		UserID:   uid,
		DateFrom: balanceWindowStart(window, now),
		DateTo:   now.Format("2006-01-02"),
	}, "", 0)
	if err != nil {
		h.log.Error("mcp get_muscle_balance", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	shares := workout.MuscleBalance(page.Sets, window, metric, displayUnitParam(req), now)
	result, err := mcp.NewToolResultJSON(shares)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func balanceWindowStart(w workout.Window, now time.Time) string {
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

func (h *handlers) getConsistency(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	monthsParam, err := req.RequireString("months")
	if err != nil {
		return mcp.NewToolResultError("months parameter is required"), nil
	}
	months := strings.Split(monthsParam, ",")
	for i, m := range months {
		months[i] = strings.TrimSpace(m)
		if _, err := time.Parse("2006-01", months[i]); err != nil {
			return mcp.NewToolResultError("months must be comma-separated YYYY-MM values"), nil
		}
	}

	minMonth, maxMonth := months[0], months[0]
	for _, m := range months[1:] {
		if m < minMonth {
			minMonth = m
		}
		if m > maxMonth {
			maxMonth = m
		}
	}

	uid := UserIDFromContext(ctx)
	page, err := h.ds.QuerySets(ctx, store.SetFilter{
		UserID:   uid,
		DateFrom: minMonth + "-01",
		DateTo:   maxMonth + "-31",
	}, "", 0)
	if err != nil {
		h.log.Error("mcp get_consistency", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	matrices, maxCount := workout.ConsistencyMatrix(page.Sets, months, displayUnitParam(req))
	result, err := mcp.NewToolResultJSON(map[string]any{
		"months":       matrices,
		"maxIntensity": maxCount,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getDataStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	stats, err := h.ds.GetDataStats(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_data_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
