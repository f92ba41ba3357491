package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/claude/liftlog/internal/workout"
	"github.com/jackc/pgx/v5"
)

// fieldColumns whitelists the patchable fields and maps the wire names to
// their columns. Anything else in a patch is silently dropped, never written.
var fieldColumns = map[string]string{
	"weight":      "weight",
	"reps":        "reps",
	"rpe":         "rpe",
	"isWarmup":    "is_warmup",
	"isDropSet":   "is_drop_set",
	"unit":        "unit",
	"muscleGroup": "muscle_group",
	"exercise":    "exercise",
}

// filterPatch keeps only whitelisted fields, lower-casing the label fields
// the same way batch writes do. Exposed within the package for testing.
func filterPatch(fields map[string]any) map[string]any {
	patch := make(map[string]any, len(fields))
	for name, v := range fields {
		col, ok := fieldColumns[name]
		if !ok {
			continue
		}
		if name == "muscleGroup" || name == "exercise" {
			if s, ok := v.(string); ok {
				v = strings.ToLower(s)
			}
		}
		patch[col] = v
	}
	return patch
}

// UpdateSet patches whitelisted fields on one record. When weight or reps
// change, estimated_1rm is recomputed before the write so the stored cache
// never drifts from the raw values; missing halves of the pair are read from
// the current row.
func (db *DB) UpdateSet(ctx context.Context, id string, userID int, fields map[string]any) error {
	patch := filterPatch(fields)
	if len(patch) == 0 {
		return nil
	}

	newWeight, hasWeight := toFloat(patch["weight"])
	newReps, hasReps := toInt(patch["reps"])
	if hasReps {
		patch["reps"] = newReps
	}

	if hasWeight || hasReps {
		if !hasWeight || !hasReps {
			var curWeight float64
			var curReps int
			err := db.Pool.QueryRow(ctx,
				`SELECT weight, reps FROM workout_logs WHERE id = $1 AND user_id = $2`,
				id, userID).Scan(&curWeight, &curReps)
			if err == pgx.ErrNoRows {
				return ErrNotFound
			}
			if err != nil {
				return fmt.Errorf("reading current set: %w", err)
			}
			if !hasWeight {
				newWeight = curWeight
			}
			if !hasReps {
				newReps = curReps
			}
		}
		patch["estimated_1rm"] = workout.Estimate1RM(newWeight, newReps)
	}

	assignments := make([]string, 0, len(patch))
	args := make([]any, 0, len(patch)+2)
	for col, v := range patch {
		args = append(args, v)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	args = append(args, id, userID)

	query := fmt.Sprintf(`UPDATE workout_logs SET %s WHERE id = $%d AND user_id = $%d`,
		strings.Join(assignments, ", "), len(args)-1, len(args))

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating workout log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// toFloat accepts the numeric shapes a decoded JSON patch can carry.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}
