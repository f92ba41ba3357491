package store

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/workout"
	"github.com/jackc/pgx/v5"
)

// GetTimer returns the session timer for one user and workout day. A missing
// row is the fresh-timer state: paused at zero.
func (db *DB) GetTimer(ctx context.Context, userID int, dateString string) (workout.TimerState, error) {
	state := workout.TimerState{Status: workout.TimerPaused}
	err := db.Pool.QueryRow(ctx,
		`SELECT status, accumulated_seconds, start_time
		 FROM session_timers WHERE user_id = $1 AND date_string = $2`,
		userID, dateString).Scan(&state.Status, &state.AccumulatedSeconds, &state.StartTime)
	if err == pgx.ErrNoRows {
		return workout.TimerState{Status: workout.TimerPaused}, nil
	}
	if err != nil {
		return state, fmt.Errorf("querying session timer: %w", err)
	}
	return state, nil
}

// UpsertTimer persists the timer state for one user and workout day.
func (db *DB) UpsertTimer(ctx context.Context, userID int, dateString string, state workout.TimerState) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO session_timers (user_id, date_string, status, accumulated_seconds, start_time)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, date_string) DO UPDATE
			SET status = $3, accumulated_seconds = $4, start_time = $5`,
		userID, dateString, state.Status, state.AccumulatedSeconds, state.StartTime)
	if err != nil {
		return fmt.Errorf("upserting session timer: %w", err)
	}
	return nil
}
