package store

import (
	"context"
	"fmt"
)

// MuscleGroups returns the distinct muscle groups a user has ever logged,
// in the stored lower-case form.
func (db *DB) MuscleGroups(ctx context.Context, userID int) ([]string, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT DISTINCT muscle_group FROM workout_logs WHERE user_id = $1 ORDER BY muscle_group`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying muscle groups: %w", err)
	}
	defer rows.Close()

	var groups []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, fmt.Errorf("scanning muscle group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// Exercises returns the distinct exercises a user has logged for one muscle
// group.
func (db *DB) Exercises(ctx context.Context, userID int, muscleGroup string) ([]string, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT DISTINCT exercise FROM workout_logs
		 WHERE user_id = $1 AND muscle_group = $2 ORDER BY exercise`,
		userID, muscleGroup)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var exercises []string
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}
