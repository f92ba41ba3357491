package store

import (
	"context"
	"fmt"
)

// DataStats holds aggregate statistics about one user's stored data.
type DataStats struct {
	TotalSets     int64   `json:"total_sets"`
	TotalSessions int64   `json:"total_sessions"`
	MuscleGroups  int64   `json:"muscle_groups"`
	Exercises     int64   `json:"exercises"`
	EarliestDate  *string `json:"earliest_date"`
	LatestDate    *string `json:"latest_date"`
}

// GetDataStats returns aggregate statistics for a user's logged sets.
func (db *DB) GetDataStats(ctx context.Context, userID int) (*DataStats, error) {
	stats := &DataStats{}
	err := db.Pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(DISTINCT date_string),
		       COUNT(DISTINCT muscle_group),
		       COUNT(DISTINCT exercise),
		       MIN(date_string),
		       MAX(date_string)
		FROM workout_logs WHERE user_id = $1`, userID,
	).Scan(&stats.TotalSets, &stats.TotalSessions, &stats.MuscleGroups,
		&stats.Exercises, &stats.EarliestDate, &stats.LatestDate)
	if err != nil {
		return nil, fmt.Errorf("querying data stats: %w", err)
	}
	return stats, nil
}
