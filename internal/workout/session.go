package workout

import (
	"math"
	"sort"
)

// Session is a derived view over all sets sharing one workout day. It is
// materialized fresh on every read and has no identity of its own.
type Session struct {
	Date          string      `json:"date"`
	MuscleGroups  []string    `json:"muscleGroups"`
	TotalVolumeKg float64     `json:"totalVolumeKg"`
	TotalSets     int         `json:"totalSets"`
	Exercises     []LoggedSet `json:"exercises"`
}

// Aggregate groups a flat list of sets (already scoped to one user) into
// day-sessions, most recent first. Within a session, sets are ordered by
// SetOrder. Warm-ups count toward TotalVolumeKg but not TotalSets. The volume
// is rounded to 2 decimals once, on the final sum — never per set.
func Aggregate(sets []LoggedSet) []Session {
	byDate := make(map[string][]LoggedSet)
	for _, s := range sets {
		byDate[s.DateString] = append(byDate[s.DateString], s)
	}

	sessions := make([]Session, 0, len(byDate))
	for date, group := range byDate {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].SetOrder < group[j].SetOrder
		})

		var volume float64
		total := 0
		seen := make(map[string]bool)
		var muscles []string

		for _, s := range group {
			volume += s.WeightKg() * float64(s.Reps)
			if !s.IsWarmup {
				total++
			}
			if s.MuscleGroup != "" && !seen[s.MuscleGroup] {
				seen[s.MuscleGroup] = true
				muscles = append(muscles, s.MuscleGroup)
			}
		}

		sessions = append(sessions, Session{
			Date:          date,
			MuscleGroups:  muscles,
			TotalVolumeKg: round2(volume),
			TotalSets:     total,
			Exercises:     group,
		})
	}

	// YYYY-MM-DD strings sort the same as the dates they name.
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Date > sessions[j].Date
	})
	return sessions
}

// Reaggregate recomputes a session from scratch after one of its sets was
// edited or removed. A single edit can change unit, warm-up flag, and group
// membership at once, so incremental patching of the aggregates is never
// attempted. An empty list means the session is gone and returns nil.
func Reaggregate(updated []LoggedSet) *Session {
	if len(updated) == 0 {
		return nil
	}
	sessions := Aggregate(updated)
	return &sessions[0]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
