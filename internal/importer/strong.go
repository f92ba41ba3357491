// Package importer reads and writes the two supported CSV shapes — Strong
// app exports and this app's own backup format — and drives bulk imports
// from a directory, tracking finished files in a small SQLite state DB so
// re-runs skip them.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/workout"
)

// ImportedMuscleGroup labels rows from external exports that carry no muscle
// group of their own; users reassign them from the history page.
const ImportedMuscleGroup = "importado"

// ParseStrong reads a Strong app export (semicolon-delimited, header row)
// and returns logged sets without IDs or owners — the caller assigns those.
// "Rest Timer" rows and rows without a set order are skipped.
func ParseStrong(r io.Reader) ([]workout.LoggedSet, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	col := headerIndex(header)

	var sets []workout.LoggedSet
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		setOrder := field(record, col, "Set Order")
		if setOrder == "" || setOrder == "Rest Timer" {
			continue
		}

		// Weight lives in whichever unit column the export was made with.
		weight, unit := 0.0, workout.UnitKg
		if kg, err := strconv.ParseFloat(field(record, col, "Weight (kg)"), 64); err == nil {
			weight = kg
		} else if lb, err := strconv.ParseFloat(field(record, col, "Weight (lbs)"), 64); err == nil {
			weight, unit = lb, workout.UnitLb
		}

		reps, _ := strconv.Atoi(field(record, col, "Reps"))
		order, err := strconv.Atoi(setOrder)
		if err != nil {
			order = 1
		}

		rawDate := field(record, col, "Date")
		dateString, createdAt := parseStrongDate(rawDate)

		exercise := strings.ToLower(field(record, col, "Exercise Name"))
		if exercise == "" {
			exercise = "unknown exercise"
		}

		set := workout.LoggedSet{
			MuscleGroup:  ImportedMuscleGroup,
			Exercise:     exercise,
			Weight:       weight,
			Unit:         unit,
			Reps:         reps,
			SetOrder:     order,
			Estimated1RM: workout.Estimate1RM(weight, reps),
			DateString:   dateString,
			CreatedAt:    createdAt,
		}
		if rpe, err := strconv.ParseFloat(field(record, col, "RPE"), 64); err == nil {
			set.RPE = &rpe
		}
		sets = append(sets, set)
	}
	return sets, nil
}

func headerIndex(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	return col
}

func field(record []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// parseStrongDate splits a Strong timestamp like "2024-05-11 17:32:00" into
// the logical workout day and a creation time. An unparseable date falls
// back to today.
func parseStrongDate(raw string) (string, time.Time) {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), t
		}
	}
	now := time.Now()
	return now.Format("2006-01-02"), now
}
