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

// backupColumns is the export column order: the full record minus the owner.
var backupColumns = []string{
	"muscleGroup", "exercise", "weight", "unit", "reps", "rpe",
	"isWarmup", "isDropSet", "setOrder", "estimated1RM", "dateString", "createdAt",
}

// WriteBackup flattens a user's full record set to CSV, one row per logged
// set, without the owner column.
func WriteBackup(w io.Writer, sets []workout.LoggedSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(backupColumns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, s := range sets {
		rpe := ""
		if s.RPE != nil {
			rpe = strconv.FormatFloat(*s.RPE, 'f', -1, 64)
		}
		row := []string{
			s.MuscleGroup,
			s.Exercise,
			strconv.FormatFloat(s.Weight, 'f', -1, 64),
			string(s.Unit),
			strconv.Itoa(s.Reps),
			rpe,
			strconv.FormatBool(s.IsWarmup),
			strconv.FormatBool(s.IsDropSet),
			strconv.Itoa(s.SetOrder),
			strconv.FormatFloat(s.Estimated1RM, 'f', -1, 64),
			s.DateString,
			s.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ParseBackup reads a backup produced by WriteBackup. The estimated 1RM is
// recomputed rather than trusted, so edited backups cannot introduce drift.
func ParseBackup(r io.Reader) ([]workout.LoggedSet, error) {
	cr := csv.NewReader(r)
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

		weight, _ := strconv.ParseFloat(field(record, col, "weight"), 64)
		reps, _ := strconv.Atoi(field(record, col, "reps"))
		order, _ := strconv.Atoi(field(record, col, "setOrder"))

		unit := workout.Unit(field(record, col, "unit"))
		if unit != workout.UnitLb {
			unit = workout.UnitKg
		}

		set := workout.LoggedSet{
			MuscleGroup:  strings.ToLower(field(record, col, "muscleGroup")),
			Exercise:     strings.ToLower(field(record, col, "exercise")),
			Weight:       weight,
			Unit:         unit,
			Reps:         reps,
			IsWarmup:     field(record, col, "isWarmup") == "true",
			IsDropSet:    field(record, col, "isDropSet") == "true",
			SetOrder:     order,
			Estimated1RM: workout.Estimate1RM(weight, reps),
			DateString:   field(record, col, "dateString"),
		}
		if rpe, err := strconv.ParseFloat(field(record, col, "rpe"), 64); err == nil {
			set.RPE = &rpe
		}
		if t, err := time.Parse(time.RFC3339, field(record, col, "createdAt")); err == nil {
			set.CreatedAt = t
		} else {
			set.CreatedAt = time.Now()
		}
		sets = append(sets, set)
	}
	return sets, nil
}
