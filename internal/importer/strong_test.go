package importer

import (
	"strings"
	"testing"

	"github.com/claude/liftlog/internal/workout"
)

const strongSample = `Date;Workout Name;Duration;Exercise Name;Set Order;Weight (kg);Reps;Distance;Seconds;RPE
2024-05-11 17:32:00;Push Day;45m;Bench Press;1;80;8;;;8
2024-05-11 17:32:00;Push Day;45m;Bench Press;2;80;6;;;
2024-05-11 17:32:00;Push Day;45m;Bench Press;Rest Timer;;;;90;
2024-05-11 17:32:00;Push Day;45m;Overhead Press;1;40;10;;;7.5
`

func TestParseStrong(t *testing.T) {
	sets, err := ParseStrong(strings.NewReader(strongSample))
	if err != nil {
		t.Fatalf("ParseStrong: %v", err)
	}
	if len(sets) != 3 {
		t.Fatalf("got %d sets, want 3 (Rest Timer row skipped)", len(sets))
	}

	first := sets[0]
	if first.Exercise != "bench press" {
		t.Errorf("exercise = %q, want lower-cased name", first.Exercise)
	}
	if first.MuscleGroup != "importado" {
		t.Errorf("muscleGroup = %q, want %q", first.MuscleGroup, "importado")
	}
	if first.Weight != 80 || first.Unit != workout.UnitKg || first.Reps != 8 {
		t.Errorf("first set = %v %s x %d", first.Weight, first.Unit, first.Reps)
	}
	if first.DateString != "2024-05-11" {
		t.Errorf("dateString = %q", first.DateString)
	}
	if first.RPE == nil || *first.RPE != 8 {
		t.Errorf("rpe = %v, want 8", first.RPE)
	}
	if sets[1].RPE != nil {
		t.Errorf("blank RPE should stay nil, got %v", *sets[1].RPE)
	}
	if first.Estimated1RM != workout.Estimate1RM(80, 8) {
		t.Errorf("estimated 1RM = %v", first.Estimated1RM)
	}
	if sets[2].Exercise != "overhead press" || sets[2].SetOrder != 1 {
		t.Errorf("third set = %q order %d", sets[2].Exercise, sets[2].SetOrder)
	}
}

func TestParseStrongPounds(t *testing.T) {
	sample := `Date;Exercise Name;Set Order;Weight (lbs);Reps
2024-06-01;Squat;1;225;5
`
	sets, err := ParseStrong(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ParseStrong: %v", err)
	}
	if len(sets) != 1 {
		t.Fatalf("got %d sets, want 1", len(sets))
	}
	if sets[0].Weight != 225 || sets[0].Unit != workout.UnitLb {
		t.Errorf("got %v %s, want 225 lb", sets[0].Weight, sets[0].Unit)
	}
}

func TestParseStrongMissingHeader(t *testing.T) {
	if _, err := ParseStrong(strings.NewReader("")); err == nil {
		t.Error("empty input should fail on the header read")
	}
}
