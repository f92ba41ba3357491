package workout

import (
	"testing"
	"time"
)

func logOn(date string, weight float64, reps int, muscle string) LoggedSet {
	return LoggedSet{
		Unit: UnitKg, Weight: weight, Reps: reps, DateString: date,
		MuscleGroup: muscle, SetOrder: 1,
	}
}

// TestWeeklyVolume verifies the Sunday-start fixed week: seven days, zeros
// for empty days, volume in the display unit.
func TestWeeklyVolume(t *testing.T) {
	// 2026-03-04 is a Wednesday; its week starts Sunday 2026-03-01.
	logs := []LoggedSet{
		logOn("2026-03-02", 100, 10, "pecho"), // Monday: 1000
		logOn("2026-03-02", 50, 10, "pecho"),  // Monday: +500
		logOn("2026-03-06", 80, 5, "espalda"), // Friday: 400
		logOn("2026-02-20", 999, 9, "pecho"),  // outside the week
	}

	days := WeeklyVolume(logs, time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC), UnitKg)
	if len(days) != 7 {
		t.Fatalf("days = %d, want 7", len(days))
	}
	if days[0].Date != "2026-03-01" || days[0].Day != "Sun" {
		t.Errorf("week start = %s (%s), want 2026-03-01 (Sun)", days[0].Date, days[0].Day)
	}
	if days[1].Volume != 1500 {
		t.Errorf("Monday volume = %v, want 1500", days[1].Volume)
	}
	if days[5].Volume != 400 {
		t.Errorf("Friday volume = %v, want 400", days[5].Volume)
	}
	for _, i := range []int{0, 2, 3, 4, 6} {
		if days[i].Volume != 0 {
			t.Errorf("%s volume = %v, want 0 (empty day reports zero, not absence)",
				days[i].Date, days[i].Volume)
		}
	}
}

// TestWeeklyVolumeUnit verifies normalization into the display unit.
func TestWeeklyVolumeUnit(t *testing.T) {
	logs := []LoggedSet{logOn("2026-03-01", 100, 10, "pecho")} // Sunday
	days := WeeklyVolume(logs, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), UnitLb)
	if days[0].Volume != 2205 { // 1000 kg-reps * 2.20462, rounded for charting
		t.Errorf("Sunday volume = %v lb, want 2205", days[0].Volume)
	}
}

// TestMuscleBalance verifies windowing, warm-up exclusion, display
// capitalization, and the sets/volume metric toggle.
func TestMuscleBalance(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	warm := logOn("2026-03-10", 40, 10, "pecho")
	warm.IsWarmup = true
	logs := []LoggedSet{
		logOn("2026-03-10", 80, 10, "pecho"),
		logOn("2026-03-12", 60, 10, "pecho"),
		logOn("2026-03-12", 90, 5, "espalda"),
		warm,
		logOn("2025-11-01", 100, 10, "piernas"), // outside a month window
	}

	shares := MuscleBalance(logs, WindowMonth, MetricSets, UnitKg, now)
	if len(shares) != 2 {
		t.Fatalf("groups = %d, want 2 (old log and warm-up excluded)", len(shares))
	}
	if shares[0].Muscle != "Pecho" || shares[0].Value != 2 {
		t.Errorf("shares[0] = %+v, want Pecho with 2 sets", shares[0])
	}
	if shares[1].Muscle != "Espalda" || shares[1].Value != 1 {
		t.Errorf("shares[1] = %+v, want Espalda with 1 set", shares[1])
	}

	byVolume := MuscleBalance(logs, WindowMonth, MetricVolume, UnitKg, now)
	if byVolume[0].Value != 1400 {
		t.Errorf("Pecho volume = %v, want 1400", byVolume[0].Value)
	}
	if byVolume[1].Value != 450 {
		t.Errorf("Espalda volume = %v, want 450", byVolume[1].Value)
	}

	year := MuscleBalance(logs, WindowYear, MetricSets, UnitKg, now)
	if len(year) != 3 {
		t.Errorf("year window groups = %d, want 3", len(year))
	}
}

func TestMuscleBalanceEmpty(t *testing.T) {
	got := MuscleBalance(nil, WindowWeek, MetricSets, UnitKg, time.Now())
	if len(got) != 0 {
		t.Errorf("MuscleBalance(nil) = %v, want empty", got)
	}
}

// TestConsistencyMatrixShortMonth verifies the 16x2 grid shape and that the
// day-31 slot of a 30-day month is an absent cell, not a zero-count one.
func TestConsistencyMatrixShortMonth(t *testing.T) {
	months, maxCount := ConsistencyMatrix(nil, []string{"2026-04"}, UnitKg) // April: 30 days
	if len(months) != 1 {
		t.Fatalf("months = %d, want 1", len(months))
	}
	rows := months[0].Rows
	if len(rows) != 16 {
		t.Fatalf("rows = %d, want 16", len(rows))
	}
	if rows[15].CellA != nil {
		t.Error("row 16 column A should be absent (column A covers days 1-15)")
	}
	if rows[15].CellB != nil {
		t.Error("day 31 cell should be absent in a 30-day month, not zero-count")
	}
	if rows[14].CellB == nil || rows[14].CellB.Day != 30 {
		t.Errorf("day 30 cell = %+v, want present", rows[14].CellB)
	}
	if rows[14].CellB.Count != 0 {
		t.Errorf("empty day count = %d, want 0", rows[14].CellB.Count)
	}
	if maxCount != 1 {
		t.Errorf("maxCount = %d, want floor of 1 for empty data", maxCount)
	}
}

// TestConsistencyMatrixCounts verifies per-day aggregation, warm-up
// exclusion, chronological month ordering, and the global max.
func TestConsistencyMatrixCounts(t *testing.T) {
	warm := logOn("2026-02-03", 40, 10, "pecho")
	warm.IsWarmup = true
	logs := []LoggedSet{
		logOn("2026-02-03", 100, 10, "pecho"),
		logOn("2026-02-03", 100, 8, "pecho"),
		logOn("2026-02-20", 60, 10, "espalda"),
		warm,
		logOn("2026-01-05", 80, 5, "piernas"),
	}

	months, maxCount := ConsistencyMatrix(logs, []string{"2026-02", "2026-01"}, UnitKg)
	if months[0].Month != "2026-01" || months[1].Month != "2026-02" {
		t.Errorf("month order = [%s, %s], want chronological", months[0].Month, months[1].Month)
	}

	feb := months[1]
	day3 := feb.Rows[2].CellA
	if day3.Count != 2 {
		t.Errorf("feb 3 count = %d, want 2 (warm-up excluded)", day3.Count)
	}
	if day3.Volume != 1800 {
		t.Errorf("feb 3 volume = %v, want 1800", day3.Volume)
	}
	day20 := feb.Rows[4].CellB // row index 4 holds days 5 and 20
	if day20.Count != 1 {
		t.Errorf("feb 20 count = %d, want 1", day20.Count)
	}
	if maxCount != 2 {
		t.Errorf("maxCount = %d, want 2", maxCount)
	}

	// February 2026 has 28 days: day 29+ cells absent.
	if feb.Rows[13].CellB != nil {
		t.Error("feb 29 cell should be absent")
	}
}

func TestConsistencyMatrixBadMonth(t *testing.T) {
	months, _ := ConsistencyMatrix(nil, []string{"not-a-month"}, UnitKg)
	if len(months) != 0 {
		t.Errorf("months = %d, want malformed input skipped", len(months))
	}
}

// TestTimerInvariant verifies elapsed time under the running and paused
// states and the no-op transitions.
func TestTimerInvariant(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	timer := TimerState{Status: TimerPaused, AccumulatedSeconds: 90}
	if got := timer.Elapsed(t0); got != 90 {
		t.Errorf("paused elapsed = %d, want exactly accumulated", got)
	}

	running := timer.Start(t0)
	if running.Status != TimerRunning || running.StartTime == nil {
		t.Fatal("Start did not produce a running timer with a start time")
	}
	if got := running.Elapsed(t0.Add(30 * time.Second)); got != 120 {
		t.Errorf("running elapsed = %d, want 120", got)
	}

	// Starting again is a no-op and must not reset the interval.
	if again := running.Start(t0.Add(10 * time.Second)); !again.StartTime.Equal(t0) {
		t.Error("Start on a running timer moved the start time")
	}

	paused := running.Pause(t0.Add(45 * time.Second))
	if paused.Status != TimerPaused || paused.StartTime != nil {
		t.Fatal("Pause did not clear the running state")
	}
	if paused.AccumulatedSeconds != 135 {
		t.Errorf("accumulated after pause = %d, want 135", paused.AccumulatedSeconds)
	}
	if same := paused.Pause(t0.Add(time.Hour)); same.AccumulatedSeconds != 135 {
		t.Error("Pause on a paused timer changed accumulated seconds")
	}
}
