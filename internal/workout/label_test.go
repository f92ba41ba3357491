package workout

import "testing"

// TestLabelWarmupAndDropSets covers the canonical sequence: a warm-up, two
// consecutive drop-sets, then a plain working set. Drop-sets share no visual
// number but still consume the persisted counter.
func TestLabelWarmupAndDropSets(t *testing.T) {
	entries := []SetEntry{
		{Weight: 40, Reps: 10, IsWarmup: true},
		{Weight: 80, Reps: 8, IsDropSet: true},
		{Weight: 70, Reps: 6, IsDropSet: true},
		{Weight: 60, Reps: 10},
	}

	got := Label(entries)
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}

	wantDisplay := []string{"W", "↳", "↳", "1"}
	wantOrder := []int{0, 1, 2, 3}
	for i := range got {
		if got[i].DisplayOrder != wantDisplay[i] {
			t.Errorf("entry %d displayOrder = %q, want %q", i, got[i].DisplayOrder, wantDisplay[i])
		}
		if got[i].SetOrder != wantOrder[i] {
			t.Errorf("entry %d setOrder = %d, want %d", i, got[i].SetOrder, wantOrder[i])
		}
	}
}

// TestLabelLateWarmupCoerced verifies that a warm-up flag on any entry past
// position 0 is ignored and the entry is numbered normally.
func TestLabelLateWarmupCoerced(t *testing.T) {
	entries := []SetEntry{
		{Weight: 60, Reps: 8},
		{Weight: 40, Reps: 12, IsWarmup: true},
	}

	got := Label(entries)
	if got[1].IsWarmup {
		t.Error("entry 1 kept isWarmup = true, want coerced to false")
	}
	if got[1].DisplayOrder != "2" {
		t.Errorf("entry 1 displayOrder = %q, want %q", got[1].DisplayOrder, "2")
	}
	if got[1].SetOrder != 2 {
		t.Errorf("entry 1 setOrder = %d, want 2", got[1].SetOrder)
	}
}

// TestLabelDropSetAtPositionZero verifies a drop-set flag on the first entry
// does not produce a drop marker — there is no prior set to drop from.
func TestLabelDropSetAtPositionZero(t *testing.T) {
	got := Label([]SetEntry{{Weight: 50, Reps: 10, IsDropSet: true}})
	if got[0].DisplayOrder != "1" {
		t.Errorf("displayOrder = %q, want %q", got[0].DisplayOrder, "1")
	}
	if got[0].SetOrder != 1 {
		t.Errorf("setOrder = %d, want 1", got[0].SetOrder)
	}
}

// TestLabelNumbering verifies visual numbers skip drop-sets while setOrder
// keeps counting through them.
func TestLabelNumbering(t *testing.T) {
	entries := []SetEntry{
		{Weight: 60, Reps: 8},
		{Weight: 50, Reps: 8, IsDropSet: true},
		{Weight: 60, Reps: 8},
		{Weight: 60, Reps: 8},
	}

	got := Label(entries)
	wantDisplay := []string{"1", "↳", "2", "3"}
	wantOrder := []int{1, 2, 3, 4}
	for i := range got {
		if got[i].DisplayOrder != wantDisplay[i] {
			t.Errorf("entry %d displayOrder = %q, want %q", i, got[i].DisplayOrder, wantDisplay[i])
		}
		if got[i].SetOrder != wantOrder[i] {
			t.Errorf("entry %d setOrder = %d, want %d", i, got[i].SetOrder, wantOrder[i])
		}
	}
}

func TestLabelCalculated1RM(t *testing.T) {
	got := Label([]SetEntry{{Weight: 90, Reps: 10}, {}})
	if want := 90 * (1 + 10.0/30); got[0].Calculated1RM != want {
		t.Errorf("calculated1RM = %v, want %v", got[0].Calculated1RM, want)
	}
	// Missing weight and reps degrade to 0, not a failure.
	if got[1].Calculated1RM != 0 {
		t.Errorf("empty entry calculated1RM = %v, want 0", got[1].Calculated1RM)
	}
}

func TestLabelEmpty(t *testing.T) {
	if got := Label(nil); len(got) != 0 {
		t.Errorf("Label(nil) = %v, want empty", got)
	}
}
