package workout

import "strconv"

// SetEntry is one in-progress set as entered by the user, before saving.
// Insertion order is fixed by the caller.
type SetEntry struct {
	Weight    float64  `json:"weight"`
	Reps      int      `json:"reps"`
	RPE       *float64 `json:"rpe,omitempty"`
	IsWarmup  bool     `json:"isWarmup"`
	IsDropSet bool     `json:"isDropSet"`
}

// LabeledSet is a SetEntry annotated with its display label, persisted order,
// and estimated 1RM. IsWarmup is the coerced value (see Label).
type LabeledSet struct {
	SetEntry
	SetOrder      int     `json:"setOrder"`
	DisplayOrder  string  `json:"displayOrder"`
	Calculated1RM float64 `json:"calculated1RM"`
}

// Label assigns display and persisted ordering to a sequence of entries.
// Rules:
//   - Only the entry at position 0 may be a warm-up; a warm-up flag on any
//     later entry is coerced to false.
//   - A warm-up gets displayOrder "W" and setOrder 0, and consumes neither
//     counter.
//   - A drop-set past position 0 gets displayOrder "↳". It consumes the
//     persisted setOrder counter (so replay order stays monotonic) but not
//     the visual numbering counter.
//   - Every other entry takes the next integer from both 1-based counters.
//
// This is purely a labeling pass; nothing is persisted.
func Label(entries []SetEntry) []LabeledSet {
	out := make([]LabeledSet, 0, len(entries))
	visual := 1
	persisted := 1

	for i, e := range entries {
		warmup := i == 0 && e.IsWarmup

		ls := LabeledSet{SetEntry: e}
		ls.IsWarmup = warmup

		if warmup {
			ls.DisplayOrder = "W"
			ls.SetOrder = 0
		} else {
			ls.SetOrder = persisted
			persisted++
			if e.IsDropSet && i > 0 {
				ls.DisplayOrder = "↳"
			} else {
				ls.DisplayOrder = strconv.Itoa(visual)
				visual++
			}
		}

		ls.Calculated1RM = Estimate1RM(e.Weight, e.Reps)
		out = append(out, ls)
	}
	return out
}
