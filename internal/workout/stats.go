package workout

import "sort"

// Stats summarizes one exercise across its full history. PR values carry the
// set in its original stored unit; comparison happens in kg internally.
type Stats struct {
	LastSession []LoggedSet `json:"lastSession"`
	PR1RM       *LoggedSet  `json:"pr1rm"`
	PRWeight    *LoggedSet  `json:"prWeight"`
}

// ComputeStats derives last-session and PR summaries from the entire history
// of one exercise. Empty input is the valid "no data yet" state and returns
// empty fields, not an error.
//
// PR comparison uses strict >, so on a tie the first set encountered in input
// order wins. With store queries ordered most-recent-first that means the most
// recent tied set is kept.
func ComputeStats(logs []LoggedSet) Stats {
	st := Stats{LastSession: []LoggedSet{}}
	if len(logs) == 0 {
		return st
	}

	st.LastSession = LastSession(logs)

	var best1RM, bestWeight float64
	for _, l := range logs {
		if l.IsWarmup {
			continue
		}
		kg := l.WeightKg()
		rm := Estimate1RM(kg, l.Reps)

		if rm > best1RM {
			best1RM = rm
			pick := l
			st.PR1RM = &pick
		}
		if kg > bestWeight {
			bestWeight = kg
			pick := l
			st.PRWeight = &pick
		}
	}
	return st
}

// LastSession returns every set sharing the maximum date present in the
// input, sorted for display by (CreatedAt, SetOrder). The SetOrder tie-break
// matters when a whole batch saved with the same timestamp.
func LastSession(logs []LoggedSet) []LoggedSet {
	if len(logs) == 0 {
		return []LoggedSet{}
	}

	latest := ""
	for _, l := range logs {
		if l.DateString > latest {
			latest = l.DateString
		}
	}

	last := make([]LoggedSet, 0)
	for _, l := range logs {
		if l.DateString == latest {
			last = append(last, l)
		}
	}

	sort.SliceStable(last, func(i, j int) bool {
		a, b := last[i], last[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.SetOrder < b.SetOrder
	})
	return last
}
