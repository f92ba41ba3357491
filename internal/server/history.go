package server

import (
	"context"
	"net/http"

	"github.com/claude/liftlog/internal/store"
	"github.com/claude/liftlog/internal/workout"
)

// History paging targets whole day-sessions, not raw rows: keep fetching
// row batches until enough distinct days are in hand, then cut on a session
// boundary so no day is ever split across pages.
const (
	historyDaysTarget = 5
	historyBatchSize  = 100
	historyMaxFetches = 3
)

// setPager is the slice of the store the history loop needs. *store.DB
// satisfies it; tests substitute a canned pager.
type setPager interface {
	QuerySets(ctx context.Context, f store.SetFilter, cursor string, limit int) (*store.Page, error)
}

var _ setPager = (*store.DB)(nil)

// historyPage is one page of session history.
type historyPage struct {
	Sessions   []workout.Session `json:"sessions"`
	NextCursor string            `json:"nextCursor,omitempty"`
}

// fetchHistory pages through the user's log and returns up to
// historyDaysTarget complete day-sessions. The next cursor points at the last
// row of the last included session, so the following page resumes exactly
// after it. A bounded number of batches caps the work a sparse filter can
// cause on one request.
func fetchHistory(ctx context.Context, pager setPager, f store.SetFilter, cursor string) (*historyPage, error) {
	var all []workout.LoggedSet
	hasMore := true

	for fetch := 0; fetch < historyMaxFetches && hasMore; fetch++ {
		page, err := pager.QuerySets(ctx, f, cursor, historyBatchSize)
		if err != nil {
			return nil, err
		}
		if len(page.Sets) == 0 {
			hasMore = false
			break
		}

		all = append(all, page.Sets...)
		last := page.Sets[len(page.Sets)-1]
		cursor = store.EncodeCursor(last.DateString, last.ID)

		uniqueDays := make(map[string]bool)
		for _, s := range all {
			uniqueDays[s.DateString] = true
		}
		// Strictly more than the target guarantees the target-th day is
		// complete — the extra day proves the boundary was crossed.
		if len(uniqueDays) > historyDaysTarget {
			break
		}
		if len(page.Sets) < historyBatchSize {
			hasMore = false
		}
	}

	sessions := workout.Aggregate(all)
	result := &historyPage{Sessions: sessions}

	if len(sessions) > historyDaysTarget {
		result.Sessions = sessions[:historyDaysTarget]
		lastDate := result.Sessions[historyDaysTarget-1].Date
		// The rows arrive date-descending, so the last row of the cut-off
		// session is the last match for its date.
		for i := len(all) - 1; i >= 0; i-- {
			if all[i].DateString == lastDate {
				result.NextCursor = store.EncodeCursor(all[i].DateString, all[i].ID)
				break
			}
		}
	} else if hasMore && len(all) > 0 {
		last := all[len(all)-1]
		result.NextCursor = store.EncodeCursor(last.DateString, last.ID)
	}

	if result.Sessions == nil {
		result.Sessions = []workout.Session{}
	}
	return result, nil
}

// filterValue normalizes a dropdown filter: "all" means no filter.
func filterValue(v string) string {
	if v == "all" {
		return ""
	}
	return lower(v)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	f := store.SetFilter{
		UserID:      user.ID,
		Date:        q.Get("date"),
		MuscleGroup: filterValue(q.Get("muscle")),
		Exercise:    filterValue(q.Get("exercise")),
	}

	page, err := fetchHistory(r.Context(), s.db, f, q.Get("cursor"))
	if err != nil {
		s.storeError(w, "history", err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
