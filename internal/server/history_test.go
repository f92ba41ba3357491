package server

import (
	"context"
	"fmt"
	"testing"

	"github.com/claude/liftlog/internal/store"
	"github.com/claude/liftlog/internal/workout"
)

// fakePager serves canned rows in date-descending order and honors the
// cursor and limit the same way the real store does.
type fakePager struct {
	rows  []workout.LoggedSet
	calls int
}

func (p *fakePager) QuerySets(_ context.Context, _ store.SetFilter, cursor string, limit int) (*store.Page, error) {
	p.calls++
	start := 0
	if cursor != "" {
		for i, r := range p.rows {
			if store.EncodeCursor(r.DateString, r.ID) == cursor {
				start = i + 1
				break
			}
		}
	}
	end := len(p.rows)
	if limit > 0 && start+limit < end {
		end = start + limit
	}
	return &store.Page{Sets: p.rows[start:end]}, nil
}

// dayRows builds n sets per day for the given dates, newest first.
func dayRows(setsPerDay int, dates ...string) []workout.LoggedSet {
	var rows []workout.LoggedSet
	for _, d := range dates {
		for i := setsPerDay; i > 0; i-- {
			rows = append(rows, workout.LoggedSet{
				ID:          fmt.Sprintf("%s-%02d", d, i),
				MuscleGroup: "chest",
				Exercise:    "bench press",
				Weight:      100,
				Unit:        workout.UnitKg,
				Reps:        5,
				SetOrder:    setsPerDay - i,
				DateString:  d,
			})
		}
	}
	return rows
}

func TestFetchHistoryEmpty(t *testing.T) {
	pager := &fakePager{}
	page, err := fetchHistory(context.Background(), pager, store.SetFilter{UserID: 1}, "")
	if err != nil {
		t.Fatalf("fetchHistory: %v", err)
	}
	if page.Sessions == nil {
		t.Error("Sessions should be an empty slice, not nil")
	}
	if len(page.Sessions) != 0 || page.NextCursor != "" {
		t.Errorf("got %d sessions, cursor %q; want none", len(page.Sessions), page.NextCursor)
	}
}

func TestFetchHistorySinglePage(t *testing.T) {
	pager := &fakePager{rows: dayRows(3, "2026-03-05", "2026-03-04", "2026-03-03")}
	page, err := fetchHistory(context.Background(), pager, store.SetFilter{UserID: 1}, "")
	if err != nil {
		t.Fatalf("fetchHistory: %v", err)
	}
	if len(page.Sessions) != 3 {
		t.Fatalf("got %d sessions, want 3", len(page.Sessions))
	}
	if page.Sessions[0].Date != "2026-03-05" {
		t.Errorf("sessions not newest first: got %q", page.Sessions[0].Date)
	}
	if page.NextCursor != "" {
		t.Errorf("everything fit on one page, cursor should be empty, got %q", page.NextCursor)
	}
}

func TestFetchHistoryCutsOnSessionBoundary(t *testing.T) {
	// Seven days of data: page one must stop after five whole days and point
	// its cursor at the last row of day five.
	dates := []string{
		"2026-03-07", "2026-03-06", "2026-03-05", "2026-03-04",
		"2026-03-03", "2026-03-02", "2026-03-01",
	}
	pager := &fakePager{rows: dayRows(4, dates...)}

	page, err := fetchHistory(context.Background(), pager, store.SetFilter{UserID: 1}, "")
	if err != nil {
		t.Fatalf("fetchHistory: %v", err)
	}
	if len(page.Sessions) != historyDaysTarget {
		t.Fatalf("got %d sessions, want %d", len(page.Sessions), historyDaysTarget)
	}
	if got := page.Sessions[len(page.Sessions)-1].Date; got != "2026-03-03" {
		t.Errorf("last session on page = %q, want 2026-03-03", got)
	}
	if page.NextCursor == "" {
		t.Fatal("expected a next cursor with days remaining")
	}

	// Resume from the cursor: the rest of the history, no splits, no repeats.
	page2, err := fetchHistory(context.Background(), pager, store.SetFilter{UserID: 1}, page.NextCursor)
	if err != nil {
		t.Fatalf("fetchHistory page 2: %v", err)
	}
	if len(page2.Sessions) != 2 {
		t.Fatalf("page 2: got %d sessions, want 2", len(page2.Sessions))
	}
	if page2.Sessions[0].Date != "2026-03-02" || page2.Sessions[1].Date != "2026-03-01" {
		t.Errorf("page 2 dates = %q, %q", page2.Sessions[0].Date, page2.Sessions[1].Date)
	}
	for _, sess := range page2.Sessions {
		if sess.TotalSets != 4 {
			t.Errorf("session %s split across pages: %d sets, want 4", sess.Date, sess.TotalSets)
		}
	}
}

func TestFetchHistoryBoundedFetches(t *testing.T) {
	// One giant day that never yields enough distinct dates: the loop must
	// stop at the fetch cap instead of draining the table.
	var rows []workout.LoggedSet
	for i := 0; i < historyBatchSize*(historyMaxFetches+2); i++ {
		rows = append(rows, workout.LoggedSet{
			ID:         fmt.Sprintf("row-%05d", 99999-i),
			Exercise:   "squat",
			Weight:     60,
			Unit:       workout.UnitKg,
			Reps:       5,
			DateString: "2026-03-01",
		})
	}
	pager := &fakePager{rows: rows}

	page, err := fetchHistory(context.Background(), pager, store.SetFilter{UserID: 1}, "")
	if err != nil {
		t.Fatalf("fetchHistory: %v", err)
	}
	if pager.calls != historyMaxFetches {
		t.Errorf("made %d fetches, want %d", pager.calls, historyMaxFetches)
	}
	if len(page.Sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(page.Sessions))
	}
	if page.NextCursor == "" {
		t.Error("expected a cursor so the rest of the day can be fetched")
	}
}

func TestFilterValue(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"all", ""},
		{"", ""},
		{"Chest", "chest"},
		{"bench press", "bench press"},
	}
	for _, tt := range tests {
		if got := filterValue(tt.in); got != tt.want {
			t.Errorf("filterValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
