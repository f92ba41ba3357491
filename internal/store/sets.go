package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/claude/liftlog/internal/workout"
)

// BatchLimit is the maximum rows written per statement. Larger batches are
// split into chunks that commit independently: a failure partway leaves the
// earlier chunks in place, which callers report rather than roll back.
const BatchLimit = 500

const setColumns = `id, user_id, muscle_group, exercise, weight, unit, reps, rpe,
	is_warmup, is_drop_set, set_order, estimated_1rm, date_string, created_at`

// SetFilter holds the equality filters a query can combine. Zero values mean
// "no filter"; IsWarmup is a pointer so false can be filtered explicitly.
type SetFilter struct {
	UserID      int
	MuscleGroup string
	Exercise    string
	IsWarmup    *bool
	Date        string // exact dateString match
	DateFrom    string // inclusive range bounds
	DateTo      string
}

// Page is one page of query results plus the cursor for the next page.
// NextCursor is empty when the page was not full.
type Page struct {
	Sets       []workout.LoggedSet
	NextCursor string
}

// cursor is the keyset position after the last returned row, ordered by
// (date_string, id) descending.
type cursor struct {
	Date string `json:"d"`
	ID   string `json:"id"`
}

// EncodeCursor builds an opaque pagination token pointing just past the
// given row.
func EncodeCursor(dateString, id string) string {
	raw, _ := json.Marshal(cursor{Date: dateString, ID: id})
	return base64.RawURLEncoding.EncodeToString(raw)
}

func decodeCursor(s string) (cursor, error) {
	var c cursor
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return c, fmt.Errorf("decoding cursor: %w", err)
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("parsing cursor: %w", err)
	}
	return c, nil
}

// QuerySets returns logged sets matching the filter, most recent date first,
// optionally resuming from a cursor and capped at limit (0 = no cap).
func (db *DB) QuerySets(ctx context.Context, f SetFilter, pageCursor string, limit int) (*Page, error) {
	where := []string{"user_id = $1"}
	args := []any{f.UserID}

	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if f.MuscleGroup != "" {
		add("muscle_group = $%d", f.MuscleGroup)
	}
	if f.Exercise != "" {
		add("exercise = $%d", f.Exercise)
	}
	if f.IsWarmup != nil {
		add("is_warmup = $%d", *f.IsWarmup)
	}
	if f.Date != "" {
		add("date_string = $%d", f.Date)
	}
	if f.DateFrom != "" {
		add("date_string >= $%d", f.DateFrom)
	}
	if f.DateTo != "" {
		add("date_string <= $%d", f.DateTo)
	}

	if pageCursor != "" {
		c, err := decodeCursor(pageCursor)
		if err != nil {
			return nil, err
		}
		args = append(args, c.Date, c.ID)
		where = append(where, fmt.Sprintf("(date_string, id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM workout_logs WHERE %s ORDER BY date_string DESC, id DESC`,
		setColumns, strings.Join(where, " AND "))
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying workout logs: %w", err)
	}
	defer rows.Close()

	var result []workout.LoggedSet
	for rows.Next() {
		var s workout.LoggedSet
		if err := rows.Scan(&s.ID, &s.UserID, &s.MuscleGroup, &s.Exercise, &s.Weight, &s.Unit,
			&s.Reps, &s.RPE, &s.IsWarmup, &s.IsDropSet, &s.SetOrder, &s.Estimated1RM,
			&s.DateString, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning workout log: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	page := &Page{Sets: result}
	if limit > 0 && len(result) == limit {
		last := result[len(result)-1]
		page.NextCursor = EncodeCursor(last.DateString, last.ID)
	}
	return page, nil
}

// SaveBatch inserts logged sets in chunks of at most BatchLimit rows each.
// Returns the number of rows committed; on error that count covers the
// chunks that made it in before the failure.
func (db *DB) SaveBatch(ctx context.Context, sets []workout.LoggedSet) (int, error) {
	written := 0
	for start := 0; start < len(sets); start += BatchLimit {
		end := start + BatchLimit
		if end > len(sets) {
			end = len(sets)
		}
		if err := db.insertChunk(ctx, sets[start:end]); err != nil {
			return written, fmt.Errorf("writing chunk at row %d: %w", start, err)
		}
		written += end - start
	}
	return written, nil
}

func (db *DB) insertChunk(ctx context.Context, sets []workout.LoggedSet) error {
	const cols = 14
	query := `INSERT INTO workout_logs (` + setColumns + `) VALUES `
	args := make([]any, 0, len(sets)*cols)
	valueStrings := make([]string, 0, len(sets))

	for i, s := range sets {
		base := i * cols
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7,
			base+8, base+9, base+10, base+11, base+12, base+13, base+14,
		))
		args = append(args, s.ID, s.UserID, s.MuscleGroup, s.Exercise, s.Weight, s.Unit,
			s.Reps, s.RPE, s.IsWarmup, s.IsDropSet, s.SetOrder, s.Estimated1RM,
			s.DateString, s.CreatedAt)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	if _, err := db.Pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting workout logs: %w", err)
	}
	return nil
}

// DeleteSet removes one record by id, scoped to its owner.
func (db *DB) DeleteSet(ctx context.Context, id string, userID int) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workout_logs WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting workout log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllForUser wipes a user's entire log in chunks of BatchLimit rows,
// committing each chunk independently. Returns rows deleted so far even on
// error.
func (db *DB) DeleteAllForUser(ctx context.Context, userID int) (int, error) {
	deleted := 0
	for {
		tag, err := db.Pool.Exec(ctx, `
			DELETE FROM workout_logs WHERE id IN (
				SELECT id FROM workout_logs WHERE user_id = $1 LIMIT $2
			)`, userID, BatchLimit)
		if err != nil {
			return deleted, fmt.Errorf("deleting chunk: %w", err)
		}
		n := int(tag.RowsAffected())
		deleted += n
		if n < BatchLimit {
			return deleted, nil
		}
	}
}
