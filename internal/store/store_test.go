package store

import "testing"

// TestCursorRoundTrip verifies the opaque pagination token decodes back to
// the position it encoded.
func TestCursorRoundTrip(t *testing.T) {
	token := EncodeCursor("2026-03-05", "0c9d6f1e-aaaa-bbbb-cccc-000000000001")
	c, err := decodeCursor(token)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if c.Date != "2026-03-05" {
		t.Errorf("date = %q, want 2026-03-05", c.Date)
	}
	if c.ID != "0c9d6f1e-aaaa-bbbb-cccc-000000000001" {
		t.Errorf("id = %q", c.ID)
	}
}

func TestCursorRejectsGarbage(t *testing.T) {
	if _, err := decodeCursor("not!!base64"); err == nil {
		t.Error("decodeCursor accepted malformed input")
	}
	if _, err := decodeCursor("bm90LWpzb24"); err == nil { // valid base64, invalid JSON
		t.Error("decodeCursor accepted non-JSON payload")
	}
}

// TestFilterPatchWhitelist verifies non-whitelisted fields are silently
// dropped and label fields are lower-cased on the way in.
func TestFilterPatchWhitelist(t *testing.T) {
	patch := filterPatch(map[string]any{
		"weight":      82.5,
		"reps":        float64(6),
		"muscleGroup": "Pecho",
		"exercise":    "Press Banca",
		"userId":      99,          // never patchable
		"dateString":  "2030-01-01", // never patchable
		"estimated1RM": 500.0,       // derived, never patched directly
	})

	if _, ok := patch["user_id"]; ok {
		t.Error("userId leaked through the whitelist")
	}
	if _, ok := patch["date_string"]; ok {
		t.Error("dateString leaked through the whitelist")
	}
	if _, ok := patch["estimated_1rm"]; ok {
		t.Error("estimated1RM leaked through the whitelist")
	}
	if got := patch["muscle_group"]; got != "pecho" {
		t.Errorf("muscle_group = %v, want lower-cased pecho", got)
	}
	if got := patch["exercise"]; got != "press banca" {
		t.Errorf("exercise = %v, want lower-cased press banca", got)
	}
	if got := patch["weight"]; got != 82.5 {
		t.Errorf("weight = %v, want 82.5", got)
	}
}

func TestFilterPatchEmpty(t *testing.T) {
	if got := filterPatch(map[string]any{"bogus": 1}); len(got) != 0 {
		t.Errorf("patch = %v, want empty", got)
	}
}
