package importer

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// TestSendCSV verifies the client hits the right import endpoint with the
// session token and raw CSV body, and returns the committed count.
func TestSendCSV(t *testing.T) {
	body := []byte("Date;Exercise Name;Set Order;Weight (kg);Reps\n2026-03-05;Squat;1;100;5\n")

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/import/strong" {
			t.Errorf("path = %q, want /api/v1/import/strong", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q, want Bearer tok-123", got)
		}
		if got := r.Header.Get("Content-Type"); got != "text/csv" {
			t.Errorf("Content-Type = %q, want text/csv", got)
		}
		sent, _ := io.ReadAll(r.Body)
		if string(sent) != string(body) {
			t.Errorf("body = %q, want the raw CSV", sent)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"parsed":1,"committed":1}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "tok-123")
	committed, err := client.SendCSV(FormatStrong, body)
	if err != nil {
		t.Fatalf("SendCSV: %v", err)
	}
	if committed != 1 {
		t.Errorf("committed = %d, want 1", committed)
	}
}

// TestSendCSVClientErrorNoRetry verifies a 4xx response fails immediately
// instead of burning the retry budget on a request that cannot improve.
func TestSendCSVClientErrorNoRetry(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":"no importable rows found"}`, http.StatusBadRequest)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "tok")
	if _, err := client.SendCSV(FormatBackup, []byte("muscleGroup,exercise\n")); err == nil {
		t.Fatal("expected error for 400 response")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server called %d times, want 1", got)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"strong header", "Date;Exercise Name;Set Order\n2026-03-05;Squat;1\n", FormatStrong},
		{"backup header", "muscleGroup,exercise,weight\nchest,bench press,100\n", FormatBackup},
		{"single line", "Date;Workout Name", FormatStrong},
		{"empty", "", FormatBackup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat([]byte(tt.data)); got != tt.want {
				t.Errorf("DetectFormat = %q, want %q", got, tt.want)
			}
		})
	}
}
