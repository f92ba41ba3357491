package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/claude/liftlog/internal/store"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name, header, want string
	}{
		{"bearer", "Bearer abc123", "abc123"},
		{"missing", "", ""},
		{"wrong scheme", "Basic abc123", ""},
		{"bare token", "abc123", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if got := bearerToken(r); got != tt.want {
				t.Errorf("bearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSessionAuthMissingToken(t *testing.T) {
	handler := SessionAuth(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run without a token")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestUserContext(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := userFrom(r); ok {
		t.Error("fresh request should carry no user")
	}

	u := store.User{ID: 3, Email: "a@b.c"}
	r = r.WithContext(withUser(r.Context(), u))
	got, ok := userFrom(r)
	if !ok || got.ID != 3 || got.Email != "a@b.c" {
		t.Errorf("userFrom() = %+v, %v", got, ok)
	}
}

func TestMustUserUnauthenticated(t *testing.T) {
	rec := httptest.NewRecorder()
	if _, ok := mustUser(rec, httptest.NewRequest(http.MethodGet, "/", nil)); ok {
		t.Fatal("mustUser should fail without a context user")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight must short-circuit before the handler")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/workouts", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS origin header")
	}
}
