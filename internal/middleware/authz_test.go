//go:build unit

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"tabwiki/internal/auth"
	"tabwiki/internal/logger"
	"tabwiki/internal/session"
	"testing"
)

// mockSessionManager records what handlers store in the session.
type mockSessionManager struct {
	values map[string]interface{}
}

var _ session.Manager = (*mockSessionManager)(nil)

func newMockSessionManager() *mockSessionManager {
	return &mockSessionManager{values: make(map[string]interface{})}
}

func (m *mockSessionManager) LoadAndSave(next http.Handler) http.Handler { return next }

func (m *mockSessionManager) Put(ctx context.Context, key string, val interface{}) {
	m.values[key] = val
}

func (m *mockSessionManager) GetString(ctx context.Context, key string) string {
	s, _ := m.values[key].(string)
	return s
}

func (m *mockSessionManager) PopString(ctx context.Context, key string) string {
	s := m.GetString(ctx, key)
	delete(m.values, key)
	return s
}

type staticMode bool

func (m staticMode) EditMode() bool { return bool(m) }

func TestEditGate(t *testing.T) {
	enforcer, err := auth.NewEnforcer()
	if err != nil {
		t.Fatalf("failed to create enforcer: %v", err)
	}
	auth.SeedDefaultPolicies(enforcer, logger.Nop())

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name      string
		editMode  bool
		method    string
		path      string
		wantCode  int
		wantLoc   string
		wantFlash string
	}{
		{"reader views", false, http.MethodGet, "/view/Founding", http.StatusTeapot, "", ""},
		{"reader toggles mode", false, http.MethodPost, "/mode", http.StatusTeapot, "", ""},
		{"reader opens editor", false, http.MethodGet, "/edit/Founding", http.StatusSeeOther, "/view/Founding", EditNotice},
		{"reader posts to editor", false, http.MethodPost, "/edit/Founding/tabs", http.StatusSeeOther, "/view/Founding", EditNotice},
		{"reader posts a page", false, http.MethodPost, "/api/pages/Founding", http.StatusForbidden, "", ""},
		{"editor opens editor", true, http.MethodGet, "/edit/Founding", http.StatusTeapot, "", ""},
		{"editor posts to editor", true, http.MethodPost, "/edit/Founding/sections/s-1/move", http.StatusTeapot, "", ""},
		{"editor posts a page", true, http.MethodPost, "/api/pages/Founding", http.StatusTeapot, "", ""},
		{"editor views", true, http.MethodGet, "/view/Founding", http.StatusTeapot, "", ""},
		{"unknown route", true, http.MethodDelete, "/view/Founding", http.StatusForbidden, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := newMockSessionManager()
			h := EditGate(enforcer, staticMode(tt.editMode), sm)(ok)

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			if rr.Code != tt.wantCode {
				t.Errorf("expected status %d, got %d", tt.wantCode, rr.Code)
			}
			if loc := rr.Header().Get("Location"); loc != tt.wantLoc {
				t.Errorf("expected location %q, got %q", tt.wantLoc, loc)
			}
			if flash := sm.GetString(context.Background(), "flash"); flash != tt.wantFlash {
				t.Errorf("expected flash %q, got %q", tt.wantFlash, flash)
			}
		})
	}
}

func TestEditedPage(t *testing.T) {
	tests := map[string]string{
		"/edit/Founding":              "Founding",
		"/edit/Founding/session":      "Founding",
		"/edit/Founding/tabs/t-1/new": "Founding",
		"/edit/":                      "",
		"/view/Founding":              "",
	}
	for path, want := range tests {
		got, ok := editedPage(path)
		if got != want || ok != (want != "") {
			t.Errorf("editedPage(%q) = %q, %v; want %q", path, got, ok, want)
		}
	}
}
