//go:build unit

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"tabwiki/internal/logger"
	"tabwiki/internal/view"
	"tabwiki/web"
	"testing"
)

func TestErrorMiddleware(t *testing.T) {
	v, err := view.New(web.TemplateFS)
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}
	mw := Error(logger.Nop(), v)

	tests := []struct {
		name     string
		handler  AppHandler
		wantCode int
		wantText string
	}{
		{
			name: "success passes through",
			handler: func(w http.ResponseWriter, r *http.Request) *AppError {
				w.WriteHeader(http.StatusNoContent)
				return nil
			},
			wantCode: http.StatusNoContent,
		},
		{
			name: "not found renders the message",
			handler: func(w http.ResponseWriter, r *http.Request) *AppError {
				return &AppError{Error: errors.New("missing"), Message: "Page not found", Code: http.StatusNotFound}
			},
			wantCode: http.StatusNotFound,
			wantText: "Page not found",
		},
		{
			name: "missing code defaults to 500",
			handler: func(w http.ResponseWriter, r *http.Request) *AppError {
				return &AppError{Error: errors.New("boom")}
			},
			wantCode: http.StatusInternalServerError,
			wantText: "Internal Server Error",
		},
		{
			name: "panic is recovered",
			handler: func(w http.ResponseWriter, r *http.Request) *AppError {
				panic("unexpected")
			},
			wantCode: http.StatusInternalServerError,
			wantText: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			mw(tt.handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/view/Founding", nil))
			if rr.Code != tt.wantCode {
				t.Errorf("expected status %d, got %d", tt.wantCode, rr.Code)
			}
			if tt.wantText != "" && !strings.Contains(rr.Body.String(), tt.wantText) {
				t.Errorf("expected body to contain %q", tt.wantText)
			}
		})
	}
}
