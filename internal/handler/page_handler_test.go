//go:build unit

package handler

import (
	"net/http/httptest"
	"testing"
)

func TestReturnPath(t *testing.T) {
	tests := []struct {
		name    string
		referer string
		want    string
	}{
		{"no referer", "", "/"},
		{"same host", "http://example.com/view/Founding?tab=t-1", "/view/Founding?tab=t-1"},
		{"other host", "http://evil.test/phish", "/"},
		{"relative", "/view/Colonies", "/view/Colonies"},
		{"protocol-relative path", "http://example.com//evil.test/x", "/"},
		{"backslash path", "http://example.com/\\evil.test/x", "/"},
		{"path without leading slash", "view/Colonies", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "http://example.com/mode", nil)
			if tt.referer != "" {
				r.Header.Set("Referer", tt.referer)
			}
			if got := returnPath(r); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
