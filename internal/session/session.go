// Package session carries one-time notices between a form post and the
// page it redirects to.
package session

import (
	"context"
	"net/http"
)

// Manager is the part of scs.SessionManager the handlers rely on.
type Manager interface {
	LoadAndSave(next http.Handler) http.Handler
	Put(ctx context.Context, key string, val interface{})
	PopString(ctx context.Context, key string) string
}

const flashKey = "flash"

// PutFlash stores a notice shown on the next rendered page. A later notice
// replaces an unread one.
func PutFlash(ctx context.Context, sm Manager, msg string) {
	if msg == "" {
		return
	}
	sm.Put(ctx, flashKey, msg)
}

// PopFlash returns and clears the pending notice.
func PopFlash(ctx context.Context, sm Manager) string {
	return sm.PopString(ctx, flashKey)
}
