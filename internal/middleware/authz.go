package middleware

import (
	"net/http"
	"strings"
	"tabwiki/internal/auth"
	"tabwiki/internal/session"

	"github.com/casbin/casbin/v2"
)

// EditModeSource reports whether editing is currently enabled.
type EditModeSource interface {
	EditMode() bool
}

// EditNotice is shown when an editor route is used with edit mode off.
const EditNotice = "Enable editing first (top-right button)."

// EditGate creates a middleware that authorizes every request with Casbin.
// The subject is derived from the global edit-mode flag. Denied browser
// requests to the editor are redirected to the page view with a notice.
func EditGate(e casbin.IEnforcer, mode EditModeSource, sm session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject := auth.SubjectReader
			if mode.EditMode() {
				subject = auth.SubjectEditor
			}

			allowed, err := e.Enforce(subject, r.URL.Path, r.Method)
			if err != nil {
				http.Error(w, "Authorization error", http.StatusInternalServerError)
				return
			}
			if allowed {
				next.ServeHTTP(w, r)
				return
			}

			if pageID, ok := editedPage(r.URL.Path); ok {
				session.PutFlash(r.Context(), sm, EditNotice)
				http.Redirect(w, r, "/view/"+pageID, http.StatusSeeOther)
				return
			}
			http.Error(w, "Forbidden", http.StatusForbidden)
		})
	}
}

// editedPage extracts the page id from an /edit/{pageID}/... path.
func editedPage(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, "/edit/")
	if !ok {
		return "", false
	}
	pageID, _, _ := strings.Cut(rest, "/")
	return pageID, pageID != ""
}
