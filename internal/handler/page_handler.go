package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"tabwiki/internal/data"
	"tabwiki/internal/logger"
	"tabwiki/internal/middleware"
	"tabwiki/internal/service"
	"tabwiki/internal/session"
	"tabwiki/internal/view"

	"github.com/go-chi/chi/v5"
)

// ModeWriteNotice is flashed when the edit-mode flag could not be stored.
const ModeWriteNotice = "Edit mode could not be saved and applies until the server restarts."

// PageHandler serves the read-only wiki: page views, the navigation and the
// edit-mode toggle.
type PageHandler struct {
	app  *service.App
	view *view.View
	sm   session.Manager
	log  logger.Logger
}

// NewPageHandler creates a new PageHandler with the given dependencies.
func NewPageHandler(app *service.App, v *view.View, sm session.Manager, log logger.Logger) *PageHandler {
	return &PageHandler{
		app:  app,
		view: v,
		sm:   sm,
		log:  log,
	}
}

// layoutData returns the values every page shares: navigation, the
// edit-mode flag and any pending notice.
func layoutData(r *http.Request, app *service.App, sm session.Manager) map[string]interface{} {
	return map[string]interface{}{
		"Nav":      app.Navigation(),
		"EditMode": app.EditMode(),
		"Flash":    session.PopFlash(r.Context(), sm),
	}
}

// rootHandler redirects to the first page of the wiki.
func (h *PageHandler) rootHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id := h.app.FirstPageID()
	if id == "" {
		return &middleware.AppError{Error: data.ErrPageNotFound, Message: "The wiki has no pages yet", Code: http.StatusNotFound}
	}
	http.Redirect(w, r, "/view/"+url.PathEscape(id), http.StatusFound)
	return nil
}

// viewHandler renders one page with the requested tab, or its active tab.
func (h *PageHandler) viewHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	pageID := chi.URLParam(r, "pageID")

	page, err := h.app.Page(pageID)
	if err != nil {
		if errors.Is(err, data.ErrPageNotFound) {
			return &middleware.AppError{Error: err, Message: "Page not found", Code: http.StatusNotFound}
		}
		return &middleware.AppError{Error: err, Message: "Failed to load page", Code: http.StatusInternalServerError}
	}
	tab := page.Tab(r.URL.Query().Get("tab"))
	if tab == nil {
		tab = page.ActiveTab()
	}

	vars := layoutData(r, h.app, h.sm)
	vars["PageID"] = pageID
	vars["Page"] = page
	vars["Tab"] = tab
	if err := h.view.Render(w, "view.html", vars); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render view", Code: http.StatusInternalServerError}
	}
	return nil
}

// modeHandler flips edit mode and sends the browser back where it came from.
func (h *PageHandler) modeHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	on, err := h.app.ToggleEditMode(r.Context())
	if err != nil {
		var werr *data.WriteError
		if !errors.As(err, &werr) {
			return &middleware.AppError{Error: err, Message: "Failed to change edit mode", Code: http.StatusInternalServerError}
		}
		session.PutFlash(r.Context(), h.sm, ModeWriteNotice)
	}
	h.log.Info(fmt.Sprintf("Edit mode set to %t", on))
	http.Redirect(w, r, returnPath(r), http.StatusSeeOther)
	return nil
}

// returnPath is the local path of the referring page, or "/". Paths a
// browser would read as another host ("//host", "/\host") are refused.
func returnPath(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return "/"
	}
	if !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") || strings.HasPrefix(ref.Path, "/\\") {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
