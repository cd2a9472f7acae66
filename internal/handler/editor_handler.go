package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"tabwiki/internal/data"
	"tabwiki/internal/logger"
	"tabwiki/internal/middleware"
	"tabwiki/internal/service"
	"tabwiki/internal/session"
	"tabwiki/internal/view"

	"github.com/go-chi/chi/v5"
)

// Notices flashed by the editor.
const (
	SavedNotice        = "Saved."
	SaveWriteNotice    = "Saved for this run only: the changes could not be written to storage."
	SessionEndedNotice = "The editing session has ended."
	KeptNotice         = "Nothing was removed."
	InvalidStateNotice = "Unknown section state, nothing was changed."
)

// sessionAction runs inside the App lock against the open session and
// returns an optional notice for the next page.
type sessionAction func(r *http.Request, s *service.EditSession) (string, error)

// EditorHandler drives the page editor. Every form post first applies the
// buffer and section headers the browser sent, then runs one action and
// redirects back to the editor.
type EditorHandler struct {
	app  *service.App
	view *view.View
	sm   session.Manager
	log  logger.Logger
}

// NewEditorHandler creates a new EditorHandler with the given dependencies.
func NewEditorHandler(app *service.App, v *view.View, sm session.Manager, log logger.Logger) *EditorHandler {
	return &EditorHandler{
		app:  app,
		view: v,
		sm:   sm,
		log:  log.With(map[string]interface{}{"component": "editor"}),
	}
}

func editorPath(pageID string) string { return "/edit/" + url.PathEscape(pageID) + "/session" }

func viewPath(pageID string) string { return "/view/" + url.PathEscape(pageID) }

// formConfirmer confirms when the browser sent confirm=yes, which the
// editor buttons only do after the user accepted the prompt.
func formConfirmer(r *http.Request) service.Confirmer {
	return service.ConfirmFunc(func(prompt string) bool {
		return r.PostForm.Get("confirm") == "yes"
	})
}

// openHandler starts a session on a page and shows the editor.
func (h *EditorHandler) openHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	pageID := chi.URLParam(r, "pageID")
	q := r.URL.Query()

	err := h.app.OpenSession(pageID, q.Get("tab"), q.Get("section"))
	switch {
	case err == nil:
	case errors.Is(err, service.ErrEditModeDisabled):
		session.PutFlash(r.Context(), h.sm, middleware.EditNotice)
		http.Redirect(w, r, viewPath(pageID), http.StatusSeeOther)
		return nil
	case errors.Is(err, data.ErrPageNotFound):
		return &middleware.AppError{Error: err, Message: "Page not found", Code: http.StatusNotFound}
	default:
		return &middleware.AppError{Error: err, Message: "Failed to open the editor", Code: http.StatusInternalServerError}
	}
	h.log.Info(fmt.Sprintf("Opened editing session for %q", pageID))
	http.Redirect(w, r, editorPath(pageID), http.StatusSeeOther)
	return nil
}

// sessionHandler renders the open session.
func (h *EditorHandler) sessionHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	pageID := chi.URLParam(r, "pageID")

	vars := map[string]interface{}{"CurrentTabID": "", "CurrentSectionID": ""}
	err := h.app.WithSession(pageID, func(s *service.EditSession) error {
		// The copy keeps rendering outside the lock safe.
		page := s.Page().Clone()
		vars["PageID"] = pageID
		vars["Page"] = page
		vars["Buffer"] = s.Buffer()
		if t := s.CurrentTab(); t != nil {
			vars["CurrentTab"] = page.Tab(t.ID)
			vars["CurrentTabID"] = t.ID
		}
		if sec := s.CurrentSection(); sec != nil {
			vars["CurrentSection"], _ = page.FindSection(sec.ID)
			vars["CurrentSectionID"] = sec.ID
		}
		return nil
	})
	if errors.Is(err, service.ErrSessionClosed) {
		http.Redirect(w, r, viewPath(pageID), http.StatusSeeOther)
		return nil
	}
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load the editor", Code: http.StatusInternalServerError}
	}

	// The layout pops the flash, so it is built only once the editor will render.
	for k, v := range layoutData(r, h.app, h.sm) {
		vars[k] = v
	}
	vars["Modes"] = []service.BufferMode{service.ModeRich, service.ModeCode, service.ModeMarkdown}
	vars["PromptRemoveTab"] = service.PromptRemoveTab
	vars["PromptRemoveSection"] = service.PromptRemoveSection
	vars["PromptDiscard"] = service.PromptDiscard
	if err := h.view.Render(w, "edit.html", vars); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render editor", Code: http.StatusInternalServerError}
	}
	return nil
}

// applyForm copies what the browser holds into the session: the content
// buffer and every section header field.
func applyForm(r *http.Request, s *service.EditSession) error {
	if r.PostForm.Has("buffer") {
		text := strings.ReplaceAll(r.PostForm.Get("buffer"), "\r\n", "\n")
		mode := service.ParseBufferMode(r.PostForm.Get("buffer_mode"))
		if err := s.SetBuffer(mode, text); err != nil {
			return err
		}
	}
	for key, values := range r.PostForm {
		id, ok := strings.CutPrefix(key, "header_")
		if !ok || len(values) == 0 {
			continue
		}
		sec, _ := s.Page().FindSection(id)
		if sec == nil || sec.Header == values[0] {
			continue
		}
		if err := s.EditSectionHeader(id, values[0]); err != nil {
			return err
		}
	}
	return nil
}

// action wraps a sessionAction into a form handler.
func (h *EditorHandler) action(fn sessionAction) middleware.AppHandler {
	return func(w http.ResponseWriter, r *http.Request) *middleware.AppError {
		pageID := chi.URLParam(r, "pageID")
		if err := r.ParseForm(); err != nil {
			return &middleware.AppError{Error: err, Message: "Invalid form", Code: http.StatusBadRequest}
		}

		var notice string
		err := h.app.WithSession(pageID, func(s *service.EditSession) error {
			if err := applyForm(r, s); err != nil {
				return err
			}
			var err error
			notice, err = fn(r, s)
			return err
		})
		if aerr := h.sessionError(w, r, pageID, err); aerr != nil || err != nil {
			return aerr
		}
		session.PutFlash(r.Context(), h.sm, notice)
		http.Redirect(w, r, editorPath(pageID), http.StatusSeeOther)
		return nil
	}
}

// sessionError maps session failures to a redirect with a notice, or an
// AppError. It writes nothing for a nil error.
func (h *EditorHandler) sessionError(w http.ResponseWriter, r *http.Request, pageID string, err error) *middleware.AppError {
	if err == nil {
		return nil
	}
	var missing *data.MissingReferenceError
	switch {
	case errors.Is(err, service.ErrSessionClosed):
		session.PutFlash(r.Context(), h.sm, SessionEndedNotice)
		http.Redirect(w, r, viewPath(pageID), http.StatusSeeOther)
		return nil
	case errors.As(err, &missing):
		h.log.Warn(err.Error())
		session.PutFlash(r.Context(), h.sm, err.Error())
		http.Redirect(w, r, editorPath(pageID), http.StatusSeeOther)
		return nil
	default:
		return &middleware.AppError{Error: err, Message: "Editor operation failed", Code: http.StatusInternalServerError}
	}
}

func (h *EditorHandler) flushBuffer(r *http.Request, s *service.EditSession) (string, error) {
	return "", s.Flush()
}

func (h *EditorHandler) setMode(r *http.Request, s *service.EditSession) (string, error) {
	return "", s.SetMode(service.ParseBufferMode(r.PostForm.Get("mode")))
}

func (h *EditorHandler) revert(r *http.Request, s *service.EditSession) (string, error) {
	ok, err := s.Revert()
	if err != nil || ok {
		return "", err
	}
	return "Nothing to revert.", nil
}

func (h *EditorHandler) addTab(r *http.Request, s *service.EditSession) (string, error) {
	_, err := s.AddTab(r.PostForm.Get("tab_title"), true)
	return "", err
}

func (h *EditorHandler) selectTab(r *http.Request, s *service.EditSession) (string, error) {
	return "", s.SelectTab(chi.URLParam(r, "tabID"))
}

func (h *EditorHandler) renameTab(r *http.Request, s *service.EditSession) (string, error) {
	tabID := chi.URLParam(r, "tabID")
	return "", s.RenameTab(tabID, r.PostForm.Get("rename_"+tabID))
}

func (h *EditorHandler) removeTab(r *http.Request, s *service.EditSession) (string, error) {
	removed, err := s.RemoveTab(chi.URLParam(r, "tabID"), formConfirmer(r))
	if err != nil || removed {
		return "", err
	}
	return KeptNotice, nil
}

func (h *EditorHandler) addSection(r *http.Request, s *service.EditSession) (string, error) {
	_, err := s.AddSection(chi.URLParam(r, "tabID"))
	return "", err
}

func (h *EditorHandler) selectSection(r *http.Request, s *service.EditSession) (string, error) {
	return "", s.SelectSection(chi.URLParam(r, "sectionID"))
}

// collapseSection sets the posted display state, so a resubmitted form
// does not flip it back. Without one the state is toggled.
func (h *EditorHandler) collapseSection(r *http.Request, s *service.EditSession) (string, error) {
	sectionID := chi.URLParam(r, "sectionID")
	if !r.PostForm.Has("collapsed") {
		_, err := s.ToggleCollapsed(sectionID)
		return "", err
	}
	collapsed, err := strconv.ParseBool(r.PostForm.Get("collapsed"))
	if err != nil {
		return InvalidStateNotice, nil
	}
	return "", s.SetCollapsed(sectionID, collapsed)
}

func (h *EditorHandler) moveSection(r *http.Request, s *service.EditSession) (string, error) {
	sectionID := chi.URLParam(r, "sectionID")
	return "", s.MoveSection(sectionID, r.PostForm.Get("move_"+sectionID))
}

func (h *EditorHandler) removeSection(r *http.Request, s *service.EditSession) (string, error) {
	removed, err := s.RemoveSection(chi.URLParam(r, "sectionID"), formConfirmer(r))
	if err != nil || removed {
		return "", err
	}
	return KeptNotice, nil
}

// saveHandler commits the session. With keepOpen the editor stays on the
// saved page, otherwise the browser goes back to the page view.
func (h *EditorHandler) saveHandler(keepOpen bool) middleware.AppHandler {
	return func(w http.ResponseWriter, r *http.Request) *middleware.AppError {
		pageID := chi.URLParam(r, "pageID")
		if err := r.ParseForm(); err != nil {
			return &middleware.AppError{Error: err, Message: "Invalid form", Code: http.StatusBadRequest}
		}
		page, err := h.app.Save(r.Context(), pageID, keepOpen, func(s *service.EditSession) error {
			return applyForm(r, s)
		})
		var werr *data.WriteError
		switch {
		case err == nil:
			session.PutFlash(r.Context(), h.sm, SavedNotice)
		case errors.As(err, &werr):
			session.PutFlash(r.Context(), h.sm, SaveWriteNotice)
		default:
			return h.sessionError(w, r, pageID, err)
		}
		h.log.Info(fmt.Sprintf("Saved page %q", page.Title))

		if keepOpen {
			http.Redirect(w, r, editorPath(pageID), http.StatusSeeOther)
			return nil
		}
		http.Redirect(w, r, viewPath(pageID), http.StatusSeeOther)
		return nil
	}
}

// discardHandler drops the session once the user confirmed.
func (h *EditorHandler) discardHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	pageID := chi.URLParam(r, "pageID")
	if err := r.ParseForm(); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid form", Code: http.StatusBadRequest}
	}
	closed, err := h.app.Discard(pageID, formConfirmer(r))
	if aerr := h.sessionError(w, r, pageID, err); aerr != nil || err != nil {
		return aerr
	}
	if !closed {
		http.Redirect(w, r, editorPath(pageID), http.StatusSeeOther)
		return nil
	}
	h.log.Info(fmt.Sprintf("Discarded editing session for %q", pageID))
	http.Redirect(w, r, viewPath(pageID), http.StatusSeeOther)
	return nil
}

// closeHandler drops the session without asking.
func (h *EditorHandler) closeHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	pageID := chi.URLParam(r, "pageID")
	h.app.Close(pageID)
	http.Redirect(w, r, viewPath(pageID), http.StatusSeeOther)
	return nil
}
