package handler

import (
	"io/fs"
	"net/http"
	"tabwiki/internal/middleware"
	"tabwiki/internal/session"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Handlers bundles the route handlers of the wiki.
type Handlers struct {
	Pages  *PageHandler
	Editor *EditorHandler
	API    *APIHandler
	SEO    *SeoHandler
}

// NewRouter creates and configures a new chi router. Every route except the
// static assets passes through the edit-mode gate.
func NewRouter(h Handlers, gate func(http.Handler) http.Handler, errMW func(middleware.AppHandler) http.Handler, sm session.Manager, static fs.FS) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Handle("/static/*", http.FileServer(http.FS(static)))
	r.Get("/robots.txt", h.SEO.robotsHandler)
	r.Get("/sitemap.xml", h.SEO.sitemapHandler)

	r.Group(func(r chi.Router) {
		r.Use(sm.LoadAndSave)
		r.Use(gate)

		r.Method(http.MethodGet, "/", errMW(h.Pages.rootHandler))
		r.Method(http.MethodGet, "/view/{pageID}", errMW(h.Pages.viewHandler))
		r.Method(http.MethodPost, "/mode", errMW(h.Pages.modeHandler))

		r.Route("/edit/{pageID}", func(r chi.Router) {
			e := h.Editor
			r.Method(http.MethodGet, "/", errMW(e.openHandler))
			r.Method(http.MethodGet, "/session", errMW(e.sessionHandler))

			r.Method(http.MethodPost, "/buffer", errMW(e.action(e.flushBuffer)))
			r.Method(http.MethodPost, "/mode", errMW(e.action(e.setMode)))
			r.Method(http.MethodPost, "/revert", errMW(e.action(e.revert)))
			r.Method(http.MethodPost, "/save", errMW(e.saveHandler(true)))
			r.Method(http.MethodPost, "/save-close", errMW(e.saveHandler(false)))
			r.Method(http.MethodPost, "/discard", errMW(e.discardHandler))
			r.Method(http.MethodPost, "/close", errMW(e.closeHandler))

			r.Method(http.MethodPost, "/tabs", errMW(e.action(e.addTab)))
			r.Method(http.MethodPost, "/tabs/{tabID}/select", errMW(e.action(e.selectTab)))
			r.Method(http.MethodPost, "/tabs/{tabID}/rename", errMW(e.action(e.renameTab)))
			r.Method(http.MethodPost, "/tabs/{tabID}/remove", errMW(e.action(e.removeTab)))
			r.Method(http.MethodPost, "/tabs/{tabID}/sections", errMW(e.action(e.addSection)))

			r.Method(http.MethodPost, "/sections/{sectionID}/select", errMW(e.action(e.selectSection)))
			r.Method(http.MethodPost, "/sections/{sectionID}/collapse", errMW(e.action(e.collapseSection)))
			r.Method(http.MethodPost, "/sections/{sectionID}/move", errMW(e.action(e.moveSection)))
			r.Method(http.MethodPost, "/sections/{sectionID}/remove", errMW(e.action(e.removeSection)))
		})

		r.Post("/api/pages/{pageID}", h.API.addPageHandler)
	})

	return r
}
