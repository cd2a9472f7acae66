package handler

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"tabwiki/internal/service"
)

// SeoHandler holds dependencies for SEO-related handlers.
type SeoHandler struct {
	app     *service.App
	baseURL string
}

// NewSeoHandler creates a new SeoHandler. baseURL is the public origin of
// the wiki, such as "https://wiki.example.org".
func NewSeoHandler(app *service.App, baseURL string) *SeoHandler {
	return &SeoHandler{app: app, baseURL: strings.TrimRight(baseURL, "/")}
}

// robotsHandler serves robots.txt.
func (h *SeoHandler) robotsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "User-agent: *")
	fmt.Fprintln(w, "Allow: /view/")
	fmt.Fprintln(w, "Disallow: /edit/")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Sitemap: %s/sitemap.xml\n", h.baseURL)
}

type sitemapURL struct {
	XMLName xml.Name `xml:"url"`
	Loc     string   `xml:"loc"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// sitemapHandler lists every page in navigation order.
func (h *SeoHandler) sitemapHandler(w http.ResponseWriter, r *http.Request) {
	ids := h.app.PageIDs()
	sitemap := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]sitemapURL, len(ids)),
	}
	for i, id := range ids {
		sitemap.URLs[i] = sitemapURL{Loc: h.baseURL + "/view/" + url.PathEscape(id)}
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Write([]byte(xml.Header))
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(sitemap); err != nil {
		http.Error(w, "Failed to generate sitemap XML", http.StatusInternalServerError)
		return
	}
}
