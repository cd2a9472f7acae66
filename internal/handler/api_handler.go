package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"tabwiki/internal/data"
	"tabwiki/internal/logger"
	"tabwiki/internal/service"

	"github.com/go-chi/chi/v5"
)

// maxPageBody bounds the size of an imported page.
const maxPageBody = 1 << 20

// APIHandler accepts pages posted as JSON, in either the legacy or the
// tabbed shape.
type APIHandler struct {
	app *service.App
	log logger.Logger
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(app *service.App, log logger.Logger) *APIHandler {
	return &APIHandler{app: app, log: log}
}

type addPageResponse struct {
	ID      string     `json:"id"`
	Page    *data.Page `json:"page"`
	Warning string     `json:"warning,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// addPageHandler inserts or replaces the page named in the URL.
func (h *APIHandler) addPageHandler(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "pageID")
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPageBody))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "page body too large"})
		return
	}

	page, err := h.app.AddPage(r.Context(), pageID, body)
	var (
		derr *data.DeserializationError
		werr *data.WriteError
	)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, addPageResponse{ID: pageID, Page: page})
	case errors.As(err, &werr):
		writeJSON(w, http.StatusCreated, addPageResponse{ID: pageID, Page: page, Warning: werr.Error()})
	case errors.As(err, &derr), page == nil:
		h.log.Warn(fmt.Sprintf("Rejected page %q: %v", pageID, err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		h.log.Error(err, "Failed to add page")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to add page"})
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
