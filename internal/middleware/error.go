package middleware

import (
	"fmt"
	"net/http"
	"tabwiki/internal/logger"
	"tabwiki/internal/view"
)

// AppError is returned by handlers that could not complete a request.
// Message is shown to the visitor; Error is only logged.
type AppError struct {
	Error   error
	Message string
	Code    int
}

// AppHandler is a handler that reports failure through an AppError.
type AppHandler func(http.ResponseWriter, *http.Request) *AppError

// Error adapts an AppHandler into an http.Handler that renders failures as
// the wiki's error page. Client errors are logged as warnings, server errors
// and panics as errors.
func Error(log logger.Logger, v *view.View) func(AppHandler) http.Handler {
	return func(next AppHandler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("%v", rec)
					}
					log.Error(err, "Panic recovered in "+r.URL.Path)
					renderError(w, v, log, http.StatusInternalServerError, "Internal Server Error")
				}
			}()

			aerr := next(w, r)
			if aerr == nil {
				return
			}
			if aerr.Code == 0 {
				aerr.Code = http.StatusInternalServerError
			}
			if aerr.Message == "" {
				aerr.Message = http.StatusText(aerr.Code)
			}
			if aerr.Code < http.StatusInternalServerError {
				log.Warn(fmt.Sprintf("%s %s: %s (%v)", r.Method, r.URL.Path, aerr.Message, aerr.Error))
			} else {
				log.Error(aerr.Error, fmt.Sprintf("%s %s: %s", r.Method, r.URL.Path, aerr.Message))
			}
			renderError(w, v, log, aerr.Code, aerr.Message)
		})
	}
}

func renderError(w http.ResponseWriter, v *view.View, log logger.Logger, code int, text string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	err := v.Render(w, "error.html", map[string]interface{}{
		"StatusCode": code,
		"StatusText": text,
	})
	if err != nil {
		log.Error(err, "Failed to render error page")
	}
}
