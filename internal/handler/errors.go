package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/travelxplore/site/internal/domain"
)

// notFound renders the 404 page. It is used both for unknown routes and for
// rows outside the requester's scope, so the two are indistinguishable.
func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "404.html", templateData{Title: "Page not found"})
}

// serverError logs err with the request ID and renders the 500 page.
// It never calls render, so a broken template cannot recurse.
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("request failed",
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", chimiddleware.GetReqID(r.Context())),
	)

	var buf bytes.Buffer
	t := s.pages.pages["500.html"]
	if t == nil || t.ExecuteTemplate(&buf, "base", templateData{Title: "Server error", User: currentUser(r.Context())}) != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = buf.WriteTo(w)
}

// fail maps a service error to a response: ErrNotFound renders 404,
// ErrForbidden redirects home, anything else is a 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.notFound(w, r)
	case errors.Is(err, domain.ErrForbidden):
		http.Redirect(w, r, "/", http.StatusFound)
	default:
		s.serverError(w, r, err)
	}
}

// unwrapMessage extracts the human-readable part from a wrapped validation error.
// e.g. "validation error: unknown category \"desert\"" -> "unknown category \"desert\""
func unwrapMessage(err error) string {
	msg := err.Error()
	const marker = "validation error: "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
