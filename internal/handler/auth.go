package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/travelxplore/site/internal/domain"
)

// sessionUserKey is the session key holding the signed-in user's id.
const sessionUserKey = "user_id"

type ctxKey int

const userKey ctxKey = iota

// currentUser returns the signed-in user, or nil for anonymous requests.
func currentUser(ctx context.Context) *domain.User {
	u, _ := ctx.Value(userKey).(*domain.User)
	return u
}

// loadUser resolves the session's user id into a domain.User and stores it
// in the request context. A stale id (deleted or deactivated user) is
// dropped from the session and the request proceeds anonymously.
func (s *Server) loadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := s.sessions.GetInt64(ctx, sessionUserKey)
		if id == 0 {
			next.ServeHTTP(w, r)
			return
		}

		u, err := s.accounts.GetUser(ctx, id)
		switch {
		case errors.Is(err, domain.ErrNotFound) || (err == nil && !u.IsActive):
			s.sessions.Remove(ctx, sessionUserKey)
			next.ServeHTTP(w, r)
			return
		case err != nil:
			s.serverError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, userKey, &u)))
	})
}

// requireLogin redirects anonymous requests to the login page, carrying the
// requested path in ?next= so login can return there.
func (s *Server) requireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r.Context()) == nil {
			http.Redirect(w, r, "/login/?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdmin redirects signed-in users who are neither staff nor superuser
// to the home page. Mount it after requireLogin.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := currentUser(r.Context())
		if u == nil || !domain.IsAdmin(*u) {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// redirectIfAuthenticated sends signed-in users away from login and register.
func (s *Server) redirectIfAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r.Context()) != nil {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// startSession signs u in. The session token is renewed first so a token
// issued before login cannot be reused after it.
func (s *Server) startSession(ctx context.Context, u domain.User) error {
	if err := s.sessions.RenewToken(ctx); err != nil {
		return err
	}
	s.sessions.Put(ctx, sessionUserKey, u.ID)
	s.log.Info("user signed in", zap.Int64("user_id", u.ID))
	return nil
}

// safeNext returns target when it is a path on this site, otherwise "/".
func safeNext(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") ||
		strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return target
}
