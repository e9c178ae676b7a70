package handler_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/stretchr/testify/require"

	"github.com/travelxplore/site/internal/domain"
	"github.com/travelxplore/site/internal/handler"
	"github.com/travelxplore/site/internal/media"
)

var (
	alice = domain.User{ID: 7, Username: "alice", Email: "alice@x.com", IsActive: true}
	bob   = domain.User{ID: 8, Username: "bob", Email: "bob@x.com", IsActive: true}
	staff = domain.User{ID: 9, Username: "sam", Email: "sam@x.com", IsActive: true, IsStaff: true}
)

// harness wires a Server with mocks and an in-memory session store into the
// real router. This mirrors how main.go wires it in production.
type harness struct {
	accounts     *mockAccounts
	travelers    *mockTravelers
	messages     *mockMessages
	destinations *mockDestinations
	db           mockPinger
	users        map[int64]domain.User

	handler http.Handler
}

// newHarness builds a harness; opts adjust the Deps before the Server is built.
func newHarness(t *testing.T, opts ...func(*handler.Deps)) *harness {
	t.Helper()
	h := &harness{
		travelers:    &mockTravelers{},
		messages:     &mockMessages{},
		destinations: &mockDestinations{},
		users:        map[int64]domain.User{},
	}
	h.accounts = &mockAccounts{
		getUser: func(_ context.Context, id int64) (domain.User, error) {
			u, ok := h.users[id]
			if !ok {
				return domain.User{}, domain.ErrNotFound
			}
			return u, nil
		},
		authenticate: func(_ context.Context, username, password string) (domain.User, error) {
			for _, u := range h.users {
				if u.Username == username && password == "pw" {
					return u, nil
				}
			}
			return domain.User{}, domain.ErrInvalidCredentials
		},
		profile: func(_ context.Context, userID int64) (domain.Profile, error) {
			return domain.Profile{ID: userID, UserID: userID}, nil
		},
	}

	sessions := scs.New()
	sessions.Store = memstore.New()

	deps := handler.Deps{
		Accounts:     h.accounts,
		Travelers:    h.travelers,
		Messages:     h.messages,
		Destinations: h.destinations,
		Sessions:     sessions,
		DB:           &h.db,
		Media:        media.NewStore(t.TempDir(), "/media/"),
	}
	for _, opt := range opts {
		opt(&deps)
	}
	srv, err := handler.NewServer(deps)
	require.NoError(t, err)
	h.handler = srv.Routes()
	return h
}

// do sends a request with the given cookies. A non-nil form is sent as an
// urlencoded body.
func (h *harness) do(method, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

// upload sends a multipart/form-data POST with fields and, when data is
// non-nil, a file part named file.
func (h *harness) upload(t *testing.T, target string, fields url.Values, file string, data []byte, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, values := range fields {
		for _, v := range values {
			require.NoError(t, mw.WriteField(name, v))
		}
	}
	if data != nil {
		part, err := mw.CreateFormFile(file, "picture.bin")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

// loginAs signs u in through POST /login/ and returns the session cookies.
func (h *harness) loginAs(t *testing.T, u domain.User) []*http.Cookie {
	t.Helper()
	h.users[u.ID] = u
	rec := h.do(http.MethodPost, "/login/", url.Values{"username": {u.Username}, "password": {"pw"}}, nil)
	require.Equal(t, http.StatusFound, rec.Code, "login as %s", u.Username)
	return sessionCookies(rec)
}

// sessionCookies returns the cookies set by rec, without the notice cookie,
// so later requests start with no pending notice.
func sessionCookies(rec *httptest.ResponseRecorder) []*http.Cookie {
	var out []*http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name != "notice" {
			out = append(out, c)
		}
	}
	return out
}

// follow returns the cookies a browser would send after rec: those set by
// rec first, so a renewed session token shadows the old one, then the rest.
func follow(rec *httptest.ResponseRecorder, cookies []*http.Cookie) []*http.Cookie {
	return append(rec.Result().Cookies(), cookies...)
}
