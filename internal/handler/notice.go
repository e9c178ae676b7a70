package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

// Notice levels, used as CSS classes by the base template.
const (
	levelSuccess = "success"
	levelInfo    = "info"
	levelError   = "error"
)

// noticeCookie carries notices from a redirect to the page rendered next.
const noticeCookie = "notice"

// Notice is a one-shot message shown on the next rendered page only.
type Notice struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// addNotice attaches a notice to the response, replacing any set earlier
// in the same response.
func addNotice(w http.ResponseWriter, r *http.Request, level, text string) {
	b, err := json.Marshal([]Notice{{Level: level, Text: text}})
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     noticeCookie,
		Value:    base64.RawURLEncoding.EncodeToString(b),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
}

// popNotices returns the notices sent with the request and expires the cookie.
func popNotices(w http.ResponseWriter, r *http.Request) []Notice {
	c, err := r.Cookie(noticeCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: noticeCookie, Path: "/", MaxAge: -1})
	return decodeNotices(c.Value)
}

func decodeNotices(v string) []Notice {
	b, err := base64.RawURLEncoding.DecodeString(v)
	if err != nil {
		return nil
	}
	var notices []Notice
	if err := json.Unmarshal(b, &notices); err != nil {
		return nil
	}
	return notices
}
