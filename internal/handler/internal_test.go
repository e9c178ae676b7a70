package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelxplore/site/internal/domain"
)

func TestSafeNext(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "/"},
		{"/profile/", "/profile/"},
		{"/travelers/?page=2", "/travelers/?page=2"},
		{"https://evil.example/", "/"},
		{"//evil.example/", "/"},
		{"/\\evil.example", "/"},
		{"profile/", "/"},
		{"javascript:alert(1)", "/"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, safeNext(tc.in))
		})
	}
}

func TestUnwrapMessage(t *testing.T) {
	err := fmt.Errorf("service.DestinationService.Update: %w: name is required", domain.ErrValidation)
	assert.Equal(t, "name is required", unwrapMessage(err))
	assert.Equal(t, "plain", unwrapMessage(errors.New("plain")))
}

func TestNoticeRoundTrip(t *testing.T) {
	set := httptest.NewRecorder()
	addNotice(set, httptest.NewRequest(http.MethodGet, "/", nil), levelSuccess, `Saved <b>"ok"</b>`)

	cookies := set.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, noticeCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	get := httptest.NewRecorder()
	got := popNotices(get, req)

	require.Len(t, got, 1)
	assert.Equal(t, levelSuccess, got[0].Level)
	assert.Equal(t, `Saved <b>"ok"</b>`, got[0].Text)

	cleared := get.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Less(t, cleared[0].MaxAge, 0, "notice is consumed on read")
}

func TestPopNotices_GarbageCookieIgnored(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: noticeCookie, Value: "%%%not-base64"})

	got := popNotices(httptest.NewRecorder(), req)

	assert.Empty(t, got)
}
