package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unforum-dev/unforum/shared/api"
	"github.com/unforum-dev/unforum/shared/identity"
)

type stubSource struct {
	session api.SessionResponse
	err     error
}

func (s stubSource) Session(r *http.Request) (api.SessionResponse, error) {
	return s.session, s.err
}

func TestSession(t *testing.T) {
	var got api.SessionResponse
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { got = GetSession(r) })

	user := &identity.User{Id: "u1"}
	Session(stubSource{session: api.SessionResponse{User: user, IsAdmin: true}})(next).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, user, got.User)
	assert.True(t, got.IsAdmin)

	Session(stubSource{err: errors.New("backend down")})(next).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Nil(t, got.User)
	assert.False(t, got.IsAdmin)
}

func TestAuthGates(t *testing.T) {
	auth := NewAuth(false)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	tests := []struct {
		name     string
		gate     func(http.Handler) http.Handler
		session  api.SessionResponse
		status   int
		flashMsg string
	}{
		{"need auth anonymous", auth.NeedAuth(), api.SessionResponse{}, http.StatusSeeOther, "Please sign in to continue"},
		{"need auth signed in", auth.NeedAuth(), api.SessionResponse{User: &identity.User{Id: "u1"}}, http.StatusOK, ""},
		{"admin only user", auth.AdminOnly(), api.SessionResponse{User: &identity.User{Id: "u1"}}, http.StatusSeeOther, "Access denied"},
		{"admin only admin", auth.AdminOnly(), api.SessionResponse{IsAdmin: true}, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := WithSession(httptest.NewRequest(http.MethodGet, "/tools", nil), tt.session)
			rr := httptest.NewRecorder()
			tt.gate(ok).ServeHTTP(rr, req)

			assert.Equal(t, tt.status, rr.Code)
			if tt.flashMsg == "" {
				return
			}
			assert.Equal(t, "/", rr.Header().Get("Location"))
			cookies := rr.Result().Cookies()
			require.Len(t, cookies, 1)

			next := httptest.NewRequest(http.MethodGet, "/", nil)
			next.AddCookie(cookies[0])
			assert.Equal(t, tt.flashMsg, PopFlash(httptest.NewRecorder(), next, FlashError))
		})
	}
}

func TestPopFlash(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, PopFlash(rr, req, FlashSuccess))

	req.AddCookie(&http.Cookie{Name: FlashSuccess, Value: "%%%"})
	assert.Empty(t, PopFlash(rr, req, FlashSuccess))
	cleared := rr.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Less(t, cleared[0].MaxAge, 0)
}
