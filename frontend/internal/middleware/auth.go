package middleware

import (
	"net/http"
)

// Auth gates pages on the session resolved by Session and redirects
// instead of answering with a bare status.
type Auth struct {
	secureCookies bool
}

func NewAuth(secureCookies bool) *Auth {
	return &Auth{secureCookies: secureCookies}
}

// NeedAuth sends anonymous visitors back to the front page.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return a.gate(func(r *http.Request) bool {
		return GetSession(r).User != nil
	}, "Please sign in to continue")
}

// AdminOnly sends non-admins back to the front page.
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return a.gate(func(r *http.Request) bool {
		return GetSession(r).IsAdmin
	}, "Access denied")
}

func (a *Auth) gate(allowed func(r *http.Request) bool, errorMsg string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !allowed(r) {
				RedirectWithFlash(w, r, "/", FlashError, errorMsg, a.secureCookies)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
