package middleware

import (
	"context"
	"net/http"

	"github.com/unforum-dev/unforum/shared/identity"
)

// Key to store the identity adapter in the request context
type key int

const SessionKey key = 0

// Auth resolves the request's identity token into an identity.Adapter.
type Auth struct {
	verifier *identity.Verifier
	policy   identity.AdminPolicy
}

func NewAuth(verifier *identity.Verifier, policy identity.AdminPolicy) *Auth {
	return &Auth{verifier: verifier, policy: policy}
}

// Identify installs the session for every request. It never rejects:
// a missing or invalid token is an anonymous visitor.
func (a *Auth) Identify() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provider := identity.NewTokenProvider(a.verifier, identity.TokenFromRequest(r))
			session := identity.NewAdapter(provider, a.policy, identity.NewCookieFlag(r))
			defer session.Close()

			ctx := context.WithValue(r.Context(), SessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NeedAuth rejects anonymous requests. Must run after Identify.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetUserFromContext(r) == nil {
				http.Error(w, "Please sign-in", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly rejects requests whose session is not admin. Must run after Identify.
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !GetSession(r).IsAdmin() {
				http.Error(w, "Access denied. Only for admin", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetSession returns the request's identity adapter, or an anonymous one
// when Identify did not run.
func GetSession(r *http.Request) *identity.Adapter {
	session, ok := r.Context().Value(SessionKey).(*identity.Adapter)
	if !ok {
		return identity.Anonymous(identity.AdminPolicy{}, nil)
	}
	return session
}

// GetUserFromContext returns the signed-in user or nil.
func GetUserFromContext(r *http.Request) *identity.User {
	return GetSession(r).CurrentUser()
}
