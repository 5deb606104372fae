package middleware

import (
	"context"
	"net/http"

	"github.com/unforum-dev/unforum/shared/api"
	"github.com/unforum-dev/unforum/shared/logger"
)

type sessionContextKey struct{}

// SessionSource resolves the browser's identity through the backend.
type SessionSource interface {
	Session(r *http.Request) (api.SessionResponse, error)
}

// Session asks the backend who the visitor is and keeps the answer in the
// request context. A failed lookup renders the page as anonymous.
func Session(source SessionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := source.Session(r)
			if err != nil {
				logger.Log.Warn("session lookup failed", "path", r.URL.Path, "error", err)
				session = api.SessionResponse{}
			}
			ctx := context.WithValue(r.Context(), sessionContextKey{}, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetSession(r *http.Request) api.SessionResponse {
	session, _ := r.Context().Value(sessionContextKey{}).(api.SessionResponse)
	return session
}

// WithSession is used by tests and by handlers that build requests
// outside the middleware chain.
func WithSession(r *http.Request, session api.SessionResponse) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), sessionContextKey{}, session))
}
