package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/unforum-dev/unforum/shared/csrf"
	"github.com/unforum-dev/unforum/shared/logger"
)

const (
	csrfCookieName = "csrf_token"
	csrfCookieTTL  = 24 * time.Hour

	// CSRFFormField is the hidden input rendered into every form.
	CSRFFormField = "csrf_token"
	// CSRFHeader carries the token on like requests sent by forum.js.
	CSRFHeader = "X-CSRF-Token"
)

type csrfKey struct{}

type CSRFConfig struct {
	SecureCookies bool
}

// CSRFCookie gives every visitor a token cookie and exposes the token to
// templates through CSRFToken.
func CSRFCookie(cfg CSRFConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := visitorToken(w, r, cfg)
			if err != nil {
				logger.Log.Error("issue csrf token", "error", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), csrfKey{}, token)))
		})
	}
}

func visitorToken(w http.ResponseWriter, r *http.Request, cfg CSRFConfig) (string, error) {
	if c, err := r.Cookie(csrfCookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}
	token, err := csrf.GenerateToken()
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(csrfCookieTTL.Seconds()),
	})
	return token, nil
}

// RequireCSRF rejects state-changing requests whose submitted token does not
// match the visitor's cookie.
func RequireCSRF() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !changesState(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(csrfCookieName)
			if err != nil || cookie.Value == "" {
				logger.Log.Warn("csrf cookie missing", "path", r.URL.Path)
				http.Error(w, "CSRF token missing", http.StatusForbidden)
				return
			}
			submitted, err := submittedToken(r)
			if err != nil {
				logger.Log.Warn("unreadable form", "path", r.URL.Path, "error", err)
				http.Error(w, "Invalid form data", http.StatusBadRequest)
				return
			}
			if !csrf.ValidateToken(cookie.Value, submitted) {
				logger.Log.Warn("csrf token mismatch", "path", r.URL.Path)
				http.Error(w, "CSRF token invalid", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func changesState(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// submittedToken reads the like-button header first, then the form field.
// The form is only parsed when the header is absent.
func submittedToken(r *http.Request) (string, error) {
	if token := r.Header.Get(CSRFHeader); token != "" {
		return token, nil
	}
	if err := r.ParseForm(); err != nil {
		return "", err
	}
	return r.PostFormValue(CSRFFormField), nil
}

// CSRFToken returns the token CSRFCookie stored for this request.
func CSRFToken(r *http.Request) string {
	token, _ := r.Context().Value(csrfKey{}).(string)
	return token
}
