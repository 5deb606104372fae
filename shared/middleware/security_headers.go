package middleware

import (
	"net/http"
)

// DefaultCSP allows the forum's own assets and the avatar hosts used by
// seeded and guest authors.
const DefaultCSP = "default-src 'self'; img-src 'self' data: https://api.dicebear.com https://github.com https://*.githubusercontent.com; style-src 'self' 'unsafe-inline'; script-src 'self'; frame-ancestors 'none'"

// SecurityHeadersWithCSP adds security headers. HSTS is only sent when
// isHTTPS; an empty csp skips the Content-Security-Policy header.
func SecurityHeadersWithCSP(isHTTPS bool, csp string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()
			headers.Set("X-Frame-Options", "DENY")
			headers.Set("X-Content-Type-Options", "nosniff")
			headers.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			headers.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=()")
			if csp != "" {
				headers.Set("Content-Security-Policy", csp)
			}
			if isHTTPS {
				headers.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NoStore marks API responses as uncacheable; counters and sessions change
// on every request.
func NoStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
