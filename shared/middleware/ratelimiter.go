package middleware

import (
	"fmt"
	"net"
	"net/http"

	"github.com/unforum-dev/unforum/shared/middleware/ratelimiter"
	"github.com/unforum-dev/unforum/shared/utils"
)

func RateLimit(rl *ratelimiter.Limiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetSession(r).IsAdmin() { // disable for admin
				next.ServeHTTP(w, r)
				return
			}

			key, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			if !rl.Allow(key) {
				http.Error(w, "You are posting too fast, try again later", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// VisitorKey identifies the caller: the signed-in user id, otherwise the
// client IP.
func VisitorKey(r *http.Request) (string, error) {
	if user := GetUserFromContext(r); user != nil {
		return "user_" + user.Id, nil
	}
	ip, err := GetIP(r)
	if err != nil {
		return "", err
	}
	return "ip_" + ip, nil
}

// GetIP extracts the client IP from RemoteAddr. Forwarding headers are not
// trusted.
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}
	return ip, nil
}
