package identity

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/unforum-dev/unforum/shared/logger"
)

var ErrNoToken = errors.New("no identity token")

// Claims carried by the identity provider's ID token.
type Claims struct {
	Name           string   `json:"name,omitempty"`
	Picture        string   `json:"picture,omitempty"`
	Email          string   `json:"email,omitempty"`
	ProviderEmails []string `json:"provider_emails,omitempty"`
	jwt.RegisteredClaims
}

// Verifier checks HS256 ID tokens signed with the provider's shared secret.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) Verify(token string) (*User, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("verify identity token: %w", err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, errors.New("identity token has no subject")
	}
	return &User{
		Id:             claims.Subject,
		DisplayName:    claims.Name,
		AvatarURL:      claims.Picture,
		Email:          claims.Email,
		ProviderEmails: claims.ProviderEmails,
	}, nil
}

// Issue signs a token for u. Used by tests and local development tooling.
func (v *Verifier) Issue(u User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Name:           u.DisplayName,
		Picture:        u.AvatarURL,
		Email:          u.Email,
		ProviderEmails: u.ProviderEmails,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// TokenProvider is a Provider over a single request's token. It emits once;
// verification failures resolve to anonymous.
type TokenProvider struct {
	verifier *Verifier
	token    string
}

func NewTokenProvider(v *Verifier, token string) *TokenProvider {
	return &TokenProvider{verifier: v, token: token}
}

func (p *TokenProvider) Subscribe(fn func(*User)) func() {
	u, err := p.verifier.Verify(p.token)
	if err != nil {
		if !errors.Is(err, ErrNoToken) {
			logger.Log.Debug("identity token rejected", "error", err)
		}
		u = nil
	}
	fn(u)
	return func() {}
}

// TokenFromRequest reads the ID token from the idToken cookie or a bearer
// Authorization header.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(TokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		return strings.TrimSpace(token)
	}
	return ""
}

// CookieFlag reads forum_admin_mode from the request cookies.
type CookieFlag struct {
	r *http.Request
}

func NewCookieFlag(r *http.Request) CookieFlag {
	return CookieFlag{r: r}
}

func (f CookieFlag) AdminModeSet() bool {
	c, err := f.r.Cookie(AdminModeCookie)
	return err == nil && c.Value == "true"
}
