// Package identity adapts the hosted identity provider to the forum: it
// follows the provider's session stream and derives the admin flag.
package identity

import (
	"strings"
	"sync"
	"time"

	"github.com/unforum-dev/unforum/shared/domain"
)

const (
	TokenCookie     = "idToken"
	AdminModeCookie = "forum_admin_mode"
)

// User is the provider's view of the signed-in visitor.
type User struct {
	Id             domain.UserId `json:"id"`
	DisplayName    string        `json:"displayName"`
	AvatarURL      string        `json:"avatarUrl"`
	Email          string        `json:"email"`
	ProviderEmails []string      `json:"providerEmails,omitempty"`
}

// Snapshot copies the identity into an author record for a new document.
func (u *User) Snapshot(now time.Time) domain.Author {
	a := domain.Author{
		Id:       u.Id,
		Name:     u.DisplayName,
		Avatar:   u.AvatarURL,
		Role:     domain.RoleUser,
		JoinedAt: domain.FormatTimestamp(now),
	}
	if strings.TrimSpace(a.Name) == "" {
		a.Name = domain.GuestName
	}
	if a.Avatar == "" {
		a.Avatar = domain.DefaultAvatar
	}
	return a
}

func (u *User) clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.ProviderEmails = append([]string(nil), u.ProviderEmails...)
	return &c
}

// Provider emits the current identity on subscription and again on every
// session change. nil means anonymous.
type Provider interface {
	Subscribe(fn func(*User)) (unsubscribe func())
}

// FlagSource reports the client-persisted admin mode flag.
type FlagSource interface {
	AdminModeSet() bool
}

type StaticFlag bool

func (f StaticFlag) AdminModeSet() bool { return bool(f) }

// Adapter holds the latest identity emitted by a Provider.
type Adapter struct {
	mu          sync.RWMutex
	user        *User
	resolved    bool
	policy      AdminPolicy
	flag        FlagSource
	unsubscribe func()
}

func NewAdapter(p Provider, policy AdminPolicy, flag FlagSource) *Adapter {
	if flag == nil {
		flag = StaticFlag(false)
	}
	a := &Adapter{policy: policy, flag: flag}
	if p != nil {
		a.unsubscribe = p.Subscribe(a.set)
	} else {
		a.resolved = true
	}
	return a
}

// Anonymous returns an adapter with no identity.
func Anonymous(policy AdminPolicy, flag FlagSource) *Adapter {
	return NewAdapter(nil, policy, flag)
}

func (a *Adapter) set(u *User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = u.clone()
	a.resolved = true
}

// CurrentUser returns a copy of the signed-in user, or nil for anonymous.
func (a *Adapter) CurrentUser() *User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user.clone()
}

// Resolved reports whether the provider has emitted at least once.
func (a *Adapter) Resolved() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.resolved
}

func (a *Adapter) IsAdmin() bool {
	a.mu.RLock()
	u := a.user
	a.mu.RUnlock()
	return a.policy.IsAdmin(u, a.flag.AdminModeSet())
}

func (a *Adapter) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}
