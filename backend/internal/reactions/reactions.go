// Package reactions remembers which visitors already liked a thread so a
// like is counted at most once per visitor within the TTL.
package reactions

import (
	"context"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/unforum-dev/unforum/shared/domain"
	"golang.org/x/crypto/blake2b"
)

type Guard interface {
	// FirstLike records the like and reports whether it is the visitor's
	// first on this thread.
	FirstLike(ctx context.Context, threadId domain.ThreadId, visitor string) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}

// Hasher turns visitor keys (user ids, IPs) into opaque keyed digests so raw
// addresses never reach the guard's storage.
type Hasher struct {
	key []byte
}

func NewHasher(key string) (*Hasher, error) {
	if len(key) > blake2b.Size {
		return nil, fmt.Errorf("reactions key longer than %d bytes", blake2b.Size)
	}
	return &Hasher{key: []byte(key)}, nil
}

func (h *Hasher) Sum(threadId domain.ThreadId, visitor string) string {
	mac, err := blake2b.New256(h.key)
	if err != nil {
		// key length is checked in NewHasher
		panic(err)
	}
	mac.Write([]byte(threadId))
	mac.Write([]byte{0})
	mac.Write([]byte(visitor))
	return hex.EncodeToString(mac.Sum(nil))
}

// MemoryGuard keeps likes in process memory. Entries expire after ttl.
type MemoryGuard struct {
	mu     sync.Mutex
	hasher *Hasher
	ttl    time.Duration
	seen   map[string]time.Time
	now    func() time.Time
}

func NewMemoryGuard(hasher *Hasher, ttl time.Duration) *MemoryGuard {
	return &MemoryGuard{hasher: hasher, ttl: ttl, seen: make(map[string]time.Time), now: time.Now}
}

func (g *MemoryGuard) FirstLike(ctx context.Context, threadId domain.ThreadId, visitor string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	key := g.hasher.Sum(threadId, visitor)
	now := g.now()

	g.mu.Lock()
	defer g.mu.Unlock()
	if expires, ok := g.seen[key]; ok && now.Before(expires) {
		return false, nil
	}
	g.seen[key] = now.Add(g.ttl)
	if len(g.seen)%1024 == 0 {
		g.evict(now)
	}
	return true, nil
}

func (g *MemoryGuard) evict(now time.Time) {
	for k, expires := range g.seen {
		if !now.Before(expires) {
			delete(g.seen, k)
		}
	}
}

func (g *MemoryGuard) Ping(ctx context.Context) error { return ctx.Err() }

func (g *MemoryGuard) Close() error { return nil }
