package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"github.com/unforum-dev/unforum/backend/internal/service"
	"github.com/unforum-dev/unforum/shared/config"
	"github.com/unforum-dev/unforum/shared/domain"
	"github.com/unforum-dev/unforum/shared/identity"
	mw "github.com/unforum-dev/unforum/shared/middleware"
)

const testSecret = "handler_test_secret"

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

var (
	alice = identity.User{Id: "u-alice", DisplayName: "Alice", AvatarURL: "https://a/alice.png", Email: "alice@example.com"}
	admin = identity.User{Id: "u-admin", DisplayName: "Admin", Email: "admin@unforum.dev"}
)

type MockForum struct {
	ListThreadsFunc         func(ctx context.Context) []domain.Thread
	GetThreadFunc           func(ctx context.Context, id domain.ThreadId) *domain.Thread
	ListPostsByThreadFunc   func(ctx context.Context, threadId domain.ThreadId) []domain.Post
	ListThreadsByAuthorFunc func(ctx context.Context, authorId domain.UserId) []domain.Thread
	CreateThreadFunc        func(ctx context.Context, data domain.ThreadCreationData) (domain.ThreadId, error)
	CreatePostFunc          func(ctx context.Context, data domain.PostCreationData) (domain.PostId, error)
	IncrementLikesFunc      func(ctx context.Context, id domain.ThreadId)
	IncrementViewsFunc      func(ctx context.Context, id domain.ThreadId)
	DeleteThreadFunc        func(ctx context.Context, id domain.ThreadId) error
	DeleteAllDataFunc       func(ctx context.Context) bool
	StatsFunc               func(ctx context.Context) (*service.Stats, error)
}

func (m *MockForum) ListThreads(ctx context.Context) []domain.Thread {
	if m.ListThreadsFunc != nil {
		return m.ListThreadsFunc(ctx)
	}
	return nil
}

func (m *MockForum) GetThread(ctx context.Context, id domain.ThreadId) *domain.Thread {
	if m.GetThreadFunc != nil {
		return m.GetThreadFunc(ctx, id)
	}
	return nil
}

func (m *MockForum) ListPostsByThread(ctx context.Context, threadId domain.ThreadId) []domain.Post {
	if m.ListPostsByThreadFunc != nil {
		return m.ListPostsByThreadFunc(ctx, threadId)
	}
	return nil
}

func (m *MockForum) ListThreadsByAuthor(ctx context.Context, authorId domain.UserId) []domain.Thread {
	if m.ListThreadsByAuthorFunc != nil {
		return m.ListThreadsByAuthorFunc(ctx, authorId)
	}
	return nil
}

func (m *MockForum) CreateThread(ctx context.Context, data domain.ThreadCreationData) (domain.ThreadId, error) {
	if m.CreateThreadFunc != nil {
		return m.CreateThreadFunc(ctx, data)
	}
	return "", nil
}

func (m *MockForum) CreatePost(ctx context.Context, data domain.PostCreationData) (domain.PostId, error) {
	if m.CreatePostFunc != nil {
		return m.CreatePostFunc(ctx, data)
	}
	return "", nil
}

func (m *MockForum) IncrementThreadLikes(ctx context.Context, id domain.ThreadId) {
	if m.IncrementLikesFunc != nil {
		m.IncrementLikesFunc(ctx, id)
	}
}

func (m *MockForum) IncrementThreadViews(ctx context.Context, id domain.ThreadId) {
	if m.IncrementViewsFunc != nil {
		m.IncrementViewsFunc(ctx, id)
	}
}

func (m *MockForum) DeleteThread(ctx context.Context, id domain.ThreadId) error {
	if m.DeleteThreadFunc != nil {
		return m.DeleteThreadFunc(ctx, id)
	}
	return nil
}

func (m *MockForum) DeleteAllData(ctx context.Context) bool {
	if m.DeleteAllDataFunc != nil {
		return m.DeleteAllDataFunc(ctx)
	}
	return true
}

func (m *MockForum) Stats(ctx context.Context) (*service.Stats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return &service.Stats{}, nil
}

type MockSeeder struct {
	PopularFunc func(ctx context.Context) bool
	UnForumFunc func(ctx context.Context) bool
}

func (m *MockSeeder) SeedPopularThreads(ctx context.Context) bool {
	if m.PopularFunc != nil {
		return m.PopularFunc(ctx)
	}
	return true
}

func (m *MockSeeder) SeedUnForumData(ctx context.Context) bool {
	if m.UnForumFunc != nil {
		return m.UnForumFunc(ctx)
	}
	return true
}

type MockGuard struct {
	FirstLikeFunc func(ctx context.Context, threadId domain.ThreadId, visitor string) (bool, error)
}

func (m *MockGuard) FirstLike(ctx context.Context, threadId domain.ThreadId, visitor string) (bool, error) {
	if m.FirstLikeFunc != nil {
		return m.FirstLikeFunc(ctx, threadId, visitor)
	}
	return true, nil
}

func (m *MockGuard) Ping(ctx context.Context) error { return nil }
func (m *MockGuard) Close() error                   { return nil }

type MockPinger struct {
	err error
}

func (m *MockPinger) Ping(ctx context.Context) error { return m.err }

type testEnv struct {
	forum    *MockForum
	seeder   *MockSeeder
	guard    *MockGuard
	pinger   *MockPinger
	cfg      *config.Config
	verifier *identity.Verifier
	h        *Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{}
	cfg.Public.Admin.Email = admin.Email
	env := &testEnv{
		forum:    &MockForum{},
		seeder:   &MockSeeder{},
		guard:    &MockGuard{},
		pinger:   &MockPinger{},
		cfg:      cfg,
		verifier: identity.NewVerifier(testSecret),
	}
	env.h = New(env.forum, env.seeder, env.guard, env.pinger, cfg)
	env.h.now = func() time.Time { return fixedNow }
	return env
}

// router mounts the handlers behind the identity middleware, without the
// access gates the production router adds.
func (e *testEnv) router() http.Handler {
	auth := mw.NewAuth(e.verifier, identity.AdminPolicy{
		Email:              e.cfg.Public.Admin.Email,
		AllowLocalOverride: e.cfg.Public.Admin.AllowLocalOverride,
	})
	r := chi.NewRouter()
	r.Use(auth.Identify())
	r.Get("/health", e.h.Health)
	r.Get("/v1/session", e.h.Session)
	r.Get("/v1/categories", e.h.Categories)
	r.Get("/v1/threads", e.h.ListThreads)
	r.Post("/v1/threads", e.h.CreateThread)
	r.Get("/v1/threads/{threadId}", e.h.GetThread)
	r.Delete("/v1/threads/{threadId}", e.h.DeleteThread)
	r.Get("/v1/threads/{threadId}/posts", e.h.ListPosts)
	r.Post("/v1/threads/{threadId}/posts", e.h.CreatePost)
	r.Post("/v1/threads/{threadId}/like", e.h.LikeThread)
	r.Post("/v1/threads/{threadId}/view", e.h.ViewThread)
	r.Get("/v1/me/threads", e.h.MyThreads)
	r.Post("/v1/admin/seed/popular", e.h.SeedPopular)
	r.Post("/v1/admin/seed/unforum", e.h.SeedUnForum)
	r.Post("/v1/admin/reset", e.h.Reset)
	r.Get("/v1/admin/stats", e.h.Stats)
	r.Put("/v1/admin-mode", e.h.EnableAdminMode)
	r.Delete("/v1/admin-mode", e.h.DisableAdminMode)
	return r
}

func (e *testEnv) do(t *testing.T, method, path string, body any, user *identity.User) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "203.0.113.7:5555"
	if user != nil {
		token, err := e.verifier.Issue(*user, time.Hour)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: identity.TokenCookie, Value: token})
	}
	rr := httptest.NewRecorder()
	e.router().ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

var errStore = errors.New("store unavailable")

func newRecorder() *httptest.ResponseRecorder { return httptest.NewRecorder() }
