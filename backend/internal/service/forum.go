package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/unforum-dev/unforum/shared/domain"
	internal_errors "github.com/unforum-dev/unforum/shared/errors"
	"github.com/unforum-dev/unforum/shared/logger"
	"github.com/unforum-dev/unforum/shared/middleware/metrics"
	"golang.org/x/sync/errgroup"
)

const (
	ErrorPostId    domain.PostId = "error-post"
	SystemAuthorId domain.UserId = "system"

	deleteAllWorkers = 16
)

var softFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: metrics.Namespace,
		Name:      "dal_soft_failures_total",
		Help:      "Store reads that failed and were answered with an empty result",
	},
	[]string{"op"},
)

type ForumService interface {
	ListThreads(ctx context.Context) []domain.Thread
	GetThread(ctx context.Context, id domain.ThreadId) *domain.Thread
	ListPostsByThread(ctx context.Context, threadId domain.ThreadId) []domain.Post
	ListThreadsByAuthor(ctx context.Context, authorId domain.UserId) []domain.Thread
	CreateThread(ctx context.Context, data domain.ThreadCreationData) (domain.ThreadId, error)
	CreatePost(ctx context.Context, data domain.PostCreationData) (domain.PostId, error)
	IncrementThreadLikes(ctx context.Context, id domain.ThreadId)
	IncrementThreadViews(ctx context.Context, id domain.ThreadId)
	DeleteThread(ctx context.Context, id domain.ThreadId) error
	DeleteAllData(ctx context.Context) bool
	Stats(ctx context.Context) (*Stats, error)
}

// Storage is a document store with two collections, threads and posts.
// Implementations return errors.ErrNotFound for missing documents.
type Storage interface {
	InsertThread(ctx context.Context, doc domain.ThreadDocument) (domain.ThreadId, error)
	GetThread(ctx context.Context, id domain.ThreadId) (*domain.ThreadDocument, error)
	// ListThreads returns matching threads ordered by createdAt descending.
	ListThreads(ctx context.Context, filter domain.ThreadFilter) ([]domain.ThreadDocument, error)
	DeleteThread(ctx context.Context, id domain.ThreadId) error
	// IncrementThread adds delta to a counter as a single store-side operation.
	IncrementThread(ctx context.Context, id domain.ThreadId, field domain.CounterField, delta int) error

	InsertPost(ctx context.Context, doc domain.PostDocument) (domain.PostId, error)
	// ListPosts returns the thread's posts in no particular order.
	ListPosts(ctx context.Context, threadId domain.ThreadId) ([]domain.PostDocument, error)
	DeletePost(ctx context.Context, id domain.PostId) error

	ThreadIds(ctx context.Context) ([]domain.ThreadId, error)
	PostIds(ctx context.Context) ([]domain.PostId, error)
}

// AtomicPostCreator is implemented by stores that can insert a post and bump
// the parent's replyCount in one transaction.
type AtomicPostCreator interface {
	InsertPostWithReply(ctx context.Context, doc domain.PostDocument) (domain.PostId, error)
}

type Stats struct {
	Threads    int
	Posts      int
	Likes      int
	Views      int
	ByCategory map[domain.CategoryType]int
}

type Forum struct {
	storage          Storage
	legacyReplyCount bool
	now              func() time.Time
}

// NewForum builds the data access layer. With legacyReplyCount the post insert
// and the replyCount increment always run as two writes.
func NewForum(storage Storage, legacyReplyCount bool) *Forum {
	return &Forum{storage: storage, legacyReplyCount: legacyReplyCount, now: time.Now}
}

func (f *Forum) softFail(op string, err error, args ...any) {
	softFailures.WithLabelValues(op).Inc()
	logger.Log.Error("store read failed", append([]any{"op", op, "error", err}, args...)...)
}

func (f *Forum) ListThreads(ctx context.Context) []domain.Thread {
	docs, err := f.storage.ListThreads(ctx, domain.ThreadFilter{})
	if err != nil {
		f.softFail("list_threads", err)
		return []domain.Thread{}
	}
	return f.toThreads(docs)
}

func (f *Forum) GetThread(ctx context.Context, id domain.ThreadId) *domain.Thread {
	doc, err := f.storage.GetThread(ctx, id)
	if err != nil {
		if !errors.Is(err, internal_errors.ErrNotFound) {
			f.softFail("get_thread", err, "thread_id", id)
		}
		return nil
	}
	if doc == nil {
		return nil
	}
	thread := toThread(*doc, f.now())
	return &thread
}

// ListPostsByThread returns posts oldest first. On a store failure it returns
// a single synthetic post carrying the error text so the failure is visible.
func (f *Forum) ListPostsByThread(ctx context.Context, threadId domain.ThreadId) []domain.Post {
	docs, err := f.storage.ListPosts(ctx, threadId)
	if err != nil {
		f.softFail("list_posts", err, "thread_id", threadId)
		now := domain.FormatTimestamp(f.now())
		return []domain.Post{{
			Id:        ErrorPostId,
			ThreadId:  threadId,
			Content:   "DEBUG ERROR: Failed to load posts. " + err.Error(),
			AuthorId:  SystemAuthorId,
			Author:    domain.Author{Id: SystemAuthorId, Name: "System", Role: domain.RoleAdmin, JoinedAt: now},
			CreatedAt: now,
			UpdatedAt: now,
		}}
	}

	now := f.now()
	posts := make([]domain.Post, 0, len(docs))
	for _, doc := range docs {
		posts = append(posts, toPost(doc, now))
	}
	// canonical timestamps have a fixed width, so string order is time order
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt < posts[j].CreatedAt
	})
	return posts
}

func (f *Forum) ListThreadsByAuthor(ctx context.Context, authorId domain.UserId) []domain.Thread {
	if authorId == "" {
		return []domain.Thread{}
	}
	docs, err := f.storage.ListThreads(ctx, domain.ThreadFilter{AuthorId: authorId})
	if err != nil {
		f.softFail("list_threads_by_author", err, "author_id", authorId)
		return []domain.Thread{}
	}
	return f.toThreads(docs)
}

func (f *Forum) CreateThread(ctx context.Context, data domain.ThreadCreationData) (domain.ThreadId, error) {
	if strings.TrimSpace(data.Title) == "" {
		return "", internal_errors.BadRequest("Title is required")
	}
	if strings.TrimSpace(data.Content) == "" {
		return "", internal_errors.BadRequest("Content is required")
	}
	if data.Category.Id == "" {
		return "", internal_errors.BadRequest("Category is required")
	}
	if data.Author.Id == "" {
		return "", internal_errors.BadRequest("Author is required")
	}

	now := f.now().UTC()
	tags := data.Tags
	if tags == nil {
		tags = domain.Tags{}
	}
	id, err := f.storage.InsertThread(ctx, domain.ThreadDocument{
		Title:      data.Title,
		Content:    data.Content,
		AuthorId:   data.Author.Id,
		Author:     data.Author,
		CategoryId: data.Category.Id,
		Category:   data.Category,
		Tags:       tags,
		CreatedAt:  &now,
		UpdatedAt:  &now,
	})
	if err != nil {
		return "", fmt.Errorf("create thread: %w", err)
	}
	return id, nil
}

// CreatePost stores the post and then counts it on the parent thread. When
// the store supports it both writes share a transaction; otherwise a failed
// increment after a successful insert leaves the post uncounted.
func (f *Forum) CreatePost(ctx context.Context, data domain.PostCreationData) (domain.PostId, error) {
	if data.ThreadId == "" {
		return "", internal_errors.BadRequest("Thread is required")
	}
	if strings.TrimSpace(data.Content) == "" {
		return "", internal_errors.BadRequest("Content is required")
	}
	if data.Author.Id == "" {
		return "", internal_errors.BadRequest("Author is required")
	}

	now := f.now().UTC()
	doc := domain.PostDocument{
		ThreadId:  data.ThreadId,
		Content:   data.Content,
		AuthorId:  data.Author.Id,
		Author:    data.Author,
		Likes:     data.Likes,
		CreatedAt: &now,
		UpdatedAt: &now,
	}

	if atomic, ok := f.storage.(AtomicPostCreator); ok && !f.legacyReplyCount {
		id, err := atomic.InsertPostWithReply(ctx, doc)
		if err != nil {
			return "", fmt.Errorf("create post: %w", err)
		}
		return id, nil
	}

	id, err := f.storage.InsertPost(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("create post: %w", err)
	}
	if err := f.storage.IncrementThread(ctx, data.ThreadId, domain.FieldReplyCount, 1); err != nil {
		return "", fmt.Errorf("count reply for post %s: %w", id, err)
	}
	return id, nil
}

func (f *Forum) IncrementThreadLikes(ctx context.Context, id domain.ThreadId) {
	f.increment(ctx, id, domain.FieldLikes)
}

func (f *Forum) IncrementThreadViews(ctx context.Context, id domain.ThreadId) {
	f.increment(ctx, id, domain.FieldViewCount)
}

func (f *Forum) increment(ctx context.Context, id domain.ThreadId, field domain.CounterField) {
	if err := f.storage.IncrementThread(ctx, id, field, 1); err != nil {
		logger.Log.Error("failed to increment thread counter", "thread_id", id, "field", field, "error", err)
	}
}

// DeleteThread removes the thread document only. Its posts stay in the store.
func (f *Forum) DeleteThread(ctx context.Context, id domain.ThreadId) error {
	if err := f.storage.DeleteThread(ctx, id); err != nil {
		return fmt.Errorf("delete thread %s: %w", id, err)
	}
	return nil
}

// DeleteAllData removes every thread and post one document at a time.
func (f *Forum) DeleteAllData(ctx context.Context) bool {
	threadIds, err := f.storage.ThreadIds(ctx)
	if err != nil {
		logger.Log.Error("reset: failed to list threads", "error", err)
		return false
	}
	postIds, err := f.storage.PostIds(ctx)
	if err != nil {
		logger.Log.Error("reset: failed to list posts", "error", err)
		return false
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(deleteAllWorkers)
	for _, id := range threadIds {
		g.Go(func() error { return f.storage.DeleteThread(gctx, id) })
	}
	for _, id := range postIds {
		g.Go(func() error { return f.storage.DeletePost(gctx, id) })
	}
	if err := g.Wait(); err != nil {
		logger.Log.Error("reset: failed to delete document", "error", err)
		return false
	}
	logger.Log.Info("reset: all data deleted", "threads", len(threadIds), "posts", len(postIds))
	return true
}

func (f *Forum) Stats(ctx context.Context) (*Stats, error) {
	docs, err := f.storage.ListThreads(ctx, domain.ThreadFilter{})
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	postIds, err := f.storage.PostIds(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	stats := &Stats{Threads: len(docs), Posts: len(postIds), ByCategory: map[domain.CategoryType]int{}}
	for _, doc := range docs {
		stats.Likes += doc.Likes
		stats.Views += doc.ViewCount
		stats.ByCategory[doc.Category.Layout()]++
	}
	return stats, nil
}

func (f *Forum) toThreads(docs []domain.ThreadDocument) []domain.Thread {
	now := f.now()
	threads := make([]domain.Thread, 0, len(docs))
	for _, doc := range docs {
		threads = append(threads, toThread(doc, now))
	}
	return threads
}

func toThread(doc domain.ThreadDocument, now time.Time) domain.Thread {
	tags := doc.Tags
	if tags == nil {
		tags = domain.Tags{}
	}
	return domain.Thread{
		Id:         doc.Id,
		Title:      doc.Title,
		Content:    doc.Content,
		AuthorId:   doc.AuthorId,
		Author:     doc.Author,
		CategoryId: doc.CategoryId,
		Category:   doc.Category,
		Tags:       tags,
		ReplyCount: doc.ReplyCount,
		ViewCount:  doc.ViewCount,
		Likes:      doc.Likes,
		CreatedAt:  domain.CanonicalTimestamp(doc.CreatedAt, now),
		UpdatedAt:  domain.CanonicalTimestamp(doc.UpdatedAt, now),
	}
}

func toPost(doc domain.PostDocument, now time.Time) domain.Post {
	return domain.Post{
		Id:        doc.Id,
		ThreadId:  doc.ThreadId,
		Content:   doc.Content,
		AuthorId:  doc.AuthorId,
		Author:    doc.Author,
		Likes:     doc.Likes,
		CreatedAt: domain.CanonicalTimestamp(doc.CreatedAt, now),
		UpdatedAt: domain.CanonicalTimestamp(doc.UpdatedAt, now),
	}
}
