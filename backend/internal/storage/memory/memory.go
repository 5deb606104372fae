// Package memory is an in-process document store used for development and
// tests. Documents are copied on the way in and out.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/unforum-dev/unforum/shared/domain"
	internal_errors "github.com/unforum-dev/unforum/shared/errors"
)

type Storage struct {
	mu      sync.RWMutex
	threads map[domain.ThreadId]domain.ThreadDocument
	posts   map[domain.PostId]domain.PostDocument
}

func New() *Storage {
	return &Storage{
		threads: make(map[domain.ThreadId]domain.ThreadDocument),
		posts:   make(map[domain.PostId]domain.PostDocument),
	}
}

func (s *Storage) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Storage) InsertThread(ctx context.Context, doc domain.ThreadDocument) (domain.ThreadId, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	doc = cloneThread(doc)
	doc.Id = uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.threads[doc.Id] = doc
	return doc.Id, nil
}

func (s *Storage) GetThread(ctx context.Context, id domain.ThreadId) (*domain.ThreadDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.threads[id]
	if !ok {
		return nil, internal_errors.ErrNotFound
	}
	doc = cloneThread(doc)
	return &doc, nil
}

func (s *Storage) ListThreads(ctx context.Context, filter domain.ThreadFilter) ([]domain.ThreadDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	docs := make([]domain.ThreadDocument, 0, len(s.threads))
	for _, doc := range s.threads {
		if filter.AuthorId != "" && doc.AuthorId != filter.AuthorId {
			continue
		}
		docs = append(docs, cloneThread(doc))
	}
	s.mu.RUnlock()

	sort.SliceStable(docs, func(i, j int) bool {
		a, b := timeOf(docs[i].CreatedAt), timeOf(docs[j].CreatedAt)
		if a.Equal(b) {
			return docs[i].Id < docs[j].Id
		}
		return a.After(b)
	})
	return docs, nil
}

func (s *Storage) DeleteThread(ctx context.Context, id domain.ThreadId) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.threads, id)
	return nil
}

func (s *Storage) IncrementThread(ctx context.Context, id domain.ThreadId, field domain.CounterField, delta int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.threads[id]
	if !ok {
		return fmt.Errorf("increment %s on thread %s: %w", field, id, internal_errors.ErrNotFound)
	}
	switch field {
	case domain.FieldReplyCount:
		doc.ReplyCount += delta
	case domain.FieldViewCount:
		doc.ViewCount += delta
	case domain.FieldLikes:
		doc.Likes += delta
	default:
		return fmt.Errorf("unknown counter %q", field)
	}
	s.threads[id] = doc
	return nil
}

func (s *Storage) InsertPost(ctx context.Context, doc domain.PostDocument) (domain.PostId, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	doc = clonePost(doc)
	doc.Id = uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[doc.Id] = doc
	return doc.Id, nil
}

func (s *Storage) ListPosts(ctx context.Context, threadId domain.ThreadId) ([]domain.PostDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := []domain.PostDocument{}
	for _, doc := range s.posts {
		if doc.ThreadId == threadId {
			docs = append(docs, clonePost(doc))
		}
	}
	return docs, nil
}

func (s *Storage) DeletePost(ctx context.Context, id domain.PostId) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.posts, id)
	return nil
}

func (s *Storage) ThreadIds(ctx context.Context) ([]domain.ThreadId, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]domain.ThreadId, 0, len(s.threads))
	for id := range s.threads {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Storage) PostIds(ctx context.Context) ([]domain.PostId, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]domain.PostId, 0, len(s.posts))
	for id := range s.posts {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Storage) Close() error {
	return nil
}

func timeOf(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func cloneThread(doc domain.ThreadDocument) domain.ThreadDocument {
	doc.Tags = append(domain.Tags(nil), doc.Tags...)
	doc.CreatedAt = cloneTime(doc.CreatedAt)
	doc.UpdatedAt = cloneTime(doc.UpdatedAt)
	return doc
}

func clonePost(doc domain.PostDocument) domain.PostDocument {
	doc.CreatedAt = cloneTime(doc.CreatedAt)
	doc.UpdatedAt = cloneTime(doc.UpdatedAt)
	return doc
}
