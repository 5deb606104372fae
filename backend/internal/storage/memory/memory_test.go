package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unforum-dev/unforum/backend/internal/service"
	"github.com/unforum-dev/unforum/shared/domain"
	internal_errors "github.com/unforum-dev/unforum/shared/errors"
)

var (
	_ service.Storage = (*Storage)(nil)
	_ service.Storage = New()
)

func at(minute int) *time.Time {
	t := time.Date(2024, 1, 1, 0, minute, 0, 0, time.UTC)
	return &t
}

func TestThreadLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()

	id, err := s.InsertThread(ctx, domain.ThreadDocument{Title: "hello", AuthorId: "u1", Tags: domain.Tags{"a"}, CreatedAt: at(1)})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := s.GetThread(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, doc.Id)
	assert.Equal(t, "hello", doc.Title)

	// returned documents are copies
	doc.Tags[0] = "mutated"
	again, err := s.GetThread(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.Tags{"a"}, again.Tags)

	require.NoError(t, s.DeleteThread(ctx, id))
	_, err = s.GetThread(ctx, id)
	assert.ErrorIs(t, err, internal_errors.ErrNotFound)
}

func TestListThreadsOrderAndFilter(t *testing.T) {
	ctx := context.Background()
	s := New()

	old, _ := s.InsertThread(ctx, domain.ThreadDocument{AuthorId: "u1", CreatedAt: at(1)})
	newest, _ := s.InsertThread(ctx, domain.ThreadDocument{AuthorId: "u2", CreatedAt: at(3)})
	mid, _ := s.InsertThread(ctx, domain.ThreadDocument{AuthorId: "u1", CreatedAt: at(2)})

	all, err := s.ListThreads(ctx, domain.ThreadFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{newest, mid, old}, []string{all[0].Id, all[1].Id, all[2].Id})

	mine, err := s.ListThreads(ctx, domain.ThreadFilter{AuthorId: "u1"})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, mid, mine[0].Id)
	assert.Equal(t, old, mine[1].Id)
}

func TestIncrementThread(t *testing.T) {
	ctx := context.Background()
	s := New()
	id, _ := s.InsertThread(ctx, domain.ThreadDocument{})

	require.NoError(t, s.IncrementThread(ctx, id, domain.FieldReplyCount, 1))
	require.NoError(t, s.IncrementThread(ctx, id, domain.FieldViewCount, 3))
	require.NoError(t, s.IncrementThread(ctx, id, domain.FieldLikes, 2))

	doc, _ := s.GetThread(ctx, id)
	assert.Equal(t, 1, doc.ReplyCount)
	assert.Equal(t, 3, doc.ViewCount)
	assert.Equal(t, 2, doc.Likes)

	err := s.IncrementThread(ctx, "missing", domain.FieldLikes, 1)
	assert.ErrorIs(t, err, internal_errors.ErrNotFound)
	assert.Error(t, s.IncrementThread(ctx, id, domain.CounterField("title"), 1))
}

func TestConcurrentLikes(t *testing.T) {
	ctx := context.Background()
	s := New()
	id, _ := s.InsertThread(ctx, domain.ThreadDocument{Likes: 7})

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.IncrementThread(ctx, id, domain.FieldLikes, 1))
		}()
	}
	wg.Wait()

	doc, _ := s.GetThread(ctx, id)
	assert.Equal(t, 9, doc.Likes)
}

func TestPosts(t *testing.T) {
	ctx := context.Background()
	s := New()

	p1, err := s.InsertPost(ctx, domain.PostDocument{ThreadId: "t1", Content: "one"})
	require.NoError(t, err)
	_, err = s.InsertPost(ctx, domain.PostDocument{ThreadId: "t1", Content: "two"})
	require.NoError(t, err)
	_, err = s.InsertPost(ctx, domain.PostDocument{ThreadId: "t2", Content: "other"})
	require.NoError(t, err)

	posts, err := s.ListPosts(ctx, "t1")
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	empty, err := s.ListPosts(ctx, "none")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	ids, err := s.PostIds(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 3)

	require.NoError(t, s.DeletePost(ctx, p1))
	ids, _ = s.PostIds(ctx)
	assert.Len(t, ids, 2)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := New()

	_, err := s.InsertThread(ctx, domain.ThreadDocument{})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.ListThreads(ctx, domain.ThreadFilter{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Ping(ctx), context.Canceled)
}
