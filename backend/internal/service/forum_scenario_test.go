package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unforum-dev/unforum/backend/internal/storage/memory"
	"github.com/unforum-dev/unforum/shared/domain"
)

func TestCreateAndReplyScenario(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	forum := NewForum(store, false)
	clock := fixedNow
	forum.now = func() time.Time { return clock }

	category, _ := domain.FindCategory("c1")
	id, err := forum.CreateThread(ctx, domain.ThreadCreationData{
		Title:    "Best films of the decade",
		Content:  "Discuss.",
		Author:   testAuthor,
		Category: category,
		Tags:     domain.Tags{"films"},
	})
	require.NoError(t, err)

	thread := forum.GetThread(ctx, id)
	require.NotNil(t, thread)
	assert.Equal(t, 0, thread.ReplyCount)
	assert.Equal(t, 0, thread.ViewCount)
	assert.Equal(t, 0, thread.Likes)
	assert.Equal(t, "2024-03-01T12:00:00.000Z", thread.CreatedAt)

	for i, content := range []string{"first", "second"} {
		clock = fixedNow.Add(time.Duration(i+1) * time.Minute)
		_, err := forum.CreatePost(ctx, domain.PostCreationData{ThreadId: id, Content: content, Author: testAuthor})
		require.NoError(t, err)
	}

	thread = forum.GetThread(ctx, id)
	require.NotNil(t, thread)
	assert.Equal(t, 2, thread.ReplyCount)

	posts := forum.ListPostsByThread(ctx, id)
	require.Len(t, posts, 2)
	assert.Equal(t, "first", posts[0].Content)
	assert.Equal(t, "second", posts[1].Content)

	mine := forum.ListThreadsByAuthor(ctx, testAuthor.Id)
	require.Len(t, mine, 1)
	assert.Equal(t, id, mine[0].Id)

	// deleting the thread leaves its posts behind
	require.NoError(t, forum.DeleteThread(ctx, id))
	assert.Nil(t, forum.GetThread(ctx, id))
	assert.Len(t, forum.ListPostsByThread(ctx, id), 2)

	assert.True(t, forum.DeleteAllData(ctx))
	assert.Empty(t, forum.ListPostsByThread(ctx, id))
	assert.Empty(t, forum.ListThreads(ctx))
}

func TestConcurrentLikesAreNotLost(t *testing.T) {
	ctx := context.Background()
	forum := NewForum(memory.New(), false)
	category, _ := domain.FindCategory("c2")
	id, err := forum.CreateThread(ctx, domain.ThreadCreationData{Title: "t", Content: "c", Author: testAuthor, Category: category})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			forum.IncrementThreadLikes(ctx, id)
		}()
	}
	wg.Wait()

	thread := forum.GetThread(ctx, id)
	require.NotNil(t, thread)
	assert.Equal(t, 2, thread.Likes)
}
