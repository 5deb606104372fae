package view

import (
	"time"

	"github.com/unforum-dev/unforum/shared/domain"
)

// PostWindow is the visible prefix of a thread's posts.
type PostWindow struct {
	Layout    domain.CategoryType
	Posts     []PostItem
	Total     int
	Remaining int
	// NextLimit is the window size after one more "show more".
	NextLimit int
	Empty     string
}

func (w PostWindow) HasMore() bool {
	return w.Remaining > 0
}

// NewPostWindow shows the first limit posts, growing by step per "show
// more". limit is clamped to at least step.
func NewPostWindow(posts []domain.Post, layout domain.CategoryType, limit, step int, md Renderer, now time.Time) PostWindow {
	if step <= 0 {
		step = DefaultPostWindow
	}
	if limit < step {
		limit = step
	}
	visible := posts
	if len(visible) > limit {
		visible = visible[:limit]
	}

	w := PostWindow{
		Layout:    layout,
		Posts:     make([]PostItem, len(visible)),
		Total:     len(posts),
		Remaining: len(posts) - len(visible),
		NextLimit: limit + step,
		Empty:     EmptyPostsMessage(layout),
	}
	for i, p := range visible {
		w.Posts[i] = PostItem{
			Post:    p,
			Author:  AuthorName(p.Author),
			Posted:  Ago(p.CreatedAt, now),
			Body:    md.Render(p.Content),
			Chapter: i + 1,
		}
	}
	return w
}
