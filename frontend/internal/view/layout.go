package view

import (
	"fmt"
	"html/template"
	"time"

	"github.com/unforum-dev/unforum/shared/domain"
)

// Renderer turns user content into safe HTML.
type Renderer interface {
	Render(text string) template.HTML
}

// ThreadCard is a thread prepared for the list layouts.
type ThreadCard struct {
	domain.Thread
	Layout    domain.CategoryType
	Excerpt   string
	Author    string
	Category  string
	Posted    string
	CanDelete bool
}

// Chapters counts the opening post as the first chapter.
func (c ThreadCard) Chapters() int {
	return c.ReplyCount + 1
}

func NewThreadCard(t domain.Thread, now time.Time) ThreadCard {
	return ThreadCard{
		Thread:   t,
		Layout:   t.Category.Layout(),
		Author:   AuthorName(t.Author),
		Category: CategoryName(t.Category),
		Posted:   Ago(t.CreatedAt, now),
	}
}

func ThreadCards(threads []domain.Thread, now time.Time) []ThreadCard {
	cards := make([]ThreadCard, len(threads))
	for i, t := range threads {
		cards[i] = NewThreadCard(t, now)
	}
	return cards
}

// PostItem is a post prepared for the detail page.
type PostItem struct {
	domain.Post
	Author  string
	Posted  string
	Body    template.HTML
	Chapter int
}

func (p PostItem) Label(layout domain.CategoryType) string {
	if layout == domain.CategoryStory {
		return fmt.Sprintf("Chapter %d", p.Chapter)
	}
	return p.Author
}

// Ago formats a canonical timestamp relative to now, falling back to the
// raw text when it does not parse.
func Ago(ts string, now time.Time) string {
	t, err := domain.ParseTimestamp(ts)
	if err != nil {
		return ts
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "less than a minute ago"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute") + " ago"
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour") + " ago"
	case d < 30*24*time.Hour:
		return plural(int(d/(24*time.Hour)), "day") + " ago"
	case d < 365*24*time.Hour:
		return plural(int(d/(30*24*time.Hour)), "month") + " ago"
	default:
		return plural(int(d/(365*24*time.Hour)), "year") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
