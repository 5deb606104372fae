// Package view holds the presentation rules of the forum pages: layout
// selection, popular filtering, post windowing and optimistic counters.
package view

import (
	"github.com/unforum-dev/unforum/shared/domain"
	"github.com/unforum-dev/unforum/shared/identity"
)

const (
	DefaultPostWindow = 50

	PopularLimit    = 10
	popularMinLikes = 50
	popularMinReply = 20
	popularMinViews = 100
)

const (
	EmptyThreads      = "No items found. Be the first to add one!"
	EmptyPosts        = "No replies yet. Be the first to start the conversation!"
	EmptyChapters     = "No new chapters yet. Write the next one!"
	EmptyYourThreads  = "You haven't started any threads yet."
	SignInToReply     = "Please sign in to reply to this thread."
	SignInYourThreads = "Please sign in to see your threads."
)

// IsPopular reports whether a thread qualifies for the front page.
func IsPopular(t domain.Thread) bool {
	return t.Likes > popularMinLikes && t.ReplyCount >= popularMinReply && t.ViewCount > popularMinViews
}

// Popular keeps the first PopularLimit qualifying threads, preserving order.
func Popular(threads []domain.Thread) []domain.Thread {
	out := make([]domain.Thread, 0, PopularLimit)
	for _, t := range threads {
		if len(out) == PopularLimit {
			break
		}
		if IsPopular(t) {
			out = append(out, t)
		}
	}
	return out
}

// CanDelete is true for the thread's author and for admins.
func CanDelete(t domain.Thread, user *identity.User, isAdmin bool) bool {
	if isAdmin {
		return true
	}
	return user != nil && t.OwnedBy(user.Id)
}

func EmptyPostsMessage(layout domain.CategoryType) string {
	if layout == domain.CategoryStory {
		return EmptyChapters
	}
	return EmptyPosts
}

func AuthorName(a domain.Author) string {
	if a.Name == "" {
		return "Anonymous"
	}
	return a.Name
}

func CategoryName(c domain.Category) string {
	if c.Name == "" {
		return "Uncategorized"
	}
	return c.Name
}
