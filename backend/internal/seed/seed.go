// Package seed fills an empty store with demonstration threads and posts.
// Seeded documents are written straight to the store so their counters can
// be preset.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/unforum-dev/unforum/backend/internal/service"
	"github.com/unforum-dev/unforum/shared/domain"
	"github.com/unforum-dev/unforum/shared/logger"
)

const (
	PopularThreadCount  = 10
	PopularPostsPerItem = 25
	PopularAuthorId     = "anonymous_user"
	CommenterId         = "dummy_commenter"
)

var popularThreads = []struct {
	categoryId domain.CategoryId
	title      string
	content    string
}{
	{"c1", "Salaar Part 2: Shouryaanga Parvam Predictions", "Will Deva and Varadha actually fight? The politics in Khansaar are getting intense."},
	{"c2", "IPL 2025: Mega Auction Analysis", "Which team has the strongest squad this year? discussing potential captains and openers."},
	{"c3", "Bangalore vs Hyderabad: Best city for Devs?", "Comparing package, traffic, rent, and overall lifestyle for software engineers."},
	{"c4", "The Ultimate Hyderabad Biryani List", "Paradise is overrated. Here are the actual best spots for authentic Biryani in 2024."},
	{"c5", "Hidden Gem: Unexplored valleys of Himachal", "Just came back from a 7-day solo trip. Here is my itinerary and budget breakdown."},
	{"c6", "Is CS Engineering still worth it in age of AI?", "With potential layoffs and AI coding tools, should I switch to Electronics or stick to CS?"},
	{"c7", "Mahindra Thar Roxx vs Jimny", "Need advice for a daily driver that can handle weekend off-roading. Budget 15L."},
	{"c8", "Nifty 50 Prediction for next Quarter", "Market is at an all time high. Is it time to book profits or keep SIPs running?"},
	{"c9", "Global Elections 2024: Impact on India", "Discussing foreign policy changes and economic impact."},
	{"c10", "Average Corporate Employee Life (Meme Thread)", "Post your best relatable work memes here."},
}

var replyPhrases = []string{
	"Totally agree! This is exactly what I was thinking.",
	"I have a different perspective on this. Have you considered...",
	"Thanks for sharing this info, really helpful!",
	"Great analysis, waiting for the next update.",
	"I'm not sure about this point, can you elaborate?",
	"This is the content I signed up for.",
	"Interesting take on the current situation.",
	"Does anyone else feel the same way?",
}

type Seeder struct {
	storage service.Storage
	now     func() time.Time
	likes   func() int
}

func New(storage service.Storage) *Seeder {
	return &Seeder{
		storage: storage,
		now:     time.Now,
		likes:   func() int { return rand.IntN(50) },
	}
}

func avatar(seed string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + seed
}

// SeedPopularThreads writes ten popular threads, one per forum category, each
// with 25 replies. It stops at the first failed write and reports false;
// documents written before the failure stay.
func (s *Seeder) SeedPopularThreads(ctx context.Context) bool {
	if err := s.seedPopular(ctx); err != nil {
		logger.Log.Error("seeding popular threads failed", "error", err)
		return false
	}
	logger.Log.Info("seeded popular threads", "threads", PopularThreadCount, "posts_per_thread", PopularPostsPerItem)
	return true
}

func (s *Seeder) seedPopular(ctx context.Context) error {
	timestamp := s.now().UTC()

	for i, t := range popularThreads {
		category, ok := domain.FindCategory(t.categoryId)
		if !ok {
			return fmt.Errorf("unknown category %s", t.categoryId)
		}
		threadId, err := s.storage.InsertThread(ctx, domain.ThreadDocument{
			Title:    t.title,
			Content:  t.content,
			AuthorId: PopularAuthorId,
			Author: domain.Author{
				Id:     PopularAuthorId,
				Name:   domain.GuestName,
				Avatar: avatar(fmt.Sprint(i + 50)),
			},
			CategoryId: category.Id,
			Category:   category,
			Tags:       domain.Tags{"popular", "trending"},
			Likes:      155 + i*2,
			ReplyCount: PopularPostsPerItem,
			ViewCount:  250 + i*10,
			CreatedAt:  &timestamp,
			UpdatedAt:  &timestamp,
		})
		if err != nil {
			return fmt.Errorf("insert thread %q: %w", t.title, err)
		}

		for j := 0; j < PopularPostsPerItem; j++ {
			// one millisecond apart so replies keep their order when sorted
			postTime := timestamp.Add(time.Duration(j) * time.Millisecond)
			_, err := s.storage.InsertPost(ctx, domain.PostDocument{
				ThreadId: threadId,
				Content:  replyPhrases[j%len(replyPhrases)],
				AuthorId: CommenterId,
				Author: domain.Author{
					Id:     CommenterId,
					Name:   fmt.Sprintf("User %d", j+1),
					Avatar: avatar(fmt.Sprintf("comment%d_%d", i, j)),
					Role:   domain.RoleUser,
				},
				Likes:     s.likes(),
				CreatedAt: &postTime,
				UpdatedAt: &postTime,
			})
			if err != nil {
				return fmt.Errorf("insert reply %d of %q: %w", j, t.title, err)
			}
		}
	}
	return nil
}
