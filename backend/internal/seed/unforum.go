package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/unforum-dev/unforum/shared/domain"
	"github.com/unforum-dev/unforum/shared/logger"
)

const UnForumThreadsPerType = 10

type typedSeed struct {
	kind     domain.CategoryType
	titles   [UnForumThreadsPerType]string
	body     string
	replies  []string
	authorId domain.UserId
	author   string
}

var unForumSeeds = []typedSeed{
	{
		kind: domain.CategoryJob,
		titles: [UnForumThreadsPerType]string{
			"Hiring: Senior Backend Engineer (Go)", "Hiring: Product Designer", "Hiring: Data Analyst Intern",
			"Hiring: DevOps Engineer", "Hiring: Android Developer", "Hiring: Technical Writer",
			"Hiring: QA Automation Engineer", "Hiring: Customer Success Lead", "Hiring: ML Engineer",
			"Hiring: Frontend Engineer (React)",
		},
		body:     "Remote friendly, competitive pay. Reply with your portfolio or a short intro.",
		replies:  []string{"Applied! Sent my portfolio.", "Is this open to freshers?"},
		authorId: "seed_recruiter",
		author:   "Talent Team",
	},
	{
		kind: domain.CategoryStory,
		titles: [UnForumThreadsPerType]string{
			"The Last Train to Shimla", "Monsoon Letters", "The Chai Stall at Midnight", "Code Red at 3 AM",
			"Grandmother's Recipe Book", "The Lighthouse Keeper", "Signals from Orbit", "A Map Without Roads",
			"The Festival of Lamps", "Echoes in the Old Fort",
		},
		body: "Chapter one is below. Add the next chapter as a reply and keep the story going.",
		replies: []string{
			"The fog rolled in before anyone noticed the platform was empty.",
			"Somewhere behind them, a whistle answered.",
			"By dawn, nobody remembered boarding.",
			"Except the conductor, who kept the ticket.",
		},
		authorId: "seed_storyteller",
		author:   "Story Circle",
	},
	{
		kind: domain.CategoryQA,
		titles: [UnForumThreadsPerType]string{
			"How do I choose between Postgres and MongoDB?", "Best way to learn DSA in 3 months?",
			"Is a home loan better than renting in Pune?", "How to prepare for UPSC while working?",
			"What laptop for data science under 80k?", "How do SIPs actually compound?",
			"Which city has the best public transport?", "How to negotiate a job offer?",
			"What is the safest way to travel solo?", "How do I start contributing to open source?",
		},
		body:     "Looking for practical answers from people who have done this.",
		replies:  []string{"Start small and be consistent.", "It depends on your use case, but here is what worked for me.", "Seconding the above, plus read the docs."},
		authorId: "seed_asker",
		author:   "Curious Learner",
	},
	{
		kind: domain.CategoryRoadmap,
		titles: [UnForumThreadsPerType]string{
			"Dark mode", "Thread bookmarks", "Email notifications", "Markdown tables", "Polls in threads",
			"User profiles", "Search across categories", "Mobile app", "Reactions beyond likes", "Moderation queue",
		},
		body:     "Proposed feature. Vote with a like and add your use case below.",
		replies:  []string{"Would use this every day.", "Please prioritize this one."},
		authorId: "seed_maintainer",
		author:   "Un-Forum Team",
	},
	{
		kind: domain.CategoryForum,
		titles: [UnForumThreadsPerType]string{
			"Introduce yourself!", "What are you reading this month?", "Weekend plans thread",
			"Unpopular opinions (be nice)", "Share your desk setup", "Favourite street food in your city",
			"Rate my playlist", "Small wins this week", "Recommend a podcast", "Show off your side project",
		},
		body: "Open discussion. Keep it friendly.",
		replies: []string{
			"Great thread idea!", "Here's mine.", "Love this community.", "Adding to the list.", "Same here!",
		},
		authorId: "seed_member",
		author:   "Community Member",
	},
}

// SeedUnForumData writes 50 threads, ten for each category type, each with a
// small fixed set of replies. Like SeedPopularThreads it stops at the first
// failure.
func (s *Seeder) SeedUnForumData(ctx context.Context) bool {
	if err := s.seedUnForum(ctx); err != nil {
		logger.Log.Error("seeding un-forum data failed", "error", err)
		return false
	}
	logger.Log.Info("seeded un-forum data", "threads", len(unForumSeeds)*UnForumThreadsPerType)
	return true
}

func (s *Seeder) seedUnForum(ctx context.Context) error {
	base := s.now().UTC()

	for k, seed := range unForumSeeds {
		category := domain.CategoryOfType(seed.kind)
		author := domain.Author{
			Id:     seed.authorId,
			Name:   seed.author,
			Avatar: avatar(string(seed.authorId)),
			Role:   domain.RoleUser,
		}

		for i, title := range seed.titles {
			// spread creation times so lists interleave realistically
			created := base.Add(-time.Duration(k*UnForumThreadsPerType+i) * time.Minute)
			threadId, err := s.storage.InsertThread(ctx, domain.ThreadDocument{
				Title:      title,
				Content:    seed.body,
				AuthorId:   author.Id,
				Author:     author,
				CategoryId: category.Id,
				Category:   category,
				Tags:       domain.Tags{string(seed.kind)},
				Likes:      3 + i*4,
				ReplyCount: len(seed.replies),
				ViewCount:  20 + i*9,
				CreatedAt:  &created,
				UpdatedAt:  &created,
			})
			if err != nil {
				return fmt.Errorf("insert %s thread %q: %w", seed.kind, title, err)
			}

			for j, reply := range seed.replies {
				postTime := created.Add(time.Duration(j+1) * time.Second)
				_, err := s.storage.InsertPost(ctx, domain.PostDocument{
					ThreadId: threadId,
					Content:  reply,
					AuthorId: CommenterId,
					Author: domain.Author{
						Id:     CommenterId,
						Name:   fmt.Sprintf("User %d", j+1),
						Avatar: avatar(fmt.Sprintf("%s%d_%d", seed.kind, i, j)),
						Role:   domain.RoleUser,
					},
					Likes:     s.likes(),
					CreatedAt: &postTime,
					UpdatedAt: &postTime,
				})
				if err != nil {
					return fmt.Errorf("insert reply to %q: %w", title, err)
				}
			}
		}
	}
	return nil
}
