package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/unforum-dev/unforum/backend/internal/reactions"
	"github.com/unforum-dev/unforum/backend/internal/service"
	"github.com/unforum-dev/unforum/shared/config"
	"github.com/unforum-dev/unforum/shared/domain"
	"github.com/unforum-dev/unforum/shared/errors"
	mw "github.com/unforum-dev/unforum/shared/middleware"
	"github.com/unforum-dev/unforum/shared/utils"
)

type Seeder interface {
	SeedPopularThreads(ctx context.Context) bool
	SeedUnForumData(ctx context.Context) bool
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	forum  service.ForumService
	seeder Seeder
	likes  reactions.Guard
	health HealthChecker
	cfg    *config.Config
	now    func() time.Time
}

func New(forum service.ForumService, seeder Seeder, likes reactions.Guard, health HealthChecker, cfg *config.Config) *Handler {
	return &Handler{
		forum:  forum,
		seeder: seeder,
		likes:  likes,
		health: health,
		cfg:    cfg,
		now:    time.Now,
	}
}

// author snapshots the signed-in user, or the guest author for anonymous
// visitors and anonymous posts.
func (h *Handler) author(r *http.Request, anonymous bool) domain.Author {
	user := mw.GetUserFromContext(r)
	if user == nil || anonymous {
		return domain.GuestAuthor(h.now())
	}
	return user.Snapshot(h.now())
}

// decodeBody reads a JSON request capped at the configured body size.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, body any) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.Public.Limits.BodyBytes())
	return utils.DecodeValidate(r.Body, body)
}

func (h *Handler) checkContent(content string) error {
	if limit := h.cfg.Public.Limits.ContentLen(); utf8.RuneCountInString(content) > limit {
		return errors.BadRequest(fmt.Sprintf("Content is too long (max %d characters)", limit))
	}
	return nil
}
