package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	frontend_domain "github.com/unforum-dev/unforum/frontend/internal/domain"
	mw "github.com/unforum-dev/unforum/frontend/internal/middleware"
	"github.com/unforum-dev/unforum/frontend/internal/view"
	"github.com/unforum-dev/unforum/shared/api"
	"github.com/unforum-dev/unforum/shared/domain"
	"github.com/unforum-dev/unforum/shared/logger"
	"github.com/unforum-dev/unforum/shared/utils"
)

// ThreadGetHandler renders the detail page. The view increment is sent
// alongside the posts request; the page shows views+1 and marks it
// confirmed once the backend has read the counter back.
func (h *Handler) ThreadGetHandler(w http.ResponseWriter, r *http.Request) {
	threadId := chi.URLParam(r, "threadId")

	thread, err := h.APIClient.GetThread(r, threadId)
	if err != nil {
		logger.Log.Error("getting thread via API", "thread_id", threadId, "error", err)
		http.Error(w, "Internal error: backend unavailable", http.StatusInternalServerError)
		return
	}
	if thread == nil {
		h.renderTemplateWithError(w, r, http.StatusNotFound, "not_found.html", nil, "")
		return
	}

	var (
		posts   []domain.Post
		viewed  api.CounterResponse
		viewErr error
		g       errgroup.Group
	)
	g.Go(func() error {
		var err error
		posts, err = h.APIClient.ListPosts(r, threadId)
		return err
	})
	g.Go(func() error {
		viewed, viewErr = h.APIClient.ViewThread(r, threadId)
		return nil
	})
	var errMsg string
	if err := g.Wait(); err != nil {
		logger.Log.Error("listing posts via API", "thread_id", threadId, "error", err)
		errMsg = userMessage(err)
	}

	views := view.Optimistic(thread.ViewCount)
	if viewErr != nil {
		logger.Log.Warn("view increment failed", "thread_id", threadId, "error", viewErr)
	} else {
		views = views.Reconcile(viewed.Confirmed)
	}

	session := mw.GetSession(r)
	card := view.NewThreadCard(*thread, h.now())
	data := frontend_domain.ThreadPageData{
		Thread:    card,
		Body:      h.TextProcessor.Render(thread.Content),
		Likes:     view.Confirmed(thread.Likes),
		Views:     views,
		Posts:     view.NewPostWindow(posts, card.Layout, parseLimit(r), h.Public.Frontend.PostsPageSize, h.TextProcessor, h.now()),
		CanDelete: view.CanDelete(*thread, session.User, session.IsAdmin),
		CanReply:  session.User != nil,
		SignIn:    view.SignInToReply,
	}
	h.renderTemplateWithError(w, r, http.StatusOK, "thread.html", data, errMsg)
}

func (h *Handler) ThreadReplyHandler(w http.ResponseWriter, r *http.Request) {
	threadId := chi.URLParam(r, "threadId")
	target := threadURL(threadId)

	content := strings.TrimSpace(r.PostFormValue("content"))
	if content == "" {
		h.redirectWithError(w, r, target, "Reply cannot be empty.")
		return
	}

	if _, err := h.APIClient.CreatePost(r, threadId, api.CreatePostRequest{Content: content}); err != nil {
		logger.Log.Error("creating post via API", "thread_id", threadId, "error", err)
		h.redirectWithError(w, r, target, "Failed to post reply: "+userMessage(err))
		return
	}
	http.Redirect(w, r, target+"#bottom", http.StatusSeeOther)
}

// ThreadLikeHandler answers fetch requests with the counter JSON and plain
// form posts with a redirect back to the thread.
func (h *Handler) ThreadLikeHandler(w http.ResponseWriter, r *http.Request) {
	threadId := chi.URLParam(r, "threadId")

	counter, err := h.APIClient.LikeThread(r, threadId)
	if wantsJSON(r) {
		if err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, counter)
		return
	}

	target := threadURL(threadId)
	switch {
	case err != nil:
		logger.Log.Error("liking thread via API", "thread_id", threadId, "error", err)
		h.redirectWithError(w, r, target, userMessage(err))
	case counter.Duplicate:
		h.redirectWithError(w, r, target, "You already liked this thread.")
	default:
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

func (h *Handler) ThreadDeleteHandler(w http.ResponseWriter, r *http.Request) {
	threadId := chi.URLParam(r, "threadId")

	if err := h.APIClient.DeleteThread(r, threadId); err != nil {
		logger.Log.Error("deleting thread via API", "thread_id", threadId, "error", err)
		h.redirectWithError(w, r, threadURL(threadId), "Failed to delete thread: "+userMessage(err))
		return
	}
	h.redirectWithSuccess(w, r, "/your-threads", "Thread deleted.")
}
