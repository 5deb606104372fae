package apiclient

import (
	"net/http"
	"net/url"

	"github.com/unforum-dev/unforum/shared/api"
	"github.com/unforum-dev/unforum/shared/domain"
)

func (c *APIClient) ListPosts(r *http.Request, threadId domain.ThreadId) ([]domain.Post, error) {
	var resp api.PostsResponse
	err := c.call(r, http.MethodGet, "/v1/threads/"+url.PathEscape(threadId)+"/posts", nil, http.StatusOK, &resp)
	return resp.Posts, err
}

func (c *APIClient) CreatePost(r *http.Request, threadId domain.ThreadId, data api.CreatePostRequest) (domain.PostId, error) {
	var resp api.CreatePostResponse
	err := c.call(r, http.MethodPost, "/v1/threads/"+url.PathEscape(threadId)+"/posts", data, http.StatusCreated, &resp)
	return resp.Id, err
}
