package apiclient

import (
	"net/http"
	"net/url"

	"github.com/unforum-dev/unforum/shared/api"
	"github.com/unforum-dev/unforum/shared/domain"
)

func (c *APIClient) ListThreads(r *http.Request) ([]domain.Thread, error) {
	var resp api.ThreadsResponse
	err := c.call(r, http.MethodGet, "/v1/threads", nil, http.StatusOK, &resp)
	return resp.Threads, err
}

func (c *APIClient) ListThreadsByAuthor(r *http.Request, authorId domain.UserId) ([]domain.Thread, error) {
	var resp api.ThreadsResponse
	err := c.call(r, http.MethodGet, "/v1/threads?author="+url.QueryEscape(authorId), nil, http.StatusOK, &resp)
	return resp.Threads, err
}

func (c *APIClient) MyThreads(r *http.Request) ([]domain.Thread, error) {
	var resp api.ThreadsResponse
	err := c.call(r, http.MethodGet, "/v1/me/threads", nil, http.StatusOK, &resp)
	return resp.Threads, err
}

// GetThread returns nil without error when the thread does not exist.
func (c *APIClient) GetThread(r *http.Request, id domain.ThreadId) (*domain.Thread, error) {
	var resp api.ThreadResponse
	err := c.call(r, http.MethodGet, "/v1/threads/"+url.PathEscape(id), nil, http.StatusOK, &resp)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resp.Thread, nil
}

func (c *APIClient) CreateThread(r *http.Request, data api.CreateThreadRequest) (domain.ThreadId, error) {
	var resp api.CreateThreadResponse
	err := c.call(r, http.MethodPost, "/v1/threads", data, http.StatusCreated, &resp)
	return resp.Id, err
}

func (c *APIClient) DeleteThread(r *http.Request, id domain.ThreadId) error {
	return c.call(r, http.MethodDelete, "/v1/threads/"+url.PathEscape(id), nil, http.StatusNoContent, nil)
}

func (c *APIClient) LikeThread(r *http.Request, id domain.ThreadId) (api.CounterResponse, error) {
	var resp api.CounterResponse
	err := c.call(r, http.MethodPost, "/v1/threads/"+url.PathEscape(id)+"/like", nil, http.StatusOK, &resp)
	return resp, err
}

func (c *APIClient) ViewThread(r *http.Request, id domain.ThreadId) (api.CounterResponse, error) {
	var resp api.CounterResponse
	err := c.call(r, http.MethodPost, "/v1/threads/"+url.PathEscape(id)+"/view", nil, http.StatusOK, &resp)
	return resp, err
}
