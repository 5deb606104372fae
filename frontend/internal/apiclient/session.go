package apiclient

import (
	"errors"
	"net/http"

	"github.com/unforum-dev/unforum/shared/api"
	"github.com/unforum-dev/unforum/shared/domain"
	internal_errors "github.com/unforum-dev/unforum/shared/errors"
)

func (c *APIClient) Session(r *http.Request) (api.SessionResponse, error) {
	var resp api.SessionResponse
	err := c.call(r, http.MethodGet, "/v1/session", nil, http.StatusOK, &resp)
	return resp, err
}

func (c *APIClient) Categories(r *http.Request) ([]domain.Category, error) {
	var resp api.CategoriesResponse
	err := c.call(r, http.MethodGet, "/v1/categories", nil, http.StatusOK, &resp)
	return resp.Categories, err
}

func (c *APIClient) SeedPopular(r *http.Request) (api.OperationResponse, error) {
	return c.operation(r, "/v1/admin/seed/popular")
}

func (c *APIClient) SeedUnForum(r *http.Request) (api.OperationResponse, error) {
	return c.operation(r, "/v1/admin/seed/unforum")
}

func (c *APIClient) Reset(r *http.Request) (api.OperationResponse, error) {
	return c.operation(r, "/v1/admin/reset")
}

func (c *APIClient) Stats(r *http.Request) (api.StatsResponse, error) {
	var resp api.StatsResponse
	err := c.call(r, http.MethodGet, "/v1/admin/stats", nil, http.StatusOK, &resp)
	return resp, err
}

func (c *APIClient) operation(r *http.Request, path string) (api.OperationResponse, error) {
	var resp api.OperationResponse
	err := c.call(r, http.MethodPost, path, nil, http.StatusOK, &resp)
	return resp, err
}

func isNotFound(err error) bool {
	var withCode *internal_errors.ErrorWithStatusCode
	return errors.As(err, &withCode) && withCode.StatusCode == http.StatusNotFound
}
