package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	internal_errors "github.com/unforum-dev/unforum/shared/errors"
	"github.com/unforum-dev/unforum/shared/utils"
)

// APIClient struct handles all communication with the backend API.
type APIClient struct {
	BaseURL    string
	HttpClient *http.Client
}

// New creates a new client for interacting with the backend.
func New(baseURL string) *APIClient {
	return &APIClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HttpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// do is the single, unified helper for making API requests.
// The browser's cookies are forwarded so the backend sees the same identity.
func (c *APIClient) do(r *http.Request, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode API request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	ctx := context.Background()
	if r != nil {
		ctx = r.Context()
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create API request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if r != nil {
		for _, cookie := range r.Cookies() {
			req.AddCookie(cookie)
		}
		if ip := clientIP(r); ip != "" {
			req.Header.Set("X-Forwarded-For", ip)
		}
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend unavailable: %w", err)
	}
	return resp, nil
}

// call sends the request and decodes a successful response into out.
// Any status other than want becomes an ErrorWithStatusCode carrying the
// backend's message.
func (c *APIClient) call(r *http.Request, method, path string, body any, want int, out any) error {
	resp, err := c.do(r, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &internal_errors.ErrorWithStatusCode{
			Message:    strings.TrimSpace(string(msg)),
			StatusCode: resp.StatusCode,
		}
	}
	if out == nil {
		return nil
	}
	if err := utils.Decode(resp.Body, out); err != nil {
		return fmt.Errorf("cannot decode %s %s response: %w", method, path, err)
	}
	return nil
}

// clientIP is the browser's address as seen by the frontend. The backend
// only honors it when http.trust_proxy is set.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
