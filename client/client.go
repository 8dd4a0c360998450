// Package client is a typed HTTP client for the forkful API with a
// per-path query cache for GET requests. Mutations invalidate the
// cached queries they affect.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	cache      *queryCache
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: newQueryCache(),
	}
}

// SetToken installs the bearer token sent on every request.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: string(data)}
		var wire struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &wire) == nil && wire.Error != "" {
			apiErr.Message = wire.Error
		}
		return nil, apiErr
	}
	return data, nil
}

// query is a cached GET. The first call stores the raw response under the
// request path; later calls decode from the cache until a mutation
// invalidates the entry.
func (c *Client) query(ctx context.Context, path string, out any) error {
	if data, ok := c.cache.get(path); ok {
		return json.Unmarshal(data, out)
	}
	data, err := c.roundTrip(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	c.cache.set(path, data)
	return json.Unmarshal(data, out)
}

func (c *Client) mutate(ctx context.Context, method, path string, body, out any, invalidates ...string) error {
	data, err := c.roundTrip(ctx, method, path, body)
	if err != nil {
		return err
	}
	c.cache.invalidate(invalidates...)
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
