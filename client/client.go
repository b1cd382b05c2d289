// Package client talks to the blog API the way the site's browser widgets do:
// searching, liking and counting likes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SearchHit is one post in a search response.
type SearchHit struct {
	Slug         string  `json:"slug"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	CategorySlug *string `json:"categorySlug"`
}

type searchResponse struct {
	Query   string      `json:"query"`
	Posts   []SearchHit `json:"posts"`
	Count   int         `json:"count"`
	Message string      `json:"message"`
	Error   string      `json:"error"`
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("blog api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("blog api: status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search queries /api/search. Queries under the server's minimum length come
// back empty without error.
func (c *Client) Search(ctx context.Context, query string) ([]SearchHit, error) {
	var resp searchResponse
	if err := c.do(ctx, http.MethodGet, "/api/search?q="+url.QueryEscape(query), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Posts == nil {
		resp.Posts = []SearchHit{}
	}
	return resp.Posts, nil
}

// ToggleLike flips the like of fingerprint on a post and reports the new state.
func (c *Client) ToggleLike(ctx context.Context, postID uint, fingerprint string) (bool, error) {
	var resp struct {
		Liked bool `json:"liked"`
	}
	body := map[string]string{"fingerprint": fingerprint}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/likes", postID), body, &resp); err != nil {
		return false, err
	}
	return resp.Liked, nil
}

func (c *Client) LikeCount(ctx context.Context, postID uint) (int64, error) {
	var resp struct {
		Count int64 `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/posts/%d/likes", postID), nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&apiErr)
		return &StatusError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
