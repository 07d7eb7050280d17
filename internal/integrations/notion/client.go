package notion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://api.notion.com"
	defaultVersion = "2022-06-28"
	defaultTimeout = 30 * time.Second
	pagesPath      = "/v1/pages"
)

// HTTPStatusError captures non-200 responses from the Notion API.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("notion: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// Client is a focused Notion client for creating database pages.
type Client struct {
	rest *resty.Client
}

type Option func(*resty.Client)

func WithBaseURL(baseURL string) Option {
	return func(c *resty.Client) {
		if baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/"); baseURL != "" {
			c.SetBaseURL(baseURL)
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) {
		if d > 0 {
			c.SetTimeout(d)
		}
	}
}

func WithVersion(version string) Option {
	return func(c *resty.Client) {
		if version = strings.TrimSpace(version); version != "" {
			c.SetHeader("Notion-Version", version)
		}
	}
}

// NewClient returns a Client that authenticates with an integration token.
func NewClient(token string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("notion: token must not be empty")
	}
	rest := resty.New().
		SetBaseURL(defaultBaseURL).
		SetTimeout(defaultTimeout).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetHeader("Notion-Version", defaultVersion)
	for _, opt := range opts {
		opt(rest)
	}
	return &Client{rest: rest}, nil
}

// CreatePage inserts a page into a database. Only a 200 response counts as
// success; the write is never retried.
func (c *Client) CreatePage(ctx context.Context, in CreatePageRequest) (*Page, error) {
	if strings.TrimSpace(in.Parent.DatabaseID) == "" {
		return nil, errors.New("notion: parent database id must not be empty")
	}

	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(in).
		Post(pagesPath)
	if err != nil {
		return nil, fmt.Errorf("notion: request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		body := resp.String()
		if len(body) > 4096 {
			body = body[:4096]
		}
		return nil, &HTTPStatusError{
			StatusCode: resp.StatusCode(),
			URL:        resp.Request.URL,
			Body:       body,
		}
	}

	// The page exists once Notion answers 200, so an unreadable body only
	// costs us the URL.
	var page Page
	_ = json.Unmarshal(resp.Body(), &page)
	return &page, nil
}
