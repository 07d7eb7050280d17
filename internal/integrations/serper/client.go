package serper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"financial-intel/internal/domain"
)

const (
	defaultBaseURL = "https://google.serper.dev"
	defaultTimeout = 10 * time.Second
	searchPath     = "/search"
)

// searchRequest is the request body for the search endpoint.
type searchRequest struct {
	Query string `json:"q"`
	Num   int    `json:"num"`
}

// searchResponse keeps only the organic results.
type searchResponse struct {
	Organic []organicResult `json:"organic"`
}

type organicResult struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
	Position int    `json:"position"`
}

// HTTPStatusError captures non-200 search responses.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("serper: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// Client issues Google searches through the Serper API.
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

// NewClient returns a Client authenticated with apiKey.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("serper: api key must not be empty")
	}
	rest := resty.New().
		SetBaseURL(defaultBaseURL).
		SetTimeout(defaultTimeout).
		SetHeader("X-API-KEY", apiKey).
		SetHeader("Content-Type", "application/json")
	for _, opt := range opts {
		opt(rest)
	}
	return &Client{rest: rest}, nil
}

// Search runs one query and returns its organic results in rank order.
func (c *Client) Search(ctx context.Context, query string, num int) ([]domain.NewsItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("serper: query must not be empty")
	}

	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(searchRequest{Query: query, Num: num}).
		Post(searchPath)
	if err != nil {
		return nil, fmt.Errorf("serper: request failed: %w", err)
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

	var payload searchResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("serper: decode response: %w", err)
	}

	items := make([]domain.NewsItem, 0, len(payload.Organic))
	for _, r := range payload.Organic {
		items = append(items, domain.NewsItem{Title: r.Title, Snippet: r.Snippet})
	}
	return items, nil
}
