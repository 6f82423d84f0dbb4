// Package remote talks to the remote quote source over HTTP.
//
// The source exposes generic posts. The client translates them into quotes
// (title becomes the text, every quote gets one synthetic category) so the
// wire format never leaves this package.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/quotes"
)

const (
	// DefaultCategory is assigned to fetched quotes when none is configured.
	DefaultCategory = "Server"

	postsPath      = "/posts"
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 512
)

// Client fetches and pushes quotes. Requests are never retried.
type Client struct {
	httpClient *http.Client
	baseURL    string
	category   string
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient creates a client for the source at baseURL. Fetched quotes are
// filed under category, or DefaultCategory when category is blank.
func NewClient(baseURL, category string, opts ...Option) *Client {
	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultCategory
	}
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		category:   category,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// post is a record of the remote collection.
type post struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// FetchQuotes reads up to limit records and maps them to quotes in remote
// order. Records without a title are dropped.
func (c *Client) FetchQuotes(ctx context.Context, limit int) ([]entities.Quote, error) {
	u, err := url.Parse(c.baseURL + postsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if limit > 0 {
		q := u.Query()
		q.Set("_limit", strconv.Itoa(limit))
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", quotes.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var posts []post
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, fmt.Errorf("%w: %v", quotes.ErrMalformedPayload, err)
	}
	if posts == nil {
		return nil, fmt.Errorf("%w: response is not an array", quotes.ErrMalformedPayload)
	}

	result := make([]entities.Quote, 0, len(posts))
	for _, p := range posts {
		text := strings.TrimSpace(p.Title)
		if text == "" {
			continue
		}
		result = append(result, entities.Quote{Text: text, Category: c.category})
	}

	return result, nil
}

// PushQuote sends a single quote to the remote collection.
func (c *Client) PushQuote(ctx context.Context, q entities.Quote) error {
	payload, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("failed to encode quote: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+postsPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", quotes.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Category returns the synthetic category assigned to fetched quotes.
func (c *Client) Category() string {
	return c.category
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}
