package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ListParams are the query parameters every list endpoint accepts. Zero
// values are omitted from the request and the server applies its defaults.
type ListParams struct {
	Query    string
	SortKey  string
	SortDir  string
	Page     int
	PageSize int
}

func (p ListParams) encode() string {
	v := url.Values{}
	if p.Query != "" {
		v.Set("q", p.Query)
	}
	if p.SortKey != "" {
		v.Set("sort", p.SortKey)
	}
	if p.SortDir != "" {
		v.Set("dir", p.SortDir)
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(p.PageSize))
	}
	return v.Encode()
}

// Page is the envelope every list endpoint returns.
type Page[T any] struct {
	Data       []T `json:"data"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// Client talks to a jobdeck API server. A client with an empty base URL runs
// in offline mode and serves the embedded fixtures instead, so every command
// works without a backend.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the client logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client against baseURL, e.g. "http://localhost:8600".
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Offline reports whether the client serves embedded fixtures.
func (c *Client) Offline() bool {
	return c.baseURL == ""
}

// Dataset fetches the complete dataset, used by sync. Offline clients return
// the embedded fixtures.
func (c *Client) Dataset(ctx context.Context) (*Dataset, error) {
	if c.Offline() {
		c.logger.Debug("no API base URL configured, using embedded fixtures")
		return Fixtures()
	}

	var ds Dataset
	if err := c.getJSON(ctx, "/api/v1/export", "", &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Applicants fetches one page of applicants.
func (c *Client) Applicants(ctx context.Context, p ListParams) (*Page[Applicant], error) {
	return list[Applicant](ctx, c, "/api/v1/applicants", p)
}

// Companies fetches one page of companies.
func (c *Client) Companies(ctx context.Context, p ListParams) (*Page[Company], error) {
	return list[Company](ctx, c, "/api/v1/companies", p)
}

// Jobs fetches one page of job posts.
func (c *Client) Jobs(ctx context.Context, p ListParams) (*Page[JobPost], error) {
	return list[JobPost](ctx, c, "/api/v1/jobs", p)
}

func list[T any](ctx context.Context, c *Client, path string, p ListParams) (*Page[T], error) {
	if c.Offline() {
		return nil, fmt.Errorf("list endpoints require an API base URL; offline mode serves full datasets only")
	}
	var page Page[T]
	if err := c.getJSON(ctx, path, p.encode(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) getJSON(ctx context.Context, path, query string, out any) error {
	u := c.baseURL + path
	if query != "" {
		u += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s failed: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("api request", "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("api error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("api error: unexpected status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
