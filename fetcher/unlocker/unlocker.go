// Package unlocker adapts a web-unlocker proxy API to the governor's
// Fetcher interface: every fetch is a POST to the proxy's /request
// endpoint, which scrapes the target URL server-side and returns the
// page body as markdown.
package unlocker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/veldt-io/fingov"
)

// Client is a Fetcher backed by a web-unlocker proxy API.
type Client struct {
	name       string
	baseURL    string
	token      string
	zone       string
	dataFormat string
	httpClient *http.Client
}

var _ fingov.Fetcher = (*Client)(nil)

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(u *Client) { u.httpClient = c }
}

// WithZone sets the unlocker zone. Defaults to "default".
func WithZone(zone string) Option {
	return func(u *Client) { u.zone = zone }
}

// WithTimeout sets the per-fetch timeout. Defaults to 90s; a shorter
// value makes fallback chains advance faster.
func WithTimeout(d time.Duration) Option {
	return func(u *Client) { u.httpClient.Timeout = d }
}

// WithName sets the fetcher name used in source labels.
func WithName(name string) Option {
	return func(u *Client) { u.name = name }
}

// New creates an unlocker client for the given API base URL and token.
func New(baseURL, token string, opts ...Option) *Client {
	u := &Client{
		name:       "unlocker",
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		zone:       "default",
		dataFormat: "markdown",
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Client) Name() string { return u.name }

type apiRequest struct {
	URL        string `json:"url"`
	Zone       string `json:"zone"`
	Format     string `json:"format"`
	DataFormat string `json:"data_format"`
}

// Fetch scrapes the locator through the proxy and returns the raw body.
func (u *Client) Fetch(ctx context.Context, locator string) (fingov.ContentSample, error) {
	payload, err := json.Marshal(apiRequest{
		URL:        locator,
		Zone:       u.zone,
		Format:     "raw",
		DataFormat: u.dataFormat,
	})
	if err != nil {
		return fingov.ContentSample{}, fmt.Errorf("unlocker: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+"/request", bytes.NewReader(payload))
	if err != nil {
		return fingov.ContentSample{}, fmt.Errorf("unlocker: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+u.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return fingov.ContentSample{}, fmt.Errorf("unlocker: fetch %s: %w", locator, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fingov.ContentSample{}, fmt.Errorf("unlocker: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fingov.ContentSample{}, fmt.Errorf("unlocker: %s returned %d: %s",
			locator, resp.StatusCode, snippet(body))
	}

	return fingov.ContentSample{SourceLabel: u.name, RawText: string(body)}, nil
}

func snippet(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		s = s[:max]
	}
	return s
}
