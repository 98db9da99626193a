// Package geocode provides free-text destination lookup against a
// Nominatim-compatible search endpoint.
//
// The upstream service's acceptable-use policy allows at most one request per
// second, so every call goes through a shared rate limiter. Callers must not
// work around it by running lookups in parallel.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Candidate is one geocoding result for a query. The upstream API returns
// coordinates as decimal strings; Lat/Lon hold the parsed values.
type Candidate struct {
	Lat         float64
	Lon         float64
	DisplayName string
}

// Client issues rate-limited search requests against one base URL.
// The base URL is injected rather than a package-level constant so tests can
// point the client at an httptest server.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
// Nominatim's usage policy requires an identifying User-Agent.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithRateLimit overrides the requests-per-second ceiling.
// Only raise this when the configured endpoint is a self-hosted instance
// without the public service's one-request-per-second policy.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates a Client for the given base URL.
// The default limiter enforces the public Nominatim policy of 1 req/s.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		userAgent:  "holiday-tracker",
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(1, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// searchResult is the upstream JSON shape. Coordinates arrive as strings.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Search geocodes a free-text query and returns the candidate list in the
// order the service ranked them. An empty slice with a nil error means the
// service found nothing — callers decide whether that is a problem.
//
// Search blocks on the rate limiter before issuing the request, so a caller
// looping over queries is automatically spaced to the allowed rate. A
// cancelled context aborts both the wait and the request.
func (c *Client) Search(ctx context.Context, query string) ([]Candidate, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("geocode: rate limit wait: %w", err)
	}

	params := url.Values{
		"format": {"json"},
		"q":      {query},
	}
	reqURL := c.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("geocode: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("geocode: read body: %w", err)
	}

	var results []searchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("geocode: parse response: %w", err)
	}

	candidates := make([]Candidate, 0, len(results))
	for _, r := range results {
		lat, err := strconv.ParseFloat(r.Lat, 64)
		if err != nil {
			return nil, fmt.Errorf("geocode: parse lat %q: %w", r.Lat, err)
		}
		lon, err := strconv.ParseFloat(r.Lon, 64)
		if err != nil {
			return nil, fmt.Errorf("geocode: parse lon %q: %w", r.Lon, err)
		}
		candidates = append(candidates, Candidate{Lat: lat, Lon: lon, DisplayName: r.DisplayName})
	}

	return candidates, nil
}
