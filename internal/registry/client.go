package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ErrEmptyQuery is returned when Search is called with a blank query.
var ErrEmptyQuery = errors.New("empty query")

// Searcher looks packages up by partial name.
// This interface is implemented by *Client and can be used for testing.
type Searcher interface {
	Search(ctx context.Context, query string, limit, offset int) (Page, error)
}

// Ensure Client implements Searcher at compile time.
var _ Searcher = (*Client)(nil)

// Client talks to an npm-compatible registry search API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	limiter   *rate.Limiter
}

const (
	DefaultURL       = "https://registry.npmjs.org"
	defaultUserAgent = "pkgscout/0.1"
	requestTimeout   = 5 * time.Second

	// DefaultRateLimit caps outgoing lookups per second.
	DefaultRateLimit = 5.0
	DefaultBurst     = 2
)

// Option customizes a Client.
type Option func(*Client)

// WithRateLimit sets the outgoing request rate. A non-positive rps disables
// limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if strings.TrimSpace(ua) != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for the registry at rawURL.
func NewClient(rawURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(rawURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		limiter:   rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultBurst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Search returns up to limit packages matching query, starting at offset.
func (c *Client) Search(ctx context.Context, query string, limit, offset int) (Page, error) {
	if c == nil {
		return Page{}, fmt.Errorf("client is nil")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return Page{}, ErrEmptyQuery
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return Page{}, fmt.Errorf("rate limit: %w", err)
	}

	values := url.Values{}
	values.Set("text", query)
	if limit > 0 {
		values.Set("size", strconv.Itoa(limit))
	}
	if offset > 0 {
		values.Set("from", strconv.Itoa(offset))
	}
	rel := &url.URL{Path: "/-/v1/search", RawQuery: values.Encode()}

	var payload searchResponse
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return Page{}, err
	}
	return payload.page(), nil
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("registry %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse registry url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse registry url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
