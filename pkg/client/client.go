// Package client is a small retrying HTTP client for the me-api endpoints.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is where a locally started server listens.
	DefaultBaseURL = "http://localhost:3000"

	DefaultTimeout     = 10 * time.Second
	DefaultMaxAttempts = 4
	DefaultBackoff     = 200 * time.Millisecond
	MaxBackoff         = 5 * time.Second

	// RateLimit caps outgoing requests per second.
	RateLimit = 10.0
)

var ErrInvalidResponse = errors.New("invalid response")

// APIError is an HTTP failure status. Code and Message come from the server's
// {error, message} envelope when it sent one.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

type Client struct {
	httpClient  *http.Client
	limiter     *rate.Limiter
	baseURL     string
	maxAttempts int
	backoff     time.Duration
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithMaxAttempts bounds the total number of tries per request, first one included.
func WithMaxAttempts(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithBackoff sets the delay before the first retry; it doubles on each
// following retry up to MaxBackoff.
func WithBackoff(d time.Duration) ClientOption {
	return func(c *Client) {
		c.backoff = d
	}
}

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		limiter:     rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:     DefaultBaseURL,
		maxAttempts: DefaultMaxAttempts,
		backoff:     DefaultBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Health hits GET /health.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.getJSON(ctx, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.getJSON(ctx, "/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Projects lists projects newest first, keeping only those tagged with
// skill when it is non-blank.
func (c *Client) Projects(ctx context.Context, skill string) (*ProjectList, error) {
	var q url.Values
	if s := strings.TrimSpace(skill); s != "" {
		q = url.Values{"skill": {s}}
	}
	var out ProjectList
	if err := c.getJSON(ctx, "/projects", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TopSkills(ctx context.Context) ([]Skill, error) {
	var out struct {
		Skills []Skill `json:"skills"`
	}
	if err := c.getJSON(ctx, "/skills/top", nil, &out); err != nil {
		return nil, err
	}
	return out.Skills, nil
}

func (c *Client) Search(ctx context.Context, query string) (*SearchResults, error) {
	var out SearchResults
	if err := c.getJSON(ctx, "/search", url.Values{"q": {query}}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	body, err := c.doWithRetry(ctx, target)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidResponse, path, err)
	}
	return nil
}

// doWithRetry retries network errors, 5xx and 429 with bounded exponential
// backoff. Any other 4xx is returned at once as *APIError.
func (c *Client) doWithRetry(ctx context.Context, target string) ([]byte, error) {
	delay := c.backoff
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay = min(delay*2, MaxBackoff)
		}

		body, retry, err := c.do(ctx, target)
		if err == nil {
			return body, nil
		}
		if !retry {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("giving up on %s after %d attempts: %w", target, c.maxAttempts, lastErr)
}

func (c *Client) do(ctx context.Context, target string) (body []byte, retry bool, err error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, false, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, true, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Code: "api_error"}
		var envelope struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
			apiErr.Code = envelope.Error
			apiErr.Message = envelope.Message
		}
		retryable := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return nil, retryable, apiErr
	}
	return body, false, nil
}
