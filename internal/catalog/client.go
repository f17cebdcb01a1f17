package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"pantryctl/internal/session"
)

// DefaultBaseURL is the production catalog API endpoint.
const DefaultBaseURL = "https://api.pantry.pkg/"

// Client talks to the package-catalog HTTP API.
type Client struct {
	base *url.URL
	HTTP *http.Client
}

type options struct {
	verbose bool
	// writer controls where verbose HTTP logs are written (typically stderr) so
	// structured output on stdout stays clean and tests can capture logs.
	writer   io.Writer
	sessions session.Provider
	token    string
	now      func() time.Time
}

type Option func(*options)

// WithVerbose enables one-line request/response logging to writer.
func WithVerbose(enabled bool, writer io.Writer) Option {
	return func(o *options) {
		o.verbose = enabled
		o.writer = writer
	}
}

// WithSessions makes the client sign requests with the session returned by
// the provider. A provider that returns no session leaves requests unsigned.
func WithSessions(p session.Provider) Option {
	return func(o *options) {
		o.sessions = p
	}
}

// WithBearerToken makes every request carry a static bearer token. Intended
// for explicit-token invocations (flag or environment variable) against
// endpoints that accept plain token auth instead of the signing scheme.
func WithBearerToken(token string) Option {
	return func(o *options) {
		o.token = token
	}
}

func withClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// loggingRoundTripper wraps an underlying transport and emits one line per
// request and response (including latency) when verbose logging is enabled.
type loggingRoundTripper struct {
	base http.RoundTripper
	w    io.Writer
}

func (t *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	if t.w != nil {
		_, _ = fmt.Fprintf(t.w, "[verbose] catalog api: %s %s\n", req.Method, req.URL.String())
	}
	resp, err := t.base.RoundTrip(req)
	dur := time.Since(start)
	if t.w != nil {
		if err != nil {
			_, _ = fmt.Fprintf(t.w, "[verbose] catalog api: error after %s: %v\n", dur.Truncate(time.Millisecond), err)
		} else {
			_, _ = fmt.Fprintf(t.w, "[verbose] catalog api: %d %s (%s)\n", resp.StatusCode, http.StatusText(resp.StatusCode), dur.Truncate(time.Millisecond))
		}
	}
	return resp, err
}

// signingRoundTripper stamps the HMAC authorization headers onto every
// outgoing request when a session with a signing key is available. Without
// one, the request goes out untouched (public access).
type signingRoundTripper struct {
	base     http.RoundTripper
	sessions session.Provider
	now      func() time.Time
}

func (t *signingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	s, err := t.sessions.Session(req.Context())
	if err != nil {
		return nil, fmt.Errorf("catalog client: resolve session: %w", err)
	}
	if s.Authenticated() {
		// Per RoundTripper contract the request must not be mutated in place.
		clone := req.Clone(req.Context())
		signRequestHeaders(clone.Header, s, req.URL.Path, t.now())
		req = clone
	}
	return t.base.RoundTrip(req)
}

// NewClient builds a catalog API client for baseURL (DefaultBaseURL if empty).
func NewClient(ctx context.Context, baseURL string, opts ...Option) (*Client, error) {
	if ctx == nil {
		return nil, fmt.Errorf("catalog client: ctx is nil")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("catalog client: invalid base URL %q: %w", baseURL, err)
	}

	o := &options{now: time.Now}
	for _, apply := range opts {
		if apply != nil {
			apply(o)
		}
	}
	if o.verbose && o.writer == nil {
		o.writer = os.Stderr
	}

	transport := http.DefaultTransport
	if o.verbose {
		transport = &loggingRoundTripper{base: transport, w: o.writer}
	}
	if o.token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: o.token})
		transport = &oauth2.Transport{Source: ts, Base: transport}
	}
	if o.sessions != nil {
		transport = &signingRoundTripper{base: transport, sessions: o.sessions, now: o.now}
	}

	return &Client{
		base: base,
		HTTP: &http.Client{Transport: transport},
	}, nil
}

// BaseURL returns the resolved base URL.
func (c *Client) BaseURL() *url.URL {
	return c.base
}

// URL joins path onto the client's base URL. Path is relative to the base
// ("v1/packages") and may carry a raw query ("v1/posts?tag=x").
func (c *Client) URL(path string) *url.URL {
	p := strings.TrimPrefix(path, "/")
	var query string
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p, query = p[:i], p[i+1:]
	}
	u := c.base.JoinPath(p)
	u.RawQuery = query
	return u
}

// GetJSON performs a GET against path and decodes the JSON response body
// into out. The response is returned (with its body already closed) so
// callers can feed rate-limit headers into a request budget.
//
// Non-2xx statuses are returned as *StatusError.
func (c *Client) GetJSON(ctx context.Context, path string, out any) (*http.Response, error) {
	if c == nil {
		return nil, fmt.Errorf("GetJSON: nil Client")
	}
	if ctx == nil {
		return nil, fmt.Errorf("GetJSON: nil context")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(path).String(), nil)
	if err != nil {
		return nil, fmt.Errorf("GetJSON: build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GetJSON: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return resp, &StatusError{Path: path, StatusCode: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp, fmt.Errorf("GetJSON: decode %s: %w", path, err)
		}
	}
	return resp, nil
}

// StatusError reports a non-2xx catalog API response.
type StatusError struct {
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog api: %s: %d %s", e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsNotFound reports whether err is a 404 from the catalog API.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}
