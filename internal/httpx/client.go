package httpx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Cache stores raw response bodies keyed by the full request URL
// (including the encoded query string). Implementations must be safe
// for concurrent use; only successful GET responses are stored.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, body []byte)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used by the helper.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithHeaders assigns default headers added to every request.
func WithHeaders(h http.Header) Option {
	return func(c *Client) {
		for k, values := range h {
			for _, v := range values {
				c.headers.Add(k, v)
			}
		}
	}
}

// WithCache attaches a response cache consulted before each GET and
// populated after each successful one.
func WithCache(cache Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithLogger enables debug logging of outbound request URLs.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// Client wraps http.Client providing base URL resolution, default
// headers and optional response caching. Calls are synchronous and
// issued exactly once; retry policy is the caller's concern.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	headers    http.Header
	cache      Cache
	logger     *slog.Logger
}

// Request describes a single outbound request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Header  http.Header
	Body    io.Reader
	NoCache bool
}

// Response captures the status and fully-read body of one reply.
// It is ephemeral: callers decode it and drop the reference.
type Response struct {
	StatusCode  int
	Body        []byte
	ContentType string
}

// NewClient creates a Client for the provided base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("httpx: base URL is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("httpx: invalid base URL: %w", err)
	}

	c := &Client{
		baseURL: parsed,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		headers: make(http.Header),
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Do executes the provided request and returns the response, or an
// *HTTPError when the service replies with status >= 400. Any other
// failure is a transport error and is returned unchanged.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, errors.New("httpx: request is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if req.Method == "" {
		return nil, errors.New("httpx: HTTP method is required")
	}

	fullURL, err := c.buildURL(req.Path, req.Query)
	if err != nil {
		return nil, err
	}

	cacheable := c.cache != nil && !req.NoCache && req.Method == http.MethodGet
	if cacheable {
		if body, ok := c.cache.Get(fullURL); ok {
			if c.logger != nil {
				c.logger.Debug("cache hit", "url", fullURL)
			}
			return &Response{StatusCode: http.StatusOK, Body: body}, nil
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, req.Body)
	if err != nil {
		return nil, err
	}

	httpReq.Header = cloneHeader(c.headers)
	for k, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(k, v)
		}
	}

	if c.logger != nil {
		c.logger.Debug("request", "method", req.Method, "url", fullURL)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	body, err := ReadAllAndClose(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpx: read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       body,
			Header:     resp.Header.Clone(),
		}
	}

	if cacheable {
		c.cache.Set(fullURL, body)
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// URL returns the absolute URL the client would request for the given
// path and query. Exposed so callers can key external caches.
func (c *Client) URL(path string, q url.Values) (string, error) {
	return c.buildURL(path, q)
}

func (c *Client) buildURL(path string, q url.Values) (string, error) {
	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", err
	}
	if len(q) > 0 {
		ref.RawQuery = q.Encode()
	}
	base := *c.baseURL
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	full := base.ResolveReference(ref)
	return full.String(), nil
}

// ReadAllAndClose drains the reader and ensures it is closed.
func ReadAllAndClose(rc io.ReadCloser) ([]byte, error) {
	defer func() {
		if rc != nil {
			_ = rc.Close()
		}
	}()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func cloneHeader(src http.Header) http.Header {
	dst := make(http.Header, len(src))
	for k, values := range src {
		vCopy := make([]string, len(values))
		copy(vCopy, values)
		dst[k] = vCopy
	}
	return dst
}
