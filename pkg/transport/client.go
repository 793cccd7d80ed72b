package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// DefaultTimeout bounds a single request when no timeout option is given.
const DefaultTimeout = 30 * time.Second

// maxBodyBytes caps how much of a response body is retained.
const maxBodyBytes = 1 << 20

// Response is a completed 2xx exchange.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying *http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithBaseURL sets the URL relative request paths resolve against.
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSpace(raw)
	}
}

// WithTimeout sets the per-request timeout. Zero or negative disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithDefaultHeader seeds a header sent on every request.
func WithDefaultHeader(name, value string) Option {
	return func(c *Client) {
		c.setDefault(name, value)
	}
}

// Client issues requests on behalf of a page. Default headers installed with
// SetDefaultHeader apply to every subsequent request made through the client.
type Client struct {
	http    *http.Client
	baseURL string
	timeout time.Duration

	mu      sync.RWMutex
	headers http.Header
}

// New constructs a Client with defaults (http.DefaultClient, DefaultTimeout).
func New(options ...Option) *Client {
	c := &Client{
		http:    http.DefaultClient,
		timeout: DefaultTimeout,
		headers: make(http.Header),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// SetDefaultHeader installs or replaces a header sent on every request.
func (c *Client) SetDefaultHeader(name, value string) {
	c.setDefault(name, value)
}

// DefaultHeader returns the current value of a default header.
func (c *Client) DefaultHeader(name string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.headers.Get(name)
}

func (c *Client) setDefault(name, value string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.headers == nil {
		c.headers = make(http.Header)
	}
	c.headers.Set(name, value)
}

// PostForm sends form-encoded values and expects a JSON reply. Non-2xx
// statuses and transport failures are returned as *Error; extra headers are
// applied after the defaults.
func (c *Client) PostForm(ctx context.Context, path string, values url.Values, extra http.Header) (*Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	target, err := c.resolve(path)
	if err != nil {
		return nil, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, fmt.Errorf("transport: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	c.mu.RLock()
	for name, vals := range c.headers {
		req.Header[name] = append([]string(nil), vals...)
	}
	c.mu.RUnlock()
	for name, vals := range extra {
		req.Header[http.CanonicalHeaderKey(name)] = append([]string(nil), vals...)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{Status: res.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &Error{Status: res.StatusCode, Body: bytes.TrimSpace(body)}
	}

	return &Response{
		Status: res.StatusCode,
		Header: res.Header.Clone(),
		Body:   body,
	}, nil
}

func (c *Client) resolve(path string) (string, error) {
	path = strings.TrimSpace(path)
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("transport: parse path %q: %w", path, err)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	if c.baseURL == "" {
		return "", ErrNoBaseURL
	}
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("transport: parse base url %q: %w", c.baseURL, err)
	}
	return base.ResolveReference(ref).String(), nil
}
