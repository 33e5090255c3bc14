package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// DefaultUserAgent is a desktop browser user agent. Both hosts serve
// degraded or blocked pages to unknown clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// DefaultTimeout bounds each request when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// ErrClosed is returned by requests made after Close.
var ErrClosed = errors.New("http client closed")

// StatusError reports a response with a non-2xx status code.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s for %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// Options configures a Client.
type Options struct {
	// BaseURL is the scheme and host every path is resolved against.
	BaseURL string

	// Timeout bounds a single request. Zero means DefaultTimeout.
	Timeout time.Duration

	// UserAgent overrides DefaultUserAgent.
	UserAgent string

	// Cookie is sent verbatim as the Cookie header when non-empty.
	Cookie string

	// Headers are added to every request.
	Headers map[string]string

	Logger zerolog.Logger
}

// Client is a per-host HTTP client that keeps connections open between
// requests and presents browser-like headers.
//
// A Client is owned by one pipeline run and must be released with Close.
//
// Example usage:
//
//	client, err := NewClient(Options{BaseURL: "https://m.facebook.com", Cookie: cookie})
//	defer client.Close()
//
//	body, err := client.Get(ctx, "/events/123", nil, nil)
type Client struct {
	rc     *resty.Client
	inner  http.RoundTripper
	host   string
	logger zerolog.Logger

	mu     sync.Mutex
	closed bool
}

// NewClient creates a Client for opts.BaseURL.
func NewClient(opts Options) (*Client, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must include scheme and host", opts.BaseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	rc := resty.New()
	rc.SetBaseURL(opts.BaseURL)
	rc.SetTimeout(timeout)

	inner := rc.GetClient().Transport
	rc.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(inner)

	rc.SetHeader("User-Agent", userAgent)
	rc.SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	rc.SetHeader("Accept-Language", "en-AU,en;q=0.9")
	if opts.Cookie != "" {
		rc.SetHeader("Cookie", opts.Cookie)
	}
	rc.SetHeaders(opts.Headers)

	c := &Client{
		rc:     rc,
		inner:  inner,
		host:   base.Host,
		logger: opts.Logger.With().Str("host", base.Host).Logger(),
	}
	rc.OnAfterResponse(c.observe)
	return c, nil
}

// Host returns the host requests are sent to.
func (c *Client) Host() string {
	return c.host
}

func (c *Client) observe(_ *resty.Client, resp *resty.Response) error {
	HTTPRequests.WithLabelValues(c.host, strconv.Itoa(resp.StatusCode())).Inc()
	HTTPRequestDuration.WithLabelValues(c.host).Observe(resp.Time().Seconds())
	c.logger.Debug().
		Str("url", resp.Request.URL).
		Int("status", resp.StatusCode()).
		Dur("duration", resp.Time()).
		Msg("Request completed")
	return nil
}

// Get performs a GET request for path and returns the response body.
//
// query and headers may be nil. Returns a *StatusError for any non-2xx
// response.
//
// Example:
//
//	body, err := client.Get(ctx, "/v4.0/123/music", map[string]string{"limit": "100"}, nil)
func (c *Client) Get(ctx context.Context, path string, query, headers map[string]string) ([]byte, error) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	req := c.rc.R().SetContext(ctx)
	if query != nil {
		req.SetQueryParams(query)
	}
	if headers != nil {
		req.SetHeaders(headers)
	}

	resp, err := req.Get(path)
	if err != nil {
		HTTPRequests.WithLabelValues(c.host, "error").Inc()
		return nil, fmt.Errorf("GET %s%s: %w", c.host, path, err)
	}
	if !resp.IsSuccess() {
		return nil, &StatusError{StatusCode: resp.StatusCode(), URL: resp.Request.URL}
	}
	return resp.Body(), nil
}

// Close releases idle connections. Further requests fail with ErrClosed.
// Calling Close more than once has no effect.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true

	if ci, ok := c.inner.(interface{ CloseIdleConnections() }); ok {
		ci.CloseIdleConnections()
	}
}
