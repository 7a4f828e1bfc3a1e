// Package fetcher provides the network client used by the content pipeline.
//
// A single HTTPClient is built at startup and shared by every request; it
// is never mutated after construction and is safe for concurrent use.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher issues a GET for a URL and returns the response headers and full
// body, or a transport error.
type Fetcher interface {
	Get(ctx context.Context, targetURL string) (*Response, error)
}

// Response is what a Fetcher hands back. The status code is informational;
// callers decide whether to act on it.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	FinalURL   string
}

// ErrUnsupportedScheme is returned for targets that are not http or https.
var ErrUnsupportedScheme = errors.New("unsupported URL scheme")

// Options configures an HTTPClient.
type Options struct {
	// UserAgent is sent on every request.
	UserAgent string

	// Timeout bounds a whole request. Zero means no timeout.
	Timeout time.Duration

	// MaxBodyBytes caps the body read. Zero means unlimited.
	MaxBodyBytes int64

	// TLSFingerprint dials HTTPS with a Chrome-like ClientHello.
	TLSFingerprint bool

	// Proxy is an optional http(s) proxy URL.
	Proxy string
}

// HTTPClient is the default Fetcher on top of net/http.
type HTTPClient struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
}

// NewHTTPClient builds the shared client. Connection pooling is handled by
// the underlying transport.
func NewHTTPClient(opts Options) (*HTTPClient, error) {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	if opts.Proxy != "" {
		proxyURL, err := url.Parse(opts.Proxy)
		if err != nil {
			return nil, fmt.Errorf("fetcher: parse proxy: %w", err)
		}
		if proxyURL.Scheme != "http" && proxyURL.Scheme != "https" {
			return nil, fmt.Errorf("fetcher: proxy %q: %w", opts.Proxy, ErrUnsupportedScheme)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	if opts.TLSFingerprint {
		// The fingerprinted conn speaks http/1.1 only.
		transport.DialTLSContext = dialChromeTLS
		transport.ForceAttemptHTTP2 = false
	} else {
		transport.ForceAttemptHTTP2 = true
	}

	return &HTTPClient{
		client: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				if !isHTTPScheme(req.URL) {
					return fmt.Errorf("redirect to %q: %w", req.URL.String(), ErrUnsupportedScheme)
				}
				return nil
			},
		},
		userAgent:    opts.UserAgent,
		maxBodyBytes: opts.MaxBodyBytes,
	}, nil
}

// Get performs exactly one GET. Any status code is returned as a Response.
func (c *HTTPClient) Get(ctx context.Context, targetURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("fetcher: build request: %w", err)
	}
	if !isHTTPScheme(req.URL) {
		return nil, fmt.Errorf("fetcher: %q: %w", targetURL, ErrUnsupportedScheme)
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetcher: do request: %w", err)
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if c.maxBodyBytes > 0 {
		reader = io.LimitReader(resp.Body, c.maxBodyBytes)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("fetcher: read body: %w", err)
	}
	if body == nil {
		body = []byte{}
	}

	finalURL := targetURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       body,
		FinalURL:   finalURL,
	}, nil
}

// CloseIdleConnections releases pooled connections on shutdown.
func (c *HTTPClient) CloseIdleConnections() {
	c.client.CloseIdleConnections()
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

// IsTimeout reports whether err came from a deadline or net timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
