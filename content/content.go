// Package content implements the fetch/parse state machine for one URL.
//
// Each phase is its own type. An Unfetched value can only be fetched and a
// Fetched value can only be parsed, so asking for an entry before the body
// exists does not compile:
//
//	u := content.New(target, nil)
//	f, err := u.Fetch(ctx, client)   // *Fetched or FetchError
//	e, err := f.Parse(registry)      // *models.Entry or ParseError
//
// Values are owned by one goroutine and consumed by their transition. A
// consumed value returns a typed error instead of doing the work twice.
package content

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/use-agent/sift/fetcher"
	"github.com/use-agent/sift/models"
	"github.com/use-agent/sift/parser"
)

var (
	// ErrNotFetched is reported when a Fetched value carries no body or
	// headers, which only happens for a zero value built outside New/Fetch.
	ErrNotFetched = errors.New("content: no fetched body or headers")

	// ErrConsumed is reported when a phase value is used a second time.
	ErrConsumed = errors.New("content: value already consumed")

	// ErrInvalidURL is reported for targets that are not absolute http(s) URLs.
	ErrInvalidURL = errors.New("content: URL must be an absolute http or https URL")

	errNoFetcher  = errors.New("content: no fetcher configured")
	errNoRegistry = errors.New("content: no parser registry configured")
)

// Unfetched is a URL that has not been retrieved yet.
type Unfetched struct {
	url      *url.URL
	metadata models.Metadata
	spent    bool
}

// New starts the pipeline for u. seed may be nil; its fields fill gaps the
// extractor leaves and never override extracted values.
func New(u *url.URL, seed *models.Metadata) *Unfetched {
	c := &Unfetched{url: u}
	if seed != nil {
		c.metadata = *seed
	}
	return c
}

// URL returns the target URL.
func (c *Unfetched) URL() *url.URL { return c.url }

// Fetch issues exactly one GET for the URL. Any transport failure is
// returned as a FetchError. The HTTP status is not checked: an error page
// is still content and gets parsed.
func (c *Unfetched) Fetch(ctx context.Context, f fetcher.Fetcher) (*Fetched, error) {
	if c.url == nil {
		return nil, models.NewFetchError("", ErrInvalidURL)
	}
	target := c.url.String()
	if c.spent {
		return nil, models.NewFetchError(target, ErrConsumed)
	}
	c.spent = true

	if f == nil {
		return nil, models.NewFetchError(target, errNoFetcher)
	}
	resp, err := f.Get(ctx, target)
	if err != nil {
		return nil, models.NewFetchError(target, err)
	}
	if resp == nil {
		return nil, models.NewFetchError(target, errors.New("content: fetcher returned no response"))
	}

	body := resp.Body
	if body == nil {
		body = []byte{}
	}
	header := resp.Header
	if header == nil {
		header = http.Header{}
	}

	return &Fetched{
		url:        c.url,
		header:     header,
		body:       body,
		metadata:   c.metadata,
		statusCode: resp.StatusCode,
	}, nil
}

// Fetched is a retrieved resource waiting to be parsed.
type Fetched struct {
	url        *url.URL
	header     http.Header
	body       []byte
	metadata   models.Metadata
	statusCode int
	spent      bool
}

// URL returns the target URL.
func (c *Fetched) URL() *url.URL { return c.url }

// StatusCode is the HTTP status of the retrieval, for logging.
func (c *Fetched) StatusCode() int { return c.statusCode }

// Body returns the raw response body. Callers must not modify it.
func (c *Fetched) Body() []byte { return c.body }

// Header returns the response headers. Callers must not modify them.
func (c *Fetched) Header() http.Header { return c.header }

// Parse hands the body to the first registry family that recognizes it.
// It performs no I/O. Failures, including no family matching, are
// returned as a ParseError.
func (c *Fetched) Parse(reg *parser.Registry) (*models.Entry, error) {
	e, _, err := c.parse(reg)
	return e, err
}

func (c *Fetched) parse(reg *parser.Registry) (*models.Entry, string, error) {
	target := ""
	if c.url != nil {
		target = c.url.String()
	}
	if c.url == nil || c.body == nil || c.header == nil {
		return nil, "", models.NewParseError(target, ErrNotFetched)
	}
	if c.spent {
		return nil, "", models.NewParseError(target, ErrConsumed)
	}
	c.spent = true

	if reg == nil {
		return nil, "", models.NewParseError(target, errNoRegistry)
	}
	p, family, ok := reg.Identify(c.body, c.header, c.url)
	if !ok {
		return nil, "", models.NewParseError(target, parser.ErrNoParser)
	}

	e, err := p.Parse()
	if err != nil {
		return nil, family, models.NewParseError(target, err)
	}
	if e == nil {
		return nil, family, models.NewParseError(target, errors.New("content: parser returned no entry"))
	}
	e.Metadata.FillFrom(c.metadata)
	return e, family, nil
}

// ParseURL validates raw as an absolute http or https URL.
func ParseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidURL
	}
	return u, nil
}
