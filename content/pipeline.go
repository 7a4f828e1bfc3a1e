package content

import (
	"context"
	"log/slog"
	"time"

	"github.com/use-agent/sift/fetcher"
	"github.com/use-agent/sift/models"
	"github.com/use-agent/sift/parser"
)

// Pipeline runs New → Fetch → Parse for raw URL strings. It holds only
// shared read-only collaborators and is safe for concurrent use.
type Pipeline struct {
	Fetcher  fetcher.Fetcher
	Registry *parser.Registry
}

// Result is the outcome of one Run. Entry is nil on error; the durations
// cover whatever phases ran.
type Result struct {
	Entry         *models.Entry
	Parser        string
	StatusCode    int
	FetchDuration time.Duration
	ParseDuration time.Duration
}

// Run ingests rawURL. The returned error is always a *models.ContentError.
// Strings that are not absolute http(s) URLs fail as fetch errors before
// any network I/O.
func (p *Pipeline) Run(ctx context.Context, rawURL string, seed *models.Metadata) (Result, error) {
	var res Result

	u, err := ParseURL(rawURL)
	if err != nil {
		slog.Warn("content: rejected target URL", "url", rawURL, "error", err)
		return res, models.NewFetchError(rawURL, err)
	}

	start := time.Now()
	fetched, err := New(u, seed).Fetch(ctx, p.Fetcher)
	res.FetchDuration = time.Since(start)
	if err != nil {
		slog.Warn("content: fetch failed",
			"url", rawURL,
			"phase", "fetch",
			"duration_ms", res.FetchDuration.Milliseconds(),
			"error", err,
		)
		return res, err
	}
	res.StatusCode = fetched.StatusCode()
	slog.Info("content: fetched",
		"url", rawURL,
		"phase", "fetch",
		"status", res.StatusCode,
		"bytes", len(fetched.Body()),
		"duration_ms", res.FetchDuration.Milliseconds(),
	)

	start = time.Now()
	entry, family, err := fetched.parse(p.Registry)
	res.ParseDuration = time.Since(start)
	res.Parser = family
	if err != nil {
		slog.Warn("content: parse failed",
			"url", rawURL,
			"phase", "parse",
			"parser", family,
			"duration_ms", res.ParseDuration.Milliseconds(),
			"error", err,
		)
		return res, err
	}

	res.Entry = entry
	slog.Info("content: parsed",
		"url", rawURL,
		"phase", "parse",
		"parser", family,
		"duration_ms", res.ParseDuration.Milliseconds(),
	)
	return res, nil
}
