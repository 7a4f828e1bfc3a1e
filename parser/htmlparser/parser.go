package htmlparser

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/sift/cleaner"
	"github.com/use-agent/sift/models"
)

// ErrUndecodable means the body could not be parsed as HTML at all.
var ErrUndecodable = errors.New("htmlparser: body could not be parsed as HTML")

type htmlParser struct {
	url     *url.URL
	body    []byte
	charset string
	opts    Options
	md      *cleaner.Markdown
}

// Parse extracts the Entry. Individual fields degrade to empty; only a
// body that cannot be built into a DOM is an error.
func (p *htmlParser) Parse() (entry *models.Entry, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("htmlparser: recovered from panic during extraction", "url", p.url.String(), "panic", r)
			entry, err = nil, fmt.Errorf("htmlparser: extraction panicked: %v", r)
		}
	}()

	slog.Debug("htmlparser: parse", "host", p.url.Host, "path", p.url.Path, "bytes", len(p.body))

	decoded := decode(p.body, p.charset)
	dom, err := goquery.NewDocumentFromReader(strings.NewReader(decoded))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	d := newDocument(dom)

	content, plain := p.extractContent(d, decoded)
	published, updated := extractTimes(d)
	e := &models.Entry{
		Title:   pickTitle(d),
		Origin:  pickOrigin(d, p.url),
		Author:  pickAuthor(d),
		URL:     p.url.String(),
		Content: cleaner.CapLength(content, cleaner.MaxContentChars),
		Metadata: models.Metadata{
			Summary:       pickSummary(d, plain),
			ThumbnailURL:  pickThumbnail(d, p.url),
			PublishedTime: published,
			UpdatedTime:   updated,
		},
	}

	slog.Debug("htmlparser: entry extracted",
		"url", e.URL,
		"title_len", len(e.Title),
		"content_len", len(e.Content),
		"has_author", e.Author != "",
		"has_thumbnail", e.ThumbnailURL != "",
	)
	return e, nil
}
