// Package htmlparser is the HTML parser family. It recognizes HTML by MIME
// type or by sniffing the body, then extracts an Entry from OpenGraph,
// Twitter Card, schema.org JSON-LD and plain HTML signals in a fixed
// priority order per field.
package htmlparser

import (
	"bytes"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/use-agent/sift/cleaner"
	"github.com/use-agent/sift/parser"
)

// FamilyName is the registry name of the HTML family.
const FamilyName = "html"

// sniffLen is how much of the body is inspected when the Content-Type does
// not announce HTML.
const sniffLen = 2048

// Format selects how body content is rendered.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

// Mode selects the body extraction strategy.
type Mode string

const (
	ModeHeuristic   Mode = "heuristic"
	ModeReadability Mode = "readability"
)

// Options configures the family for the whole process. The zero value is
// plain text with heuristic extraction.
type Options struct {
	Format Format
	Mode   Mode
}

// Family returns the HTML parser family configured with opts.
func Family(opts Options) parser.Family {
	var md *cleaner.Markdown
	if opts.Format == FormatMarkdown {
		md = cleaner.NewMarkdown()
	}

	return parser.Family{
		Name: FamilyName,
		Probe: func(body []byte, header http.Header, u *url.URL) (parser.Parser, bool) {
			if u == nil {
				return nil, false
			}
			essence, params := mediaType(header.Get("Content-Type"))
			if !isHTMLMime(essence) && !looksLikeHTML(body) {
				slog.Debug("htmlparser: body does not look like HTML", "url", u.String(), "content_type", essence)
				return nil, false
			}
			return &htmlParser{
				url:     u,
				body:    body,
				charset: params["charset"],
				opts:    opts,
				md:      md,
			}, true
		},
	}
}

// mediaType splits a Content-Type value into its lower-cased essence and
// parameters. A broken parameter keeps the essence with no parameters;
// an unparsable essence yields "".
func mediaType(contentType string) (string, map[string]string) {
	if strings.TrimSpace(contentType) == "" {
		return "", nil
	}
	essence, params, err := mime.ParseMediaType(contentType)
	if errors.Is(err, mime.ErrInvalidMediaParameter) {
		return strings.ToLower(essence), nil
	}
	if err != nil {
		return "", nil
	}
	return strings.ToLower(essence), params
}

func isHTMLMime(essence string) bool {
	return essence == "text/html" || essence == "application/xhtml+xml"
}

// looksLikeHTML reports whether the first sniffLen bytes contain a doctype
// or an <html> tag, ignoring case.
func looksLikeHTML(body []byte) bool {
	probe := body
	if len(probe) > sniffLen {
		probe = probe[:sniffLen]
	}
	lower := bytes.ToLower(probe)
	return bytes.Contains(lower, []byte("<!doctype html")) || bytes.Contains(lower, []byte("<html"))
}
