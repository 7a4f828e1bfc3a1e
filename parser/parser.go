// Package parser defines parser families and the ordered registry that
// dispatches fetched content to the first family that recognizes it.
package parser

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/use-agent/sift/models"
)

// ErrNoParser is returned when no registered family recognizes the content.
var ErrNoParser = errors.New("no parser recognized the content")

// Parser is a ready-to-use extractor for one recognized document.
type Parser interface {
	Parse() (*models.Entry, error)
}

// Probe inspects the raw body, response headers and source URL. It returns
// a Parser when the content looks like its family, or false to decline.
// Probes must not modify body or header.
type Probe func(body []byte, header http.Header, u *url.URL) (Parser, bool)

// Family is a named probe.
type Family struct {
	Name  string
	Probe Probe
}

// Registry is a fixed, ordered list of families. Order is priority: when two
// families could handle a document, the earlier one wins.
//
// A Registry is read-only after NewRegistry and safe for concurrent use.
type Registry struct {
	families []Family
}

// NewRegistry returns a registry trying families in the given order.
// Families with a nil Probe are skipped.
func NewRegistry(families ...Family) *Registry {
	fs := make([]Family, 0, len(families))
	for _, f := range families {
		if f.Probe != nil {
			fs = append(fs, f)
		}
	}
	return &Registry{families: fs}
}

// Identify returns the Parser of the first family whose probe accepts the
// content, together with the family name.
func (r *Registry) Identify(body []byte, header http.Header, u *url.URL) (Parser, string, bool) {
	for _, f := range r.families {
		if p, ok := f.Probe(body, header, u); ok && p != nil {
			return p, f.Name, true
		}
	}
	return nil, "", false
}

// Names lists family names in priority order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.families))
	for i, f := range r.families {
		names[i] = f.Name
	}
	return names
}
