package htmlparser

import (
	"net"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/publicsuffix"

	"github.com/use-agent/sift/cleaner"
)

var authorMetaKeys = []string{
	"author",
	"article:author",
	"parsely-author",
	"dc.creator",
	"dcterms.creator",
	"byline",
	"byl",
}

func pickTitle(d *document) string {
	if t := d.firstMeta("og:title", "twitter:title"); t != "" {
		return t
	}
	if t := strings.TrimSpace(documentTitle(d.dom).Text()); t != "" {
		return t
	}
	return cleaner.CollapseSpace(d.dom.Find("h1").First().Text())
}

// documentTitle is the head <title>, or a stray <title> outside inline SVG
// and MathML when the head has none.
func documentTitle(dom *goquery.Document) *goquery.Selection {
	if t := dom.Find("head > title").First(); t.Length() > 0 {
		return t
	}
	return dom.Find("title").Not("svg title, math title").First()
}

// pickSummary falls back to the first paragraph of the plain-text body.
func pickSummary(d *document, content string) string {
	if s := d.firstMeta("og:description", "twitter:description", "description"); s != "" {
		return s
	}
	return cleaner.FirstParagraph(content)
}

func pickAuthor(d *document) string {
	if a := d.firstMeta(authorMetaKeys...); a != "" {
		return a
	}
	if a := stripHandle(d.meta["twitter:creator"]); a != "" {
		return a
	}
	for _, obj := range d.schema {
		if a := strings.TrimSpace(authorFromSchema(obj)); a != "" {
			return a
		}
	}
	return ""
}

// authorFromSchema reads "author" as a string, an object's name, or the
// first usable element of an array.
func authorFromSchema(obj map[string]any) string {
	switch a := obj["author"].(type) {
	case string:
		return a
	case map[string]any:
		name, _ := a["name"].(string)
		return name
	case []any:
		for _, item := range a {
			switch v := item.(type) {
			case string:
				if strings.TrimSpace(v) != "" {
					return v
				}
			case map[string]any:
				if name, _ := v["name"].(string); strings.TrimSpace(name) != "" {
					return name
				}
			}
		}
	}
	return ""
}

func pickOrigin(d *document, u *url.URL) string {
	if o := d.firstMeta("og:site_name", "application-name"); o != "" {
		return o
	}
	if o := stripHandle(d.meta["twitter:site"]); o != "" {
		return o
	}
	return registrableDomain(u)
}

// registrableDomain returns the eTLD+1 of u's host. Hosts without one
// (localhost, bare public suffixes) are returned unchanged; IP addresses
// have no domain and yield "".
func registrableDomain(u *url.URL) string {
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if host == "" || net.ParseIP(host) != nil {
		return ""
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return domain
}

func stripHandle(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "@"))
}
