package htmlparser

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// document is the parsed DOM plus the metadata sources every field
// heuristic reads. Sources are collected once per parse.
type document struct {
	dom *goquery.Document

	// meta maps lower-cased <meta> name/property keys in <head> to the first
	// non-blank content value.
	meta map[string]string

	// ogImages are og:image objects in document order.
	ogImages []ogImage

	// schema holds every JSON-LD object, with arrays and @graph flattened.
	schema []map[string]any
}

type ogImage struct {
	url       string
	secureURL string
	width     uint64
	height    uint64
}

func (img ogImage) area() uint64 {
	if img.width != 0 && img.height > ^uint64(0)/img.width {
		return ^uint64(0)
	}
	return img.width * img.height
}

// candidate is the image URL to try: secure_url when given, url otherwise.
func (img ogImage) candidate() string {
	if strings.TrimSpace(img.secureURL) != "" {
		return img.secureURL
	}
	return img.url
}

func newDocument(dom *goquery.Document) *document {
	d := &document{
		dom:  dom,
		meta: make(map[string]string),
	}
	d.collectMeta()
	d.collectJSONLD()
	return d
}

func (d *document) collectMeta() {
	d.dom.Find("head meta").Each(func(_ int, s *goquery.Selection) {
		content, _ := s.Attr("content")
		content = strings.TrimSpace(content)

		for _, attr := range []string{"name", "property"} {
			key, ok := s.Attr(attr)
			if !ok {
				continue
			}
			key = strings.ToLower(strings.TrimSpace(key))
			if key == "" {
				continue
			}
			if content != "" {
				if _, seen := d.meta[key]; !seen {
					d.meta[key] = content
				}
			}
			if attr == "property" {
				d.addOGImageProperty(key, content)
			}
		}
	})
}

// addOGImageProperty applies an OpenGraph image property. og:image starts
// a new object; its structured properties attach to the latest one.
func (d *document) addOGImageProperty(key, value string) {
	switch key {
	case "og:image":
		if value != "" {
			d.ogImages = append(d.ogImages, ogImage{url: value})
		}
		return
	case "og:image:url", "og:image:secure_url", "og:image:width", "og:image:height":
	default:
		return
	}
	if value == "" {
		return
	}

	if len(d.ogImages) == 0 {
		d.ogImages = append(d.ogImages, ogImage{})
	}
	img := &d.ogImages[len(d.ogImages)-1]
	switch key {
	case "og:image:url":
		if img.url == "" {
			img.url = value
		}
	case "og:image:secure_url":
		img.secureURL = value
	case "og:image:width":
		img.width, _ = strconv.ParseUint(value, 10, 64)
	case "og:image:height":
		img.height, _ = strconv.ParseUint(value, 10, 64)
	}
}

func (d *document) collectJSONLD() {
	d.dom.Find("script[type]").Each(func(_ int, s *goquery.Selection) {
		typ, _ := s.Attr("type")
		if !strings.EqualFold(strings.TrimSpace(typ), "application/ld+json") {
			return
		}
		var v any
		if err := json.Unmarshal([]byte(s.Text()), &v); err != nil {
			slog.Debug("htmlparser: skipping malformed JSON-LD block", "error", err)
			return
		}
		d.schema = flattenSchema(d.schema, v)
	})
}

// flattenSchema appends every object in v to out. Top-level arrays and
// @graph members are expanded in place.
func flattenSchema(out []map[string]any, v any) []map[string]any {
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			out = flattenSchema(out, item)
		}
	case map[string]any:
		out = append(out, t)
		if graph, ok := t["@graph"]; ok {
			out = flattenSchema(out, graph)
		}
	}
	return out
}

// firstMeta returns the first non-blank meta value among keys.
func (d *document) firstMeta(keys ...string) string {
	for _, k := range keys {
		if v := d.meta[k]; v != "" {
			return v
		}
	}
	return ""
}
