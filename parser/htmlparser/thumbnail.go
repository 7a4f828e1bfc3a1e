package htmlparser

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/sift/cleaner"
)

var (
	touchIconSelector = cleaner.MustCompileSelectors(`link[rel~="apple-touch-icon"]`)[0]
	iconSelector      = cleaner.MustCompileSelectors(`link[rel~="icon"]`)[0]
)

// pickThumbnail returns the best absolute thumbnail URL, or "".
//
// Order: OpenGraph images by area, Twitter Card image, JSON-LD image, then
// touch icons and favicons ranked by declared size and filename.
func pickThumbnail(d *document, base *url.URL) string {
	images := make([]ogImage, len(d.ogImages))
	copy(images, d.ogImages)
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].area() > images[j].area()
	})
	for _, img := range images {
		if abs, ok := absolutise(img.candidate(), base); ok {
			return abs
		}
	}

	for _, key := range []string{"twitter:image", "twitter:image:src"} {
		if abs, ok := absolutise(d.meta[key], base); ok {
			return abs
		}
	}

	for _, obj := range d.schema {
		if abs, ok := absolutise(imageFromSchema(obj), base); ok {
			return abs
		}
	}

	for _, icon := range rankIcons(d.dom) {
		if abs, ok := absolutise(icon.href, base); ok {
			return abs
		}
	}
	return ""
}

// imageFromSchema reads "image" as a string, an object's contentUrl or url,
// or the first usable array entry.
func imageFromSchema(obj map[string]any) string {
	switch img := obj["image"].(type) {
	case string:
		return img
	case map[string]any:
		return imageObjectURL(img)
	case []any:
		for _, item := range img {
			switch v := item.(type) {
			case string:
				if strings.TrimSpace(v) != "" {
					return v
				}
			case map[string]any:
				if u := imageObjectURL(v); strings.TrimSpace(u) != "" {
					return u
				}
			}
		}
	}
	return ""
}

func imageObjectURL(obj map[string]any) string {
	if u, _ := obj["contentUrl"].(string); strings.TrimSpace(u) != "" {
		return u
	}
	u, _ := obj["url"].(string)
	return u
}

type icon struct {
	href  string
	area  uint64
	score int
}

// rankIcons lists touch icons, then generic icons, stably sorted by
// declared area (largest first) and then filename score (lowest first).
func rankIcons(dom *goquery.Document) []icon {
	var icons []icon
	collect := func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		sizes, _ := s.Attr("sizes")
		icons = append(icons, icon{
			href:  href,
			area:  sizesArea(sizes),
			score: filenameScore(href),
		})
	}
	dom.FindMatcher(touchIconSelector.Matcher).Each(collect)
	dom.FindMatcher(iconSelector.Matcher).Each(collect)

	sort.SliceStable(icons, func(i, j int) bool {
		if icons[i].area != icons[j].area {
			return icons[i].area > icons[j].area
		}
		return icons[i].score < icons[j].score
	})
	return icons
}

// sizesArea returns the largest WxH area listed in a sizes attribute such
// as "32x32 16x16". Unparsable or "any" entries count as zero.
func sizesArea(sizes string) uint64 {
	var best uint64
	for _, tok := range strings.Fields(strings.ToLower(sizes)) {
		w, h, ok := strings.Cut(tok, "x")
		if !ok {
			continue
		}
		wn, err1 := strconv.ParseUint(w, 10, 64)
		hn, err2 := strconv.ParseUint(h, 10, 64)
		if err1 != nil || err2 != nil {
			continue
		}
		if a := (ogImage{width: wn, height: hn}).area(); a > best {
			best = a
		}
	}
	return best
}

// filenameScore hints at icon quality from its name. Lower is better.
func filenameScore(href string) int {
	h := strings.ToLower(href)
	switch {
	case strings.Contains(h, "512"):
		return -3
	case strings.Contains(h, "192"), strings.Contains(h, "180"):
		return -2
	case strings.Contains(h, "favicon"):
		return -1
	default:
		return 0
	}
}

// absolutise resolves raw against base. Blank input is rejected;
// absolute URLs are kept and protocol-relative ones take base's scheme.
func absolutise(raw string, base *url.URL) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	if strings.HasPrefix(s, "//") {
		u, err := url.Parse(base.Scheme + ":" + s)
		if err != nil || u.Host == "" {
			return "", false
		}
		return u.String(), true
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", false
	}
	if u.IsAbs() {
		return u.String(), true
	}
	return base.ResolveReference(u).String(), true
}
