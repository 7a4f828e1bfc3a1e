package htmlparser

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/sift/cleaner"
)

// containerSelectors are tried in order; the first matching element of each
// is the candidate main-content container.
var containerSelectors = cleaner.MustCompileSelectors(
	"article",
	"main",
	"[role=main]",
	"#content",
	"#main",
	".post-content",
	".article-content",
	".article-body",
	".entry-content",
	"[itemprop=articleBody]",
)

var blockSelector = cleaner.MustCompileSelectors("p, h1, h2, h3, h4, h5, h6, li, blockquote, pre")[0]

// extractContent produces the body in the configured format together with
// its plain-text form: readability first when enabled, then the container
// heuristics, then the whole document.
func (p *htmlParser) extractContent(d *document, decoded string) (body, plain string) {
	if p.opts.Mode == ModeReadability {
		if art, ok := cleaner.ExtractArticle(decoded, p.url); ok {
			slog.Debug("htmlparser: content from readability", "url", p.url.String())
			if p.md != nil {
				if md := p.renderMarkdown(art.HTML); md != "" {
					return md, art.Text
				}
			}
			return art.Text, art.Text
		}
	}

	text, container := heuristicContent(d)
	if p.md != nil {
		html, err := goquery.OuterHtml(container)
		if err == nil {
			if md := p.renderMarkdown(html); md != "" {
				return md, text
			}
		}
	}
	return text, text
}

func (p *htmlParser) renderMarkdown(html string) string {
	md, err := p.md.Render(html, p.url.String())
	if err != nil {
		slog.Debug("htmlparser: markdown rendering failed, using text", "url", p.url.String(), "error", err)
		return ""
	}
	return md
}

// heuristicContent returns the joined block text of the first candidate
// container that has any, together with that container. When no container
// yields text, it falls back to the text of the whole document and returns
// <body> as the container.
func heuristicContent(d *document) (string, *goquery.Selection) {
	for _, sel := range containerSelectors {
		container := d.dom.FindMatcher(sel.Matcher).First()
		if container.Length() == 0 {
			continue
		}
		if text := blockText(container); text != "" {
			slog.Debug("htmlparser: content container chosen", "selector", sel.Source)
			return text, container
		}
	}

	body := d.dom.Find("body").First()
	if body.Length() == 0 {
		body = d.dom.Selection
	}
	return cleaner.DocumentText(d.dom.Selection), body
}

// blockText joins the non-blank text blocks inside container with blank
// lines. Preformatted blocks keep their internal whitespace.
func blockText(container *goquery.Selection) string {
	var parts []string
	container.FindMatcher(blockSelector.Matcher).Each(func(_ int, s *goquery.Selection) {
		var t string
		if goquery.NodeName(s) == "pre" {
			t = strings.TrimSpace(s.Text())
		} else {
			t = cleaner.CollapseSpace(s.Text())
		}
		if t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, "\n\n")
}
