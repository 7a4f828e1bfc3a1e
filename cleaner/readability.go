package cleaner

import (
	"log/slog"
	nurl "net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// minContentLength is the minimum text length (in characters) for
// readability output to be accepted. Below it the algorithm most likely
// missed the main content.
const minContentLength = 50

// Article is the body readability found.
type Article struct {
	// HTML is the cleaned article markup.
	HTML string
	// Text is the plain text with paragraphs on their own lines.
	Text string
}

// ExtractArticle runs the Mozilla Readability algorithm on decoded HTML.
// It reports false when readability fails or finds too little text; the
// caller then falls back to its own heuristics.
func ExtractArticle(decoded string, pageURL *nurl.URL) (Article, bool) {
	article, err := readability.FromReader(strings.NewReader(decoded), pageURL)
	if err != nil {
		slog.Debug("readability: extraction failed", "url", pageURL.String(), "error", err)
		return Article{}, false
	}

	text := normalizeArticleText(article.TextContent)
	if len([]rune(text)) < minContentLength {
		slog.Debug("readability: extracted content too short",
			"url", pageURL.String(), "length", len(text),
		)
		return Article{}, false
	}

	return Article{HTML: article.Content, Text: text}, true
}

// normalizeArticleText keeps readability's paragraph breaks but drops
// indentation and blank runs.
func normalizeArticleText(s string) string {
	var paras []string
	for _, line := range strings.Split(s, "\n") {
		if line = CollapseSpace(line); line != "" {
			paras = append(paras, line)
		}
	}
	return strings.Join(paras, "\n\n")
}
