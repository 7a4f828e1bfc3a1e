package cleaner

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// Markdown renders HTML fragments to Markdown. It wraps a single converter
// that is goroutine-safe and reused across documents.
type Markdown struct {
	conv *converter.Converter
}

// NewMarkdown builds the converter:
//
//   - base plugin: strips script, style, iframe, noscript, head, meta, link,
//     input, textarea and comments.
//   - commonmark plugin: headings, lists, links, code blocks, emphasis,
//     blockquotes.
//   - table plugin: keeps tables with minimal cell padding.
func NewMarkdown() *Markdown {
	return &Markdown{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(
					table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
				),
			),
		),
	}
}

// Render converts htmlContent to Markdown. Relative links and images are
// resolved against pageURL.
func (m *Markdown) Render(htmlContent, pageURL string) (string, error) {
	md, err := m.conv.ConvertString(htmlContent, converter.WithDomain(pageURL))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}
