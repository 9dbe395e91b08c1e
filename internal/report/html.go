package report

import (
	"fmt"

	"anovakit/internal/config"
	"anovakit/internal/errors"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// ToHTML converts a markdown report to an HTML fragment
func ToHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(md))

	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}

// Render returns the report in the requested format
func Render(md string, format string) ([]byte, error) {
	switch format {
	case config.FormatMarkdown, "":
		return []byte(md), nil
	case config.FormatHTML:
		return ToHTML(md), nil
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unknown report format %q", format))
	}
}
