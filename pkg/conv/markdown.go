package conv

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/inbucket/html2text"
)

var (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags  = html.CommonFlags
)

func MarkdownToHTML(md []byte) string {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	return string(markdown.Render(p.Parse(md), renderer))
}

// MarkdownToText renders markdown and flattens the result to plain text, so
// formatting syntax does not end up in retrieved snippets.
func MarkdownToText(md []byte) (string, error) {
	text, err := html2text.FromString(MarkdownToHTML(md), html2text.Options{
		OmitLinks: true,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
