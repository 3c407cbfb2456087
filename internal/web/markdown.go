package web

import (
	"bytes"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	goldmark.WithRendererOptions(
		// No html.WithUnsafe(): raw HTML in postings must not pass through.
		html.WithHardWraps(),
	),
)

func renderMarkdownHTML(src string) template.HTML {
	src = strings.TrimSpace(src)
	if src == "" {
		return template.HTML("")
	}
	var b bytes.Buffer
	if err := markdownRenderer.Convert([]byte(src), &b); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(src) + "</pre>")
	}
	return template.HTML(b.String())
}

// postingPreview renders the head of a posting: whole paragraphs up to
// about maxRunes, or a hard cut with an ellipsis for one long paragraph.
func postingPreview(text string, maxRunes int) template.HTML {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= maxRunes {
		return renderMarkdownHTML(text)
	}
	var head []string
	n := 0
	for _, para := range strings.Split(text, "\n\n") {
		pn := utf8.RuneCountInString(para)
		if n+pn > maxRunes {
			break
		}
		head = append(head, para)
		n += pn
	}
	if len(head) == 0 {
		r := []rune(text)
		return renderMarkdownHTML(string(r[:maxRunes]) + "…")
	}
	return renderMarkdownHTML(strings.Join(head, "\n\n") + "\n\n…")
}
