package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/docform/internal/doctree"
)

// MarkdownParser handles Markdown files. The source is passed through as
// loose text; goldmark is used only to find the document title.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (doctree.Raw, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return doctree.Raw{}, err
	}

	raw := doctree.Raw{Title: stem(filename), Text: string(src)}
	if title := markdownTitle(src); title != "" {
		raw.Title = title
	}
	return raw, nil
}

// markdownTitle returns the text of the first top-level h1, if any.
func markdownTitle(src []byte) string {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			return inlineText(h, src)
		}
	}
	return ""
}

// inlineText gets the text content of a goldmark AST node.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
			continue
		}
		buf.WriteString(inlineText(c, src))
	}
	return strings.TrimSpace(buf.String())
}
