package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dgallion1/docform/internal/doctree"
)

// HTMLParser handles HTML files. It keeps the body markup, minus page chrome
// and scripts, so the engine sees block-tagged content.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (doctree.Raw, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return doctree.Raw{}, fmt.Errorf("parse html: %w", err)
	}

	raw := doctree.Raw{Title: stem(filename)}
	if title := findTitle(doc); title != "" {
		raw.Title = title
	}

	root := findBody(doc)
	if root == nil {
		root = doc
	}
	stripChrome(root)

	var sb strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return doctree.Raw{}, fmt.Errorf("render html: %w", err)
		}
	}
	raw.Text = strings.TrimSpace(sb.String())
	return raw, nil
}

// stripChrome removes non-content elements and comments below n.
func stripChrome(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if isChrome(c) {
			n.RemoveChild(c)
		} else {
			stripChrome(c)
		}
		c = next
	}
}

func isChrome(n *html.Node) bool {
	if n.Type == html.CommentNode {
		return true
	}
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Nav, atom.Footer, atom.Header, atom.Noscript, atom.Template:
		return true
	}
	return false
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.DataAtom == atom.Title {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
