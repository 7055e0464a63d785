package render

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/docform/internal/doctree"
)

// ErrHTMLConversion indicates a block failed to render.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// CSS class names applied to rendered blocks.
const (
	ClassDropCap      = "drop-cap"
	ClassCallout      = "callout"
	ClassSectionBreak = "section-break"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{if .Title}}{{.Title}}{{else}}Document{{end}}</title>
<style>
body { max-width: 42em; margin: 2em auto; font-family: Georgia, serif; line-height: 1.6; }
p.drop-cap::first-letter { float: left; font-size: 3.2em; line-height: 0.9; padding-right: 0.08em; }
p.callout { font-style: italic; }
hr.section-break { border: 0; text-align: center; }
hr.section-break::after { content: "\2766"; }
</style>
</head>
<body>
{{if .Title}}<h1>{{.Title}}</h1>
{{end}}{{.Body}}</body>
</html>
`))

// HTMLRenderer renders documents as standalone HTML5 pages. Raw HTML in
// block text is never passed through.
type HTMLRenderer struct {
	md goldmark.Markdown
}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{md: goldmark.New()}
}

var defaultHTML = NewHTMLRenderer()

// HTML renders doc with the default renderer.
func HTML(doc *doctree.Document) (string, error) {
	return defaultHTML.Render(doc)
}

// Render returns a complete HTML page for doc.
func (r *HTMLRenderer) Render(doc *doctree.Document) (string, error) {
	body, err := r.Body(doc)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{doc.Title, template.HTML(body)}) // #nosec G203 -- body comes from goldmark with raw HTML disabled
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return buf.String(), nil
}

// Body returns the rendered blocks without the page wrapper. Consecutive
// bullets share one list.
func (r *HTMLRenderer) Body(doc *doctree.Document) (string, error) {
	first := doc.FirstParagraph()
	var sb strings.Builder
	var bullets []string

	flush := func() error {
		if len(bullets) == 0 {
			return nil
		}
		out, err := r.convert("- "+strings.Join(bullets, "\n- "), "")
		if err != nil {
			return err
		}
		sb.WriteString(out)
		bullets = bullets[:0]
		return nil
	}

	for i, b := range doc.Blocks {
		if b.Kind == doctree.KindBullet {
			bullets = append(bullets, b.Text)
			continue
		}
		if err := flush(); err != nil {
			return "", err
		}
		if sectionBreak(doc.Blocks, i) {
			sb.WriteString(`<hr class="` + ClassSectionBreak + `">` + "\n")
		}

		switch b.Kind {
		case doctree.KindHeading:
			sb.WriteString("<h2>" + html.EscapeString(b.Text) + "</h2>\n")
		case doctree.KindSubheading:
			sb.WriteString("<h3>" + html.EscapeString(b.Text) + "</h3>\n")
		default:
			class := ""
			switch {
			case b.Kind == doctree.KindItalicParagraph:
				class = ClassCallout
			case i == first:
				class = ClassDropCap
			}
			out, err := r.convert(escapeLeading(b.Text), class)
			if err != nil {
				return "", err
			}
			sb.WriteString(out)
		}
	}
	if err := flush(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// convert renders one markdown snippet, setting class on its first node.
func (r *HTMLRenderer) convert(md, class string) (string, error) {
	src := []byte(md)
	root := r.md.Parser().Parse(text.NewReader(src))
	if class != "" {
		if n := root.FirstChild(); n != nil && n.Kind() == ast.KindParagraph {
			n.SetAttributeString("class", []byte(class))
		}
	}
	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, src, root); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return buf.String(), nil
}
