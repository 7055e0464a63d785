package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/docform/internal/doctree"
)

// DOCXParser handles .docx files. Heading styles become markdown heading
// markers and bold or italic runs become emphasis markers, so the engine
// sees the same loose conventions as in typed prose.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (doctree.Raw, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return doctree.Raw{}, fmt.Errorf("read docx: %w", err)
	}

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return doctree.Raw{}, fmt.Errorf("parse docx: %w", err)
	}

	raw := doctree.Raw{Title: stem(filename)}
	var blocks []string
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		level := docxHeadingLevel(para)
		if strings.EqualFold(docxStyle(para), "Title") {
			if t := docxParagraphText(para, false); t != "" {
				raw.Title = t
			}
			continue
		}
		text := docxParagraphText(para, level == 0)
		if text == "" {
			continue
		}
		blocks = append(blocks, headingMarker(level)+text)
	}
	raw.Text = strings.Join(blocks, "\n\n")
	return raw, nil
}

// headingMarker maps a docx heading level to the marker the engine reads:
// levels 1-3 are headings, deeper levels are subheadings.
func headingMarker(level int) string {
	switch {
	case level <= 0:
		return ""
	case level <= 2:
		return "## "
	case level == 3:
		return "### "
	default:
		return "#### "
	}
}

func docxStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return para.Properties.Style.Val
}

func docxHeadingLevel(para *docx.Paragraph) int {
	style := strings.ToLower(strings.ReplaceAll(docxStyle(para), " ", ""))
	if !strings.HasPrefix(style, "heading") {
		return 0
	}
	switch strings.TrimPrefix(style, "heading") {
	case "1":
		return 1
	case "2":
		return 2
	case "3":
		return 3
	case "4":
		return 4
	case "5":
		return 5
	case "6":
		return 6
	}
	return 0
}

// docxParagraphText joins a paragraph's runs. With emphasis set, bold and
// italic runs are wrapped in ** and * markers.
func docxParagraphText(para *docx.Paragraph, emphasis bool) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		var text strings.Builder
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				text.WriteString(t.Text)
			}
		}
		buf.WriteString(wrapRun(text.String(), run.RunProperties, emphasis))
	}
	return strings.TrimSpace(buf.String())
}

// wrapRun adds emphasis markers around the non-space core of a run.
func wrapRun(s string, props *docx.RunProperties, emphasis bool) string {
	core := strings.TrimSpace(s)
	if !emphasis || props == nil || core == "" {
		return s
	}
	marker := ""
	switch {
	case props.Bold != nil:
		marker = "**"
	case props.Italic != nil:
		marker = "*"
	default:
		return s
	}
	lead := s[:strings.Index(s, core)]
	trail := s[len(lead)+len(core):]
	return lead + marker + core + marker + trail
}
