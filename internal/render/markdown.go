package render

import (
	"regexp"
	"strings"

	"github.com/dgallion1/docform/internal/doctree"
)

// Lines that would be read back as structure if written verbatim.
var (
	leadingStructure = regexp.MustCompile(`^(?:#|>|[-*+][ \t]|-{3,}|\*{3,}|_{3,})`)
	leadingOrdinal   = regexp.MustCompile(`^(\d+)([.)][ \t])`)
)

// Markdown renders the canonical markdown form: "##" headings, "####"
// subheadings, "-" bullets and "*"-wrapped italic paragraphs. A "---" rule
// marks each section break.
func Markdown(doc *doctree.Document) string {
	var parts []string
	if doc.Title != "" {
		parts = append(parts, "# "+doc.Title)
	}
	for i, b := range doc.Blocks {
		if sectionBreak(doc.Blocks, i) {
			parts = append(parts, "---")
		}
		parts = append(parts, markdownBlock(b))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func markdownBlock(b doctree.Block) string {
	switch b.Kind {
	case doctree.KindHeading:
		return "## " + b.Text
	case doctree.KindSubheading:
		return "#### " + b.Text
	case doctree.KindBullet:
		return "- " + b.Text
	case doctree.KindItalicParagraph:
		if strings.Contains(b.Text, "*") {
			return "_" + b.Text + "_"
		}
		return "*" + b.Text + "*"
	default:
		return escapeLeading(b.Text)
	}
}

// escapeLeading backslash-escapes a marker at the start of paragraph text.
func escapeLeading(text string) string {
	if leadingOrdinal.MatchString(text) {
		return leadingOrdinal.ReplaceAllString(text, `$1\$2`)
	}
	if leadingStructure.MatchString(text) {
		return `\` + text
	}
	return text
}
