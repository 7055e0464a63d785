package structure

import (
	"regexp"
	"strings"

	"github.com/dgallion1/docform/internal/doctree"
)

var (
	// Group 1 is bold text, group 2 is italic text.
	emphasisRun = regexp.MustCompile(`\*\*([^*]+)\*\*|\*([^*\s](?:[^*]*[^*\s])?)\*`)

	leadingMarkers = regexp.MustCompile(`^(?:#{1,6}[ \t]*|>[ \t]*)+`)
	boldStars      = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	boldUnders     = regexp.MustCompile(`__([^_]+)__`)
	italicStar     = regexp.MustCompile(`\*([^*\s](?:[^*]*[^*\s])?)\*`)
	italicUnder    = regexp.MustCompile(`(^|[^\p{L}\p{N}_])_([^_\s](?:[^_]*[^_\s])?)_([^\p{L}\p{N}_]|$)`)
)

// StripEmphasis removes paired bold and italic markers and any leading
// heading hashes or blockquote markers, keeping the inner text. It produces
// the flat labels used for headings.
func StripEmphasis(text string) string {
	text = leadingMarkers.ReplaceAllString(strings.TrimSpace(text), "")
	// Nested runs like "**a *b***" need a second pass.
	for {
		next := boldStars.ReplaceAllString(text, "$1")
		next = boldUnders.ReplaceAllString(next, "$1")
		next = italicStar.ReplaceAllString(next, "$1")
		next = italicUnder.ReplaceAllString(next, "$1$2$3")
		if next == text {
			break
		}
		text = next
	}
	return strings.TrimSpace(text)
}

// RenderInline splits text into plain and emphasized fragments in reading order.
// Concatenating the fragment texts yields text with the emphasis markers removed.
func RenderInline(text string) []doctree.Fragment {
	frags := make([]doctree.Fragment, 0, 1)
	pos := 0
	for _, m := range emphasisRun.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > pos {
			frags = append(frags, doctree.Plain(text[pos:m[0]]))
		}
		if m[2] >= 0 {
			frags = append(frags, doctree.Emphasized(doctree.EmphasisBold, text[m[2]:m[3]]))
		} else {
			frags = append(frags, doctree.Emphasized(doctree.EmphasisItalic, text[m[4]:m[5]]))
		}
		pos = m[1]
	}
	if pos < len(text) {
		frags = append(frags, doctree.Plain(text[pos:]))
	}
	return frags
}
