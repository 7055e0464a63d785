package structure

import (
	"regexp"

	"github.com/dgallion1/docform/internal/doctree"
)

var (
	paragraphClose = regexp.MustCompile(`(?i)</p\s*>`)
	headingOpen    = regexp.MustCompile(`(?i)<h[2-6][\s>/]`)
	listOpen       = regexp.MustCompile(`(?i)<(?:ul|ol|li|blockquote)[\s>/]`)
)

// Classify decides whether raw is already block-tagged markup.
//
// Input is Marked when it has at least two closing paragraph tags, any h2-h6
// tag, or any list or blockquote tag. A single paragraph wrapper is not enough:
// it cannot be told apart from a document that is one long paragraph.
func Classify(raw string) doctree.Format {
	if len(paragraphClose.FindAllStringIndex(raw, 2)) >= 2 ||
		headingOpen.MatchString(raw) ||
		listOpen.MatchString(raw) {
		return doctree.FormatMarked
	}
	return doctree.FormatLoose
}
