package structure

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/microcosm-cc/bluemonday"
)

var (
	markupPolicy = bluemonday.UGCPolicy()

	mdConverter = converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)

	// CommonMark backslash escapes of ASCII punctuation.
	backslashEscape = regexp.MustCompile("\\\\([!-/:-@\\[-`{-~])")

	// Ordered list items; numbers in paragraph text come out escaped as "1\.".
	orderedItem = regexp.MustCompile(`(?m)^([ \t]*)(\d+\.[ \t])`)

	// Separators the converter puts between adjacent lists.
	htmlComment = regexp.MustCompile(`(?s)<!--.*?-->`)
)

// MarkedToText rewrites block-tagged markup into the loose line conventions
// (ATX headings, "-" bullets, "**"/"*" emphasis, ">" quotes) so the same
// segmenter and classifier can run over it. Untrusted tags are sanitized
// first. If conversion fails the markup is flattened instead.
func MarkedToText(markup string) string {
	clean := markupPolicy.Sanitize(markup)
	md, err := mdConverter.ConvertString(clean)
	if err != nil {
		return CleanMarkup(clean)
	}
	md = htmlComment.ReplaceAllString(md, "")
	md = orderedItem.ReplaceAllString(md, "$1- $2")
	md = backslashEscape.ReplaceAllString(md, "$1")
	return strings.TrimSpace(NormalizeLineEndings(md))
}
