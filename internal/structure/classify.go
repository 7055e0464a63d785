package structure

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/docform/internal/doctree"
)

const (
	maxHeadingLen      = 80
	minCapsHeadingLen  = 3
	minFallbackHeading = 5
	maxFallbackHeading = 60
)

var (
	ruleLine     = regexp.MustCompile(`^(?:-{3,}|\*{3,}|_{3,})$`)
	h3Line       = regexp.MustCompile(`^###[ \t]+(.+?)(?:[ \t]+#+)?$`)
	h2Line       = regexp.MustCompile(`^##[ \t]+(.+?)(?:[ \t]+#+)?$`)
	h1Line       = regexp.MustCompile(`^#[ \t]+(.+?)(?:[ \t]+#+)?$`)
	deepHeading  = regexp.MustCompile(`^#{4,6}[ \t]+(.+?)(?:[ \t]+#+)?$`)
	boldLine     = regexp.MustCompile(`^\*\*([^*\n]+)\*\*$`)
	ordinalLine  = regexp.MustCompile(`^(?:\d+|[IVXLCDM]+)\.[ \t]+\S`)
	capsLine     = regexp.MustCompile(`^[\p{Lu}0-9 .,:;!?'’"“”&()/\-–—]+$`)
	bulletMarker = regexp.MustCompile(`^[-*][ \t]+`)
	quoteMarker  = regexp.MustCompile(`^>[ \t]?`)
)

// isRule reports whether the block is only a horizontal rule: three or more
// dashes, asterisks or underscores.
func isRule(t string) bool {
	return ruleLine.MatchString(strings.TrimSpace(t))
}

// isBoldHeading reports whether the line is fully wrapped in one ** pair with
// inner text under 80 characters.
func isBoldHeading(t string) (string, bool) {
	m := boldLine.FindStringSubmatch(t)
	if m == nil || utf8.RuneCountInString(m[1]) >= maxHeadingLen {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// isOrdinalHeading reports whether the line starts with a numeric ("1.") or
// uppercase roman ("IV.") ordinal followed by text, is under 80 characters and
// has no line break.
func isOrdinalHeading(t string) bool {
	return ordinalLine.MatchString(t) &&
		utf8.RuneCountInString(t) < maxHeadingLen &&
		!strings.Contains(t, "\n")
}

// isCapsHeading reports whether the line is over 3 and under 80 characters and
// made only of uppercase letters, digits, spaces and a restricted punctuation
// set, with at least one letter.
func isCapsHeading(t string) bool {
	n := utf8.RuneCountInString(t)
	if n <= minCapsHeadingLen || n >= maxHeadingLen || bulletMarker.MatchString(t) {
		return false
	}
	if !capsLine.MatchString(t) {
		return false
	}
	return strings.IndexFunc(t, unicode.IsLetter) >= 0
}

// isFallbackHeading reports whether a short line reads like a title: 5 to 60
// characters, not ending in . , ? !, starting uppercase, title-cased, and free
// of conversational sentence markers.
func (c *compiledRules) isFallbackHeading(t string) bool {
	n := utf8.RuneCountInString(t)
	if n < minFallbackHeading || n > maxFallbackHeading {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(t)
	switch last {
	case '.', ',', '?', '!':
		return false
	}
	first, _ := utf8.DecodeRuneInString(t)
	if !unicode.IsUpper(first) {
		return false
	}
	if c.conversational != nil && c.conversational.MatchString(normalizeApostrophes(t)) {
		return false
	}
	return isTitleCased(t)
}

// isTitleCased reports whether every word of four or more letters starts uppercase.
// The fallback rule needs it so a short sentence fragment such as
// "Intro paragraph" before a suppressed section stays a Paragraph.
func isTitleCased(t string) bool {
	for _, w := range strings.Fields(t) {
		w = strings.TrimLeftFunc(w, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
		if utf8.RuneCountInString(w) < 4 {
			continue
		}
		first, _ := utf8.DecodeRuneInString(w)
		if unicode.IsLetter(first) && !unicode.IsUpper(first) {
			return false
		}
	}
	return true
}

// isMajorHeading reports whether the line ends a suppressed section: a short
// bold-wrapped line or a #, ## or ### marker line.
func isMajorHeading(t string) bool {
	if _, ok := isBoldHeading(t); ok {
		return true
	}
	return h3Line.MatchString(t) || h2Line.MatchString(t) || h1Line.MatchString(t)
}

// isSuppressedOpener reports whether the line opens a section to drop.
func (c *compiledRules) isSuppressedOpener(t string) bool {
	if utf8.RuneCountInString(t) >= maxHeadingLen {
		return false
	}
	label := strings.TrimRight(StripEmphasis(t), ": ")
	for _, re := range c.suppressed {
		if re.MatchString(label) {
			return true
		}
	}
	return false
}

// isAttribution reports whether the line contains the canonical credit phrase.
func (c *compiledRules) isAttribution(t string) bool {
	if c.attribution == "" {
		return false
	}
	return strings.Contains(strings.ToLower(normalizeApostrophes(StripEmphasis(t))), c.attribution)
}

// isCalloutLabel reports whether a heading label opens a callout section.
func (c *compiledRules) isCalloutLabel(label string) bool {
	label = strings.ToLower(strings.TrimLeftFunc(label, func(r rune) bool { return !unicode.IsLetter(r) }))
	for _, p := range c.calloutPrefixes {
		if strings.HasPrefix(label, p) {
			return true
		}
	}
	return false
}

// heading detects a heading line, trying each rule in priority order. It
// returns the flat label and whether the heading is a subheading.
func (c *compiledRules) heading(t string) (label string, sub bool, ok bool) {
	if m := h3Line.FindStringSubmatch(t); m != nil {
		return StripEmphasis(m[1]), false, true
	}
	if m := h2Line.FindStringSubmatch(t); m != nil {
		return StripEmphasis(m[1]), false, true
	}
	if m := h1Line.FindStringSubmatch(t); m != nil {
		return StripEmphasis(m[1]), false, true
	}
	if m := deepHeading.FindStringSubmatch(t); m != nil {
		return StripEmphasis(m[1]), true, true
	}
	if inner, ok := isBoldHeading(t); ok {
		return StripEmphasis(inner), false, true
	}
	if isOrdinalHeading(t) || isCapsHeading(t) || c.isFallbackHeading(t) {
		return StripEmphasis(t), false, true
	}
	return "", false, false
}

func normalizeApostrophes(s string) string {
	return strings.ReplaceAll(s, "’", "'")
}

// classifierState is threaded through the block fold. It is passed and
// returned by value.
type classifierState struct {
	inCallout    bool
	inSuppressed bool
}

// classified is a block plus whether it is an attribution line.
type classified struct {
	block       doctree.Block
	attribution bool
}

// step classifies one block. It returns the next state, the classified block
// and whether the block survives.
func (c *compiledRules) step(s classifierState, text string) (classifierState, classified, bool) {
	t := strings.TrimSpace(text)
	if t == "" || isRule(t) {
		return s, classified{}, false
	}

	switch {
	case c.isSuppressedOpener(t):
		s.inSuppressed = true
		return s, classified{}, false
	case s.inSuppressed:
		if !isMajorHeading(t) {
			return s, classified{}, false
		}
		s.inSuppressed = false
	}

	if c.isAttribution(t) {
		return s, classified{
			block:       doctree.Block{Kind: doctree.KindParagraph, Text: t},
			attribution: true,
		}, true
	}

	if label, sub, ok := c.heading(t); ok {
		kind := doctree.KindHeading
		if sub {
			kind = doctree.KindSubheading
		} else {
			s.inCallout = c.isCalloutLabel(label)
		}
		return s, classified{block: doctree.Block{Kind: kind, Text: label}}, true
	}

	if loc := bulletMarker.FindStringIndex(t); loc != nil {
		return s, classified{block: doctree.Block{Kind: doctree.KindBullet, Text: t[loc[1]:]}}, true
	}

	if loc := quoteMarker.FindStringIndex(t); loc != nil {
		return s, classified{block: doctree.Block{Kind: doctree.KindItalicParagraph, Text: strings.TrimSpace(t[loc[1]:])}}, true
	}

	if s.inCallout {
		return s, classified{block: doctree.Block{Kind: doctree.KindItalicParagraph, Text: t}}, true
	}
	return s, classified{block: doctree.Block{Kind: doctree.KindParagraph, Text: t}}, true
}

// classifyBlocks folds step over the candidate blocks, then keeps only the
// last attribution line and numbers the survivors.
func (c *compiledRules) classifyBlocks(texts []string) []doctree.Block {
	var s classifierState
	out := make([]classified, 0, len(texts))
	for _, text := range texts {
		var cb classified
		var keep bool
		s, cb, keep = c.step(s, text)
		if keep {
			out = append(out, cb)
		}
	}
	return removeAllButLastAttribution(out)
}

// removeAllButLastAttribution drops every attribution block except the last
// and assigns each survivor its position.
func removeAllButLastAttribution(blocks []classified) []doctree.Block {
	last := -1
	for i, cb := range blocks {
		if cb.attribution {
			last = i
		}
	}
	out := make([]doctree.Block, 0, len(blocks))
	for i, cb := range blocks {
		if cb.attribution && i != last {
			continue
		}
		b := cb.block
		b.Index = len(out)
		out = append(out, b)
	}
	return out
}
