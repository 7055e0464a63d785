package structure

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// Text with more line breaks than this is assumed to be segmented already.
	maxBreaksForInsertion = 3

	// A paragraph longer than runOnLimit is split into chunks of at least chunkTarget.
	runOnLimit  = 800
	chunkTarget = 500
)

// Precompiled regex patterns, applied in declaration order by InsertBreaks.
var (
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// One <p ...>...</p> around the whole input.
	paragraphWrapper = regexp.MustCompile(`(?is)^<p(?:\s[^>]*)?>(.*)</p\s*>$`)

	// "...end. **Heading" -> break before the bold marker.
	boldAfterSentence = regexp.MustCompile(`([.!?]["”’']?)[ \t]+(\*\*\p{Lu})`)

	// Runs of three or more dashes become their own block.
	dashRun = regexp.MustCompile(`[ \t]*-{3,}[ \t]*`)

	// "...end. * **Term" -> break before the bullet.
	bulletAfterSentence = regexp.MustCompile(`([.!?:]["”’']?)[ \t]+(\* \*\*)`)

	// "* **A** text * **B**" -> break between consecutive bullets.
	bulletAfterBullet = regexp.MustCompile(`(\* \*\*[^\n]*?\S)[ \t]+(\* \*\*)`)

	blankLineRun = regexp.MustCompile(`\n\s*\n`)
)

// Unwrap strips a single paragraph tag pair enclosing the entire input.
// Anything else is returned trimmed and otherwise unchanged.
func Unwrap(raw string) string {
	t := strings.TrimSpace(raw)
	m := paragraphWrapper.FindStringSubmatch(t)
	if m == nil {
		return t
	}
	inner := strings.ToLower(m[1])
	if strings.Contains(inner, "<p>") || strings.Contains(inner, "<p ") || strings.Contains(inner, "</p") {
		return t
	}
	return strings.TrimSpace(m[1])
}

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(text string) string {
	return crlfOrCR.ReplaceAllString(text, "\n")
}

// markupTag matches a complete tag whose attributes, if any, all carry values.
// A bare "<" in prose, or a span like "<b and c>", does not match.
var markupTag = regexp.MustCompile(`<(/?)([A-Za-z][A-Za-z0-9]*)((?:\s+[A-Za-z_:][-\w:.]*\s*=\s*(?:"[^"]*"|'[^']*'|[^\s"'=<>` + "`" + `]+))*)\s*/?>`)

// markupElements are the elements CleanMarkup treats as markup. Any other
// tag-shaped span, such as "<name>", is left in the text.
var markupElements = map[atom.Atom]bool{
	atom.Br: true, atom.Strong: true, atom.B: true, atom.Em: true, atom.I: true,
	atom.P: true, atom.Div: true, atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true, atom.Span: true, atom.A: true,
	atom.U: true, atom.S: true, atom.Sup: true, atom.Sub: true, atom.Font: true,
	atom.Small: true, atom.Big: true, atom.Mark: true, atom.Code: true,
	atom.Section: true, atom.Article: true, atom.Blockquote: true, atom.Ul: true,
	atom.Ol: true, atom.Li: true, atom.Hr: true, atom.Img: true, atom.Html: true,
	atom.Body: true,
}

// CleanMarkup turns stray inline HTML in loose prose back into the loose
// conventions: <br> becomes a line break, <strong>/<b> become **, <em>/<i>
// become *, closing block tags become paragraph breaks, other known elements
// are dropped and entities are unescaped. Text that only looks like a tag is
// kept as written.
func CleanMarkup(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range markupTag.FindAllStringSubmatchIndex(text, -1) {
		a := atom.Lookup([]byte(strings.ToLower(text[m[4]:m[5]])))
		if !markupElements[a] {
			continue
		}
		b.WriteString(html.UnescapeString(text[last:m[0]]))
		last = m[1]

		closing := m[3] > m[2]
		switch a {
		case atom.Br:
			b.WriteByte('\n')
		case atom.Strong, atom.B:
			b.WriteString("**")
		case atom.Em, atom.I:
			b.WriteByte('*')
		case atom.P, atom.Div, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			if closing {
				b.WriteString("\n\n")
			}
		}
	}
	b.WriteString(html.UnescapeString(text[last:]))
	return b.String()
}

// InsertBreaks adds paragraph breaks to run-on text.
//
// Text that already has more than three line breaks is returned unchanged.
// Otherwise breaks are inserted before bold heading markers that follow a
// sentence end, around runs of three or more dashes, and before "* **" bullet
// markers that follow sentence punctuation or another such bullet. Finally any
// block longer than 800 characters is split at sentence boundaries into chunks
// of just over 500 characters.
func InsertBreaks(text string) string {
	if strings.Count(text, "\n") > maxBreaksForInsertion {
		return text
	}

	text = boldAfterSentence.ReplaceAllString(text, "$1\n\n$2")
	text = dashRun.ReplaceAllString(text, "\n\n---\n\n")
	text = bulletAfterSentence.ReplaceAllString(text, "$1\n\n$2")
	for {
		next := bulletAfterBullet.ReplaceAllString(text, "$1\n\n$2")
		if next == text {
			break
		}
		text = next
	}

	blocks := blankLineRun.Split(strings.TrimSpace(text), -1)
	out := make([]string, 0, len(blocks))
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if utf8.RuneCountInString(block) > runOnLimit && !strings.Contains(block, "\n") {
			out = append(out, splitRunOn(block)...)
			continue
		}
		out = append(out, block)
	}
	return strings.Join(out, "\n\n")
}

// splitRunOn groups sentences into chunks, closing a chunk once it passes chunkTarget.
func splitRunOn(block string) []string {
	var chunks []string
	var current strings.Builder
	for _, sent := range splitSentences(block) {
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(sent)
		if utf8.RuneCountInString(current.String()) > chunkTarget {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// splitSentences breaks text where end punctuation, an optional closing quote
// and whitespace are followed by a capital letter. It never splits inside an
// unbalanced parenthesis.
func splitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	start, depth := 0, 0

	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case '.', '!', '?':
			if depth > 0 {
				continue
			}
			end := i + 1
			if end < len(runes) && isClosingQuote(runes[end]) {
				end++
			}
			next := end
			for next < len(runes) && unicode.IsSpace(runes[next]) {
				next++
			}
			if next == end || next >= len(runes) || !unicode.IsUpper(runes[next]) {
				continue
			}
			sentences = append(sentences, strings.TrimSpace(string(runes[start:end])))
			start = next
			i = next - 1
		}
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

func isClosingQuote(r rune) bool {
	return r == '"' || r == '\'' || r == '”' || r == '’'
}
