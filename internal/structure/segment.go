package structure

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Blocks starting with a lowercase letter or longer than this may be sentence fragments.
const fragmentMinLen = 60

var structuralLine = regexp.MustCompile(`^(?:#{1,6}\s|[-*]\s|>|\*\*[^*\n]+\*\*$)`)

// Segment splits text on blank lines, then splits any block that still holds
// single line breaks into one block per non-empty line.
func Segment(text string) []string {
	var blocks []string
	for _, coarse := range blankLineRun.Split(text, -1) {
		coarse = strings.TrimSpace(coarse)
		if coarse == "" {
			continue
		}
		if !strings.Contains(coarse, "\n") {
			blocks = append(blocks, coarse)
			continue
		}
		for _, line := range strings.Split(coarse, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				blocks = append(blocks, line)
			}
		}
	}
	return blocks
}

// Rejoin glues together blocks that were broken mid-sentence.
//
// A block opens an accumulator when it does not end in . ! ? " : ) and is
// either longer than 60 characters or starts lowercase. Following blocks are
// appended with a space until one ends a sentence. Structural lines (markdown
// headings, bullets, quotes, bold lines, rules) never open an accumulator and
// close any open one before being emitted on their own, so a heading that
// follows a fragment is never glued onto it.
func Rejoin(blocks []string) []string {
	out := make([]string, 0, len(blocks))
	var acc string

	for _, b := range blocks {
		if acc != "" {
			if isStructural(b) {
				out = append(out, acc)
				acc = ""
			} else {
				acc += " " + b
				if endsSentence(b) {
					out = append(out, acc)
					acc = ""
				}
				continue
			}
		}
		if isIncomplete(b) {
			acc = b
			continue
		}
		out = append(out, b)
	}
	if acc != "" {
		out = append(out, acc)
	}
	return out
}

// endsSentence reports whether b ends in . ! ? optionally followed by a closing quote.
func endsSentence(b string) bool {
	last, size := utf8.DecodeLastRuneInString(b)
	if isClosingQuote(last) {
		last, _ = utf8.DecodeLastRuneInString(b[:len(b)-size])
	}
	return last == '.' || last == '!' || last == '?'
}

// isIncomplete reports whether b looks like the first part of a broken sentence.
func isIncomplete(b string) bool {
	if b == "" || isStructural(b) || isRule(b) {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(b)
	switch last {
	case '.', '!', '?', '"', '”', ':', ')':
		return false
	}
	first, _ := utf8.DecodeRuneInString(b)
	return utf8.RuneCountInString(b) > fragmentMinLen || unicode.IsLower(first)
}

func isStructural(b string) bool {
	return structuralLine.MatchString(b) || isRule(b)
}
