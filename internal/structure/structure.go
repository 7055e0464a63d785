// Package structure rebuilds an ordered sequence of typed blocks from loosely
// formatted prose or block-tagged markup.
//
// Every function in this package is pure: the result depends only on the
// input string and the Rules the Engine was built with, so callers may
// memoize on the raw text.
package structure

import (
	"github.com/dgallion1/docform/internal/doctree"
)

// Engine structures raw documents under a fixed set of Rules. It is safe for
// concurrent use.
type Engine struct {
	rules Rules
	c     *compiledRules
}

// New builds an Engine. It fails only if a suppressed-section pattern does not compile.
func New(rules Rules) (*Engine, error) {
	c, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Engine{rules: rules, c: c}, nil
}

var defaultEngine = mustNew(DefaultRules())

func mustNew(rules Rules) *Engine {
	e, err := New(rules)
	if err != nil {
		panic(err)
	}
	return e
}

// Default returns the Engine built from DefaultRules.
func Default() *Engine {
	return defaultEngine
}

// Rules returns a copy of the rules the engine was built with.
func (e *Engine) Rules() Rules {
	r := e.rules
	r.CalloutPrefixes = append([]string(nil), r.CalloutPrefixes...)
	r.SuppressedSections = append([]string(nil), r.SuppressedSections...)
	r.ConversationalMarkers = append([]string(nil), r.ConversationalMarkers...)
	return r
}

// Structure classifies the input format, normalizes and segments it, and
// classifies each surviving block.
func (e *Engine) Structure(raw doctree.Raw) *doctree.Document {
	format := Classify(raw.Text)
	return &doctree.Document{
		Title:  raw.Title,
		Format: format,
		Blocks: e.c.classifyBlocks(Candidates(raw.Text, format)),
	}
}

// Candidates returns the candidate blocks for text, before classification.
func Candidates(text string, format doctree.Format) []string {
	if format == doctree.FormatMarked {
		return Segment(MarkedToText(text))
	}
	text = NormalizeLineEndings(CleanMarkup(Unwrap(text)))
	return Rejoin(Segment(InsertBreaks(text)))
}

// Structure runs the default engine over text.
func Structure(text string) *doctree.Document {
	return defaultEngine.Structure(doctree.Raw{Text: text})
}
