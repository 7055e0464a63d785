// Package render turns structured documents into presentation formats.
//
// Every renderer honors the same contract: a separator goes before each
// top-level Heading that follows other content, and the first Paragraph
// block is flagged for drop-cap styling.
package render

import (
	"github.com/dgallion1/docform/internal/doctree"
	"github.com/dgallion1/docform/internal/structure"
)

// BlockView is a block resolved for display.
type BlockView struct {
	Kind         doctree.Kind       `json:"kind"`
	Text         string             `json:"text"`
	Index        int                `json:"index"`
	Fragments    []doctree.Fragment `json:"fragments"`
	DropCap      bool               `json:"drop_cap,omitempty"`
	SectionBreak bool               `json:"section_break,omitempty"`
}

// DocumentView is the JSON shape served to presentation clients.
type DocumentView struct {
	Title  string         `json:"title,omitempty"`
	Format doctree.Format `json:"format"`
	Blocks []BlockView    `json:"blocks"`
}

// Views resolves inline fragments and the separator and drop-cap flags.
func Views(doc *doctree.Document) DocumentView {
	first := doc.FirstParagraph()
	out := DocumentView{
		Title:  doc.Title,
		Format: doc.Format,
		Blocks: make([]BlockView, 0, len(doc.Blocks)),
	}
	for i, b := range doc.Blocks {
		v := BlockView{
			Kind:         b.Kind,
			Text:         b.Text,
			Index:        b.Index,
			DropCap:      i == first,
			SectionBreak: sectionBreak(doc.Blocks, i),
		}
		if b.IsHeading() {
			v.Fragments = []doctree.Fragment{doctree.Plain(b.Text)}
		} else {
			v.Fragments = structure.RenderInline(b.Text)
		}
		out.Blocks = append(out.Blocks, v)
	}
	return out
}

// sectionBreak reports whether a separator precedes block i.
func sectionBreak(blocks []doctree.Block, i int) bool {
	return i > 0 && blocks[i].Kind == doctree.KindHeading
}
