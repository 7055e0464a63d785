package doctree

// Format is the markup style detected on a raw input.
type Format string

const (
	FormatLoose  Format = "loose"  // prose with ad hoc markdown-like conventions
	FormatMarked Format = "marked" // already block-tagged markup
)

// Kind is the semantic type of a block. Consumers switch on it exhaustively.
type Kind string

const (
	KindHeading         Kind = "heading"
	KindSubheading      Kind = "subheading"
	KindParagraph       Kind = "paragraph"
	KindBullet          Kind = "bullet"
	KindItalicParagraph Kind = "italic_paragraph"
)

// Raw is an input to structuring. Title is display-only and never affects structure.
type Raw struct {
	Text  string
	Title string
}

// Document is an ordered sequence of blocks in reading order.
type Document struct {
	Title  string  `json:"title,omitempty"`
	Format Format  `json:"format"`
	Blocks []Block `json:"blocks"`
}

// Block is one structurally distinct unit of content.
type Block struct {
	Kind  Kind   `json:"kind"`
	Text  string `json:"text"`  // markers stripped; inline emphasis kept except for headings
	Index int    `json:"index"` // position among surviving blocks
}

// IsHeading reports whether the block renders as a flat label.
func (b Block) IsHeading() bool {
	return b.Kind == KindHeading || b.Kind == KindSubheading
}

// Emphasis is the styling of an inline fragment.
type Emphasis string

const (
	EmphasisNone   Emphasis = ""
	EmphasisBold   Emphasis = "bold"
	EmphasisItalic Emphasis = "italic"
)

// Fragment is a run of inline text, either plain or emphasized.
type Fragment struct {
	Text     string   `json:"text"`
	Emphasis Emphasis `json:"emphasis,omitempty"`
}

// Plain returns an unstyled fragment.
func Plain(text string) Fragment {
	return Fragment{Text: text}
}

// Emphasized returns a styled fragment.
func Emphasized(e Emphasis, text string) Fragment {
	return Fragment{Text: text, Emphasis: e}
}

// FirstParagraph returns the index of the first Paragraph block, or -1.
func (d *Document) FirstParagraph() int {
	for i, b := range d.Blocks {
		if b.Kind == KindParagraph {
			return i
		}
	}
	return -1
}
