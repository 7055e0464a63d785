package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dgallion1/docform/internal/doctree"
)

// DefaultWidth is the wrap width used when none is given.
const DefaultWidth = 80

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(lipgloss.Color("#FFAA00"))

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00AAFF"))

	subheadingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#88CCFF"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	dropCapStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFAA00"))

	boldStyle   = lipgloss.NewStyle().Bold(true)
	italicStyle = lipgloss.NewStyle().Italic(true)
	calloutBar  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			PaddingLeft(1)
)

// Terminal renders doc for a terminal, wrapping text at width columns.
func Terminal(doc *doctree.Document, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	view := Views(doc)
	wrap := lipgloss.NewStyle().Width(width)

	var parts []string
	if view.Title != "" {
		parts = append(parts, titleStyle.Render(view.Title))
	}
	for _, b := range view.Blocks {
		if b.SectionBreak {
			parts = append(parts, separatorStyle.Render(strings.Repeat("─", width)))
		}
		switch b.Kind {
		case doctree.KindHeading:
			parts = append(parts, headingStyle.Width(width).Render(b.Text))
		case doctree.KindSubheading:
			parts = append(parts, subheadingStyle.Width(width).Render(b.Text))
		case doctree.KindBullet:
			item := wrap.Width(width - 2).Render(inline(b.Fragments, false))
			parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, "• ", item))
		case doctree.KindItalicParagraph:
			parts = append(parts, calloutBar.Width(width-1).Render(inline(b.Fragments, true)))
		default:
			frags := b.Fragments
			if b.DropCap {
				frags = dropCap(frags)
			}
			parts = append(parts, wrap.Render(inline(frags, false)))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func inline(frags []doctree.Fragment, italic bool) string {
	var sb strings.Builder
	for _, f := range frags {
		style := lipgloss.NewStyle()
		switch f.Emphasis {
		case doctree.EmphasisBold:
			style = boldStyle
		case doctree.EmphasisItalic:
			style = italicStyle
		}
		if italic {
			style = style.Italic(true)
		}
		sb.WriteString(style.Render(f.Text))
	}
	return sb.String()
}

// dropCap highlights the first letter of a paragraph's first plain fragment.
func dropCap(frags []doctree.Fragment) []doctree.Fragment {
	if len(frags) == 0 || frags[0].Emphasis != doctree.EmphasisNone || frags[0].Text == "" {
		return frags
	}
	r := []rune(frags[0].Text)
	out := make([]doctree.Fragment, 0, len(frags)+1)
	out = append(out, doctree.Fragment{Text: dropCapStyle.Render(string(r[0]))})
	out = append(out, doctree.Plain(string(r[1:])))
	return append(out, frags[1:]...)
}
