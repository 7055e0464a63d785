package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/dgallion1/docform/internal/doctree"
)

func sampleDoc() *doctree.Document {
	return &doctree.Document{
		Title:  "Lesson One",
		Format: doctree.FormatLoose,
		Blocks: []doctree.Block{
			{Kind: doctree.KindHeading, Text: "Covenant Basics", Index: 0},
			{Kind: doctree.KindParagraph, Text: "By **grace** you are saved.", Index: 1},
			{Kind: doctree.KindBullet, Text: "Faith", Index: 2},
			{Kind: doctree.KindBullet, Text: "*Hope*", Index: 3},
			{Kind: doctree.KindSubheading, Text: "Details", Index: 4},
			{Kind: doctree.KindParagraph, Text: "Second paragraph.", Index: 5},
			{Kind: doctree.KindHeading, Text: "Key Takeaways", Index: 6},
			{Kind: doctree.KindItalicParagraph, Text: "The elect are the wheat.", Index: 7},
		},
	}
}

func TestViews(t *testing.T) {
	v := Views(sampleDoc())

	if len(v.Blocks) != 8 {
		t.Fatalf("expected 8 blocks, got %d", len(v.Blocks))
	}
	for i, b := range v.Blocks {
		if b.DropCap != (i == 1) {
			t.Errorf("block %d: expected drop cap only on first paragraph, got %v", i, b.DropCap)
		}
		if b.SectionBreak != (i == 6) {
			t.Errorf("block %d: expected section break only before second heading, got %v", i, b.SectionBreak)
		}
	}

	frags := v.Blocks[1].Fragments
	if len(frags) != 3 || frags[1].Emphasis != doctree.EmphasisBold || frags[1].Text != "grace" {
		t.Errorf("unexpected paragraph fragments: %+v", frags)
	}
	if h := v.Blocks[0].Fragments; len(h) != 1 || h[0].Emphasis != doctree.EmphasisNone {
		t.Errorf("expected one plain heading fragment, got %+v", h)
	}
}

func TestViews_NoParagraph(t *testing.T) {
	v := Views(&doctree.Document{Blocks: []doctree.Block{{Kind: doctree.KindBullet, Text: "Only"}}})
	if v.Blocks[0].DropCap {
		t.Error("expected no drop cap without a paragraph")
	}
}

func TestMarkdown(t *testing.T) {
	got := Markdown(sampleDoc())
	want := "# Lesson One\n\n" +
		"## Covenant Basics\n\n" +
		"By **grace** you are saved.\n\n" +
		"- Faith\n\n" +
		"- *Hope*\n\n" +
		"#### Details\n\n" +
		"Second paragraph.\n\n" +
		"---\n\n" +
		"## Key Takeaways\n\n" +
		"*The elect are the wheat.*\n"
	if got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestMarkdown_Empty(t *testing.T) {
	if got := Markdown(&doctree.Document{}); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestEscapeLeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"Plain words.", "Plain words."},
		{"# not a heading", `\# not a heading`},
		{"- not a bullet", `\- not a bullet`},
		{"> not a quote", `\> not a quote`},
		{"3. not a list", `3\. not a list`},
		{"---", `\---`},
		{"-5 degrees", "-5 degrees"},
	}
	for _, tt := range tests {
		if got := escapeLeading(tt.input); got != tt.expected {
			t.Errorf("escapeLeading(%q): expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestHTML(t *testing.T) {
	got, err := HTML(sampleDoc())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Lesson One</title>",
		"<h1>Lesson One</h1>",
		"<h2>Covenant Basics</h2>",
		`<p class="drop-cap">By <strong>grace</strong> you are saved.</p>`,
		"<li>Faith</li>",
		"<li><em>Hope</em></li>",
		"<h3>Details</h3>",
		"<p>Second paragraph.</p>",
		`<hr class="section-break">`,
		`<p class="callout">The elect are the wheat.</p>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
	if strings.Count(got, "<ul>") != 1 {
		t.Errorf("expected consecutive bullets in one list, got %d lists", strings.Count(got, "<ul>"))
	}
	if strings.Count(got, "<hr") != 1 {
		t.Errorf("expected exactly one separator, got %d", strings.Count(got, "<hr"))
	}
}

func TestHTML_EscapesMarkup(t *testing.T) {
	doc := &doctree.Document{Blocks: []doctree.Block{
		{Kind: doctree.KindHeading, Text: "A <b> & C"},
		{Kind: doctree.KindParagraph, Text: "Inline <script>alert(1)</script> text."},
	}}
	got, err := HTML(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "<h2>A &lt;b&gt; &amp; C</h2>") {
		t.Errorf("expected escaped heading, got %s", got)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("expected raw HTML to be dropped, got %s", got)
	}
	if !strings.Contains(got, "<title>Document</title>") {
		t.Error("expected fallback title")
	}
}

func TestTerminal(t *testing.T) {
	got := Terminal(sampleDoc(), 40)

	for _, want := range []string{"Lesson One", "Covenant Basics", "• ", "Faith", "Details", "wheat", strings.Repeat("─", 40)} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, got)
		}
	}
	for i, line := range strings.Split(got, "\n") {
		if w := lipgloss.Width(line); w > 40 {
			t.Errorf("line %d: expected width <= 40, got %d: %q", i, w, line)
		}
	}
}

func TestTerminal_Empty(t *testing.T) {
	if got := Terminal(&doctree.Document{}, 0); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestDropCap(t *testing.T) {
	frags := dropCap([]doctree.Fragment{doctree.Plain("Grace abounds.")})
	if len(frags) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(frags))
	}
	if frags[1].Text != "race abounds." {
		t.Errorf("expected rest of text, got %q", frags[1].Text)
	}

	bold := []doctree.Fragment{doctree.Emphasized(doctree.EmphasisBold, "Bold")}
	if got := dropCap(bold); len(got) != 1 {
		t.Errorf("expected emphasized opening untouched, got %+v", got)
	}
}
