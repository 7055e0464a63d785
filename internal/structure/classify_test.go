package structure

import (
	"testing"

	"github.com/dgallion1/docform/internal/doctree"
)

func defaultRules(t *testing.T) *compiledRules {
	t.Helper()
	c, err := compileRules(DefaultRules())
	if err != nil {
		t.Fatalf("compile default rules: %v", err)
	}
	return c
}

type wantBlock struct {
	kind doctree.Kind
	text string
}

func assertBlocks(t *testing.T, got []doctree.Block, want []wantBlock) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d blocks, got %d: %+v", len(want), len(got), got)
	}
	for i, w := range want {
		if got[i].Kind != w.kind {
			t.Errorf("block %d: expected kind %q, got %q (%q)", i, w.kind, got[i].Kind, got[i].Text)
		}
		if got[i].Text != w.text {
			t.Errorf("block %d: expected text %q, got %q", i, w.text, got[i].Text)
		}
		if got[i].Index != i {
			t.Errorf("block %d: expected index %d, got %d", i, i, got[i].Index)
		}
	}
}

func TestIsRule(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"---", "-----", "***", "___", "  ---  "} {
		if !isRule(s) {
			t.Errorf("expected %q to be a rule", s)
		}
	}
	for _, s := range []string{"--", "- - -", "---x", "text"} {
		if isRule(s) {
			t.Errorf("expected %q not to be a rule", s)
		}
	}
}

func TestIsBoldHeading(t *testing.T) {
	t.Parallel()

	label, ok := isBoldHeading("**Covenant Basics**")
	if !ok || label != "Covenant Basics" {
		t.Errorf("expected heading %q, got %q ok=%v", "Covenant Basics", label, ok)
	}
	long := "**This bold line keeps going well past the eighty character limit set for all headings**"
	if _, ok := isBoldHeading(long); ok {
		t.Errorf("expected long bold line to be rejected")
	}
	if _, ok := isBoldHeading("**Bold** then text"); ok {
		t.Errorf("expected partially bold line to be rejected")
	}
}

func TestIsOrdinalHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected bool
	}{
		{"1. The Beginning", true},
		{"12. Later On", true},
		{"IV. The Law", true},
		{"iv. lowercase roman", false},
		{"1.5 million", false},
		{"2.Nospace", false},
		{"1. This numbered line is far too long to be a heading because it keeps on going and going", false},
	}
	for _, tt := range tests {
		if got := isOrdinalHeading(tt.input); got != tt.expected {
			t.Errorf("isOrdinalHeading(%q): expected %v, got %v", tt.input, tt.expected, got)
		}
	}
}

func TestIsCapsHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected bool
	}{
		{"THE NEW COVENANT", true},
		{"PART 2: GRACE & LAW", true},
		{"AMEN", true},
		{"WHY?", true},
		{"GOD", false},
		{"1234", false},
		{"- ITEM", false},
		{"Mixed Case", false},
	}
	for _, tt := range tests {
		if got := isCapsHeading(tt.input); got != tt.expected {
			t.Errorf("isCapsHeading(%q): expected %v, got %v", tt.input, tt.expected, got)
		}
	}
}

func TestIsFallbackHeading(t *testing.T) {
	t.Parallel()
	c := defaultRules(t)

	tests := []struct {
		input    string
		expected bool
	}{
		{"The Kingdom Parables", true},
		{"Grace and Truth", true},
		{"Why It Matters", true},
		{"Intro paragraph", false},
		{"Closing paragraph", false},
		{"Here Is What Follows", false},
		{"Let's Begin Now", false},
		{"There Are Three Keys", false},
		{"The End.", false},
		{"Done, Then", true},
		{"Trailing Comma,", false},
		{"lower Case Start", false},
		{"Tiny", false},
		{"This Title Is Long Enough To Exceed The Sixty Character Limit Set", false},
	}
	for _, tt := range tests {
		if got := c.isFallbackHeading(tt.input); got != tt.expected {
			t.Errorf("isFallbackHeading(%q): expected %v, got %v", tt.input, tt.expected, got)
		}
	}
}

func TestIsSuppressedOpener(t *testing.T) {
	t.Parallel()
	c := defaultRules(t)

	for _, s := range []string{
		"Reflective Questions",
		"**Reflective Questions:**",
		"### Questions to Consider",
		"Have You Ever Pondered",
		"have you truly pondered this?",
	} {
		if !c.isSuppressedOpener(s) {
			t.Errorf("expected %q to open a suppressed section", s)
		}
	}
	for _, s := range []string{
		"Questions",
		"Some reflective questions follow below",
		"Have you eaten?",
	} {
		if c.isSuppressedOpener(s) {
			t.Errorf("expected %q not to open a suppressed section", s)
		}
	}
}

func TestIsCalloutLabel(t *testing.T) {
	t.Parallel()
	c := defaultRules(t)

	for _, s := range []string{"Key Takeaways", "KEY TAKEAWAYS FOR TODAY", "Appendix A", "1. Key Takeaways"} {
		if !c.isCalloutLabel(s) {
			t.Errorf("expected %q to be a callout label", s)
		}
	}
	if c.isCalloutLabel("The Key Takeaways") {
		t.Error("expected prefix match only")
	}
}

func TestClassifyBlocks_HeadingPrecedence(t *testing.T) {
	c := defaultRules(t)
	got := c.classifyBlocks([]string{"**Covenant Basics**"})
	assertBlocks(t, got, []wantBlock{{doctree.KindHeading, "Covenant Basics"}})
}

func TestClassifyBlocks_HeadingKinds(t *testing.T) {
	c := defaultRules(t)
	got := c.classifyBlocks([]string{
		"## The *Law* Given",
		"### Details ###",
		"#### Fine Print",
		"IV. The Fourth",
		"OUR HOPE",
		"The Kingdom Parables",
	})
	assertBlocks(t, got, []wantBlock{
		{doctree.KindHeading, "The Law Given"},
		{doctree.KindHeading, "Details"},
		{doctree.KindSubheading, "Fine Print"},
		{doctree.KindHeading, "IV. The Fourth"},
		{doctree.KindHeading, "OUR HOPE"},
		{doctree.KindHeading, "The Kingdom Parables"},
	})
}

func TestClassifyBlocks_BulletsKeepEmphasis(t *testing.T) {
	c := defaultRules(t)
	got := c.classifyBlocks([]string{"- **Faith** comes by hearing.", "* plain item", "Body with *italic* words."})
	assertBlocks(t, got, []wantBlock{
		{doctree.KindBullet, "**Faith** comes by hearing."},
		{doctree.KindBullet, "plain item"},
		{doctree.KindParagraph, "Body with *italic* words."},
	})
}

func TestClassifyBlocks_RulesDropped(t *testing.T) {
	c := defaultRules(t)
	got := c.classifyBlocks([]string{"Before it.", "---", "***", "After it."})
	assertBlocks(t, got, []wantBlock{
		{doctree.KindParagraph, "Before it."},
		{doctree.KindParagraph, "After it."},
	})
}

func TestClassifyBlocks_CalloutScoping(t *testing.T) {
	c := defaultRules(t)
	got := c.classifyBlocks([]string{
		"Opening words.",
		"**Key Takeaways**",
		"The elect are the wheat.",
		"- A bullet stays a bullet.",
		"#### A Subheading",
		"Still in the callout.",
		"## Next",
		"More text.",
	})
	assertBlocks(t, got, []wantBlock{
		{doctree.KindParagraph, "Opening words."},
		{doctree.KindHeading, "Key Takeaways"},
		{doctree.KindItalicParagraph, "The elect are the wheat."},
		{doctree.KindBullet, "A bullet stays a bullet."},
		{doctree.KindSubheading, "A Subheading"},
		{doctree.KindItalicParagraph, "Still in the callout."},
		{doctree.KindHeading, "Next"},
		{doctree.KindParagraph, "More text."},
	})
}

func TestClassifyBlocks_BlockquoteIsItalic(t *testing.T) {
	c := defaultRules(t)
	got := c.classifyBlocks([]string{"> Be still, and know."})
	assertBlocks(t, got, []wantBlock{{doctree.KindItalicParagraph, "Be still, and know."}})
}

func TestClassifyBlocks_SuppressedSection(t *testing.T) {
	c := defaultRules(t)
	got := c.classifyBlocks([]string{
		"Intro paragraph",
		"Reflective Questions",
		"Q1?",
		"- A bullet inside.",
		"A Title-Like Line",
		"Q2?",
		"**Next Section**",
		"Closing paragraph",
	})
	assertBlocks(t, got, []wantBlock{
		{doctree.KindParagraph, "Intro paragraph"},
		{doctree.KindHeading, "Next Section"},
		{doctree.KindParagraph, "Closing paragraph"},
	})
}

func TestClassifyBlocks_SuppressedOpenerWhileSuppressing(t *testing.T) {
	c := defaultRules(t)
	got := c.classifyBlocks([]string{
		"Reflective Questions",
		"Q1?",
		"**Questions to Consider**",
		"Q2?",
		"## Resume",
		"Body.",
	})
	assertBlocks(t, got, []wantBlock{
		{doctree.KindHeading, "Resume"},
		{doctree.KindParagraph, "Body."},
	})
}

func TestClassifyBlocks_AttributionKeepsLast(t *testing.T) {
	c := defaultRules(t)
	credit1 := "This teaching was adapted from the pastor's notes."
	credit2 := "*This teaching was adapted from the pastor's notes.*"
	got := c.classifyBlocks([]string{
		"First paragraph.",
		credit1,
		"Middle paragraph.",
		"## Key Takeaways",
		credit2,
		"Trailing thought.",
	})
	assertBlocks(t, got, []wantBlock{
		{doctree.KindParagraph, "First paragraph."},
		{doctree.KindParagraph, "Middle paragraph."},
		{doctree.KindHeading, "Key Takeaways"},
		{doctree.KindParagraph, credit2},
		{doctree.KindItalicParagraph, "Trailing thought."},
	})
}

func TestClassifyBlocks_Empty(t *testing.T) {
	c := defaultRules(t)
	got := c.classifyBlocks(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestStep_StateIsValue(t *testing.T) {
	c := defaultRules(t)
	start := classifierState{}
	next, cb, keep := c.step(start, "### Appendix")
	if !keep || cb.block.Kind != doctree.KindHeading {
		t.Fatalf("expected heading, got %+v keep=%v", cb.block, keep)
	}
	if !next.inCallout {
		t.Error("expected callout state to be entered")
	}
	if start.inCallout {
		t.Error("expected original state to be untouched")
	}
}

func TestRemoveAllButLastAttribution(t *testing.T) {
	in := []classified{
		{block: doctree.Block{Kind: doctree.KindParagraph, Text: "a"}, attribution: true},
		{block: doctree.Block{Kind: doctree.KindParagraph, Text: "b"}},
		{block: doctree.Block{Kind: doctree.KindParagraph, Text: "c"}, attribution: true},
		{block: doctree.Block{Kind: doctree.KindParagraph, Text: "d"}},
	}
	got := removeAllButLastAttribution(in)
	assertBlocks(t, got, []wantBlock{
		{doctree.KindParagraph, "b"},
		{doctree.KindParagraph, "c"},
		{doctree.KindParagraph, "d"},
	})
}

func TestFallbackHeadingNeedsTitleCase(t *testing.T) {
	doc := Structure("The grace of God\n\nThe Grace of God")
	assertBlocks(t, doc.Blocks, []wantBlock{
		{doctree.KindParagraph, "The grace of God"},
		{doctree.KindHeading, "The Grace of God"},
	})
}
