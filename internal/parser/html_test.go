package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser_BodyMarkup(t *testing.T) {
	input := `<!DOCTYPE html>
<html><head><title>  The   Lesson </title><style>p{}</style></head>
<body>
<header>Site banner</header>
<nav><a href="/">Home</a></nav>
<h2>Covenant</h2>
<p>Some <strong>bold</strong> text.</p>
<!-- editor note -->
<script>alert(1)</script>
<ul><li>One</li></ul>
<footer>Copyright</footer>
</body></html>`

	p := &HTMLParser{}
	raw, err := p.Parse(strings.NewReader(input), "lesson.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if raw.Title != "The Lesson" {
		t.Errorf("expected title %q, got %q", "The Lesson", raw.Title)
	}
	for _, want := range []string{"<h2>Covenant</h2>", "<p>Some <strong>bold</strong> text.</p>", "<li>One</li>"} {
		if !strings.Contains(raw.Text, want) {
			t.Errorf("expected body to contain %q, got %q", want, raw.Text)
		}
	}
	for _, unwanted := range []string{"Site banner", "Home", "alert", "Copyright", "editor note", "p{}"} {
		if strings.Contains(raw.Text, unwanted) {
			t.Errorf("expected %q to be stripped, got %q", unwanted, raw.Text)
		}
	}
}

func TestHTMLParser_FilenameTitle(t *testing.T) {
	p := &HTMLParser{}
	raw, err := p.Parse(strings.NewReader("<p>Only text.</p>"), "page.htm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.Title != "page" {
		t.Errorf("expected title %q, got %q", "page", raw.Title)
	}
	if raw.Text != "<p>Only text.</p>" {
		t.Errorf("expected %q, got %q", "<p>Only text.</p>", raw.Text)
	}
}
