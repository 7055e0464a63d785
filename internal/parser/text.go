package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/docform/internal/doctree"
)

// TextParser handles plain text files. Runs of blank lines collapse to one
// paragraph break and trailing whitespace is trimmed; single line breaks are
// kept for the engine to interpret.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (doctree.Raw, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return doctree.Raw{}, err
	}

	return doctree.Raw{
		Title: stem(filename),
		Text:  strings.Join(paragraphs, "\n\n"),
	}, nil
}
