// Command docform structures a loosely formatted document from a file or
// standard input and prints it as JSON, markdown, HTML or terminal text.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/docform/internal/config"
	"github.com/dgallion1/docform/internal/doctree"
	"github.com/dgallion1/docform/internal/parser"
	"github.com/dgallion1/docform/internal/render"
	"github.com/dgallion1/docform/internal/structure"
)

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "docform:", err)
	}
	os.Exit(exitCodeFor(err))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags, rest, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if flags.help {
		return nil
	}

	rules, err := config.LoadRules(flags.rules)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	engine, err := structure.New(rules)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	raw, err := readInput(rest, stdin, parser.Options{PDFFallback: flags.pdfFallback})
	if err != nil {
		return err
	}
	if flags.title != "" {
		raw.Title = flags.title
	}

	return write(stdout, engine.Structure(raw), flags)
}

// readInput loads the raw content from the named file through the parser for
// its extension, or verbatim from stdin.
func readInput(args []string, stdin io.Reader, opts parser.Options) (doctree.Raw, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return doctree.Raw{}, fmt.Errorf("%w: %w", ErrReadInput, err)
		}
		return doctree.Raw{Text: string(data)}, nil
	}

	path := args[0]
	p, err := parser.ForFile(path, opts)
	if err != nil {
		return doctree.Raw{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return doctree.Raw{}, err
	}
	defer f.Close()

	raw, err := p.Parse(f, path)
	if err != nil {
		return doctree.Raw{}, fmt.Errorf("%w: %s: %w", ErrReadInput, path, err)
	}
	return raw, nil
}

func write(w io.Writer, doc *doctree.Document, flags *cliFlags) error {
	var out string
	switch flags.format {
	case "markdown":
		out = render.Markdown(doc)
	case "html":
		page, err := render.HTML(doc)
		if err != nil {
			return err
		}
		out = page
	case "text":
		out = render.Terminal(doc, flags.width)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(render.Views(doc))
	}
	_, err := io.WriteString(w, out)
	return err
}
