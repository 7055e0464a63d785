package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/dgallion1/docform/internal/render"
)

// cliFlags holds every flag the docform command accepts.
type cliFlags struct {
	format      string
	title       string
	width       int
	rules       string
	pdfFallback bool
	help        bool
}

// parseFlags parses args (without the program name) and returns the
// positional arguments.
func parseFlags(args []string, stderr io.Writer) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("docform", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &cliFlags{}

	fs.StringVarP(&f.format, "format", "f", "json", "output format: json, markdown, html, text")
	fs.StringVarP(&f.title, "title", "t", "", "document title (\"\" = from the file)")
	fs.IntVarP(&f.width, "width", "w", render.DefaultWidth, "wrap width for text output")
	fs.StringVar(&f.rules, "rules", "", "YAML rules file")
	fs.BoolVar(&f.pdfFallback, "pdftotext", true, "fall back to pdftotext for unreadable PDFs")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if f.help {
		fs.Usage()
		return f, nil, nil
	}
	switch f.format {
	case "json", "markdown", "html", "text":
	default:
		return nil, nil, fmt.Errorf("%w: unknown format %q", ErrUsage, f.format)
	}
	if fs.NArg() > 1 {
		return nil, nil, fmt.Errorf("%w: expected at most one input, got %d", ErrUsage, fs.NArg())
	}
	return f, fs.Args(), nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: docform [flags] [file|-]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Structures a loosely formatted document and prints it.")
	fmt.Fprintln(w, "Reads standard input when no file or \"-\" is given.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
}
