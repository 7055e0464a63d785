package main

import (
	"errors"
	"os"

	"github.com/dgallion1/docform/internal/parser"
)

// Exit codes for the docform CLI.
const (
	ExitSuccess = 0 // Structured and printed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, rules or input type
	ExitIO      = 3 // Input could not be read
)

var (
	ErrUsage     = errors.New("usage error")
	ErrReadInput = errors.New("failed to read input")
)

// exitCodeFor returns the exit code for an error returned by run.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, os.ErrNotExist),
		errors.Is(err, os.ErrPermission),
		errors.Is(err, ErrReadInput):
		return ExitIO
	case errors.Is(err, ErrUsage),
		errors.Is(err, parser.ErrUnsupportedFormat):
		return ExitUsage
	default:
		return ExitGeneral
	}
}
