package lockfile

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/lockscope/lockscope/pkg/depgraph"
)

// Sentinel errors for lockfile parsing.
var (
	// ErrMalformed is returned when a document is structurally invalid for
	// its schema (bad JSON/YAML, or a required key missing). The whole
	// document is rejected; no partial occurrences are returned.
	ErrMalformed = errors.New("malformed lockfile")

	// ErrUnsupported is returned by Detect when no parser recognizes the
	// file name.
	ErrUnsupported = errors.New("unsupported lockfile")
)

// Parser converts one lockfile document into a stream of package
// occurrences.
type Parser interface {
	// Parse reads the document and returns its occurrences in a
	// deterministic order. Input bytes are never mutated.
	Parse(data []byte) ([]depgraph.Occurrence, error)
	// Supports reports whether this parser handles the given filename.
	Supports(filename string) bool
	// Type returns the lockfile type identifier (e.g. "package-lock.json").
	Type() string
}

// Parsers returns the default parser set: npm, yarn and pnpm.
func Parsers() []Parser {
	return []Parser{&NPMLock{}, &YarnLock{}, &PnpmLock{}}
}

// Detect finds the parser that supports the given file path, judged by the
// base name only. Returns an error wrapping ErrUnsupported if none matches.
func Detect(path string, parsers ...Parser) (Parser, error) {
	if len(parsers) == 0 {
		parsers = Parsers()
	}
	name := filepath.Base(path)
	for _, p := range parsers {
		if p.Supports(name) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
}
