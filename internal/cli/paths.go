package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lockscope/lockscope/pkg/depgraph"
	"github.com/lockscope/lockscope/pkg/lockfile"
)

// lockfileNames are the candidates searched, in preference order, when the
// argument is a directory.
var lockfileNames = []string{
	"package-lock.json",
	"npm-shrinkwrap.json",
	"yarn.lock",
	"pnpm-lock.yaml",
}

// locateLockfile resolves arg to a concrete lockfile path. An empty arg
// means the current directory; a directory is searched for known lockfile
// names; a file path is used as-is.
func locateLockfile(arg string) (string, error) {
	if arg == "" {
		arg = "."
	}
	info, err := os.Stat(arg)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return arg, nil
	}
	for _, name := range lockfileNames {
		candidate := filepath.Join(arg, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no lockfile found in %s", arg)
}

// loadGraph locates, parses, and builds the dependency graph for arg,
// logging progress along the way.
func loadGraph(ctx context.Context, arg string) (*depgraph.Graph, lockfile.Parser, string, error) {
	logger := loggerFromContext(ctx)

	path, err := locateLockfile(arg)
	if err != nil {
		return nil, nil, "", err
	}
	parser, err := lockfile.Detect(path)
	if err != nil {
		return nil, nil, "", err
	}
	logger.Infof("Parsing %s (%s)", path, parser.Type())

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, "", err
	}
	prog := newProgress(logger)
	occurrences, err := parser.Parse(data)
	if err != nil {
		return nil, nil, "", err
	}
	g := depgraph.Build(occurrences)
	prog.done(fmt.Sprintf("Parsed %d occurrences of %d packages", len(occurrences), g.Len()))
	return g, parser, path, nil
}

// nopCloser wraps an io.Writer with a no-op Close method, making os.Stdout
// compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path, or stdout when the
// path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
