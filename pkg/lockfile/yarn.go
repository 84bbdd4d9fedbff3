package lockfile

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/lockscope/lockscope/pkg/depgraph"
)

// YarnLock parses yarn.lock documents: a flow-style text format where an
// unindented header line opens a package block and an indented
// `version "X.Y.Z"` line resolves it.
type YarnLock struct{}

func (p *YarnLock) Type() string              { return "yarn.lock" }
func (p *YarnLock) Supports(name string) bool { return name == "yarn.lock" }

// yarnState is the scanner state: waiting for the next block header, or
// holding a pending package name until its version line arrives.
type yarnState int

const (
	awaitingHeader yarnState = iota
	awaitingVersion
)

// Parse scans the document line by line with a two-state machine. The first
// version field after a header is bound to the most recently seen name; a
// second header before any version line simply replaces the pending name.
// Blank lines and comments are tolerated anywhere.
func (p *YarnLock) Parse(data []byte) ([]depgraph.Occurrence, error) {
	var occs []depgraph.Occurrence

	state := awaitingHeader
	pending := ""

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if isHeaderLine(line) {
			if name, ok := headerName(trimmed); ok {
				pending = name
				state = awaitingVersion
			}
			continue
		}

		if state == awaitingVersion && strings.HasPrefix(trimmed, "version ") {
			version := strings.Trim(strings.TrimPrefix(trimmed, "version "), `"`)
			occs = append(occs, depgraph.Occurrence{
				Name:     pending,
				Version:  parseVersion(version),
				Location: pending + "@" + version,
				Depth:    0,
			})
			pending = ""
			state = awaitingHeader
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return occs, nil
}

// isHeaderLine reports whether the raw line opens a new package block:
// non-empty and unindented.
func isHeaderLine(line string) bool {
	return line != "" && line[0] != ' ' && line[0] != '\t'
}

// headerName extracts the package name from a block header such as
// `left-pad@^1.0.0:` or `"@babel/core@7.0.0", "@babel/core@^7.1.0":`.
// Scoped names keep their leading @ since the scope is part of the name.
func headerName(header string) (string, bool) {
	spec := strings.TrimPrefix(header, `"`)
	parts := strings.Split(spec, "@")
	if len(parts) < 2 {
		return "", false
	}
	if strings.HasPrefix(spec, "@") {
		return "@" + parts[1], true
	}
	name := strings.TrimSuffix(strings.Trim(parts[0], `"`), ",")
	if name == "" {
		return "", false
	}
	return name, true
}
