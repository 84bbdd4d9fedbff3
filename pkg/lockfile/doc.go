// Package lockfile parses package manager lockfiles into a flat stream of
// package occurrences for graph building.
//
// Three schema families are supported: package-lock.json (npm, lockfile
// versions 1 through 3), yarn.lock (the flow-style text format), and
// pnpm-lock.yaml. Parsers are selected by file name, never by content
// sniffing; Detect picks the right parser for a path.
//
// Parsers are pure: they never touch the filesystem and never mutate their
// input. A syntactically valid but empty document yields an empty occurrence
// slice, while a structurally invalid one yields an error wrapping
// ErrMalformed so that partial data is never merged into a graph.
package lockfile
