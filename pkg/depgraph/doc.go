// Package depgraph assembles the canonical package dependency graph from
// parsed lockfile occurrences and answers structural queries over it.
//
// The graph keeps every raw occurrence: a package that appears five times in
// a lockfile owns five occurrences, in parse order. Duplication (more than
// one distinct resolved version for a name) is a derived property computed at
// query time, never a build-time filter. Once built, a Graph is read-only;
// all analyses traverse it without mutation.
package depgraph
