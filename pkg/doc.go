// Package pkg provides the core libraries for lockscope dependency diagnostics.
//
// The packages are organized by pipeline stage:
//
//  1. [lockfile] - Parsers for npm, yarn, and pnpm lockfiles
//  2. [semver] - Version and range model used by every analysis
//  3. [depgraph] - Graph construction and duplicate detection
//  4. [workspace] - Monorepo discovery, reference, and cycle checks
//  5. [render] - Tree and Graphviz output
//  6. [report] - Aggregated findings for JSON output and the HTTP API
//
// The typical data flow:
//
//	Lockfile / workspace manifests
//	         ↓
//	    [lockfile] or [workspace] (parse)
//	         ↓
//	    [depgraph] + [workspace] analyses (detect)
//	         ↓
//	    [render] / [report] (present)
//
// Supporting packages: [cache] memoizes analysis results on disk, [errors]
// carries machine-readable error codes between the CLI and the API, and
// [buildinfo] holds ldflags-injected version metadata.
package pkg
