// Package semver implements the version and range model used by the
// analyzers. It deliberately mirrors the simplified range handling of npm
// diagnostic tooling rather than full node-semver range sets: a constraint is
// a single clause with at most one bound, caret pins the major component, and
// tilde pins major and minor. Anything that fails to parse is treated as
// "unknown, assume unmet" so that one bad version string never aborts a
// whole-graph analysis.
package semver
