// Package workspace models multi-package repositories (npm/yarn workspaces,
// pnpm workspaces, Lerna) and runs the cross-member analyses: declared-range
// mismatches, workspace-protocol reference problems, and circular
// dependencies between members.
//
// Discovery reads the workspace root configuration, expands one level of
// "dir/*" patterns against the filesystem, and loads each member manifest.
// Everything downstream of discovery is pure: the detectors take a member
// slice and return immutable findings.
package workspace
