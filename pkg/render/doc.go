// Package render turns a dependency graph into human-readable output: a
// depth-aware ASCII tree with duplicate highlighting, and Graphviz DOT (with
// SVG/PNG rasterization) for visual inspection.
//
// Rendering is a pure presentation layer. Filters and the per-version
// location display cap only affect what is printed; graph statistics are
// always computed from the untruncated data.
package render
