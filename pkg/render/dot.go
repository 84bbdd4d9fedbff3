package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/lockscope/lockscope/pkg/depgraph"
)

// ToDOT converts a dependency graph to Graphviz DOT. Each package is one
// node labeled with its distinct versions; packages with more than one
// version are filled to stand out. Occurrence locations hang off their
// package as plain edges from parent install paths, so the nesting shows up
// as graph structure.
func ToDOT(g *depgraph.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph dependencies {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for _, name := range g.Names() {
		n, _ := g.Node(name)
		label := name + "\\n" + joinVersions(n)
		attrs := fmt.Sprintf("label=\"%s\"", label)
		if n.IsDuplicate() {
			attrs += ", fillcolor=lightyellow"
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", name, attrs)
	}

	buf.WriteString("\n")
	for _, e := range nestingEdges(g) {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e[0], e[1])
	}

	buf.WriteString("}\n")
	return buf.String()
}

func joinVersions(n *depgraph.Node) string {
	versions := SortVersions(n.DistinctVersions())
	out := ""
	for i, v := range versions {
		if i > 0 {
			out += ", "
		}
		out += v
	}
	return out
}

// nestingEdges derives parent→child edges from occurrence locations: the
// install path "node_modules/a/node_modules/b" contributes an edge a→b.
// Edges are deduplicated and returned in name order.
func nestingEdges(g *depgraph.Graph) [][2]string {
	seen := make(map[[2]string]bool)
	var edges [][2]string

	for _, name := range g.Names() {
		n, _ := g.Node(name)
		for _, occ := range n.Occurrences {
			parent, ok := locationParent(occ.Location)
			if !ok {
				continue
			}
			if _, exists := g.Node(parent); !exists {
				continue
			}
			e := [2]string{parent, name}
			if !seen[e] {
				seen[e] = true
				edges = append(edges, e)
			}
		}
	}
	return edges
}

// locationParent extracts the containing package name from a nested install
// path, e.g. "node_modules/a/node_modules/b" → "a". Top-level installs have
// no parent.
func locationParent(location string) (string, bool) {
	const sep = "node_modules/"
	last := -1
	prev := -1
	for i := 0; i+len(sep) <= len(location); i++ {
		if location[i:i+len(sep)] == sep {
			prev = last
			last = i
		}
	}
	if prev < 0 {
		return "", false
	}
	parent := location[prev+len(sep) : last]
	parent = trimSlash(parent)
	if parent == "" {
		return "", false
	}
	return parent, true
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

// SVG renders a DOT document to SVG bytes using Graphviz.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// PNG renders a DOT document to PNG bytes using Graphviz.
func PNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
