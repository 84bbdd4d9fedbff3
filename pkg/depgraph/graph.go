package depgraph

import (
	"sort"

	"github.com/lockscope/lockscope/pkg/semver"
)

// Occurrence is one concrete sighting of a package: a name resolved to a
// version at a location in the nested-resolution hierarchy. Depth is the
// distance from the root (0 for top-level installs). Occurrences are
// immutable once created.
type Occurrence struct {
	Name     string         `json:"name"`
	Version  semver.Version `json:"version"`
	Location string         `json:"location"`
	Depth    int            `json:"depth"`
}

// Node collects every occurrence recorded for one package name, in the order
// they were parsed.
type Node struct {
	Name        string       `json:"name"`
	Occurrences []Occurrence `json:"occurrences"`
}

// DistinctVersions returns the unique version strings across the node's
// occurrences, in first-seen order.
func (n *Node) DistinctVersions() []string {
	seen := make(map[string]bool, len(n.Occurrences))
	var out []string
	for _, occ := range n.Occurrences {
		v := occ.Version.String()
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// IsDuplicate reports whether the node resolved to more than one distinct
// version. Multiple occurrences of the same version do not count.
func (n *Node) IsDuplicate() bool {
	return len(n.DistinctVersions()) > 1
}

// Graph maps package names to their nodes. Storage preserves insertion
// order for stable diffing; Names imposes lexicographic order for
// reporting. A Graph is built once per analysis run and must not be
// mutated afterwards.
type Graph struct {
	nodes map[string]*Node
	order []string
}

// Build assembles a graph from occurrences in a single pass, creating each
// node on first sight and appending every occurrence without deduplication.
// The same occurrence sequence always produces identical graph content.
func Build(occurrences []Occurrence) *Graph {
	g := &Graph{nodes: make(map[string]*Node)}
	for _, occ := range occurrences {
		n, ok := g.nodes[occ.Name]
		if !ok {
			n = &Node{Name: occ.Name}
			g.nodes[occ.Name] = n
			g.order = append(g.order, occ.Name)
		}
		n.Occurrences = append(n.Occurrences, occ)
	}
	return g
}

// Node returns the node for name, if present.
func (g *Graph) Node(name string) (*Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Names returns all package names in lexicographic order.
func (g *Graph) Names() []string {
	names := make([]string, len(g.order))
	copy(names, g.order)
	sort.Strings(names)
	return names
}

// Len returns the number of unique package names.
func (g *Graph) Len() int { return len(g.nodes) }

// Summary holds whole-graph statistics. Counts always reflect the full
// graph, independent of any rendering filters or display truncation.
type Summary struct {
	UniquePackages   int     `json:"unique_packages"`
	TotalOccurrences int     `json:"total_occurrences"`
	Duplicates       int     `json:"duplicates"`
	MaxDepth         int     `json:"max_depth"`
	AvgDepth         float64 `json:"avg_depth"`
}

// Summarize computes summary statistics over the whole graph.
func (g *Graph) Summarize() Summary {
	s := Summary{UniquePackages: len(g.nodes)}
	depthSum := 0
	for _, n := range g.nodes {
		if n.IsDuplicate() {
			s.Duplicates++
		}
		for _, occ := range n.Occurrences {
			s.TotalOccurrences++
			depthSum += occ.Depth
			if occ.Depth > s.MaxDepth {
				s.MaxDepth = occ.Depth
			}
		}
	}
	if s.TotalOccurrences > 0 {
		s.AvgDepth = float64(depthSum) / float64(s.TotalOccurrences)
	}
	return s
}
