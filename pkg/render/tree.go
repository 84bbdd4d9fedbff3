package render

import (
	"fmt"
	"sort"
	"strings"

	mmsemver "github.com/Masterminds/semver/v3"

	"github.com/lockscope/lockscope/pkg/depgraph"
)

// DefaultLocationCap is how many locations are printed per version before
// the remainder collapses into an "… and N more" line.
const DefaultLocationCap = 5

// DuplicateMarker prefixes package lines that resolved to more than one
// version.
const DuplicateMarker = "⚠ "

// Options filters the tree view. All filters are presentation-only: they
// never change the statistics reported next to the tree.
type Options struct {
	// Focus restricts output to a single package name.
	Focus string
	// DuplicatesOnly hides packages with a single resolved version.
	DuplicatesOnly bool
	// MaxDepth hides occurrence locations deeper than this. Negative
	// means unlimited.
	MaxDepth int
	// LocationCap bounds locations printed per version; 0 means
	// DefaultLocationCap.
	LocationCap int
}

// Tree renders a hierarchical view of the graph: packages in lexicographic
// order, versions per package in semver order, locations per version in
// discovery order.
func Tree(g *depgraph.Graph, opts Options) string {
	capN := opts.LocationCap
	if capN <= 0 {
		capN = DefaultLocationCap
	}

	var b strings.Builder
	for _, name := range g.Names() {
		if opts.Focus != "" && name != opts.Focus {
			continue
		}
		n, _ := g.Node(name)
		if opts.DuplicatesOnly && !n.IsDuplicate() {
			continue
		}
		writeNode(&b, n, opts, capN)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n *depgraph.Node, opts Options, capN int) {
	marker := "  "
	if n.IsDuplicate() {
		marker = DuplicateMarker
	}
	fmt.Fprintf(b, "%s%s\n", marker, n.Name)

	byVersion := make(map[string][]depgraph.Occurrence)
	for _, occ := range n.Occurrences {
		v := occ.Version.String()
		byVersion[v] = append(byVersion[v], occ)
	}

	versions := SortVersions(keys(byVersion))
	for i, version := range versions {
		last := i == len(versions)-1
		branch := "├─"
		if last {
			branch = "└─"
		}

		locs := byVersion[version]
		if opts.MaxDepth >= 0 {
			locs = filterDepth(locs, opts.MaxDepth)
		}
		if len(locs) == 0 {
			continue
		}

		fmt.Fprintf(b, "  %s %s (%s)\n", branch, version, plural(len(locs), "instance"))

		shown := locs
		if len(shown) > capN {
			shown = shown[:capN]
		}
		for _, occ := range shown {
			fmt.Fprintf(b, "     %s %s\n", "└─", indentDepth(occ.Depth)+trimLocation(occ.Location))
		}
		if extra := len(locs) - len(shown); extra > 0 {
			fmt.Fprintf(b, "     └─ … and %d more\n", extra)
		}
	}
	b.WriteString("\n")
}

// SortVersions orders version strings ascending, semver-aware where both
// sides parse (so "1.9.0" sorts before "1.10.0") and falling back to plain
// string comparison for opaque values.
func SortVersions(versions []string) []string {
	out := make([]string, len(versions))
	copy(out, versions)
	sort.Slice(out, func(i, j int) bool {
		vi, erri := mmsemver.NewVersion(out[i])
		vj, errj := mmsemver.NewVersion(out[j])
		if erri == nil && errj == nil {
			return vi.LessThan(vj)
		}
		return out[i] < out[j]
	})
	return out
}

func filterDepth(occs []depgraph.Occurrence, maxDepth int) []depgraph.Occurrence {
	var out []depgraph.Occurrence
	for _, occ := range occs {
		if occ.Depth <= maxDepth {
			out = append(out, occ)
		}
	}
	return out
}

// trimLocation drops the leading install-dir prefix for readability.
func trimLocation(location string) string {
	return strings.TrimPrefix(location, "node_modules/")
}

func indentDepth(depth int) string {
	return strings.Repeat("  ", depth)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func keys(m map[string][]depgraph.Occurrence) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
