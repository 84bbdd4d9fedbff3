package render

import (
	"reflect"
	"strings"
	"testing"

	"github.com/lockscope/lockscope/pkg/depgraph"
	"github.com/lockscope/lockscope/pkg/semver"
)

func occ(name, version, location string, depth int) depgraph.Occurrence {
	v, _ := semver.Parse(version)
	return depgraph.Occurrence{Name: name, Version: v, Location: location, Depth: depth}
}

func sampleGraph() *depgraph.Graph {
	return depgraph.Build([]depgraph.Occurrence{
		occ("react", "18.2.0", "node_modules/react", 0),
		occ("react", "17.0.2", "node_modules/legacy/node_modules/react", 1),
		occ("lodash", "4.17.21", "node_modules/lodash", 0),
	})
}

func TestTreeOrdering(t *testing.T) {
	out := Tree(sampleGraph(), Options{MaxDepth: -1})

	li := strings.Index(out, "lodash")
	ri := strings.Index(out, "react")
	if li < 0 || ri < 0 || li > ri {
		t.Errorf("packages not in lexicographic order:\n%s", out)
	}

	// Versions ascending within a package.
	i17 := strings.Index(out, "17.0.2")
	i18 := strings.Index(out, "18.2.0")
	if i17 < 0 || i18 < 0 || i17 > i18 {
		t.Errorf("versions not sorted ascending:\n%s", out)
	}
}

func TestTreeDuplicateMarker(t *testing.T) {
	out := Tree(sampleGraph(), Options{MaxDepth: -1})
	if !strings.Contains(out, DuplicateMarker+"react\n") {
		t.Errorf("react header not marked as duplicate:\n%s", out)
	}
	if strings.Contains(out, DuplicateMarker+"lodash\n") {
		t.Errorf("lodash wrongly marked as duplicate:\n%s", out)
	}
}

func TestTreeFilters(t *testing.T) {
	g := sampleGraph()

	t.Run("focus", func(t *testing.T) {
		out := Tree(g, Options{Focus: "lodash", MaxDepth: -1})
		if strings.Contains(out, "react") {
			t.Errorf("focus filter leaked other packages:\n%s", out)
		}
	})

	t.Run("duplicates only", func(t *testing.T) {
		out := Tree(g, Options{DuplicatesOnly: true, MaxDepth: -1})
		if strings.Contains(out, "lodash") {
			t.Errorf("duplicates-only shows single-version package:\n%s", out)
		}
		if !strings.Contains(out, "react") {
			t.Errorf("duplicates-only dropped a duplicate:\n%s", out)
		}
	})

	t.Run("max depth", func(t *testing.T) {
		out := Tree(g, Options{MaxDepth: 0})
		if strings.Contains(out, "17.0.2") {
			t.Errorf("depth filter kept a depth-1 location:\n%s", out)
		}
	})
}

func TestTreeLocationCap(t *testing.T) {
	var occs []depgraph.Occurrence
	locations := []string{"a", "b", "c", "d", "e", "f", "g"}
	for _, l := range locations {
		occs = append(occs, occ("pkg", "1.0.0", "node_modules/"+l+"/node_modules/pkg", 1))
	}
	g := depgraph.Build(occs)

	out := Tree(g, Options{MaxDepth: -1, LocationCap: 3})
	if !strings.Contains(out, "… and 4 more") {
		t.Errorf("missing truncation marker:\n%s", out)
	}
	// Truncation is presentation-only: statistics reflect all occurrences.
	if s := g.Summarize(); s.TotalOccurrences != len(locations) {
		t.Errorf("summary occurrences = %d, want %d", s.TotalOccurrences, len(locations))
	}
	if !strings.Contains(out, "(7 instances)") {
		t.Errorf("instance count should be untruncated:\n%s", out)
	}
}

func TestSortVersions(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "numeric not lexicographic",
			in:   []string{"1.10.0", "1.9.0", "1.2.0"},
			want: []string{"1.2.0", "1.9.0", "1.10.0"},
		},
		{
			name: "opaque values fall back to string order",
			in:   []string{"unknown", "1.0.0", "aardvark"},
			want: []string{"1.0.0", "aardvark", "unknown"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SortVersions(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SortVersions(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleGraph())

	for _, want := range []string{
		"digraph dependencies {",
		`"react"`,
		`"lodash"`,
		"fillcolor=lightyellow", // duplicate highlight
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	// "legacy" contains react but is not itself a graph node, so no edge
	// may dangle from it.
	if strings.Contains(dot, `"legacy"`) {
		t.Errorf("DOT references a package that is not a graph node:\n%s", dot)
	}
}

func TestNestingEdges(t *testing.T) {
	g := depgraph.Build([]depgraph.Occurrence{
		occ("a", "1.0.0", "node_modules/a", 0),
		occ("b", "2.0.0", "node_modules/a/node_modules/b", 1),
	})
	dot := ToDOT(g)
	if !strings.Contains(dot, `"a" -> "b"`) {
		t.Errorf("missing nesting edge a -> b:\n%s", dot)
	}
}
