package depgraph

import (
	"reflect"
	"testing"

	"github.com/lockscope/lockscope/pkg/semver"
)

func occ(name, version, location string, depth int) Occurrence {
	v, _ := semver.Parse(version)
	return Occurrence{Name: name, Version: v, Location: location, Depth: depth}
}

func TestBuild(t *testing.T) {
	occs := []Occurrence{
		occ("react", "18.2.0", "node_modules/react", 0),
		occ("lodash", "4.17.21", "node_modules/lodash", 0),
		occ("react", "17.0.2", "node_modules/old/node_modules/react", 1),
	}

	g := Build(occs)

	if g.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", g.Len())
	}
	n, ok := g.Node("react")
	if !ok {
		t.Fatal("node react missing")
	}
	if len(n.Occurrences) != 2 {
		t.Fatalf("react occurrences = %d, want 2", len(n.Occurrences))
	}
	// Parse order is preserved.
	if n.Occurrences[0].Location != "node_modules/react" {
		t.Errorf("first occurrence location = %q", n.Occurrences[0].Location)
	}
	if got := g.Names(); !reflect.DeepEqual(got, []string{"lodash", "react"}) {
		t.Errorf("Names() = %v, want lexicographic order", got)
	}
}

func TestBuildIdempotent(t *testing.T) {
	occs := []Occurrence{
		occ("a", "1.0.0", "node_modules/a", 0),
		occ("b", "2.0.0", "node_modules/b", 0),
		occ("a", "2.0.0", "node_modules/b/node_modules/a", 1),
	}

	counts := func(g *Graph) map[string]int {
		m := make(map[string]int)
		for _, name := range g.Names() {
			n, _ := g.Node(name)
			m[name] = len(n.Occurrences)
		}
		return m
	}

	g1, g2 := Build(occs), Build(occs)
	if !reflect.DeepEqual(counts(g1), counts(g2)) {
		t.Errorf("two builds differ: %v vs %v", counts(g1), counts(g2))
	}
}

func TestIsDuplicate(t *testing.T) {
	tests := []struct {
		name string
		occs []Occurrence
		want bool
	}{
		{
			name: "same version twice is not a duplicate",
			occs: []Occurrence{
				occ("a", "1.0.0", "pathA", 0),
				occ("a", "1.0.0", "pathB", 1),
			},
			want: false,
		},
		{
			name: "two distinct versions is a duplicate",
			occs: []Occurrence{
				occ("a", "1.0.0", "pathA", 0),
				occ("a", "2.0.0", "pathB", 1),
			},
			want: true,
		},
		{
			name: "single occurrence",
			occs: []Occurrence{occ("a", "1.0.0", "pathA", 0)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Build(tt.occs)
			n, _ := g.Node("a")
			if got := n.IsDuplicate(); got != tt.want {
				t.Errorf("IsDuplicate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindDuplicates(t *testing.T) {
	g := Build([]Occurrence{
		occ("zeta", "1.0.0", "node_modules/zeta", 0),
		occ("zeta", "2.0.0", "node_modules/x/node_modules/zeta", 1),
		occ("alpha", "1.0.0", "node_modules/alpha", 0),
		occ("alpha", "1.0.0", "node_modules/y/node_modules/alpha", 1),
		occ("beta", "3.1.0", "node_modules/beta", 0),
		occ("beta", "3.2.0", "node_modules/z/node_modules/beta", 1),
	})

	findings := FindDuplicates(g)
	if len(findings) != 2 {
		t.Fatalf("findings = %d, want 2", len(findings))
	}
	// Sorted by name.
	if findings[0].Name != "beta" || findings[1].Name != "zeta" {
		t.Errorf("finding order = %s, %s; want beta, zeta", findings[0].Name, findings[1].Name)
	}
	locs := findings[1].Versions["1.0.0"]
	if len(locs) != 1 || locs[0] != "node_modules/zeta" {
		t.Errorf("zeta 1.0.0 locations = %v", locs)
	}
}

func TestSummarize(t *testing.T) {
	g := Build([]Occurrence{
		occ("a", "1.0.0", "node_modules/a", 0),
		occ("a", "2.0.0", "node_modules/b/node_modules/a", 1),
		occ("b", "2.0.0", "node_modules/b", 0),
		occ("c", "1.0.0", "node_modules/b/node_modules/c/x", 3),
	})

	s := g.Summarize()
	if s.UniquePackages != 3 {
		t.Errorf("UniquePackages = %d, want 3", s.UniquePackages)
	}
	if s.TotalOccurrences != 4 {
		t.Errorf("TotalOccurrences = %d, want 4", s.TotalOccurrences)
	}
	if s.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", s.Duplicates)
	}
	if s.MaxDepth != 3 {
		t.Errorf("MaxDepth = %d, want 3", s.MaxDepth)
	}
	if s.AvgDepth != 1.0 {
		t.Errorf("AvgDepth = %v, want 1.0", s.AvgDepth)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Build(nil).Summarize()
	if s.TotalOccurrences != 0 || s.AvgDepth != 0 {
		t.Errorf("empty graph summary = %+v", s)
	}
}
