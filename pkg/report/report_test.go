package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/lockscope/lockscope/pkg/depgraph"
	"github.com/lockscope/lockscope/pkg/semver"
	"github.com/lockscope/lockscope/pkg/workspace"
)

func graph(t *testing.T) *depgraph.Graph {
	t.Helper()
	v18, _ := semver.Parse("18.2.0")
	v17, _ := semver.Parse("17.0.2")
	return depgraph.Build([]depgraph.Occurrence{
		{Name: "react", Version: v18, Location: "node_modules/react", Depth: 0},
		{Name: "react", Version: v17, Location: "node_modules/old/node_modules/react", Depth: 1},
	})
}

func TestNew(t *testing.T) {
	r := New("package-lock.json", "npm", graph(t))

	if r.Source != "package-lock.json" || r.LockfileType != "npm" {
		t.Errorf("header fields wrong: %+v", r)
	}
	if r.Summary.UniquePackages != 1 || r.Summary.Duplicates != 1 {
		t.Errorf("summary = %+v", r.Summary)
	}
	if len(r.Duplicates) != 1 || r.Duplicates[0].Name != "react" {
		t.Errorf("duplicates = %+v", r.Duplicates)
	}
	if r.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not set")
	}
}

func TestWithWorkspace(t *testing.T) {
	members := []*workspace.Member{
		{Name: "a", Dependencies: map[string]string{"b": "workspace:*"}},
		{Name: "b", Dependencies: map[string]string{"a": "workspace:*"}},
	}
	r := New("root", "npm", graph(t)).WithWorkspace(members)

	if len(r.Cycles) != 2 {
		t.Errorf("cycles = %+v, want 2 findings", r.Cycles)
	}
	if want := 1 + 2; r.FindingCount() != want {
		t.Errorf("FindingCount() = %d, want %d", r.FindingCount(), want)
	}
}

func TestFindingCountEngines(t *testing.T) {
	members := []*workspace.Member{
		{Name: "ok", Engines: map[string]string{"node": ">=18.0.0"}},
		{Name: "old", Engines: map[string]string{"node": "^20.0.0"}},
	}
	r := New("root", "npm", graph(t)).WithEngines(members, "18.19.0")

	// 1 duplicate + 1 unsatisfied engine; the satisfied check is not a finding.
	if r.FindingCount() != 2 {
		t.Errorf("FindingCount() = %d, want 2", r.FindingCount())
	}
}

func TestJSONOmitsEmptySections(t *testing.T) {
	data, err := New("src", "npm", graph(t)).JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	out := string(data)
	for _, absent := range []string{"mismatches", "references", "cycles", "engines"} {
		if strings.Contains(out, absent) {
			t.Errorf("empty section %q serialized:\n%s", absent, out)
		}
	}

	var round Report
	if err := json.Unmarshal(data, &round); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if round.Summary.TotalOccurrences != 2 {
		t.Errorf("round trip summary = %+v", round.Summary)
	}
}
