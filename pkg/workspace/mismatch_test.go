package workspace

import (
	"reflect"
	"testing"
)

func member(name string, deps map[string]string) *Member {
	return &Member{Name: name, Version: "1.0.0", Path: "packages/" + name, Dependencies: deps}
}

func TestFindMismatches(t *testing.T) {
	members := []*Member{
		member("app", map[string]string{"lodash": "^4.17.0", "react": "^18.0.0"}),
		member("lib", map[string]string{"lodash": "^4.17.21", "react": "^18.0.0"}),
	}

	findings := FindMismatches(members)
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1: %+v", len(findings), findings)
	}

	f := findings[0]
	if f.Dependency != "lodash" {
		t.Errorf("Dependency = %q, want lodash", f.Dependency)
	}
	want := []RangeUse{
		{Range: "^4.17.0", Members: []string{"app"}},
		{Range: "^4.17.21", Members: []string{"lib"}},
	}
	if !reflect.DeepEqual(f.Ranges, want) {
		t.Errorf("Ranges = %+v, want %+v", f.Ranges, want)
	}
}

func TestFindMismatchesLiteralComparison(t *testing.T) {
	// "^1.0.0" and "1.0.0" may resolve identically but still mismatch.
	members := []*Member{
		member("a", map[string]string{"dep": "^1.0.0"}),
		member("b", map[string]string{"dep": "1.0.0"}),
	}
	if got := FindMismatches(members); len(got) != 1 {
		t.Errorf("got %d findings, want 1", len(got))
	}
}

func TestFindMismatchesAgreement(t *testing.T) {
	members := []*Member{
		member("a", map[string]string{"dep": "^1.0.0"}),
		member("b", map[string]string{"dep": "^1.0.0"}),
		member("c", nil),
	}
	if got := FindMismatches(members); got != nil {
		t.Errorf("got findings for agreeing members: %+v", got)
	}
}

func TestFindMismatchesDevDependenciesCount(t *testing.T) {
	members := []*Member{
		{Name: "a", Dependencies: map[string]string{"dep": "^1.0.0"}},
		{Name: "b", DevDependencies: map[string]string{"dep": "^2.0.0"}},
	}
	if got := FindMismatches(members); len(got) != 1 {
		t.Errorf("devDependencies ignored: %+v", got)
	}
}

func TestFindMismatchesSortedByDependency(t *testing.T) {
	members := []*Member{
		member("a", map[string]string{"zeta": "1", "alpha": "1"}),
		member("b", map[string]string{"zeta": "2", "alpha": "2"}),
	}
	findings := FindMismatches(members)
	if len(findings) != 2 || findings[0].Dependency != "alpha" || findings[1].Dependency != "zeta" {
		t.Errorf("findings not sorted by dependency: %+v", findings)
	}
}
