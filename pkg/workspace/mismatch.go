package workspace

import "sort"

// RangeUse records one literal declared-range string and the members that
// declare it, in first-seen order.
type RangeUse struct {
	Range   string   `json:"range"`
	Members []string `json:"members"`
}

// MismatchFinding reports a dependency declared at different literal range
// strings by different workspace members. Ranges are compared textually,
// not by resolved version: "^1.0.0" and "1.0.0" mismatch even when they
// resolve identically.
type MismatchFinding struct {
	Dependency string     `json:"dependency"`
	Ranges     []RangeUse `json:"ranges"`
}

// FindMismatches scans every member's combined dependencies and
// devDependencies and groups member names by declared-range string. A
// dependency yields a finding iff more than one distinct range string is in
// use. Findings are sorted by dependency name; within a finding, ranges
// appear in first-seen member order.
func FindMismatches(members []*Member) []MismatchFinding {
	type usage struct {
		order  []string            // range strings, first-seen order
		byText map[string][]string // range string -> member names
	}
	uses := make(map[string]*usage)
	var depOrder []string

	for _, m := range members {
		for _, dep := range m.dependencyNames() {
			rng := m.CombinedDependencies()[dep]
			u, ok := uses[dep]
			if !ok {
				u = &usage{byText: make(map[string][]string)}
				uses[dep] = u
				depOrder = append(depOrder, dep)
			}
			if _, ok := u.byText[rng]; !ok {
				u.order = append(u.order, rng)
			}
			u.byText[rng] = append(u.byText[rng], m.Name)
		}
	}

	sort.Strings(depOrder)

	var findings []MismatchFinding
	for _, dep := range depOrder {
		u := uses[dep]
		if len(u.order) < 2 {
			continue
		}
		f := MismatchFinding{Dependency: dep}
		for _, rng := range u.order {
			f.Ranges = append(f.Ranges, RangeUse{Range: rng, Members: u.byText[rng]})
		}
		findings = append(findings, f)
	}
	return findings
}
