package workspace

// CycleFinding reports one directed edge participating in a circular
// dependency: MemberA depends on MemberB, and MemberA is reachable again
// from MemberB through workspace-internal references. A self-referential
// member yields a finding with MemberA == MemberB. Reporting is
// edge-granular: a three-member cycle surfaces as three findings, one per
// participating edge.
type CycleFinding struct {
	MemberA string `json:"member_a"`
	MemberB string `json:"member_b"`
}

// FindCycles tests, for every (member, internally-referenced dependency)
// edge, whether the member is reachable from that dependency through the
// internal-reference-only subgraph. Traversal is a depth-first search with
// a per-traversal visited set, so cyclic and self-referential input always
// terminates.
func FindCycles(members []*Member) []CycleFinding {
	index := memberIndex(members)

	var findings []CycleFinding
	for _, m := range members {
		for _, dep := range m.dependencyNames() {
			if _, ok := index[dep]; !ok {
				continue
			}
			if reachable(index, dep, m.Name) {
				findings = append(findings, CycleFinding{MemberA: m.Name, MemberB: dep})
			}
		}
	}
	return findings
}

// reachable reports whether target can be reached from start by following
// dependencies that are themselves workspace members. Visited-set
// membership is checked before descending into a neighbor.
func reachable(index map[string]*Member, start, target string) bool {
	visited := make(map[string]bool)
	stack := []string{start}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[current] {
			continue
		}
		visited[current] = true

		m, ok := index[current]
		if !ok {
			continue
		}
		for _, dep := range m.dependencyNames() {
			if dep == target {
				return true
			}
			if _, ok := index[dep]; ok && !visited[dep] {
				stack = append(stack, dep)
			}
		}
	}
	return false
}
