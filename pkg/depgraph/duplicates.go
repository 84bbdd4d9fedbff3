package depgraph

// DuplicateFinding reports one package name that resolved to more than one
// distinct version. Versions maps each version string to the locations where
// it was found, preserving discovery order within each version.
type DuplicateFinding struct {
	Name     string              `json:"name"`
	Versions map[string][]string `json:"versions"`
}

// FindDuplicates walks the graph and returns one finding per duplicated
// package, sorted by name. A node whose occurrences all share one version
// is not a finding regardless of how many locations it appears at.
func FindDuplicates(g *Graph) []DuplicateFinding {
	var findings []DuplicateFinding
	for _, name := range g.Names() {
		n, _ := g.Node(name)
		if !n.IsDuplicate() {
			continue
		}
		versions := make(map[string][]string)
		for _, occ := range n.Occurrences {
			v := occ.Version.String()
			versions[v] = append(versions[v], occ.Location)
		}
		findings = append(findings, DuplicateFinding{Name: name, Versions: versions})
	}
	return findings
}
