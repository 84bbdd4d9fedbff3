package workspace

import "github.com/lockscope/lockscope/pkg/semver"

// EngineFinding is the result of checking one member's engines.node
// declaration against a concrete Node.js version.
type EngineFinding struct {
	Member     string `json:"member"`
	Constraint string `json:"constraint"`
	Satisfied  bool   `json:"satisfied"`
}

// CheckEngines compares nodeVersion against every member's engines.node
// constraint. Members without an engines.node entry are skipped; a
// constraint that fails to parse counts as unsatisfied rather than being
// dropped, so a typo in engines surfaces instead of passing silently.
func CheckEngines(members []*Member, nodeVersion string) []EngineFinding {
	var findings []EngineFinding
	for _, m := range members {
		constraint, ok := m.Engines["node"]
		if !ok {
			continue
		}
		findings = append(findings, EngineFinding{
			Member:     m.Name,
			Constraint: constraint,
			Satisfied:  semver.SatisfiesRange(nodeVersion, constraint),
		})
	}
	return findings
}
