// Package report aggregates the individual analyses into one serializable
// document, suitable for the CLI's --json output and the HTTP API.
package report

import (
	"encoding/json"
	"time"

	"github.com/lockscope/lockscope/pkg/depgraph"
	"github.com/lockscope/lockscope/pkg/workspace"
)

// Report is the combined result of analyzing a lockfile and, when present,
// the surrounding workspace. Sections that were not run stay empty and are
// omitted from JSON output.
type Report struct {
	GeneratedAt  time.Time                    `json:"generated_at"`
	Source       string                       `json:"source"`
	LockfileType string                       `json:"lockfile_type,omitempty"`
	Summary      depgraph.Summary             `json:"summary"`
	Duplicates   []depgraph.DuplicateFinding  `json:"duplicates,omitempty"`
	Mismatches   []workspace.MismatchFinding  `json:"mismatches,omitempty"`
	References   []workspace.ReferenceFinding `json:"references,omitempty"`
	Cycles       []workspace.CycleFinding     `json:"cycles,omitempty"`
	Engines      []workspace.EngineFinding    `json:"engines,omitempty"`
}

// New builds a report for a parsed dependency graph. Workspace sections are
// filled in by the With* methods.
func New(source, lockfileType string, g *depgraph.Graph) *Report {
	return &Report{
		GeneratedAt:  time.Now().UTC(),
		Source:       source,
		LockfileType: lockfileType,
		Summary:      g.Summarize(),
		Duplicates:   depgraph.FindDuplicates(g),
	}
}

// WithWorkspace runs the workspace analyses over members and attaches their
// findings.
func (r *Report) WithWorkspace(members []*workspace.Member) *Report {
	r.Mismatches = workspace.FindMismatches(members)
	r.References = workspace.CheckReferences(members)
	r.Cycles = workspace.FindCycles(members)
	return r
}

// WithEngines attaches an engines.node compatibility check for the given
// Node.js version.
func (r *Report) WithEngines(members []*workspace.Member, nodeVersion string) *Report {
	r.Engines = workspace.CheckEngines(members, nodeVersion)
	return r
}

// FindingCount is the total number of findings across all sections. Engine
// checks count only when unsatisfied.
func (r *Report) FindingCount() int {
	n := len(r.Duplicates) + len(r.Mismatches) + len(r.References) + len(r.Cycles)
	for _, e := range r.Engines {
		if !e.Satisfied {
			n++
		}
	}
	return n
}

// JSON serializes the report with indentation for human consumption.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
