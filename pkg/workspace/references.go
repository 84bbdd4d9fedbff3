package workspace

import (
	"fmt"
	"strings"
)

// ReferenceKind classifies a workspace reference problem.
type ReferenceKind string

const (
	// MissingWorkspaceTarget: a workspace: range points at a name that is
	// not a member of this workspace.
	MissingWorkspaceTarget ReferenceKind = "missing_workspace_target"

	// NonWorkspaceProtocol: a dependency on a sibling member is declared
	// with a registry range instead of the workspace: protocol.
	NonWorkspaceProtocol ReferenceKind = "non_workspace_protocol"
)

// ReferenceFinding reports one problematic dependency declaration.
type ReferenceFinding struct {
	Kind       ReferenceKind `json:"kind"`
	Member     string        `json:"member"`
	Dependency string        `json:"dependency"`
	Detail     string        `json:"detail"`
}

// CheckReferences validates workspace-internal references across all
// members. For each combined dependency entry: a workspace:-prefixed range
// whose target is not a member is a MissingWorkspaceTarget; a dependency
// that IS a member but is declared without the protocol (and not as a bare
// wildcard) is a NonWorkspaceProtocol finding.
func CheckReferences(members []*Member) []ReferenceFinding {
	index := memberIndex(members)

	var findings []ReferenceFinding
	for _, m := range members {
		deps := m.CombinedDependencies()
		for _, dep := range m.dependencyNames() {
			rng := deps[dep]

			if strings.HasPrefix(rng, ProtocolPrefix) {
				if _, ok := index[dep]; !ok {
					findings = append(findings, ReferenceFinding{
						Kind:       MissingWorkspaceTarget,
						Member:     m.Name,
						Dependency: dep,
						Detail:     fmt.Sprintf("references workspace package %q which does not exist", dep),
					})
				}
				continue
			}

			if _, ok := index[dep]; ok && !strings.HasPrefix(rng, "*") {
				findings = append(findings, ReferenceFinding{
					Kind:       NonWorkspaceProtocol,
					Member:     m.Name,
					Dependency: dep,
					Detail:     fmt.Sprintf("uses %q instead of %q for workspace package", rng, ProtocolPrefix+"*"),
				})
			}
		}
	}
	return findings
}

// memberIndex builds the name -> member lookup used by the reference and
// cycle detectors.
func memberIndex(members []*Member) map[string]*Member {
	index := make(map[string]*Member, len(members))
	for _, m := range members {
		index[m.Name] = m
	}
	return index
}
