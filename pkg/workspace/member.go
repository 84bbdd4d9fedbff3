package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ProtocolPrefix marks a declared range that resolves to a sibling
// workspace member instead of a registry version (e.g. "workspace:*").
const ProtocolPrefix = "workspace:"

// ErrMalformedManifest is returned when a manifest document is not valid
// JSON/YAML for its expected schema.
var ErrMalformedManifest = errors.New("malformed manifest")

// Member is one package manifest belonging to a workspace. Created during
// discovery and never mutated afterwards.
type Member struct {
	Name             string            `json:"name"`
	Version          string            `json:"version"`
	Path             string            `json:"path"`
	Dependencies     map[string]string `json:"dependencies,omitempty"`
	DevDependencies  map[string]string `json:"devDependencies,omitempty"`
	PeerDependencies map[string]string `json:"peerDependencies,omitempty"`
	Engines          map[string]string `json:"engines,omitempty"`
}

// CombinedDependencies merges dependencies and devDependencies; on a name
// collision the devDependencies entry wins, matching npm install order.
func (m *Member) CombinedDependencies() map[string]string {
	out := make(map[string]string, len(m.Dependencies)+len(m.DevDependencies))
	for name, rng := range m.Dependencies {
		out[name] = rng
	}
	for name, rng := range m.DevDependencies {
		out[name] = rng
	}
	return out
}

// dependencyNames returns the combined dependency names in lexicographic
// order for deterministic iteration.
func (m *Member) dependencyNames() []string {
	deps := m.CombinedDependencies()
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Manifest is the subset of package.json the analyses need.
type Manifest struct {
	Name             string            `json:"name"`
	Version          string            `json:"version"`
	Private          bool              `json:"private"`
	Dependencies     map[string]string `json:"dependencies"`
	DevDependencies  map[string]string `json:"devDependencies"`
	PeerDependencies map[string]string `json:"peerDependencies"`
	Engines          map[string]string `json:"engines"`
	Workspaces       WorkspacesField   `json:"workspaces"`
}

// WorkspacesField accepts both declaration shapes: a plain pattern array, or
// an object with a "packages" array.
type WorkspacesField struct {
	Patterns []string
}

func (w *WorkspacesField) UnmarshalJSON(data []byte) error {
	var patterns []string
	if err := json.Unmarshal(data, &patterns); err == nil {
		w.Patterns = patterns
		return nil
	}
	var obj struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	w.Patterns = obj.Packages
	return nil
}

// ParseManifest decodes a package.json document. Absent dependency maps
// stay nil; callers treat them as empty.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedManifest, err)
	}
	return &m, nil
}

// Member converts a manifest into a workspace member rooted at path.
func (m *Manifest) Member(path string) *Member {
	name := m.Name
	if name == "" {
		name = "unknown"
	}
	version := m.Version
	if version == "" {
		version = "0.0.0"
	}
	return &Member{
		Name:             name,
		Version:          version,
		Path:             path,
		Dependencies:     m.Dependencies,
		DevDependencies:  m.DevDependencies,
		PeerDependencies: m.PeerDependencies,
		Engines:          m.Engines,
	}
}
