package lockfile

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lockscope/lockscope/pkg/depgraph"
)

// PnpmLock parses pnpm-lock.yaml documents. Package specs are keyed as
// /name/version (or /@scope/name/version); the split happens on the last
// slash because scoped names contain one themselves.
type PnpmLock struct{}

func (p *PnpmLock) Type() string              { return "pnpm-lock.yaml" }
func (p *PnpmLock) Supports(name string) bool { return name == "pnpm-lock.yaml" }

type pnpmLockFile struct {
	// lockfileVersion is a string in pnpm 6+ and a float before that;
	// it is not needed for occurrence extraction, so it is left undeclared.
	Packages map[string]pnpmPackage `yaml:"packages"`
}

type pnpmPackage struct {
	Resolution map[string]string `yaml:"resolution"`
	Dev        bool              `yaml:"dev"`
}

func (p *PnpmLock) Parse(data []byte) ([]depgraph.Occurrence, error) {
	var lock pnpmLockFile
	if err := yaml.Unmarshal(data, &lock); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if lock.Packages == nil {
		return nil, fmt.Errorf("%w: missing packages key", ErrMalformed)
	}

	specs := make([]string, 0, len(lock.Packages))
	for spec := range lock.Packages {
		specs = append(specs, spec)
	}
	sort.Strings(specs)

	var occs []depgraph.Occurrence
	for _, spec := range specs {
		name, version, ok := splitPackageSpec(spec)
		if !ok {
			continue
		}
		occs = append(occs, depgraph.Occurrence{
			Name:     name,
			Version:  parseVersion(version),
			Location: spec,
			Depth:    0,
		})
	}
	return occs, nil
}

// splitPackageSpec splits "/name/1.0.0" or "/@scope/name/1.0.0" into name
// and version on the last slash.
func splitPackageSpec(spec string) (name, version string, ok bool) {
	if !strings.HasPrefix(spec, "/") {
		return "", "", false
	}
	rest := spec[1:]
	i := strings.LastIndex(rest, "/")
	if i <= 0 {
		return "", "", false
	}
	return rest[:i], rest[i+1:], true
}
