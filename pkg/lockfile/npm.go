package lockfile

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/lockscope/lockscope/pkg/depgraph"
	"github.com/lockscope/lockscope/pkg/semver"
)

const nestingSeparator = "node_modules/"

// NPMLock parses package-lock.json (and npm-shrinkwrap.json) documents.
// Lockfile versions 2 and 3 store packages keyed by their full install path;
// version 1 nests dependency objects recursively. Both forms are read, and
// a document carrying both contributes occurrences from each.
type NPMLock struct{}

func (p *NPMLock) Type() string { return "package-lock.json" }

func (p *NPMLock) Supports(name string) bool {
	return name == "package-lock.json" || name == "npm-shrinkwrap.json"
}

type npmLockFile struct {
	Name            string                   `json:"name"`
	LockfileVersion int                      `json:"lockfileVersion"`
	Packages        map[string]npmPackage    `json:"packages"`
	Dependencies    map[string]npmDependency `json:"dependencies"`
}

type npmPackage struct {
	Version string `json:"version"`
}

type npmDependency struct {
	Version      string                   `json:"version"`
	Dependencies map[string]npmDependency `json:"dependencies"`
}

func (p *NPMLock) Parse(data []byte) ([]depgraph.Occurrence, error) {
	var lock npmLockFile
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if lock.Packages == nil && lock.Dependencies == nil {
		return nil, fmt.Errorf("%w: missing packages or dependencies key", ErrMalformed)
	}

	var occs []depgraph.Occurrence
	occs = append(occs, parsePackagesMap(lock.Packages)...)
	occs = append(occs, walkDependencyTree(lock.Dependencies)...)
	return occs, nil
}

// parsePackagesMap reads the lockfile v2/v3 form: keys are slash-joined
// install paths ("node_modules/a/node_modules/b"), the package name is the
// segment after the last separator and the depth is the separator count
// minus one. The empty key describes the root project and is skipped.
func parsePackagesMap(packages map[string]npmPackage) []depgraph.Occurrence {
	paths := make([]string, 0, len(packages))
	for path := range packages {
		if path == "" {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var occs []depgraph.Occurrence
	for _, path := range paths {
		parts := strings.Split(path, nestingSeparator)
		if len(parts) < 2 {
			continue
		}
		occs = append(occs, depgraph.Occurrence{
			Name:     parts[len(parts)-1],
			Version:  parseVersion(packages[path].Version),
			Location: path,
			Depth:    len(parts) - 2,
		})
	}
	return occs
}

// treeFrame is one pending entry of the v1 dependency-tree walk.
type treeFrame struct {
	name   string
	dep    npmDependency
	prefix string
	depth  int
}

// walkDependencyTree reads the lockfile v1 form depth-first with an explicit
// worklist so pathological nesting cannot grow the call stack. Siblings are
// visited in lexicographic order, and a package's nested dependencies are
// visited before its next sibling.
func walkDependencyTree(deps map[string]npmDependency) []depgraph.Occurrence {
	var occs []depgraph.Occurrence

	stack := pushFrames(nil, deps, nestingSeparator, 0)
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		location := f.prefix + f.name
		occs = append(occs, depgraph.Occurrence{
			Name:     f.name,
			Version:  parseVersion(f.dep.Version),
			Location: location,
			Depth:    f.depth,
		})

		stack = pushFrames(stack, f.dep.Dependencies, location+"/"+nestingSeparator, f.depth+1)
	}
	return occs
}

// pushFrames appends frames for deps in reverse lexicographic order so the
// LIFO pop yields sorted, depth-first traversal.
func pushFrames(stack []treeFrame, deps map[string]npmDependency, prefix string, depth int) []treeFrame {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	for _, name := range names {
		stack = append(stack, treeFrame{name: name, dep: deps[name], prefix: prefix, depth: depth})
	}
	return stack
}

// parseVersion converts a lockfile version string into the version model.
// Missing versions become the opaque value "unknown"; unparsable strings are
// kept raw so the occurrence is still recorded.
func parseVersion(s string) semver.Version {
	if s == "" {
		s = "unknown"
	}
	v, _ := semver.Parse(s)
	return v
}
