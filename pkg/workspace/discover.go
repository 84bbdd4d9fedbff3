package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind identifies which workspace tool a repository uses.
type Kind string

const (
	KindNPM   Kind = "npm-workspaces"
	KindYarn  Kind = "yarn-workspaces"
	KindPnpm  Kind = "pnpm-workspaces"
	KindLerna Kind = "lerna"
)

// ErrNoWorkspace is returned by Discover when root holds no recognizable
// workspace configuration.
var ErrNoWorkspace = fmt.Errorf("no workspace configuration found")

// Detect inspects root and reports which workspace tools configure it, in
// precedence order. A package.json workspaces field counts as yarn when a
// yarn.lock sits next to it, npm otherwise.
func Detect(root string) []Kind {
	var kinds []Kind

	if data, err := os.ReadFile(filepath.Join(root, "package.json")); err == nil {
		if m, err := ParseManifest(data); err == nil && len(m.Workspaces.Patterns) > 0 {
			if _, err := os.Stat(filepath.Join(root, "yarn.lock")); err == nil {
				kinds = append(kinds, KindYarn)
			} else {
				kinds = append(kinds, KindNPM)
			}
		}
	}
	if _, err := os.Stat(filepath.Join(root, "lerna.json")); err == nil {
		kinds = append(kinds, KindLerna)
	}
	if _, err := os.Stat(filepath.Join(root, "pnpm-workspace.yaml")); err == nil {
		kinds = append(kinds, KindPnpm)
	}
	return kinds
}

// Discover finds workspace members under root: it reads the root
// configuration for the detected tool, expands the member patterns, and
// parses each member's package.json. Members are returned in sorted path
// order. Unreadable member manifests are skipped.
func Discover(root string) ([]*Member, Kind, error) {
	kinds := Detect(root)
	if len(kinds) == 0 {
		return nil, "", ErrNoWorkspace
	}
	kind := kinds[0]

	patterns, err := rootPatterns(root, kind)
	if err != nil {
		return nil, kind, err
	}

	var members []*Member
	for _, dir := range ExpandPatterns(root, patterns) {
		data, err := os.ReadFile(filepath.Join(dir, "package.json"))
		if err != nil {
			continue
		}
		m, err := ParseManifest(data)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(root, dir)
		if err != nil {
			rel = dir
		}
		members = append(members, m.Member(rel))
	}
	return members, kind, nil
}

// rootPatterns reads the member path patterns for the given tool.
func rootPatterns(root string, kind Kind) ([]string, error) {
	switch kind {
	case KindNPM, KindYarn:
		data, err := os.ReadFile(filepath.Join(root, "package.json"))
		if err != nil {
			return nil, err
		}
		m, err := ParseManifest(data)
		if err != nil {
			return nil, err
		}
		return m.Workspaces.Patterns, nil

	case KindLerna:
		data, err := os.ReadFile(filepath.Join(root, "lerna.json"))
		if err != nil {
			return nil, err
		}
		var lerna struct {
			Packages []string `json:"packages"`
		}
		if err := json.Unmarshal(data, &lerna); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedManifest, err)
		}
		if len(lerna.Packages) == 0 {
			return []string{"packages/*"}, nil
		}
		return lerna.Packages, nil

	case KindPnpm:
		data, err := os.ReadFile(filepath.Join(root, "pnpm-workspace.yaml"))
		if err != nil {
			return nil, err
		}
		var ws struct {
			Packages []string `yaml:"packages"`
		}
		if err := yaml.Unmarshal(data, &ws); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedManifest, err)
		}
		return ws.Packages, nil
	}
	return nil, fmt.Errorf("unknown workspace kind %q", kind)
}

// ExpandPatterns resolves member path patterns against the filesystem.
// A "dir/*" pattern expands one directory level; every candidate must
// contain a package.json to count as a member. Plain paths are kept as-is
// when they hold a package.json. Results are sorted for determinism.
func ExpandPatterns(root string, patterns []string) []string {
	seen := make(map[string]bool)
	var dirs []string

	add := func(dir string) {
		if seen[dir] {
			return
		}
		if _, err := os.Stat(filepath.Join(dir, "package.json")); err != nil {
			return
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}

	for _, pattern := range patterns {
		if strings.Contains(pattern, "*") {
			base := strings.TrimSuffix(pattern, "/*")
			base = strings.ReplaceAll(base, "*", "")
			entries, err := os.ReadDir(filepath.Join(root, base))
			if err != nil {
				continue
			}
			for _, e := range entries {
				if e.IsDir() {
					add(filepath.Join(root, base, e.Name()))
				}
			}
			continue
		}
		add(filepath.Join(root, pattern))
	}

	sort.Strings(dirs)
	return dirs
}
