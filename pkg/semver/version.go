package semver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrUnparsableVersion is returned by Parse when the input contains no
// recognizable version triple. The returned Version is still usable as an
// opaque value (Raw is preserved) but cannot participate in range checks.
var ErrUnparsableVersion = errors.New("unparsable version")

var (
	tripleRe = regexp.MustCompile(`(\d+)\.(\d+)\.(\d+)`)
	majorXRe = regexp.MustCompile(`^(\d+)\.[xX*]$`)
)

// Version is a three-component semantic version. Raw preserves the source
// string for display and opaque equality when parsing fails.
type Version struct {
	Major int    `json:"major"`
	Minor int    `json:"minor"`
	Patch int    `json:"patch"`
	Raw   string `json:"raw,omitempty"`

	valid bool
}

// New builds a valid Version from components.
func New(major, minor, patch int) Version {
	return Version{
		Major: major,
		Minor: minor,
		Patch: patch,
		Raw:   fmt.Sprintf("%d.%d.%d", major, minor, patch),
		valid: true,
	}
}

// Parse extracts the first major.minor.patch run from text. It tolerates
// leading range operators ("^1.2.3", ">=1.2.3") and trailing pre-release or
// build suffixes ("1.2.3-beta.1"). A bare "16.x" style requirement parses as
// 16.0.0. When no triple is found the raw string is kept and
// ErrUnparsableVersion is returned alongside the opaque value.
func Parse(text string) (Version, error) {
	if m := tripleRe.FindStringSubmatch(text); m != nil {
		major, _ := strconv.Atoi(m[1])
		minor, _ := strconv.Atoi(m[2])
		patch, _ := strconv.Atoi(m[3])
		return Version{Major: major, Minor: minor, Patch: patch, Raw: text, valid: true}, nil
	}
	if m := majorXRe.FindStringSubmatch(text); m != nil {
		major, _ := strconv.Atoi(m[1])
		return Version{Major: major, Raw: text, valid: true}, nil
	}
	return Version{Raw: text}, fmt.Errorf("%w: %q", ErrUnparsableVersion, text)
}

// Valid reports whether the version carries parsed numeric components.
// Invalid versions compare only by Raw and never satisfy a range.
func (v Version) Valid() bool { return v.valid }

// String returns the source string when available, otherwise the formatted
// triple.
func (v Version) String() string {
	if v.Raw != "" {
		return v.Raw
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare orders two valid versions lexicographically on
// (major, minor, patch). The result is -1, 0, or 1.
func (v Version) Compare(o Version) int {
	if c := cmpInt(v.Major, o.Major); c != 0 {
		return c
	}
	if c := cmpInt(v.Minor, o.Minor); c != 0 {
		return c
	}
	return cmpInt(v.Patch, o.Patch)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
