package semver

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnparsableConstraint is returned by ParseConstraint when the input does
// not match any recognized range grammar. Satisfies against such a
// constraint always reports false.
var ErrUnparsableConstraint = errors.New("unparsable constraint")

// Op identifies the single bound a Constraint applies.
type Op int

const (
	OpExact Op = iota
	OpGreaterEqual
	OpGreaterThan
	OpLessEqual
	OpLessThan
	OpCaret
	OpTilde
	OpAny
)

// String returns the operator as written in a range expression.
func (o Op) String() string {
	switch o {
	case OpGreaterEqual:
		return ">="
	case OpGreaterThan:
		return ">"
	case OpLessEqual:
		return "<="
	case OpLessThan:
		return "<"
	case OpCaret:
		return "^"
	case OpTilde:
		return "~"
	case OpAny:
		return "*"
	default:
		return "="
	}
}

// Constraint is a single-clause version range: one operator and one target
// version. Compound ranges ("">=1.2.0 <2.0.0") are not represented; only the
// first clause of such an expression is read.
type Constraint struct {
	Op     Op
	Target Version

	valid bool
}

// opTable maps textual operators to Op, longest prefix first so that ">="
// is never read as ">".
var opTable = []struct {
	prefix string
	op     Op
}{
	{">=", OpGreaterEqual},
	{"<=", OpLessEqual},
	{">", OpGreaterThan},
	{"<", OpLessThan},
	{"^", OpCaret},
	{"~", OpTilde},
	{"=", OpExact},
}

// ParseConstraint reads a single range clause from text. "*" and "x" match
// any version, a bare "16.x" is treated as caret on 16.0.0, and an absent
// operator means exact. Whitespace between the operator and its version
// (">= 14.0.0") is tolerated. When text holds multiple whitespace-separated
// clauses only the first is parsed. On failure the returned constraint is
// never satisfied and ErrUnparsableConstraint is reported.
func ParseConstraint(text string) (Constraint, error) {
	clause := strings.TrimSpace(text)

	first := clause
	if i := strings.IndexAny(first, " \t"); i >= 0 {
		first = first[:i]
	}
	if first == "" || first == "*" || first == "x" || first == "X" {
		return Constraint{Op: OpAny, valid: true}, nil
	}

	// The operator is detected before cutting at whitespace so that a
	// spaced clause keeps its version.
	op := OpExact
	rest := clause
	for _, e := range opTable {
		if strings.HasPrefix(clause, e.prefix) {
			op = e.op
			rest = strings.TrimSpace(clause[len(e.prefix):])
			break
		}
	}
	if i := strings.IndexAny(rest, " \t"); i >= 0 {
		rest = rest[:i]
	}

	target, err := Parse(rest)
	if err != nil {
		return Constraint{Op: op, Target: target}, fmt.Errorf("%w: %q", ErrUnparsableConstraint, text)
	}
	// "16.x" without an operator behaves like ^16.0.0.
	if op == OpExact && majorXRe.MatchString(rest) {
		op = OpCaret
	}
	return Constraint{Op: op, Target: target, valid: true}, nil
}

// Valid reports whether the constraint parsed completely.
func (c Constraint) Valid() bool { return c.valid }

// String renders the constraint in range syntax.
func (c Constraint) String() string {
	if c.Op == OpAny {
		return "*"
	}
	return c.Op.String() + c.Target.String()
}

// Satisfies reports whether v meets c.
//
// Caret requires an equal major component and (minor, patch) at or above the
// target; tilde requires equal major and minor with patch at or above the
// target. Comparison operators use full lexicographic triple ordering. Any
// parse failure on either side conservatively yields false.
func Satisfies(v Version, c Constraint) bool {
	if c.Op == OpAny {
		return true
	}
	if !c.valid || !c.Target.valid || !v.valid {
		return false
	}
	switch c.Op {
	case OpExact:
		return v.Compare(c.Target) == 0
	case OpGreaterEqual:
		return v.Compare(c.Target) >= 0
	case OpGreaterThan:
		return v.Compare(c.Target) > 0
	case OpLessEqual:
		return v.Compare(c.Target) <= 0
	case OpLessThan:
		return v.Compare(c.Target) < 0
	case OpCaret:
		if v.Major != c.Target.Major {
			return false
		}
		if v.Minor != c.Target.Minor {
			return v.Minor > c.Target.Minor
		}
		return v.Patch >= c.Target.Patch
	case OpTilde:
		return v.Major == c.Target.Major &&
			v.Minor == c.Target.Minor &&
			v.Patch >= c.Target.Patch
	default:
		return false
	}
}

// SatisfiesRange is a convenience that parses both sides and evaluates the
// constraint. Either parse failing yields false.
func SatisfiesRange(version, rangeText string) bool {
	v, err := Parse(version)
	if err != nil {
		return false
	}
	c, err := ParseConstraint(rangeText)
	if err != nil {
		return false
	}
	return Satisfies(v, c)
}
