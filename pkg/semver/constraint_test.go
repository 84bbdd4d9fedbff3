package semver

import (
	"errors"
	"testing"
)

func TestParseConstraint(t *testing.T) {
	tests := []struct {
		in      string
		wantOp  Op
		wantVer Version
		wantErr bool
	}{
		{in: "1.2.3", wantOp: OpExact, wantVer: New(1, 2, 3)},
		{in: "=1.2.3", wantOp: OpExact, wantVer: New(1, 2, 3)},
		{in: ">=1.2.3", wantOp: OpGreaterEqual, wantVer: New(1, 2, 3)},
		{in: ">1.2.3", wantOp: OpGreaterThan, wantVer: New(1, 2, 3)},
		{in: "<=1.2.3", wantOp: OpLessEqual, wantVer: New(1, 2, 3)},
		{in: "<1.2.3", wantOp: OpLessThan, wantVer: New(1, 2, 3)},
		{in: "^1.2.3", wantOp: OpCaret, wantVer: New(1, 2, 3)},
		{in: "~1.2.3", wantOp: OpTilde, wantVer: New(1, 2, 3)},
		{in: "*", wantOp: OpAny},
		{in: "", wantOp: OpAny},
		{in: "16.x", wantOp: OpCaret, wantVer: New(16, 0, 0)},
		// Compound ranges read only the first clause.
		{in: ">=1.2.0 <2.0.0", wantOp: OpGreaterEqual, wantVer: New(1, 2, 0)},
		// Whitespace between operator and version binds them together.
		{in: ">= 14.0.0", wantOp: OpGreaterEqual, wantVer: New(14, 0, 0)},
		{in: "^ 1.2.3", wantOp: OpCaret, wantVer: New(1, 2, 3)},
		{in: ">= 1.2.0 <2.0.0", wantOp: OpGreaterEqual, wantVer: New(1, 2, 0)},
		{in: "not-a-version", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseConstraint(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnparsableConstraint) {
					t.Fatalf("ParseConstraint(%q) error = %v, want ErrUnparsableConstraint", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseConstraint(%q) unexpected error: %v", tt.in, err)
			}
			if got.Op != tt.wantOp {
				t.Errorf("ParseConstraint(%q).Op = %v, want %v", tt.in, got.Op, tt.wantOp)
			}
			if tt.wantOp != OpAny && got.Target.Compare(tt.wantVer) != 0 {
				t.Errorf("ParseConstraint(%q).Target = %s, want %s", tt.in, got.Target, tt.wantVer)
			}
		})
	}
}

func TestSatisfies(t *testing.T) {
	tests := []struct {
		name       string
		version    string
		constraint string
		want       bool
	}{
		{"exact match", "1.2.3", "1.2.3", true},
		{"exact mismatch", "1.2.4", "1.2.3", false},
		{"any always true", "0.0.1", "*", true},

		{"gte equal", "1.2.3", ">=1.2.3", true},
		{"gte spaced operator", "16.0.0", ">= 14.0.0", true},
		{"caret spaced operator", "1.3.0", "^ 1.2.3", true},
		{"gte spaced below", "12.0.0", ">= 14.0.0", false},
		{"gte above", "1.3.0", ">=1.2.3", true},
		{"gte below", "1.2.2", ">=1.2.3", false},
		{"gt strict", "1.2.3", ">1.2.3", false},
		{"gt above", "1.2.4", ">1.2.3", true},
		{"lte equal", "1.2.3", "<=1.2.3", true},
		{"lt strict", "1.2.3", "<1.2.3", false},
		{"lt below", "1.2.2", "<1.2.3", true},

		// Caret: major must match, (minor, patch) >= target.
		{"caret same", "1.2.3", "^1.2.3", true},
		{"caret minor up", "1.3.0", "^1.2.3", true},
		{"caret patch up", "1.2.9", "^1.2.3", true},
		{"caret patch down same minor", "1.2.2", "^1.2.3", false},
		{"caret minor down", "1.1.9", "^1.2.3", false},
		{"caret major up", "2.0.0", "^1.2.3", false},
		{"caret major down", "0.9.9", "^1.2.3", false},

		// Tilde: major and minor must match, patch >= target.
		{"tilde same", "1.2.3", "~1.2.3", true},
		{"tilde patch up", "1.2.9", "~1.2.3", true},
		{"tilde patch down", "1.2.2", "~1.2.3", false},
		{"tilde minor up", "1.3.0", "~1.2.3", false},
		{"tilde major up", "2.2.3", "~1.2.3", false},

		// Parse failures are conservatively unmet, never a panic.
		{"bad constraint", "1.2.3", "not-a-version", false},
		{"bad version", "oops", ">=1.0.0", false},
		{"bad version any", "oops", "*", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SatisfiesRange(tt.version, tt.constraint); got != tt.want {
				t.Errorf("SatisfiesRange(%q, %q) = %v, want %v", tt.version, tt.constraint, got, tt.want)
			}
		})
	}
}

// Ordered versions satisfy the expected one-sided bounds.
func TestSatisfiesOrdering(t *testing.T) {
	pairs := [][2]Version{
		{New(1, 0, 0), New(1, 0, 1)},
		{New(1, 0, 9), New(1, 1, 0)},
		{New(1, 9, 9), New(2, 0, 0)},
		{New(0, 1, 2), New(3, 0, 0)},
	}
	for _, p := range pairs {
		lo, hi := p[0], p[1]
		if !Satisfies(hi, Constraint{Op: OpGreaterEqual, Target: lo, valid: true}) {
			t.Errorf("%s should satisfy >=%s", hi, lo)
		}
		if !Satisfies(lo, Constraint{Op: OpLessThan, Target: hi, valid: true}) {
			t.Errorf("%s should satisfy <%s", lo, hi)
		}
	}
}
