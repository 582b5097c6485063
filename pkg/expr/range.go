package expr

import (
	"fmt"
	"strings"
)

// Range describes the set a summation dummy runs over: a label plus optional
// symbolic lower and upper bounds. A range with bounds and a range without
// are never equal, even under the same label.
//
// Ranges are compared by their Key, which covers the label and both bounds,
// so structurally identical ranges compare equal regardless of how they were
// constructed.
type Range struct {
	label string
	lower Expr // nil when unbounded
	upper Expr // nil when unbounded
}

// NewRange creates an unbounded (purely symbolic) range.
func NewRange(label string) Range {
	return Range{label: label}
}

// NewBoundedRange creates a range with symbolic lower and upper bounds.
func NewBoundedRange(label string, lower, upper Expr) Range {
	return Range{label: label, lower: lower, upper: upper}
}

// Label returns the range's label.
func (r Range) Label() string { return r.label }

// Lower returns the lower bound, or nil for an unbounded range.
func (r Range) Lower() Expr { return r.lower }

// Upper returns the upper bound, or nil for an unbounded range.
func (r Range) Upper() Expr { return r.upper }

// Bounded reports whether the range carries bounds.
func (r Range) Bounded() bool { return r.lower != nil && r.upper != nil }

// Size returns upper - lower for a bounded range, or nil otherwise.
func (r Range) Size() Expr {
	if !r.Bounded() {
		return nil
	}
	return NewOp("-", r.upper, r.lower)
}

// ReplaceLabel returns a copy of the range under a new label, keeping the
// bounds.
func (r Range) ReplaceLabel(label string) Range {
	return Range{label: label, lower: r.lower, upper: r.upper}
}

// Key returns the total-order sort key, built from the label and bounds.
func (r Range) Key() string {
	parts := []string{r.label}
	if r.Bounded() {
		parts = append(parts, r.lower.Key(), r.upper.Key())
	}
	return "R(" + strings.Join(parts, ",") + ")"
}

// Equal reports whether two ranges have the same label and bounds.
func (r Range) Equal(o Range) bool { return r.Key() == o.Key() }

// String renders the range for display, e.g. "O" or "O[0, n]".
func (r Range) String() string {
	if !r.Bounded() {
		return r.label
	}
	return fmt.Sprintf("%s[%s, %s]", r.label, r.lower, r.upper)
}
