// Package expr provides the symbolic expression representation consumed by
// the canonicalization core.
//
// The core only needs a small capability set from expressions: a total-order
// sort key, free-symbol enumeration, and symbol-for-symbol substitution.
// Those capabilities form the [Expr] interface; [Sym], [Num] and [Op] are the
// reference implementations used by the CLI, the term-file format, and tests.
// Indexed quantities (tensors) additionally expose base/indices decomposition
// and reconstruction through the [Factor] interface.
//
// Sort keys are injective serializations: two expressions are equal exactly
// when their keys are equal, and comparing keys lexicographically yields a
// deterministic total order. The order is not a mathematical "size" order -
// it only has to be total and stable, which is all canonicalization needs.
package expr

import (
	"fmt"
	"slices"
	"strings"
)

// Expr is a symbolic expression. Implementations must be immutable value
// types: Subst returns a new expression, never modifies the receiver.
type Expr interface {
	// Key returns the total-order sort key. Keys are injective: equal keys
	// mean equal expressions.
	Key() string

	// Atoms returns the free symbol names occurring in the expression,
	// sorted and deduplicated.
	Atoms() []string

	// Subst returns a copy with every symbol renamed through the map.
	// Symbols absent from the map are kept.
	Subst(map[string]string) Expr

	// String renders the expression for display.
	String() string
}

// Key prefixes keep the three expression kinds totally ordered against each
// other: numbers sort before symbols, symbols before operator nodes.
const (
	numPrefix = "0:"
	symPrefix = "1:"
	opPrefix  = "2:"
)

// Sym is a free symbol, identified by name.
type Sym struct {
	Name string
}

// NewSym creates a symbol with the given name.
func NewSym(name string) Sym { return Sym{Name: name} }

// Key implements [Expr].
func (s Sym) Key() string { return symPrefix + s.Name }

// Atoms implements [Expr].
func (s Sym) Atoms() []string { return []string{s.Name} }

// Subst implements [Expr].
func (s Sym) Subst(m map[string]string) Expr {
	if to, ok := m[s.Name]; ok {
		return Sym{Name: to}
	}
	return s
}

// String implements [Expr].
func (s Sym) String() string { return s.Name }

// Num is an integer literal.
type Num struct {
	Value int64
}

// NewNum creates an integer literal.
func NewNum(v int64) Num { return Num{Value: v} }

// Key implements [Expr]. The value is offset into the unsigned range so the
// fixed-width decimal encoding sorts numerically.
func (n Num) Key() string {
	return fmt.Sprintf("%s%020d", numPrefix, uint64(n.Value)+1<<63)
}

// Atoms implements [Expr].
func (n Num) Atoms() []string { return nil }

// Subst implements [Expr].
func (n Num) Subst(map[string]string) Expr { return n }

// String implements [Expr].
func (n Num) String() string { return fmt.Sprintf("%d", n.Value) }

// Op is an operator or function application node with a fixed argument
// order. Argument order is significant: Op{"+", [i, j]} and Op{"+", [j, i]}
// are distinct expressions. Any algebraic identities are the caller's
// business, not this package's.
type Op struct {
	Name string
	Args []Expr
}

// NewOp creates an operator node.
func NewOp(name string, args ...Expr) Op {
	return Op{Name: name, Args: args}
}

// Key implements [Expr].
func (o Op) Key() string {
	keys := make([]string, len(o.Args))
	for i, a := range o.Args {
		keys[i] = a.Key()
	}
	return opPrefix + o.Name + "(" + strings.Join(keys, ",") + ")"
}

// Atoms implements [Expr].
func (o Op) Atoms() []string {
	var names []string
	for _, a := range o.Args {
		names = append(names, a.Atoms()...)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// Subst implements [Expr].
func (o Op) Subst(m map[string]string) Expr {
	args := make([]Expr, len(o.Args))
	for i, a := range o.Args {
		args[i] = a.Subst(m)
	}
	return Op{Name: o.Name, Args: args}
}

// String implements [Expr]. Binary arithmetic operators render infix,
// everything else as a function application.
func (o Op) String() string {
	if len(o.Args) == 2 {
		switch o.Name {
		case "+", "-", "*":
			return fmt.Sprintf("(%s %s %s)", o.Args[0], o.Name, o.Args[1])
		}
	}
	parts := make([]string, len(o.Args))
	for i, a := range o.Args {
		parts[i] = a.String()
	}
	return o.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Equal reports whether two expressions are equal. Keys are injective, so
// key comparison is exact equality, not an approximation.
func Equal(a, b Expr) bool {
	return a.Key() == b.Key()
}

// Less reports whether a precedes b in the total order.
func Less(a, b Expr) bool {
	return a.Key() < b.Key()
}
