package expr

import (
	"fmt"
	"strings"
)

// Factor is an indexed quantity: a base identity carrying an ordered index
// sequence. Canonicalization only rearranges indices; it reconstructs
// factors through Rebuild and never mutates them in place.
type Factor interface {
	// Base returns the identity used for symmetry lookup and display.
	Base() string

	// Indices returns the ordered index expressions. The slice must not be
	// modified by callers.
	Indices() []Expr

	// Rebuild returns a new factor with the same base and the given indices.
	Rebuild(indices []Expr) Factor

	// Conjugate returns the complex conjugate of the factor.
	Conjugate() Factor

	// Key returns the factor's total-order sort key.
	Key() string

	// String renders the factor for display, e.g. "t[i, j]".
	String() string
}

// Tensor is the reference [Factor] implementation: a named base with index
// expressions and a conjugation flag. The zero value is an anonymous scalar;
// use NewTensor.
type Tensor struct {
	name string
	idx  []Expr
	conj bool
}

// NewTensor creates a tensor with the given base name and indices.
func NewTensor(name string, indices ...Expr) Tensor {
	return Tensor{name: name, idx: indices}
}

// Base implements [Factor].
func (t Tensor) Base() string { return t.name }

// Indices implements [Factor].
func (t Tensor) Indices() []Expr { return t.idx }

// Rebuild implements [Factor]. The conjugation flag is preserved.
func (t Tensor) Rebuild(indices []Expr) Factor {
	return Tensor{name: t.name, idx: indices, conj: t.conj}
}

// Conjugate implements [Factor]. Conjugating twice returns the original.
func (t Tensor) Conjugate() Factor {
	return Tensor{name: t.name, idx: t.idx, conj: !t.conj}
}

// Conjugated reports whether the tensor carries the conjugation flag.
func (t Tensor) Conjugated() bool { return t.conj }

// Key implements [Factor].
func (t Tensor) Key() string {
	keys := make([]string, len(t.idx))
	for i, e := range t.idx {
		keys[i] = e.Key()
	}
	k := t.name + "[" + strings.Join(keys, ",") + "]"
	if t.conj {
		k = "conj:" + k
	}
	return k
}

// String implements [Factor].
func (t Tensor) String() string {
	parts := make([]string, len(t.idx))
	for i, e := range t.idx {
		parts[i] = e.String()
	}
	s := fmt.Sprintf("%s[%s]", t.name, strings.Join(parts, ", "))
	if t.conj {
		return "conj(" + s + ")"
	}
	return s
}
