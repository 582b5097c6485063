package canon

import (
	"github.com/matzehuels/tensorcanon/pkg/perm"
)

// SymmetryTable maps factor bases to their declared index symmetries.
// Lookup prefers an exact (base, arity) entry, falls back to a base-only
// entry, and finally to nil. A nil group means no symmetry: no index
// reordering of that factor is considered equivalent.
//
// A nil *SymmetryTable is valid and declares no symmetries at all.
type SymmetryTable struct {
	byArity map[arityKey]*perm.Group
	byBase  map[string]*perm.Group
}

type arityKey struct {
	base  string
	arity int
}

// NewSymmetryTable creates an empty table.
func NewSymmetryTable() *SymmetryTable {
	return &SymmetryTable{
		byArity: make(map[arityKey]*perm.Group),
		byBase:  make(map[string]*perm.Group),
	}
}

// Set declares the symmetry for a base regardless of arity.
func (t *SymmetryTable) Set(base string, g *perm.Group) {
	t.byBase[base] = g
}

// SetArity declares the symmetry for one specific (base, arity) shape.
// Arity-specific entries shadow base-only entries.
func (t *SymmetryTable) SetArity(base string, arity int, g *perm.Group) {
	t.byArity[arityKey{base: base, arity: arity}] = g
}

// Lookup returns the symmetry for the given shape, or nil when none is
// declared. Missing symmetry is not an error.
func (t *SymmetryTable) Lookup(base string, arity int) *perm.Group {
	if t == nil {
		return nil
	}
	if g, ok := t.byArity[arityKey{base: base, arity: arity}]; ok {
		return g
	}
	if g, ok := t.byBase[base]; ok {
		return g
	}
	return nil
}

// Antisymmetric returns the symmetry group of a fully antisymmetric tensor
// of the given arity: adjacent transpositions, each flipping the sign.
// Convenience for the common antisymmetric-tensor declaration.
func Antisymmetric(arity int) *perm.Group {
	gens := make([]*perm.Perm, 0, arity-1)
	for i := 0; i+1 < arity; i++ {
		images := perm.Seq(arity)
		images[i], images[i+1] = images[i+1], images[i]
		p, err := perm.New(images, perm.Neg)
		if err != nil {
			panic(err) // adjacent transpositions are always valid
		}
		gens = append(gens, p)
	}
	g, err := perm.NewGroup(arity, gens)
	if err != nil {
		panic(err)
	}
	return g
}

// Symmetric returns the symmetry group of a fully symmetric tensor of the
// given arity: adjacent transpositions with no action.
func Symmetric(arity int) *perm.Group {
	gens := make([]*perm.Perm, 0, arity-1)
	for i := 0; i+1 < arity; i++ {
		images := perm.Seq(arity)
		images[i], images[i+1] = images[i+1], images[i]
		p, err := perm.New(images, perm.Ident)
		if err != nil {
			panic(err)
		}
		gens = append(gens, p)
	}
	g, err := perm.NewGroup(arity, gens)
	if err != nil {
		panic(err)
	}
	return g
}
