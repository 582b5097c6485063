package perm

import (
	"fmt"

	"github.com/matzehuels/tensorcanon/pkg/errors"
)

// Group is a permutation group over a fixed degree, represented by a
// generating set. Elements are not enumerated until asked for.
//
// A nil *Group is valid everywhere a group is accepted and means the trivial
// group: no reordering is considered equivalent.
type Group struct {
	degree int
	gens   []*Perm
}

// NewGroup creates a group of the given degree from a generating set.
// Returns ErrCodeInvalidSymmetry if any generator has a different degree.
// Generators may carry actions; the group closure composes them.
func NewGroup(degree int, gens []*Perm) (*Group, error) {
	for _, g := range gens {
		if g.Degree() != degree {
			return nil, errors.New(errors.ErrCodeInvalidSymmetry,
				"generator %s has degree %d, group has degree %d", g, g.Degree(), degree)
		}
	}
	return &Group{degree: degree, gens: gens}, nil
}

// Degree returns the size of the domain the group acts on.
func (g *Group) Degree() int { return g.degree }

// Generators returns the generating set. The slice must not be modified.
func (g *Group) Generators() []*Perm { return g.gens }

// Elements returns every element of the group, identity first, computed by
// closing the generating set under composition. The order of the remaining
// elements is breadth-first from the identity and deterministic for a fixed
// generating set.
//
// If the same image list is reachable with two different actions the group
// declaration is inconsistent (the quantity would equal both x and -x);
// Elements panics in that case rather than silently picking one.
func (g *Group) Elements() []*Perm {
	ident := Identity(g.degree)
	seen := map[string]Action{ident.key(): Ident}
	elems := []*Perm{ident}

	for frontier := []*Perm{ident}; len(frontier) > 0; {
		var next []*Perm
		for _, e := range frontier {
			for _, gen := range g.gens {
				c := e.Compose(gen)
				k := c.key()
				if acc, ok := seen[k]; ok {
					if acc != c.Acc() {
						panic(fmt.Sprintf("perm: inconsistent group, %v reachable with actions %s and %s",
							c.images, acc, c.Acc()))
					}
					continue
				}
				seen[k] = c.Acc()
				elems = append(elems, c)
				next = append(next, c)
			}
		}
		frontier = next
	}
	return elems
}

// key identifies a permutation by its images alone, ignoring the action.
func (p *Perm) key() string {
	return fmt.Sprint(p.images)
}
