// Package perm provides permutations over {0..n-1}, optionally carrying an
// accumulated algebraic action (sign flip, complex conjugation), and
// permutation groups given by generating sets.
//
// Permutations are used in two roles:
//
//   - As declared symmetries: a group attached to a graph node states that
//     reordering the node's out-edges by any group element leaves the node
//     equivalent, up to the element's action.
//   - As canonicalization results: the permutation that brings a node's
//     edges into canonical order, with the action collected along the way.
//
// Actions form a 2-bit flag set closed under composition: two sign flips
// cancel, two conjugations cancel, so composition is XOR.
package perm

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/tensorcanon/pkg/errors"
)

// Action is the algebraic side effect accumulated by a permutation.
type Action uint8

const (
	// Ident is the trivial action.
	Ident Action = 0
	// Neg multiplies the coefficient of the permuted quantity by -1.
	Neg Action = 1 << 0
	// Conj replaces the permuted quantity by its complex conjugate.
	Conj Action = 1 << 1
)

// String returns a short human-readable form like "ident", "neg" or "neg|conj".
func (a Action) String() string {
	if a == Ident {
		return "ident"
	}
	var parts []string
	if a&Neg != 0 {
		parts = append(parts, "neg")
	}
	if a&Conj != 0 {
		parts = append(parts, "conj")
	}
	return strings.Join(parts, "|")
}

// Perm is a bijection on {0..n-1} together with an accumulated action.
// The zero value is not usable - use New or Identity.
type Perm struct {
	images []int
	acc    Action
}

// New creates a permutation from its image list: position i maps to images[i].
// Returns ErrCodeInvalidPermutation if images is not a bijection on
// {0..len(images)-1}.
func New(images []int, acc Action) (*Perm, error) {
	seen := make([]bool, len(images))
	for _, v := range images {
		if v < 0 || v >= len(images) || seen[v] {
			return nil, errors.New(errors.ErrCodeInvalidPermutation,
				"images %v are not a bijection on 0..%d", images, len(images)-1)
		}
		seen[v] = true
	}
	return &Perm{images: slices.Clone(images), acc: acc}, nil
}

// Identity returns the identity permutation of the given degree.
func Identity(n int) *Perm {
	return &Perm{images: Seq(n)}
}

// Degree returns the size of the domain.
func (p *Perm) Degree() int { return len(p.images) }

// Image returns the image of position i.
func (p *Perm) Image(i int) int { return p.images[i] }

// Images returns a copy of the image list.
func (p *Perm) Images() []int { return slices.Clone(p.images) }

// Acc returns the accumulated action.
func (p *Perm) Acc() Action { return p.acc }

// IsIdentity reports whether the permutation fixes every position and
// carries no action.
func (p *Perm) IsIdentity() bool {
	if p.acc != Ident {
		return false
	}
	for i, v := range p.images {
		if i != v {
			return false
		}
	}
	return true
}

// Equal reports whether two permutations have the same images and action.
func (p *Perm) Equal(q *Perm) bool {
	return p.acc == q.acc && slices.Equal(p.images, q.images)
}

// Compose returns the permutation "p then q": position i maps to
// q.Image(p.Image(i)). Actions compose by XOR. Panics if degrees differ.
func (p *Perm) Compose(q *Perm) *Perm {
	if len(p.images) != len(q.images) {
		panic(fmt.Sprintf("perm: composing degree %d with degree %d", len(p.images), len(q.images)))
	}
	images := make([]int, len(p.images))
	for i, v := range p.images {
		images[i] = q.images[v]
	}
	return &Perm{images: images, acc: p.acc ^ q.acc}
}

// Inverse returns the inverse permutation, carrying the same action
// (every action is its own inverse).
func (p *Perm) Inverse() *Perm {
	images := make([]int, len(p.images))
	for i, v := range p.images {
		images[v] = i
	}
	return &Perm{images: images, acc: p.acc}
}

// String renders the permutation as its image list plus action,
// e.g. "[1 0]·neg".
func (p *Perm) String() string {
	if p.acc == Ident {
		return fmt.Sprintf("%v", p.images)
	}
	return fmt.Sprintf("%v·%s", p.images, p.acc)
}

// Find returns the permutation p with orig[p.Image(i)] == dest[i] for every
// position. Both sequences must be permutations of the same distinct values;
// no checking is performed beyond value lookup.
func Find(orig, dest []int) *Perm {
	idx := make(map[int]int, len(orig))
	for i, v := range orig {
		idx[v] = i
	}
	images := make([]int, len(dest))
	for i, v := range dest {
		images[i] = idx[v]
	}
	return &Perm{images: images}
}

// Seq returns a slice containing the sequence [0, 1, 2, ..., n-1].
// This is useful for initializing permutation arrays or creating index sequences.
//
// For n <= 0, Seq returns an empty slice.
func Seq(n int) []int {
	result := make([]int, max(n, 0))
	for i := range result {
		result[i] = i
	}
	return result
}

// Factorial returns n! (n factorial), the product 1 × 2 × ... × n.
// For n <= 1, Factorial returns 1.
//
// This function is useful for calculating the size of the full permutation space.
// Note that factorials grow extremely fast: 13! = 6,227,020,800 exceeds 32-bit int.
func Factorial(n int) int {
	result := 1
	for i := 2; i <= n; i++ {
		result *= i
	}
	return result
}

// Generate returns permutations of [0, 1, ..., n-1] using Heap's algorithm.
//
// If limit > 0, Generate returns at most limit permutations.
// If limit <= 0, Generate returns all n! permutations.
//
// Each returned slice is a separate allocation, safe to modify without affecting others.
//
// Generate handles edge cases gracefully:
//   - n = 0: returns [[]] (one empty permutation)
//   - n = 1: returns [[0]] (one single-element permutation)
//
// For n >= 13, the number of permutations exceeds billions. Always use a limit
// when n is large, or your program will exhaust memory.
//
// Heap's algorithm generates permutations in a non-lexicographic order, but
// efficiently produces each permutation exactly once.
func Generate(n, limit int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	if n == 1 {
		return [][]int{{0}}
	}

	perm := Seq(n)
	state := make([]int, n)

	capacity := limit
	if capacity <= 0 || n <= 12 {
		capacity = Factorial(min(n, 12))
	}
	result := make([][]int, 0, capacity)
	result = append(result, slices.Clone(perm))

	for i := 0; i < n && (limit <= 0 || len(result) < limit); {
		if state[i] < i {
			if i&1 == 0 {
				perm[0], perm[i] = perm[i], perm[0]
			} else {
				perm[state[i]], perm[i] = perm[i], perm[state[i]]
			}
			result = append(result, slices.Clone(perm))
			state[i]++
			i = 0
		} else {
			state[i] = 0
			i++
		}
	}
	return result
}
