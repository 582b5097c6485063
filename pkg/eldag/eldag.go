// Package eldag provides the edge-labeled node-colored DAG ("Eldag") that
// tensor expressions are encoded into for canonicalization.
//
// An Eldag node carries an ordered out-edge list, an optional local symmetry
// group over its own edge positions, and a colour key. Nodes are append-only:
// the index returned by [Eldag.AddNode] is the node's identity for the rest
// of the graph's life, and edges may only reference nodes added earlier.
// An Eldag is built once per canonicalization call, finalized into CSR-style
// arrays, handed to a [Canonicalizer], and discarded.
//
// The colour key is a (tag, key) pair where the tag dominates: nodes of
// different kinds (summation, index expression, factor) are never
// colour-equal no matter their keys. Colours are compressed into dense
// integers by [Eldag.IntColours] just before canonicalization.
package eldag

import (
	"cmp"
	"slices"

	"github.com/matzehuels/tensorcanon/pkg/perm"
)

// Tag classifies the three node kinds. The tag is the first, dominant
// component of the colour key.
type Tag int

const (
	// TagSum marks a summation node, one per bound dummy variable.
	TagSum Tag = iota
	// TagExpr marks an index-expression node.
	TagExpr
	// TagFactor marks a factor node, whose edges point at its index nodes.
	TagFactor
)

// String returns the tag's short name.
func (t Tag) String() string {
	switch t {
	case TagSum:
		return "sum"
	case TagExpr:
		return "expr"
	case TagFactor:
		return "factor"
	}
	return "unknown"
}

// Colour is a node colour key: a tag plus a totally-ordered key within the
// tag. Colours of different tags never compare equal.
type Colour struct {
	Tag Tag
	Key string
}

// Compare orders colours: tag first, then key.
func (c Colour) Compare(o Colour) int {
	if d := cmp.Compare(c.Tag, o.Tag); d != 0 {
		return d
	}
	return cmp.Compare(c.Key, o.Key)
}

// Eldag accumulates nodes one at a time. Edges are stored flattened with a
// CSR offset array: node i's edges are edges[offsets[i]:offsets[i+1]], with
// one sentinel offset at the end. The zero value is not usable - use New,
// which seeds the sentinel.
type Eldag struct {
	edges   []int
	offsets []int
	symms   []*perm.Group
	colours []Colour
}

// New creates an empty Eldag.
func New() *Eldag {
	return &Eldag{offsets: []int{0}}
}

// AddNode appends a node and returns its index. Indices are assigned
// monotonically from 0. Edge targets must reference nodes already added;
// the builder guarantees this ordering and no validation is done here.
// symm may be nil for a node with no local symmetry.
func (e *Eldag) AddNode(edges []int, symm *perm.Group, colour Colour) int {
	e.edges = append(e.edges, edges...)
	e.offsets = append(e.offsets, len(e.edges))
	e.symms = append(e.symms, symm)
	e.colours = append(e.colours, colour)
	return len(e.symms) - 1
}

// NodeCount returns the number of nodes added so far.
func (e *Eldag) NodeCount() int { return len(e.symms) }

// Colour returns the colour key of node i.
func (e *Eldag) Colour(i int) Colour { return e.colours[i] }

// Symmetry returns the local symmetry group of node i, or nil.
func (e *Eldag) Symmetry(i int) *perm.Group { return e.symms[i] }

// Edges returns the out-edge targets of node i. The slice aliases internal
// storage and must not be modified.
func (e *Eldag) Edges(i int) []int {
	return e.edges[e.offsets[i]:e.offsets[i+1]]
}

// Valency returns the number of out-edges of node i.
func (e *Eldag) Valency(i int) int {
	return e.offsets[i+1] - e.offsets[i]
}

// IntColours computes the dense integer form of the current node colours:
// equal colour keys map to equal integers, and integers ascend in colour
// order. The result is recomputed on every call; it is only needed once,
// right before canonicalization.
func (e *Eldag) IntColours() []int {
	type keyed struct {
		colour Colour
		node   int
	}
	sorted := make([]keyed, len(e.colours))
	for i, c := range e.colours {
		sorted[i] = keyed{colour: c, node: i}
	}
	slices.SortStableFunc(sorted, func(a, b keyed) int {
		return a.colour.Compare(b.colour)
	})

	ints := make([]int, len(e.colours))
	group := 0
	for i, k := range sorted {
		if i > 0 && sorted[i-1].colour.Compare(k.colour) != 0 {
			group++
		}
		ints[k.node] = group
	}
	return ints
}

// Canonicalize finalizes the CSR arrays and delegates to the given
// canonicalizer. The returned node order is a permutation of node indices
// giving the canonical visiting order; perms[i] describes how node i's own
// edges must be reordered to reach canonical form, or is nil when node i
// needs no action (always the case for valency < 2).
func (e *Eldag) Canonicalize(c Canonicalizer) (order []int, perms []*perm.Perm, err error) {
	return c.Canonicalize(e.edges, e.offsets, e.symms, e.IntColours())
}

// Canonicalizer computes a canonical labeling of a finalized Eldag. The
// input arrays follow the layout produced by [Eldag.Canonicalize]: flattened
// edges, CSR offsets of length nodeCount+1, per-node optional symmetry
// groups, and per-node dense integer colours.
//
// Implementations must be deterministic and must treat nodes as
// interchangeable only when they are colour-equal and automorphism
// equivalent under the declared local symmetries.
type Canonicalizer interface {
	Canonicalize(edges, offsets []int, symms []*perm.Group, colours []int) (order []int, perms []*perm.Perm, err error)
}
