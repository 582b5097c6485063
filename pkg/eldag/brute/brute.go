// Package brute provides a reference implementation of the
// [eldag.Canonicalizer] interface by certificate minimization.
//
// The canonical form is found by trying every node order that keeps colours
// ascending (only same-coloured nodes may interchange) and, per node, every
// element of its local symmetry group, keeping the lexicographically
// smallest certificate. The search is factorial in the largest colour class,
// which is fine for the graphs tensor terms produce (a handful of nodes per
// colour) and for verifying the Eldag encoding against hand-checked cases,
// but it is not a partition-refinement engine and does not try to be one.
package brute

import (
	"slices"

	"github.com/matzehuels/tensorcanon/pkg/errors"
	"github.com/matzehuels/tensorcanon/pkg/perm"
)

// DefaultMaxCandidates bounds the number of node orders tried before the
// canonicalizer gives up. The product of factorials of the colour class
// sizes must stay below this.
const DefaultMaxCandidates = 1_000_000

// Canonicalizer is the reference canonicalizer. The zero value is usable
// and applies DefaultMaxCandidates.
type Canonicalizer struct {
	// MaxCandidates overrides DefaultMaxCandidates when positive.
	MaxCandidates int
}

// New creates a reference canonicalizer with default limits.
func New() *Canonicalizer {
	return &Canonicalizer{}
}

// Canonicalize implements [eldag.Canonicalizer].
func (c *Canonicalizer) Canonicalize(edges, offsets []int, symms []*perm.Group, colours []int) ([]int, []*perm.Perm, error) {
	if len(offsets) == 0 {
		return nil, nil, errors.New(errors.ErrCodeInternal, "offsets array is missing its sentinel")
	}
	n := len(offsets) - 1
	if len(symms) != n || len(colours) != n || len(edges) != offsets[n] {
		return nil, nil, errors.New(errors.ErrCodeInternal,
			"inconsistent eldag arrays: %d offsets, %d symms, %d colours, %d edges",
			len(offsets), len(symms), len(colours), len(edges))
	}
	if n == 0 {
		return []int{}, []*perm.Perm{}, nil
	}

	// Per-node candidate edge orders: every element of the local group, or
	// just the identity when no symmetry is declared.
	elements := make([][]*perm.Perm, n)
	for i := 0; i < n; i++ {
		valency := offsets[i+1] - offsets[i]
		if symms[i] == nil {
			elements[i] = []*perm.Perm{perm.Identity(valency)}
			continue
		}
		if symms[i].Degree() != valency {
			return nil, nil, errors.New(errors.ErrCodeInvalidSymmetry,
				"node %d has valency %d but a symmetry group of degree %d", i, valency, symms[i].Degree())
		}
		elements[i] = symms[i].Elements()
	}

	classes, err := c.colourClasses(colours)
	if err != nil {
		return nil, nil, err
	}

	// Per colour class, the orderings of its members to try.
	classOrders := make([][][]int, len(classes))
	for ci, members := range classes {
		perms := perm.Generate(len(members), 0)
		orders := make([][]int, len(perms))
		for pi, p := range perms {
			order := make([]int, len(members))
			for i, v := range p {
				order[i] = members[v]
			}
			orders[pi] = order
		}
		classOrders[ci] = orders
	}

	var (
		bestCert   []int
		bestOrder  []int
		bestChoice []*perm.Perm
		pos        = make([]int, n)
		odometer   = make([]int, len(classes))
	)

	for {
		order := make([]int, 0, n)
		for ci, oi := range odometer {
			order = append(order, classOrders[ci][oi]...)
		}
		for idx, node := range order {
			pos[node] = idx
		}

		// With the node order fixed, each node's row depends only on its own
		// local element, so rows minimize independently. The accumulated
		// action is part of the minimized value: equal rows tie-break on the
		// smaller action, and the winner's action enters the certificate, so
		// relabeling the input cannot swap e.g. a sign-flipping element for
		// the identity.
		cert := make([]int, 0, 3*n+len(edges))
		choice := make([]*perm.Perm, n)
		for _, node := range order {
			nodeEdges := edges[offsets[node]:offsets[node+1]]
			var bestRow []int
			for _, g := range elements[node] {
				row := make([]int, len(nodeEdges))
				for i := range nodeEdges {
					row[i] = pos[nodeEdges[g.Image(i)]]
				}
				if bestRow == nil {
					bestRow, choice[node] = row, g
					continue
				}
				switch slices.Compare(row, bestRow) {
				case -1:
					bestRow, choice[node] = row, g
				case 0:
					if g.Acc() < choice[node].Acc() {
						choice[node] = g
					}
				}
			}
			cert = append(cert, colours[node], len(nodeEdges), int(choice[node].Acc()))
			cert = append(cert, bestRow...)
		}

		if bestCert == nil || slices.Compare(cert, bestCert) < 0 {
			bestCert = cert
			bestOrder = order
			bestChoice = choice
		}

		if !advance(odometer, classOrders) {
			break
		}
	}

	perms := make([]*perm.Perm, n)
	for i, g := range bestChoice {
		if offsets[i+1]-offsets[i] < 2 || g.IsIdentity() {
			continue
		}
		perms[i] = g
	}
	return bestOrder, perms, nil
}

// colourClasses groups node indices by integer colour, classes in ascending
// colour order, and checks the search stays within the candidate budget.
func (c *Canonicalizer) colourClasses(colours []int) ([][]int, error) {
	maxColour := slices.Max(colours)
	classes := make([][]int, maxColour+1)
	for node, colour := range colours {
		classes[colour] = append(classes[colour], node)
	}

	limit := c.MaxCandidates
	if limit <= 0 {
		limit = DefaultMaxCandidates
	}
	candidates := 1
	for _, members := range classes {
		candidates *= perm.Factorial(len(members))
		if candidates > limit || candidates < 0 {
			return nil, errors.New(errors.ErrCodeUnsupported,
				"colour classes admit more than %d node orders; the reference canonicalizer is for small graphs", limit)
		}
	}
	return classes, nil
}

// advance steps the odometer to the next combination of class orderings.
// Returns false when the combinations are exhausted.
func advance(odometer []int, classOrders [][][]int) bool {
	for i := len(odometer) - 1; i >= 0; i-- {
		odometer[i]++
		if odometer[i] < len(classOrders[i]) {
			return true
		}
		odometer[i] = 0
	}
	return false
}
