package canon

import (
	"github.com/matzehuels/tensorcanon/pkg/eldag"
	"github.com/matzehuels/tensorcanon/pkg/errors"
)

// buildEldag encodes a term into an Eldag. Summation nodes come first, in
// input order, so a summation's node index equals its position in sums.
// Each factor is then treated one by one, its index-expression nodes added
// before the factor node itself, which keeps edges pointing backwards only.
//
// The second return value maps each factor's input position to its node
// index, needed later to fetch the factor's canonicalizing permutation.
func (e *Engine) buildEldag(sums []Sum, factors []ColouredFactor, symms *SymmetryTable) (*eldag.Eldag, []int, error) {
	g := eldag.New()
	factorNodes := make([]int, 0, len(factors))

	for _, s := range sums {
		g.AddNode(nil, nil, eldag.Colour{Tag: eldag.TagSum, Key: s.Range.Key()})
	}

	// Dummy symbol to summation node.
	dumms := make(map[string]int, len(sums))
	for i, s := range sums {
		dumms[s.Dummy] = i
	}

	for _, cf := range factors {
		base := cf.Factor.Base()
		indices := cf.Factor.Indices()

		var group = symms.Lookup(base, len(indices))
		if len(indices) < 2 {
			group = nil
		}
		if group != nil && group.Degree() != len(indices) {
			return nil, nil, errors.New(errors.ErrCodeInvalidSymmetry,
				"factor %q has arity %d but its symmetry group has degree %d",
				base, len(indices), group.Degree())
		}

		indexNodes, err := e.procIndices(indices, dumms, g)
		if err != nil {
			return nil, nil, err
		}

		node := g.AddNode(indexNodes, group, eldag.Colour{Tag: eldag.TagFactor, Key: cf.Colour})
		factorNodes = append(factorNodes, node)
	}

	return g, factorNodes, nil
}
