package canon

import (
	"fmt"
	"slices"

	"github.com/matzehuels/tensorcanon/pkg/eldag"
	"github.com/matzehuels/tensorcanon/pkg/expr"
	"github.com/matzehuels/tensorcanon/pkg/perm"
)

// placeholder returns the synthetic symbol standing in for the dummy at the
// given edge position during ordering trials. A pure function of the
// position: equal positions always yield the same symbol, so two index
// expressions that differ only in dummy naming normalize to equal forms.
func placeholder(position int) string {
	return fmt.Sprintf("internalDummyPlaceholder%d", position)
}

// procIndices appends one expression node per index of a factor and returns
// the node indices in index order.
//
// For each index expression, the dummies occurring in it are resolved
// against the summation nodes. Every ordering of the involved summation
// nodes is tried: the dummies are replaced by position-keyed placeholders
// and the resulting form's sort key is compared. The lexicographically
// smallest form wins (first seen is kept unless a strictly smaller one
// appears); every other ordering that reproduces the identical form
// contributes the permutation connecting it to the winner, and those
// permutations become the node's local symmetry group.
func (e *Engine) procIndices(indices []expr.Expr, dumms map[string]int, g *eldag.Eldag) ([]int, error) {
	nodes := make([]int, 0, len(indices))

	for _, index := range indices {
		// Summation node -> dummy symbol occurring in this index.
		involved := make(map[int]string)
		for _, name := range index.Atoms() {
			if node, ok := dumms[name]; ok {
				involved[node] = name
			}
		}

		sumNodes := make([]int, 0, len(involved))
		for node := range involved {
			sumNodes = append(sumNodes, node)
		}
		slices.Sort(sumNodes)

		if len(sumNodes) > 2 {
			e.logger.Warn("index expression contains more than two summed dummies, something might be wrong",
				"expr", index.String(), "dummies", len(sumNodes))
		}

		var (
			currKey   string
			currEdges []int
			currSymms []*perm.Perm
			found     bool
		)

		for _, p := range perm.Generate(len(sumNodes), 0) {
			edges := make([]int, len(sumNodes))
			substs := make(map[string]string, len(sumNodes))
			for i, v := range p {
				edges[i] = sumNodes[v]
				substs[involved[sumNodes[v]]] = placeholder(i)
			}
			key := index.Subst(substs).Key()

			switch {
			case !found || key < currKey:
				currKey = key
				currEdges = edges
				currSymms = nil
				found = true
			case key == currKey:
				// Keys are injective, so an equal key is the identical form.
				currSymms = append(currSymms, perm.Find(currEdges, edges))
			}
		}

		var group *perm.Group
		if len(currSymms) > 0 {
			var err error
			group, err = perm.NewGroup(len(currEdges), currSymms)
			if err != nil {
				return nil, err
			}
		}

		nodes = append(nodes, g.AddNode(currEdges, group, eldag.Colour{Tag: eldag.TagExpr, Key: currKey}))
	}

	return nodes, nil
}
