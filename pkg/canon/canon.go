// Package canon canonicalizes symbolic tensor terms: sums of indexed
// factors are brought into a unique normal form, so algebraically equal
// terms compare equal no matter how their dummy indices were named or how
// their factors were ordered.
//
// The work happens in three steps. The term is encoded into an [eldag.Eldag]
// (one node per summation, per index expression, and per factor), the graph
// is handed to an injected [eldag.Canonicalizer], and the returned node
// order and per-node permutations are decoded back into reordered
// summations, rewritten factors, and an accumulated ±1 coefficient from
// sign-flipping symmetries.
//
// # Usage
//
//	eng := canon.NewEngine(nil, logger) // nil graph canonicalizer = reference implementation
//	res, err := eng.Canonicalize(ctx, sums, factors, symms)
//	if err != nil {
//	    return err
//	}
//	// res.Sums, res.Factors, res.Coeff
package canon

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tensorcanon/pkg/eldag"
	"github.com/matzehuels/tensorcanon/pkg/eldag/brute"
	"github.com/matzehuels/tensorcanon/pkg/errors"
	"github.com/matzehuels/tensorcanon/pkg/expr"
	"github.com/matzehuels/tensorcanon/pkg/perm"
)

// Sum binds one dummy variable to the range it runs over.
type Sum struct {
	Dummy string     // bound symbol name, unique within a term
	Range expr.Range // the set the dummy runs over
}

// ColouredFactor pairs a factor with its colour. Colours only need to order
// correctly among factors of the same shape; factors with different colours
// are never interchanged.
type ColouredFactor struct {
	Factor expr.Factor
	Colour string
}

// Result is a canonicalized term.
type Result struct {
	Sums    []Sum         // summations in canonical order, pairs preserved verbatim
	Factors []expr.Factor // factors rewritten and in canonical order
	Coeff   int           // ±1, from sign-flipping symmetries
}

// Engine canonicalizes terms. It owns no per-term state; a single Engine
// may serve many independent calls.
type Engine struct {
	graph  eldag.Canonicalizer
	logger *log.Logger
}

// NewEngine creates an engine around the given graph canonicalizer.
// A nil canonicalizer selects the reference implementation from
// [brute]; a nil logger discards all output.
func NewEngine(graph eldag.Canonicalizer, logger *log.Logger) *Engine {
	if graph == nil {
		graph = brute.New()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{graph: graph, logger: logger}
}

// Canonicalize brings one term into canonical form.
//
// Summations and factors are read-only inputs; the result holds newly
// constructed values. An empty term (no sums, no factors) short-circuits
// to the identity result without building a graph.
func (e *Engine) Canonicalize(ctx context.Context, sums []Sum, factors []ColouredFactor, symms *SymmetryTable) (Result, error) {
	if len(sums) == 0 && len(factors) == 0 {
		return Result{Coeff: 1}, nil
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	g, factorNodes, err := e.buildEldag(sums, factors, symms)
	if err != nil {
		return Result{}, err
	}
	e.logger.Debug("built eldag", "nodes", g.NodeCount(), "sums", len(sums), "factors", len(factors))

	order, perms, err := g.Canonicalize(e.graph)
	if err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeCanonFailed, err, "graph canonicalization")
	}

	return e.assemble(g, sums, factors, factorNodes, order, perms)
}

// Encode builds the Eldag a term would be canonicalized through, without
// canonicalizing it. Useful for inspecting or rendering the graph encoding.
func (e *Engine) Encode(sums []Sum, factors []ColouredFactor, symms *SymmetryTable) (*eldag.Eldag, error) {
	g, _, err := e.buildEldag(sums, factors, symms)
	return g, err
}

// assemble decodes the canonicalizer's output back into a term.
//
// Summations keep their (dummy, range) pairs verbatim; only their order
// changes, derived by filtering sum-tagged nodes out of the canonical node
// order. Factor order is derived the same way from factor-tagged nodes.
func (e *Engine) assemble(g *eldag.Eldag, sums []Sum, factors []ColouredFactor, factorNodes []int, order []int, perms []*perm.Perm) (Result, error) {
	res := Result{Coeff: 1}

	// Sum nodes form the initial segment of the node indices, so the node
	// index doubles as the index into sums.
	for _, node := range order {
		if g.Colour(node).Tag == eldag.TagSum {
			res.Sums = append(res.Sums, sums[node])
		}
	}

	// Rewrite each factor in place first, keyed by its original position.
	rewritten := make([]expr.Factor, len(factors))
	for i, cf := range factors {
		factor := cf.Factor
		indices := factor.Indices()
		p := perms[factorNodes[i]]

		if len(indices) < 2 || p == nil {
			rewritten[i] = factor
			continue
		}

		reordered := make([]expr.Expr, len(indices))
		for j := range indices {
			reordered[j] = indices[p.Image(j)]
		}
		out := factor.Rebuild(reordered)
		if p.Acc()&perm.Neg != 0 {
			res.Coeff *= -1
		}
		if p.Acc()&perm.Conj != 0 {
			out = out.Conjugate()
		}
		rewritten[i] = out
	}

	// Then emit them in canonical node order.
	factorAt := make(map[int]int, len(factorNodes))
	for i, node := range factorNodes {
		factorAt[node] = i
	}
	for _, node := range order {
		if g.Colour(node).Tag == eldag.TagFactor {
			res.Factors = append(res.Factors, rewritten[factorAt[node]])
		}
	}

	return res, nil
}
