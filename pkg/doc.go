// Package pkg provides the core libraries for tensorcanon term canonicalization.
//
// # Overview
//
// Tensorcanon reduces symbolic tensor terms, sums of indexed factors, to a
// unique canonical form. Terms that differ only by summation-index renaming,
// factor reordering, or declared slot symmetries canonicalize to the same
// result, with any symmetry-induced sign flip or complex conjugation folded
// into the term. The pkg directory is organized into four main areas:
//
//  1. Algebra - Symbolic expressions, ranges, and factors ([expr], [perm])
//  2. Canonicalization - The graph encoding and search ([eldag], [canon])
//  3. Infrastructure - Caching, errors, observability ([cache], [errors], [observability])
//  4. Orchestration - Input parsing, pipeline, visualization ([termfile], [pipeline], [render])
//
// # Architecture
//
// The typical data flow through tensorcanon:
//
//	TOML term file
//	         ↓
//	    [termfile] package (parse terms and symmetries)
//	         ↓
//	    [canon] package (encode into an edge-labeled DAG)
//	         ↓
//	    [eldag] package (canonical node ordering and permutations)
//	         ↓
//	    Canonical sums, factors, and coefficient
//
// # Quick Start
//
// Canonicalize a term with an antisymmetric factor:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/tensorcanon/pkg/canon"
//	    "github.com/matzehuels/tensorcanon/pkg/eldag/brute"
//	    "github.com/matzehuels/tensorcanon/pkg/expr"
//	)
//
//	// 1. Declare slot symmetries
//	symms := canon.NewSymmetryTable()
//	symms.SetArity("T", 2, canon.Antisymmetric(2))
//
//	// 2. Build the term
//	r := expr.NewRange("O")
//	sums := []canon.Sum{
//	    {Dummy: "i", Range: r},
//	    {Dummy: "j", Range: r},
//	}
//	factors := []canon.ColouredFactor{
//	    {Factor: expr.NewTensor("T", expr.NewSym("j"), expr.NewSym("i")), Colour: "T"},
//	}
//
//	// 3. Canonicalize
//	engine := canon.NewEngine(brute.New(), nil)
//	result, _ := engine.Canonicalize(context.Background(), sums, factors, symms)
//
// # Main Packages
//
// ## Algebra
//
// [expr] - Symbolic index expressions, summation ranges, and indexed factors.
// Expressions are parsed from strings and compared structurally.
//
// [perm] - Permutations with attached sign and conjugation actions, and
// finitely generated permutation groups with closure and membership tests.
//
// ## Canonicalization
//
// [eldag] - Edge-labeled, node-colored directed acyclic graph. Nodes carry
// colours and optional symmetry groups; edges carry slot labels.
//
// [eldag/brute] - Exhaustive canonicalizer that searches colour-preserving
// node orderings and per-node group elements for the minimal certificate,
// bounded by a candidate budget.
//
// [canon] - Encodes terms into an eldag, runs a canonicalizer, and decodes
// the resulting permutations back into renamed sums, reordered factors, and
// a sign or conjugation on each factor.
//
// ## Infrastructure
//
// [cache] - Content-addressed result and artifact caching with file and
// null backends.
//
// [errors] - Structured errors with stable codes and user-facing messages.
//
// [observability] - Hook interfaces for pipeline and cache instrumentation.
//
// ## Orchestration
//
// [termfile] - TOML input format for terms and symmetry declarations.
//
// [pipeline] - Complete canonicalization pipeline (parse → canonicalize →
// render) used by the CLI. Ensures consistent behavior and caching across
// entry points.
//
// [render] - Graphviz visualization of the expression graph (DOT, SVG, PDF,
// PNG).
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/eldag/...    # Specific package
//	go test -run Example       # Examples only
//
// [expr]: https://pkg.go.dev/github.com/matzehuels/tensorcanon/pkg/expr
// [perm]: https://pkg.go.dev/github.com/matzehuels/tensorcanon/pkg/perm
// [eldag]: https://pkg.go.dev/github.com/matzehuels/tensorcanon/pkg/eldag
// [eldag/brute]: https://pkg.go.dev/github.com/matzehuels/tensorcanon/pkg/eldag/brute
// [canon]: https://pkg.go.dev/github.com/matzehuels/tensorcanon/pkg/canon
// [cache]: https://pkg.go.dev/github.com/matzehuels/tensorcanon/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/tensorcanon/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/tensorcanon/pkg/observability
// [termfile]: https://pkg.go.dev/github.com/matzehuels/tensorcanon/pkg/termfile
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/tensorcanon/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/tensorcanon/pkg/render
package pkg
