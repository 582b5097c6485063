package brute

import (
	"slices"
	"testing"

	"github.com/matzehuels/tensorcanon/pkg/errors"
	"github.com/matzehuels/tensorcanon/pkg/perm"
)

func TestEmptyGraph(t *testing.T) {
	order, perms, err := New().Canonicalize(nil, []int{0}, nil, nil)
	if err != nil {
		t.Fatalf("Canonicalize error = %v", err)
	}
	if len(order) != 0 || len(perms) != 0 {
		t.Errorf("order = %v, perms = %v, want empty", order, perms)
	}
}

func TestDistinctColoursKeepOrder(t *testing.T) {
	// Three nodes, all differently coloured: nothing may interchange, the
	// canonical order is forced to colour order.
	edges := []int{0, 1}
	offsets := []int{0, 0, 0, 2}
	symms := []*perm.Group{nil, nil, nil}
	colours := []int{0, 1, 2}

	order, perms, err := New().Canonicalize(edges, offsets, symms, colours)
	if err != nil {
		t.Fatalf("Canonicalize error = %v", err)
	}
	if want := []int{0, 1, 2}; !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	for i, p := range perms {
		if p != nil {
			t.Errorf("perms[%d] = %v, want nil", i, p)
		}
	}
}

func TestInterchangeableNodesBreakTieByEdges(t *testing.T) {
	// Nodes 0 and 1 share a colour; node 2 points at them as [1, 0].
	// The canonical order must visit them so node 2's row is minimal,
	// i.e. node 1 first.
	edges := []int{1, 0}
	offsets := []int{0, 0, 0, 2}
	symms := []*perm.Group{nil, nil, nil}
	colours := []int{0, 0, 1}

	order, perms, err := New().Canonicalize(edges, offsets, symms, colours)
	if err != nil {
		t.Fatalf("Canonicalize error = %v", err)
	}
	if want := []int{1, 0, 2}; !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if perms[2] != nil {
		t.Errorf("perms[2] = %v, want nil (no symmetry, no reordering)", perms[2])
	}
}

func TestSymmetryPicksSignedSwap(t *testing.T) {
	// Node 2 points at differently-coloured nodes as [1, 0] and carries a
	// sign-flipping swap symmetry. The canonical edge order is [0, 1],
	// reached through the swap, so the returned perm carries Neg.
	swap, err := perm.New([]int{1, 0}, perm.Neg)
	if err != nil {
		t.Fatalf("perm.New error = %v", err)
	}
	group, err := perm.NewGroup(2, []*perm.Perm{swap})
	if err != nil {
		t.Fatalf("perm.NewGroup error = %v", err)
	}

	edges := []int{1, 0}
	offsets := []int{0, 0, 0, 2}
	symms := []*perm.Group{nil, nil, group}
	colours := []int{0, 1, 2}

	order, perms, err := New().Canonicalize(edges, offsets, symms, colours)
	if err != nil {
		t.Fatalf("Canonicalize error = %v", err)
	}
	if want := []int{0, 1, 2}; !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if perms[2] == nil {
		t.Fatal("perms[2] = nil, want the sign-flipping swap")
	}
	if !slices.Equal(perms[2].Images(), []int{1, 0}) {
		t.Errorf("perms[2] images = %v, want [1 0]", perms[2].Images())
	}
	if perms[2].Acc() != perm.Neg {
		t.Errorf("perms[2] acc = %v, want %v", perms[2].Acc(), perm.Neg)
	}
}

func TestSymmetryNotAppliedWhenAlreadyCanonical(t *testing.T) {
	// Same graph but edges already in canonical order: the identity is
	// chosen, reported as nil.
	swap, _ := perm.New([]int{1, 0}, perm.Neg)
	group, _ := perm.NewGroup(2, []*perm.Perm{swap})

	edges := []int{0, 1}
	offsets := []int{0, 0, 0, 2}
	symms := []*perm.Group{nil, nil, group}
	colours := []int{0, 1, 2}

	_, perms, err := New().Canonicalize(edges, offsets, symms, colours)
	if err != nil {
		t.Fatalf("Canonicalize error = %v", err)
	}
	if perms[2] != nil {
		t.Errorf("perms[2] = %v, want nil", perms[2])
	}
}

func TestSignedTieBreaksToIdentity(t *testing.T) {
	// Two interchangeable sink nodes under a consumer with a sign-flipping
	// swap symmetry: for every node order one group element reaches the
	// minimal row, so rows alone cannot separate identity from swap. Both
	// labelings of the sinks describe the same graph and must decode to the
	// same action, the identity.
	swap, _ := perm.New([]int{1, 0}, perm.Neg)
	group, _ := perm.NewGroup(2, []*perm.Perm{swap})

	offsets := []int{0, 0, 0, 2}
	symms := []*perm.Group{nil, nil, group}
	colours := []int{0, 0, 1}

	for _, edges := range [][]int{{0, 1}, {1, 0}} {
		_, perms, err := New().Canonicalize(edges, offsets, symms, colours)
		if err != nil {
			t.Fatalf("Canonicalize(%v) error = %v", edges, err)
		}
		if perms[2] != nil {
			t.Errorf("edges %v: perms[2] = %v with acc %v, want nil (identity, no sign)",
				edges, perms[2].Images(), perms[2].Acc())
		}
	}
}

func TestDeterminism(t *testing.T) {
	// Two interchangeable sum-like nodes under a symmetric consumer: both
	// orders give equal certificates, the first candidate must win every
	// time.
	swap, _ := perm.New([]int{1, 0}, perm.Ident)
	group, _ := perm.NewGroup(2, []*perm.Perm{swap})

	edges := []int{0, 1}
	offsets := []int{0, 0, 0, 2}
	symms := []*perm.Group{nil, nil, group}
	colours := []int{0, 0, 1}

	first, _, err := New().Canonicalize(edges, offsets, symms, colours)
	if err != nil {
		t.Fatalf("Canonicalize error = %v", err)
	}
	for range 5 {
		order, _, err := New().Canonicalize(edges, offsets, symms, colours)
		if err != nil {
			t.Fatalf("Canonicalize error = %v", err)
		}
		if !slices.Equal(order, first) {
			t.Fatalf("order = %v, want %v on every run", order, first)
		}
	}
}

func TestSymmetryDegreeMismatch(t *testing.T) {
	swap, _ := perm.New([]int{1, 0}, perm.Neg)
	group, _ := perm.NewGroup(2, []*perm.Perm{swap})

	// Node 0 has no edges but a degree-2 group.
	_, _, err := New().Canonicalize(nil, []int{0, 0}, []*perm.Group{group}, []int{0})
	if !errors.Is(err, errors.ErrCodeInvalidSymmetry) {
		t.Errorf("error = %v, want %v", err, errors.ErrCodeInvalidSymmetry)
	}
}

func TestCandidateBudget(t *testing.T) {
	// Five interchangeable nodes admit 120 orders; a budget of 100 trips.
	c := &Canonicalizer{MaxCandidates: 100}
	offsets := []int{0, 0, 0, 0, 0, 0}
	symms := make([]*perm.Group, 5)
	colours := []int{0, 0, 0, 0, 0}

	_, _, err := c.Canonicalize(nil, offsets, symms, colours)
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("error = %v, want %v", err, errors.ErrCodeUnsupported)
	}
}
