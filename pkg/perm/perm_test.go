package perm

import (
	"slices"
	"testing"

	"github.com/matzehuels/tensorcanon/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		images  []int
		wantErr bool
	}{
		{"identity", []int{0, 1, 2}, false},
		{"swap", []int{1, 0}, false},
		{"cycle", []int{1, 2, 0}, false},
		{"empty", []int{}, false},

		{"repeat", []int{0, 0}, true},
		{"out of range high", []int{0, 2}, true},
		{"out of range negative", []int{0, -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.images, Ident)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%v) error = %v, wantErr %v", tt.images, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidPermutation) {
					t.Errorf("New(%v) code = %v, want %v", tt.images, errors.GetCode(err), errors.ErrCodeInvalidPermutation)
				}
				return
			}
			if !slices.Equal(p.Images(), tt.images) {
				t.Errorf("Images() = %v, want %v", p.Images(), tt.images)
			}
		})
	}
}

func TestCompose(t *testing.T) {
	swap := mustPerm(t, []int{1, 0}, Neg)
	ident := Identity(2)

	// swap then swap is the identity, and the signs cancel.
	if got := swap.Compose(swap); !got.IsIdentity() {
		t.Errorf("swap∘swap = %s, want identity", got)
	}

	// composing with the identity changes nothing.
	if got := swap.Compose(ident); !got.Equal(swap) {
		t.Errorf("swap∘ident = %s, want %s", got, swap)
	}

	cycle := mustPerm(t, []int{1, 2, 0}, Ident)
	twice := cycle.Compose(cycle)
	if want := []int{2, 0, 1}; !slices.Equal(twice.Images(), want) {
		t.Errorf("cycle² images = %v, want %v", twice.Images(), want)
	}
}

func TestActionComposition(t *testing.T) {
	tests := []struct {
		name string
		a, b Action
		want Action
	}{
		{"ident ident", Ident, Ident, Ident},
		{"neg cancels", Neg, Neg, Ident},
		{"conj cancels", Conj, Conj, Ident},
		{"neg and conj combine", Neg, Conj, Neg | Conj},
		{"full cancels partially", Neg | Conj, Conj, Neg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustPerm(t, []int{0, 1}, tt.a)
			q := mustPerm(t, []int{0, 1}, tt.b)
			if got := p.Compose(q).Acc(); got != tt.want {
				t.Errorf("acc = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInverse(t *testing.T) {
	p := mustPerm(t, []int{2, 0, 1}, Neg)
	inv := p.Inverse()

	if !p.Compose(inv).IsIdentity() {
		t.Errorf("p∘p⁻¹ = %s, want identity", p.Compose(inv))
	}
	if inv.Acc() != Neg {
		t.Errorf("inverse acc = %v, want %v", inv.Acc(), Neg)
	}
}

func TestFind(t *testing.T) {
	tests := []struct {
		name       string
		orig, dest []int
		want       []int
	}{
		{"identity", []int{4, 7, 9}, []int{4, 7, 9}, []int{0, 1, 2}},
		{"swap", []int{4, 7}, []int{7, 4}, []int{1, 0}},
		{"rotate", []int{3, 5, 8}, []int{5, 8, 3}, []int{1, 2, 0}},
		{"empty", nil, nil, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Find(tt.orig, tt.dest)
			if !slices.Equal(p.Images(), tt.want) {
				t.Errorf("Find(%v, %v) = %v, want %v", tt.orig, tt.dest, p.Images(), tt.want)
			}
			// Defining property: orig[p(i)] == dest[i].
			for i := range tt.dest {
				if tt.orig[p.Image(i)] != tt.dest[i] {
					t.Errorf("orig[p(%d)] = %d, want %d", i, tt.orig[p.Image(i)], tt.dest[i])
				}
			}
		})
	}
}

func TestGroupElements(t *testing.T) {
	// Adjacent transpositions of 3 elements generate all of S3.
	s01 := mustPerm(t, []int{1, 0, 2}, Ident)
	s12 := mustPerm(t, []int{0, 2, 1}, Ident)
	g, err := NewGroup(3, []*Perm{s01, s12})
	if err != nil {
		t.Fatalf("NewGroup error = %v", err)
	}

	elems := g.Elements()
	if len(elems) != 6 {
		t.Fatalf("len(Elements()) = %d, want 6", len(elems))
	}
	if !elems[0].IsIdentity() {
		t.Errorf("Elements()[0] = %s, want identity", elems[0])
	}
}

func TestGroupActions(t *testing.T) {
	// The antisymmetric pair group: identity plus a sign-flipping swap.
	swap := mustPerm(t, []int{1, 0}, Neg)
	g, err := NewGroup(2, []*Perm{swap})
	if err != nil {
		t.Fatalf("NewGroup error = %v", err)
	}

	elems := g.Elements()
	if len(elems) != 2 {
		t.Fatalf("len(Elements()) = %d, want 2", len(elems))
	}
	for _, e := range elems {
		if e.IsIdentity() {
			continue
		}
		if e.Acc() != Neg {
			t.Errorf("swap element acc = %v, want %v", e.Acc(), Neg)
		}
	}
}

func TestGroupDegreeMismatch(t *testing.T) {
	p := mustPerm(t, []int{1, 0}, Ident)
	if _, err := NewGroup(3, []*Perm{p}); !errors.Is(err, errors.ErrCodeInvalidSymmetry) {
		t.Errorf("NewGroup degree mismatch error = %v, want %v", err, errors.ErrCodeInvalidSymmetry)
	}
}

func TestGenerateCounts(t *testing.T) {
	tests := []struct {
		n, limit int
		want     int
	}{
		{0, 0, 1},
		{1, 0, 1},
		{3, 0, 6},
		{4, 0, 24},
		{5, 10, 10},
	}

	for _, tt := range tests {
		if got := len(Generate(tt.n, tt.limit)); got != tt.want {
			t.Errorf("len(Generate(%d, %d)) = %d, want %d", tt.n, tt.limit, got, tt.want)
		}
	}
}

func TestGenerateUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range Generate(4, 0) {
		k := Find(Seq(4), p).String()
		if seen[k] {
			t.Errorf("duplicate permutation %v", p)
		}
		seen[k] = true
	}
}

func mustPerm(t *testing.T, images []int, acc Action) *Perm {
	t.Helper()
	p, err := New(images, acc)
	if err != nil {
		t.Fatalf("New(%v) error = %v", images, err)
	}
	return p
}
