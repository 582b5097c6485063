package termfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/tensorcanon/pkg/errors"
	"github.com/matzehuels/tensorcanon/pkg/perm"
)

const sampleFile = `
[[term]]
  [[term.sum]]
  dummy = "i"
  range = "O"
  lower = "0"
  upper = "n"

  [[term.sum]]
  dummy = "j"
  range = "O"
  lower = "0"
  upper = "n"

  [[term.factor]]
  base = "T"
  indices = ["i", "j"]

  [[term.factor]]
  base = "v"
  indices = ["j"]
  colour = "vector"
  conjugated = true

[[symmetry]]
base = "T"
arity = 2
preset = "antisymmetric"
`

func TestParseSample(t *testing.T) {
	file, err := Parse([]byte(sampleFile))
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}

	if len(file.Terms) != 1 {
		t.Fatalf("len(Terms) = %d, want 1", len(file.Terms))
	}
	term := file.Terms[0]

	if len(term.Sums) != 2 {
		t.Fatalf("len(Sums) = %d, want 2", len(term.Sums))
	}
	if term.Sums[0].Dummy != "i" || term.Sums[1].Dummy != "j" {
		t.Errorf("dummies = %s, %s, want i, j", term.Sums[0].Dummy, term.Sums[1].Dummy)
	}
	if got := term.Sums[0].Range.String(); got != "O[0, n]" {
		t.Errorf("range = %s, want O[0, n]", got)
	}

	if len(term.Factors) != 2 {
		t.Fatalf("len(Factors) = %d, want 2", len(term.Factors))
	}
	if got := term.Factors[0].Factor.String(); got != "T[i, j]" {
		t.Errorf("factor 0 = %s, want T[i, j]", got)
	}
	if got := term.Factors[0].Colour; got != "T" {
		t.Errorf("factor 0 colour = %s, want base fallback T", got)
	}
	if got := term.Factors[1].Factor.String(); got != "conj(v[j])" {
		t.Errorf("factor 1 = %s, want conj(v[j])", got)
	}
	if got := term.Factors[1].Colour; got != "vector" {
		t.Errorf("factor 1 colour = %s, want vector", got)
	}

	if file.Symmetries == nil {
		t.Fatal("Symmetries = nil, want a table")
	}
	group := file.Symmetries.Lookup("T", 2)
	if group == nil {
		t.Fatal("Lookup(T, 2) = nil, want the antisymmetric group")
	}
	if got := len(group.Elements()); got != 2 {
		t.Errorf("len(Elements) = %d, want 2", got)
	}
}

func TestParseExplicitGenerators(t *testing.T) {
	const src = `
[[term]]
  [[term.factor]]
  base = "H"
  indices = ["a", "b"]

[[symmetry]]
base = "H"
arity = 2

  [[symmetry.generator]]
  images = [1, 0]
  action = "conj"
`
	file, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}

	group := file.Symmetries.Lookup("H", 2)
	if group == nil {
		t.Fatal("Lookup(H, 2) = nil, want a group")
	}
	elems := group.Elements()
	if len(elems) != 2 {
		t.Fatalf("len(Elements) = %d, want 2", len(elems))
	}
	var found bool
	for _, p := range elems {
		if !p.IsIdentity() && p.Acc() == perm.Conj {
			found = true
		}
	}
	if !found {
		t.Error("conjugating swap not found in group elements")
	}
}

func TestParseBaseOnlySymmetry(t *testing.T) {
	const src = `
[[term]]
  [[term.factor]]
  base = "g"
  indices = ["a", "b"]

[[symmetry]]
base = "g"
preset = "symmetric"
arity = 0
`
	_, err := Parse([]byte(src))
	if !errors.Is(err, errors.ErrCodeInvalidSymmetry) {
		t.Fatalf("err = %v, want %s (presets need a concrete arity)", err, errors.ErrCodeInvalidSymmetry)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.Code
		want string
	}{
		{
			name: "invalid toml",
			src:  "[[term]\n",
			code: errors.ErrCodeInvalidFormat,
			want: "not valid TOML",
		},
		{
			name: "no terms",
			src:  "[[symmetry]]\nbase = \"T\"\n",
			code: errors.ErrCodeInvalidFormat,
			want: "no terms",
		},
		{
			name: "empty term",
			src:  "[[term]]\n",
			code: errors.ErrCodeInvalidTerm,
			want: "neither sums nor factors",
		},
		{
			name: "duplicate dummy",
			src: `
[[term]]
  [[term.sum]]
  dummy = "i"
  range = "O"
  [[term.sum]]
  dummy = "i"
  range = "V"
`,
			code: errors.ErrCodeInvalidTerm,
			want: "bound twice",
		},
		{
			name: "missing range",
			src: `
[[term]]
  [[term.sum]]
  dummy = "i"
`,
			code: errors.ErrCodeInvalidTerm,
			want: "no range",
		},
		{
			name: "half-bounded range",
			src: `
[[term]]
  [[term.sum]]
  dummy = "i"
  range = "O"
  lower = "0"
`,
			code: errors.ErrCodeInvalidTerm,
			want: "both bounds or neither",
		},
		{
			name: "bad index expression",
			src: `
[[term]]
  [[term.factor]]
  base = "T"
  indices = ["i+"]
`,
			code: errors.ErrCodeInvalidTerm,
			want: "index 0 of T",
		},
		{
			name: "unknown preset",
			src: `
[[term]]
  [[term.factor]]
  base = "T"
  indices = ["a", "b"]

[[symmetry]]
base = "T"
arity = 2
preset = "hermitian"
`,
			code: errors.ErrCodeInvalidSymmetry,
			want: "unknown symmetry preset",
		},
		{
			name: "preset and generators",
			src: `
[[term]]
  [[term.factor]]
  base = "T"
  indices = ["a", "b"]

[[symmetry]]
base = "T"
arity = 2
preset = "symmetric"
  [[symmetry.generator]]
  images = [1, 0]
`,
			code: errors.ErrCodeInvalidSymmetry,
			want: "mixes a preset",
		},
		{
			name: "bad generator images",
			src: `
[[term]]
  [[term.factor]]
  base = "T"
  indices = ["a", "b"]

[[symmetry]]
base = "T"
arity = 2
  [[symmetry.generator]]
  images = [0, 0]
`,
			code: errors.ErrCodeInvalidSymmetry,
			want: "generator 0",
		},
		{
			name: "bad generator action",
			src: `
[[term]]
  [[term.factor]]
  base = "T"
  indices = ["a", "b"]

[[symmetry]]
base = "T"
arity = 2
  [[symmetry.generator]]
  images = [1, 0]
  action = "transpose"
`,
			code: errors.ErrCodeInvalidSymmetry,
			want: "unknown action",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %v, want %s", err, tt.code)
			}
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "term.toml")
	if err := os.WriteFile(path, []byte(sampleFile), 0o644); err != nil {
		t.Fatal(err)
	}

	file, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if len(file.Terms) != 1 {
		t.Errorf("len(Terms) = %d, want 1", len(file.Terms))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Fatalf("err = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}
