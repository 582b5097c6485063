package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/tensorcanon/pkg/cache"
	"github.com/matzehuels/tensorcanon/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"dot", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsValidation(t *testing.T) {
	// Path is required
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("empty path should fail validation")
	}

	// Negative term index is rejected
	opts = Options{Path: "term.toml", Term: -1}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("negative term index should fail validation")
	}

	// Defaults are applied
	opts = Options{Path: "term.toml"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults error: %v", err)
	}
	if opts.MaxCandidates != DefaultMaxCandidates {
		t.Errorf("MaxCandidates = %d, want %d", opts.MaxCandidates, DefaultMaxCandidates)
	}
	if opts.Logger == nil {
		t.Error("Logger default not applied")
	}

	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second ValidateAndSetDefaults error: %v", err)
	}
}

const testTermFile = `
[[term]]
  [[term.sum]]
  dummy = "i"
  range = "O"

  [[term.sum]]
  dummy = "j"
  range = "O"

  [[term.factor]]
  base = "T"
  indices = ["i", "j"]

[[symmetry]]
base = "T"
arity = 2
preset = "antisymmetric"
`

func writeTermFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "term.toml")
	if err := os.WriteFile(path, []byte(testTermFile), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExecute(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Path:    writeTermFile(t),
		Formats: []string{FormatDOT, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.Stats.TermCount != 1 {
		t.Errorf("TermCount = %d, want 1", result.Stats.TermCount)
	}
	if len(result.Terms) != 1 {
		t.Fatalf("len(Terms) = %d, want 1", len(result.Terms))
	}

	term := result.Terms[0]
	if len(term.Sums) != 2 {
		t.Errorf("len(Sums) = %d, want 2", len(term.Sums))
	}
	if len(term.Factors) != 1 {
		t.Errorf("len(Factors) = %d, want 1", len(term.Factors))
	}
	if term.Coeff != 1 && term.Coeff != -1 {
		t.Errorf("Coeff = %d, want ±1", term.Coeff)
	}
	if result.FileHash == "" {
		t.Error("FileHash is empty")
	}

	dot := result.Artifacts[FormatDOT]
	if !bytes.Contains(dot, []byte("digraph eldag")) {
		t.Error("DOT artifact missing digraph declaration")
	}

	wantJSON, err := MarshalTerms(result.Terms)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(result.Artifacts[FormatJSON], wantJSON) {
		t.Error("JSON artifact does not match the canonical terms")
	}
}

func TestExecuteCaching(t *testing.T) {
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fileCache, nil, nil)
	defer runner.Close()

	opts := Options{Path: writeTermFile(t)}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute error: %v", err)
	}
	if first.CacheInfo.CanonHit {
		t.Error("first run should not hit the cache")
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute error: %v", err)
	}
	if !second.CacheInfo.CanonHit {
		t.Error("second run should hit the cache")
	}

	firstJSON, _ := MarshalTerms(first.Terms)
	secondJSON, _ := MarshalTerms(second.Terms)
	if !bytes.Equal(firstJSON, secondJSON) {
		t.Error("cached result differs from computed result")
	}

	// Refresh bypasses the cache
	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("third Execute error: %v", err)
	}
	if third.CacheInfo.CanonHit {
		t.Error("refresh run should not hit the cache")
	}
}

func TestExecuteMissingFile(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		Path: filepath.Join(t.TempDir(), "absent.toml"),
	})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Fatalf("err = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestRenderTermOutOfRange(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		Path:    writeTermFile(t),
		Term:    5,
		Formats: []string{FormatDOT},
	})
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("err = %v, want %s", err, errors.ErrCodeNotFound)
	}
}
