package pipeline

import (
	"encoding/json"
	"time"

	"github.com/matzehuels/tensorcanon/pkg/canon"
)

// SumSummary is one canonical summation in display form.
type SumSummary struct {
	Dummy string `json:"dummy"`
	Range string `json:"range"`
}

// TermSummary is a canonicalized term in display form. This is what the
// pipeline caches and what the CLI prints: the canonical form is a pure
// function of the input file, so the display form is a faithful identity.
type TermSummary struct {
	Sums    []SumSummary `json:"sums"`
	Factors []string     `json:"factors"`
	Coeff   int          `json:"coeff"`
}

// Summarize converts a canonicalization result into its display form.
func Summarize(res canon.Result) TermSummary {
	s := TermSummary{Coeff: res.Coeff}
	for _, sum := range res.Sums {
		s.Sums = append(s.Sums, SumSummary{Dummy: sum.Dummy, Range: sum.Range.String()})
	}
	for _, f := range res.Factors {
		s.Factors = append(s.Factors, f.String())
	}
	return s
}

// MarshalTerms serializes term summaries for caching and JSON output.
func MarshalTerms(terms []TermSummary) ([]byte, error) {
	return json.Marshal(terms)
}

// UnmarshalTerms deserializes cached term summaries.
func UnmarshalTerms(data []byte) ([]TermSummary, error) {
	var terms []TermSummary
	if err := json.Unmarshal(data, &terms); err != nil {
		return nil, err
	}
	return terms, nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Terms holds one canonical summary per input term, in input order.
	Terms []TermSummary

	// FileHash is the content hash of the term file.
	FileHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TermCount  int
	ParseTime  time.Duration
	CanonTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	CanonHit  bool // Whether canonical results came from cache
	RenderHit bool // Whether all artifacts came from cache
}
