// Package pipeline provides the core canonicalization pipeline for tensorcanon.
//
// This package implements the complete parse → canonicalize → render pipeline
// that can be used by the CLI and by library consumers. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Load terms and symmetry declarations from a TOML term file
//  2. Canonicalize: Bring each term into its unique normal form
//  3. Render: Optionally draw the term's graph encoding (SVG, PNG, PDF, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Path:    "term.toml",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Parse only
//	file, err := runner.Parse(ctx, opts)
//
//	// Canonicalize an already-parsed file
//	terms, err := runner.Canonicalize(ctx, file, opts)
package pipeline

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tensorcanon/pkg/cache"
	"github.com/matzehuels/tensorcanon/pkg/eldag/brute"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI and Library Consumers
// =============================================================================

const (
	// DefaultMaxCandidates bounds the number of node orders the reference
	// canonicalizer may enumerate. Matches brute.DefaultMaxCandidates.
	DefaultMaxCandidates = brute.DefaultMaxCandidates

	// DefaultPNGScale is the raster scale for PNG output. A scale of 2.0
	// produces a 2x resolution image suitable for high-DPI displays.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the canonicalization pipeline.
// This struct supports JSON serialization for programmatic callers.
type Options struct {
	// Parse options
	Path string `json:"path"`

	// Canonicalization options
	MaxCandidates int  `json:"max_candidates,omitempty"`
	Refresh       bool `json:"refresh,omitempty"`

	// Render options
	Term     int      `json:"term,omitempty"` // which term's graph to render
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // include colour keys in node labels

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	o.SetCanonDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.Path == "" {
		return fmt.Errorf("path is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetCanonDefaults sets default values for canonicalization.
func (o *Options) SetCanonDefaults() {
	if o.MaxCandidates == 0 {
		o.MaxCandidates = DefaultMaxCandidates
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if o.Term < 0 {
		return fmt.Errorf("term index must not be negative")
	}
	return ValidateFormats(o.Formats)
}

// TermKeyOpts returns cache key options for canonicalization.
func (o *Options) TermKeyOpts() cache.TermKeyOpts {
	return cache.TermKeyOpts{
		MaxCandidates: o.MaxCandidates,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
	}
}
