package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tensorcanon/pkg/cache"
	"github.com/matzehuels/tensorcanon/pkg/canon"
	"github.com/matzehuels/tensorcanon/pkg/eldag/brute"
	"github.com/matzehuels/tensorcanon/pkg/errors"
	"github.com/matzehuels/tensorcanon/pkg/observability"
	"github.com/matzehuels/tensorcanon/pkg/render"
	"github.com/matzehuels/tensorcanon/pkg/termfile"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → canonicalize → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	file, hash, err := r.Parse(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.FileHash = hash
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.TermCount = len(file.Terms)

	r.Logger.Info("parsed term file",
		"path", opts.Path,
		"terms", len(file.Terms),
		"duration", result.Stats.ParseTime)

	// Stage 2: Canonicalize
	canonStart := time.Now()
	terms, canonHit, err := r.CanonicalizeWithCacheInfo(ctx, file, hash, opts)
	if err != nil {
		return nil, fmt.Errorf("canonicalize: %w", err)
	}
	result.Terms = terms
	result.Stats.CanonTime = time.Since(canonStart)
	result.CacheInfo.CanonHit = canonHit

	r.Logger.Info("canonicalized terms",
		"terms", len(terms),
		"cached", canonHit,
		"duration", result.Stats.CanonTime)

	// Stage 3: Render (optional)
	if len(opts.Formats) > 0 {
		renderStart := time.Now()
		artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, file, terms, hash, opts)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		result.Artifacts = artifacts
		result.Stats.RenderTime = time.Since(renderStart)
		result.CacheInfo.RenderHit = renderHit

		r.Logger.Info("rendered outputs",
			"formats", opts.Formats,
			"duration", result.Stats.RenderTime)
	}

	return result, nil
}

// Parse loads the term file and returns it with its content hash.
func (r *Runner) Parse(ctx context.Context, opts Options) (*termfile.File, string, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, "", err
	}

	observability.Pipeline().OnParseStart(ctx, opts.Path)
	start := time.Now()

	data, err := os.ReadFile(opts.Path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Wrap(errors.ErrCodeFileNotFound, err, "term file %s", opts.Path)
		}
		observability.Pipeline().OnParseComplete(ctx, opts.Path, 0, time.Since(start), err)
		return nil, "", err
	}

	file, err := termfile.Parse(data)
	termCount := 0
	if file != nil {
		termCount = len(file.Terms)
	}
	observability.Pipeline().OnParseComplete(ctx, opts.Path, termCount, time.Since(start), err)
	if err != nil {
		return nil, "", err
	}

	return file, cache.Hash(data), nil
}

// CanonicalizeWithCacheInfo canonicalizes every term with caching and
// returns cache hit info. The whole file caches as one entry, keyed by its
// content hash and the options that influence the result.
func (r *Runner) CanonicalizeWithCacheInfo(ctx context.Context, file *termfile.File, hash string, opts Options) ([]TermSummary, bool, error) {
	opts.SetCanonDefaults()
	r.applyLogger(&opts)

	cacheKey := r.Keyer.TermKey(hash, opts.TermKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if terms, err := UnmarshalTerms(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "term")
				return terms, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "term")
	}

	engine := canon.NewEngine(&brute.Canonicalizer{MaxCandidates: opts.MaxCandidates}, opts.Logger)

	terms := make([]TermSummary, 0, len(file.Terms))
	for i, term := range file.Terms {
		observability.Pipeline().OnCanonStart(ctx, i, len(term.Sums)+len(term.Factors))
		start := time.Now()

		res, err := engine.Canonicalize(ctx, term.Sums, term.Factors, file.Symmetries)
		observability.Pipeline().OnCanonComplete(ctx, i, time.Since(start), err)
		if err != nil {
			return nil, false, fmt.Errorf("term %d: %w", i, err)
		}
		terms = append(terms, Summarize(res))
	}

	// Cache the result
	if data, err := MarshalTerms(terms); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLResult); err == nil {
			observability.Cache().OnCacheSet(ctx, "term", len(data))
		}
	}

	return terms, false, nil
}

// Canonicalize is a convenience wrapper that discards the cache hit info.
func (r *Runner) Canonicalize(ctx context.Context, file *termfile.File, hash string, opts Options) ([]TermSummary, error) {
	terms, _, err := r.CanonicalizeWithCacheInfo(ctx, file, hash, opts)
	return terms, err
}

// RenderWithCacheInfo renders the selected term's graph encoding in every
// requested format, with per-format caching, and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, file *termfile.File, terms []TermSummary, hash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	if opts.Term >= len(file.Terms) {
		return nil, false, errors.New(errors.ErrCodeNotFound,
			"term index %d out of range, file has %d terms", opts.Term, len(file.Terms))
	}

	// The artifact identity covers the file, the term selection, and the
	// label detail level.
	artifactHash := cache.Hash([]byte(fmt.Sprintf("%s:%d:%t", hash, opts.Term, opts.Detailed)))

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(artifactHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil // All artifacts from cache
	}

	rendered, err := r.renderFormats(ctx, file, terms, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(artifactHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, file *termfile.File, terms []TermSummary, hash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, file, terms, hash, opts)
	return artifacts, err
}

// renderFormats draws the selected term's eldag in every requested format.
func (r *Runner) renderFormats(ctx context.Context, file *termfile.File, terms []TermSummary, opts Options) (map[string][]byte, error) {
	term := file.Terms[opts.Term]

	engine := canon.NewEngine(nil, opts.Logger)
	g, err := engine.Encode(term.Sums, term.Factors, file.Symmetries)
	if err != nil {
		return nil, err
	}
	dot := render.ToDOT(g, render.Options{Detailed: opts.Detailed})

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		observability.Pipeline().OnRenderStart(ctx, format)
		start := time.Now()

		var data []byte
		var renderErr error
		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, renderErr = render.RenderSVG(dot)
		case FormatPNG:
			data, renderErr = render.RenderPNG(dot, DefaultPNGScale)
		case FormatPDF:
			data, renderErr = render.RenderPDF(dot)
		case FormatJSON:
			data, renderErr = MarshalTerms(terms)
		}

		observability.Pipeline().OnRenderComplete(ctx, format, time.Since(start), renderErr)
		if renderErr != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, renderErr, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
