// Package pipeline provides the core rendering pipeline for silhouette.
//
// This package implements the complete strip → tokenize → art → layout
// pipeline used by both the CLI and the HTTP API. Centralizing it keeps
// behavior identical across entry points and gives both the same cache.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Strip: remove comments from the source while preserving literals
//  2. Tokenize: split the stripped source into the token stream
//  3. Art: decode the art image into the binary target grid
//  4. Layout: place tokens, spaces, and synthesized comments on the grid
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Code: code,
//	    Art:  artText,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.WriteString(res.Output)
package pipeline

import (
	"time"

	"github.com/matzehuels/silhouette/pkg/art"
	"github.com/matzehuels/silhouette/pkg/layout"
)

// DefaultSeed is the PRNG seed used when Options.Seed is left zero,
// keeping output reproducible across runs.
const DefaultSeed = layout.DefaultSeed

// SeedRandom selects a time-based seed, giving each run aesthetic
// variety at the cost of reproducibility.
const SeedRandom = -1

// Options contains all configuration for one render.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Code is the source text to reformat.
	Code string `json:"code"`

	// Art is the ASCII-art image, UTF-8.
	Art string `json:"art"`

	// Width overrides the inferred art width when > 0.
	Width int `json:"width,omitempty"`

	// Height overrides the inferred art height when set. HasHeight
	// distinguishes an explicit 0 from "not set".
	Height    int  `json:"height,omitempty"`
	HasHeight bool `json:"has_height,omitempty"`

	// Seed seeds the layout PRNG. Zero means DefaultSeed; SeedRandom
	// derives a seed from the clock.
	Seed int64 `json:"seed,omitempty"`

	// Density holds per-character density overrides (single-character
	// keys). Usually populated from the config file.
	Density map[string]float64 `json:"density,omitempty"`
}

// effectiveSeed resolves the Seed field to the value actually used.
func (o *Options) effectiveSeed() int64 {
	switch o.Seed {
	case 0:
		return DefaultSeed
	case SeedRandom:
		return time.Now().UnixNano()
	}
	return o.Seed
}

// densityMap materializes the density map with overrides applied.
func (o *Options) densityMap() art.DensityMap {
	m := art.DefaultDensity()
	for k, v := range o.Density {
		if len(k) == 1 && k[0] < 128 {
			m.Set(rune(k[0]), v)
		}
	}
	return m
}

// cacheKeyFields returns the option fields that determine the output.
// Code and Art are hashed separately by the keyer.
func (o *Options) cacheKeyFields(seed int64) any {
	return struct {
		Width     int                `json:"width"`
		Height    int                `json:"height"`
		HasHeight bool               `json:"has_height"`
		Seed      int64              `json:"seed"`
		Density   map[string]float64 `json:"density"`
	}{o.Width, o.Height, o.HasHeight, seed, o.Density}
}

// Stats records per-stage timings and stream measurements.
type Stats struct {
	StripTime    time.Duration `json:"strip_time"`
	TokenizeTime time.Duration `json:"tokenize_time"`
	ArtTime      time.Duration `json:"art_time"`
	LayoutTime   time.Duration `json:"layout_time"`

	TokenCount int `json:"token_count"`
	Lines      int `json:"lines"`
}

// Result is the outcome of one pipeline execution.
type Result struct {
	// RunID uniquely identifies this execution in logs.
	RunID string `json:"run_id"`

	// Output is the rendered text.
	Output string `json:"output"`

	// Width and Height are the final grid dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Seed is the seed actually used, after resolving DefaultSeed and
	// SeedRandom.
	Seed int64 `json:"seed"`

	// CacheHit reports whether the output came from the cache.
	CacheHit bool `json:"cache_hit"`

	Stats Stats `json:"stats"`
}

// Meta returns the one-line human-readable summary the CLI prints for
// --dump-meta: "W=<W> H=<H>, tokens=<n>".
func (r *Result) Meta() string {
	return metaLine(r.Width, r.Height, r.Stats.TokenCount)
}
