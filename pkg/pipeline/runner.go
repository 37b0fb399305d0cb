package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/silhouette/pkg/art"
	"github.com/matzehuels/silhouette/pkg/cache"
	"github.com/matzehuels/silhouette/pkg/layout"
	"github.com/matzehuels/silhouette/pkg/lex"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options, as long as they use distinct seeds or
// accept identical output for identical input.
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

// Execute runs the complete strip → tokenize → art → layout pipeline
// with caching. A cached result still reports real grid dimensions and
// token counts; only the layout stage is skipped.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	seed := opts.effectiveSeed()
	result := &Result{
		RunID: uuid.NewString(),
		Seed:  seed,
	}

	// Stage 1+2: strip and tokenize.
	stripStart := time.Now()
	stripped := lex.Strip(opts.Code)
	result.Stats.StripTime = time.Since(stripStart)

	tokStart := time.Now()
	tokens := lex.Tokenize(stripped)
	result.Stats.TokenizeTime = time.Since(tokStart)
	result.Stats.TokenCount = len(tokens)

	// Stage 3: art grid.
	artStart := time.Now()
	dm := opts.densityMap()
	grid := art.Parse(opts.Art, art.Options{
		Width:     opts.Width,
		Height:    opts.Height,
		HasHeight: opts.HasHeight,
		Density:   &dm,
	})
	result.Stats.ArtTime = time.Since(artStart)
	result.Width = grid.W
	result.Height = grid.H

	r.Logger.Debug("prepared inputs",
		"run", result.RunID,
		"tokens", len(tokens),
		"width", grid.W,
		"height", grid.H)

	// Stage 4: layout, cached under a content hash of all inputs.
	key := r.Keyer.RenderKey([]byte(opts.Code), []byte(opts.Art), opts.cacheKeyFields(seed))
	if data, ok, err := r.Cache.Get(ctx, key); err != nil {
		r.Logger.Warn("cache read failed", "error", err)
	} else if ok {
		result.Output = string(data)
		result.CacheHit = true
		result.Stats.Lines = countLines(result.Output)
		r.Logger.Debug("layout cache hit", "run", result.RunID)
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	layoutStart := time.Now()
	result.Output = layout.Render(tokens, grid, layout.Options{
		Seed:    seed,
		Density: &dm,
	})
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Lines = countLines(result.Output)

	r.Logger.Info("rendered layout",
		"run", result.RunID,
		"tokens", len(tokens),
		"lines", result.Stats.Lines,
		"duration", result.Stats.LayoutTime.Round(time.Millisecond))

	if err := r.Cache.Set(ctx, key, []byte(result.Output), cache.DefaultTTL); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
	}
	return result, nil
}

// countLines counts newline-terminated lines.
func countLines(s string) int {
	return strings.Count(s, "\n")
}

// metaLine formats the --dump-meta summary.
func metaLine(w, h, tokens int) string {
	return fmt.Sprintf("W=%d H=%d, tokens=%d", w, h, tokens)
}
