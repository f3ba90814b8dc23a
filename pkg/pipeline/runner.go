package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/cache"
	bstio "github.com/matzehuels/bstviz/pkg/io"
	"github.com/matzehuels/bstviz/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both the CLI and the HTTP service use it.
//
// The Runner keeps no per-run state, so multiple goroutines can share one
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL is the lifetime of stored artifacts. Zero means cache.DefaultTTL.
	TTL time.Duration
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

// Execute parses input into trees and renders every tree in every requested
// format. Trees render concurrently; the first failure cancels the rest.
func (r *Runner) Execute(ctx context.Context, input []byte, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	parseStart := time.Now()
	trees, err := bstio.ReadTrees(bytes.NewReader(input), bstio.ReadOptions{
		Delimiter:   opts.Delimiter,
		Diagnostics: opts.Logger,
	})
	parseTime := time.Since(parseStart)
	nodes := 0
	for _, t := range trees {
		nodes += t.Len()
	}
	observability.Pipeline().OnParseComplete(ctx, len(trees), nodes, parseTime, err)
	if err != nil {
		return nil, err
	}
	return r.renderAll(ctx, trees, opts, Stats{Trees: len(trees), Nodes: nodes, ParseTime: parseTime})
}

// ExecuteTrees renders already built trees. The caller must not use the
// trees concurrently while ExecuteTrees runs.
func (r *Runner) ExecuteTrees(ctx context.Context, trees []*bst.Tree, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	stats := Stats{Trees: len(trees)}
	for _, t := range trees {
		stats.Nodes += t.Len()
	}
	return r.renderAll(ctx, trees, opts, stats)
}

func (r *Runner) renderAll(ctx context.Context, trees []*bst.Tree, opts Options, stats Stats) (*Result, error) {
	renderStart := time.Now()
	results := make([]TreeResult, len(trees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, t := range trees {
		g.Go(func() error {
			res, err := r.renderTree(gctx, i, t, opts)
			if err != nil {
				return fmt.Errorf("tree %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.RenderTime = time.Since(renderStart)
	for _, res := range results {
		if res.CacheHit {
			stats.CacheHits++
		}
	}
	r.Logger.Debug("rendered trees",
		"trees", stats.Trees,
		"nodes", stats.Nodes,
		"formats", opts.Formats,
		"cache_hits", stats.CacheHits,
		"duration", stats.RenderTime)

	return &Result{Trees: results, Stats: stats}, nil
}

func (r *Runner) renderTree(ctx context.Context, index int, t *bst.Tree, opts Options) (TreeResult, error) {
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, index, opts.Formats)

	res, err := r.renderTreeCached(ctx, index, t, opts)
	observability.Pipeline().OnRenderComplete(ctx, index, opts.Formats, time.Since(start), err)
	return res, err
}

func (r *Runner) renderTreeCached(ctx context.Context, index int, t *bst.Tree, opts Options) (TreeResult, error) {
	res := TreeResult{
		Index:     index,
		Nodes:     t.Len(),
		Height:    t.Height(),
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		CacheHit:  true,
	}

	inputHash, err := treeHash(t)
	if err != nil {
		return res, err
	}

	tr := newTreeRenderer(t, opts)
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		key := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, ok := r.lookup(ctx, key, format); ok {
				res.Artifacts[format] = data
				continue
			}
		}

		res.CacheHit = false
		data, err := tr.Render(ctx, format)
		if err != nil {
			return res, fmt.Errorf("render %s: %w", format, err)
		}
		res.Artifacts[format] = data
		r.store(ctx, key, format, data)
	}
	tr.Diagnose()
	res.Warnings = tr.Stats().Warnings
	return res, nil
}

// lookup reads an artifact. Cache failures count as misses.
func (r *Runner) lookup(ctx context.Context, key, format string) ([]byte, bool) {
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "format", format, "err", err)
		return nil, false
	}
	if !ok {
		observability.Cache().OnCacheMiss(ctx, format)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, format)
	return data, true
}

func (r *Runner) store(ctx context.Context, key, format string, data []byte) {
	ttl := r.TTL
	if ttl == 0 {
		ttl = cache.DefaultTTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "format", format, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, format, len(data))
}

// treeHash identifies a tree by its JSON export, which captures shape,
// labels and colour tags.
func treeHash(t *bst.Tree) (string, error) {
	var buf bytes.Buffer
	if err := bstio.WriteJSON(t, &buf); err != nil {
		return "", fmt.Errorf("hash tree: %w", err)
	}
	return cache.Hash(buf.Bytes()), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
