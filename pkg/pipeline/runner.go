package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tue-alga/Gridmap-sub002/pkg/cache"
	"github.com/tue-alga/Gridmap-sub002/pkg/errors"
	"github.com/tue-alga/Gridmap-sub002/pkg/mosaic"
	"github.com/tue-alga/Gridmap-sub002/pkg/observability"
)

// Runner encapsulates run execution with caching.
//
// The Runner keeps no per-run state besides the cache and logger, so
// several goroutines may share one Runner with different options.
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

// Execute runs load → search → render with caching.
//
// When the final grid fails its check, Execute returns the filled-in
// result together with a *errors.GridError. Any other error leaves the
// result nil.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if len(opts.Problem) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "problem is required")
	}
	r.applyLogger(&opts)

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	logger := opts.Logger.With("run", result.RunID[:8])

	// Stage 1: Load
	loadStart := time.Now()
	m, d, err := LoadProblem(opts.Problem)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	opts.ApplySettings(m.Settings)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	start, err := InitialGrid(m, opts.Initial)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Map = m
	result.Stats.Regions = len(m.Faces)
	result.Stats.LoadTime = time.Since(loadStart)
	logger.Info("loaded problem",
		"lattice", m.Lattice,
		"faces", len(m.Faces),
		"edges", len(d.Edges()),
		"cells", start.Len(),
		"duration", result.Stats.LoadTime)

	hooks := observability.Pipeline()
	hooks.OnRunStart(ctx, result.RunID, len(m.Faces))
	runStart := time.Now()

	// Stage 2: Search (or cache)
	result.CacheKey = r.Keyer.CheckpointKey(cache.Hash(opts.Problem), opts.CheckpointKeyOpts())
	g, hit := r.lookup(ctx, result.CacheKey, start, opts.Refresh)
	var checkErr error
	if hit {
		result.CacheHit = true
		logger.Info("loaded checkpoint", "key", result.CacheKey)
	} else {
		searchStart := time.Now()
		g, result.Report, checkErr = Search(m, d, start, opts)
		result.Stats.SearchTime = time.Since(searchStart)
		var gerr *errors.GridError
		if checkErr != nil && !stderrors.As(checkErr, &gerr) {
			hooks.OnRunComplete(ctx, result.RunID, time.Since(runStart), checkErr)
			return nil, fmt.Errorf("search: %w", checkErr)
		}
		logger.Info("search finished",
			"iterations", result.Report.Iterations,
			"exact", result.Report.Best.Exact,
			"relaxed", result.Report.Best.Relaxed,
			"duration", result.Stats.SearchTime)
		if checkErr == nil {
			r.store(ctx, result.CacheKey, g)
		}
	}
	result.Grid = g
	result.Summary = g.Summarize()
	hooks.OnRunComplete(ctx, result.RunID, time.Since(runStart), checkErr)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := Render(g, m, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, checkErr
}

// lookup loads a cached checkpoint onto a copy of start. Unreadable entries
// count as misses.
func (r *Runner) lookup(ctx context.Context, key string, start *mosaic.Grid, refresh bool) (*mosaic.Grid, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	g := start.Duplicate()
	for _, c := range g.Occupied() {
		g.Remove(c)
	}
	if err := g.ReadCoordinates(bytes.NewReader(data)); err != nil {
		r.Logger.Warn("discarding unreadable checkpoint", "key", key, "err", err)
		return nil, false
	}
	return g, true
}

// store writes the checkpoint and its summary. Failures are logged only.
func (r *Runner) store(ctx context.Context, key string, g *mosaic.Grid) {
	var buf bytes.Buffer
	if err := g.WriteCoordinates(&buf); err != nil {
		r.Logger.Warn("encode checkpoint", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, buf.Bytes(), cache.DefaultTTL); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	if data, err := json.Marshal(g.Summarize()); err == nil {
		_ = r.Cache.Set(ctx, r.Keyer.SummaryKey(key), data, cache.DefaultTTL)
	}
}

// Summary returns the cached summary stored with a checkpoint.
func (r *Runner) Summary(ctx context.Context, checkpointKey string) (*mosaic.Summary, bool, error) {
	data, hit, err := r.Cache.Get(ctx, r.Keyer.SummaryKey(checkpointKey))
	if err != nil || !hit {
		return nil, false, err
	}
	var s mosaic.Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode summary")
	}
	return &s, true, nil
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
