package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stratum/pkg/cache"
	perrors "github.com/matzehuels/stratum/pkg/errors"
	"github.com/matzehuels/stratum/pkg/observability"
	"github.com/matzehuels/stratum/pkg/stackfile"
)

// Runner executes the pipeline with logging and instrumentation.
//
// The Runner doesn't store results. Multiple goroutines can safely use the
// same Runner as long as its Cache is safe for concurrent use.
type Runner struct {
	Logger *log.Logger

	// Cache holds rendered SVGs keyed by their DOT source.
	Cache cache.Cache
}

// NewRunner creates a runner without a render cache. A nil logger uses
// log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger, Cache: cache.NewNullCache()}
}

// SolveFile loads the stackfile at path and solves it.
func (r *Runner) SolveFile(ctx context.Context, path string) (*Result, error) {
	def, err := stackfile.Load(path)
	if err != nil {
		return nil, err
	}
	return r.Solve(ctx, def, SourceFile)
}

// Solve builds and solves def. source labels the run for hooks and logs.
//
// Build errors return a nil Result. Solve errors (static conflicts, cycles)
// return a Result carrying the graph and stats with a nil Solution, wrapped
// in a coded [perrors.Error].
func (r *Runner) Solve(ctx context.Context, def *stackfile.Definition, source string) (*Result, error) {
	hooks := observability.Solver()
	hooks.OnSolveStart(ctx, source, len(def.Layers))
	start := time.Now()

	res, err := r.solve(def)

	layerCount := len(def.Layers)
	hooks.OnSolveComplete(ctx, source, layerCount, time.Since(start), err)
	if err != nil {
		r.Logger.Debug("solve failed", "source", source, "layers", layerCount, "code", perrors.Classify(err))
		return res, err
	}

	r.Logger.Debug("solved layers",
		"source", source,
		"layers", res.Stats.LayerCount,
		"static", res.Stats.StaticCount,
		"constraints", res.Stats.ConstraintCount,
		"duration", res.Stats.BuildTime+res.Stats.SolveTime)
	return res, nil
}

func (r *Runner) solve(def *stackfile.Definition) (*Result, error) {
	buildStart := time.Now()
	g, err := def.Build()
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	res := &Result{Graph: g}
	res.Stats.BuildTime = time.Since(buildStart)
	res.Stats.LayerCount = g.Len()
	res.Stats.ConstraintCount = g.ConstraintCount()
	for _, l := range def.Layers {
		if l.Static() {
			res.Stats.StaticCount++
		}
	}

	solveStart := time.Now()
	sol, err := g.Solve()
	res.Stats.SolveTime = time.Since(solveStart)
	if err != nil {
		return res, perrors.Wrap(perrors.Classify(err), err, "solve")
	}
	res.Solution = sol
	return res, nil
}

// Reload re-solves whatever the watcher currently holds and reports the
// reload to hooks. It is meant to be registered with
// [stackfile.Watcher.OnChange].
func (r *Runner) Reload(ctx context.Context, path string, def *stackfile.Definition) (*Result, error) {
	res, err := r.Solve(ctx, def, SourceWatch)
	observability.Solver().OnReload(ctx, path, err)
	return res, err
}
