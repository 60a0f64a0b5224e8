package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/stratum/pkg/cache"
	perrors "github.com/matzehuels/stratum/pkg/errors"
	"github.com/matzehuels/stratum/pkg/observability"
	"github.com/matzehuels/stratum/pkg/render/nodelink"
)

// Render draws the result's constraint graph in format (FormatDOT or
// FormatSVG). A failed solve still renders; layers left unresolved by a
// cycle, passed in solveErr, are highlighted.
func (r *Runner) Render(ctx context.Context, res *Result, solveErr error, format string) ([]byte, error) {
	if format != FormatDOT && format != FormatSVG {
		return nil, perrors.New(perrors.ErrCodeInvalidFormat, "unsupported graph format %q (want dot or svg)", format)
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()

	dot := nodelink.ToDOT(res.Graph, nodelink.Options{
		Solution:  res.Solution,
		Highlight: Unresolved(solveErr),
	})

	var (
		out []byte
		err error
	)
	switch format {
	case FormatDOT:
		out = []byte(dot)
	case FormatSVG:
		out, err = r.renderSVG(ctx, dot)
	}

	hooks.OnRenderComplete(ctx, format, len(out), time.Since(start), err)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "render %s", format)
	}
	r.Logger.Debug("rendered graph", "format", format, "bytes", len(out))
	return out, nil
}

// renderSVG runs Graphviz unless the drawing is already cached. Cache
// failures are logged and otherwise ignored.
func (r *Runner) renderSVG(ctx context.Context, dot string) ([]byte, error) {
	key := cache.RenderKey(FormatSVG, dot)
	if data, hit, err := r.Cache.Get(ctx, key); err != nil {
		r.Logger.Warn("render cache read failed", "err", err)
	} else if hit {
		r.Logger.Debug("render cache hit", "key", key)
		return data, nil
	}

	out, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	if err := r.Cache.Set(ctx, key, out, 0); err != nil {
		r.Logger.Warn("render cache write failed", "err", err)
	}
	return out, nil
}
