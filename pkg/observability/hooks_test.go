package observability

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/matzehuels/stratum/pkg/layers"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	s := NoopSolverHooks{}
	s.OnSolveStart(ctx, "file", 3)
	s.OnSolveComplete(ctx, "file", 3, time.Millisecond, nil)
	s.OnReload(ctx, "stack.toml", errors.New("boom"))

	r := NoopRenderHooks{}
	r.OnRenderStart(ctx, "svg")
	r.OnRenderComplete(ctx, "svg", 1024, time.Millisecond, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Solver().(NoopSolverHooks); !ok {
		t.Error("Solver() should return NoopSolverHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}

	custom := &testSolverHooks{}
	SetSolverHooks(custom)
	if Solver() != custom {
		t.Error("SetSolverHooks should set custom hooks")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	Reset()
	if _, ok := Solver().(NoopSolverHooks); !ok {
		t.Error("Reset() should restore NoopSolverHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testSolverHooks{}
	SetSolverHooks(custom)
	SetSolverHooks(nil)
	if Solver() != custom {
		t.Error("SetSolverHooks(nil) should keep existing hooks")
	}
}

func TestPrometheusHooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := NewPrometheusHooks(reg)
	ctx := context.Background()

	h.OnSolveStart(ctx, "api", 3)
	h.OnSolveComplete(ctx, "api", 3, time.Millisecond, nil)
	h.OnSolveComplete(ctx, "api", 3, time.Millisecond, &layers.CycleError{Unresolved: []string{"a"}})
	h.OnSolveComplete(ctx, "file", 1, time.Millisecond, nil)
	h.OnReload(ctx, "stack.toml", nil)
	h.OnRenderComplete(ctx, "dot", 512, time.Millisecond, nil)

	if got := testutil.ToFloat64(h.solves.WithLabelValues("api", "ok")); got != 1 {
		t.Errorf("api ok solves = %v, want 1", got)
	}
	if got := testutil.ToFloat64(h.solves.WithLabelValues("api", "CYCLE")); got != 1 {
		t.Errorf("api cycle solves = %v, want 1", got)
	}
	if got := testutil.ToFloat64(h.reloads.WithLabelValues("ok")); got != 1 {
		t.Errorf("reloads = %v, want 1", got)
	}

	want := `
# HELP stratum_renders_total Total number of graph renders, labelled by format and result.
# TYPE stratum_renders_total counter
stratum_renders_total{format="dot",result="ok"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(want), "stratum_renders_total"); err != nil {
		t.Error(err)
	}
}

type testSolverHooks struct{ NoopSolverHooks }

type testRenderHooks struct{ NoopRenderHooks }
