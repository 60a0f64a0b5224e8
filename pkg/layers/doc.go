// Package layers computes integer stacking indices for named layers from
// declarative "A is above B" constraints.
//
// # Overview
//
// Interfaces often need to agree on a stacking order (CSS z-indices, canvas
// draw order, window levels) without anyone hand-assigning the numbers. This
// package lets callers describe only the relative order and derives the
// absolute values:
//
//	g := layers.New()
//	content, _ := g.AddLayer("content")
//	modal, _ := g.AddLayer("modal")
//	toast, _ := g.AddLayer("toast")
//
//	modal.IsAbove(content)
//	toast.IsAbove(modal)
//
//	sol, err := g.Solve() // content=1 modal=2 toast=3
//
// # Dynamic and Static Layers
//
// Layers created with [Graph.AddLayer] are dynamic: the solver picks their
// value, starting at [MinIndex] and raising it just enough to sit above every
// layer they are constrained to be above. Layers created with
// [Graph.AddStaticLayer] keep the caller's index exactly. Static indices may
// be any integer, including zero, negatives, and values shared with other
// static layers.
//
// # Solving
//
// [Graph.Solve] runs a bottom-up variant of Kahn's topological sort on a deep
// copy of the graph, so it can be called any number of times, before or after
// further constraints are added, and never changes the graph or any solution
// it returned earlier. For an unchanged graph every call returns an equal
// [Solution].
//
// A solve fails with [*StaticConflictError] when a static layer's index is not
// strictly greater than a layer it must be above, and with [*CycleError] when
// the constraints form a cycle. Both match their sentinel ([ErrStaticConflict],
// [ErrCycle]) through [errors.Is].
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. Callers must not declare
// constraints on a graph while another goroutine solves it.
package layers
