package layers

import (
	"cmp"
	"maps"
	"math"
	"slices"
)

// Solution maps layer names to their resolved indices.
type Solution map[string]int

// Order returns the layer names from the lowest index to the highest. Layers
// sharing an index are ordered by name.
func (s Solution) Order() []string {
	names := slices.Collect(maps.Keys(s))
	slices.SortFunc(names, func(a, b string) int {
		if c := cmp.Compare(s[a], s[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return names
}

// Max returns the highest index in the solution, or 0 if it is empty.
func (s Solution) Max() int {
	if len(s) == 0 {
		return 0
	}
	return slices.Max(slices.Collect(maps.Values(s)))
}

// Solve assigns an index to every layer such that each layer is strictly
// above every layer it was declared above. Static layers keep their index;
// dynamic layers get the lowest value that satisfies their constraints, never
// less than [MinIndex].
//
// Solve works on a copy of the graph. It may be called any number of times,
// and the returned Solution is never touched by later calls. An empty graph
// yields an empty, non-nil Solution.
//
// Returns a [*StaticConflictError], [*IndexOverflowError] or [*CycleError]
// when no valid assignment exists; no partial solution is returned in that case.
//
// The algorithm is Kahn's topological sort run from the bottom of the stack:
// a layer becomes ready once every layer beneath it has an index, at which
// point its own index is final and it can raise the layers resting on it.
// Runs in O(N+E) time.
func (g *Graph) Solve() (Solution, error) {
	work := g.snapshot()

	// dependents[x] lists the layers declared above x, in registration order.
	dependents := make(map[string][]*record, len(work))
	for _, r := range work {
		for below := range r.above {
			dependents[below] = append(dependents[below], r)
		}
	}

	unresolved := make(map[string]struct{}, len(work))
	var ready []*record
	for _, r := range work {
		unresolved[r.name] = struct{}{}
		if len(r.above) == 0 {
			ready = append(ready, r)
		}
	}

	solution := make(Solution, len(work))
	for len(ready) > 0 {
		l := ready[len(ready)-1]
		ready = ready[:len(ready)-1]
		delete(unresolved, l.name)

		if !l.placed {
			l.index = MinIndex
			l.placed = true
		}
		solution[l.name] = l.index

		for _, m := range dependents[l.name] {
			delete(m.above, l.name)

			if m.static {
				if m.index <= l.index {
					return nil, &StaticConflictError{
						Layer:      m.name,
						Index:      m.index,
						Below:      l.name,
						BelowIndex: l.index,
					}
				}
			} else {
				if l.index == math.MaxInt {
					return nil, &IndexOverflowError{Layer: m.name, Below: l.name}
				}
				m.raise(l.index + 1)
			}

			if len(m.above) == 0 {
				ready = append(ready, m)
			}
		}
	}

	if len(unresolved) > 0 {
		return nil, &CycleError{Unresolved: slices.Sorted(maps.Keys(unresolved))}
	}
	return solution, nil
}

// raise lifts a dynamic layer to at least v, never below MinIndex.
func (r *record) raise(v int) {
	v = max(v, MinIndex)
	if !r.placed || r.index < v {
		r.index = v
		r.placed = true
	}
}
