package layers

import (
	"fmt"
	"maps"
	"slices"
)

// MinIndex is the lowest value the solver assigns to a dynamic layer.
const MinIndex = 1

type record struct {
	name   string
	above  map[string]struct{} // names this layer sits directly above
	index  int
	placed bool // index holds a real value; always true for static layers
	static bool
}

func (r *record) clone() *record {
	c := *r
	c.above = maps.Clone(r.above)
	if c.above == nil {
		c.above = make(map[string]struct{})
	}
	return &c
}

// Graph holds layers and the "above" relation between them.
//
// The zero value is not usable - use [New]. Graph is not safe for concurrent
// use without external synchronization.
type Graph struct {
	records map[string]*record
	order   []string // registration order
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{records: make(map[string]*record)}
}

// Layer is a handle to a layer registered in a [Graph]. It stores only the
// owning graph and the layer name; all state lives in the graph.
//
// The zero value is not usable. Handles are obtained from [Graph.AddLayer],
// [Graph.AddStaticLayer] or [Graph.Layer].
type Layer struct {
	g    *Graph
	name string
}

// Name returns the layer name.
func (l Layer) Name() string { return l.name }

// IsAbove declares that l must resolve to a strictly greater index than
// other. Declaring the same constraint twice has no further effect.
//
// IsAbove panics if the two handles belong to different graphs.
func (l Layer) IsAbove(other Layer) { l.g.link(l, other) }

// IsBelow declares that l must resolve to a strictly smaller index than
// other. It is equivalent to other.IsAbove(l).
//
// IsBelow panics if the two handles belong to different graphs.
func (l Layer) IsBelow(other Layer) { l.g.link(other, l) }

func (g *Graph) link(upper, lower Layer) {
	if upper.g != lower.g {
		panic(fmt.Sprintf("layers: %q and %q belong to different graphs", upper.name, lower.name))
	}
	g.records[upper.name].above[lower.name] = struct{}{}
}

// AddLayer registers a dynamic layer whose index is chosen by [Graph.Solve].
// Returns [ErrInvalidName] for an empty name and [ErrDuplicateName] if the
// name is taken.
func (g *Graph) AddLayer(name string) (Layer, error) {
	return g.add(&record{name: name})
}

// AddStaticLayer registers a layer fixed at index. Any integer is accepted,
// and several static layers may share the same index. Returns
// [ErrInvalidName] for an empty name and [ErrDuplicateName] if the name is
// taken.
func (g *Graph) AddStaticLayer(name string, index int) (Layer, error) {
	return g.add(&record{name: name, index: index, placed: true, static: true})
}

func (g *Graph) add(r *record) (Layer, error) {
	if r.name == "" {
		return Layer{}, ErrInvalidName
	}
	if _, exists := g.records[r.name]; exists {
		return Layer{}, fmt.Errorf("%w: %q", ErrDuplicateName, r.name)
	}
	r.above = make(map[string]struct{})
	g.records[r.name] = r
	g.order = append(g.order, r.name)
	return Layer{g: g, name: r.name}, nil
}

// Above declares by name that upper sits above lower. It is the name-based
// form of [Layer.IsAbove] used by loaders that only know layer names.
// Returns [ErrUnknownLayer] if either layer is not registered.
func (g *Graph) Above(upper, lower string) error {
	u, ok := g.Layer(upper)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLayer, upper)
	}
	l, ok := g.Layer(lower)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLayer, lower)
	}
	u.IsAbove(l)
	return nil
}

// Layer returns the handle for name and true, or a zero Layer and false.
func (g *Graph) Layer(name string) (Layer, bool) {
	if _, ok := g.records[name]; !ok {
		return Layer{}, false
	}
	return Layer{g: g, name: name}, true
}

// Has reports whether a layer named name is registered.
func (g *Graph) Has(name string) bool {
	_, ok := g.records[name]
	return ok
}

// Len returns the number of registered layers.
func (g *Graph) Len() int { return len(g.order) }

// ConstraintCount returns the number of distinct "above" constraints.
func (g *Graph) ConstraintCount() int {
	n := 0
	for _, r := range g.records {
		n += len(r.above)
	}
	return n
}

// Info is a read-only description of a registered layer.
type Info struct {
	Name   string
	Static bool
	Index  int      // fixed index for static layers, 0 for dynamic ones
	Above  []string // layers this one sits directly above, sorted
}

// Layers describes every layer in registration order. The result is a copy;
// changing it does not affect the graph.
func (g *Graph) Layers() []Info {
	out := make([]Info, len(g.order))
	for i, name := range g.order {
		r := g.records[name]
		out[i] = Info{
			Name:   r.name,
			Static: r.static,
			Above:  slices.Sorted(maps.Keys(r.above)),
		}
		if r.static {
			out[i].Index = r.index
		}
	}
	return out
}

// snapshot returns an independent deep copy of every record in registration
// order. The solver mutates the copy freely.
func (g *Graph) snapshot() []*record {
	out := make([]*record, len(g.order))
	for i, name := range g.order {
		out[i] = g.records[name].clone()
	}
	return out
}
