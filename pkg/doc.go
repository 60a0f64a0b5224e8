// Package pkg provides the core libraries for stratum, a z-index solver.
//
// # Overview
//
// Stratum turns declarations such as "the modal sits above the header" into
// concrete integer z-index values. The pkg directory is organized into three
// areas:
//
//  1. [layers] - Domain logic (constraint graph and solver)
//  2. [stackfile], [output] - Serialization of definitions and solutions
//  3. [pipeline] - Orchestration (load → build → solve → render)
//
// # Architecture
//
// The typical data flow through stratum:
//
//	stackfile (TOML, YAML, JSON)
//	         ↓
//	    [stackfile] package (decode, validate, build)
//	         ↓
//	    [layers] package (constraint graph + solver)
//	         ↓
//	    [output] package (text, CSS, SCSS, JSON, TOML, YAML)
//	    [render/nodelink] package (DOT, SVG)
//
// # Quick Start
//
// Declare layers in code and solve them:
//
//	g := layers.New()
//	content, _ := g.AddLayer("content")
//	widget, _ := g.AddStaticLayer("chat-widget", 1000)
//	modal, _ := g.AddLayer("modal")
//	modal.IsAbove(content)
//	modal.IsAbove(widget)
//
//	sol, err := g.Solve() // content=1, chat-widget=1000, modal=1001
//
// Or load a stackfile and write CSS custom properties:
//
//	runner := pipeline.NewRunner(nil)
//	res, err := runner.SolveFile(ctx, "stack.toml")
//	output.Write(os.Stdout, res.Solution, output.FormatCSS, output.Options{})
//
// # Main Packages
//
// [layers] - Constraint graph with dynamic and static layers. [layers.Graph.Solve]
// computes the smallest indices satisfying every constraint, or reports a
// static conflict or cycle.
//
// [stackfile] - Declarative layer definitions and a file watcher that
// reloads them on change.
//
// [output] - Encoders for solved indices.
//
// [render/nodelink] - Constraint graph diagrams using Graphviz.
//
// [pipeline] - The solve and render pipeline shared by the CLI and the HTTP
// API, with logging, metrics hooks and a render cache.
//
// [cache] - File, memory and no-op caches for rendered drawings.
//
// [observability] - Hook interfaces and a Prometheus backend.
//
// [errors] - Coded errors shared by the CLI and the API.
//
// # Testing
//
// Run tests:
//
//	go test ./...                  # All tests
//	go test ./pkg/layers/...       # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [layers]: https://pkg.go.dev/github.com/matzehuels/stratum/pkg/layers
// [stackfile]: https://pkg.go.dev/github.com/matzehuels/stratum/pkg/stackfile
// [output]: https://pkg.go.dev/github.com/matzehuels/stratum/pkg/output
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/stratum/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/stratum/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/stratum/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/stratum/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/stratum/pkg/errors
package pkg
