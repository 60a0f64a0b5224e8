// Package pipeline provides the load → build → solve → render pipeline
// shared by the stratum CLI and HTTP API.
//
// By centralizing this logic, both entry points log, time and instrument
// solves the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: turn a [stackfile.Definition] into a [layers.Graph]
//  2. Solve: compute indices with [layers.Graph.Solve]
//  3. Render: optionally draw the constraint graph as DOT or SVG
//
// Every solve reports to [observability.Solver] and every render to
// [observability.Render].
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.SolveFile(ctx, "stack.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Solution["modal"])
package pipeline

import (
	"errors"
	"time"

	"github.com/matzehuels/stratum/pkg/layers"
)

// Sources passed to observability hooks.
const (
	SourceFile  = "file"
	SourceAPI   = "api"
	SourceWatch = "watch"
)

// Graph rendering formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// GraphFormats lists the formats accepted by [Runner.Render].
var GraphFormats = []string{FormatDOT, FormatSVG}

// Result holds the outcome of a pipeline run.
type Result struct {
	// Graph is the constraint graph built from the definition. It is set
	// even when solving fails, so callers can still render it.
	Graph *layers.Graph

	// Solution is nil when solving failed.
	Solution layers.Solution

	Stats Stats
}

// Stats describes the size of the graph and where time was spent.
type Stats struct {
	LayerCount      int
	StaticCount     int
	ConstraintCount int
	BuildTime       time.Duration
	SolveTime       time.Duration
}

// Unresolved returns the layers named by a cycle error, or nil.
func Unresolved(err error) []string {
	var ce *layers.CycleError
	if errors.As(err, &ce) {
		return ce.Unresolved
	}
	return nil
}
