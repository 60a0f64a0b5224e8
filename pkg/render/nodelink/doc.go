// Package nodelink renders layer constraint graphs as node-link diagrams.
//
// # Overview
//
// Each layer is drawn as a box and each "above" constraint as an arrow from
// the upper layer to the lower one. With a solved [layers.Solution] the boxes
// are labelled with their z-index, which makes it easy to see why a layer
// ended up where it did. Layers stuck in a cycle can be highlighted.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Solution: sol})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is required.
package nodelink
