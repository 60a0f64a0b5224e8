package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/stratum/pkg/layers"
)

// Options configures constraint graph rendering.
type Options struct {
	// Solution, when set, adds each layer's resolved index to its label and
	// orders nodes from the top of the stack down.
	Solution layers.Solution

	// Highlight marks layers to draw in red, typically the unresolved set
	// of a [layers.CycleError].
	Highlight []string
}

// ToDOT converts a constraint graph to Graphviz DOT format. Each "above"
// constraint becomes an edge from the upper layer to the lower one, so with
// rankdir=TB the drawing reads top to bottom like the stack itself.
//
// Static layers are drawn with a double border and their fixed index.
func ToDOT(g *layers.Graph, opts Options) string {
	infos := g.Layers()
	if opts.Solution != nil {
		rank := make(map[string]int, len(infos))
		for i, name := range opts.Solution.Order() {
			rank[name] = i
		}
		slices.SortStableFunc(infos, func(a, b layers.Info) int {
			return rank[b.Name] - rank[a.Name]
		})
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, info := range infos {
		label := fmtLabel(info, opts.Solution)
		attrs := fmtAttrs(info, label, slices.Contains(opts.Highlight, info.Name))
		fmt.Fprintf(&buf, "  %q [%s];\n", info.Name, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, info := range infos {
		for _, lower := range info.Above {
			fmt.Fprintf(&buf, "  %q -> %q;\n", info.Name, lower)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(info layers.Info, sol layers.Solution) string {
	var parts []string
	if info.Static {
		parts = append(parts, fmt.Sprintf("static: %d", info.Index))
	} else if idx, ok := sol[info.Name]; ok {
		parts = append(parts, fmt.Sprintf("z: %d", idx))
	}
	if len(parts) == 0 {
		return info.Name
	}
	return info.Name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(info layers.Info, label string, highlight bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if info.Static {
		attrs = append(attrs, "peripheries=2", "fillcolor=lightblue")
	}
	if highlight {
		attrs = append(attrs, "color=red", "fontcolor=red", "penwidth=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root <svg> tag so the drawing scales from a
// 0,0 origin with explicit width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
