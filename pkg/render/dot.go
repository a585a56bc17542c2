package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pathorder/pkg/fastgraph"
)

// ToDOT converts graphs to Graphviz DOT. Node positions are pinned to their
// model coordinates so the neato layout reproduces the geometry.
func ToDOT(opts Options, graphs ...*fastgraph.Graph) string {
	opts = opts.withDefaults()
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, width=0.08, fixedsize=true, style=filled, fillcolor=red, fontsize=8];\n")
	buf.WriteString("  edge [arrowsize=0.4];\n")
	buf.WriteString("\n")

	for gi, g := range graphs {
		for h, n := range g.Nodes() {
			attrs := []string{
				fmt.Sprintf("pos=\"%g,%g!\"", n.Position.X*opts.Scale/72, n.Position.Y*opts.Scale/72),
				fmt.Sprintf("label=%q", nodeLabel(n, opts.Detailed)),
			}
			if n.Entry {
				attrs = append(attrs, "fillcolor=orange")
			}
			fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(gi, h), strings.Join(attrs, ", "))
		}
	}

	buf.WriteString("\n")
	for gi, g := range graphs {
		for h, n := range g.Nodes() {
			for _, l := range n.Forward() {
				style := fmt.Sprintf("color=%q", colorOf(l.Cost.Label.Kind))
				if l.Cost.Label.IsConnection() {
					style += ", style=dashed"
				}
				fmt.Fprintf(&buf, "  %q -> %q [%s];\n", nodeID(gi, h), nodeID(gi, l.Node), style)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(graph int, h fastgraph.Handle) string {
	return fmt.Sprintf("g%d%s", graph, h)
}

func nodeLabel(n *fastgraph.Node, detailed bool) string {
	if !detailed {
		return ""
	}
	return fmt.Sprintf("%s\n(%.2f, %.2f)", n.Label, n.Position.X, n.Position.Y)
}

// RenderDOT lays out a DOT graph with neato and returns SVG bytes.
func RenderDOT(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

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

// normalizeViewBox replaces Graphviz's point-sized svg header with one
// that scales to its container.
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
	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
