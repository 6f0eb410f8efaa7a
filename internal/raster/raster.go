// Package raster turns a laid-out and routed Graph into its final ASCII text, per SPEC_FULL.md
// §4.8: size every cell, convert sizes to absolute pixel positions, paint groups then edges then
// nodes onto a rune canvas, trim it, and add the graph's own label if it has one.
package raster

import (
	"strings"

	"github.com/boxdraw/boxdraw/internal/model"
)

// Render draws g (which must already be laid out: internal/grow, internal/rank, internal/chain,
// internal/place, internal/route, and internal/groupfill have all run) to its final ASCII text.
// The graph-level label, if any, wraps at the width §4.8 computes automatically from its length.
func Render(g *model.Graph) string {
	return RenderWithWrap(g, "auto")
}

// RenderWithWrap is Render with an explicit wrap width (a decimal column count, or "auto") for the
// graph-level label only — node, edge, and group labels keep their own resolved "textwrap"
// attribute. Used by cmd/boxdraw's "-fit-terminal" flag to wrap the graph label to the controlling
// terminal's width rather than the length-derived default.
func RenderWithWrap(g *model.Graph, wrap string) string {
	lay := prepareLayout(g)
	f := newFrame(lay.width, lay.height)

	// Groups first so nodes and edges draw over a group's border where they touch it, then edges,
	// then nodes last so a node's own border always wins at a junction with an edge's endpoint
	// cell, per §4.8's stated draw order.
	for _, p := range model.SortedPoints(g.Cells) {
		if gc, ok := g.Cells[p].(*model.GroupCell); ok {
			drawGroupCell(f, lay, p, gc)
		}
	}
	for _, p := range model.SortedPoints(g.Cells) {
		if ec, ok := g.Cells[p].(*model.EdgeCell); ok {
			drawEdgeCell(f, lay, p, ec)
		}
	}
	for _, n := range g.Nodes {
		drawNode(f, lay, n)
	}

	return withGraphLabel(g, f.String(), wrap)
}

// withGraphLabel implements §4.8's "Trimming and graph label": the label is centered over the
// body's widest line and placed above (labelpos=top, the default) or below it, separated by one
// blank line. When the centering padding is odd, a label above the body gets the extra column on
// its right (so it sits one column left of true center) and a label below gets it on its left
// (one column right of center).
func withGraphLabel(g *model.Graph, body, wrap string) string {
	label := g.Label()
	if label == "" {
		return body
	}

	trimmed := strings.TrimSuffix(body, "\n")
	var bodyLines []string
	if trimmed != "" {
		bodyLines = strings.Split(trimmed, "\n")
	}
	width := 0
	for _, l := range bodyLines {
		if len(l) > width {
			width = len(l)
		}
	}

	labelLines, _ := alignedLabel(label, "center", wrap)
	for _, l := range labelLines {
		if len(l) > width {
			width = len(l)
		}
	}

	bottom := g.LabelPos() == "bottom"
	centered := make([]string, len(labelLines))
	for i, l := range labelLines {
		pad := width - len(l)
		left := pad / 2
		if bottom {
			left = pad - pad/2
		}
		right := pad - left
		centered[i] = strings.Repeat(" ", left) + l + strings.Repeat(" ", right)
	}

	var out []string
	if bottom {
		out = append(out, bodyLines...)
		out = append(out, "")
		out = append(out, centered...)
	} else {
		out = append(out, centered...)
		out = append(out, "")
		out = append(out, bodyLines...)
	}
	return strings.Join(out, "\n") + "\n"
}
