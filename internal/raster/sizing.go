package raster

import (
	"sort"

	"github.com/boxdraw/boxdraw/internal/celltype"
	"github.com/boxdraw/boxdraw/internal/model"
)

// layout is the output of prepareLayout: the pixel extent of every renderable cell, plus the
// absolute pixel position of every grid row/column that carries one, per SPEC_FULL.md §4.8
// "Sizing (prepareLayout)".
type layout struct {
	cellW, cellH map[model.Point]int
	colPos       map[int]int
	rowPos       map[int]int
	width        int
	height       int
}

// prepareLayout walks g.Cells in sorted key order, sizing every renderable cell via the
// correctSize* rules, balancing multi-cell node spans, then converting balanced row/column sizes
// into absolute pixel positions.
func prepareLayout(g *model.Graph) layout {
	rowSize := map[int]int{}
	colSize := map[int]int{}

	type nodeSpan struct {
		n          *model.Node
		w, h       int
	}
	var spans []nodeSpan

	touch := func(k int, sizes map[int]int) {
		if _, ok := sizes[k]; !ok {
			sizes[k] = 0
		}
	}

	for _, p := range model.SortedPoints(g.Cells) {
		cell := g.Cells[p]
		w, h, renderable := measureCell(g, cell)
		if !renderable {
			continue
		}

		switch v := cell.(type) {
		case *model.Node:
			for y := p.Y; y < p.Y+v.CY; y++ {
				touch(y, rowSize)
			}
			for x := p.X; x < p.X+v.CX; x++ {
				touch(x, colSize)
			}
			if v.CX+v.CY == 2 {
				if h > rowSize[p.Y] {
					rowSize[p.Y] = h
				}
				if w > colSize[p.X] {
					colSize[p.X] = w
				}
			} else {
				spans = append(spans, nodeSpan{v, w, h})
			}
		default:
			touch(p.Y, rowSize)
			touch(p.X, colSize)
			if h > rowSize[p.Y] {
				rowSize[p.Y] = h
			}
			if w > colSize[p.X] {
				colSize[p.X] = w
			}
		}
	}

	_, _, maxX, maxY := model.Bounds(g.Cells)
	touch(maxY+1, rowSize)
	touch(maxX+1, colSize)

	for _, sp := range spans {
		balanceSizes(rowSize, sp.n.Y, sp.n.CY, sp.h)
		balanceSizes(colSize, sp.n.X, sp.n.CX, sp.w)
	}

	colPos := prefixPositions(colSize)
	rowPos := prefixPositions(rowSize)

	cellW := map[model.Point]int{}
	cellH := map[model.Point]int{}
	for _, p := range model.SortedPoints(g.Cells) {
		cell := g.Cells[p]
		_, _, renderable := measureCell(g, cell)
		if !renderable {
			continue
		}
		cx, cy := extentOf(cell)
		x2 := nextDefined(colSize, p.X+cx)
		y2 := nextDefined(rowSize, p.Y+cy)
		cellW[p] = colPos[x2] - colPos[p.X]
		cellH[p] = rowPos[y2] - rowPos[p.Y]
	}

	return layout{
		cellW:  cellW,
		cellH:  cellH,
		colPos: colPos,
		rowPos: rowPos,
		width:  colPos[maxX+1],
		height: rowPos[maxY+1],
	}
}

// balanceSizes grows sizes[start:start+count] by 1 at a time until their sum reaches need,
// following the upstream Perl quirk spec.md calls out verbatim: walk the span's indices
// round-robin and grow the current index only when it is already nonzero; a zero entry is
// skipped without growing it and without counting as progress, matching the observed "the
// counter of eligible indices only advances on nonzero entries" behavior. No
// original_source/ file survived the retrieval filter to pin down what a still-all-zero span
// does under this rule (nothing in it is ever eligible to grow), so that one case falls back to
// growing the smallest entry each step, which always terminates.
func balanceSizes(sizes map[int]int, start, count, need int) {
	if count <= 0 {
		return
	}
	idx := make([]int, count)
	for i := range idx {
		idx[i] = start + i
	}
	sum := func() int {
		s := 0
		for _, i := range idx {
			s += sizes[i]
		}
		return s
	}

	anyNonzero := false
	for _, i := range idx {
		if sizes[i] != 0 {
			anyNonzero = true
			break
		}
	}
	if !anyNonzero {
		for sum() < need {
			smallest := idx[0]
			for _, i := range idx {
				if sizes[i] < sizes[smallest] {
					smallest = i
				}
			}
			sizes[smallest]++
		}
		return
	}

	cursor := 0
	for sum() < need {
		i := idx[cursor]
		if sizes[i] != 0 {
			sizes[i]++
		}
		cursor++
		if cursor >= count {
			cursor = 0
		}
	}
}

// prefixPositions converts a size map into absolute pixel positions, in ascending key order.
func prefixPositions(sizes map[int]int) map[int]int {
	keys := make([]int, 0, len(sizes))
	for k := range sizes {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	pos := make(map[int]int, len(keys))
	cum := 0
	for _, k := range keys {
		pos[k] = cum
		cum += sizes[k]
	}
	return pos
}

// nextDefined walks forward from from until it finds a coordinate present in sizes (its value may
// legitimately be zero, e.g. a pure HOR connector column), per §4.8's "nextDefined" helper.
func nextDefined(sizes map[int]int, from int) int {
	i := from
	for {
		if _, ok := sizes[i]; ok {
			return i
		}
		i++
	}
}

func extentOf(cell model.Cell) (cx, cy int) {
	if n, ok := cell.(*model.Node); ok {
		return n.CX, n.CY
	}
	return 1, 1
}

// measureCell dispatches to the correctSize* rule for cell's concrete type. renderable is false
// for placeholder cells that own no independent size (NodeCell, EdgeCellEmpty): their extent is
// already accounted for by the owning Node/Edge.
func measureCell(g *model.Graph, cell model.Cell) (w, h int, renderable bool) {
	switch v := cell.(type) {
	case *model.Node:
		w, h = correctSizeNode(v)
		return w, h, true
	case *model.EdgeCell:
		w, h = correctSizeEdgeCell(v)
		return w, h, true
	case *model.GroupCell:
		w, h = correctSizeGroupCell(v)
		return w, h, true
	default:
		return 0, 0, false
	}
}

// correctSizeEdgeCell implements §4.8's edge-cell sizing rule.
func correctSizeEdgeCell(ec *model.EdgeCell) (w, h int) {
	t := ec.Type
	if t.IsShort() {
		return 1, 1
	}

	base := t.BaseType()
	if t.IsLoop() {
		w = 7
		if base == celltype.N_W_S || base == celltype.S_W_N {
			w = 8
		}
		h = 3
		if t.HasLabel() {
			h = 5
		}
		return w, h
	}

	w, h = 5, 3
	switch base {
	case celltype.HOR:
		w = 0
	case celltype.VER:
		h = 0
	}

	if ec.Edge != nil {
		if ec.Edge.Bidirectional && (base == celltype.HOR || base == celltype.VER) {
			if base == celltype.HOR {
				w++
			} else {
				h++
			}
		}
		if (t.EndFlags() != 0 || t.StartFlags() != 0) && base != celltype.HOR && base != celltype.VER {
			w++
		}
		if ec.Edge.Style() == "dot-dot-dash" {
			w++
		}
	}

	if t.HasLabel() {
		lines, aligns := alignedLabel(labelOf(ec), "center", "auto")
		lw := maxLineLen(lines)
		w += lw
		if len(aligns) > 0 {
			h += len(lines) - 1
		}
	}
	return w, h
}

func labelOf(ec *model.EdgeCell) string {
	if ec.Edge == nil {
		return ""
	}
	return ec.Edge.Label()
}

// correctSizeNode implements §4.8's node sizing rule.
func correctSizeNode(n *model.Node) (w, h int) {
	shape := n.Shape()
	label := n.Label()

	switch shape {
	case "point":
		if n.Resolve("invisible", "") == "1" {
			return 0, 0
		}
		return 5, 3
	case "invisible":
		return 3, 3
	case "edge":
		lines, _ := alignedLabel(label, n.Align(), "auto")
		lw, lh := maxLineLen(lines), len(lines)
		if isBlank(lines) {
			return 3, 3
		}
		return 4 + lw, 3 + (lh - 1)
	}

	lines, _ := alignedLabel(label, n.Align(), "auto")
	lw, lh := maxLineLen(lines), len(lines)
	w = lw + 2
	h = lh

	border := n.BorderStyle()
	if border != "none" {
		w += 2
		h += 2
	} else {
		h += 2
	}
	return w, h
}

func isBlank(lines []string) bool {
	for _, l := range lines {
		if len(l) > 0 {
			return false
		}
	}
	return true
}

// correctSizeGroupCell implements §4.8's group-cell sizing rule.
func correctSizeGroupCell(gc *model.GroupCell) (w, h int) {
	if gc.Label {
		label := gc.Group.Label()
		lines, _ := alignedLabel(label, gc.Group.Align(), "auto")
		h = 1 + len(lines)
		w = maxLineLen(lines)
	}
	hasBorder := gc.Class != ""
	if hasBorder {
		if containsToken(gc.Class, " gr") || containsToken(gc.Class, " gl") || gc.Class == " ga" {
			if w < 2 {
				w = 2
			}
		}
		if containsToken(gc.Class, " gt") || containsToken(gc.Class, " gb") || gc.Class == " ga" {
			if h < 2 {
				h = 2
			}
		}
		if gc.Label {
			if w < 2 {
				w = 2
			}
			if h < 2 {
				h = 2
			}
		}
	}
	return w, h
}

func containsToken(class, token string) bool {
	for i := 0; i+len(token) <= len(class); i++ {
		if class[i:i+len(token)] == token {
			return true
		}
	}
	return false
}
