package route_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/teleivo/assertive/assert"

	"github.com/boxdraw/boxdraw/internal/celltype"
	"github.com/boxdraw/boxdraw/internal/model"
	"github.com/boxdraw/boxdraw/internal/route"
)

func placeAt(g *model.Graph, n *model.Node, x, y, cx, cy int) {
	n.X, n.Y, n.CX, n.CY = x, y, cx, cy
	for dy := 0; dy < cy; dy++ {
		for dx := 0; dx < cx; dx++ {
			p := model.Point{X: x + dx, Y: y + dy}
			if dx == 0 && dy == 0 {
				g.Cells[p] = n
			} else {
				g.Cells[p] = &model.NodeCell{Node: n}
			}
		}
	}
}

func TestTraceStraightHorizontal(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	b := g.AddNode("B")
	e := g.AddEdge(a, b, "-", "->", "")
	placeAt(g, a, 0, 0, 1, 1)
	placeAt(g, b, 4, 0, 1, 1)

	err := route.Trace(g, e)

	assert.NoError(t, err)
	assert.True(t, len(e.Cells) > 0, "expected routed cells")
	for _, c := range e.Cells {
		assert.Equals(t, c.Edge, e)
	}
}

func TestTraceSingleBend(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	b := g.AddNode("B")
	e := g.AddEdge(a, b, "-", "->", "")
	placeAt(g, a, 0, 0, 1, 1)
	placeAt(g, b, 4, 4, 1, 1)

	err := route.Trace(g, e)

	assert.NoError(t, err)
	assert.True(t, len(e.Cells) > 0, "expected a routed L-shaped path")
}

func TestTraceShortPath(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	b := g.AddNode("B")
	e := g.AddEdge(a, b, "-", "->", "")
	placeAt(g, a, 0, 0, 1, 1)
	placeAt(g, b, 2, 0, 1, 1)

	err := route.Trace(g, e)

	assert.NoError(t, err)
	assert.Equals(t, len(e.Cells), 1)
}

func TestTraceBidirectionalEdgeGetsEndFlagsAtBothTerminals(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	b := g.AddNode("B")
	e := g.AddEdge(a, b, "<-", "->", "")
	placeAt(g, a, 0, 0, 1, 1)
	placeAt(g, b, 4, 0, 1, 1)

	err := route.Trace(g, e)

	assert.NoError(t, err)
	first, last := e.Cells[0], e.Cells[len(e.Cells)-1]
	assert.True(t, hasAnyEnd(first.Type), "expected the first cell to carry an END_* flag, got %v", first.Type)
	assert.True(t, hasAnyEnd(last.Type), "expected the last cell to carry an END_* flag, got %v", last.Type)
}

func hasAnyEnd(t celltype.Type) bool {
	for _, s := range []celltype.Side{celltype.North, celltype.South, celltype.East, celltype.West} {
		if t.HasEnd(s) {
			return true
		}
	}
	return false
}

func TestSelfLoopClaimsAdjacentCell(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	e := g.AddEdge(a, a, "-", "->", "")
	placeAt(g, a, 4, 4, 1, 1)

	err := route.SelfLoop(g, e)

	assert.NoError(t, err)
	assert.Equals(t, len(e.Cells), 1)
}

func TestTraceCrossesExistingEdge(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	b := g.AddNode("B")
	c := g.AddNode("C")
	d := g.AddNode("D")
	e1 := g.AddEdge(a, b, "-", "->", "")
	e2 := g.AddEdge(c, d, "-", "->", "")
	placeAt(g, a, 0, 2, 1, 1)
	placeAt(g, b, 6, 2, 1, 1)
	placeAt(g, c, 3, 0, 1, 1)
	placeAt(g, d, 3, 4, 1, 1)

	assert.NoError(t, route.Trace(g, e1))
	assert.NoError(t, route.Trace(g, e2))

	got := edgeCellShapes(g)
	want := map[string]string{
		"1,2": "HOR",
		"2,2": "HOR",
		"3,2": "CROSS",
		"4,2": "HOR",
		"5,2": "HOR",
		"3,1": "VER",
		"3,3": "VER",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("routed cell shapes mismatch (-want +got):\n%s", diff)
	}
}

// edgeCellShapes maps each occupied point to its committed edge cell's base shape, or "CROSS" if
// more than one edge claims the cell, for structural comparison against an expected layout.
func edgeCellShapes(g *model.Graph) map[string]string {
	out := make(map[string]string)
	for _, p := range model.SortedPoints(g.Cells) {
		ec, ok := g.Cells[p].(*model.EdgeCell)
		if !ok || ec.Type == celltype.HOLE {
			continue
		}
		if len(ec.Crossing) > 0 {
			out[p.Key()] = "CROSS"
		} else {
			out[p.Key()] = ec.Type.BaseType().String()
		}
	}
	return out
}
