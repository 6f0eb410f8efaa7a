package model_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"

	"github.com/boxdraw/boxdraw/internal/model"
)

func TestAddNodeIsIdempotent(t *testing.T) {
	g := model.New()
	a1 := g.AddNode("A")
	a2 := g.AddNode("A")
	assert.True(t, a1 == a2, "AddNode(%q) should return the same node both times", "A")
	assert.Equals(t, len(g.Nodes), 1)
}

func TestAddEdgeDirectionality(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	b := g.AddNode("B")

	tests := map[string]struct {
		leftOp, rightOp string
		wantBidi        bool
		wantUndirected  bool
		wantFrom        *model.Node
		wantTo          *model.Node
	}{
		"PlainDirected":  {leftOp: "-", rightOp: "->", wantFrom: a, wantTo: b},
		"Bidirectional":  {leftOp: "<-", rightOp: "->", wantBidi: true, wantFrom: a, wantTo: b},
		"Undirected":     {leftOp: "-", rightOp: "-", wantUndirected: true, wantFrom: a, wantTo: b},
		"ReversedByLeft": {leftOp: "<-", rightOp: "-", wantFrom: b, wantTo: a},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := g.AddEdge(a, b, tt.leftOp, tt.rightOp, "")
			assert.Equals(t, e.Bidirectional, tt.wantBidi)
			assert.Equals(t, e.Undirected, tt.wantUndirected)
			assert.True(t, e.From == tt.wantFrom, "From mismatch")
			assert.True(t, e.To == tt.wantTo, "To mismatch")
		})
	}
}

func TestEdgeStyleUsesClassDefaultBeforeInferring(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	b := g.AddNode("B")
	g.SetClassAttributes(model.KindEdge, "dashed", map[string]string{"style": "dashed"})
	e := g.AddEdge(a, b, "-", "->", "")
	e.Attrs["class"] = "dashed"

	assert.Equals(t, e.Style(), "dashed")
}

func TestInferEdgeStyle(t *testing.T) {
	tests := map[string]struct {
		left, right string
		want        string
	}{
		"Solid":      {left: "-", right: "-", want: "solid"},
		"Dashed":     {left: "-", right: " ", want: "dashed"},
		"Dotted":     {left: ".", right: ".", want: "dotted"},
		"Double":     {left: "=", right: "=", want: "double"},
		"Wave":       {left: "~", right: "~", want: "wave"},
		"DotDash":    {left: ".", right: "-", want: "dot-dash"},
		"DotDotDash": {left: "..", right: "-", want: "dot-dot-dash"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equals(t, model.InferEdgeStyle(tt.left, tt.right), tt.want)
		})
	}
}

func TestNodeResolveOrder(t *testing.T) {
	g := model.New()
	g.SetDefaultAttributes(model.KindNode, map[string]string{"shape": "circle"})
	g.SetClassAttributes(model.KindNode, "warn", map[string]string{"shape": "diamond"})

	plain := g.AddNode("A")
	assert.Equals(t, plain.Shape(), "circle")

	classed := g.AddNode("B")
	classed.Attrs["class"] = "warn"
	assert.Equals(t, classed.Shape(), "diamond")

	overridden := g.AddNode("C")
	overridden.Attrs["class"] = "warn"
	overridden.Attrs["shape"] = "box"
	assert.Equals(t, overridden.Shape(), "box")
}

func TestNodeResolveThroughGroupChain(t *testing.T) {
	g := model.New()
	outer := model.NewGroup("outer")
	inner := model.NewGroup("inner")
	g.AddGroup(outer)
	outer.AddGroup(inner)
	outer.Attrs["borderstyle"] = "bold"

	n := g.AddNode("A")
	inner.AddNode(n)

	assert.Equals(t, n.Resolve("borderstyle", "solid"), "bold")
}

func TestUnknownShapeFallsBackToBox(t *testing.T) {
	g := model.New()
	n := g.AddNode("A")
	n.Attrs["shape"] = "octagon"
	assert.Equals(t, n.Shape(), "box")
}

func TestParsePort(t *testing.T) {
	side, pos, hasSide, hasPos := model.ParsePort("east,1")
	assert.True(t, hasSide)
	assert.True(t, hasPos)
	assert.Equals(t, pos, 1)
	_ = side

	_, _, hasSide, _ = model.ParsePort("")
	assert.False(t, hasSide)
}

func TestNearPlacesOneCellNode(t *testing.T) {
	g := model.New()
	n := g.AddNode("A")
	n.X, n.Y, n.CX, n.CY = 5, 5, 1, 1

	places := n.NearPlaces("")
	assert.Equals(t, len(places), 4)
}

func TestFlowParsing(t *testing.T) {
	f, ok := model.ParseAbsoluteFlow("east")
	assert.True(t, ok)
	assert.Equals(t, f, model.FlowEast)

	f, ok = model.ParseAbsoluteFlow("90")
	assert.True(t, ok)
	assert.Equals(t, f, 90)

	f, ok = model.ParseRelativeFlow("left", model.FlowEast)
	assert.True(t, ok)
	assert.Equals(t, f, model.FlowNorth)
}

func TestSortedPointsRowMajor(t *testing.T) {
	m := model.CellMap{
		{X: 2, Y: 0}: &model.EdgeCellEmpty{},
		{X: 0, Y: 1}: &model.EdgeCellEmpty{},
		{X: 0, Y: 0}: &model.EdgeCellEmpty{},
	}
	pts := model.SortedPoints(m)
	want := []model.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 1}}
	assert.Equals(t, len(pts), len(want))
	for i := range want {
		assert.True(t, pts[i] == want[i], "pts[%d] = %v, want %v", i, pts[i], want[i])
	}
}
