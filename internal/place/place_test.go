package place_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"

	"github.com/boxdraw/boxdraw/internal/chain"
	"github.com/boxdraw/boxdraw/internal/grow"
	"github.com/boxdraw/boxdraw/internal/model"
	"github.com/boxdraw/boxdraw/internal/place"
	"github.com/boxdraw/boxdraw/internal/rank"
)

func layout(g *model.Graph) {
	for _, n := range g.Nodes {
		grow.Node(n)
	}
	rank.Assign(g)
	place.Run(g, chain.Build(g))
}

func TestPlaceNodeSetsAnchorCell(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	g.SetGraphAttributes(model.Attrs{"root": "A"})

	layout(g)

	anchor, ok := g.Cells[model.Point{X: a.X, Y: a.Y}]
	assert.True(t, ok, "expected an anchor cell at (%d,%d)", a.X, a.Y)
	assert.Equals(t, anchor, model.Cell(a))
}

func TestPlaceLeavesTwoUnitSpacingBetweenRanks(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	b := g.AddNode("B")
	c := g.AddNode("C")
	g.AddEdge(a, b, "-", "->", "")
	g.AddEdge(b, c, "-", "->", "")
	g.SetGraphAttributes(model.Attrs{"root": "A"})

	layout(g)

	assert.Equals(t, b.X-a.X, 2)
	assert.Equals(t, c.X-b.X, 2)
}

func TestPlaceStacksSameRankNodesWithoutOverlap(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	b := g.AddNode("B")
	c := g.AddNode("C")
	g.AddEdge(a, b, "-", "->", "")
	g.AddEdge(a, c, "-", "->", "")
	g.SetGraphAttributes(model.Attrs{"root": "A"})

	layout(g)

	assert.Equals(t, b.X, c.X)
	assert.True(t, b.Y != c.Y, "expected B and C to occupy distinct rows, both at y=%d", b.Y)
}

func TestPlaceKeepsOppositeSignRanksOfEqualMagnitudeIndependent(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	a.Attrs["flow"] = "east"
	a.Rank = 2
	b := g.AddNode("B")
	b.Attrs["flow"] = "east"
	b.Rank = -2

	d := place.NewDriver(g)
	d.Place(a)
	d.Place(b)

	assert.Equals(t, a.Y, 0)
	assert.Equals(t, b.Y, 1)
}

func TestPlaceEveryNodeGetsACoordinate(t *testing.T) {
	g := model.New()
	names := []string{"A", "B", "C", "D"}
	nodes := make([]*model.Node, len(names))
	for i, name := range names {
		nodes[i] = g.AddNode(name)
	}
	g.AddEdge(nodes[0], nodes[1], "-", "->", "")
	g.SetGraphAttributes(model.Attrs{"root": "A"})

	layout(g)

	seen := make(map[model.Point]bool)
	for _, n := range nodes {
		p := model.Point{X: n.X, Y: n.Y}
		assert.False(t, seen[p], "expected unique anchor coordinates, collision at %v", p)
		seen[p] = true
	}
}
