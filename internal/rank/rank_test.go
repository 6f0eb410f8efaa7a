package rank_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"

	"github.com/boxdraw/boxdraw/internal/model"
	"github.com/boxdraw/boxdraw/internal/rank"
)

func TestAssignSeedsRootAtMinusOne(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	b := g.AddNode("B")
	g.AddEdge(a, b, "-", "->", "")
	g.SetGraphAttributes(model.Attrs{"root": "A"})

	rank.Assign(g)

	assert.Equals(t, a.Rank, -1)
	assert.Equals(t, b.Rank, -2)
}

func TestAssignChainsThroughSuccessors(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	b := g.AddNode("B")
	c := g.AddNode("C")
	g.AddEdge(a, b, "-", "->", "")
	g.AddEdge(b, c, "-", "->", "")
	g.SetGraphAttributes(model.Attrs{"root": "A"})

	rank.Assign(g)

	assert.Equals(t, a.Rank, -1)
	assert.Equals(t, b.Rank, -2)
	assert.Equals(t, c.Rank, -3)
}

func TestAssignHonorsUserRankAndFlipsOnNextHop(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	b := g.AddNode("B")
	g.AddEdge(a, b, "-", "->", "")
	a.Attrs["rank"] = "5"

	rank.Assign(g)

	assert.Equals(t, a.Rank, 6)
	assert.Equals(t, b.Rank, -7)
}

func TestAssignSeedsAllPredecessorFreeNodesWithoutRoot(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	b := g.AddNode("B")
	c := g.AddNode("C")
	g.AddEdge(a, c, "-", "->", "")
	g.AddEdge(b, c, "-", "->", "")

	rank.Assign(g)

	assert.Equals(t, a.Rank, -1)
	assert.Equals(t, b.Rank, -1)
	assert.Equals(t, c.Rank, -2)
}

func TestAssignReseedsDisconnectedComponents(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	b := g.AddNode("B")
	g.AddEdge(a, b, "-", "->", "")
	x := g.AddNode("X")
	y := g.AddNode("Y")
	g.AddEdge(x, y, "-", "->", "")
	g.SetGraphAttributes(model.Attrs{"root": "A"})

	rank.Assign(g)

	assert.Equals(t, a.Rank, -1)
	assert.Equals(t, b.Rank, -2)
	assert.Equals(t, x.Rank, -1)
	assert.Equals(t, y.Rank, -2)
}

func TestAssignLeavesSelfLoopRankUnaffected(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	g.AddEdge(a, a, "-", "->", "")
	g.SetGraphAttributes(model.Attrs{"root": "A"})

	rank.Assign(g)

	assert.Equals(t, a.Rank, -1)
}

func TestAssignRanksEveryNode(t *testing.T) {
	g := model.New()
	names := []string{"A", "B", "C", "D", "E"}
	nodes := make([]*model.Node, len(names))
	for i, name := range names {
		nodes[i] = g.AddNode(name)
	}
	g.AddEdge(nodes[0], nodes[1], "-", "->", "")
	g.AddEdge(nodes[1], nodes[2], "-", "->", "")
	g.AddEdge(nodes[0], nodes[3], "-", "->", "")

	rank.Assign(g)

	for _, n := range nodes {
		assert.True(t, n.Rank != 0, "expected %s to be ranked, got 0", n.ID)
	}
}
