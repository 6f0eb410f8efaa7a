package chain_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"

	"github.com/boxdraw/boxdraw/internal/chain"
	"github.com/boxdraw/boxdraw/internal/model"
	"github.com/boxdraw/boxdraw/internal/rank"
)

func TestBuildEmitsNodeActionsInChainOrder(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	b := g.AddNode("B")
	c := g.AddNode("C")
	g.AddEdge(a, b, "-", "->", "")
	g.AddEdge(b, c, "-", "->", "")
	g.SetGraphAttributes(model.Attrs{"root": "A"})
	rank.Assign(g)

	actions := chain.Build(g)

	var nodeOrder []string
	for _, act := range actions {
		if act.Kind == chain.ActionNode {
			nodeOrder = append(nodeOrder, act.Node.ID)
		}
	}
	assert.EqualValues(t, nodeOrder, []string{"A", "B", "C"})
}

func TestBuildEmitsTraceAfterAllChainNodes(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	b := g.AddNode("B")
	c := g.AddNode("C")
	g.AddEdge(a, b, "-", "->", "")
	g.AddEdge(b, c, "-", "->", "")
	g.SetGraphAttributes(model.Attrs{"root": "A"})
	rank.Assign(g)

	actions := chain.Build(g)

	lastNodeIdx := -1
	firstTraceIdx := -1
	for i, act := range actions {
		if act.Kind == chain.ActionNode {
			lastNodeIdx = i
		}
		if act.Kind == chain.ActionTrace && firstTraceIdx == -1 {
			firstTraceIdx = i
		}
	}
	assert.True(t, firstTraceIdx > lastNodeIdx || firstTraceIdx == -1,
		"expected all NODE actions (last at %d) before first TRACE (at %d)", lastNodeIdx, firstTraceIdx)
}

func TestBuildSplitsAtBranch(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	b := g.AddNode("B")
	c := g.AddNode("C")
	g.AddEdge(a, b, "-", "->", "")
	g.AddEdge(a, c, "-", "->", "")
	g.SetGraphAttributes(model.Attrs{"root": "A"})
	rank.Assign(g)

	actions := chain.Build(g)

	var nodeOrder []string
	for _, act := range actions {
		if act.Kind == chain.ActionNode {
			nodeOrder = append(nodeOrder, act.Node.ID)
		}
	}
	assert.Equals(t, len(nodeOrder), 3)
	assert.Equals(t, nodeOrder[0], "A")
}

func TestBuildIncludesSelfLoopAction(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	g.AddEdge(a, a, "-", "->", "")
	g.SetGraphAttributes(model.Attrs{"root": "A"})
	rank.Assign(g)

	actions := chain.Build(g)

	found := false
	for _, act := range actions {
		if act.Kind == chain.ActionSelfLoop && act.Node == a {
			found = true
		}
	}
	assert.True(t, found, "expected a self-loop action for A")
}

func TestBuildTracesBranchEdgesAcrossChains(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	b := g.AddNode("B")
	c := g.AddNode("C")
	g.AddEdge(a, b, "-", "->", "")
	g.AddEdge(a, c, "-", "->", "")
	g.SetGraphAttributes(model.Attrs{"root": "A"})
	rank.Assign(g)

	actions := chain.Build(g)

	traced := make(map[*model.Edge]bool)
	for _, act := range actions {
		if act.Kind == chain.ActionTrace {
			traced[act.Edge] = true
		}
	}
	assert.Equals(t, len(traced), len(g.Edges))
}

func TestBuildOrdersMergedChainByActualConnectorNotChainHead(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	b := g.AddNode("B")
	c := g.AddNode("C")
	d := g.AddNode("D")
	g.AddEdge(a, b, "-", "->", "")
	g.AddEdge(a, c, "-", "->", "")
	g.AddEdge(b, d, "-", "->", "")
	g.AddEdge(c, d, "-", "->", "")
	g.SetGraphAttributes(model.Attrs{"root": "A"})
	rank.Assign(g)

	actions := chain.Build(g)

	var nodeOrder []string
	for _, act := range actions {
		if act.Kind == chain.ActionNode {
			nodeOrder = append(nodeOrder, act.Node.ID)
		}
	}
	assert.EqualValues(t, nodeOrder, []string{"A", "B", "C", "D"})
}

func TestBuildReachesDisconnectedComponent(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	b := g.AddNode("B")
	g.AddEdge(a, b, "-", "->", "")
	x := g.AddNode("X")
	y := g.AddNode("Y")
	g.AddEdge(x, y, "-", "->", "")
	g.SetGraphAttributes(model.Attrs{"root": "A"})
	rank.Assign(g)

	actions := chain.Build(g)

	seen := make(map[string]bool)
	for _, act := range actions {
		if act.Kind == chain.ActionNode {
			seen[act.Node.ID] = true
		}
	}
	assert.True(t, seen["A"] && seen["B"] && seen["X"] && seen["Y"],
		"expected all four nodes to be emitted, got %v", seen)
}
