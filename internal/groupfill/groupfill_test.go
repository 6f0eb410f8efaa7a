package groupfill_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"

	"github.com/boxdraw/boxdraw/internal/groupfill"
	"github.com/boxdraw/boxdraw/internal/model"
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

func TestRunNoopWithoutGroups(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	placeAt(g, a, 0, 0, 1, 1)

	groupfill.Run(g)

	assert.Equals(t, a.X, 0)
	assert.Equals(t, a.Y, 0)
}

func TestRunDoublesGridAndSurroundsGroupMember(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	placeAt(g, a, 1, 1, 1, 1)
	grp := model.NewGroup("cluster")
	grp.AddNode(a)
	g.AddGroup(grp)

	groupfill.Run(g)

	assert.Equals(t, a.X, 2)
	assert.Equals(t, a.Y, 2)

	found := false
	for _, c := range g.Cells {
		if gc, ok := c.(*model.GroupCell); ok && gc.Group == grp {
			found = true
		}
	}
	assert.True(t, found, "expected at least one GroupCell around the group's member")
}

func TestRunPicksOneLabelCellPerGroup(t *testing.T) {
	g := model.New()
	a := g.AddNode("A")
	placeAt(g, a, 1, 1, 1, 1)
	grp := model.NewGroup("cluster")
	grp.AddNode(a)
	g.AddGroup(grp)

	groupfill.Run(g)

	labelCount := 0
	for _, c := range g.Cells {
		if gc, ok := c.(*model.GroupCell); ok && gc.Group == grp && gc.Label {
			labelCount++
		}
	}
	assert.Equals(t, labelCount, 1)
}
