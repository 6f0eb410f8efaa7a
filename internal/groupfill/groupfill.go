// Package groupfill implements the group cell fill and group label placement passes described in
// SPEC_FULL.md §4.6-4.7. It runs once, after placement and routing, only when the graph has at
// least one group.
package groupfill

import (
	"github.com/boxdraw/boxdraw/internal/celltype"
	"github.com/boxdraw/boxdraw/internal/model"
)

// Run mutates g in place: it doubles the grid, repairs node extents, splices edge gaps opened by
// doubling, surrounds group members with border GroupCells, closes small gaps between them,
// computes each GroupCell's class string, migrates edge terminal flags that now abut a group
// border, and finally picks one label-bearing cell per group.
func Run(g *model.Graph) {
	if len(g.Groups) == 0 {
		return
	}
	doubleGrid(g)
	repairNodes(g)
	spliceEdges(g)
	addGroupCells(g)
	closeGaps(g)
	computeClassStrings(g)
	repairEdgeBorders(g)
	pickLabelCells(g)
}

// doubleGrid implements §4.6 step 1: multiply every cell's (x,y) by 2.
func doubleGrid(g *model.Graph) {
	newCells := make(model.CellMap, len(g.Cells)*4)
	for p, c := range g.Cells {
		newCells[model.Point{X: p.X * 2, Y: p.Y * 2}] = c
	}
	g.Cells = newCells
	for _, n := range g.Nodes {
		n.X *= 2
		n.Y *= 2
	}
}

// repairNodes implements §4.6 step 3: a node's extent becomes (2cx-1, 2cy-1) and the newly opened
// interior cells backfill with NodeCell placeholders.
func repairNodes(g *model.Graph) {
	for _, n := range g.Nodes {
		n.CX = 2*n.CX - 1
		n.CY = 2*n.CY - 1
		x1, y1, x2, y2 := n.Rect()
		for y := y1; y <= y2; y++ {
			for x := x1; x <= x2; x++ {
				p := model.Point{X: x, Y: y}
				if _, occupied := g.Cells[p]; !occupied {
					g.Cells[p] = &model.NodeCell{Node: n}
				}
			}
		}
	}
}

// spliceEdges implements §4.6 step 2: wherever two cells of the same edge (directly, or sharing a
// crossing) are now 2 apart with an empty cell between, insert a HOR/VER filler.
func spliceEdges(g *model.Graph) {
	pts := model.SortedPoints(g.Cells)
	for _, p := range pts {
		ec, ok := g.Cells[p].(*model.EdgeCell)
		if !ok {
			continue
		}
		mine := edgesOf(ec)
		for _, cand := range [2]model.Point{{X: p.X + 2, Y: p.Y}, {X: p.X, Y: p.Y + 2}} {
			other, ok := g.Cells[cand].(*model.EdgeCell)
			if !ok {
				continue
			}
			if !shareEdge(mine, edgesOf(other)) {
				continue
			}
			mid := model.Point{X: (p.X + cand.X) / 2, Y: (p.Y + cand.Y) / 2}
			if _, occupied := g.Cells[mid]; occupied {
				continue
			}
			base := celltype.HOR
			if cand.X == p.X {
				base = celltype.VER
			}
			g.Cells[mid] = &model.EdgeCell{Edge: ec.Edge, Type: base}
		}
	}
}

func edgesOf(ec *model.EdgeCell) []*model.Edge {
	return append([]*model.Edge{ec.Edge}, ec.Crossing...)
}

func shareEdge(a, b []*model.Edge) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// ownerGroup returns the group a cell belongs to, or nil. An edge belongs to a group only when
// both its endpoints belong to that same group, matching graph-easy's "edge is inside a group
// when both its ends are" convention (groups own nodes, not edges, per internal/model).
func ownerGroup(c model.Cell) *model.Group {
	switch v := c.(type) {
	case *model.Node:
		return v.Group()
	case *model.NodeCell:
		return v.Node.Group()
	case *model.EdgeCell:
		return edgeGroup(v.Edge)
	case *model.GroupCell:
		return v.Group
	default:
		return nil
	}
}

func edgeGroup(e *model.Edge) *model.Group {
	fg, tg := e.From.Group(), e.To.Group()
	if fg != nil && fg == tg {
		return fg
	}
	return nil
}

// addGroupCells implements §4.6 step 4: for every cell owned by a group, surround its empty
// 4-neighbors with a GroupCell of that group.
func addGroupCells(g *model.Graph) {
	for _, p := range model.SortedPoints(g.Cells) {
		grp := ownerGroup(g.Cells[p])
		if grp == nil {
			continue
		}
		for _, np := range neighbors4(p) {
			if _, occupied := g.Cells[np]; occupied {
				continue
			}
			g.Cells[np] = &model.GroupCell{Group: grp}
		}
	}
}

// closeGaps implements §4.6 step 5: close 2-step vertical/horizontal gaps between GroupCells of
// the same group.
func closeGaps(g *model.Graph) {
	for _, p := range model.SortedPoints(g.Cells) {
		gc, ok := g.Cells[p].(*model.GroupCell)
		if !ok {
			continue
		}
		for _, cand := range [2]model.Point{{X: p.X + 2, Y: p.Y}, {X: p.X, Y: p.Y + 2}} {
			other, ok := g.Cells[cand].(*model.GroupCell)
			if !ok || other.Group != gc.Group {
				continue
			}
			mid := model.Point{X: (p.X + cand.X) / 2, Y: (p.Y + cand.Y) / 2}
			if _, occupied := g.Cells[mid]; occupied {
				continue
			}
			g.Cells[mid] = &model.GroupCell{Group: gc.Group}
		}
	}
}

// computeClassStrings implements §4.6 step 6: probe each GroupCell's four neighbors; a neighbor
// that does not belong to the same group contributes a side token, and four tokens collapse to
// " ga".
func computeClassStrings(g *model.Graph) {
	for _, p := range model.SortedPoints(g.Cells) {
		gc, ok := g.Cells[p].(*model.GroupCell)
		if !ok {
			continue
		}
		var tokens string
		count := 0
		borders := func(np model.Point, token string) {
			other, occupied := g.Cells[np]
			if !occupied || ownerGroup(other) != gc.Group {
				tokens += token
				count++
			}
		}
		borders(model.Point{X: p.X, Y: p.Y - 1}, " gt")
		borders(model.Point{X: p.X, Y: p.Y + 1}, " gb")
		borders(model.Point{X: p.X - 1, Y: p.Y}, " gl")
		borders(model.Point{X: p.X + 1, Y: p.Y}, " gr")
		if count == 4 {
			gc.Class = " ga"
		} else {
			gc.Class = tokens
		}
	}
}

// repairEdgeBorders implements a simplified §4.6 step 7: when an edge cell's START_*/END_* flag
// points directly at a GroupCell neighbor, migrate the flag to a new SHORT edge cell on the
// opened gap cell one step further out (the slot doubling created for exactly this purpose),
// clearing it from the original cell.
func repairEdgeBorders(g *model.Graph) {
	for _, p := range model.SortedPoints(g.Cells) {
		ec, ok := g.Cells[p].(*model.EdgeCell)
		if !ok {
			continue
		}
		for side := celltype.North; side <= celltype.West; side++ {
			if !ec.Type.HasStart(side) && !ec.Type.HasEnd(side) {
				continue
			}
			np := step(p, side)
			if _, isGroup := g.Cells[np].(*model.GroupCell); !isGroup {
				continue
			}
			gapP := step(np, side)
			if _, occupied := g.Cells[gapP]; occupied {
				continue
			}
			short := celltype.HOR.WithShort()
			if side == celltype.North || side == celltype.South {
				short = celltype.VER.WithShort()
			}
			if ec.Type.HasStart(side) {
				short = short.WithStart(side)
				ec.Type = ec.Type.ClearStart(side)
			}
			if ec.Type.HasEnd(side) {
				short = short.WithEnd(side)
				ec.Type = ec.Type.ClearEnd(side)
			}
			g.Cells[gapP] = &model.EdgeCell{Edge: ec.Edge, Type: short}
			ec.Edge.Cells = append(ec.Edge.Cells, g.Cells[gapP].(*model.EdgeCell))
		}
	}
}

func neighbors4(p model.Point) [4]model.Point {
	return [4]model.Point{
		{X: p.X, Y: p.Y - 1},
		{X: p.X, Y: p.Y + 1},
		{X: p.X - 1, Y: p.Y},
		{X: p.X + 1, Y: p.Y},
	}
}

func step(p model.Point, side celltype.Side) model.Point {
	switch side {
	case celltype.North:
		return model.Point{X: p.X, Y: p.Y - 1}
	case celltype.South:
		return model.Point{X: p.X, Y: p.Y + 1}
	case celltype.East:
		return model.Point{X: p.X + 1, Y: p.Y}
	default:
		return model.Point{X: p.X - 1, Y: p.Y}
	}
}
