package route

import (
	"github.com/boxdraw/boxdraw/internal/celltype"
	"github.com/boxdraw/boxdraw/internal/model"
)

// commit implements §4.5's "Committing a path" and "End-point flag application": it computes each
// cell's base shape from its three-cell window, straightens stray Z/S bend triples, marks the
// first non-crossing cell as the label cell, writes cells into g.Cells (converting crossable
// occupants to CROSS and appending a HOLE to the new edge instead), and applies START_*/END_*
// flags at the two terminal cells.
func commit(g *model.Graph, e *model.Edge, path []point, starts, stops []model.Place) {
	if len(path) == 0 {
		return
	}
	path = straighten(g, path)

	srcPlace := matchPlace(starts, path[0])
	dstPlace := matchPlace(stops, path[len(path)-1])
	srcInterior := point{srcPlace.InteriorX, srcPlace.InteriorY}
	dstInterior := point{dstPlace.InteriorX, dstPlace.InteriorY}

	if len(path) == 1 {
		commitShort(g, e, path, srcPlace, dstPlace)
		return
	}

	shapes := make([]celltype.Type, len(path))
	for i := range path {
		var din, dout point
		if i == 0 {
			din = point{path[0].x - srcInterior.x, path[0].y - srcInterior.y}
		} else {
			din = point{path[i].x - path[i-1].x, path[i].y - path[i-1].y}
		}
		if i == len(path)-1 {
			dout = point{dstInterior.x - path[i].x, dstInterior.y - path[i].y}
		} else {
			dout = point{path[i+1].x - path[i].x, path[i+1].y - path[i].y}
		}
		shapes[i] = classifyShape(din, dout)
	}

	labelIdx := 0
	for i, p := range path {
		if !isCrossable(g, p) {
			labelIdx = i
			break
		}
	}
	shapes[labelIdx] = shapes[labelIdx].WithLabel()

	for i, p := range path {
		placeCell(g, e, p, shapes[i])
	}

	applyEndpointFlags(g, e, path, opposite(srcPlace.Side), opposite(dstPlace.Side))
}

// commitShort implements the §4.5 straight-path special case: endpoints exactly two cells apart
// collapse to a single SHORT_CELL carrying both start and end flags.
func commitShort(g *model.Graph, e *model.Edge, path []point, srcPlace, dstPlace model.Place) {
	p := path[0]
	t := celltype.HOR.WithShort().WithLabel()
	placeCell(g, e, p, t)
	applyEndpointFlags(g, e, path, opposite(srcPlace.Side), opposite(dstPlace.Side))
}

func matchPlace(places []model.Place, p point) model.Place {
	for _, pl := range places {
		if pl.X == p.x && pl.Y == p.y {
			return pl
		}
	}
	if len(places) > 0 {
		return places[0]
	}
	return model.Place{}
}

// placeCell writes one committed cell of e's path into g.Cells, converting a crossable occupant
// into a CROSS cell shared between both edges rather than overwriting it.
func placeCell(g *model.Graph, e *model.Edge, p point, t celltype.Type) {
	mp := p.toModel()
	if existing, occupied := g.Cells[mp]; occupied {
		if ec, ok := existing.(*model.EdgeCell); ok && ec.Type.IsCrossable() {
			ec.Type = ec.Type.WithBaseType(celltype.CROSS)
			ec.Crossing = append(ec.Crossing, e)
			e.Cells = append(e.Cells, &model.EdgeCell{Edge: e, Type: celltype.HOLE})
			return
		}
	}
	cell := &model.EdgeCell{Edge: e, Type: t}
	g.Cells[mp] = cell
	e.Cells = append(e.Cells, cell)
}

// applyEndpointFlags implements §4.5's "End-point flag application": the first and last committed
// map cells get START_*/END_* flags on the side the step direction points away from/toward,
// adjusted for undirected and bidirectional edges, and cleared when the adjoining node fuses
// visually with the edge (shape=edge).
func applyEndpointFlags(g *model.Graph, e *model.Edge, path []point, startSide, endSide celltype.Side) {
	setFlag := func(p point, endpointIsEnd bool, side celltype.Side) {
		mp := p.toModel()
		cell, ok := g.Cells[mp].(*model.EdgeCell)
		if !ok {
			return
		}
		if endpointIsEnd {
			cell.Type = cell.Type.WithEnd(side)
		} else {
			cell.Type = cell.Type.WithStart(side)
		}
	}

	first, last := path[0], path[len(path)-1]

	// Undirected edges use START_* at both ends; bidirectional edges use END_* at both ends (so
	// both terminals draw an arrowhead); a plain directed edge gets START_* at the source and
	// END_* at the destination.
	if e.Bidirectional {
		setFlag(first, true, startSide)
		setFlag(last, true, endSide)
	} else if e.Undirected {
		setFlag(first, false, startSide)
		setFlag(last, false, endSide)
	} else {
		setFlag(first, false, startSide)
		setFlag(last, true, endSide)
	}

	if e.From.Shape() == "edge" {
		if cell, ok := g.Cells[first.toModel()].(*model.EdgeCell); ok {
			cell.Type = cell.Type.ClearStart(startSide)
		}
	}
	if e.To.Shape() == "edge" {
		if cell, ok := g.Cells[last.toModel()].(*model.EdgeCell); ok {
			cell.Type = cell.Type.ClearEnd(endSide).ClearStart(endSide)
		}
	}
}

// straighten implements §4.5's single straightening pass: for each run of three consecutive
// corner cells forming a Z or S, try replacing the middle detour with a straight-through route
// via an unoccupied neighbor, accepting only if every intermediate cell is free.
func straighten(g *model.Graph, path []point) []point {
	if len(path) < 4 {
		return path
	}
	out := make([]point, len(path))
	copy(out, path)

	for i := 1; i+2 < len(out); i++ {
		a, b, c, d := out[i-1], out[i], out[i+1], out[i+2]
		if !isBend(a, b, c) || !isBend(b, c, d) {
			continue
		}
		// b occupies one corner of the unit square between a and c; the straight-through
		// replacement is the square's other corner, so it is always adjacent to both a and c.
		alt := point{c.x, a.y}
		if alt == b {
			alt = point{a.x, c.y}
		}
		if _, occupied := g.Cells[alt.toModel()]; occupied {
			continue
		}
		out[i] = alt
	}
	return out
}

func isBend(a, b, c point) bool {
	d1 := point{sign(b.x - a.x), sign(b.y - a.y)}
	d2 := point{sign(c.x - b.x), sign(c.y - b.y)}
	return d1 != d2
}
