package groupfill

import (
	"strings"

	"github.com/boxdraw/boxdraw/internal/model"
)

// pickLabelCells implements §4.7: for each group, select one GroupCell matching the class that
// corresponds to the group's labelpos (" gt" for top, " gb" for bottom) and align rule, and mark
// it label-bearing.
func pickLabelCells(g *model.Graph) {
	for _, grp := range allGroups(g) {
		wantClass := " gt"
		if grp.LabelPos() == "bottom" {
			wantClass = " gb"
		}

		// Exact-class cells (a single border token, the common case along a straight edge of a
		// rectangular group) are preferred; a corner cell carrying extra tokens is accepted only
		// if the group has no cell with the pure edge class at all (e.g. a single-member group,
		// whose entire border is corners).
		var exact, loose []model.Point
		for _, p := range model.SortedPoints(g.Cells) {
			gc, ok := g.Cells[p].(*model.GroupCell)
			if !ok || gc.Group != grp || !strings.Contains(gc.Class, wantClass) {
				continue
			}
			if gc.Class == wantClass {
				exact = append(exact, p)
			} else {
				loose = append(loose, p)
			}
		}
		candidates := exact
		if len(candidates) == 0 {
			candidates = loose
		}
		if len(candidates) == 0 {
			continue
		}

		chosen := selectLabelCell(candidates, grp.Align())
		g.Cells[chosen].(*model.GroupCell).Label = true
	}
}

// selectLabelCell implements §4.7's selection rule: always restrict to the smallest y among
// candidates first, then apply align.
func selectLabelCell(candidates []model.Point, align string) model.Point {
	minY := candidates[0].Y
	for _, p := range candidates {
		if p.Y < minY {
			minY = p.Y
		}
	}
	var row []model.Point
	for _, p := range candidates {
		if p.Y == minY {
			row = append(row, p)
		}
	}

	switch align {
	case "left":
		best := row[0]
		for _, p := range row {
			if p.X < best.X {
				best = p
			}
		}
		return best
	case "right":
		best := row[0]
		for _, p := range row {
			if p.X > best.X {
				best = p
			}
		}
		return best
	default: // center
		minX, maxX := row[0].X, row[0].X
		for _, p := range row {
			if p.X < minX {
				minX = p.X
			}
			if p.X > maxX {
				maxX = p.X
			}
		}
		mid := (minX + maxX) / 2
		best := row[0]
		bestDist := (row[0].X - mid) * (row[0].X - mid)
		for _, p := range row {
			d := (p.X - mid) * (p.X - mid)
			if d < bestDist {
				best = p
				bestDist = d
			}
		}
		return best
	}
}

// allGroups flattens g's group tree into a single slice (top-level groups and all descendants).
func allGroups(g *model.Graph) []*model.Group {
	var out []*model.Group
	var walk func(groups []*model.Group)
	walk = func(groups []*model.Group) {
		for _, grp := range groups {
			out = append(out, grp)
			walk(grp.Groups)
		}
	}
	walk(g.Groups)
	return out
}
