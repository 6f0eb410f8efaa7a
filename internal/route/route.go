// Package route implements the edge router described in SPEC_FULL.md §4.5: a straight-path fast
// path, a single-bend fast path, and a full A* fallback, all committing into the graph's shared
// cell map.
package route

import (
	"errors"
	"fmt"

	"github.com/boxdraw/boxdraw/internal/model"
)

// ErrNoPath is returned when no strategy can connect an edge's endpoints. No strategy is retried
// with relaxed penalties; the root package's Layout returns the error to its caller.
var ErrNoPath = errors.New("route: no path found")

// point is a lightweight (x,y) pair, distinct from model.Point only to keep this package's
// internal arithmetic free of a model import for coordinates alone.
type point struct{ x, y int }

func (p point) toModel() model.Point { return model.Point{X: p.x, Y: p.y} }

// Trace routes edge e across g's cell map, trying the straight, single-bend, then A* strategies
// in order and committing the first that succeeds. Nodes must already be placed (internal/place).
func Trace(g *model.Graph, e *model.Edge) error {
	starts := e.From.NearPlaces(e.StartPort())
	stops := e.To.NearPlaces(e.EndPort())

	multiCell := e.From.CX > 1 || e.From.CY > 1 || e.To.CX > 1 || e.To.CY > 1
	hasPortHints := e.StartPort() != "" || e.EndPort() != ""

	if !multiCell && !hasPortHints {
		if path, ok := tryStraight(g, starts, stops); ok {
			commit(g, e, path, starts, stops)
			return nil
		}
		if path, ok := tryBend(g, starts, stops); ok {
			commit(g, e, path, starts, stops)
			return nil
		}
	}

	path, ok := aStar(g, starts, stops)
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrNoPath, e.From.ID, e.To.ID)
	}
	commit(g, e, path, starts, stops)
	return nil
}

// tryStraight implements §4.5's straight-path strategy: endpoints sharing a row or column, walked
// one cell at a time, aborting as soon as an occupied cell is found. Only facing pairs qualify (the
// stop lies on the side of its node opposite the start's side, in the start's direction); when
// both are the same cell, that single cell is the path.
func tryStraight(g *model.Graph, starts, stops []model.Place) ([]point, bool) {
	for _, s := range starts {
		for _, d := range stops {
			if s.X != d.X && s.Y != d.Y {
				continue
			}
			if d.Side != opposite(s.Side) {
				continue
			}
			if s.X == d.X && s.Y == d.Y {
				if path := []point{{s.X, s.Y}}; allFree(g, path) {
					return path, true
				}
				continue
			}
			if sideOf(point{sign(d.X - s.X), sign(d.Y - s.Y)}) != s.Side {
				continue
			}
			path := walkStraight(s, d)
			if path == nil {
				continue
			}
			if allFree(g, path) {
				return path, true
			}
		}
	}
	return nil, false
}

func walkStraight(s, d model.Place) []point {
	if s.X == d.X && s.Y == d.Y {
		return nil
	}
	dx, dy := sign(d.X-s.X), sign(d.Y-s.Y)
	var path []point
	x, y := s.X, s.Y
	for {
		path = append(path, point{x, y})
		if x == d.X && y == d.Y {
			return path
		}
		x += dx
		y += dy
	}
}

// tryBend implements §4.5's single-bend strategy: horizontal-then-vertical and
// vertical-then-horizontal L-shapes, tried in that order.
func tryBend(g *model.Graph, starts, stops []model.Place) ([]point, bool) {
	for _, s := range starts {
		for _, d := range stops {
			if s.X == d.X || s.Y == d.Y {
				continue
			}
			if path := lShape(s.X, s.Y, d.X, d.Y, true); allFree(g, path) {
				return path, true
			}
			if path := lShape(s.X, s.Y, d.X, d.Y, false); allFree(g, path) {
				return path, true
			}
		}
	}
	return nil, false
}

// lShape builds the path from (sx,sy) to (dx,dy) that goes horizontal-then-vertical when
// horizontalFirst is true, vertical-then-horizontal otherwise. The corner point is included once.
func lShape(sx, sy, dx, dy int, horizontalFirst bool) []point {
	var path []point
	if horizontalFirst {
		for x := sx; x != dx; x += sign(dx - sx) {
			path = append(path, point{x, sy})
		}
		for y := sy; y != dy; y += sign(dy - sy) {
			path = append(path, point{dx, y})
		}
		path = append(path, point{dx, dy})
	} else {
		for y := sy; y != dy; y += sign(dy - sy) {
			path = append(path, point{sx, y})
		}
		for x := sx; x != dx; x += sign(dx - sx) {
			path = append(path, point{x, dy})
		}
		path = append(path, point{dx, dy})
	}
	return path
}

func allFree(g *model.Graph, path []point) bool {
	for _, p := range path {
		if _, occupied := g.Cells[p.toModel()]; occupied {
			return false
		}
	}
	return true
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
