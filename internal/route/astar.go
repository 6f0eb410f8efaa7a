package route

import (
	"container/heap"

	"github.com/boxdraw/boxdraw/internal/celltype"
	"github.com/boxdraw/boxdraw/internal/model"
)

// aStar implements §4.5's "A* details": Manhattan-plus-diagonal-penalty heuristic, a five-cell
// padded bounding-box neighbor restriction, crossable HOR/VER occupants, and the astarModifier
// step cost (base +1, +30 to cross an edge, +6 to bend).
func aStar(g *model.Graph, starts, stops []model.Place) ([]point, bool) {
	if len(starts) == 0 || len(stops) == 0 {
		return nil, false
	}

	stopSet := make(map[point]bool, len(stops))
	for _, d := range stops {
		stopSet[point{d.X, d.Y}] = true
	}

	minX, minY, maxX, maxY := boundingBox(g, starts, stops)

	open := &frontier{}
	heap.Init(open)
	gScore := make(map[point]int)
	cameFrom := make(map[point]point)
	cameDir := make(map[point]point) // direction of the step that reached this cell
	visited := make(map[point]bool)

	seedBias := 0.0
	for _, s := range starts {
		p := point{s.X, s.Y}
		g0 := 0
		if isCrossable(g, p) {
			g0 += 30
		}
		h := heuristic(p, stopSet)
		gScore[p] = g0
		heap.Push(open, &node{p: p, f: float64(g0+h) + seedBias})
		seedBias += 0.001
	}

	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		p := cur.p
		if visited[p] {
			continue
		}
		visited[p] = true

		if stopSet[p] {
			return reconstruct(p, cameFrom), true
		}

		for _, d := range []point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
			np := point{p.x + d.x, p.y + d.y}
			if np.x < minX || np.x > maxX || np.y < minY || np.y > maxY {
				continue
			}
			if visited[np] {
				continue
			}
			if !enterable(g, np) {
				continue
			}

			step := 1
			if isCrossable(g, np) {
				step += 30
			}
			if prevDir, ok := cameDir[p]; ok && prevDir != d {
				step += 6
			}
			ng := gScore[p] + step
			if existing, ok := gScore[np]; ok && existing <= ng {
				continue
			}
			gScore[np] = ng
			cameFrom[np] = p
			cameDir[np] = d
			h := heuristic(np, stopSet)
			heap.Push(open, &node{p: np, f: float64(ng + h)})
		}
	}
	return nil, false
}

func boundingBox(g *model.Graph, starts, stops []model.Place) (minX, minY, maxX, maxY int) {
	first := true
	consider := func(x, y int) {
		if first {
			minX, maxX, minY, maxY = x, y, x, y
			first = false
			return
		}
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	for p := range g.Cells {
		consider(p.X, p.Y)
	}
	for _, s := range starts {
		consider(s.X, s.Y)
	}
	for _, d := range stops {
		consider(d.X, d.Y)
	}
	const pad = 5
	return minX - pad, minY - pad, maxX + pad, maxY + pad
}

func heuristic(p point, stops map[point]bool) int {
	best := -1
	for d := range stops {
		dx, dy := abs(d.x-p.x), abs(d.y-p.y)
		h := dx + dy
		if dx != 0 && dy != 0 {
			h++
		}
		if best == -1 || h < best {
			best = h
		}
	}
	if best == -1 {
		return 0
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// enterable reports whether np may be entered at all: empty, or occupied by a crossable HOR/VER
// edge cell (which aStar will convert to a crossing on commit).
func enterable(g *model.Graph, p point) bool {
	cell, occupied := g.Cells[p.toModel()]
	if !occupied {
		return true
	}
	return isCrossable(g, p) && cell != nil
}

func isCrossable(g *model.Graph, p point) bool {
	cell, occupied := g.Cells[p.toModel()]
	if !occupied {
		return false
	}
	ec, ok := cell.(*model.EdgeCell)
	return ok && ec.Type.IsCrossable()
}

func reconstruct(last point, cameFrom map[point]point) []point {
	path := []point{last}
	for {
		prev, ok := cameFrom[path[0]]
		if !ok {
			break
		}
		path = append([]point{prev}, path...)
	}
	return path
}

// node is a single A* open-set entry.
type node struct {
	p     point
	f     float64
	index int
}

// frontier is the A* open set, a min-heap by f, grounded on graph/dijkstra.go's nodePQ use of
// container/heap.
type frontier []*node

func (q frontier) Len() int            { return len(q) }
func (q frontier) Less(i, j int) bool  { return q[i].f < q[j].f }
func (q frontier) Swap(i, j int)       { q[i], q[j] = q[j], q[i]; q[i].index = i; q[j].index = j }
func (q *frontier) Push(x interface{}) {
	n := x.(*node)
	n.index = len(*q)
	*q = append(*q, n)
}
func (q *frontier) Pop() interface{} {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return it
}

// classifyShape returns the base shape for a cell entered via din (direction of travel arriving
// at the cell) and left via dout (direction of travel departing the cell), per §4.5's "fixed
// table indexed by the two signed direction pairs".
func classifyShape(din, dout point) celltype.Type {
	touchIn := opposite(sideOf(din))
	touchOut := sideOf(dout)
	return classifySides(touchIn, touchOut)
}

func sideOf(d point) celltype.Side {
	switch {
	case d.y < 0:
		return celltype.North
	case d.y > 0:
		return celltype.South
	case d.x > 0:
		return celltype.East
	default:
		return celltype.West
	}
}

func opposite(s celltype.Side) celltype.Side {
	switch s {
	case celltype.North:
		return celltype.South
	case celltype.South:
		return celltype.North
	case celltype.East:
		return celltype.West
	default:
		return celltype.East
	}
}

func classifySides(a, b celltype.Side) celltype.Type {
	vert := func(s celltype.Side) bool { return s == celltype.North || s == celltype.South }
	if vert(a) && vert(b) {
		return celltype.VER
	}
	if !vert(a) && !vert(b) {
		return celltype.HOR
	}
	// One of a,b is vertical (N/S), the other horizontal (E/W).
	v, h := a, b
	if !vert(a) {
		v, h = b, a
	}
	switch {
	case v == celltype.North && h == celltype.East:
		return celltype.N_E
	case v == celltype.North && h == celltype.West:
		return celltype.N_W
	case v == celltype.South && h == celltype.East:
		return celltype.S_E
	default:
		return celltype.S_W
	}
}
