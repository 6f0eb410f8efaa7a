// Package place is the layout driver: it pops actions off the chain action stack and invokes
// placeNode for every not-yet-placed node, per SPEC_FULL.md §4.4.
package place

import (
	"github.com/boxdraw/boxdraw/internal/chain"
	"github.com/boxdraw/boxdraw/internal/model"
)

// Driver tracks, per rank, the next free row (east/west flow) or column (north/south flow)
// pointer described in §4.4. Exported so the root package's Layout can interleave node placement
// with edge routing in a single pass over the chain action stack, rather than placing every node
// before routing any edge.
type Driver struct {
	g        *model.Graph
	pointers map[int]int // rank -> next free row/column pointer
	placed   map[*model.Node]bool
}

// NewDriver creates a placement driver over g. Ranks must already be assigned (internal/rank).
func NewDriver(g *model.Graph) *Driver {
	return &Driver{g: g, pointers: make(map[int]int), placed: make(map[*model.Node]bool)}
}

// Place positions n if it has not already been placed; otherwise it is a no-op, making repeated
// calls from an action-stack walk (where the same node may appear once per incident action) safe.
func (d *Driver) Place(n *model.Node) {
	if d.placed[n] {
		return
	}
	d.placeNode(n)
}

// PlaceRemaining positions every node d has not yet placed, in construction order. Used to cover
// nodes with no incident edges at all, which the chain action stack never mentions.
func (d *Driver) PlaceRemaining() {
	for _, n := range d.g.Nodes {
		d.Place(n)
	}
}

// Run places every node reachable from actions onto g.Cells, mutating each node's X/Y/CX/CY and
// marking its rectangle in the cell map. Ranks must already be assigned (internal/rank) and
// actions must already be built (internal/chain). It positions nodes only and routes no edges;
// the root package's Layout does not call it, and instead drives a Driver itself so that it can
// route each TRACE/SELFLOOP action as it reaches it.
func Run(g *model.Graph, actions []chain.Action) {
	d := NewDriver(g)
	for _, act := range actions {
		if act.Node != nil {
			d.Place(act.Node)
		}
	}
	// Any node the action stack never reached (fully isolated, with no edges at all) still needs
	// a position; place the stragglers in node-construction order.
	d.PlaceRemaining()
}

// placeNode implements §4.4's placeNode: rank maps to the axis the flow runs along, the
// perpendicular axis is swept by a per-rank pointer that always advances, and cells are marked
// with the anchor Node plus NodeCell placeholders for the remainder of its rectangle.
func (d *Driver) placeNode(n *model.Node) {
	absRank := n.Rank
	if absRank < 0 {
		absRank = -absRank
	}
	along := (absRank - 1) * 2

	flow := n.Flow()
	if flow == model.FlowWest || flow == model.FlowNorth {
		along = -along
	}
	horizontal := flow == model.FlowEast || flow == model.FlowWest

	var x, y int
	if horizontal {
		x = along
		y = d.findFreeSlot(n.Rank, func(candidate int) (int, int, int, int) {
			return x, candidate, x + n.CX - 1, candidate + n.CY - 1
		})
		d.pointers[n.Rank] = y + n.CY + 1
	} else {
		y = along
		x = d.findFreeSlot(n.Rank, func(candidate int) (int, int, int, int) {
			return candidate, y, candidate + n.CX - 1, y + n.CY - 1
		})
		d.pointers[n.Rank] = x + n.CX + 1
	}

	n.X, n.Y = x, y
	d.mark(n)
	d.placed[n] = true
}

// findFreeSlot returns the smallest pointer value (starting from the rank's current pointer) for
// which rectOf(candidate) does not overlap any already-placed cell.
func (d *Driver) findFreeSlot(rank int, rectOf func(candidate int) (x1, y1, x2, y2 int)) int {
	candidate := d.pointers[rank]
	for {
		if d.rectFree(rectOf(candidate)) {
			return candidate
		}
		candidate++
	}
}

func (d *Driver) rectFree(x1, y1, x2, y2 int) bool {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if _, occupied := d.g.Cells[model.Point{X: x, Y: y}]; occupied {
				return false
			}
		}
	}
	return true
}

func (d *Driver) mark(n *model.Node) {
	x1, y1, x2, y2 := n.Rect()
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			p := model.Point{X: x, Y: y}
			if x == n.X && y == n.Y {
				d.g.Cells[p] = n
			} else {
				d.g.Cells[p] = &model.NodeCell{Node: n}
			}
		}
	}
}
