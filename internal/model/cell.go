package model

import (
	"fmt"
	"sort"

	"github.com/boxdraw/boxdraw/internal/celltype"
)

// Point is a grid coordinate. It is the key type of CellMap, equivalent to the "x,y" string key
// described in SPEC_FULL.md §3.
type Point struct {
	X, Y int
}

// Key returns the "x,y" string form of p, matching the spec's description of the cell map key.
func (p Point) Key() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

func (p Point) String() string { return p.Key() }

// Cell is the tagged sum of everything that can occupy a grid coordinate: the anchor *Node
// itself, a NodeCell placeholder, an EdgeCell, an EdgeCellEmpty placeholder, or a GroupCell.
type Cell interface {
	isCell()
}

func (n *Node) isCell() {}

// NodeCell is a placeholder occupying a non-anchor cell of a multi-cell node.
type NodeCell struct {
	Node *Node
}

func (c *NodeCell) isCell() {}

// EdgeCell is one segment of a routed edge. Edge is the cell's owning (primary) edge; Crossing
// holds the other edge(s) this cell also carries when the base type is CROSS, per SPEC_FULL.md
// §4.5 "Committing a path".
type EdgeCell struct {
	Edge     *Edge
	Crossing []*Edge
	Type     celltype.Type
}

func (c *EdgeCell) isCell() {}

// EdgeCellEmpty is a placeholder cell type for an edge. No layout pass inserts one: group-fill
// splicing (SPEC_FULL.md §4.6 step 2) fills gaps with ordinary HOR/VER EdgeCells.
type EdgeCellEmpty struct {
	Edge *Edge
}

func (c *EdgeCellEmpty) isCell() {}

// GroupCell marks a coordinate as belonging to, or bordering, a group. Class is the side-token
// string computed in SPEC_FULL.md §4.6 step 6 (e.g. " gt", " gr gb", " ga"). Label marks the
// cell chosen to carry the group's label (§4.7).
type GroupCell struct {
	Group *Group
	Class string
	Label bool
}

func (c *GroupCell) isCell() {}

// CellMap is the post-layout grid, keyed by coordinate. Each (x,y) holds at most one cell
// (SPEC_FULL.md §3 invariant).
type CellMap map[Point]Cell

// SortedPoints returns the coordinates of m in row-major order (y ascending, then x ascending),
// matching "sorted key order" as used by SPEC_FULL.md §4.7 (group label selection) and §4.8
// (prepareLayout, edge/node drawing).
func SortedPoints(m CellMap) []Point {
	pts := make([]Point, 0, len(m))
	for p := range m {
		pts = append(pts, p)
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].Y != pts[j].Y {
			return pts[i].Y < pts[j].Y
		}
		return pts[i].X < pts[j].X
	})
	return pts
}

// Bounds returns the tight bounding box (minX, minY, maxX, maxY) of all cells in m. If m is empty
// it returns all zeros.
func Bounds(m CellMap) (minX, minY, maxX, maxY int) {
	first := true
	for p := range m {
		if first {
			minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
			first = false
			continue
		}
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return
}
