package model

import (
	"sort"
	"strconv"
	"strings"

	"github.com/boxdraw/boxdraw/internal/celltype"
)

// Node is a vertex of a Graph. It carries both its declarative attributes and the layout fields
// the placement driver and rasterizer fill in.
type Node struct {
	ID    string
	Attrs Attrs

	graph *Graph
	group *Group
	numID int

	// Layout fields, populated by internal/place and internal/grow.
	X, Y   int // grid coordinates of the anchor cell
	CX, CY int // cell extent, always >= 1
	W, H   int // rendered pixel extent, populated by internal/raster
	Rank   int // signed rank; negative means auto-assigned, positive means user-specified

	// Relative-placement fields.
	Origin   *Node
	DX, DY   int
	Children map[string]*Node

	Edges map[int]*Edge // incident edges keyed by edge id
}

// NumID returns the monotonic id assigned at construction time, used for stable ordering.
func (n *Node) NumID() int { return n.numID }

// Group returns the innermost group this node belongs to, or nil.
func (n *Node) Group() *Group { return n.group }

// Resolve looks up key using the node attribute resolution order from SPEC_FULL.md §4.9: the
// node's own attributes, its class defaults, the enclosing group chain (nearest first), the
// graph-level node defaults, then builtin.
func (n *Node) Resolve(key, builtin string) string {
	if v, ok := n.Attrs[key]; ok {
		return v
	}
	if class, ok := n.Attrs["class"]; ok {
		if v, ok := n.graph.NodeDefaults[class][key]; ok {
			return v
		}
	}
	for grp := n.group; grp != nil; grp = grp.Parent {
		if v, ok := grp.Attrs[key]; ok {
			return v
		}
		if class, ok := grp.Attrs["class"]; ok {
			if v, ok := n.graph.GroupDefaults[class][key]; ok {
				return v
			}
		}
	}
	if v, ok := n.graph.NodeDefaults[""][key]; ok {
		return v
	}
	return builtin
}

// Shape returns the resolved "shape" attribute, defaulting to "box".
func (n *Node) Shape() string { return NormalizeShape(n.Resolve("shape", "box")) }

// BorderStyle returns the resolved "borderstyle" attribute, defaulting to "solid".
func (n *Node) BorderStyle() string { return NormalizeBorderStyle(n.Resolve("borderstyle", "solid")) }

// Label returns the resolved "label" attribute, defaulting to the node's id.
func (n *Node) Label() string {
	if v, ok := n.Attrs["label"]; ok {
		return v
	}
	return n.ID
}

// Align returns the resolved "align" attribute, defaulting to "center".
func (n *Node) Align() string { return n.Resolve("align", "center") }

// IsSink reports whether the node has no outgoing edges and no relative-placement children or
// origin, per SPEC_FULL.md §4.1 step 7: such nodes are sinks and may collapse their "front" side.
func (n *Node) IsSink() bool {
	if n.Origin != nil || len(n.Children) > 0 {
		return false
	}
	for _, e := range n.Edges {
		if e.From == n {
			return false
		}
	}
	return true
}

// SortedEdges returns the node's incident edges ordered by their construction-time id, giving
// algorithm packages a deterministic iteration order over what is otherwise a map.
func (n *Node) SortedEdges() []*Edge {
	edges := make([]*Edge, 0, len(n.Edges))
	for _, e := range n.Edges {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].ID < edges[j].ID })
	return edges
}

// Rect returns the node's grid rectangle as (x1, y1, x2, y2) inclusive.
func (n *Node) Rect() (x1, y1, x2, y2 int) {
	return n.X, n.Y, n.X + n.CX - 1, n.Y + n.CY - 1
}

// Place is one cell adjacent to a node's rectangle, annotated with the side it was reached from.
type Place struct {
	X, Y int
	Side celltype.Side
	// Interior is the cell just inside the rectangle from which Place was stepped, used to infer
	// the corner shape of a path's terminal cell.
	InteriorX, InteriorY int
}

// NearPlaces returns the grid squares immediately adjacent to the node's rectangle in each of the
// four directions, per SPEC_FULL.md §4.5 "Start set"/"Stop set". If portHint is non-empty it is
// parsed as "side[,position]" (see ParsePort) and only the matching side's places are returned;
// an empty or unparseable hint returns every adjacent cell of all four sides, in north, east,
// south, west order.
func (n *Node) NearPlaces(portHint string) []Place {
	x1, y1, x2, y2 := n.Rect()
	side, pos, hasSide, hasPos := ParsePort(portHint)

	var places []Place
	addSide := func(s celltype.Side) {
		switch s {
		case celltype.North:
			for x := x1; x <= x2; x++ {
				if !hasPos || portCellMatches(x-x1, n.CX, pos) {
					places = append(places, Place{X: x, Y: y1 - 1, Side: celltype.North, InteriorX: x, InteriorY: y1})
				}
			}
		case celltype.South:
			for x := x1; x <= x2; x++ {
				if !hasPos || portCellMatches(x-x1, n.CX, pos) {
					places = append(places, Place{X: x, Y: y2 + 1, Side: celltype.South, InteriorX: x, InteriorY: y2})
				}
			}
		case celltype.West:
			for y := y1; y <= y2; y++ {
				if !hasPos || portCellMatches(y-y1, n.CY, pos) {
					places = append(places, Place{X: x1 - 1, Y: y, Side: celltype.West, InteriorX: x1, InteriorY: y})
				}
			}
		case celltype.East:
			for y := y1; y <= y2; y++ {
				if !hasPos || portCellMatches(y-y1, n.CY, pos) {
					places = append(places, Place{X: x2 + 1, Y: y, Side: celltype.East, InteriorX: x2, InteriorY: y})
				}
			}
		}
	}

	if hasSide {
		addSide(side)
		return places
	}
	addSide(celltype.North)
	addSide(celltype.East)
	addSide(celltype.South)
	addSide(celltype.West)
	return places
}

// portCellMatches reports whether the i'th of n cells along a side is the one named by pos, where
// negative pos counts from the far end (SPEC_FULL.md §4.1 step 2).
func portCellMatches(i, n, pos int) bool {
	if pos < 0 {
		pos = n + pos
	}
	return i == pos
}

// ParsePort parses a port hint of the form "side" or "side,position" into its side and optional
// position. side may be north/south/east/west. Returns hasSide=false if s does not name a side.
func ParsePort(s string) (side celltype.Side, pos int, hasSide, hasPos bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, false, false
	}
	part := s
	if i := strings.IndexByte(s, ','); i >= 0 {
		part = s[:i]
		if p, err := strconv.Atoi(strings.TrimSpace(s[i+1:])); err == nil {
			pos = p
			hasPos = true
		}
	}
	switch strings.ToLower(part) {
	case "north":
		return celltype.North, pos, true, hasPos
	case "south":
		return celltype.South, pos, true, hasPos
	case "east":
		return celltype.East, pos, true, hasPos
	case "west":
		return celltype.West, pos, true, hasPos
	default:
		return 0, 0, false, false
	}
}

// NormalizeShape maps an unknown shape name to "box" per SPEC_FULL.md §7 (unknown structural
// values fall back to a safe default rather than failing the render).
func NormalizeShape(s string) string {
	switch s {
	case "box", "rect", "rounded", "circle", "ellipse", "diamond", "point", "edge", "none", "invisible":
		return s
	default:
		return "box"
	}
}

// NormalizeBorderStyle maps an unknown border style name to "solid" per SPEC_FULL.md §7.
func NormalizeBorderStyle(s string) string {
	switch s {
	case "solid", "dotted", "dashed", "double", "double-dash", "bold", "bold-dash",
		"broad", "wide", "wave", "dot-dash", "dot-dot-dash", "none":
		return s
	default:
		return "solid"
	}
}
