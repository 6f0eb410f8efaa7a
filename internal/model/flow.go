package model

import (
	"strconv"
	"strings"

	"github.com/boxdraw/boxdraw/internal/celltype"
)

// Flow constants, expressed in degrees as used throughout SPEC_FULL.md §6.
const (
	FlowNorth = 0
	FlowEast  = 90
	FlowSouth = 180
	FlowWest  = 270
)

// ParseAbsoluteFlow parses an absolute flow value per SPEC_FULL.md §6: the named directions
// east/right/forward/front, west/left/back, north/up, south/down, or a bare numeric degree value
// (normalized into [0,360)).
func ParseAbsoluteFlow(s string) (int, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "east", "right", "forward", "front":
		return FlowEast, true
	case "west", "left", "back":
		return FlowWest, true
	case "north", "up":
		return FlowNorth, true
	case "south", "down":
		return FlowSouth, true
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return normalizeDegrees(n), true
	}
	return 0, false
}

// ParseRelativeFlow parses a relative flow value (forward/left/right/back) and applies it to
// incoming (an absolute flow in degrees), per SPEC_FULL.md §6.
func ParseRelativeFlow(s string, incoming int) (int, bool) {
	var delta int
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forward":
		delta = 0
	case "left":
		delta = -90
	case "right":
		delta = 90
	case "back":
		delta = 180
	default:
		return 0, false
	}
	return normalizeDegrees(incoming + delta), true
}

func normalizeDegrees(n int) int {
	n %= 360
	if n < 0 {
		n += 360
	}
	return n
}

// Flow returns the graph's resolved flow direction in degrees, defaulting to east (90), which is
// graph-easy's traditional default "flow right".
func (g *Graph) Flow() int {
	v, ok := g.Attrs["flow"]
	if !ok {
		return FlowEast
	}
	if f, ok := ParseAbsoluteFlow(v); ok {
		return f
	}
	return FlowEast
}

// Root returns the graph's "root" attribute (a node id) and whether it was set.
func (g *Graph) Root() (string, bool) {
	v, ok := g.Attrs["root"]
	return v, ok
}

// Label returns the graph's resolved "label" attribute, or "" if unset.
func (g *Graph) Label() string { return g.Attrs["label"] }

// LabelPos returns the graph's resolved "labelpos" attribute, defaulting to "top".
func (g *Graph) LabelPos() string {
	v, ok := g.Attrs["labelpos"]
	if !ok || (v != "top" && v != "bottom") {
		return "top"
	}
	return v
}

// ParsePortWithFlow is like ParsePort but additionally recognizes the relative direction names
// front/forward, back, left, and right, resolving them against flow (an absolute direction in
// degrees, typically the owning node's Flow()), per SPEC_FULL.md §4.1's port hints.
func ParsePortWithFlow(s string, flow int) (side celltype.Side, pos int, hasSide, hasPos bool) {
	if side, pos, hasSide, hasPos := ParsePort(s); hasSide {
		return side, pos, hasSide, hasPos
	}

	s = strings.TrimSpace(s)
	part := s
	posStr := ""
	if i := strings.IndexByte(s, ','); i >= 0 {
		part = s[:i]
		posStr = s[i+1:]
	}

	var delta int
	switch strings.ToLower(strings.TrimSpace(part)) {
	case "front", "forward":
		delta = 0
	case "back":
		delta = 180
	case "left":
		delta = -90
	case "right":
		delta = 90
	default:
		return 0, 0, false, false
	}

	deg := normalizeDegrees(flow + delta)
	side = SideFromDegrees(deg)
	if p, err := strconv.Atoi(strings.TrimSpace(posStr)); err == nil {
		pos = p
		hasPos = true
	}
	return side, pos, true, hasPos
}

// SideFromDegrees maps an absolute flow direction in degrees (0/90/180/270) to the Side an edge
// would exit through when following that flow.
func SideFromDegrees(deg int) celltype.Side {
	switch normalizeDegrees(deg) {
	case FlowEast:
		return celltype.East
	case FlowSouth:
		return celltype.South
	case FlowWest:
		return celltype.West
	default:
		return celltype.North
	}
}

// Flow resolves a node's own "flow" attribute against the graph's flow, applying relative
// flow values (forward/left/right/back) on top of the incoming flow, per SPEC_FULL.md §6.
func (n *Node) Flow() int {
	v, ok := n.Attrs["flow"]
	if !ok {
		return n.graph.Flow()
	}
	if f, ok := ParseAbsoluteFlow(v); ok {
		return f
	}
	if f, ok := ParseRelativeFlow(v, n.graph.Flow()); ok {
		return f
	}
	return n.graph.Flow()
}
