// Package grow computes the minimum cell extent (cx, cy) a node needs to expose enough ports for
// its incident edges, per SPEC_FULL.md §4.1.
package grow

import (
	"github.com/boxdraw/boxdraw/internal/celltype"
	"github.com/boxdraw/boxdraw/internal/model"
)

// sideCounts tallies, per compass side, the number of edges that asked for that side without a
// specific position (cnt), the number that claimed a specific position (portnr), and the largest
// position-derived slot requirement seen (max).
type sideCounts struct {
	cnt    [4]int
	portnr [4]int
	max    [4]int
}

// Node computes n's cell extent in place, per SPEC_FULL.md §4.1.
func Node(n *model.Node) {
	sc, unspecified := tallyPorts(n)

	if fits1x1(sc, unspecified) {
		cx := n.Attrs.GetInt("columns", 1)
		cy := n.Attrs.GetInt("rows", 1)
		if cx < 1 {
			cx = 1
		}
		if cy < 1 {
			cy = 1
		}
		n.CX, n.CY = cx, cy
		return
	}

	need := [4]int{}
	for s := celltype.North; s <= celltype.West; s++ {
		need[s] = sc.max[s]
		free := sc.max[s] - sc.portnr[s]
		delta := 2*sc.cnt[s] - free - 1
		if delta > 0 {
			need[s] += delta
		}
	}

	cx := maxInt(need[celltype.North], need[celltype.South])
	cy := maxInt(need[celltype.West], need[celltype.East])
	if cx < 1 {
		cx = 1
	}
	if cy < 1 {
		cy = 1
	}

	cx, cy = growToFit(n, sc, unspecified, cx, cy)

	n.CX, n.CY = cx, cy
}

// tallyPorts implements SPEC_FULL.md §4.1 steps 1-3: walk both endpoints of every incident edge,
// classifying each endpoint's port hint as position-restricted, side-restricted, or unspecified,
// then undo the double count that a self-loop's two endpoints produce.
func tallyPorts(n *model.Node) (sideCounts, int) {
	var sc sideCounts
	unspecified := 0
	selfLoops := 0

	for _, e := range n.Edges {
		if e.From == n && e.To == n {
			selfLoops++
		}
		if e.From == n {
			classifyEndpoint(&sc, &unspecified, e.StartPort(), n.Flow())
		}
		if e.To == n {
			classifyEndpoint(&sc, &unspecified, e.EndPort(), n.Flow())
		}
	}

	unspecified -= selfLoops
	if unspecified < 0 {
		unspecified = 0
	}
	return sc, unspecified
}

func classifyEndpoint(sc *sideCounts, unspecified *int, portHint string, flow int) {
	side, pos, hasSide, hasPos := model.ParsePortWithFlow(portHint, flow)
	if !hasSide {
		*unspecified++
		return
	}
	if hasPos {
		sc.portnr[side]++
		abs := pos
		if abs < 0 {
			abs = -abs
		}
		need := abs + 1
		if need > sc.max[side] {
			sc.max[side] = need
		}
		return
	}
	sc.cnt[side]++
}

// fits1x1 implements the §4.1 step 4 shortcut: a 1x1 node suffices when there are fewer than 4
// unrestricted edges and no port-restricted edges at all.
func fits1x1(sc sideCounts, unspecified int) bool {
	if unspecified >= 4 {
		return false
	}
	for s := celltype.North; s <= celltype.West; s++ {
		if sc.cnt[s] != 0 || sc.max[s] != 0 {
			return false
		}
	}
	return true
}

// growToFit implements §4.1 step 6: grow (cx,cy) by 2 in one dimension then the other, ordered so
// the dimension perpendicular to flow grows first, until there are enough free ports across all
// sides (excluding the front side for a sink with no outgoing edges) to satisfy unspecified.
func growToFit(n *model.Node, sc sideCounts, unspecified, cx, cy int) (int, int) {
	horizontalFlow := n.Flow() == model.FlowEast || n.Flow() == model.FlowWest
	excludeFront := n.IsSink()
	front := model.SideFromDegrees(n.Flow())

	freePorts := func(cx, cy int) int {
		sideLen := [4]int{}
		sideLen[celltype.North] = cx
		sideLen[celltype.South] = cx
		sideLen[celltype.East] = cy
		sideLen[celltype.West] = cy

		total := 0
		for s := celltype.North; s <= celltype.West; s++ {
			if excludeFront && s == front {
				continue
			}
			used := sc.portnr[s] + sc.cnt[s]
			if sc.max[s] > used {
				used = sc.max[s]
			}
			free := sideLen[s] - used
			if free > 0 {
				total += free
			}
		}
		return total
	}

	// growPerp/growParallel grow the axis perpendicular/parallel to flow by 2 cells.
	growPerp := func() {
		if horizontalFlow {
			cy += 2
		} else {
			cx += 2
		}
	}
	growParallel := func() {
		if horizontalFlow {
			cx += 2
		} else {
			cy += 2
		}
	}

	// Safety cap: bounded by the number of ports still needed, times 2 (worst case one grow step
	// per missing port), plus a constant margin. Growth always increases freePorts, so this
	// terminates long before the cap in practice; the cap only guards against a modeling bug.
	limit := unspecified*2 + 16
	for i := 0; i < limit && freePorts(cx, cy) < unspecified; i++ {
		growPerp()
		if freePorts(cx, cy) >= unspecified {
			break
		}
		growParallel()
	}

	return cx, cy
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
