package boxdraw

import (
	"strconv"

	"github.com/boxdraw/boxdraw/internal/chain"
	"github.com/boxdraw/boxdraw/internal/grow"
	"github.com/boxdraw/boxdraw/internal/groupfill"
	"github.com/boxdraw/boxdraw/internal/model"
	"github.com/boxdraw/boxdraw/internal/place"
	"github.com/boxdraw/boxdraw/internal/raster"
	"github.com/boxdraw/boxdraw/internal/rank"
	"github.com/boxdraw/boxdraw/internal/route"
)

// Kind selects which default-attribute table SetDefaultAttributes/SetClassAttributes targets.
type Kind = model.Kind

const (
	KindNode  = model.KindNode
	KindEdge  = model.KindEdge
	KindGroup = model.KindGroup
)

// Graph is a directed graph of Nodes and Edges, optionally organized into nested Groups, per
// SPEC_FULL.md §6's graph construction API.
type Graph struct {
	g    *model.Graph
	wrap string // graph-level label wrap width; "" means the length-derived default
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{g: model.New()}
}

// AddNode returns the node with the given id, creating it if it does not yet exist.
func (g *Graph) AddNode(id string) *Node {
	return &Node{n: g.g.AddNode(id)}
}

// Node looks up a node by id without creating it.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.g.Node(id)
	if !ok {
		return nil, false
	}
	return &Node{n: n}, true
}

// AddEdge creates a directed edge from "from" to "to". leftOp and rightOp are the raw operator
// tokens (e.g. "-", "->", "<..", "==") whose characters encode line style and directionality, per
// SPEC_FULL.md §6.
func (g *Graph) AddEdge(from, to *Node, leftOp, rightOp, label string) *Edge {
	return &Edge{e: g.g.AddEdge(from.n, to.n, leftOp, rightOp, label)}
}

// AddGroup registers grp (built with NewGroup) as a top-level group of g. Use a Group's own
// AddGroup instead to nest grp under another group rather than placing it at the top level.
func (g *Graph) AddGroup(grp *Group) {
	g.g.AddGroup(grp.g)
}

// SetGraphAttributes merges attrs into the graph-level attribute map.
func (g *Graph) SetGraphAttributes(attrs map[string]string) {
	g.g.SetGraphAttributes(attrs)
}

// SetDefaultAttributes merges attrs into the unqualified default table for kind.
func (g *Graph) SetDefaultAttributes(kind Kind, attrs map[string]string) {
	g.g.SetDefaultAttributes(kind, attrs)
}

// SetClassAttributes merges attrs into the named class's default table for kind.
func (g *Graph) SetClassAttributes(kind Kind, class string, attrs map[string]string) {
	g.g.SetClassAttributes(kind, class, attrs)
}

// Layout runs node sizing, rank assignment, chain-based placement, edge routing, and group cell
// fill, populating the internal cell map consulted by AsAscii. It is idempotent: calling it again
// on a Graph that has already been laid out is a no-op.
//
// Node placement and edge routing are interleaved in a single pass over the chain action stack
// (rather than placing every node before routing any edge), so a branch or merge edge is routed
// against a grid where only the chains placed so far are present, matching §4.3's per-chain
// ordering.
func (g *Graph) Layout() error {
	if g.g.LaidOut {
		return nil
	}

	for _, n := range g.g.Nodes {
		grow.Node(n)
	}
	rank.Assign(g.g)

	actions := chain.Build(g.g)
	d := place.NewDriver(g.g)
	for _, act := range actions {
		if act.Node != nil {
			d.Place(act.Node)
		}
		switch act.Kind {
		case chain.ActionTrace:
			if err := route.Trace(g.g, act.Edge); err != nil {
				return err
			}
		case chain.ActionSelfLoop:
			if err := route.SelfLoop(g.g, act.Edge); err != nil {
				return err
			}
		}
	}
	d.PlaceRemaining()

	groupfill.Run(g.g)

	g.g.LaidOut = true
	return nil
}

// AsAscii runs Layout if the graph has not yet been laid out, then returns the rendered drawing,
// terminated by a single trailing newline.
func (g *Graph) AsAscii() (string, error) {
	if err := g.Layout(); err != nil {
		return "", err
	}
	if g.wrap == "" {
		return raster.Render(g.g), nil
	}
	return raster.RenderWithWrap(g.g, g.wrap), nil
}

// SetLabelWrap fixes the wrap width used for the graph-level label to cols columns, overriding the
// length-derived default. cmd/boxdraw's "-fit-terminal" flag uses this to wrap the graph label to
// the controlling terminal's width.
func (g *Graph) SetLabelWrap(cols int) {
	g.wrap = strconv.Itoa(cols)
}
