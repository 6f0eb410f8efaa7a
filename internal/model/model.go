// Package model implements the graph/node/edge/group data model described in SPEC_FULL.md §3: an
// arena of nodes and edges addressed by a monotonic id, attribute maps with a deterministic
// resolution order, and the post-layout cell map keyed by grid coordinate.
//
// model holds data only. The layout and rasterization algorithms that mutate and read a Graph
// live in sibling internal packages (grow, rank, chain, route, place, groupfill, raster); model
// never imports them, which is what lets the root boxdraw package import both without a cycle.
package model

// Graph is a container of nodes, edges, and groups, plus graph-level and per-class default
// attributes. Node and edge ids are assigned from a single monotonic counter shared by both.
type Graph struct {
	Nodes    []*Node
	nodeByID map[string]*Node
	Edges    []*Edge
	Groups   []*Group // top-level groups only; nested groups are reached via Group.Groups

	NodeDefaults  map[string]Attrs // class name ("" = unqualified default) -> attributes
	EdgeDefaults  map[string]Attrs
	GroupDefaults map[string]Attrs
	Attrs         Attrs

	nextID int

	Cells   CellMap
	LaidOut bool
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		nodeByID:      make(map[string]*Node),
		NodeDefaults:  make(map[string]Attrs),
		EdgeDefaults:  make(map[string]Attrs),
		GroupDefaults: make(map[string]Attrs),
		Attrs:         make(Attrs),
		Cells:         make(CellMap),
	}
}

// AddNode returns the node with the given id, creating it if it does not yet exist. Idempotent on
// id, per SPEC_FULL.md §6.
func (g *Graph) AddNode(id string) *Node {
	if n, ok := g.nodeByID[id]; ok {
		return n
	}
	n := &Node{
		ID:       id,
		graph:    g,
		numID:    g.nextID,
		Attrs:    make(Attrs),
		Children: make(map[string]*Node),
		Edges:    make(map[int]*Edge),
		CX:       1,
		CY:       1,
	}
	g.nextID++
	g.nodeByID[id] = n
	g.Nodes = append(g.Nodes, n)
	return n
}

// Node looks up a node by id without creating it.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodeByID[id]
	return n, ok
}

// AddEdge creates a new directed edge from "from" to "to". leftOp and rightOp are the raw
// operator tokens (e.g. "-", "->", "<..", "==") whose characters encode line style and
// directionality per SPEC_FULL.md §6: arrows on both sides make the edge bidirectional, arrows on
// neither make it undirected, and an arrow on the left operator only reverses from/to.
func (g *Graph) AddEdge(from, to *Node, leftOp, rightOp, label string) *Edge {
	hasLeft := hasArrow(leftOp)
	hasRight := hasArrow(rightOp)

	e := &Edge{
		ID:            g.nextID,
		From:          from,
		To:            to,
		Bidirectional: hasLeft && hasRight,
		Undirected:    !hasLeft && !hasRight,
		LeftOp:        leftOp,
		RightOp:       rightOp,
		graph:         g,
		Attrs:         make(Attrs),
	}
	if hasLeft && !hasRight {
		e.From, e.To = to, from
	}
	if label != "" {
		e.Attrs["label"] = label
	}
	g.nextID++
	g.Edges = append(g.Edges, e)
	from.Edges[e.ID] = e
	to.Edges[e.ID] = e
	return e
}

// AddGroup registers g2 as a top-level group of g.
func (g *Graph) AddGroup(g2 *Group) {
	g2.graph = g
	g.Groups = append(g.Groups, g2)
}

// SetGraphAttributes merges attrs into the graph-level attribute map.
func (g *Graph) SetGraphAttributes(attrs map[string]string) {
	for k, v := range attrs {
		g.Attrs[k] = v
	}
}

// Kind identifies which default-attribute table setDefaultAttributes/setClassAttributes targets.
type Kind int

const (
	KindNode Kind = iota
	KindEdge
	KindGroup
)

func (g *Graph) defaults(k Kind) map[string]Attrs {
	switch k {
	case KindNode:
		return g.NodeDefaults
	case KindEdge:
		return g.EdgeDefaults
	case KindGroup:
		return g.GroupDefaults
	default:
		panic("model: unknown Kind")
	}
}

// SetDefaultAttributes merges attrs into the unqualified (class-less) default table for kind.
func (g *Graph) SetDefaultAttributes(k Kind, attrs map[string]string) {
	g.setClassAttributes(k, "", attrs)
}

// SetClassAttributes merges attrs into the named class's default table for kind.
func (g *Graph) SetClassAttributes(k Kind, class string, attrs map[string]string) {
	g.setClassAttributes(k, class, attrs)
}

func (g *Graph) setClassAttributes(k Kind, class string, attrs map[string]string) {
	defs := g.defaults(k)
	m, ok := defs[class]
	if !ok {
		m = make(Attrs)
		defs[class] = m
	}
	for key, v := range attrs {
		m[key] = v
	}
}

// NewID returns the next unused monotonic id without assigning it to any entity. Used by layout
// code that needs to synthesize a Group-owned identity (e.g. synthetic edge cells) while
// preserving the "ids are assigned once, in construction order" discipline described in
// SPEC_FULL.md §9.
func (g *Graph) NewID() int {
	id := g.nextID
	g.nextID++
	return id
}

func hasArrow(op string) bool {
	for _, r := range op {
		if r == '<' || r == '>' {
			return true
		}
	}
	return false
}

func stripArrows(op string) string {
	out := make([]rune, 0, len(op))
	for _, r := range op {
		if r != '<' && r != '>' {
			out = append(out, r)
		}
	}
	return string(out)
}

// InferEdgeStyle infers the line style keyword from the concatenation of an edge's left and
// right operator tokens with arrowheads stripped, per SPEC_FULL.md §6's operator encoding table.
func InferEdgeStyle(leftOp, rightOp string) string {
	switch stripArrows(leftOp) + stripArrows(rightOp) {
	case "~~":
		return "wave"
	case "..-":
		return "dot-dot-dash"
	case ".-":
		return "dot-dash"
	case "..":
		return "dotted"
	case "= ":
		return "double-dash"
	case "- ":
		return "dashed"
	case "==":
		return "double"
	case "=":
		return "double-dash"
	case "--":
		return "solid"
	case "-":
		return "solid"
	default:
		return "solid"
	}
}
