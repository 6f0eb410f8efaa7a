package model

// Edge is a directed connection between two nodes. Bidirectional and Undirected are mutually
// exclusive flags derived from its operator tokens at construction time (see Graph.AddEdge);
// when both are false the edge is a plain directed edge drawn with an arrow at To only.
type Edge struct {
	ID            int
	From, To      *Node
	Attrs         Attrs
	Bidirectional bool
	Undirected    bool
	LeftOp        string
	RightOp       string

	graph *Graph

	// Cells is the ordered list of grid cells this edge's routed path occupies, populated by
	// internal/route. The order matches the path from From to To.
	Cells []*EdgeCell
}

// NumID returns the monotonic id assigned at construction time.
func (e *Edge) NumID() int { return e.ID }

// Resolve looks up key using the edge attribute resolution order: the edge's own attributes, its
// class defaults, the graph-level edge defaults, then builtin. Edges do not belong to groups, so
// there is no group chain step (unlike Node.Resolve).
func (e *Edge) Resolve(key, builtin string) string {
	if v, ok := e.Attrs[key]; ok {
		return v
	}
	if class, ok := e.Attrs["class"]; ok {
		if v, ok := e.graph.EdgeDefaults[class][key]; ok {
			return v
		}
	}
	if v, ok := e.graph.EdgeDefaults[""][key]; ok {
		return v
	}
	return builtin
}

// Style returns the resolved line style, following the same own → class → graph defaults order
// as Resolve, but inferring from the edge's operator tokens instead of a builtin constant when
// none of those set a "style".
func (e *Edge) Style() string {
	if v, ok := e.Attrs["style"]; ok {
		return NormalizeBorderStyle(v)
	}
	if class, ok := e.Attrs["class"]; ok {
		if v, ok := e.graph.EdgeDefaults[class]["style"]; ok {
			return NormalizeBorderStyle(v)
		}
	}
	if v, ok := e.graph.EdgeDefaults[""]["style"]; ok {
		return NormalizeBorderStyle(v)
	}
	return NormalizeBorderStyle(InferEdgeStyle(e.LeftOp, e.RightOp))
}

// Label returns the resolved "label" attribute, or "" if unset.
func (e *Edge) Label() string { return e.Resolve("label", "") }

// StartPort returns the resolved, unparsed "start" port hint, or "" if unset.
func (e *Edge) StartPort() string { return e.Resolve("start", "") }

// EndPort returns the resolved, unparsed "end" port hint, or "" if unset.
func (e *Edge) EndPort() string { return e.Resolve("end", "") }
