package boxdraw

import "github.com/boxdraw/boxdraw/internal/model"

// Edge is a directed connection between two Nodes.
type Edge struct {
	e *model.Edge
}

// From returns the edge's source node.
func (e *Edge) From() *Node { return &Node{n: e.e.From} }

// To returns the edge's destination node.
func (e *Edge) To() *Node { return &Node{n: e.e.To} }

// SetAttr sets a single attribute on the edge, merging with any already set.
func (e *Edge) SetAttr(key, value string) { e.e.Attrs[key] = value }

// SetAttrs merges attrs into the edge's own attribute map.
func (e *Edge) SetAttrs(attrs map[string]string) {
	for k, v := range attrs {
		e.e.Attrs[k] = v
	}
}

// Label returns the edge's resolved label, or "" if unset.
func (e *Edge) Label() string { return e.e.Label() }
