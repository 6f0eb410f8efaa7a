package boxdraw

import "github.com/boxdraw/boxdraw/internal/model"

// Node is a vertex of a Graph.
type Node struct {
	n *model.Node
}

// ID returns the node's identifier, as passed to Graph.AddNode.
func (n *Node) ID() string { return n.n.ID }

// SetAttr sets a single attribute on the node, merging with any already set.
func (n *Node) SetAttr(key, value string) { n.n.Attrs[key] = value }

// SetAttrs merges attrs into the node's own attribute map.
func (n *Node) SetAttrs(attrs map[string]string) {
	for k, v := range attrs {
		n.n.Attrs[k] = v
	}
}

// Label returns the node's resolved label, defaulting to its id.
func (n *Node) Label() string { return n.n.Label() }
