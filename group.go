package boxdraw

import "github.com/boxdraw/boxdraw/internal/model"

// Group is a named collection of nodes plus nested subgroups. An anonymous group (name "")
// renders without a border by default.
type Group struct {
	g *model.Group
}

// NewGroup creates a detached group not yet attached to any Graph or parent group. Pass it to
// Graph.AddGroup to register it as a top-level group, or to another Group's AddGroup to nest it.
func NewGroup(name string) *Group {
	return &Group{g: model.NewGroup(name)}
}

// Name returns the group's name, or "" if anonymous.
func (g *Group) Name() string { return g.g.Name }

// AddNode adds n as a member of g.
func (g *Group) AddNode(n *Node) { g.g.AddNode(n.n) }

// AddGroup registers sub as a nested child of g.
func (g *Group) AddGroup(sub *Group) { g.g.AddGroup(sub.g) }

// SetAttr sets a single attribute on the group, merging with any already set.
func (g *Group) SetAttr(key, value string) { g.g.Attrs[key] = value }

// SetAttrs merges attrs into the group's own attribute map.
func (g *Group) SetAttrs(attrs map[string]string) {
	for k, v := range attrs {
		g.g.Attrs[k] = v
	}
}
