package model

// Group is a named collection of nodes plus child subgroups. Anonymous groups (Name == "")
// default to borderless rendering, per SPEC_FULL.md §3.
type Group struct {
	Name   string
	Attrs  Attrs
	Nodes  []*Node
	Groups []*Group
	Parent *Group

	graph *Graph
}

// NewGroup creates a named group. Pass "" for an anonymous, borderless group.
func NewGroup(name string) *Group {
	return &Group{Name: name, Attrs: make(Attrs)}
}

// IsAnonymous reports whether the group has no name.
func (g *Group) IsAnonymous() bool { return g.Name == "" }

// AddNode adds n as a member of g, setting n's innermost-group pointer to g.
func (g *Group) AddNode(n *Node) {
	g.Nodes = append(g.Nodes, n)
	n.group = g
}

// AddGroup registers sub as a child subgroup of g.
func (g *Group) AddGroup(sub *Group) {
	sub.Parent = g
	sub.graph = g.graph
	g.Groups = append(g.Groups, sub)
}

// Resolve looks up key using the group attribute resolution order: the group's own attributes,
// its class defaults, the parent group chain, the graph-level group defaults, then builtin.
func (g *Group) Resolve(key, builtin string) string {
	if v, ok := g.Attrs[key]; ok {
		return v
	}
	if class, ok := g.Attrs["class"]; ok {
		if v, ok := g.graph.GroupDefaults[class][key]; ok {
			return v
		}
	}
	for p := g.Parent; p != nil; p = p.Parent {
		if v, ok := p.Attrs[key]; ok {
			return v
		}
	}
	if v, ok := g.graph.GroupDefaults[""][key]; ok {
		return v
	}
	return builtin
}

// BorderStyle returns the resolved border style. Anonymous groups default to "none"; named
// groups default to "dashed" per SPEC_FULL.md scenario 5.
func (g *Group) BorderStyle() string {
	def := "dashed"
	if g.IsAnonymous() {
		def = "none"
	}
	return NormalizeBorderStyle(g.Resolve("borderstyle", def))
}

// Label returns the resolved "label" attribute, or the group's name if unset and non-anonymous.
func (g *Group) Label() string {
	if v, ok := g.Attrs["label"]; ok {
		return v
	}
	return g.Name
}

// LabelPos returns the resolved "labelpos" attribute, defaulting to "top".
func (g *Group) LabelPos() string {
	v := g.Resolve("labelpos", "top")
	if v != "top" && v != "bottom" {
		return "top"
	}
	return v
}

// Align returns the resolved "align" attribute, defaulting to "center".
func (g *Group) Align() string {
	v := g.Resolve("align", "center")
	switch v {
	case "left", "center", "right":
		return v
	default:
		return "center"
	}
}

// AllMembers returns every node transitively owned by g or one of its subgroups.
func (g *Group) AllMembers() []*Node {
	members := append([]*Node(nil), g.Nodes...)
	for _, sub := range g.Groups {
		members = append(members, sub.AllMembers()...)
	}
	return members
}

// Owns reports whether n belongs to g or one of g's subgroups.
func (g *Group) Owns(n *Node) bool {
	for grp := n.group; grp != nil; grp = grp.Parent {
		if grp == g {
			return true
		}
	}
	return false
}
