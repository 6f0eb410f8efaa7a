// Package yamlgraph loads a boxdraw.Graph from a minimal declarative YAML document, per
// SPEC_FULL.md §4.11: a stand-in loader that drives the Graph construction API end-to-end for
// manual testing and the CLI, not a reimplementation of the (out-of-scope) declarative or DOT
// parsers. Shared by cmd/boxdraw's "render" command and the watch server, so both read the same
// document shape.
package yamlgraph

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/boxdraw/boxdraw"
)

type doc struct {
	Graph    map[string]string                       `yaml:"graph"`
	Defaults map[string]map[string]string             `yaml:"defaults"`
	Classes  map[string]map[string]map[string]string  `yaml:"classes"`
	Nodes    []nodeDoc                                `yaml:"nodes"`
	Edges    []edgeDoc                                `yaml:"edges"`
	Groups   []groupDoc                               `yaml:"groups"`
}

type nodeDoc struct {
	ID    string            `yaml:"id"`
	Attrs map[string]string `yaml:"attrs"`
}

type edgeDoc struct {
	From  string            `yaml:"from"`
	To    string            `yaml:"to"`
	Left  string            `yaml:"left"`
	Right string            `yaml:"right"`
	Label string            `yaml:"label"`
	Attrs map[string]string `yaml:"attrs"`
}

type groupDoc struct {
	Name   string            `yaml:"name"`
	Attrs  map[string]string `yaml:"attrs"`
	Nodes  []string          `yaml:"nodes"`
	Groups []groupDoc        `yaml:"groups"`
}

// Load parses a YAML document from r and builds the equivalent boxdraw.Graph by driving its
// public construction API, so a loaded graph lays out exactly as one built by direct calls would.
func Load(r io.Reader) (*boxdraw.Graph, error) {
	var d doc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && err != io.EOF {
		return nil, fmt.Errorf("invalid graph document: %w", err)
	}

	g := boxdraw.New()
	if len(d.Graph) > 0 {
		g.SetGraphAttributes(d.Graph)
	}
	for kind, attrs := range d.Defaults {
		k, err := parseKind(kind)
		if err != nil {
			return nil, err
		}
		g.SetDefaultAttributes(k, attrs)
	}
	for kind, classes := range d.Classes {
		k, err := parseKind(kind)
		if err != nil {
			return nil, err
		}
		for class, attrs := range classes {
			g.SetClassAttributes(k, class, attrs)
		}
	}

	for _, nd := range d.Nodes {
		if nd.ID == "" {
			return nil, fmt.Errorf("invalid graph document: node missing id")
		}
		n := g.AddNode(nd.ID)
		n.SetAttrs(nd.Attrs)
	}
	for _, ed := range d.Edges {
		if ed.From == "" || ed.To == "" {
			return nil, fmt.Errorf("invalid graph document: edge missing from/to")
		}
		from := g.AddNode(ed.From)
		to := g.AddNode(ed.To)
		left, right := ed.Left, ed.Right
		if left == "" && right == "" {
			right = "->"
		}
		e := g.AddEdge(from, to, left, right, ed.Label)
		e.SetAttrs(ed.Attrs)
	}
	for _, gd := range d.Groups {
		grp, err := buildGroup(g, gd)
		if err != nil {
			return nil, err
		}
		g.AddGroup(grp)
	}

	return g, nil
}

// buildGroup constructs gd as a detached Group (not yet registered with g), resolving its member
// node ids and recursively building its subgroups. The caller registers the returned Group either
// as a top-level group (Graph.AddGroup) or as a nested one (Group.AddGroup).
func buildGroup(g *boxdraw.Graph, gd groupDoc) (*boxdraw.Group, error) {
	grp := boxdraw.NewGroup(gd.Name)
	grp.SetAttrs(gd.Attrs)
	for _, id := range gd.Nodes {
		n, ok := g.Node(id)
		if !ok {
			return nil, fmt.Errorf("invalid graph document: group %q references unknown node %q", gd.Name, id)
		}
		grp.AddNode(n)
	}
	for _, sub := range gd.Groups {
		subGrp, err := buildGroup(g, sub)
		if err != nil {
			return nil, err
		}
		grp.AddGroup(subGrp)
	}
	return grp, nil
}

func parseKind(name string) (boxdraw.Kind, error) {
	switch name {
	case "node":
		return boxdraw.KindNode, nil
	case "edge":
		return boxdraw.KindEdge, nil
	case "group":
		return boxdraw.KindGroup, nil
	default:
		return 0, fmt.Errorf("invalid graph document: unknown default/class kind %q", name)
	}
}
