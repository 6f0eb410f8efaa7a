// Package chain groups ranked nodes into chains — maximal runs linked by a single successor edge
// — and flattens them into the ordered action stack internal/place consumes, per SPEC_FULL.md
// §4.3.
package chain

import (
	"sort"

	"github.com/boxdraw/boxdraw/internal/model"
)

// ActionKind identifies what a placement Action does.
type ActionKind int

const (
	ActionNode ActionKind = iota
	ActionTrace
	ActionSelfLoop
)

// Action is one step of the flattened chain action stack: place a node, route an in-chain edge,
// or route a self-loop.
type Action struct {
	Kind ActionKind
	Node *model.Node
	Edge *model.Edge
}

// Chain is a maximal sequence of nodes linked by single-successor edges.
type Chain struct {
	Nodes []*model.Node
}

// Build partitions g's nodes into chains and flattens them into the action order described in
// SPEC_FULL.md §4.3: NODE actions for each chain member, TRACE actions for in-chain edges (sorted
// by rank span, shortest first), SELFLOOP actions, then any chain reachable from a member that
// has not yet been emitted. Ranks must already be assigned (see internal/rank) before calling
// Build.
func Build(g *model.Graph) []Action {
	chains, chainOf := partition(g)

	var actions []Action
	emitted := make(map[*Chain]bool, len(chains))

	var emit func(c *Chain)
	emit = func(c *Chain) {
		if c == nil || emitted[c] || len(c.Nodes) == 0 {
			return
		}
		emitted[c] = true

		for _, n := range c.Nodes {
			actions = append(actions, Action{Kind: ActionNode, Node: n})
		}

		for _, e := range chainInternalEdges(g, chainOf, c) {
			actions = append(actions, Action{Kind: ActionTrace, Edge: e})
		}

		for _, n := range c.Nodes {
			for _, e := range n.SortedEdges() {
				if e.From == n && e.To == n {
					actions = append(actions, Action{Kind: ActionSelfLoop, Node: n, Edge: e})
				}
			}
		}

		for _, n := range c.Nodes {
			for _, e := range n.SortedEdges() {
				if e.From != n || e.To == n {
					continue
				}
				emit(chainOf[e.To])
			}
		}
	}

	if rootID, ok := g.Root(); ok {
		if root, ok := g.Node(rootID); ok {
			emit(chainOf[root])
		}
	}
	for _, c := range chains {
		emit(c)
	}

	actions = append(actions, crossChainTraces(g, chainOf, actions)...)

	return actions
}

// crossChainTraces returns TRACE actions, sorted by rank span, for every non-self-loop edge whose
// endpoints fall in different chains: chainInternalEdges only covers edges within a single chain,
// so a branch or merge edge would otherwise never be routed.
func crossChainTraces(g *model.Graph, chainOf map[*model.Node]*Chain, already []Action) []Action {
	traced := make(map[*model.Edge]bool, len(already))
	for _, act := range already {
		if act.Kind == ActionTrace {
			traced[act.Edge] = true
		}
	}

	var remaining []*model.Edge
	for _, e := range g.Edges {
		if e.From == e.To || traced[e] {
			continue
		}
		remaining = append(remaining, e)
	}
	sort.SliceStable(remaining, func(i, j int) bool {
		return edgeSpan(remaining[i]) < edgeSpan(remaining[j])
	})

	out := make([]Action, len(remaining))
	for i, e := range remaining {
		out[i] = Action{Kind: ActionTrace, Edge: e}
	}
	return out
}

// partition assigns every node to exactly one Chain, per SPEC_FULL.md §4.3's construction rule.
func partition(g *model.Graph) ([]*Chain, map[*model.Node]*Chain) {
	order := startOrder(g)
	chainOf := make(map[*model.Node]*Chain, len(g.Nodes))
	var chains []*Chain

	var rootChain *Chain
	if rootID, ok := g.Root(); ok {
		if root, ok := g.Node(rootID); ok {
			rootChain = walkChain(root, chainOf, nil)
			chains = append(chains, rootChain)
		}
	}

	for _, start := range order {
		if chainOf[start] != nil {
			continue
		}
		chains = append(chains, walkChain(start, chainOf, rootChain))
	}

	return chains, chainOf
}

// walkChain grows a new chain from start, per §4.3: append the unique unvisited successor while
// one exists; when the tail's successors are already chained, merge into the longest of those
// chains unless it is rootChain, a deliberate exception that keeps the root's chain from
// absorbing unrelated tails.
func walkChain(start *model.Node, chainOf map[*model.Node]*Chain, rootChain *Chain) *Chain {
	c := &Chain{Nodes: []*model.Node{start}}
	chainOf[start] = c
	cur := start

	for {
		var unvisited, chained []*model.Node
		for _, e := range cur.SortedEdges() {
			if e.From != cur || e.To == cur {
				continue
			}
			succ := e.To
			if chainOf[succ] != nil {
				chained = append(chained, succ)
			} else {
				unvisited = append(unvisited, succ)
			}
		}

		if len(chained) > 0 {
			target := longestOf(chained, chainOf)
			if target != rootChain && target != c {
				var connector *model.Node
				for _, succ := range chained {
					if chainOf[succ] == target {
						connector = succ
						break
					}
				}
				mergeInto(c, target, connector, chainOf)
			}
			return c
		}

		if len(unvisited) != 1 {
			return c
		}

		next := unvisited[0]
		c.Nodes = append(c.Nodes, next)
		chainOf[next] = c
		cur = next
	}
}

// longestOf returns the longest distinct chain owning any node in succs.
func longestOf(succs []*model.Node, chainOf map[*model.Node]*Chain) *Chain {
	seen := make(map[*Chain]bool)
	var best *Chain
	for _, n := range succs {
		c := chainOf[n]
		if c == nil || seen[c] {
			continue
		}
		seen[c] = true
		if best == nil || len(c.Nodes) > len(best.Nodes) {
			best = c
		}
	}
	return best
}

// mergeInto absorbs src's nodes into target, splicing them in immediately before connector — the
// member of target that src's tail actually points to, which need not be target's head when
// several chains converge on different points of the same target chain — then empties src so
// Build's fallback sweep skips it. A nil connector (the caller found no chained successor
// actually owned by target, which longestOf's selection guarantees doesn't happen) falls back to
// prefixing target's head.
func mergeInto(src, target *Chain, connector *model.Node, chainOf map[*model.Node]*Chain) {
	idx := 0
	for i, n := range target.Nodes {
		if n == connector {
			idx = i
			break
		}
	}

	merged := make([]*model.Node, 0, len(src.Nodes)+len(target.Nodes))
	merged = append(merged, target.Nodes[:idx]...)
	merged = append(merged, src.Nodes...)
	merged = append(merged, target.Nodes[idx:]...)
	target.Nodes = merged
	for _, n := range src.Nodes {
		chainOf[n] = target
	}
	src.Nodes = nil
}

// startOrder lists every node in ascending |rank| order (root, when set, is handled separately by
// partition before this order is consulted), breaking ties by construction order for determinism.
func startOrder(g *model.Graph) []*model.Node {
	order := make([]*model.Node, len(g.Nodes))
	copy(order, g.Nodes)
	sort.Slice(order, func(i, j int) bool {
		ai, aj := absInt(order[i].Rank), absInt(order[j].Rank)
		if ai != aj {
			return ai < aj
		}
		return order[i].NumID() < order[j].NumID()
	})
	return order
}

// chainInternalEdges returns the edges whose endpoints both belong to c, excluding self-loops
// (emitted separately), sorted by rank span ascending so shorter edges route first per §4.3.
func chainInternalEdges(g *model.Graph, chainOf map[*model.Node]*Chain, c *Chain) []*model.Edge {
	var edges []*model.Edge
	for _, e := range g.Edges {
		if e.From == e.To {
			continue
		}
		if chainOf[e.From] == c && chainOf[e.To] == c {
			edges = append(edges, e)
		}
	}
	sort.SliceStable(edges, func(i, j int) bool {
		return edgeSpan(edges[i]) < edgeSpan(edges[j])
	})
	return edges
}

func edgeSpan(e *model.Edge) int {
	return absInt(e.From.Rank - e.To.Rank)
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
