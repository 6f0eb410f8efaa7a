// Package rank assigns each node a signed rank along the graph's flow axis, per SPEC_FULL.md §4.2.
//
// Rank is popped from a priority queue ordered by |rank|: the root node (if set) seeds the queue
// at rank -1, every node with a user "rank" attribute r seeds at r+1, and every predecessor-free
// node seeds at -1; popping a node assigns its unranked successors the next rank out, always auto
// (negative), which is how a user-specified positive rank "flips" once it has propagated one hop.
// Any node left unranked after the queue drains - which happens only when it is reachable solely
// through a cycle with no predecessor-free entry - reseeds at rank -1 and the sweep repeats until
// every node is ranked.
package rank

import (
	"container/heap"

	"github.com/boxdraw/boxdraw/internal/model"
)

// Assign computes Rank for every node in g.
func Assign(g *model.Graph) {
	ranked := make(map[*model.Node]bool, len(g.Nodes))
	pq := &rankQueue{}
	heap.Init(pq)

	seed := func(n *model.Node, r int) {
		if ranked[n] {
			return
		}
		n.Rank = r
		ranked[n] = true
		heap.Push(pq, &rankItem{node: n, absRank: absInt(r), seq: n.NumID()})
	}

	if rootID, ok := g.Root(); ok {
		if n, ok := g.Node(rootID); ok {
			seed(n, -1)
		}
	}

	for _, n := range g.Nodes {
		if r := n.Attrs.GetInt("rank", 0); r != 0 {
			seed(n, r+1)
		}
	}

	for _, n := range g.Nodes {
		if !hasPredecessor(n) {
			seed(n, -1)
		}
	}

	for {
		for pq.Len() > 0 {
			it := heap.Pop(pq).(*rankItem)
			next := -(absInt(it.node.Rank) + 1)
			for _, e := range it.node.SortedEdges() {
				if e.From != it.node {
					continue
				}
				succ := e.To
				if succ == it.node {
					continue
				}
				seed(succ, next)
			}
		}

		var remaining []*model.Node
		for _, n := range g.Nodes {
			if !ranked[n] {
				remaining = append(remaining, n)
			}
		}
		if len(remaining) == 0 {
			return
		}
		for _, n := range remaining {
			seed(n, -1)
		}
	}
}

// hasPredecessor reports whether n is the target of some other node's edge.
func hasPredecessor(n *model.Node) bool {
	for _, e := range n.SortedEdges() {
		if e.To == n && e.From != n {
			return true
		}
	}
	return false
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// rankItem is a queue entry; seq breaks ties between equal absRank deterministically by the
// node's construction order, mirroring graph/dijkstra.go's nodeItem/nodePQ use of container/heap.
type rankItem struct {
	node    *model.Node
	absRank int
	seq     int
	index   int
}

type rankQueue []*rankItem

func (q rankQueue) Len() int { return len(q) }

func (q rankQueue) Less(i, j int) bool {
	if q[i].absRank != q[j].absRank {
		return q[i].absRank < q[j].absRank
	}
	return q[i].seq < q[j].seq
}

func (q rankQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *rankQueue) Push(x any) {
	it := x.(*rankItem)
	it.index = len(*q)
	*q = append(*q, it)
}

func (q *rankQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return it
}
