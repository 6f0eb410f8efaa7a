// Package boxdraw lays out a directed graph on a character grid and renders it as ASCII text, in
// the style of Graph::Easy: nodes become boxed rectangles, edges become bent or straight paths of
// line-drawing characters, and groups become dashed or solid enclosing boxes, all positioned by a
// rank-and-chain placement pass followed by A*-based edge routing (see SPEC_FULL.md).
//
// A typical caller builds a Graph with AddNode/AddEdge/AddGroup, sets any attributes that should
// influence layout, then calls AsAscii:
//
//	g := boxdraw.New()
//	a := g.AddNode("A")
//	b := g.AddNode("B")
//	g.AddEdge(a, b, "-", "->", "")
//	out, err := g.AsAscii()
//
// Layout is idempotent: calling it (directly, or indirectly through AsAscii) more than once on an
// unchanged Graph is a no-op after the first call.
package boxdraw
