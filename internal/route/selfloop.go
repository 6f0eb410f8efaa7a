package route

import (
	"fmt"

	"github.com/boxdraw/boxdraw/internal/celltype"
	"github.com/boxdraw/boxdraw/internal/model"
)

// SelfLoop claims one free cell adjacent to e's node (e.From == e.To) for a single loop-shaped
// glyph, per §4.5's self-loop handling: chain.Build emits a SELFLOOP action once the node carrying
// it has been placed. Unlike a routed path, a self-loop never leaves its node's immediate
// neighborhood, so one committed cell (sized and drawn specially by internal/raster's IsLoop
// branch) stands in for the whole loop rather than a multi-cell traced path.
func SelfLoop(g *model.Graph, e *model.Edge) error {
	n := e.From

	places := n.NearPlaces(e.StartPort())
	for _, p := range places {
		mp := model.Point{X: p.X, Y: p.Y}
		if _, occupied := g.Cells[mp]; occupied {
			continue
		}

		t := celltype.N_W_S
		if e.Label() != "" {
			t = t.WithLabel()
		}
		t = t.WithStart(p.Side).WithEnd(p.Side)

		cell := &model.EdgeCell{Edge: e, Type: t}
		g.Cells[mp] = cell
		e.Cells = append(e.Cells, cell)
		return nil
	}
	return fmt.Errorf("%w: self-loop on %s has no free adjacent cell", ErrNoPath, n.ID)
}
