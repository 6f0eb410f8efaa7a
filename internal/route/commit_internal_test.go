package route

import (
	"testing"

	"github.com/teleivo/assertive/assert"

	"github.com/boxdraw/boxdraw/internal/model"
)

func TestStraightenReplacesZBendWithAdjacentCorner(t *testing.T) {
	g := model.New()
	path := []point{{0, 0}, {0, 1}, {1, 1}, {1, 2}}

	out := straighten(g, path)

	assert.Equals(t, out[1], point{1, 0})
}

func TestStraightenReplacesSBendWithAdjacentCorner(t *testing.T) {
	g := model.New()
	path := []point{{0, 0}, {1, 0}, {1, 1}, {2, 1}}

	out := straighten(g, path)

	assert.Equals(t, out[1], point{0, 1})
}
