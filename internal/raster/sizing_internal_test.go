package raster

import (
	"testing"

	"github.com/teleivo/assertive/assert"
)

func TestBalanceSizesSkipsZeroEntriesRoundRobin(t *testing.T) {
	sizes := map[int]int{0: 2, 1: 0, 2: 1}

	balanceSizes(sizes, 0, 3, 5)

	assert.Equals(t, sizes[1], 0)
	sum := sizes[0] + sizes[1] + sizes[2]
	assert.Equals(t, sum, 5)
}

func TestBalanceSizesFallsBackWhenAllZero(t *testing.T) {
	sizes := map[int]int{0: 0, 1: 0}

	balanceSizes(sizes, 0, 2, 4)

	assert.Equals(t, sizes[0]+sizes[1], 4)
}

func TestBalanceSizesIsNoOpWhenAlreadySatisfied(t *testing.T) {
	sizes := map[int]int{0: 3, 1: 4}

	balanceSizes(sizes, 0, 2, 5)

	assert.Equals(t, sizes[0], 3)
	assert.Equals(t, sizes[1], 4)
}
