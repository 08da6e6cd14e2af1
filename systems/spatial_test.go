package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestPointGridNeighbors(t *testing.T) {
	g := NewPointGrid(100)
	points := []r2.Vec{
		{X: 0, Y: 0},
		{X: 90, Y: 10},
		{X: 150, Y: 20},
		{X: 450, Y: 450},
	}
	g.Build(points)

	near := g.NeighborsInto(nil, 0, 0)
	assert.ElementsMatch(t, []int{0, 1, 2}, near)

	far := g.NeighborsInto(nil, 450, 450)
	assert.ElementsMatch(t, []int{3}, far)
}

func TestPointGridNegativeCoordinates(t *testing.T) {
	g := NewPointGrid(110)
	points := []r2.Vec{{X: -20, Y: -20}, {X: 50, Y: 30}}
	g.Build(points)

	assert.ElementsMatch(t, []int{0, 1}, g.NeighborsInto(nil, -20, -20))
}

func TestPointGridEmpty(t *testing.T) {
	g := NewPointGrid(110)
	g.Build(nil)
	assert.Empty(t, g.NeighborsInto(nil, 0, 0))
}
