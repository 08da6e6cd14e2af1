package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// PointGrid buckets point indices into square cells so that every pair closer
// than the cell size lies in the same or an adjacent cell.
type PointGrid struct {
	cellSize   float64
	minX, minY float64
	cols, rows int
	cells      [][]int // flat grid of point indices
}

// NewPointGrid creates an empty grid with the given cell size.
func NewPointGrid(cellSize float64) *PointGrid {
	return &PointGrid{cellSize: cellSize}
}

// Build clears the grid, sizes it to cover points and inserts every index.
func (g *PointGrid) Build(points []r2.Vec) {
	if len(points) == 0 {
		g.cols, g.rows = 0, 0
		return
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	g.minX, g.minY = minX, minY
	g.cols = int((maxX-minX)/g.cellSize) + 1
	g.rows = int((maxY-minY)/g.cellSize) + 1

	need := g.cols * g.rows
	if cap(g.cells) < need {
		grown := make([][]int, need)
		copy(grown, g.cells)
		g.cells = grown
	}
	g.cells = g.cells[:need]
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}

	for i, p := range points {
		idx := g.cellIndex(p.X, p.Y)
		g.cells[idx] = append(g.cells[idx], i)
	}
}

// NeighborsInto appends the indices stored in the 3x3 block of cells around
// (x, y) to dst and returns it. Order is by cell, then insertion.
func (g *PointGrid) NeighborsInto(dst []int, x, y float64) []int {
	if g.cols == 0 {
		return dst
	}
	col, row := g.cellCoords(x, y)
	for dr := -1; dr <= 1; dr++ {
		r := row + dr
		if r < 0 || r >= g.rows {
			continue
		}
		for dc := -1; dc <= 1; dc++ {
			c := col + dc
			if c < 0 || c >= g.cols {
				continue
			}
			dst = append(dst, g.cells[r*g.cols+c]...)
		}
	}
	return dst
}

// cellCoords returns the clamped column and row for a position.
func (g *PointGrid) cellCoords(x, y float64) (col, row int) {
	col = int((x - g.minX) / g.cellSize)
	row = int((y - g.minY) / g.cellSize)

	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}

// cellIndex returns the flat index for a position.
func (g *PointGrid) cellIndex(x, y float64) int {
	col, row := g.cellCoords(x, y)
	return row*g.cols + col
}
