// Package systems provides the per-particle systems of the field: spatial
// indexing, motion and proximity connections.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
)

// Grid is a uniform bucket grid over the surface. A point's cell is
// (floor(x/cellSize), floor(y/cellSize)). With cellSize equal to the
// connection threshold, any pair closer than the threshold lies in the same
// or an adjacent cell.
type Grid struct {
	cellSize float64
	cols     int
	rows     int
	count    int
	cells    [][]ecs.Entity // row-major, back references only
}

// NewGrid creates an empty grid of ceil(width/cellSize) x ceil(height/cellSize) cells.
func NewGrid(cellSize, width, height float64) *Grid {
	cols, rows := 0, 0
	if cellSize > 0 {
		if width > 0 {
			cols = int(math.Ceil(width / cellSize))
		}
		if height > 0 {
			rows = int(math.Ceil(height / cellSize))
		}
	}

	return &Grid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    make([][]ecs.Entity, cols*rows),
	}
}

// Insert appends e to the bucket containing (x, y).
// Points outside the grid are dropped.
func (g *Grid) Insert(e ecs.Entity, x, y float64) {
	col, row, ok := g.cell(x, y)
	if !ok {
		return
	}
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], e)
	g.count++
}

// Neighbors returns every entity in the 3x3 block of cells around (x, y),
// clipped to the grid. The result includes the entity stored at (x, y)
// itself; callers filter self matches.
func (g *Grid) Neighbors(x, y float64) []ecs.Entity {
	return g.NeighborsInto(nil, x, y)
}

// NeighborsInto is Neighbors appending to dst. Reuse dst across calls to avoid allocations.
func (g *Grid) NeighborsInto(dst []ecs.Entity, x, y float64) []ecs.Entity {
	if g.cellSize <= 0 || !finite(x) || !finite(y) {
		return dst
	}
	col := int(math.Floor(x / g.cellSize))
	row := int(math.Floor(y / g.cellSize))

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

// cell returns the cell coordinates for a surface position and whether they are in range.
func (g *Grid) cell(x, y float64) (col, row int, ok bool) {
	if g.cellSize <= 0 || !finite(x) || !finite(y) {
		return 0, 0, false
	}
	col = int(math.Floor(x / g.cellSize))
	row = int(math.Floor(y / g.cellSize))
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return 0, 0, false
	}
	return col, row, true
}

// CellSize returns the side length of a cell.
func (g *Grid) CellSize() float64 { return g.cellSize }

// Cols returns the number of grid columns.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of grid rows.
func (g *Grid) Rows() int { return g.rows }

// Len returns the number of entities stored in the grid.
func (g *Grid) Len() int { return g.count }

// Bucket returns the entities stored in cell (col, row), or nil when out of range.
func (g *Grid) Bucket(col, row int) []ecs.Entity {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return nil
	}
	return g.cells[row*g.cols+col]
}
