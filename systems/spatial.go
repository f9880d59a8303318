// Package systems implements the per-tick simulation steps: movement,
// steering, collision and the pellet lifecycle.
package systems

import (
	"github.com/pthm-cable/snakepit/components"
	"github.com/pthm-cable/snakepit/vmath"
)

// SpatialGrid provides O(1) neighbor lookups using a cell-based grid over
// the arena square [-halfMap, halfMap]. The arena does not wrap.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	halfMap  float64
	cells    [][]int // flat grid of pellet indices
}

// NewSpatialGrid creates a spatial grid covering an arena of the given size.
func NewSpatialGrid(mapSize, cellSize float64) *SpatialGrid {
	cols := int(mapSize/cellSize) + 1
	rows := cols

	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 8) // pre-allocate small capacity
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		halfMap:  mapSize / 2,
		cells:    cells,
	}
}

// Clear removes all entries from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Rebuild clears the grid and inserts every pellet by slice index.
func (g *SpatialGrid) Rebuild(pellets []components.Pellet) {
	g.Clear()
	for i := range pellets {
		g.Insert(i, pellets[i].Position)
	}
}

// Insert adds an index to the grid at the given position.
func (g *SpatialGrid) Insert(index int, pos vmath.Vec2) {
	col, row := g.cellCoords(pos)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], index)
}

// Nearest returns the index of the closest pellet within radius of pos, or
// -1 if there is none. Every pellet in the covered cells is checked, however
// dense the area.
func (g *SpatialGrid) Nearest(pos vmath.Vec2, radius float64, pellets []components.Pellet) int {
	cellRadius := int(radius/g.cellSize) + 1
	centerCol, centerRow := g.cellCoords(pos)
	radiusSq := radius * radius

	best := -1
	bestDistSq := radiusSq
	for dc := -cellRadius; dc <= cellRadius; dc++ {
		col := centerCol + dc
		if col < 0 || col >= g.cols {
			continue
		}
		for dr := -cellRadius; dr <= cellRadius; dr++ {
			row := centerRow + dr
			if row < 0 || row >= g.rows {
				continue
			}

			for _, i := range g.cells[row*g.cols+col] {
				if i >= len(pellets) {
					continue
				}
				distSq := vmath.DistanceSq(pos, pellets[i].Position)
				if distSq < bestDistSq || (best < 0 && distSq <= radiusSq) {
					best = i
					bestDistSq = distSq
				}
			}
		}
	}
	return best
}

// cellCoords returns the clamped column and row for a world position.
func (g *SpatialGrid) cellCoords(pos vmath.Vec2) (col, row int) {
	col = int((pos.X + g.halfMap) / g.cellSize)
	row = int((pos.Y + g.halfMap) / g.cellSize)

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
