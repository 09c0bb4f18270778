/*
Package maze provides the wall grid for a rectangular maze and the
randomized generator that carves it.

A maze is a width×height matrix of cells that are either walls or passages.
Dimensions are always odd, which guarantees an outer wall ring and a
start/goal pair on passage cells. Once generated, a Grid is never mutated;
regenerating a maze builds a fresh Grid and discards the old one.
*/
package maze

import "errors"

// Grid construction errors.
var (
	ErrEvenDimension  = errors.New("maze dimensions must be odd")
	ErrSmallDimension = errors.New("maze dimensions must be at least 3")
)

// Grid is an immutable maze: a boolean wall matrix plus its dimensions.
// Walls are addressed as walls[y][x], true meaning wall.
type Grid struct {
	width  int
	height int
	walls  [][]bool
}

// newGrid allocates a grid of the given dimensions with every cell a wall.
func newGrid(width, height int) *Grid {
	walls := make([][]bool, height)
	for y := range walls {
		walls[y] = make([]bool, width)
		for x := range walls[y] {
			walls[y][x] = true
		}
	}
	return &Grid{width: width, height: height, walls: walls}
}

// validateDimensions rejects even or too-small maze dimensions. The stride-2
// carve arithmetic silently degenerates on even sizes, so they are refused
// at construction time.
func validateDimensions(width, height int) error {
	if width < 3 || height < 3 {
		return ErrSmallDimension
	}
	if width%2 == 0 || height%2 == 0 {
		return ErrEvenDimension
	}
	return nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// IsWall reports whether the given coordinate is blocked. It is total over
// all integers: any out-of-bounds coordinate is a wall.
func (g *Grid) IsWall(x, y int) bool {
	if !g.inBound(x, y) {
		return true
	}
	return g.walls[y][x]
}

// IsWallCell is IsWall for a Cell value.
func (g *Grid) IsWallCell(c Cell) bool {
	return g.IsWall(c.X, c.Y)
}

// Start returns the fixed start cell (1, 1). It is always a passage.
func (g *Grid) Start() Cell {
	return Cell{X: 1, Y: 1}
}

// Goal returns the fixed goal cell (width-2, height-2). It is always a
// passage.
func (g *Grid) Goal() Cell {
	return Cell{X: g.width - 2, Y: g.height - 2}
}

func (g *Grid) inBound(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}
