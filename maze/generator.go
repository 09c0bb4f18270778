package maze

import "math/rand"

// coarseStride is the node spacing of the logical carve graph: nodes sit on
// odd coordinates, two grid cells apart.
const coarseStride = 2

// Generate builds a perfect maze of the given odd dimensions using
// randomized recursive backtracking. The carve graph's nodes are the
// odd-coordinate cells; carving an edge clears the wall cell physically
// between two nodes, so the finished grid has exactly one route between any
// two passage cells.
//
// The supplied rand source drives neighbor selection, letting callers seed
// generation deterministically.
func Generate(width, height int, rng *rand.Rand) (*Grid, error) {
	if err := validateDimensions(width, height); err != nil {
		return nil, err
	}

	g := newGrid(width, height)
	visited := make([][]bool, height)
	for y := range visited {
		visited[y] = make([]bool, width)
	}

	start := carveOrigin()
	visited[start.Y][start.X] = true
	g.walls[start.Y][start.X] = false
	stack := []Cell{start}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		neighbors := unvisitedCoarseNeighbors(g, visited, current)
		if len(neighbors) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := neighbors[rng.Intn(len(neighbors))]
		clearWallBetween(g, current, next)
		visited[next.Y][next.X] = true
		g.walls[next.Y][next.X] = false
		stack = append(stack, next)
	}

	// Odd/even edge cases on very small mazes could leave either endpoint
	// walled, so both are forced open after carving.
	g.walls[1][1] = false
	g.walls[height-2][width-2] = false

	return g, nil
}

// carveOrigin is the nearest odd coordinate at or past (1, 1).
func carveOrigin() Cell {
	return Cell{X: 1, Y: 1}
}

// unvisitedCoarseNeighbors lists the stride-2 neighbors of pos that are in
// bounds and not yet carved, in the fixed direction order.
func unvisitedCoarseNeighbors(g *Grid, visited [][]bool, pos Cell) []Cell {
	var neighbors []Cell
	for _, d := range Directions {
		dx, dy := d.Delta()
		n := Cell{X: pos.X + dx*coarseStride, Y: pos.Y + dy*coarseStride}
		if g.inBound(n.X, n.Y) && !visited[n.Y][n.X] {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// clearWallBetween opens the wall cell midway between two coarse nodes.
func clearWallBetween(g *Grid, a, b Cell) {
	mid := Cell{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	g.walls[mid.Y][mid.X] = false
}
