/*
Package game holds the traversal core of a maze run: the navigation state,
the loop detector and the move resolver, tied together by a Session.

Everything here is single-threaded by design; one session processes exactly
one turn at a time, and callers that need concurrency serialize around the
session.
*/
package game

import (
	"github.com/beka-birhanu/labyrinth-api/maze"
)

// Navigation tracks an agent's traversal of a grid: the current cell, the
// ordered move history and the accepted-step counter.
//
// History always starts with the grid's start cell and records every
// accepted move including revisits, so the step counter equals
// len(history)-1. Navigation performs no validation on Append; deciding
// whether a move is legal is the resolver's job.
type Navigation struct {
	grid    *maze.Grid
	current maze.Cell
	history []maze.Cell
}

// NewNavigation creates a navigation state positioned on the grid's start
// cell.
func NewNavigation(g *maze.Grid) *Navigation {
	return &Navigation{
		grid:    g,
		current: g.Start(),
		history: []maze.Cell{g.Start()},
	}
}

// Current returns the cell the agent occupies.
func (n *Navigation) Current() maze.Cell {
	return n.current
}

// Steps returns the number of accepted moves.
func (n *Navigation) Steps() int {
	return len(n.history) - 1
}

// History returns a copy of the full move history, oldest first.
func (n *Navigation) History() []maze.Cell {
	out := make([]maze.Cell, len(n.history))
	copy(out, n.history)
	return out
}

// AdjacentCells returns the four axis neighbors of pos in the fixed
// direction order, without wall or bounds filtering.
func (n *Navigation) AdjacentCells(pos maze.Cell) [4]maze.Cell {
	var cells [4]maze.Cell
	for i, d := range maze.Directions {
		cells[i] = pos.Translate(d)
	}
	return cells
}

// AvailableDirections returns the directions whose neighbor of pos is a
// passage.
func (n *Navigation) AvailableDirections(pos maze.Cell) []maze.Direction {
	var available []maze.Direction
	for _, d := range maze.Directions {
		if !n.grid.IsWallCell(pos.Translate(d)) {
			available = append(available, d)
		}
	}
	return available
}

// UnvisitedAdjacent returns the neighbors of pos that are passages and do
// not appear anywhere in the move history, in the fixed direction order.
func (n *Navigation) UnvisitedAdjacent(pos maze.Cell) []maze.Cell {
	visited := n.visitedSet()
	var unvisited []maze.Cell
	for _, d := range maze.Directions {
		neighbor := pos.Translate(d)
		if !n.grid.IsWallCell(neighbor) && !visited[neighbor] {
			unvisited = append(unvisited, neighbor)
		}
	}
	return unvisited
}

// Append records an accepted move unconditionally and makes cell the
// current position.
func (n *Navigation) Append(cell maze.Cell) {
	n.history = append(n.history, cell)
	n.current = cell
}

// Reset clears the history back to the grid's start cell and moves the
// agent there. The grid itself is untouched.
func (n *Navigation) Reset() {
	n.current = n.grid.Start()
	n.history = n.history[:0]
	n.history = append(n.history, n.grid.Start())
}

// visitedSet derives the set of distinct visited cells from the history.
func (n *Navigation) visitedSet() map[maze.Cell]bool {
	visited := make(map[maze.Cell]bool, len(n.history))
	for _, c := range n.history {
		visited[c] = true
	}
	return visited
}
