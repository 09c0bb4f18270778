package game

import (
	"errors"
	"math/rand"

	"github.com/beka-birhanu/labyrinth-api/maze"
)

// ErrNoMoves is returned when every neighbor of the current cell is a wall.
// The navigation state is left untouched; the caller decides whether to
// offer regeneration.
var ErrNoMoves = errors.New("no passable direction from current cell")

// Resolver validates move proposals against the grid and applies the
// accepted move to the navigation state. Its only randomness is the
// boxed-in fallback, driven by an injected source so tests can pin exact
// outcomes.
type Resolver struct {
	rng *rand.Rand
}

// NewResolver creates a resolver using the given random source for the
// boxed-in fallback.
func NewResolver(rng *rand.Rand) *Resolver {
	return &Resolver{rng: rng}
}

// Resolve produces the next cell and applies it, in priority order:
//
//  1. When looping is signaled and an unvisited adjacent passage exists,
//     any proposal is ignored and the unvisited neighbor nearest the goal
//     is taken, guaranteeing forward progress out of the cycle.
//  2. A present proposal is applied unless it names a wall. Adjacency is
//     not required: a passable non-adjacent proposal relocates the agent
//     (see the non-adjacent note in DESIGN.md).
//  3. An absent or failed proposal falls back to the unvisited adjacent
//     passage nearest the goal.
//  4. With every neighbor already visited, one passable direction is
//     chosen uniformly at random.
//
// Ties in the nearest-to-goal choices break by the fixed UP/DOWN/LEFT/RIGHT
// enumeration. Resolve only fails, with ErrNoMoves and no state change,
// when all four neighbors are walls.
func (r *Resolver) Resolve(nav *Navigation, grid *maze.Grid, looping bool, proposal *maze.Cell) (maze.Cell, error) {
	current := nav.Current()
	unvisited := nav.UnvisitedAdjacent(current)

	if looping && len(unvisited) > 0 {
		chosen := nearestToGoal(unvisited, grid.Goal())
		nav.Append(chosen)
		return chosen, nil
	}

	if proposal != nil && !grid.IsWallCell(*proposal) {
		nav.Append(*proposal)
		return *proposal, nil
	}

	if len(unvisited) > 0 {
		chosen := nearestToGoal(unvisited, grid.Goal())
		nav.Append(chosen)
		return chosen, nil
	}

	available := nav.AvailableDirections(current)
	if len(available) == 0 {
		return maze.Cell{}, ErrNoMoves
	}
	chosen := current.Translate(available[r.rng.Intn(len(available))])
	nav.Append(chosen)
	return chosen, nil
}

// nearestToGoal returns the first cell minimizing Manhattan distance to the
// goal. Candidates arrive in direction-enumeration order, which fixes the
// tie-break.
func nearestToGoal(candidates []maze.Cell, goal maze.Cell) maze.Cell {
	best := candidates[0]
	bestDist := best.ManhattanTo(goal)
	for _, c := range candidates[1:] {
		if d := c.ManhattanTo(goal); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
