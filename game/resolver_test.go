package game

import (
	"math/rand"
	"testing"

	"github.com/beka-birhanu/labyrinth-api/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// narrowStart walls off (2,1) so the only exit from the start runs down.
var narrowStart = []string{
	"WWWWW",
	"W.W.W",
	"W.W.W",
	"W...W",
	"WWWWW",
}

// corridors is two horizontal passages with no vertical link at (2,1).
var corridors = []string{
	"WWWWW",
	"W...W",
	"WWWWW",
	"W...W",
	"WWWWW",
}

func newTestResolver(seed int64) *Resolver {
	return NewResolver(rand.New(rand.NewSource(seed)))
}

func TestResolveWallProposalFallsBack(t *testing.T) {
	g := parseGrid(t, narrowStart)
	nav := NewNavigation(g)
	r := newTestResolver(1)

	wall := maze.Cell{X: 2, Y: 1}
	applied, err := r.Resolve(nav, g, false, &wall)

	require.NoError(t, err)
	assert.Equal(t, maze.Cell{X: 1, Y: 2}, applied, "falls back to the unvisited neighbor")
	assert.Equal(t, 1, nav.Steps(), "exactly one history entry appended")
	assert.NotContains(t, nav.History(), wall, "the wall proposal is never recorded")
}

func TestResolveLoopOverrideIgnoresProposal(t *testing.T) {
	g := parseGrid(t, narrowStart)
	nav := NewNavigation(g)
	r := newTestResolver(1)

	proposal := maze.Cell{X: 3, Y: 1}
	applied, err := r.Resolve(nav, g, true, &proposal)

	require.NoError(t, err)
	assert.Equal(t, maze.Cell{X: 1, Y: 2}, applied, "override picks the unvisited neighbor nearest the goal")
	assert.Equal(t, 1, nav.Steps())
}

func TestResolveAdjacentProposalApplied(t *testing.T) {
	g := parseGrid(t, narrowStart)
	nav := NewNavigation(g)
	r := newTestResolver(1)

	proposal := maze.Cell{X: 1, Y: 2}
	applied, err := r.Resolve(nav, g, false, &proposal)

	require.NoError(t, err)
	assert.Equal(t, proposal, applied)
	assert.Equal(t, proposal, nav.Current())
}

func TestResolveRevisitingProposalAllowed(t *testing.T) {
	g := parseGrid(t, narrowStart)
	nav := NewNavigation(g)
	nav.Append(maze.Cell{X: 1, Y: 2})
	r := newTestResolver(1)

	back := maze.Cell{X: 1, Y: 1}
	applied, err := r.Resolve(nav, g, false, &back)

	require.NoError(t, err)
	assert.Equal(t, back, applied, "backtracking to a visited cell is permitted")
}

func TestResolveNonAdjacentPassableProposalApplied(t *testing.T) {
	g := parseGrid(t, narrowStart)
	nav := NewNavigation(g)
	r := newTestResolver(1)

	far := maze.Cell{X: 3, Y: 1}
	applied, err := r.Resolve(nav, g, false, &far)

	require.NoError(t, err)
	assert.Equal(t, far, applied, "passable non-adjacent proposal relocates the agent")
	assert.Equal(t, far, nav.Current())
}

func TestResolveAbsentProposalPrefersGoalward(t *testing.T) {
	g := parseGrid(t, openRoom)
	nav := NewNavigation(g)
	r := newTestResolver(1)

	applied, err := r.Resolve(nav, g, false, nil)

	require.NoError(t, err)
	// (1,2) and (2,1) tie on distance to the goal (3,3); the fixed
	// direction order picks Down first.
	assert.Equal(t, maze.Cell{X: 1, Y: 2}, applied)
}

func TestResolveBoxedInPicksRandomPassable(t *testing.T) {
	g := parseGrid(t, corridors)
	nav := NewNavigation(g)
	nav.Append(maze.Cell{X: 2, Y: 1})
	nav.Append(maze.Cell{X: 3, Y: 1})
	nav.Append(maze.Cell{X: 2, Y: 1})
	r := newTestResolver(1)

	steps := nav.Steps()
	applied, err := r.Resolve(nav, g, false, nil)

	require.NoError(t, err)
	assert.Contains(t, []maze.Cell{{X: 1, Y: 1}, {X: 3, Y: 1}}, applied)
	assert.Equal(t, steps+1, nav.Steps())
}

func TestResolveNoMoves(t *testing.T) {
	g := parseGrid(t, []string{"WWW", "W.W", "WWW"})
	nav := NewNavigation(g)
	r := newTestResolver(1)

	_, err := r.Resolve(nav, g, false, nil)

	assert.ErrorIs(t, err, ErrNoMoves)
	assert.Equal(t, 0, nav.Steps(), "a failed resolve leaves state untouched")
	assert.Len(t, nav.History(), 1)
}
