package game

import (
	"testing"

	"github.com/beka-birhanu/labyrinth-api/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openRoom is a 5x5 maze whose inner ring is all passage except the center.
var openRoom = []string{
	"WWWWW",
	"W...W",
	"W.W.W",
	"W...W",
	"WWWWW",
}

func parseGrid(t *testing.T, rows []string) *maze.Grid {
	t.Helper()
	g, err := maze.Parse(rows)
	require.NoError(t, err)
	return g
}

func TestNavigationSeeding(t *testing.T) {
	g := parseGrid(t, openRoom)
	nav := NewNavigation(g)

	assert.Equal(t, g.Start(), nav.Current())
	assert.Equal(t, 0, nav.Steps())
	assert.Equal(t, []maze.Cell{g.Start()}, nav.History())
}

func TestNavigationAdjacency(t *testing.T) {
	g := parseGrid(t, openRoom)
	nav := NewNavigation(g)

	t.Run("adjacent cells are unfiltered", func(t *testing.T) {
		cells := nav.AdjacentCells(maze.Cell{X: 1, Y: 1})
		assert.Equal(t, [4]maze.Cell{
			{X: 1, Y: 0}, {X: 1, Y: 2}, {X: 0, Y: 1}, {X: 2, Y: 1},
		}, cells)
	})

	t.Run("available directions filter walls", func(t *testing.T) {
		available := nav.AvailableDirections(maze.Cell{X: 1, Y: 1})
		assert.Equal(t, []maze.Direction{maze.Down, maze.Right}, available)
	})

	t.Run("queries do not mutate state", func(t *testing.T) {
		before := nav.History()
		_ = nav.AvailableDirections(nav.Current())
		_ = nav.UnvisitedAdjacent(nav.Current())
		_ = nav.AdjacentCells(nav.Current())
		assert.Equal(t, before, nav.History())
		assert.Equal(t, 0, nav.Steps())
	})
}

func TestNavigationUnvisitedAdjacent(t *testing.T) {
	g := parseGrid(t, openRoom)
	nav := NewNavigation(g)

	assert.Equal(t, []maze.Cell{{X: 1, Y: 2}, {X: 2, Y: 1}}, nav.UnvisitedAdjacent(nav.Current()))

	nav.Append(maze.Cell{X: 2, Y: 1})
	assert.Equal(t, []maze.Cell{{X: 3, Y: 1}}, nav.UnvisitedAdjacent(nav.Current()))
}

func TestNavigationAppendIsUnconditional(t *testing.T) {
	g := parseGrid(t, openRoom)
	nav := NewNavigation(g)

	// Append validates nothing, even a wall or a far jump is recorded.
	nav.Append(maze.Cell{X: 2, Y: 2})
	nav.Append(maze.Cell{X: 3, Y: 3})

	assert.Equal(t, 2, nav.Steps())
	assert.Equal(t, maze.Cell{X: 3, Y: 3}, nav.Current())
	assert.Len(t, nav.History(), 3)
}

func TestNavigationReset(t *testing.T) {
	g := parseGrid(t, openRoom)
	nav := NewNavigation(g)
	for i := 0; i < 25; i++ {
		nav.Append(maze.Cell{X: 1 + i%2, Y: 1})
	}

	nav.Reset()

	assert.Equal(t, g.Start(), nav.Current())
	assert.Equal(t, 0, nav.Steps())
	assert.Equal(t, []maze.Cell{g.Start()}, nav.History())
}
