package game

import (
	"math/rand"
	"testing"

	"github.com/beka-birhanu/labyrinth-api/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParsedSession(t *testing.T, rows []string, seed int64) *Session {
	t.Helper()
	g := parseGrid(t, rows)
	rng := rand.New(rand.NewSource(seed))
	return &Session{
		width:    g.Width(),
		height:   g.Height(),
		rng:      rng,
		grid:     g,
		nav:      NewNavigation(g),
		resolver: NewResolver(rng),
	}
}

func TestNewSessionValidatesDimensions(t *testing.T) {
	_, err := NewSession(10, 11, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, maze.ErrEvenDimension)
}

func TestSessionManualMove(t *testing.T) {
	s := newParsedSession(t, openRoom, 1)

	t.Run("blocked by wall", func(t *testing.T) {
		_, err := s.ManualMove(maze.Up)
		assert.ErrorIs(t, err, ErrBlockedMove)
		assert.Equal(t, 0, s.Steps())
	})

	t.Run("walks a passage", func(t *testing.T) {
		applied, err := s.ManualMove(maze.Right)
		require.NoError(t, err)
		assert.Equal(t, maze.Cell{X: 2, Y: 1}, applied)
		assert.Equal(t, 1, s.Steps())
	})
}

func TestSessionGoalDetection(t *testing.T) {
	s := newParsedSession(t, openRoom, 1)

	path := []maze.Direction{maze.Right, maze.Right, maze.Down, maze.Down}
	for _, d := range path {
		_, err := s.ManualMove(d)
		require.NoError(t, err)
	}

	assert.True(t, s.Won())
	assert.Equal(t, s.Goal(), s.Current())
	assert.Equal(t, 4, s.Steps())
}

func TestSessionResolveSetsWon(t *testing.T) {
	s := newParsedSession(t, openRoom, 1)

	goal := s.Goal()
	applied, err := s.Resolve(false, &goal)

	require.NoError(t, err)
	assert.Equal(t, goal, applied)
	assert.True(t, s.Won())
}

func TestSessionRegenerate(t *testing.T) {
	s, err := NewSession(9, 9, rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	for i := 0; i < 40; i++ {
		if _, err := s.Resolve(s.Looping(), nil); err != nil {
			break
		}
	}
	require.NotZero(t, s.Steps())

	require.NoError(t, s.Regenerate())

	assert.Equal(t, 0, s.Steps())
	assert.Equal(t, []maze.Cell{s.Grid().Start()}, s.History())
	assert.Equal(t, s.Grid().Start(), s.Current())
	assert.False(t, s.Won())
}

func TestSessionAutoModeFlag(t *testing.T) {
	s := newParsedSession(t, openRoom, 1)

	assert.False(t, s.AutoMode())
	s.SetAutoMode(true)
	assert.True(t, s.AutoMode())

	require.NoError(t, s.Regenerate())
	assert.True(t, s.AutoMode(), "mode flag survives regeneration")
}

func TestSessionRender(t *testing.T) {
	s := newParsedSession(t, openRoom, 1)
	rendered := s.Render()
	assert.Contains(t, rendered, "P")
	assert.Contains(t, rendered, "G")
}
