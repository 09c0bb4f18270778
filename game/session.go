package game

import (
	"errors"
	"math/rand"

	"github.com/beka-birhanu/labyrinth-api/maze"
)

// ErrBlockedMove is returned by ManualMove when the requested direction
// leads into a wall. The navigation state is unchanged.
var ErrBlockedMove = errors.New("move blocked by wall")

// Session owns one maze run: the grid, the navigation state, the resolver
// and the mode flags. It is the single mutable unit of the game; callers
// that share a session across goroutines must serialize access themselves.
type Session struct {
	width  int
	height int
	rng    *rand.Rand

	grid     *maze.Grid
	nav      *Navigation
	resolver *Resolver

	auto bool
	won  bool
}

// NewSession generates a fresh maze of the given odd dimensions and places
// the agent on its start cell. The random source drives both maze carving
// and the resolver's boxed-in fallback.
func NewSession(width, height int, rng *rand.Rand) (*Session, error) {
	grid, err := maze.Generate(width, height, rng)
	if err != nil {
		return nil, err
	}

	return &Session{
		width:    width,
		height:   height,
		rng:      rng,
		grid:     grid,
		nav:      NewNavigation(grid),
		resolver: NewResolver(rng),
	}, nil
}

// Grid returns the session's maze for read-only use.
func (s *Session) Grid() *maze.Grid {
	return s.grid
}

// Current returns the agent's cell.
func (s *Session) Current() maze.Cell {
	return s.nav.Current()
}

// Goal returns the maze's goal cell.
func (s *Session) Goal() maze.Cell {
	return s.grid.Goal()
}

// Steps returns the count of accepted moves.
func (s *Session) Steps() int {
	return s.nav.Steps()
}

// History returns a copy of the move history.
func (s *Session) History() []maze.Cell {
	return s.nav.History()
}

// Won reports whether the agent has reached the goal.
func (s *Session) Won() bool {
	return s.won
}

// AutoMode reports whether the session is oracle-driven.
func (s *Session) AutoMode() bool {
	return s.auto
}

// SetAutoMode switches the session between manual and oracle-driven play.
func (s *Session) SetAutoMode(on bool) {
	s.auto = on
}

// Looping evaluates the loop detector over the current history.
func (s *Session) Looping() bool {
	return DetectLoop(s.nav.History())
}

// Pattern describes the trailing movement for the oracle prompt.
func (s *Session) Pattern() string {
	return MovementPattern(s.nav.History())
}

// AvailableDirections lists the passable directions from the agent's cell.
func (s *Session) AvailableDirections() []maze.Direction {
	return s.nav.AvailableDirections(s.nav.Current())
}

// UnvisitedAdjacent lists the unvisited passable neighbors of the agent's
// cell.
func (s *Session) UnvisitedAdjacent() []maze.Cell {
	return s.nav.UnvisitedAdjacent(s.nav.Current())
}

// ManualMove steps one cell in the given direction. It runs only the wall
// check; no oracle is involved and the loop detector never overrides a
// manual move. Returns ErrBlockedMove without touching state when the
// target is a wall.
func (s *Session) ManualMove(d maze.Direction) (maze.Cell, error) {
	target := s.nav.Current().Translate(d)
	if s.grid.IsWallCell(target) {
		return maze.Cell{}, ErrBlockedMove
	}
	s.nav.Append(target)
	s.checkGoal()
	return target, nil
}

// Resolve runs the full move-resolution policy with the given loop signal
// and optional proposal, applying the accepted move and evaluating goal
// detection.
func (s *Session) Resolve(looping bool, proposal *maze.Cell) (maze.Cell, error) {
	applied, err := s.resolver.Resolve(s.nav, s.grid, looping, proposal)
	if err != nil {
		return maze.Cell{}, err
	}
	s.checkGoal()
	return applied, nil
}

// Regenerate discards the grid and the navigation state and rebuilds both
// with a fresh carve. The step counter returns to zero and the history to
// the single start cell. Mode flags survive regeneration.
func (s *Session) Regenerate() error {
	grid, err := maze.Generate(s.width, s.height, s.rng)
	if err != nil {
		return err
	}
	s.grid = grid
	s.nav = NewNavigation(grid)
	s.won = false
	return nil
}

// Render serializes the maze with the agent's marker for the oracle prompt.
func (s *Session) Render() string {
	return s.grid.Render(s.nav.Current())
}

func (s *Session) checkGoal() {
	if s.nav.Current() == s.grid.Goal() {
		s.won = true
	}
}
