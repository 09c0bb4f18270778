/*
Package oracle defines the external decision boundary of a maze run: a
capability that, given a situation snapshot, proposes the next cell to
move to.

The core never depends on how a proposal is produced. Transport, prompt
formatting and response parsing all live behind the Proposer interface;
a failed or unparseable proposal is reported as an error and the caller
falls back to its deterministic move policy.
*/
package oracle

import (
	"context"
	"errors"

	"github.com/beka-birhanu/labyrinth-api/maze"
)

// ErrUnavailable wraps any transport or parsing failure of a proposer.
// Callers treat it as "proposal absent".
var ErrUnavailable = errors.New("oracle unavailable")

// Situation is the snapshot handed to a proposer for one decision.
type Situation struct {
	// MazeMap is the serialized grid with P and G markers.
	MazeMap string
	// Current is the agent's cell.
	Current maze.Cell
	// Goal is the maze's goal cell.
	Goal maze.Cell
	// History is the ordered move history, oldest first.
	History []maze.Cell
	// AvailableDirections are the passable directions from Current.
	AvailableDirections []maze.Direction
	// Looping is the loop detector's signal for the current history.
	Looping bool
	// Pattern is the human-readable trailing-movement description.
	Pattern string
}

// Proposer proposes the next cell for a situation, or fails.
type Proposer interface {
	Propose(ctx context.Context, s Situation) (maze.Cell, error)
}
