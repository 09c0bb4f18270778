package i

import (
	"context"

	"github.com/beka-birhanu/labyrinth-api/maze"
	"github.com/google/uuid"
)

// Snapshot is the read-only view of a maze run handed to display layers.
type Snapshot struct {
	Rows    []string
	Current maze.Cell
	Goal    maze.Cell
	Steps   int
	Looping bool
	Pattern string
	Won     bool
	Auto    bool
}

// GameRunner manages one maze run per player: creation, manual and
// oracle-driven stepping, mode switching and regeneration.
type GameRunner interface {
	// StartSession creates a fresh maze run for the player, replacing any
	// existing one.
	StartSession(playerID uuid.UUID) (*Snapshot, error)

	// Snapshot returns the current view of the player's run.
	Snapshot(playerID uuid.UUID) (*Snapshot, error)

	// ManualMove steps the player's agent one cell in the given direction.
	ManualMove(playerID uuid.UUID, d maze.Direction) (*Snapshot, error)

	// OracleStep runs one oracle-driven turn.
	OracleStep(ctx context.Context, playerID uuid.UUID) (*Snapshot, error)

	// SetAutoMode switches the run between manual and oracle-driven play.
	// Turning auto mode on starts a background stepping loop.
	SetAutoMode(playerID uuid.UUID, on bool) (*Snapshot, error)

	// Regenerate discards the maze and history and rebuilds both.
	Regenerate(playerID uuid.UUID) (*Snapshot, error)

	// StopAll terminates every auto-run loop.
	StopAll()
}
