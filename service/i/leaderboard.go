package i

import "context"

// RankedRun is one leaderboard entry: a player's best solved run.
type RankedRun struct {
	Username string
	Steps    int
}

// Leaderboard ranks solved runs by step count, lowest first.
type Leaderboard interface {
	// RecordRun stores a finished run, keeping only the player's best.
	RecordRun(ctx context.Context, username string, steps int) error

	// Top returns up to n best runs, fewest steps first.
	Top(ctx context.Context, n int64) ([]RankedRun, error)
}
