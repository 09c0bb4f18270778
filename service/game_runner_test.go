package service

import (
	"context"
	"errors"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/labyrinth-api/domain"
	"github.com/beka-birhanu/labyrinth-api/maze"
	"github.com/beka-birhanu/labyrinth-api/oracle"
	"github.com/beka-birhanu/labyrinth-api/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProposer struct {
	fn func(oracle.Situation) (maze.Cell, error)
}

func (f *fakeProposer) Propose(_ context.Context, s oracle.Situation) (maze.Cell, error) {
	return f.fn(s)
}

type quietLogger struct{}

func (quietLogger) Info(string)    {}
func (quietLogger) Warning(string) {}
func (quietLogger) Error(string)   {}

type fakePlayerRepo struct {
	players map[uuid.UUID]*dmn.Player
	saved   []*dmn.Player
}

func (f *fakePlayerRepo) Save(p *dmn.Player) error {
	f.players[p.ID] = p
	f.saved = append(f.saved, p)
	return nil
}

func (f *fakePlayerRepo) ByID(id uuid.UUID) (*dmn.Player, error) {
	p, ok := f.players[id]
	if !ok {
		return nil, errors.New("player not found")
	}
	return p, nil
}

func (f *fakePlayerRepo) ByUsername(username string) (*dmn.Player, error) {
	for _, p := range f.players {
		if p.Username == username {
			return p, nil
		}
	}
	return nil, errors.New("player not found")
}

type fakeBoard struct {
	runs []i.RankedRun
}

func (f *fakeBoard) RecordRun(_ context.Context, username string, steps int) error {
	f.runs = append(f.runs, i.RankedRun{Username: username, Steps: steps})
	return nil
}

func (f *fakeBoard) Top(context.Context, int64) ([]i.RankedRun, error) {
	return f.runs, nil
}

func newTestRunner(t *testing.T, propose func(oracle.Situation) (maze.Cell, error)) *GameRunner {
	t.Helper()
	g, err := NewGameRunner(&Config{
		Proposer:       &fakeProposer{fn: propose},
		Logger:         quietLogger{},
		MazeWidth:      5,
		MazeHeight:     5,
		OracleInterval: time.Hour,
	})
	require.NoError(t, err)
	return g
}

func failingOracle(oracle.Situation) (maze.Cell, error) {
	return maze.Cell{}, oracle.ErrUnavailable
}

func TestStartSession(t *testing.T) {
	g := newTestRunner(t, failingOracle)
	playerID := uuid.New()

	snapshot, err := g.StartSession(playerID)
	require.NoError(t, err)

	assert.Equal(t, maze.Cell{X: 1, Y: 1}, snapshot.Current)
	assert.Equal(t, maze.Cell{X: 3, Y: 3}, snapshot.Goal)
	assert.Equal(t, 0, snapshot.Steps)
	assert.False(t, snapshot.Won)
	assert.False(t, snapshot.Auto)
	assert.Len(t, snapshot.Rows, 5)
}

func TestSnapshotWithoutSession(t *testing.T) {
	g := newTestRunner(t, failingOracle)

	_, err := g.Snapshot(uuid.New())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManualMove(t *testing.T) {
	g := newTestRunner(t, failingOracle)
	playerID := uuid.New()
	_, err := g.StartSession(playerID)
	require.NoError(t, err)

	t.Run("blocked by wall", func(t *testing.T) {
		// The row above the start cell is always the border wall.
		_, err := g.ManualMove(playerID, maze.Up)
		assert.Error(t, err)
	})

	t.Run("passage accepted", func(t *testing.T) {
		open := g.runs[playerID].session.AvailableDirections()
		require.NotEmpty(t, open)

		snapshot, err := g.ManualMove(playerID, open[0])
		require.NoError(t, err)
		assert.Equal(t, 1, snapshot.Steps)
	})

	t.Run("rejected in auto mode", func(t *testing.T) {
		_, err := g.SetAutoMode(playerID, true)
		require.NoError(t, err)
		defer func() {
			_, err := g.SetAutoMode(playerID, false)
			require.NoError(t, err)
		}()

		_, err = g.ManualMove(playerID, maze.Down)
		assert.ErrorIs(t, err, ErrAutoModeActive)
	})
}

func TestOracleStepAppliesProposal(t *testing.T) {
	g := newTestRunner(t, func(s oracle.Situation) (maze.Cell, error) {
		return s.Current.Translate(s.AvailableDirections[0]), nil
	})
	playerID := uuid.New()
	_, err := g.StartSession(playerID)
	require.NoError(t, err)

	want := g.runs[playerID].session.Current().Translate(
		g.runs[playerID].session.AvailableDirections()[0])

	snapshot, err := g.OracleStep(context.Background(), playerID)
	require.NoError(t, err)
	assert.Equal(t, want, snapshot.Current)
	assert.Equal(t, 1, snapshot.Steps)
}

func TestOracleStepFallsBackOnFailure(t *testing.T) {
	g := newTestRunner(t, failingOracle)
	playerID := uuid.New()
	_, err := g.StartSession(playerID)
	require.NoError(t, err)

	snapshot, err := g.OracleStep(context.Background(), playerID)
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.Steps)
}

func TestOracleStepCooldown(t *testing.T) {
	g := newTestRunner(t, failingOracle)
	playerID := uuid.New()
	_, err := g.StartSession(playerID)
	require.NoError(t, err)

	_, err = g.OracleStep(context.Background(), playerID)
	require.NoError(t, err)

	_, err = g.OracleStep(context.Background(), playerID)
	assert.ErrorIs(t, err, ErrOracleCooldown)
}

func TestRegenerateResetsRun(t *testing.T) {
	g := newTestRunner(t, failingOracle)
	playerID := uuid.New()
	_, err := g.StartSession(playerID)
	require.NoError(t, err)

	_, err = g.OracleStep(context.Background(), playerID)
	require.NoError(t, err)

	snapshot, err := g.Regenerate(playerID)
	require.NoError(t, err)
	assert.Equal(t, 0, snapshot.Steps)
	assert.Equal(t, maze.Cell{X: 1, Y: 1}, snapshot.Current)

	// Regeneration also clears the oracle cooldown.
	_, err = g.OracleStep(context.Background(), playerID)
	assert.NoError(t, err)
}

func TestRecordWin(t *testing.T) {
	playerID := uuid.New()
	repo := &fakePlayerRepo{players: map[uuid.UUID]*dmn.Player{
		playerID: {ID: playerID, Username: "ariana", Solves: 1, BestSteps: 50},
	}}
	board := &fakeBoard{}

	g, err := NewGameRunner(&Config{
		Proposer:    &fakeProposer{fn: failingOracle},
		Logger:      quietLogger{},
		Players:     repo,
		Leaderboard: board,
	})
	require.NoError(t, err)

	g.recordWin(playerID, 30)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, 2, repo.saved[0].Solves)
	assert.Equal(t, 30, repo.saved[0].BestSteps)
	require.Len(t, board.runs, 1)
	assert.Equal(t, i.RankedRun{Username: "ariana", Steps: 30}, board.runs[0])
}

func TestStartSessionReplacesRun(t *testing.T) {
	g := newTestRunner(t, failingOracle)
	playerID := uuid.New()
	_, err := g.StartSession(playerID)
	require.NoError(t, err)

	_, err = g.OracleStep(context.Background(), playerID)
	require.NoError(t, err)

	snapshot, err := g.StartSession(playerID)
	require.NoError(t, err)
	assert.Equal(t, 0, snapshot.Steps)
}
