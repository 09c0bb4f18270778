package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/beka-birhanu/labyrinth-api/game"
	"github.com/beka-birhanu/labyrinth-api/maze"
	"github.com/beka-birhanu/labyrinth-api/oracle"
	"github.com/beka-birhanu/labyrinth-api/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/google/uuid"
)

const (
	defaultMazeWidth      = 21
	defaultMazeHeight     = 21
	defaultOracleInterval = time.Second

	turnLockKeyFmt = "labyrinth:run:%s:turn_lock"
)

// GameRunner errors.
var (
	ErrNoSession      = errors.New("player has no active session")
	ErrOracleCooldown = errors.New("oracle interval has not elapsed")
	ErrRunFinished    = errors.New("run already finished")
	ErrAutoModeActive = errors.New("manual moves are disabled in auto mode")
)

// run pairs a session with its turn serialization and auto-loop state.
type run struct {
	session        *game.Session
	mu             sync.Mutex
	lastOracleCall time.Time
	stopAuto       chan struct{}
}

// GameRunner manages one maze run per player. Each run processes a single
// turn at a time: the per-run mutex serializes turns in-process and, when a
// locker is configured, a redsync mutex extends the guarantee across
// replicas so at most one oracle decision is in flight per run.
type GameRunner struct {
	proposer       oracle.Proposer
	players        i.PlayerRepo
	board          i.Leaderboard
	locker         *redsync.Redsync
	logger         i.Logger
	mazeWidth      int
	mazeHeight     int
	oracleInterval time.Duration

	runs map[uuid.UUID]*run
	sync.RWMutex
}

// Config holds dependency and sizing settings for a GameRunner. Players,
// Leaderboard and Locker are optional; without them wins are not persisted
// and turn locking stays in-process.
type Config struct {
	Proposer       oracle.Proposer
	Players        i.PlayerRepo
	Leaderboard    i.Leaderboard
	Locker         *redsync.Redsync
	Logger         i.Logger
	MazeWidth      int
	MazeHeight     int
	OracleInterval time.Duration
}

// NewGameRunner creates a GameRunner from the given configuration.
func NewGameRunner(c *Config) (*GameRunner, error) {
	if c.Proposer == nil {
		return nil, errors.New("proposer is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}

	width, height := c.MazeWidth, c.MazeHeight
	if width == 0 {
		width = defaultMazeWidth
	}
	if height == 0 {
		height = defaultMazeHeight
	}

	interval := c.OracleInterval
	if interval <= 0 {
		interval = defaultOracleInterval
	}

	return &GameRunner{
		proposer:       c.Proposer,
		players:        c.Players,
		board:          c.Leaderboard,
		locker:         c.Locker,
		logger:         c.Logger,
		mazeWidth:      width,
		mazeHeight:     height,
		oracleInterval: interval,
		runs:           make(map[uuid.UUID]*run),
	}, nil
}

// StartSession creates a fresh maze run for the player, replacing and
// stopping any existing one.
func (g *GameRunner) StartSession(playerID uuid.UUID) (*i.Snapshot, error) {
	session, err := game.NewSession(g.mazeWidth, g.mazeHeight, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		return nil, err
	}

	g.Lock()
	if old, ok := g.runs[playerID]; ok {
		stopAutoLoop(old)
	}
	g.runs[playerID] = &run{session: session}
	g.Unlock()

	g.logger.Info(fmt.Sprintf("started %dx%d run for player %s", g.mazeWidth, g.mazeHeight, playerID))
	return snapshotOf(session), nil
}

// Snapshot returns the current view of the player's run.
func (g *GameRunner) Snapshot(playerID uuid.UUID) (*i.Snapshot, error) {
	r, err := g.runOf(playerID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return snapshotOf(r.session), nil
}

// ManualMove steps the player's agent one cell. Only wall validation
// applies; the loop detector never overrides a manual move.
func (g *GameRunner) ManualMove(playerID uuid.UUID, d maze.Direction) (*i.Snapshot, error) {
	r, err := g.runOf(playerID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session.AutoMode() {
		return nil, ErrAutoModeActive
	}
	if r.session.Won() {
		return nil, ErrRunFinished
	}

	if _, err := r.session.ManualMove(d); err != nil {
		return nil, err
	}
	if r.session.Won() {
		g.recordWin(playerID, r.session.Steps())
	}
	return snapshotOf(r.session), nil
}

// OracleStep runs a single oracle-driven turn, honoring the minimum
// interval between oracle invocations.
func (g *GameRunner) OracleStep(ctx context.Context, playerID uuid.UUID) (*i.Snapshot, error) {
	return g.oracleTurn(ctx, playerID, true)
}

// SetAutoMode switches the run between manual and oracle-driven play,
// starting or stopping the background stepping loop.
func (g *GameRunner) SetAutoMode(playerID uuid.UUID, on bool) (*i.Snapshot, error) {
	r, err := g.runOf(playerID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.session.SetAutoMode(on)
	if on && r.stopAuto == nil {
		r.stopAuto = make(chan struct{})
		go g.autoLoop(playerID, r.stopAuto)
		g.logger.Info(fmt.Sprintf("auto mode on for player %s", playerID))
	}
	if !on && r.stopAuto != nil {
		close(r.stopAuto)
		r.stopAuto = nil
		g.logger.Info(fmt.Sprintf("auto mode off for player %s", playerID))
	}
	return snapshotOf(r.session), nil
}

// Regenerate discards the maze and history and rebuilds both from scratch.
func (g *GameRunner) Regenerate(playerID uuid.UUID) (*i.Snapshot, error) {
	r, err := g.runOf(playerID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.session.Regenerate(); err != nil {
		return nil, err
	}
	r.lastOracleCall = time.Time{}
	g.logger.Info(fmt.Sprintf("regenerated maze for player %s", playerID))
	return snapshotOf(r.session), nil
}

// StopAll terminates every auto-run loop.
func (g *GameRunner) StopAll() {
	g.Lock()
	defer g.Unlock()
	for _, r := range g.runs {
		stopAutoLoop(r)
	}
}

// oracleTurn is one complete oracle-driven turn: loop detection, the
// optional oracle call, resolution and win bookkeeping. The auto loop
// skips the interval check since its ticker already paces it.
func (g *GameRunner) oracleTurn(ctx context.Context, playerID uuid.UUID, enforceInterval bool) (*i.Snapshot, error) {
	r, err := g.runOf(playerID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session.Won() {
		return nil, ErrRunFinished
	}
	if enforceInterval && time.Since(r.lastOracleCall) < g.oracleInterval {
		return nil, ErrOracleCooldown
	}

	if g.locker != nil {
		mutex := g.locker.NewMutex(fmt.Sprintf(turnLockKeyFmt, playerID))
		if err := mutex.Lock(); err != nil {
			return nil, err
		}
		defer func() {
			_, _ = mutex.Unlock()
		}()
	}

	looping := r.session.Looping()
	overriding := looping && len(r.session.UnvisitedAdjacent()) > 0

	var proposal *maze.Cell
	if overriding {
		g.logger.Info(fmt.Sprintf("loop detected for player %s, overriding oracle: %s", playerID, r.session.Pattern()))
	} else {
		r.lastOracleCall = time.Now()
		cell, err := g.proposer.Propose(ctx, g.situationOf(r.session))
		if err != nil {
			g.logger.Warning(fmt.Sprintf("oracle failed for player %s, falling back: %v", playerID, err))
		} else {
			proposal = &cell
		}
	}

	applied, err := r.session.Resolve(looping, proposal)
	if err != nil {
		g.logger.Error(fmt.Sprintf("no move possible for player %s: %v", playerID, err))
		return nil, err
	}

	g.logger.Info(fmt.Sprintf("player %s moved to (%d, %d), step %d", playerID, applied.X, applied.Y, r.session.Steps()))
	if r.session.Won() {
		g.recordWin(playerID, r.session.Steps())
	}
	return snapshotOf(r.session), nil
}

// autoLoop drives oracle turns at the configured cadence until the run
// wins, dies or auto mode is switched off.
func (g *GameRunner) autoLoop(playerID uuid.UUID, stop <-chan struct{}) {
	ticker := time.NewTicker(g.oracleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			snapshot, err := g.oracleTurn(context.Background(), playerID, false)
			switch {
			case errors.Is(err, ErrRunFinished), errors.Is(err, ErrNoSession), errors.Is(err, game.ErrNoMoves):
				_, _ = g.SetAutoMode(playerID, false)
				return
			case err != nil:
				continue
			case snapshot.Won:
				g.logger.Info(fmt.Sprintf("player %s reached the goal in %d steps", playerID, snapshot.Steps))
				_, _ = g.SetAutoMode(playerID, false)
				return
			}
		}
	}
}

// recordWin persists the finished run. Persistence failures are logged,
// never surfaced: the win itself already happened.
func (g *GameRunner) recordWin(playerID uuid.UUID, steps int) {
	if g.players == nil {
		return
	}

	player, err := g.players.ByID(playerID)
	if err != nil {
		g.logger.Error(fmt.Sprintf("recording win for player %s: %v", playerID, err))
		return
	}

	player.RecordSolve(steps)
	if err := g.players.Save(player); err != nil {
		g.logger.Error(fmt.Sprintf("saving win for player %s: %v", playerID, err))
	}

	if g.board == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := g.board.RecordRun(ctx, player.Username, steps); err != nil {
		g.logger.Error(fmt.Sprintf("updating leaderboard for player %s: %v", playerID, err))
	}
}

func (g *GameRunner) runOf(playerID uuid.UUID) (*run, error) {
	g.RLock()
	defer g.RUnlock()
	r, ok := g.runs[playerID]
	if !ok {
		return nil, ErrNoSession
	}
	return r, nil
}

func (g *GameRunner) situationOf(s *game.Session) oracle.Situation {
	return oracle.Situation{
		MazeMap:             s.Render(),
		Current:             s.Current(),
		Goal:                s.Goal(),
		History:             s.History(),
		AvailableDirections: s.AvailableDirections(),
		Looping:             s.Looping(),
		Pattern:             s.Pattern(),
	}
}

func snapshotOf(s *game.Session) *i.Snapshot {
	return &i.Snapshot{
		Rows:    strings.Split(s.Render(), "\n"),
		Current: s.Current(),
		Goal:    s.Goal(),
		Steps:   s.Steps(),
		Looping: s.Looping(),
		Pattern: s.Pattern(),
		Won:     s.Won(),
		Auto:    s.AutoMode(),
	}
}

// stopAutoLoop closes a run's auto channel; callers hold the manager lock.
func stopAutoLoop(r *run) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopAuto != nil {
		close(r.stopAuto)
		r.stopAuto = nil
	}
	r.session.SetAutoMode(false)
}
