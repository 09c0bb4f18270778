// Package gameapi exposes maze runs over HTTP.
package gameapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/beka-birhanu/labyrinth-api/api/identity"
	"github.com/beka-birhanu/labyrinth-api/game"
	"github.com/beka-birhanu/labyrinth-api/maze"
	"github.com/beka-birhanu/labyrinth-api/service"
	"github.com/beka-birhanu/labyrinth-api/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const leaderboardSize = 10

// MazeController manages maze run operations for authenticated players.
type MazeController struct {
	runner i.GameRunner
	board  i.Leaderboard
}

// NewMazeController initializes a MazeController.
func NewMazeController(runner i.GameRunner, board i.Leaderboard) (*MazeController, error) {
	return &MazeController{
		runner: runner,
		board:  board,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazeRoutes := route.Group("/maze")
	{
		mazeRoutes.POST("/", mc.start)
		mazeRoutes.GET("/", mc.snapshot)
		mazeRoutes.POST("/moves", mc.move)
		mazeRoutes.POST("/oracle", mc.oracleStep)
		mazeRoutes.PUT("/mode", mc.setMode)
		mazeRoutes.POST("/regenerate", mc.regenerate)
		mazeRoutes.GET("/leaderboard", mc.leaderboard)
	}
}

// start creates a fresh run for the caller, replacing any existing one.
func (mc *MazeController) start(ctx *gin.Context) {
	playerID, ok := playerIDFromClaims(ctx)
	if !ok {
		return
	}

	snapshot, err := mc.runner.StartSession(playerID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, newSnapshotResponse(snapshot))
}

// snapshot returns the caller's current run state.
func (mc *MazeController) snapshot(ctx *gin.Context) {
	playerID, ok := playerIDFromClaims(ctx)
	if !ok {
		return
	}

	snapshot, err := mc.runner.Snapshot(playerID)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, newSnapshotResponse(snapshot))
}

// move applies one manual step.
func (mc *MazeController) move(ctx *gin.Context) {
	playerID, ok := playerIDFromClaims(ctx)
	if !ok {
		return
	}

	var request MoveRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	direction, ok := maze.ParseDirection(strings.ToUpper(request.Direction))
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "unknown direction"})
		return
	}

	snapshot, err := mc.runner.ManualMove(playerID, direction)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, newSnapshotResponse(snapshot))
}

// oracleStep runs one oracle-driven turn.
func (mc *MazeController) oracleStep(ctx *gin.Context) {
	playerID, ok := playerIDFromClaims(ctx)
	if !ok {
		return
	}

	snapshot, err := mc.runner.OracleStep(ctx, playerID)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, newSnapshotResponse(snapshot))
}

// setMode toggles oracle-driven play.
func (mc *MazeController) setMode(ctx *gin.Context) {
	playerID, ok := playerIDFromClaims(ctx)
	if !ok {
		return
	}

	var request ModeRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := mc.runner.SetAutoMode(playerID, *request.Auto)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, newSnapshotResponse(snapshot))
}

// regenerate rebuilds the caller's maze from scratch.
func (mc *MazeController) regenerate(ctx *gin.Context) {
	playerID, ok := playerIDFromClaims(ctx)
	if !ok {
		return
	}

	snapshot, err := mc.runner.Regenerate(playerID)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, newSnapshotResponse(snapshot))
}

// leaderboard returns the best solved runs, fewest steps first.
func (mc *MazeController) leaderboard(ctx *gin.Context) {
	timeoutCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	runs, err := mc.board.Top(timeoutCtx, leaderboardSize)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading leaderboard"})
		return
	}

	response := make([]RankedRunResponse, 0, len(runs))
	for _, run := range runs {
		response = append(response, RankedRunResponse{Username: run.Username, Steps: run.Steps})
	}
	ctx.JSON(http.StatusOK, response)
}

// playerIDFromClaims extracts the caller's ID from the token claims the
// authorization middleware attached. Writes the error response itself.
func playerIDFromClaims(ctx *gin.Context) (uuid.UUID, bool) {
	claims, exists := ctx.Get(identity.ContextPlayerClaims)
	if !exists {
		ctx.Status(http.StatusUnauthorized)
		return uuid.Nil, false
	}

	claimsMap, ok := claims.(map[string]interface{})
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return uuid.Nil, false
	}

	idString, ok := claimsMap["playerID"].(string)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return uuid.Nil, false
	}

	playerID, err := uuid.Parse(idString)
	if err != nil {
		ctx.Status(http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return playerID, true
}

// statusOf maps run errors to HTTP statuses.
func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrNoSession):
		return http.StatusNotFound
	case errors.Is(err, service.ErrOracleCooldown):
		return http.StatusTooManyRequests
	case errors.Is(err, service.ErrAutoModeActive),
		errors.Is(err, service.ErrRunFinished),
		errors.Is(err, game.ErrBlockedMove),
		errors.Is(err, game.ErrNoMoves):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
