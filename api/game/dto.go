// Package gameapi provides structures and utilities for maze run requests
// and responses.
package gameapi

import "github.com/beka-birhanu/labyrinth-api/service/i"

// MoveRequest asks for one manual step in a compass direction.
type MoveRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// ModeRequest toggles oracle-driven play for the run.
type ModeRequest struct {
	Auto *bool `json:"auto" binding:"required"`
}

// SnapshotResponse is the client-facing view of a maze run.
type SnapshotResponse struct {
	Rows    []string `json:"rows"`
	Current Position `json:"current"`
	Goal    Position `json:"goal"`
	Steps   int      `json:"steps"`
	Looping bool     `json:"looping"`
	Pattern string   `json:"pattern"`
	Won     bool     `json:"won"`
	Auto    bool     `json:"auto"`
}

// Position is a cell coordinate in the maze.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// RankedRunResponse is one leaderboard entry.
type RankedRunResponse struct {
	Username string `json:"username"`
	Steps    int    `json:"steps"`
}

func newSnapshotResponse(s *i.Snapshot) *SnapshotResponse {
	return &SnapshotResponse{
		Rows:    s.Rows,
		Current: Position{X: s.Current.X, Y: s.Current.Y},
		Goal:    Position{X: s.Goal.X, Y: s.Goal.Y},
		Steps:   s.Steps,
		Looping: s.Looping,
		Pattern: s.Pattern,
		Won:     s.Won,
		Auto:    s.Auto,
	}
}
