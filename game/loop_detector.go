package game

import (
	"fmt"
	"strings"

	"github.com/beka-birhanu/labyrinth-api/maze"
)

// Trailing-window sizes of the two loop signals.
const (
	repetitionWindow  = 8
	confinementWindow = 6
)

// DetectLoop reports whether the trailing move history shows a repetitive
// or spatially confined movement pattern.
//
// Two independent checks are OR'd: an exact-alternation check (A-B-A-B or
// A-B-C-A-B-C over the last entries of an 8-cell window in which some cell
// already repeats three times) and a confinement check (the last 6 entries
// fit inside a 3x3 bounding box). Both are O(window); neither maintains
// state between calls.
func DetectLoop(history []maze.Cell) bool {
	return repetitionSignal(history) || confinementSignal(history)
}

func repetitionSignal(history []maze.Cell) bool {
	window := tail(history, repetitionWindow)
	if len(window) < 6 {
		return false
	}

	counts := make(map[maze.Cell]int, len(window))
	mostFrequent := 0
	for _, c := range window {
		counts[c]++
		if counts[c] > mostFrequent {
			mostFrequent = counts[c]
		}
	}
	if mostFrequent < 3 {
		return false
	}

	last4 := window[len(window)-4:]
	if last4[0] == last4[2] && last4[1] == last4[3] && last4[0] != last4[1] {
		return true
	}

	last6 := window[len(window)-6:]
	if last6[0] == last6[3] && last6[1] == last6[4] && last6[2] == last6[5] &&
		last6[0] != last6[1] && last6[1] != last6[2] && last6[0] != last6[2] {
		return true
	}

	return false
}

func confinementSignal(history []maze.Cell) bool {
	window := tail(history, confinementWindow)
	if len(window) < confinementWindow {
		return false
	}

	minX, maxX := window[0].X, window[0].X
	minY, maxY := window[0].Y, window[0].Y
	for _, c := range window[1:] {
		minX, maxX = min(minX, c.X), max(maxX, c.X)
		minY, maxY = min(minY, c.Y), max(maxY, c.Y)
	}
	return maxX-minX <= 2 && maxY-minY <= 2
}

// MovementPattern renders the trailing direction sequence as a short
// human-readable string, flagging the same alternation patterns DetectLoop
// looks for. The string is presentation only; it exists so the oracle's
// prompt can be told the agent is looping.
func MovementPattern(history []maze.Cell) string {
	const lookback = 6

	if len(history) < 2 {
		return "no movement history"
	}

	window := tail(history, lookback)
	directions := make([]string, 0, len(window)-1)
	for i := 1; i < len(window); i++ {
		if d, ok := maze.DirectionBetween(window[i-1], window[i]); ok {
			directions = append(directions, d.String())
		} else {
			directions = append(directions, "UNKNOWN")
		}
	}

	if len(directions) >= 4 {
		last4 := directions[len(directions)-4:]
		if last4[0] == last4[2] && last4[1] == last4[3] && last4[0] != last4[1] {
			return fmt.Sprintf(
				"WARNING: repeating pattern detected, last 4 moves: %s; the agent is moving back and forth. Change direction immediately",
				strings.Join(last4, " -> "))
		}
	}

	if len(directions) >= 6 {
		last6 := directions[len(directions)-6:]
		if last6[0] == last6[3] && last6[1] == last6[4] && last6[2] == last6[5] {
			return fmt.Sprintf(
				"WARNING: repeating pattern detected, last 6 moves: %s; the agent is cycling. Change direction immediately",
				strings.Join(last6, " -> "))
		}
	}

	return fmt.Sprintf("last %d moves: %s", len(directions), strings.Join(directions, " -> "))
}

func tail(history []maze.Cell, n int) []maze.Cell {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
