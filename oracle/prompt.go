package oracle

import (
	"fmt"
	"strings"

	"github.com/beka-birhanu/labyrinth-api/maze"
)

// Long histories are truncated in the prompt: the first few entries and
// the recent tail matter, the middle does not.
const (
	historyFullLimit = 20
	historyHeadSize  = 5
	historyTailSize  = 15
)

// buildPrompt renders a situation as the user message of the decision
// request.
func buildPrompt(s Situation) string {
	var b strings.Builder

	b.WriteString("Current maze state (W=wall, .=passage, P=player, G=goal):\n")
	b.WriteString(s.MazeMap)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Current position: (%d, %d)\n", s.Current.X, s.Current.Y)
	fmt.Fprintf(&b, "Goal position: (%d, %d)\n", s.Goal.X, s.Goal.Y)
	fmt.Fprintf(&b, "Manhattan distance to goal: %d\n\n", s.Current.ManhattanTo(s.Goal))

	visited := make(map[maze.Cell]bool, len(s.History))
	for _, c := range s.History {
		visited[c] = true
	}

	b.WriteString("Adjacent positions (pick one of these):\n")
	unvisitedCount := 0
	for _, d := range maze.Directions {
		adj := s.Current.Translate(d)
		status := "visited (avoid, backtrack only when necessary)"
		if !visited[adj] {
			status = "unvisited (prefer)"
			unvisitedCount++
		}
		fmt.Fprintf(&b, "  - %s: (%d, %d) %s\n", d, adj.X, adj.Y, status)
	}

	names := make([]string, len(s.AvailableDirections))
	for i, d := range s.AvailableDirections {
		names[i] = d.String()
	}
	fmt.Fprintf(&b, "\nPassable directions: %s\n", strings.Join(names, ", "))
	fmt.Fprintf(&b, "Unvisited adjacent positions: %d\n", unvisitedCount)
	if unvisitedCount == 0 {
		b.WriteString("Every adjacent position was visited already; backtracking is allowed now.\n")
	} else {
		b.WriteString("Unvisited adjacent positions exist; prefer them.\n")
	}

	if s.Looping {
		fmt.Fprintf(&b, "\nIMPORTANT: a repeating movement pattern was detected!\n%s\nChange direction immediately and prefer unvisited positions; repeating the same moves will never reach the goal.\n", s.Pattern)
	}

	fmt.Fprintf(&b, "\nVisited positions so far (%d, avoid moving to these):\n", len(s.History))
	writeHistory(&b, s.History)

	b.WriteString("\nReply with JSON only: {\"x\": number, \"y\": number}\n")
	return b.String()
}

func writeHistory(b *strings.Builder, history []maze.Cell) {
	if len(history) == 0 {
		b.WriteString("  none\n")
		return
	}

	if len(history) <= historyFullLimit {
		for i, c := range history {
			fmt.Fprintf(b, "  %d. (%d, %d)\n", i+1, c.X, c.Y)
		}
		return
	}

	for i := 0; i < historyHeadSize; i++ {
		fmt.Fprintf(b, "  %d. (%d, %d)\n", i+1, history[i].X, history[i].Y)
	}
	fmt.Fprintf(b, "  ... (%d positions omitted) ...\n", len(history)-historyHeadSize-historyTailSize)
	for i := len(history) - historyTailSize; i < len(history); i++ {
		fmt.Fprintf(b, "  %d. (%d, %d)\n", i+1, history[i].X, history[i].Y)
	}
}
