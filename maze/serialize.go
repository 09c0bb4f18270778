package maze

import (
	"errors"
	"strings"
)

// Glyphs of the textual maze serialization.
const (
	glyphWall    = 'W'
	glyphPassage = '.'
	glyphPlayer  = 'P'
	glyphGoal    = 'G'
)

// ErrMalformedRows is returned by Parse for ragged, empty or unknown-glyph
// input.
var ErrMalformedRows = errors.New("malformed maze rows")

// Render serializes the grid as one text row per grid row, marking the
// player's cell with P, the goal with G, walls with W and passages with dots.
// The player glyph wins when the player stands on the goal.
func (g *Grid) Render(player Cell) string {
	var b strings.Builder
	goal := g.Goal()
	for y := 0; y < g.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < g.width; x++ {
			switch {
			case player.X == x && player.Y == y:
				b.WriteByte(glyphPlayer)
			case goal.X == x && goal.Y == y:
				b.WriteByte(glyphGoal)
			case g.walls[y][x]:
				b.WriteByte(glyphWall)
			default:
				b.WriteByte(glyphPassage)
			}
		}
	}
	return b.String()
}

// Rows returns the serialized grid split per row, without a player marker.
func (g *Grid) Rows() []string {
	rendered := g.Render(Cell{X: -1, Y: -1})
	return strings.Split(rendered, "\n")
}

// Parse rebuilds a Grid from serialized rows, accepting any of the Render
// glyphs. P and G count as passages. Dimensions must satisfy the same odd
// >=3 constraint as generated mazes.
func Parse(rows []string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrMalformedRows
	}

	height := len(rows)
	width := len(rows[0])
	if err := validateDimensions(width, height); err != nil {
		return nil, err
	}

	g := newGrid(width, height)
	for y, row := range rows {
		if len(row) != width {
			return nil, ErrMalformedRows
		}
		for x, glyph := range []byte(row) {
			switch glyph {
			case glyphWall:
				g.walls[y][x] = true
			case glyphPassage, glyphPlayer, glyphGoal:
				g.walls[y][x] = false
			default:
				return nil, ErrMalformedRows
			}
		}
	}
	return g, nil
}
