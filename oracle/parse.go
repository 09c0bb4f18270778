package oracle

import (
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/beka-birhanu/labyrinth-api/maze"
)

var (
	errNoCoordinate = errors.New("no coordinate in response")

	numberPattern = regexp.MustCompile(`\d+`)
)

// parseCell extracts a coordinate from a model response. It tries, in
// order: a ```json fenced block, any ``` fenced block, the raw body as
// JSON, and finally the first two integers anywhere in the text.
func parseCell(content string) (maze.Cell, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return maze.Cell{}, errNoCoordinate
	}

	if cell, ok := unmarshalCell(extractFenced(content)); ok {
		return cell, nil
	}

	numbers := numberPattern.FindAllString(content, 2)
	if len(numbers) == 2 {
		x, errX := strconv.Atoi(numbers[0])
		y, errY := strconv.Atoi(numbers[1])
		if errX == nil && errY == nil {
			return maze.Cell{X: x, Y: y}, nil
		}
	}

	return maze.Cell{}, errNoCoordinate
}

// extractFenced strips a markdown code fence when present, otherwise
// returns the content unchanged.
func extractFenced(content string) string {
	marker := "```json"
	idx := strings.Index(content, marker)
	if idx < 0 {
		marker = "```"
		idx = strings.Index(content, marker)
	}
	if idx < 0 {
		return content
	}

	body := content[idx+len(marker):]
	if end := strings.Index(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

func unmarshalCell(body string) (maze.Cell, bool) {
	var payload struct {
		X *int `json:"x"`
		Y *int `json:"y"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return maze.Cell{}, false
	}
	if payload.X == nil || payload.Y == nil {
		return maze.Cell{}, false
	}
	return maze.Cell{X: *payload.X, Y: *payload.Y}, true
}
