package oracle

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/beka-birhanu/labyrinth-api/maze"
)

// Decisions need little creativity; low temperature keeps them stable, and
// a coordinate answer never needs many tokens.
const (
	completionTemperature = 0.3
	completionMaxTokens   = 200
)

const systemPrompt = `You are a maze solving assistant. Given the maze state and the current position, reason out the coordinate to move to next.
Rules, in priority order:
1. The coordinate must be a passage, not a wall.
2. The coordinate must be adjacent to the current position (up, down, left or right, distance 1).
3. Prefer positions that have not been visited yet.
4. Move toward the goal position (compare Manhattan distances).
5. Only when every unvisited adjacent position is unusable may you backtrack to a visited position. Backtracking is the last resort.
6. Never repeat moves. If you have been moving back and forth, change direction immediately and take a different path.
7. If the input warns about a detected loop or repeating pattern, you must pick a direction different from your recent moves, preferring unvisited positions.
Reply with only the coordinate as JSON: {"x": number, "y": number}`

// OpenAIClient asks an OpenAI-compatible chat-completion endpoint for the
// next move. It implements Proposer.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates a proposer talking to the given model. baseURL
// may be empty to use the provider default.
func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Propose sends the situation as a chat completion and parses the returned
// coordinate. Any transport failure, empty completion or unparseable body
// is reported as ErrUnavailable.
func (c *OpenAIClient) Propose(ctx context.Context, s Situation) (maze.Cell, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildPrompt(s)),
		},
		Temperature: openai.Float(completionTemperature),
		MaxTokens:   openai.Int(completionMaxTokens),
	})
	if err != nil {
		return maze.Cell{}, fmt.Errorf("%w: chat completion: %v", ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return maze.Cell{}, fmt.Errorf("%w: empty completion", ErrUnavailable)
	}

	cell, err := parseCell(resp.Choices[0].Message.Content)
	if err != nil {
		return maze.Cell{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return cell, nil
}
