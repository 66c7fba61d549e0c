package llm

import (
	"context"
	"fmt"
)

// retryReminder is appended to the prompt after an invalid response
const retryReminder = `

Your previous response could not be used. Respond with a single JSON object that matches the schema exactly, with no commentary.`

// PromptGenerator sends the same prompt to a client on every attempt
type PromptGenerator struct {
	Client Client
	Tier   ModelTier
	Prompt string
}

// Generate requests one JSON response. Attempts after the first carry a reminder about the
// expected format.
func (g PromptGenerator) Generate(ctx context.Context, attempt int) (string, error) {
	if g.Client == nil {
		return "", fmt.Errorf("no LLM client configured")
	}
	prompt := g.Prompt
	if attempt > 1 {
		prompt += retryReminder
	}
	return g.Client.GenerateJSON(ctx, prompt, g.Tier)
}
