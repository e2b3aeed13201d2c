package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const generatorTemperature = 0.3

// Generator produces prose completions from the Groq chat completions API,
// which is OpenAI-compatible.
type Generator struct {
	Model  string
	client *openai.Client
}

// NewGenerator creates a generation client for the given Groq API key, base
// URL and model name.
func NewGenerator(apiKey, baseURL, model string) *Generator {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL

	return &Generator{
		Model:  model,
		client: openai.NewClientWithConfig(cfg),
	}
}

// Generate sends the prompt as a single user message and returns the
// generated text.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.Model,
		Temperature: generatorTemperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no completion returned")
	}

	return resp.Choices[0].Message.Content, nil
}
