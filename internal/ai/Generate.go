package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"sitegen_server/internal/types"
	"sitegen_server/internal/utils"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a helpful AI assistant that generates website code based on user prompts and specific formatting instructions."

var retryDelay = 2 * time.Second

// Generate sends a single-turn prompt and returns the raw model text.
// Transient failures are retried once.
func (g *Generator) Generate(ctx context.Context, prompt string, opts types.GenerationOptions) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
		TopP:        opts.TopP,
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)

	if err != nil && utils.ShouldRetry(err) {
		log.Printf("OpenAI call failed, retrying once after delay... Error: %s", utils.SanitizeError(err, "AI service error"))
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("openai chat completion failed: %w", ctx.Err())
		case <-time.After(retryDelay):
		}
		resp, err = g.client.CreateChatCompletion(ctx, req)
	}

	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		log.Printf("OpenAI usage for failed request: %+v", resp.Usage)
		return "", errors.New("openai returned empty response")
	}

	return resp.Choices[0].Message.Content, nil
}
