package ai

import (
	"log"

	openai "github.com/sashabaranov/go-openai"
)

const defaultModel = openai.GPT4o

// Generator is the text-generation collaborator backed by an OpenAI-compatible API.
type Generator struct {
	client *openai.Client
	model  string
}

// NewGenerator builds a Generator. baseURL may be empty to use the public
// OpenAI endpoint; model defaults to GPT-4o.
func NewGenerator(apiKey, baseURL, model string) *Generator {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" {
		model = defaultModel
	}
	if apiKey == "" {
		log.Println("WARN: OpenAI API key is empty; generation requests will fail.")
	}
	return &Generator{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Model returns the chat model used for completions.
func (g *Generator) Model() string {
	return g.model
}
