package agent

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// GeminiAgent answers prompts via the Gemini API. It is immutable after
// construction; the underlying genai client is safe for concurrent use.
type GeminiAgent struct {
	client       *genai.Client
	model        string
	instructions string
	temperature  *float32
}

// New builds a Gemini-backed agent from cfg. An empty model or empty
// instructions fall back to the package defaults. Construction does not
// talk to the network; a bad credential only surfaces on Complete.
func New(ctx context.Context, cfg Config) (*GeminiAgent, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	instructions := cfg.Instructions
	if instructions == "" {
		instructions = DefaultInstructions
	}
	temperature := cfg.Temperature
	if temperature == nil {
		temperature = genai.Ptr(defaultTemperature)
	}

	return &GeminiAgent{
		client:       client,
		model:        model,
		instructions: instructions,
		temperature:  temperature,
	}, nil
}

// Name returns the model name.
func (a *GeminiAgent) Name() string {
	return a.model
}

// Instructions returns the resolved instruction text.
func (a *GeminiAgent) Instructions() string {
	return a.instructions
}

// Complete implements Agent.
func (a *GeminiAgent) Complete(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		Temperature:       a.temperature,
		SystemInstruction: genai.NewContentFromText(a.instructions, genai.RoleUser),
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}

	return resp.Text(), nil
}

// IsProviderError reports whether err was returned by the Gemini API
// itself, as opposed to transport failures or programming errors.
func IsProviderError(err error) bool {
	var apiErr genai.APIError
	return errors.As(err, &apiErr)
}
