package agent

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genai"
)

func TestNew_AppliesDefaults(t *testing.T) {
	a, err := New(context.Background(), Config{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if a.Name() != DefaultModel {
		t.Errorf("expected default model %q, got %q", DefaultModel, a.Name())
	}
	if a.Instructions() != DefaultInstructions {
		t.Errorf("expected default instructions, got %q", a.Instructions())
	}
	if a.temperature == nil || *a.temperature != defaultTemperature {
		t.Errorf("expected default temperature %v, got %v", defaultTemperature, a.temperature)
	}
}

func TestNew_PreservesCustomConfig(t *testing.T) {
	a, err := New(context.Background(), Config{
		Model:        "gemini-1.5-pro",
		Instructions: "Test instructions",
		APIKey:       "test-key",
		Temperature:  genai.Ptr(float32(0.9)),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if a.Name() != "gemini-1.5-pro" {
		t.Errorf("expected model gemini-1.5-pro, got %q", a.Name())
	}
	if a.Instructions() != "Test instructions" {
		t.Errorf("expected custom instructions, got %q", a.Instructions())
	}
	if *a.temperature != 0.9 {
		t.Errorf("expected temperature 0.9, got %v", *a.temperature)
	}
}

func TestIsProviderError(t *testing.T) {
	apiErr := genai.APIError{Code: 429, Message: "quota exceeded"}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("connection refused"), false},
		{"api error", apiErr, true},
		{"wrapped api error", fmt.Errorf("generating content: %w", apiErr), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsProviderError(tt.err); got != tt.want {
				t.Errorf("IsProviderError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
