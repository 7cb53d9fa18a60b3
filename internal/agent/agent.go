// Package agent provides the language-model backend used to answer prompts.
//
// The package is built around a single interface:
//
//	Agent - turns one prompt string into one completion string
//
// The production implementation is GeminiAgent, backed by the Gemini API.
// The dispatcher shares one Agent across all in-flight tasks, so
// implementations must be immutable after construction and safe for
// concurrent use.
package agent

import "context"

// Agent answers a single prompt with a completion.
type Agent interface {
	// Name returns the agent's identifier used in log lines (for the
	// Gemini implementation, the model name).
	Name() string

	// Complete sends prompt to the backing model and returns its response
	// text. Provider-reported failures satisfy IsProviderError.
	Complete(ctx context.Context, prompt string) (string, error)
}
