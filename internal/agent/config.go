package agent

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// DefaultInstructions steer the agent when the caller supplies none.
const DefaultInstructions = `You are a helpful assistant that processes text prompts.
Provide accurate and concise responses based on the prompt provided.
If the prompt is unclear or ambiguous, state that.`

// defaultTemperature keeps responses focused rather than creative.
const defaultTemperature float32 = 0.3

// Config holds the immutable configuration for constructing an agent.
type Config struct {
	// Model is the model name to use. Empty means DefaultModel.
	Model string

	// Instructions is the system instruction text. Empty means
	// DefaultInstructions.
	Instructions string

	// APIKey authenticates against the Gemini API.
	APIKey string

	// Temperature overrides the default sampling temperature when non-nil.
	Temperature *float32
}
