package llm

import "context"

// Params are the sampling parameters for a single completion request.
type Params struct {
	MaxTokens        int
	Temperature      float32
	FrequencyPenalty float32
	PresencePenalty  float32
}

// CompletionClient sends a prompt to a text-generation backend and returns
// the generated text. Implementations carry no retry logic; retry policy
// belongs to the caller.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string, p Params) (string, error)
}
