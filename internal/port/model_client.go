package port

import "context"

// GenerateInput carries one prompt and its generation parameters.
type GenerateInput struct {
	Prompt          string
	Temperature     float64
	MaxOutputTokens int
}

// ModelClient abstracts a generative-model provider. Implementations return
// the raw response text; an empty response is an error, never "".
type ModelClient interface {
	Generate(ctx context.Context, input GenerateInput) (string, error)
	ProviderName() string
}
