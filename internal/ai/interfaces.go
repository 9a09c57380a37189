package ai

import (
	"context"

	"github.com/thomas-vilte/codescore/internal/models"
)

// CompletionClient sends a system/user prompt pair to a chat-completion model.
type CompletionClient interface {
	// Complete returns the model's free-text answer verbatim.
	Complete(ctx context.Context, prompt models.PromptPair) (models.Completion, error)

	// ModelName returns the name of the configured model
	ModelName() string

	// ProviderName returns the name of the provider (e.g.: "openai", "gemini")
	ProviderName() string
}

// Sampling is fixed for every provider: temperature 0 with a narrow nucleus,
// which makes decoding effectively greedy.
const (
	Temperature float32 = 0
	TopP        float32 = 0.1
)
