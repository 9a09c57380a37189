package providers

import (
	"context"

	"github.com/thomas-vilte/codescore/internal/ai"
	"github.com/thomas-vilte/codescore/internal/ai/gemini"
	"github.com/thomas-vilte/codescore/internal/ai/openai"
	"github.com/thomas-vilte/codescore/internal/config"
	domainErrors "github.com/thomas-vilte/codescore/internal/errors"
	"github.com/thomas-vilte/codescore/internal/httpclient"
)

// NewCompletionClient creates a CompletionClient based on the configured provider.
// httpClient is only used by the OpenAI-compatible client and may be nil.
func NewCompletionClient(ctx context.Context, cfg *config.Config, httpClient httpclient.HTTPClient) (ai.CompletionClient, error) {
	switch cfg.AI.Provider {
	case config.AIOpenAI, "":
		return openai.NewClient(cfg.AI.APIURL, cfg.AI.APIKey, cfg.AI.Model, httpClient), nil
	case config.AIGemini:
		client, err := gemini.NewClient(ctx, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.APIURL)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, domainErrors.ErrAIProviderNotSupported.WithContext("provider", string(cfg.AI.Provider))
	}
}
