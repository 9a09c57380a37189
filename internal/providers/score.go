package providers

import (
	"context"

	"github.com/thomas-vilte/codescore/internal/config"
	"github.com/thomas-vilte/codescore/internal/prompt"
	"github.com/thomas-vilte/codescore/internal/services"
)

// NewScoreService wires the configured VCS and completion clients into a
// ScoreService.
func NewScoreService(ctx context.Context, cfg *config.Config, tmpl *prompt.Template, maxDiffChars int) (*services.ScoreService, error) {
	vcsClient, err := NewVCSClient(cfg)
	if err != nil {
		return nil, err
	}

	aiClient, err := NewCompletionClient(ctx, cfg, nil)
	if err != nil {
		return nil, err
	}

	return services.NewScoreService(
		services.WithScoreVCSClient(vcsClient),
		services.WithScoreAIProvider(aiClient),
		services.WithScoreTemplate(tmpl),
		services.WithScoreMaxDiff(maxDiffChars),
	), nil
}
