package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/codescore/internal/config"
	domainErrors "github.com/thomas-vilte/codescore/internal/errors"
	"github.com/thomas-vilte/codescore/internal/prompt"
)

func TestNewScoreService(t *testing.T) {
	tmpl, err := prompt.Parse("--- user\n{{message}}")
	require.NoError(t, err)

	t.Run("should wire the configured clients", func(t *testing.T) {
		cfg := &config.Config{
			VCS: config.VCSConfig{Token: "ghp_test"},
			AI: config.AIConfig{
				APIURL:  "https://api.example.com/v1",
				APIKey:  "k",
				Model:   "m",
				DiffURL: "https://api.github.com/repos/{repo_name}/compare/{previous_commit}...{latest_commit}",
			},
		}

		service, err := NewScoreService(context.Background(), cfg, tmpl, 100)

		require.NoError(t, err)
		assert.NotNil(t, service)
	})

	t.Run("should fail on an unsupported VCS provider", func(t *testing.T) {
		cfg := &config.Config{VCS: config.VCSConfig{Provider: "bitbucket"}}

		service, err := NewScoreService(context.Background(), cfg, tmpl, 100)

		assert.True(t, errors.Is(err, domainErrors.ErrVCSNotSupported))
		assert.Nil(t, service)
	})

	t.Run("should fail on an unsupported AI provider", func(t *testing.T) {
		cfg := &config.Config{AI: config.AIConfig{Provider: "claude"}}

		_, err := NewScoreService(context.Background(), cfg, tmpl, 100)

		assert.True(t, errors.Is(err, domainErrors.ErrAIProviderNotSupported))
	})
}
