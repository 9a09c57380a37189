package providers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/codescore/internal/config"
	domainErrors "github.com/thomas-vilte/codescore/internal/errors"
)

func TestNewVCSClient(t *testing.T) {
	tests := []struct {
		name     string
		provider config.VCS
		want     string
	}{
		{"default", "", "github"},
		{"github", config.VCSGitHub, "github"},
		{"gitlab", config.VCSGitLab, "gitlab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{VCS: config.VCSConfig{Provider: tt.provider, Token: "tok"}}

			client, err := NewVCSClient(cfg)

			require.NoError(t, err)
			assert.Equal(t, tt.want, client.ProviderName())
		})
	}

	t.Run("should reject unknown providers", func(t *testing.T) {
		client, err := NewVCSClient(&config.Config{VCS: config.VCSConfig{Provider: "bitbucket"}})

		assert.True(t, errors.Is(err, domainErrors.ErrVCSNotSupported))
		assert.True(t, client == nil)
	})
}
