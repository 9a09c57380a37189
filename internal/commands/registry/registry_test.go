package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/codescore/internal/i18n"
	"github.com/urfave/cli/v3"
)

type mockCommandFactory struct {
	name string
}

func (m *mockCommandFactory) CreateCommand(_ *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name: m.name,
	}
}

func newTranslations(t *testing.T) *i18n.Translations {
	t.Helper()
	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)
	return translations
}

func TestRegistry_Register(t *testing.T) {
	t.Run("should register new factory successfully", func(t *testing.T) {
		registry := NewRegistry(newTranslations(t))

		err := registry.Register("score", &mockCommandFactory{name: "score"})

		assert.NoError(t, err)
		assert.Len(t, registry.factories, 1)
		assert.Contains(t, registry.factories, "score")
	})

	t.Run("should return error when registering duplicate factory", func(t *testing.T) {
		registry := NewRegistry(newTranslations(t))
		factory := &mockCommandFactory{name: "score"}

		_ = registry.Register("score", factory)
		err := registry.Register("score", factory)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "'score'")
		assert.Len(t, registry.factories, 1)
	})
}

func TestRegistry_CreateCommands(t *testing.T) {
	t.Run("should create commands sorted by name", func(t *testing.T) {
		registry := NewRegistry(newTranslations(t))
		_ = registry.Register("score", &mockCommandFactory{name: "score"})
		_ = registry.Register("config", &mockCommandFactory{name: "config"})

		commands := registry.CreateCommands()

		require.Len(t, commands, 2)
		assert.Equal(t, "config", commands[0].Name)
		assert.Equal(t, "score", commands[1].Name)
	})

	t.Run("should return empty slice when no factories registered", func(t *testing.T) {
		commands := NewRegistry(newTranslations(t)).CreateCommands()

		assert.Empty(t, commands)
	})
}
