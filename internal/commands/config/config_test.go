package config

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/codescore/internal/commands"
	appConfig "github.com/thomas-vilte/codescore/internal/config"
	domainErrors "github.com/thomas-vilte/codescore/internal/errors"
	"github.com/thomas-vilte/codescore/internal/i18n"
	"github.com/urfave/cli/v3"
)

func init() {
	color.NoColor = true
}

const testConfig = `[Github]
Token = ghp_abcdefghijklmnop

[API]
SonnetAPIUrl = https://api.example.com/v1
SonnetAPIKey = sk-1234567890
SonnetModel = Meta-Llama-3.1-405B-Instruct
DiffUrl = https://api.github.com/repos/{repo_name}/compare/{previous_commit}...{latest_commit}
MaxDiffChars = 5000
`

func setup(t *testing.T) (root *cli.Command, stdout, stderr *bytes.Buffer, dir string) {
	t.Helper()
	t.Setenv(appConfig.EnvToken, "")
	t.Setenv(appConfig.EnvAPIKey, "")

	trans, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	dir = t.TempDir()
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	root = &cli.Command{
		Name:      "codescore",
		Flags:     commands.GlobalFlags(trans),
		Commands:  []*cli.Command{NewConfigCommandFactory().CreateCommand(trans)},
		Writer:    stdout,
		ErrWriter: stderr,
	}
	return root, stdout, stderr, dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfigCommand_Structure(t *testing.T) {
	trans, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	cmd := NewConfigCommandFactory().CreateCommand(trans)

	assert.Equal(t, "config", cmd.Name)
	require.Len(t, cmd.Commands, 2)
	assert.Equal(t, "show", cmd.Commands[0].Name)
	assert.Equal(t, "validate", cmd.Commands[1].Name)
}

func TestShowCommand(t *testing.T) {
	t.Run("should print the configuration with masked secrets", func(t *testing.T) {
		root, stdout, _, dir := setup(t)
		path := writeFile(t, dir, "codescore.cfg", testConfig)

		err := root.Run(context.Background(), []string{"codescore", "--config", path, "config", "show"})

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "codescore configuration")
		assert.Contains(t, out, "Token: ghp_****op")
		assert.Contains(t, out, "API key: sk-1****90")
		assert.NotContains(t, out, "abcdefghijklmnop")
		assert.Contains(t, out, "Model: Meta-Llama-3.1-405B-Instruct")
		assert.Contains(t, out, "Diff cap: 5000")
		assert.Contains(t, out, "VCS provider: github")
	})

	t.Run("should fail with a reported error when the file is missing", func(t *testing.T) {
		root, _, stderr, dir := setup(t)

		err := root.Run(context.Background(), []string{"codescore", "--config", filepath.Join(dir, "nope.cfg"), "config", "show"})

		assert.Equal(t, 1, commands.ExitCode(err))
		assert.True(t, errors.Is(err, domainErrors.ErrConfigMissing))
		assert.Contains(t, stderr.String(), "Configuration file not found")
	})
}

func TestValidateCommand(t *testing.T) {
	t.Run("should accept a complete setup", func(t *testing.T) {
		root, stdout, _, dir := setup(t)
		cfgPath := writeFile(t, dir, "codescore.cfg", testConfig)
		targetPath := writeFile(t, dir, "git.dat", "acme/widgets\nsrc/app.py\n")
		promptPath := writeFile(t, dir, "prompt.dat", "--- system\nReview\n--- user\n{{message}}")

		err := root.Run(context.Background(), []string{
			"codescore", "--config", cfgPath, "--target", targetPath, "--prompt", promptPath, "config", "validate",
		})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Configuration, target and prompt template are valid")
		assert.Contains(t, stdout.String(), "Repository: acme/widgets | File: src/app.py")
	})

	t.Run("should report an incomplete target file", func(t *testing.T) {
		root, _, stderr, dir := setup(t)
		cfgPath := writeFile(t, dir, "codescore.cfg", testConfig)
		targetPath := writeFile(t, dir, "git.dat", "acme/widgets\n")

		err := root.Run(context.Background(), []string{
			"codescore", "--config", cfgPath, "--target", targetPath, "config", "validate",
		})

		assert.Equal(t, 1, commands.ExitCode(err))
		assert.True(t, errors.Is(err, domainErrors.ErrTargetInvalid))
		assert.Contains(t, stderr.String(), "Target data file is incomplete")
	})

	t.Run("should report a prompt without a user section", func(t *testing.T) {
		root, _, stderr, dir := setup(t)
		cfgPath := writeFile(t, dir, "codescore.cfg", testConfig)
		targetPath := writeFile(t, dir, "git.dat", "acme/widgets\nsrc/app.py\n")
		promptPath := writeFile(t, dir, "prompt.dat", "only system text")

		err := root.Run(context.Background(), []string{
			"codescore", "--config", cfgPath, "--target", targetPath, "--prompt", promptPath, "config", "validate",
		})

		assert.True(t, errors.Is(err, domainErrors.ErrPromptInvalid))
		assert.Contains(t, stderr.String(), "--- user")
	})
}
