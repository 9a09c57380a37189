package config

import (
	"context"

	"github.com/thomas-vilte/codescore/internal/commands"
	"github.com/thomas-vilte/codescore/internal/config"
	"github.com/thomas-vilte/codescore/internal/i18n"
	"github.com/thomas-vilte/codescore/internal/logger"
	"github.com/thomas-vilte/codescore/internal/prompt"
	"github.com/thomas-vilte/codescore/internal/ui"
	"github.com/urfave/cli/v3"
)

// newValidateCommand loads the three input files the score command needs
// without touching the network.
func (c *ConfigCommandFactory) newValidateCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: t.GetMessage("config.validate_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			stdout, stderr := commands.Stdout(cmd), commands.Stderr(cmd)

			cfg, err := config.Load(cmd.String(commands.FlagConfig))
			if err != nil {
				ui.HandleAppError(stderr, err, t)
				return commands.Reported(err)
			}

			target, err := config.LoadTarget(cmd.String(commands.FlagTarget))
			if err != nil {
				ui.HandleAppError(stderr, err, t)
				return commands.Reported(err)
			}

			if _, err := prompt.Load(cmd.String(commands.FlagPrompt)); err != nil {
				ui.HandleAppError(stderr, err, t)
				return commands.Reported(err)
			}

			logger.Info(ctx, "configuration validated",
				"config", cfg.PathFile,
				"repo", target.Repository,
				"file", target.FilePath)

			ui.PrintSuccess(stdout, t.GetMessage("config.valid", 0, nil))
			ui.PrintKeyValue(stdout, t.GetMessage("config.source", 0, nil), cfg.PathFile)
			ui.PrintInfo(stdout, t.GetMessage("score.target", 0, map[string]interface{}{
				"Repo": target.Repository,
				"File": target.FilePath,
			}))
			return nil
		},
	}
}
