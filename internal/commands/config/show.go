package config

import (
	"context"
	"strconv"

	"github.com/thomas-vilte/codescore/internal/commands"
	"github.com/thomas-vilte/codescore/internal/config"
	"github.com/thomas-vilte/codescore/internal/i18n"
	"github.com/thomas-vilte/codescore/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config.show_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			stdout := commands.Stdout(cmd)

			cfg, err := config.Load(cmd.String(commands.FlagConfig))
			if err != nil {
				ui.HandleAppError(commands.Stderr(cmd), err, t)
				return commands.Reported(err)
			}
			masked := cfg.Masked()

			ui.PrintSectionBanner(stdout, t.GetMessage("config.title", 0, nil))
			ui.PrintKeyValue(stdout, t.GetMessage("config.source", 0, nil), masked.PathFile)
			ui.PrintKeyValue(stdout, t.GetMessage("config.vcs_provider", 0, nil), string(masked.VCS.Provider))
			if masked.VCS.BaseURL != "" {
				ui.PrintKeyValue(stdout, t.GetMessage("config.vcs_base_url", 0, nil), masked.VCS.BaseURL)
			}
			ui.PrintKeyValue(stdout, t.GetMessage("config.token", 0, nil), masked.VCS.Token)
			ui.PrintKeyValue(stdout, t.GetMessage("config.ai_provider", 0, nil), string(masked.AI.Provider))
			ui.PrintKeyValue(stdout, t.GetMessage("config.api_url", 0, nil), masked.AI.APIURL)
			ui.PrintKeyValue(stdout, t.GetMessage("config.api_key", 0, nil), masked.AI.APIKey)
			ui.PrintKeyValue(stdout, t.GetMessage("config.model", 0, nil), masked.AI.Model)
			ui.PrintKeyValue(stdout, t.GetMessage("config.diff_url", 0, nil), masked.AI.DiffURL)
			ui.PrintKeyValue(stdout, t.GetMessage("config.max_diff", 0, nil), strconv.Itoa(masked.AI.MaxDiffChars))

			return nil
		},
	}
}
