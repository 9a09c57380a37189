package config

import (
	"github.com/thomas-vilte/codescore/internal/commands/completion_helper"
	"github.com/thomas-vilte/codescore/internal/i18n"
	"github.com/urfave/cli/v3"
)

type ConfigCommandFactory struct{}

func NewConfigCommandFactory() *ConfigCommandFactory {
	return &ConfigCommandFactory{}
}

func (c *ConfigCommandFactory) CreateCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: t.GetMessage("config.usage", 0, nil),
		Commands: []*cli.Command{
			c.newShowCommand(t),
			c.newValidateCommand(t),
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
	}
}
